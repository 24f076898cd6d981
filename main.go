package main

import "github.com/verdir/verdir/cmd"

func main() {
	cmd.Execute()
}
