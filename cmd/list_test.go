package cmd

import (
	"testing"
)

func TestListCommandNoSnapshots(t *testing.T) {
	useTempStore(t)

	listJSON = false
	listToon = false
	listSince = ""

	if err := runList(nil, []string{}); err != nil {
		t.Fatalf("list with empty store failed: %v", err)
	}
}

func TestListCommand(t *testing.T) {
	ts := useTempStore(t)
	ts.CreateFile("report.md", "# Draft\n")

	if err := runSave(nil, []string{"one"}); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	ts.CreateFile("report.md", "# Draft 2\n")
	if err := runSave(nil, []string{"two"}); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	listJSON = false
	listToon = false
	listSince = ""

	if err := runList(nil, []string{}); err != nil {
		t.Fatalf("list command failed: %v", err)
	}
}

func TestListCommandJSON(t *testing.T) {
	ts := useTempStore(t)
	ts.CreateFile("report.md", "# Draft\n")

	if err := runSave(nil, []string{}); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	listJSON = true
	listToon = false
	listSince = ""
	defer func() { listJSON = false }()

	if err := runList(nil, []string{}); err != nil {
		t.Fatalf("list --json failed: %v", err)
	}
}

func TestListCommandInvalidSince(t *testing.T) {
	useTempStore(t)

	listJSON = false
	listToon = false
	listSince = "not-a-date"
	defer func() { listSince = "" }()

	if err := runList(nil, []string{}); err == nil {
		t.Error("expected error for invalid --since date")
	}
}
