package cmd

import (
	"testing"
)

func TestDiffCommand(t *testing.T) {
	ts := useTempStore(t)
	ts.CreateFile("report.md", "# Draft A\n")

	if err := runSave(nil, []string{"A"}); err != nil {
		t.Fatalf("save A failed: %v", err)
	}
	ts.CreateFile("appendix.md", "appendix\n")
	if err := runSave(nil, []string{"B"}); err != nil {
		t.Fatalf("save B failed: %v", err)
	}

	diffJSON = false
	diffToon = false

	if err := runDiff(nil, []string{"1", "2"}); err != nil {
		t.Fatalf("diff command failed: %v", err)
	}
}

func TestDiffCommandUnknownVersion(t *testing.T) {
	ts := useTempStore(t)
	ts.CreateFile("report.md", "# Draft\n")

	if err := runSave(nil, []string{}); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	diffJSON = false
	diffToon = false

	if err := runDiff(nil, []string{"1", "9"}); err == nil {
		t.Error("expected error for unknown version")
	}
}

func TestDiffCommandInvalidArgs(t *testing.T) {
	useTempStore(t)

	if err := runDiff(nil, []string{"x", "2"}); err == nil {
		t.Error("expected error for non-numeric versionA")
	}
	if err := runDiff(nil, []string{"1", "y"}); err == nil {
		t.Error("expected error for non-numeric versionB")
	}
}

func TestInfoCommand(t *testing.T) {
	ts := useTempStore(t)
	ts.CreateFile("report.md", "# Draft\n")
	ts.CreateFile("data/results.csv", "a,b\n")

	if err := runSave(nil, []string{"with data"}); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	infoJSON = false
	infoToon = false

	if err := runInfo(nil, []string{"1"}); err != nil {
		t.Fatalf("info command failed: %v", err)
	}
}

func TestInfoCommandUnknownVersion(t *testing.T) {
	useTempStore(t)

	infoJSON = false
	infoToon = false

	if err := runInfo(nil, []string{"5"}); err == nil {
		t.Error("expected error for unknown version")
	}
}
