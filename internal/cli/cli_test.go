package cli

import (
	"bytes"
	"encoding/json"
	"testing"
)

func runCLI(t *testing.T, args []string) ([]byte, []byte, error) {
	t.Helper()
	cmd := NewRootCmd()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.Bytes(), stderr.Bytes(), err
}

func TestCLISmoke(t *testing.T) {
	dir := t.TempDir()

	mustRun := func(args ...string) map[string]any {
		t.Helper()
		full := append([]string{"--dir", dir}, args...)
		stdout, stderr, err := runCLI(t, full)
		if err != nil {
			t.Fatalf("command failed: triage %v\nerr: %v\nstderr:\n%s\nstdout:\n%s", args, err, string(stderr), string(stdout))
		}
		var env map[string]any
		if err := json.Unmarshal(stdout, &env); err != nil {
			t.Fatalf("unmarshal stdout: %v\nstdout:\n%s\nargs: %v", err, string(stdout), args)
		}
		return env
	}

	itemID := func(env map[string]any) string {
		t.Helper()
		data, _ := env["data"].(map[string]any)
		id, _ := data["id"].(string)
		if id == "" {
			t.Fatalf("expected data.id in envelope, got: %#v", env)
		}
		return id
	}

	a := itemID(mustRun("add", "water", "the", "plants", "--priority", "high"))
	b := itemID(mustRun("add", "buy milk"))

	// Simple mode: one occupied section, newest item first.
	lst := mustRun("list")
	if lst["mode"] != "simple" {
		t.Fatalf("expected simple mode, got %v", lst["mode"])
	}
	sections, _ := lst["sections"].([]any)
	if len(sections) != 1 {
		t.Fatalf("expected 1 section, got %d: %v", len(sections), sections)
	}
	first, _ := sections[0].(map[string]any)
	if first["title"] != "Left to do" {
		t.Fatalf("expected Left to do section, got %v", first["title"])
	}
	items, _ := first["items"].([]any)
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	if top, _ := items[0].(map[string]any); top["id"] != b {
		t.Fatalf("expected newest item first, got %v", top["id"])
	}

	// Done splits off a second section.
	mustRun("done", a)
	lst = mustRun("list")
	sections, _ = lst["sections"].([]any)
	if len(sections) != 2 {
		t.Fatalf("expected 2 sections after done, got %d", len(sections))
	}

	// Prioritized mode, empty sections included.
	env := mustRun("mode", "prioritized")
	if env["changed"] != true {
		t.Fatalf("expected mode change, got %v", env)
	}
	lst = mustRun("list", "--empty")
	sections, _ = lst["sections"].([]any)
	titles := make([]string, 0, len(sections))
	for _, s := range sections {
		m, _ := s.(map[string]any)
		title, _ := m["title"].(string)
		titles = append(titles, title)
	}
	want := []string{"High priority", "Medium priority", "Low priority", "Done"}
	if len(titles) != len(want) {
		t.Fatalf("expected catalog %v, got %v", want, titles)
	}
	for i := range want {
		if titles[i] != want[i] {
			t.Fatalf("expected catalog %v, got %v", want, titles)
		}
	}

	// Drag b into Done.
	mustRun("move", b, "--section", "Done", "--row", "0")
	lst = mustRun("list")
	sections, _ = lst["sections"].([]any)
	if len(sections) != 1 {
		t.Fatalf("expected only Done occupied, got %d sections", len(sections))
	}
	done, _ := sections[0].(map[string]any)
	if done["title"] != "Done" {
		t.Fatalf("expected Done section, got %v", done["title"])
	}
	doneItems, _ := done["items"].([]any)
	if len(doneItems) != 2 {
		t.Fatalf("expected 2 done items, got %d", len(doneItems))
	}
	if top, _ := doneItems[0].(map[string]any); top["id"] != b {
		t.Fatalf("expected b dropped at row 0, got %v", top["id"])
	}

	mustRun("rm", a)
	lst = mustRun("list")
	sections, _ = lst["sections"].([]any)
	done, _ = sections[0].(map[string]any)
	if items, _ := done["items"].([]any); len(items) != 1 {
		t.Fatalf("expected 1 item after rm, got %d", len(items))
	}
}

func TestCLIMoveUnknownSection(t *testing.T) {
	dir := t.TempDir()

	if _, _, err := runCLI(t, []string{"--dir", dir, "add", "solo"}); err != nil {
		t.Fatalf("add: %v", err)
	}
	stdout, _, err := runCLI(t, []string{"--dir", dir, "list"})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	var lst map[string]any
	if err := json.Unmarshal(stdout, &lst); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	sections, _ := lst["sections"].([]any)
	first, _ := sections[0].(map[string]any)
	items, _ := first["items"].([]any)
	item, _ := items[0].(map[string]any)
	id, _ := item["id"].(string)

	if _, _, err := runCLI(t, []string{"--dir", dir, "move", id, "--section", "Nope", "--row", "0"}); err == nil {
		t.Fatal("expected error for unknown section")
	}
}
