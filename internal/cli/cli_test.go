package cli_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/dshills/redline/internal/cli"
	"github.com/dshills/redline/internal/engine"
)

func TestNewRootCommand(t *testing.T) {
	t.Parallel()

	info := cli.BuildInfo{
		Version: "test-version",
		Commit:  "test-commit",
		Date:    "test-date",
	}

	cmd := cli.NewRootCommand(info)

	if cmd == nil {
		t.Fatal("NewRootCommand returned nil")
	}
	if cmd.Use != "redline" {
		t.Errorf("expected Use to be 'redline', got %q", cmd.Use)
	}
	if cmd.Short == "" {
		t.Error("expected Short description to be set")
	}
	if cmd.Long == "" {
		t.Error("expected Long description to be set")
	}
}

func TestRootCommandHasSubcommands(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(cli.BuildInfo{Version: "test"})

	expectedSubcommands := []string{"import", "export", "suggestions", "resolve", "render", "stats", "version"}

	for _, name := range expectedSubcommands {
		subCmd, _, err := cmd.Find([]string{name})
		if err != nil {
			t.Errorf("expected subcommand %q to exist, got error: %v", name, err)
			continue
		}
		if subCmd.Name() != name {
			t.Errorf("expected subcommand name %q, got %q", name, subCmd.Name())
		}
	}
}

func TestImportMarkdownToRawJSON(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	src := filepath.Join(dir, "notes.md")
	out := filepath.Join(dir, "notes.json")
	if err := os.WriteFile(src, []byte("# Title\n\nSome body text.\n"), 0o644); err != nil {
		t.Fatalf("write source: %v", err)
	}

	cmd := cli.NewRootCommand(cli.BuildInfo{Version: "test"})
	cmd.SetArgs([]string{"import", src, "-o", out})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("import failed: %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	ed, err := engine.FromRawJSON(data)
	if err != nil {
		t.Fatalf("output is not a loadable document: %v", err)
	}
	if ed.Text() != "Title\nSome body text." {
		t.Errorf("unexpected document text %q", ed.Text())
	}
}

func TestImportUnknownFormat(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	src := filepath.Join(dir, "notes.md")
	if err := os.WriteFile(src, []byte("x"), 0o644); err != nil {
		t.Fatalf("write source: %v", err)
	}

	cmd := cli.NewRootCommand(cli.BuildInfo{Version: "test"})
	cmd.SetArgs([]string{"import", src, "--format", "docx"})
	if err := cmd.Execute(); err == nil {
		t.Error("expected an error for an unknown format")
	}
}

func TestResolveRequiresVerdict(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	src := filepath.Join(dir, "doc.json")
	data, err := engine.New(engine.WithContent("hello")).MarshalRaw()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if err := os.WriteFile(src, data, 0o644); err != nil {
		t.Fatalf("write source: %v", err)
	}

	cmd := cli.NewRootCommand(cli.BuildInfo{Version: "test"})
	cmd.SetArgs([]string{"resolve", src, "--all", "--by", "ann"})
	if err := cmd.Execute(); err == nil {
		t.Error("expected an error without --accept or --reject")
	}
}
