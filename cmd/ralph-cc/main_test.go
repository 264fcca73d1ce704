package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// resetDebugFlags resets package-level flag variables between tests
// since cobra binds them to the same vars across command instances.
func resetDebugFlags() {
	dParse = false
	dAST = false
}

func TestVersion(t *testing.T) {
	resetDebugFlags()
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	cmd := newRootCmd(out, errOut)
	cmd.SetArgs([]string{"--version"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("execute failed: %v", err)
	}
	if !strings.Contains(out.String(), version) {
		t.Errorf("version output wrong. expected to contain %q, got %q", version, out.String())
	}
}

func TestDebugFlagsExist(t *testing.T) {
	cmd := newRootCmd(&bytes.Buffer{}, &bytes.Buffer{})
	for _, name := range debugFlagNames {
		if cmd.Flags().Lookup(name) == nil {
			t.Errorf("flag --%s not registered", name)
		}
	}
}

func TestNormalizeFlags(t *testing.T) {
	tests := []struct {
		input    []string
		expected []string
	}{
		{[]string{"-dparse", "test.c"}, []string{"--dparse", "test.c"}},
		{[]string{"-dast", "test.c"}, []string{"--dast", "test.c"}},
		{[]string{"--dparse", "test.c"}, []string{"--dparse", "test.c"}},
		{[]string{"test.c"}, []string{"test.c"}},
		{[]string{"-dunknown", "test.c"}, []string{"-dunknown", "test.c"}},
		{[]string{}, []string{}},
	}

	for i, tt := range tests {
		got := normalizeFlags(tt.input)
		if len(got) != len(tt.expected) {
			t.Errorf("tests[%d] - length wrong. expected=%d, got=%d", i, len(tt.expected), len(got))
			continue
		}
		for j := range got {
			if got[j] != tt.expected[j] {
				t.Errorf("tests[%d] - arg %d wrong. expected=%q, got=%q", i, j, tt.expected[j], got[j])
			}
		}
	}
}

func TestParsedOutputFilename(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"test.c", "test.parsed.c"},
		{"dir/test.c", "dir/test.parsed.c"},
		{"noext", "noext.parsed.c"},
		{"test.parsed.c", "test.parsed.parsed.c"},
	}

	for i, tt := range tests {
		got := parsedOutputFilename(tt.input)
		if got != tt.expected {
			t.Errorf("tests[%d] - filename wrong. expected=%q, got=%q", i, tt.expected, got)
		}
	}
}

func TestDParseFlag(t *testing.T) {
	resetDebugFlags()
	dir := t.TempDir()
	testFile := filepath.Join(dir, "test.c")
	source := "int main() {\n  return 42;\n}\n"
	if err := os.WriteFile(testFile, []byte(source), 0644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	cmd := newRootCmd(out, errOut)
	cmd.SetArgs([]string{"--dparse", testFile})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("execute failed: %v\nstderr: %s", err, errOut.String())
	}

	if !strings.Contains(out.String(), "int main()") {
		t.Errorf("stdout missing function definition, got %q", out.String())
	}
	if !strings.Contains(out.String(), "return 42;") {
		t.Errorf("stdout missing return statement, got %q", out.String())
	}

	// -dparse also writes input.parsed.c next to the input
	outputFile := filepath.Join(dir, "test.parsed.c")
	content, err := os.ReadFile(outputFile)
	if err != nil {
		t.Fatalf("expected output file %s: %v", outputFile, err)
	}
	if string(content) != out.String() {
		t.Errorf("output file differs from stdout.\nfile:\n%s\nstdout:\n%s", content, out.String())
	}
}

func TestDASTFlag(t *testing.T) {
	resetDebugFlags()
	dir := t.TempDir()
	testFile := filepath.Join(dir, "test.c")
	source := "int main() {\n  return 42;\n}\n"
	if err := os.WriteFile(testFile, []byte(source), 0644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	cmd := newRootCmd(out, errOut)
	cmd.SetArgs([]string{"--dast", testFile})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("execute failed: %v\nstderr: %s", err, errOut.String())
	}

	if !strings.Contains(out.String(), "FunDef main") {
		t.Errorf("dump missing function node, got %q", out.String())
	}
	if !strings.Contains(out.String(), "Constant 42") {
		t.Errorf("dump missing constant node, got %q", out.String())
	}
}

func TestDParseFlagFileNotFound(t *testing.T) {
	resetDebugFlags()
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	cmd := newRootCmd(out, errOut)
	cmd.SetArgs([]string{"--dparse", "nonexistent.c"})

	if err := cmd.Execute(); err == nil {
		t.Error("expected error for missing file, got nil")
	}
	if !strings.Contains(errOut.String(), "error reading") {
		t.Errorf("stderr missing read error, got %q", errOut.String())
	}
}

func TestParseError(t *testing.T) {
	resetDebugFlags()
	dir := t.TempDir()
	testFile := filepath.Join(dir, "bad.c")
	if err := os.WriteFile(testFile, []byte("int x = ;\n"), 0644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	cmd := newRootCmd(out, errOut)
	cmd.SetArgs([]string{"--dast", testFile})

	if err := cmd.Execute(); err == nil {
		t.Error("expected error for syntax error, got nil")
	}
	if !strings.Contains(errOut.String(), "line 1") {
		t.Errorf("stderr missing error position, got %q", errOut.String())
	}
	if out.Len() != 0 {
		t.Errorf("expected no stdout output on parse error, got %q", out.String())
	}
}

func TestNoFlagsCompileMessage(t *testing.T) {
	resetDebugFlags()
	dir := t.TempDir()
	testFile := filepath.Join(dir, "test.c")
	if err := os.WriteFile(testFile, []byte("int main() { return 0; }\n"), 0644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	cmd := newRootCmd(out, errOut)
	cmd.SetArgs([]string{testFile})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("execute failed: %v", err)
	}
	if !strings.Contains(errOut.String(), "ralph-cc: compiling "+testFile) {
		t.Errorf("stderr missing compile message, got %q", errOut.String())
	}
	if out.Len() != 0 {
		t.Errorf("expected no stdout output without debug flags, got %q", out.String())
	}
}
