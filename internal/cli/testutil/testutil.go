// Package testutil provides test utilities for CLI testing.
package testutil

import (
	"bytes"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/tool-recommender-bot/redpen/internal/cli/output"
)

// ProjectConfig is the redpen.yaml written by SetupTestProject.
const ProjectConfig = `language: ja
validators:
  - name: KatakanaEndHyphen
    attributes:
      dict: skip.txt
  - name: SentenceLength
    properties:
      max_len: 40
`

// SetupTestProject creates a temporary project with a config, a skip
// dictionary and two documents: docs/clean.md passes every check and
// docs/katakana.txt has one KatakanaEndHyphen hit on line 1.
func SetupTestProject(t *testing.T) string {
	t.Helper()

	tmpDir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(tmpDir, "docs"), 0o755); err != nil {
		t.Fatalf("failed to create docs directory: %v", err)
	}

	files := map[string]string{
		"redpen.yaml":       ProjectConfig,
		"skip.txt":          "コンピューター\n",
		"docs/clean.md":     "# 概要\n\nこれはテストです。\n",
		"docs/katakana.txt": "これはエレベーターです。\nコンピューターを使う。\n",
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(tmpDir, name), []byte(content), 0o644); err != nil {
			t.Fatalf("failed to create %s: %v", name, err)
		}
	}

	return tmpDir
}

// TestRenderer wraps a Renderer for testing with captured output buffers.
type TestRenderer struct {
	*output.Renderer
	Out    *bytes.Buffer
	ErrOut *bytes.Buffer
}

// NewTestRenderer creates a new test renderer with the specified mode and TTY state.
// Output is captured in buffers for inspection.
func NewTestRenderer(mode output.OutputMode, isTTY bool) *TestRenderer {
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	return &TestRenderer{
		Renderer: output.NewRendererWithTTY(out, errOut, isTTY, mode),
		Out:      out,
		ErrOut:   errOut,
	}
}

// NewTestRendererAuto creates a new test renderer with auto mode detection.
// In tests, non-TTY defaults to markdown output.
func NewTestRendererAuto() *TestRenderer {
	return NewTestRenderer(output.ModeAuto, false)
}

// NewTestRendererText creates a new test renderer in text mode (simulated TTY).
func NewTestRendererText() *TestRenderer {
	return NewTestRenderer(output.ModeText, true)
}

// NewTestRendererPlain creates a new test renderer in plain mode.
func NewTestRendererPlain() *TestRenderer {
	return NewTestRenderer(output.ModePlain, false)
}

// NewTestRendererMarkdown creates a new test renderer in markdown mode.
func NewTestRendererMarkdown() *TestRenderer {
	return NewTestRenderer(output.ModeMarkdown, false)
}

// NewTestRendererJSON creates a new test renderer in JSON mode.
func NewTestRendererJSON() *TestRenderer {
	return NewTestRenderer(output.ModeJSON, false)
}

// Output returns the combined stdout output as a string.
func (tr *TestRenderer) Output() string {
	return tr.Out.String()
}

// ErrorOutput returns the stderr output as a string.
func (tr *TestRenderer) ErrorOutput() string {
	return tr.ErrOut.String()
}

// Reset clears both output buffers.
func (tr *TestRenderer) Reset() {
	tr.Out.Reset()
	tr.ErrOut.Reset()
}

// ansiPattern matches ANSI escape codes.
var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

// AssertNoANSI checks that a string contains no ANSI escape codes.
func AssertNoANSI(t *testing.T, s string) {
	t.Helper()
	if ansiPattern.MatchString(s) {
		t.Errorf("string contains ANSI escape codes: %q", s)
	}
}

// AssertContains checks that the string contains the expected substring.
func AssertContains(t *testing.T, s, expected string) {
	t.Helper()
	if !strings.Contains(s, expected) {
		t.Errorf("string %q does not contain expected %q", s, expected)
	}
}

// AssertNotContains checks that the string does not contain the substring.
func AssertNotContains(t *testing.T, s, unexpected string) {
	t.Helper()
	if strings.Contains(s, unexpected) {
		t.Errorf("string %q unexpectedly contains %q", s, unexpected)
	}
}

// AssertValidMarkdown performs basic markdown validation.
// It checks for unclosed code fences and basic structure.
func AssertValidMarkdown(t *testing.T, md string) {
	t.Helper()

	fenceCount := strings.Count(md, "```")
	if fenceCount%2 != 0 {
		t.Errorf("unbalanced code fences in markdown: found %d occurrences", fenceCount)
	}

	lines := strings.Split(md, "\n")
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "#") && strings.TrimLeft(trimmed, "# ") == "" {
			t.Errorf("empty header at line %d: %q", i+1, line)
		}
	}
}

// AssertOutputMode checks that the renderer output matches expected mode characteristics.
func AssertOutputMode(t *testing.T, tr *TestRenderer, expectedMode output.OutputMode) {
	t.Helper()

	combinedOutput := tr.Output() + tr.ErrorOutput()

	switch expectedMode {
	case output.ModeMarkdown, output.ModePlain, output.ModeJSON:
		AssertNoANSI(t, combinedOutput)
	case output.ModeText:
		// Text mode may contain ANSI codes if TTY
	}
}
