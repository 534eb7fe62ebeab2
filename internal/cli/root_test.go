package cli

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tool-recommender-bot/redpen/internal/cli/commands"
	"github.com/tool-recommender-bot/redpen/internal/cli/config"
	clitest "github.com/tool-recommender-bot/redpen/internal/cli/testutil"
	"github.com/tool-recommender-bot/redpen/internal/testutil"
)

func execute(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	config.ResetConfig()
	t.Cleanup(config.ResetConfig)

	cmd := NewRootCmd()
	out, errOut := new(bytes.Buffer), new(bytes.Buffer)
	cmd.SetOut(out)
	cmd.SetErr(errOut)
	cmd.SetArgs(args)
	err = cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestNewRootCmd(t *testing.T) {
	cmd := NewRootCmd()

	assert.Equal(t, "redpen", cmd.Use)
	assert.True(t, cmd.SilenceUsage)
	assert.True(t, cmd.SilenceErrors)

	flags := map[string]string{
		"conf":          "c",
		"format":        "f",
		"result-format": "r",
		"language":      "L",
		"concurrency":   "j",
		"verbose":       "v",
	}
	for name, short := range flags {
		f := cmd.PersistentFlags().Lookup(name)
		require.NotNil(t, f, "flag %q should exist", name)
		assert.Equal(t, short, f.Shorthand)
	}

	var names []string
	for _, sub := range cmd.Commands() {
		names = append(names, sub.Name())
	}
	assert.ElementsMatch(t, []string{"check", "validators", "lsp", "version", "completion"}, names)
}

func TestRoot_CheckWithFlags(t *testing.T) {
	dir := clitest.SetupTestProject(t)
	conf := testutil.WriteFile(t, t.TempDir(), "strict.yaml", `validators:
  - name: SentenceLength
    properties:
      max_len: 5
`)
	testutil.Chdir(t, dir)

	stdout, _, err := execute(t, "check", "-c", conf, "-r", "plain", "-j", "2", "docs/katakana.txt")
	require.ErrorIs(t, err, commands.ErrValidationFailed)

	assert.Contains(t, stdout, "docs/katakana.txt:1: ValidationError[SentenceLength]")
	assert.Contains(t, stdout, "docs/katakana.txt:2: ValidationError[SentenceLength]")
	assert.NotContains(t, stdout, "KatakanaEndHyphen", "explicit config replaces redpen.yaml")
	assert.Equal(t, conf, config.GetConfigFileUsed())
	assert.Equal(t, 2, config.GetCurrentConfig().Concurrency)
}

func TestRoot_CheckFindsProjectConfig(t *testing.T) {
	dir := clitest.SetupTestProject(t)
	testutil.Chdir(t, dir)

	stdout, _, err := execute(t, "check", "--result-format", "json", "docs")
	require.ErrorIs(t, err, commands.ErrValidationFailed)

	var report struct {
		Summary struct {
			Diagnostics int `json:"diagnostics"`
		} `json:"summary"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &report))
	assert.Equal(t, 1, report.Summary.Diagnostics)
}

func TestRoot_VerboseLogsToStderr(t *testing.T) {
	dir := clitest.SetupTestProject(t)
	testutil.Chdir(t, dir)

	_, stderr, err := execute(t, "check", "-v", "-r", "plain", "docs/clean.md")
	require.NoError(t, err)

	assert.Contains(t, stderr, "using config file")
	assert.Contains(t, stderr, "validation finished")
	assert.Contains(t, stderr, "run_id=")
}

func TestRoot_InvalidResultFormat(t *testing.T) {
	dir := clitest.SetupTestProject(t)
	testutil.Chdir(t, dir)

	_, _, err := execute(t, "check", "-r", "xml", "docs/clean.md")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown output format")
}

func TestRoot_Version(t *testing.T) {
	stdout, _, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, stdout, "RedPen v"+Version)

	stdout, _, err = execute(t, "--version")
	require.NoError(t, err)
	assert.Contains(t, stdout, "redpen "+Version)
}

func TestCompletionCommand(t *testing.T) {
	tests := []struct {
		shell string
		want  string
	}{
		{shell: "bash", want: "bash completion"},
		{shell: "zsh", want: "#compdef redpen"},
		{shell: "fish", want: "complete -c redpen"},
		{shell: "powershell", want: "Register-ArgumentCompleter"},
	}

	for _, tt := range tests {
		t.Run(tt.shell, func(t *testing.T) {
			stdout, _, err := execute(t, "completion", tt.shell)
			require.NoError(t, err)
			assert.Contains(t, stdout, tt.want)
			assert.Nil(t, config.GetCurrentConfig(), "completion skips config loading")
		})
	}

	_, _, err := execute(t, "completion", "tcsh")
	assert.Error(t, err)
}
