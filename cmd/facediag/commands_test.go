package main

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"facediag/internal/app"
	"facediag/internal/config"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	return &config.Config{
		ImagePath:    filepath.Join(dir, "missing.jpg"),
		ModelPath:    filepath.Join(dir, "model.pb"),
		ConfigPath:   filepath.Join(dir, "model.pbtxt"),
		OutputPath:   filepath.Join(dir, "out.jpg"),
		CascadePaths: config.DefaultCascadePaths,
		DrawLimit:    20,
		LogDirectory: filepath.Join(dir, "logs"),
		DatabasePath: filepath.Join(dir, "facediag.db"),
	}
}

func TestRootCommand_FlagsOverrideConfig(t *testing.T) {
	cfg := testConfig(t)
	cmd := rootCommand(cfg)

	require.NoError(t, cmd.ParseFlags([]string{"--image", "other.jpg", "--limit", "5", "--history", "--cascade", "a.xml,b.xml"}))
	assert.Equal(t, "other.jpg", cfg.ImagePath)
	assert.Equal(t, 5, cfg.DrawLimit)
	assert.True(t, cfg.HistoryEnabled)
	assert.Equal(t, []string{"a.xml", "b.xml"}, cfg.CascadePaths)
}

func TestRootCommand_MissingImage(t *testing.T) {
	cfg := testConfig(t)
	cmd := rootCommand(cfg)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{})

	err := cmd.Execute()
	assert.ErrorIs(t, err, app.ErrMissingInput)
}

func TestHistoryCommand_Empty(t *testing.T) {
	cfg := testConfig(t)
	cmd := rootCommand(cfg)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"history", "--last", "3"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "No runs recorded")
}

func TestHistoryShowCommand(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr error
		errText string
	}{
		{name: "unknown run", args: []string{"history", "show", "42"}, wantErr: app.ErrRunNotFound},
		{name: "not a number", args: []string{"history", "show", "abc"}, errText: `invalid run ID "abc"`},
		{name: "zero", args: []string{"history", "show", "0"}, errText: `invalid run ID "0"`},
		{name: "missing id", args: []string{"history", "show"}, errText: "accepts 1 arg(s)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := rootCommand(testConfig(t))
			var out bytes.Buffer
			cmd.SetOut(&out)
			cmd.SetErr(&out)
			cmd.SetArgs(tt.args)

			err := cmd.Execute()
			require.Error(t, err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
			if tt.errText != "" {
				assert.Contains(t, err.Error(), tt.errText)
			}
		})
	}
}

func TestHistoryClearCommand(t *testing.T) {
	cfg := testConfig(t)
	cmd := rootCommand(cfg)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"history", "clear"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "Cleared all runs")
}

func TestHistoryClearCommand_UnknownID(t *testing.T) {
	cmd := rootCommand(testConfig(t))
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"history", "clear", "--id", "7"})

	assert.ErrorIs(t, cmd.Execute(), app.ErrRunNotFound)
}
