package cli

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/retroenv/c166disasm/internal/options"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

func executeArgs(t *testing.T, args ...string) (options.Program, bool, error) {
	t.Helper()

	var got options.Program
	var called bool
	cmd := NewRootCommand("test", func(_ context.Context, opts options.Program) error {
		got = opts
		called = true
		return nil
	})
	cmd.SetArgs(args)
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})

	err := cmd.ExecuteContext(context.Background())
	return got, called, err
}

func TestRootCommand_Options(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		regions []string
		format  string
		color   string
		custom  bool
		start   int
		end     int
	}{
		{
			name:    "default flags",
			args:    []string{"firmware.bin"},
			regions: []string{"bootloader"},
			format:  "text",
			color:   "auto",
		},
		{
			name:    "regions",
			args:    []string{"-r", "program1", "--region", "program2", "firmware.bin"},
			regions: []string{"program1", "program2"},
			format:  "text",
			color:   "auto",
		},
		{
			name:    "comma separated regions",
			args:    []string{"--region=program1,program2", "firmware.bin"},
			regions: []string{"program1", "program2"},
			format:  "text",
			color:   "auto",
		},
		{
			name:    "json format",
			args:    []string{"--format", "JSON", "--color", "never", "firmware.bin"},
			regions: []string{"bootloader"},
			format:  "json",
			color:   "never",
		},
		{
			name:    "custom region",
			args:    []string{"--start", "0x10", "--end", "64", "firmware.bin"},
			regions: []string{"bootloader"},
			format:  "text",
			color:   "auto",
			custom:  true,
			start:   0x10,
			end:     64,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts, called, err := executeArgs(t, tt.args...)
			assert.NoError(t, err)
			assert.True(t, called)
			assert.Equal(t, "firmware.bin", opts.Input)
			assert.Equal(t, strings.Join(tt.regions, ","), strings.Join(opts.Regions, ","))
			assert.Equal(t, tt.format, opts.Format)
			assert.Equal(t, tt.color, opts.Color)
			assert.Equal(t, tt.custom, opts.Custom)
			assert.Equal(t, tt.start, opts.Start)
			assert.Equal(t, tt.end, opts.End)
		})
	}
}

func TestRootCommand_UsageErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"missing file", nil},
		{"unsupported format", []string{"--format", "xml", "firmware.bin"}},
		{"unsupported color", []string{"--color", "sometimes", "firmware.bin"}},
		{"start without end", []string{"--start", "0x10", "firmware.bin"}},
		{"region and custom range", []string{"-r", "program1", "--start", "0", "--end", "4", "firmware.bin"}},
		{"invalid offset", []string{"--start", "0xzz", "--end", "4", "firmware.bin"}},
		{"negative offset", []string{"--start", "-4", "--end", "4", "firmware.bin"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, called, err := executeArgs(t, tt.args...)
			assert.False(t, called)

			var usageErr *UsageError
			assert.True(t, errors.As(err, &usageErr))
		})
	}
}

func TestRootCommand_ListRegionsWithoutFile(t *testing.T) {
	opts, called, err := executeArgs(t, "--list-regions")
	assert.NoError(t, err)
	assert.True(t, called)
	assert.True(t, opts.ListRegions)
	assert.Equal(t, "", opts.Input)
}

func TestRootCommand_TooManyArguments(t *testing.T) {
	_, called, err := executeArgs(t, "a.bin", "b.bin")
	assert.Error(t, err)
	assert.False(t, called)
}

func TestUsageError_ShowUsage(t *testing.T) {
	buf := &bytes.Buffer{}
	err := &UsageError{}
	err.ShowUsage(buf)

	assert.Equal(t, "usage: c166disasm [options] <file.bin>\n", buf.String())
	assert.Equal(t, "missing file to disassemble", err.Error())
}

func TestSchemaCommand(t *testing.T) {
	cmd := NewRootCommand("test", func(context.Context, options.Program) error {
		t.Fatal("run should not be called")
		return nil
	})
	buf := &bytes.Buffer{}
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"schema"})

	assert.NoError(t, cmd.ExecuteContext(context.Background()))
	out := buf.String()
	assert.True(t, strings.Contains(out, `"mnemonic"`))
	assert.True(t, strings.Contains(out, `"operands"`))
}

func TestExecute(t *testing.T) {
	tests := []struct {
		name   string
		args   []string
		runErr error
		logged string
	}{
		{"success", []string{"firmware.bin"}, nil, ""},
		{"run error is logged", []string{"firmware.bin"}, errors.New("reserved opcode"), "reserved opcode"},
		{"usage error with message is logged", []string{"--format", "xml", "firmware.bin"}, nil, "unsupported format"},
		{"missing file is not logged", nil, nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logBuf := &bytes.Buffer{}
			cfg := log.DefaultConfig()
			cfg.Output = logBuf
			logger := log.NewWithConfig(cfg)

			cmd := NewRootCommand("test", func(context.Context, options.Program) error {
				return tt.runErr
			})
			err := Execute(context.Background(), cmd, logger, tt.args, &bytes.Buffer{})
			if tt.logged == "" {
				assert.False(t, strings.Contains(logBuf.String(), "failed"))
				return
			}
			assert.Error(t, err)
			assert.True(t, strings.Contains(logBuf.String(), tt.logged))
		})
	}
}
