package logger

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestStringToLevel(t *testing.T) {
	tests := []struct {
		value   string
		want    zapcore.Level
		wantErr bool
	}{
		{value: "debug", want: zapcore.DebugLevel},
		{value: "INFO", want: zapcore.InfoLevel},
		{value: "error", want: zapcore.ErrorLevel},
		{value: "1", want: zapcore.DebugLevel},
		{value: "4", want: zapcore.Level(-4)},
		{value: "0", wantErr: true},
		{value: "-2", wantErr: true},
		{value: "loud", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			level, err := StringToLevel(tt.value)
			if tt.wantErr {
				require.EqualError(t, err, `invalid log level "`+tt.value+`"`)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, level)
		})
	}
}

func TestLogger_DefaultsToErrorsOnly(t *testing.T) {
	t.Setenv(SWFDEBUG_LOG_FILE, "")
	var out bytes.Buffer
	log := NewWithOutput("swfdebug", zapcore.AddSync(&out))

	log.Info("resolving")
	log.V(1).Info("chose rule")
	log.Flush()
	require.Empty(t, out.String())

	log.Error(nil, "resolution failed")
	log.Flush()
	require.Contains(t, out.String(), "resolution failed")
	require.Contains(t, out.String(), "swfdebug")
}

func TestLogger_LevelFlag(t *testing.T) {
	t.Setenv(SWFDEBUG_LOG_FILE, "")
	var out bytes.Buffer
	log := NewWithOutput("swfdebug", zapcore.AddSync(&out))

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	log.AddLevelFlag(flags)
	require.NoError(t, flags.Parse([]string{"-v", "1"}))
	require.Equal(t, zapcore.DebugLevel, log.Level())
	require.Equal(t, "1", flags.Lookup("verbosity").Value.String())

	log.V(1).Info("chose rule", "rule", "output")
	log.V(2).Info("hidden")
	log.Flush()
	require.Contains(t, out.String(), "chose rule")
	require.NotContains(t, out.String(), "hidden")

	require.Error(t, flags.Parse([]string{"--verbosity", "loud"}))
}

func TestLogger_LogFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "swfdebug.log")
	t.Setenv(SWFDEBUG_LOG_FILE, path)
	log := NewWithOutput("swfdebug", zapcore.AddSync(io.Discard))

	log.V(1).Info("chose rule", "rule", "output")
	log.Flush()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), `"msg":"chose rule"`)
	require.Contains(t, string(data), `"rule":"output"`)

	// the file is closed once flushed
	log.V(1).Info("after flush")
	require.NotPanics(t, log.Flush)

	data, err = os.ReadFile(path)
	require.NoError(t, err)
	require.NotContains(t, string(data), "after flush")
}

func TestLogger_LogFileUnavailable(t *testing.T) {
	t.Setenv(SWFDEBUG_LOG_FILE, filepath.Join(t.TempDir(), "missing", "swfdebug.log"))
	var out bytes.Buffer
	log := NewWithOutput("swfdebug", zapcore.AddSync(&out))

	require.Contains(t, out.String(), "failed to enable log file output")
	require.NotPanics(t, log.Flush)
}
