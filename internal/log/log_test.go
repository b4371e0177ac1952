package log_test

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/op/go-logging.v1"

	"kdcsim/internal/log"
)

func TestLevelFromString(t *testing.T) {
	for in, want := range map[string]logging.Level{
		"ERROR":   logging.ERROR,
		"warning": logging.WARNING,
		"":        logging.NOTICE,
		"Info":    logging.INFO,
		"DEBUG":   logging.DEBUG,
	} {
		got, err := log.LevelFromString(in)
		require.NoError(t, err, in)
		require.Equal(t, want, got, in)
	}
	_, err := log.LevelFromString("LOUD")
	require.Error(t, err)
}

func TestBackend_FiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	b := log.NewWithWriter(&buf, logging.NOTICE)
	l := b.GetLogger("test-filter")

	l.Debug("hidden")
	l.Notice("shown")

	require.NotContains(t, buf.String(), "hidden")
	require.Contains(t, buf.String(), "test-filter: shown")
}

func TestNew_FileAndDisable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kdc.log")
	b, err := log.New(path, "INFO", false)
	require.NoError(t, err)
	b.GetLogger("file").Info("to file")
	require.FileExists(t, path)

	_, err = log.New("", "nope", false)
	require.Error(t, err)

	b, err = log.New("", "DEBUG", true)
	require.NoError(t, err)
	b.GetLogger("quiet").Error("dropped")
}
