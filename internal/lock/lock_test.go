package lock_test

import (
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codeberg.org/mutker/displayctl/internal/errors"
	"codeberg.org/mutker/displayctl/internal/lock"
)

func TestAcquireRelease(t *testing.T) {
	l := lock.New(t.TempDir())

	require.NoError(t, l.Acquire())
	data, err := os.ReadFile(l.Path())
	require.NoError(t, err)
	assert.Equal(t, strconv.Itoa(os.Getpid()), string(data))

	require.NoError(t, l.Acquire())

	require.NoError(t, l.Release())
	_, err = os.Stat(l.Path())
	assert.True(t, os.IsNotExist(err))

	require.NoError(t, l.Release())
}

func TestAcquireHeldByRunningProcess(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "displayctl.pid")
	require.NoError(t, os.WriteFile(path, []byte(strconv.Itoa(os.Getppid())), 0o600))

	l := lock.New(dir)
	err := l.Acquire()
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrAlreadyRunning))

	// the other holder's file is left alone
	require.NoError(t, l.Release())
	_, err = os.Stat(path)
	assert.NoError(t, err)
}

func TestAcquireReclaimsStaleLock(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"dead process", "999999999"},
		{"garbage", "not-a-pid"},
		{"empty", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			require.NoError(t, os.WriteFile(filepath.Join(dir, "displayctl.pid"), []byte(tt.content), 0o600))

			l := lock.New(dir)
			require.NoError(t, l.Acquire())
			defer l.Release()

			data, err := os.ReadFile(l.Path())
			require.NoError(t, err)
			assert.Equal(t, strconv.Itoa(os.Getpid()), string(data))
		})
	}
}

func TestDefaultDir(t *testing.T) {
	assert.Equal(t, filepath.Join(os.TempDir(), "displayctl.pid"), lock.New("").Path())
}
