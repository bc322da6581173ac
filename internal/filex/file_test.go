package filex

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func chdir(t *testing.T, dir string) func() {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	return func() { _ = os.Chdir(old) }
}

func TestEnsureDir_CreatesWithPerm(t *testing.T) {
	want := filepath.Join(t.TempDir(), "data", "uploads")

	got, err := EnsureDir(want, 0o700)
	require.NoError(t, err)
	require.Equal(t, want, got)

	fi, err := os.Stat(want)
	require.NoError(t, err)
	require.True(t, fi.IsDir())

	if runtime.GOOS != "windows" {
		require.Equal(t, os.FileMode(0o700), fi.Mode().Perm())
	}
}

func TestEnsureDir_RelativeResolvesAgainstCWD(t *testing.T) {
	tmp := t.TempDir()
	defer chdir(t, tmp)()

	got, err := EnsureDir("store", 0o700)
	require.NoError(t, err)

	// TempDir may be behind a symlink (macOS /var -> /private/var).
	require.True(t, strings.HasSuffix(got, string(filepath.Separator)+"store"))
	require.True(t, filepath.IsAbs(got))
}

func TestEnsureDir_Idempotent(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "x")

	first, err := EnsureDir(dir, 0o700)
	require.NoError(t, err)
	second, err := EnsureDir(dir, 0o700)
	require.NoError(t, err)
	require.Equal(t, first, second)
}

func TestEnsureDir_FailsIfFileWithSameNameExists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "taken")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o600))

	_, err := EnsureDir(path, 0o700)
	require.Error(t, err)
}

func TestDefaultDataDir(t *testing.T) {
	require.True(t, strings.HasSuffix(DefaultDataDir(), AppDirName))
}
