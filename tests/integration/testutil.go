// Shared helpers for rentledger CLI integration tests. The tests build
// the binary once and drive it via os/exec against throwaway config and
// data directories.
package integration

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

var (
	rentledgerBin string
	buildOnce     sync.Once
	buildErr      error
	buildTmpDir   string
)

// ensureBinary builds the rentledger binary once and returns its path.
func ensureBinary(t *testing.T) string {
	t.Helper()
	buildOnce.Do(func() {
		buildTmpDir, buildErr = os.MkdirTemp("", "rentledger-cli-test-*")
		if buildErr != nil {
			return
		}
		binPath := filepath.Join(buildTmpDir, "rentledger")
		cmd := exec.Command("go", "build", "-o", binPath, "./cmd/rentledger")
		cmd.Dir = projectRoot()
		cmd.Stdout = os.Stdout
		cmd.Stderr = os.Stderr
		buildErr = cmd.Run()
		if buildErr == nil {
			rentledgerBin = binPath
		}
	})
	require.NoError(t, buildErr, "build rentledger binary")
	return rentledgerBin
}

// projectRoot returns the absolute path to the project root by walking up
// from the working directory until go.mod is found.
func projectRoot() string {
	dir, err := os.Getwd()
	if err != nil {
		panic(err)
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			panic("go.mod not found")
		}
		dir = parent
	}
}

// cliEnv holds the throwaway directories one test run operates on. HOME
// is redirected so exports land in a private Downloads folder.
type cliEnv struct {
	DataDir   string
	ConfigDir string
	Home      string
}

func newCLIEnv(t *testing.T) *cliEnv {
	t.Helper()
	return &cliEnv{
		DataDir:   t.TempDir(),
		ConfigDir: t.TempDir(),
		Home:      t.TempDir(),
	}
}

// run executes the rentledger binary with the given arguments against
// this environment's directories.
func (e *cliEnv) run(t *testing.T, args ...string) (stdout, stderr string, exitCode int) {
	t.Helper()
	bin := ensureBinary(t)
	fullArgs := append([]string{"--data-dir", e.DataDir, "--config-dir", e.ConfigDir}, args...)
	cmd := exec.Command(bin, fullArgs...)
	cmd.Env = append(os.Environ(), "HOME="+e.Home)
	var outBuf, errBuf strings.Builder
	cmd.Stdout = &outBuf
	cmd.Stderr = &errBuf
	err := cmd.Run()
	stdout = outBuf.String()
	stderr = errBuf.String()
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			exitCode = exitErr.ExitCode()
		} else {
			t.Fatalf("run rentledger: %v", err)
		}
	}
	return stdout, stderr, exitCode
}

// mustRun executes the binary and fails the test on a nonzero exit.
func (e *cliEnv) mustRun(t *testing.T, args ...string) string {
	t.Helper()
	stdout, stderr, code := e.run(t, args...)
	require.Equal(t, 0, code, "rentledger %s failed: %s", strings.Join(args, " "), stderr)
	return stdout
}
