package proc

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"
)

const helperEnv = "PROCSH_WANT_REPLACE_HELPER"

// TestReplaceHelper isn't a real test, it's the body of the process that
// TestReplace re-executes.
func TestReplaceHelper(t *testing.T) {
	if os.Getenv(helperEnv) != "1" {
		return
	}

	err := Replace("sh", []string{"-c", "echo $$; exit 7"})
	fmt.Fprintln(os.Stderr, "replace returned:", err)
	os.Exit(2)
}

func TestReplace(t *testing.T) {
	cmd := exec.Command(os.Args[0], "-test.run=^TestReplaceHelper$")
	cmd.Env = append(os.Environ(), helperEnv+"=1")
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	err := cmd.Run()

	var exitErr *exec.ExitError
	require.True(t, errors.As(err, &exitErr), "expected exit error, got %v (stderr: %s)", err, stderr)
	assert.Equal(t, 7, exitErr.ExitCode())
	assert.Empty(t, stderr.String())

	// The replaced program keeps the PID of the process that called Replace.
	assert.Equal(t, fmt.Sprintf("%d", cmd.Process.Pid), strings.TrimSpace(stdout.String()))
}

func TestReplaceMissingProgram(t *testing.T) {
	err := Replace("procsh-does-not-exist", nil)

	var launchErr *LaunchError
	require.True(t, errors.As(err, &launchErr))
	assert.Equal(t, StageExec, launchErr.Stage)
	assert.ErrorIs(t, err, exec.ErrNotFound)
	assert.Equal(t, "failed to execute procsh-does-not-exist: executable file not found in $PATH", err.Error())
}

func TestSpawnAndWait(t *testing.T) {
	out := &bytes.Buffer{}

	child, err := SpawnAndWait("sh", []string{"-c", "sleep 0.2; echo done"}, Stdio{Stdout: out})

	require.NoError(t, err)
	assert.Equal(t, "done\n", out.String())
	assert.Greater(t, child.Pid, 0)
}

func TestSpawnAndWaitDiscardsExitStatus(t *testing.T) {
	_, err := SpawnAndWait("false", nil, Stdio{})

	assert.NoError(t, err)
}

func TestSpawnInheritsWorkingDirectory(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)
	wd, err = filepath.EvalSymlinks(wd)
	require.NoError(t, err)
	out := &bytes.Buffer{}

	_, err = SpawnAndWait("sh", []string{"-c", "pwd -P"}, Stdio{Stdout: out})
	require.NoError(t, err)

	assert.Equal(t, wd+"\n", out.String())
}

func TestSpawnMissingProgram(t *testing.T) {
	child, err := Spawn("procsh-does-not-exist", []string{"arg"}, Stdio{})

	assert.Nil(t, child)
	var launchErr *LaunchError
	require.True(t, errors.As(err, &launchErr))
	assert.Equal(t, StageExec, launchErr.Stage)
	assert.Equal(t, "procsh-does-not-exist", launchErr.Program)
	assert.ErrorIs(t, err, exec.ErrNotFound)
}

func TestSpawnNotExecutable(t *testing.T) {
	script := filepath.Join(t.TempDir(), "script.sh")
	require.NoError(t, os.WriteFile(script, []byte("#!/bin/sh\necho hi\n"), 0600))

	_, err := Spawn(script, nil, Stdio{})

	var launchErr *LaunchError
	require.True(t, errors.As(err, &launchErr))
	assert.Equal(t, StageExec, launchErr.Stage)
	assert.ErrorIs(t, err, fs.ErrPermission)
}

func TestLaunchErrorMessages(t *testing.T) {
	execErr := &LaunchError{Stage: StageExec, Program: "foo", Err: errors.New("boom")}
	assert.Equal(t, "failed to execute foo: boom", execErr.Error())

	forkErr := &LaunchError{Stage: StageFork, Program: "foo", Err: errors.New("resource temporarily unavailable")}
	assert.Equal(t, "resource temporarily unavailable", forkErr.Error())

	assert.Equal(t, "exec", StageExec.String())
	assert.Equal(t, "fork", StageFork.String())
}

func TestClassifyStartError(t *testing.T) {
	cases := map[string]struct {
		err   error
		stage Stage
	}{
		"not-found":     {&exec.Error{Name: "x", Err: exec.ErrNotFound}, StageExec},
		"no-such-file":  {&os.PathError{Op: "fork/exec", Path: "/x", Err: unix.ENOENT}, StageExec},
		"permission":    {&os.PathError{Op: "fork/exec", Path: "/x", Err: unix.EACCES}, StageExec},
		"process-limit": {&os.PathError{Op: "fork/exec", Path: "/x", Err: unix.EAGAIN}, StageFork},
		// ENOMEM is attributed to fork even though execve can return it.
		"out-of-memory": {&os.PathError{Op: "fork/exec", Path: "/x", Err: unix.ENOMEM}, StageFork},
		"other":         {errors.New("pipe: too many open files"), StageFork},
	}

	for tn, tc := range cases {
		t.Run(tn, func(t *testing.T) {
			var launchErr *LaunchError
			require.True(t, errors.As(classifyStartError("x", tc.err), &launchErr))
			assert.Equal(t, tc.stage, launchErr.Stage)
		})
	}
}
