package gopsutil

import (
	"context"
	"os"
	"os/exec"
	"testing"

	"github.com/procwarden/procwarden/scanner/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSourceEnumerateIncludesSelf(t *testing.T) {
	src := NewSource()
	assert.Equal(t, BackendName, src.Name())

	got, err := src.Enumerate(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, got)

	self := int32(os.Getpid())
	var found *domain.ProcessDescriptor
	for i := range got {
		if got[i].PID == self {
			found = &got[i]
			break
		}
	}
	require.NotNil(t, found, "own pid %d should be enumerated", self)
	assert.NotEmpty(t, found.ExecutableName)
	assert.Empty(t, found.ExecutablePath, "paths are resolved lazily")

	path, err := src.ResolvePath(context.Background(), *found)
	require.NoError(t, err)
	assert.NotEmpty(t, path)
}

func TestSourceResolvePathMissingProcess(t *testing.T) {
	_, err := NewSource().ResolvePath(context.Background(), domain.ProcessDescriptor{PID: 1 << 30})
	assert.ErrorIs(t, err, domain.ErrProcessUnopenable)
}

func TestSourceTerminate(t *testing.T) {
	sleepBin, err := exec.LookPath("sleep")
	if err != nil {
		t.Skip("sleep binary not available")
	}
	cmd := exec.Command(sleepBin, "30")
	require.NoError(t, cmd.Start())
	pid := int32(cmd.Process.Pid)

	src := NewSource()
	require.NoError(t, src.Terminate(context.Background(), pid))
	_ = cmd.Wait()

	assert.NoError(t, src.Terminate(context.Background(), pid), "a process that is already gone counts as terminated")
	assert.ErrorIs(t, src.Terminate(context.Background(), -1), domain.ErrTerminationFailed)
}
