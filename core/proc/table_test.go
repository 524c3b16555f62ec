package proc

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatTicks(t *testing.T) {
	cases := []struct {
		ticks    uint64
		expected string
	}{
		{0, "00:00:00"},
		{59, "00:00:59"},
		{60, "00:01:00"},
		{3599, "00:59:59"},
		{3600, "01:00:00"},
		{3661, "01:01:01"},
		{360000, "100:00:00"},
	}

	for _, tc := range cases {
		t.Run(tc.expected, func(t *testing.T) {
			assert.Equal(t, tc.expected, FormatTicks(tc.ticks))
			assert.Equal(t, tc.expected, Record{UserTicks: tc.ticks}.Time())
		})
	}
}

func TestSecondsToTicks(t *testing.T) {
	assert.Equal(t, uint64(0), secondsToTicks(0))
	assert.Equal(t, uint64(0), secondsToTicks(-1))
	assert.Equal(t, uint64(ticksPerSecond()*2), secondsToTicks(2))
}

func TestSortByPID(t *testing.T) {
	records := []Record{{PID: 30}, {PID: 1}, {PID: 12}}

	SortByPID(records)

	assert.Equal(t, []Record{{PID: 1}, {PID: 12}, {PID: 30}}, records)
}

func TestListIncludesSelf(t *testing.T) {
	records, err := List(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, records)

	self := int32(os.Getpid())
	for _, r := range records {
		if r.PID == self {
			assert.NotEmpty(t, r.Command)
			return
		}
	}
	t.Fatalf("pid %d not found in process table", self)
}

func TestListSurvivesExitingProcesses(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for ctx.Err() == nil {
			cmd := exec.Command("true")
			if err := cmd.Start(); err != nil {
				return
			}
			_ = cmd.Process.Kill()
			_ = cmd.Wait()
		}
	}()

	for i := 0; i < 20; i++ {
		records, err := List(context.Background())
		require.NoError(t, err)
		assert.NotEmpty(t, records)
	}

	cancel()
	wg.Wait()
}

func TestTruncateComm(t *testing.T) {
	cases := map[string]string{
		"":                         "",
		"sleep":                    "sleep",
		"exactlyfifteen!":          "exactlyfifteen!",
		"averyverylongprocessname": "averyverylongpr",
	}

	for name, expected := range cases {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, expected, truncateComm(name))
		})
	}
}

func TestListTruncatesLongNames(t *testing.T) {
	sleepPath, err := exec.LookPath("sleep")
	require.NoError(t, err)
	contents, err := os.ReadFile(sleepPath)
	require.NoError(t, err)

	longName := filepath.Join(t.TempDir(), "averyverylongprocessname")
	require.NoError(t, os.WriteFile(longName, contents, 0700))

	cmd := exec.Command(longName, "30")
	require.NoError(t, cmd.Start())
	defer func() {
		_ = cmd.Process.Kill()
		_ = cmd.Wait()
	}()

	records, err := List(context.Background())
	require.NoError(t, err)

	for _, r := range records {
		if r.PID == int32(cmd.Process.Pid) {
			assert.Equal(t, "averyverylongpr", r.Command)
			return
		}
	}
	t.Fatalf("pid %d not found in process table", cmd.Process.Pid)
}
