package build

import (
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCurrent(t *testing.T) {
	info := Current()

	assert.Equal(t, Version, info.Version)
	assert.Equal(t, runtime.Version(), info.GoVersion)
	assert.True(t, strings.Contains(info.Platform, "/"))
	assert.NotEmpty(t, info.Commit)
}

func TestCurrent_LdflagsWin(t *testing.T) {
	prevCommit, prevDate := Commit, BuildDate
	t.Cleanup(func() { Commit, BuildDate = prevCommit, prevDate })
	Commit, BuildDate = "abc123", "2026-01-02"

	info := Current()

	assert.Equal(t, "abc123", info.Commit)
	assert.Equal(t, "2026-01-02", info.BuildDate)
}

func TestIsDevBuild(t *testing.T) {
	assert.True(t, IsDevBuild())
}
