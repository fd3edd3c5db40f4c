package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppBuildInfo(t *testing.T) {
	info := NewAppBuildInfo(" v1.0.0 ", "2026-10-15", "")

	assert.Equal(t, "v1.0.0", info.BuildVersion())
	assert.Equal(t, "2026-10-15", info.BuildDate())
	assert.Empty(t, info.BuildCommit())
	assert.Equal(t, "Build version: v1.0.0\nBuild date: 2026-10-15\nBuild commit: N/A", info.String())
}

func TestAppBuildInfo_Zero(t *testing.T) {
	assert.Equal(t, "Build version: N/A\nBuild date: N/A\nBuild commit: N/A", AppBuildInfo{}.String())
}
