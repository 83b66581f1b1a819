package version

import (
	"encoding/json"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet_DevelopmentDefaults(t *testing.T) {
	info := Get()

	assert.Equal(t, "dev", info.Version)
	assert.Equal(t, "unknown", info.Commit)
	assert.Equal(t, "unknown", info.BuildTime)
	assert.Equal(t, runtime.Version(), info.GoVersion)
}

func TestInfo_JSONFieldNames(t *testing.T) {
	raw, err := json.Marshal(Get())
	require.NoError(t, err)

	var body map[string]string
	require.NoError(t, json.Unmarshal(raw, &body))

	// Field names are the /version endpoint contract
	assert.Contains(t, body, "version")
	assert.Contains(t, body, "commit")
	assert.Contains(t, body, "build_time")
	assert.Contains(t, body, "go_version")
}
