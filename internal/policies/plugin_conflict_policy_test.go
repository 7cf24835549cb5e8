package policies

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPluginLocationWins(t *testing.T) {
	tests := []struct {
		name       string
		incumbent  string
		challenger string
		expected   bool
	}{
		{"enabled displaces disabled", "disabled/admin.smx", "admin.smx", true},
		{"disabled never displaces enabled", "admin.smx", "disabled/admin.smx", false},
		{"smaller path wins within enabled", "custom/admin.smx", "admin.smx", true},
		{"larger path loses within enabled", "admin.smx", "custom/admin.smx", false},
		{"smaller path wins within disabled", "disabled/b/admin.smx", "disabled/a/admin.smx", true},
		{"equal paths do not displace", "admin.smx", "admin.smx", false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, PluginLocationWins(tc.incumbent, tc.challenger))
		})
	}
}

func TestDisabledLocation(t *testing.T) {
	assert.True(t, DisabledLocation("disabled/admin.smx"))
	assert.True(t, DisabledLocation("disabled/sub/admin.smx"))
	assert.False(t, DisabledLocation("admin.smx"))
	assert.False(t, DisabledLocation("custom/disabled/admin.smx"))
}
