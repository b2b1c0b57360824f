package rod

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.False(t, cfg.Headless)
	assert.Equal(t, defaultTimeout, cfg.Timeout)
	assert.Equal(t, defaultSlowMotion, cfg.SlowMotion)
	assert.False(t, cfg.NoSandbox, "Should be secure by default")
	assert.False(t, cfg.DevTools)
	assert.Empty(t, cfg.Bin)
}

func TestSelectors(t *testing.T) {
	assert.Equal(t, "#prompt", promptSelector)
	assert.Equal(t, "#response", responseSelector)
	assert.Equal(t, "button", buttonSelector)
}
