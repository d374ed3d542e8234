package utils

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMath_MinMaxClamp(t *testing.T) {
	assert.Equal(t, 3, Min(3, 7))
	assert.Equal(t, 3, Min(7, 3))
	assert.Equal(t, 7, Max(3, 7))
	assert.Equal(t, 0.5, Max(-1.0, 0.5))

	assert.Equal(t, 0, Clamp(-12, 0, 255))
	assert.Equal(t, 255, Clamp(300, 0, 255))
	assert.Equal(t, 100, Clamp(100, 0, 255))
}

func TestFormat_FormatTime(t *testing.T) {
	assert.Equal(t, "1.50s", FormatTime(1500*time.Millisecond))
	assert.Equal(t, "2m 5.00s", FormatTime(2*time.Minute+5*time.Second))
	assert.Equal(t, "1h 1m 1.00s", FormatTime(time.Hour+time.Minute+time.Second))
	assert.Equal(t, "1d 2h 0m 0.00s", FormatTime(26*time.Hour))
}

func TestFormat_DecorateText(t *testing.T) {
	s := DecorateText("saved", SuccessMessage)
	assert.True(t, strings.HasPrefix(s, SuccessColor))
	assert.True(t, strings.HasSuffix(s, DefaultColor))
	assert.Equal(t, "plain", DecorateText("plain", MessageType(42)))
}
