package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestScrollDeltaFullyVisible(t *testing.T) {
	container := Box{Top: 0, Bottom: 600}
	popover := Box{Top: 200, Bottom: 400}
	assert.Equal(t, 0.0, ScrollDelta(popover, container))
}

func TestScrollDeltaClippedBelow(t *testing.T) {
	container := Box{Top: 0, Bottom: 600}
	// Bottom edge inside the 20px padding band counts as clipped.
	popover := Box{Top: 400, Bottom: 590}
	assert.Equal(t, 590-600+40.0, ScrollDelta(popover, container))

	popover = Box{Top: 500, Bottom: 700}
	assert.Equal(t, 700-600+40.0, ScrollDelta(popover, container))
}

func TestScrollDeltaUnderHeader(t *testing.T) {
	container := Box{Top: 100, Bottom: 700}
	// Top edge inside the 80px header margin scrolls up to the 100px target.
	popover := Box{Top: 150, Bottom: 300}
	assert.Equal(t, 150-(100+100.0), ScrollDelta(popover, container))
}

func TestScrollDeltaBottomWinsOverTop(t *testing.T) {
	// A popover taller than the container clips both ways; the bottom rule
	// is checked first.
	container := Box{Top: 0, Bottom: 300}
	popover := Box{Top: 20, Bottom: 350}
	assert.Equal(t, 350-300+40.0, ScrollDelta(popover, container))
}

func TestTimerSchedulerCancel(t *testing.T) {
	cancel := TimerScheduler{}.Schedule(time.Hour, func() {
		t.Error("fired after cancel")
	})
	cancel()
	cancel() // safe to call twice
}
