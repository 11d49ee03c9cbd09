package gekko

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestApplyPendingResize(t *testing.T) {
	s := &WindowState{FramebufferWidth: 800, FramebufferHeight: 600}

	applyPendingResize(s)
	assert.False(t, s.Resized)

	s.pendingWidth, s.pendingHeight, s.pendingResize = 1024, 768, true
	applyPendingResize(s)
	assert.True(t, s.Resized)
	assert.Equal(t, 1024, s.FramebufferWidth)
	assert.Equal(t, 768, s.FramebufferHeight)

	// resized only reports the frame the size changed
	applyPendingResize(s)
	assert.False(t, s.Resized)

	s.pendingWidth, s.pendingHeight, s.pendingResize = 1024, 768, true
	applyPendingResize(s)
	assert.False(t, s.Resized, "same size is not a resize")
}

func TestWindowState_Aspect(t *testing.T) {
	assert.Equal(t, float32(2), (&WindowState{FramebufferWidth: 200, FramebufferHeight: 100}).Aspect())
	assert.Equal(t, float32(1), (&WindowState{FramebufferWidth: 200}).Aspect())
}
