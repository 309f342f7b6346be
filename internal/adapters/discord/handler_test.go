package discord

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"draftbot/internal/config"
)

func TestRedrawLockReuseAndForget(t *testing.T) {
	h := NewHandler(nil, nil, nil, keyTranslator{}, &config.Config{TickInterval: time.Minute})

	mu1 := h.redrawLock("m1")
	assert.Same(t, mu1, h.redrawLock("m1"), "one lock per message")
	h.redrawLock("m2")

	h.forgetRedrawLock("m1")
	h.forgetRedrawLock("")

	h.redrawMu.Lock()
	_, ok := h.redrawLocks["m1"]
	remaining := len(h.redrawLocks)
	h.redrawMu.Unlock()
	assert.False(t, ok, "forgotten locks leave the table")
	assert.Equal(t, 1, remaining)

	assert.NotSame(t, mu1, h.redrawLock("m1"), "re-registering mints a fresh lock")
}
