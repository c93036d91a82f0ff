package ui

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var konami = []string{"ArrowUp", "ArrowUp", "ArrowDown", "ArrowDown", "ArrowLeft", "ArrowRight", "ArrowLeft", "ArrowRight", "b", "a"}

func TestEasterEgg_Activates(t *testing.T) {
	h := newHarness(t, page)
	egg := NewEasterEgg(h.env)
	require.True(t, egg.Init())
	body := h.doc.Find("body")

	for _, k := range konami {
		h.doc.PressKey(k)
	}

	assert.Equal(t, "rainbow 2s linear infinite", body.Style("animation"))
	assert.Len(t, h.doc.FindAll("head > style"), 1)
	assert.Contains(t, h.doc.Find("head > style").Text(), "@keyframes rainbow")
	assert.Equal(t, 0, egg.Progress())
	assert.Contains(t, h.logs.String(), "easter egg activated")

	h.sched.Advance(5 * time.Second)
	assert.Empty(t, body.Style("animation"))
}

func TestEasterEgg_WrongKeyResets(t *testing.T) {
	h := newHarness(t, page)
	egg := NewEasterEgg(h.env)
	require.True(t, egg.Init())

	for _, k := range konami[:5] {
		egg.HandleKey(k)
	}
	assert.Equal(t, 5, egg.Progress())

	egg.HandleKey("x")
	assert.Equal(t, 0, egg.Progress())

	egg.HandleKey("ArrowUp")
	egg.HandleKey("ArrowUp")
	egg.HandleKey("ArrowUp")
	assert.Equal(t, 0, egg.Progress(), "a third ArrowUp is a wrong key")
}

func TestEasterEgg_SecondActivation(t *testing.T) {
	h := newHarness(t, page)
	egg := NewEasterEgg(h.env)
	require.True(t, egg.Init())
	body := h.doc.Find("body")

	egg.Activate()
	h.sched.Advance(3 * time.Second)
	egg.Activate()
	h.sched.Advance(3 * time.Second)
	assert.Equal(t, "rainbow 2s linear infinite", body.Style("animation"), "the second activation extends the effect")
	assert.Len(t, h.doc.FindAll("head > style"), 1, "keyframes are added once")

	h.sched.Advance(2 * time.Second)
	assert.Empty(t, body.Style("animation"))
}
