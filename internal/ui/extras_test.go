package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cdelgado/portfolio/pkg/dom/domtest"
)

func TestSmoothScroll(t *testing.T) {
	h := newHarness(t, page)
	require.True(t, NewSmoothScroll(h.env).Init())

	ev := h.doc.Find(`a.nav-link[href="#about"]`).Dispatch("click")
	assert.True(t, ev.DefaultPrevented())
	count, smooth := h.doc.Find("#about").ScrolledIntoView()
	assert.Equal(t, 1, count)
	assert.True(t, smooth)

	ev = h.doc.Find(`a.logo`).Dispatch("click")
	assert.False(t, ev.DefaultPrevented(), "bare # keeps the default")

	ev = h.doc.Find(`a.ghost`).Dispatch("click")
	assert.False(t, ev.DefaultPrevented(), "unknown target keeps the default")
}

func TestSmoothScroll_NoLinks(t *testing.T) {
	h := newHarness(t, `<html><body><a href="/elsewhere">x</a></body></html>`)
	assert.False(t, NewSmoothScroll(h.env).Init())
}

func TestScrollIndicator(t *testing.T) {
	h := newHarness(t, page)
	require.True(t, NewScrollIndicator(h.env).Init())
	indicator := h.doc.Find(".scroll-indicator")

	h.win.ScrollTo(200)
	assert.Equal(t, "1", indicator.Style("opacity"))
	assert.Equal(t, "auto", indicator.Style("pointer-events"))

	h.win.ScrollTo(201)
	assert.Equal(t, "0", indicator.Style("opacity"))
	assert.Equal(t, "none", indicator.Style("pointer-events"))

	h.win.ScrollTo(0)
	assert.Equal(t, "1", indicator.Style("opacity"))
}

func TestLazyImages_Native(t *testing.T) {
	h := newHarness(t, page)
	require.True(t, NewLazyImages(h.env).Init())

	imgs := h.doc.FindAll(`img[loading="lazy"]`)
	require.Len(t, imgs, 2)
	src, _ := imgs[0].Attr("src")
	assert.Equal(t, "/img/a.png", src)
	_, ok := imgs[1].Attr("src")
	assert.False(t, ok, "images without data-src are left alone")
	assert.Empty(t, h.doc.FindAll("script"))
}

func TestLazyImages_Fallback(t *testing.T) {
	h := newHarness(t, page, func(doc *domtest.Document) { doc.Window().SetNativeLazyLoading(false) })
	require.True(t, NewLazyImages(h.env).Init())

	scripts := h.doc.FindAll("body > script")
	require.Len(t, scripts, 1)
	src, _ := scripts[0].Attr("src")
	assert.Equal(t, "https://cdnjs.cloudflare.com/ajax/libs/lazysizes/5.3.2/lazysizes.min.js", src)

	_, ok := h.doc.FindAll(`img[loading="lazy"]`)[0].Attr("src")
	assert.False(t, ok)
}

func TestAccessibility_KeyboardButtons(t *testing.T) {
	h := newHarness(t, page)
	require.True(t, NewAccessibility(h.env).Init())
	fake := h.doc.Find(".fake-button")
	real := h.doc.Find(".real-button")

	ev := fake.KeyDown("Enter")
	assert.True(t, ev.DefaultPrevented())
	assert.Equal(t, 1, fake.Clicks())

	fake.KeyDown(" ")
	assert.Equal(t, 2, fake.Clicks())

	ev = fake.KeyDown("a")
	assert.False(t, ev.DefaultPrevented())
	assert.Equal(t, 2, fake.Clicks())

	real.KeyDown("Enter")
	assert.Equal(t, 0, real.Clicks(), "native buttons handle Enter themselves")
}

func TestAccessibility_FocusMode(t *testing.T) {
	h := newHarness(t, page)
	require.True(t, NewAccessibility(h.env).Init())
	body := h.doc.Find("body")

	h.doc.Dispatch("mousedown")
	assert.True(t, body.HasClass("using-mouse"))

	h.doc.PressKey("Enter")
	assert.True(t, body.HasClass("using-mouse"))

	h.doc.PressKey("Tab")
	assert.False(t, body.HasClass("using-mouse"))
}

func TestAnalytics(t *testing.T) {
	h := newHarness(t, page)
	require.True(t, NewAnalytics(h.env).Init())

	h.doc.Find(`a[target="_blank"]`).Click()
	h.doc.Find(`a[download]`).Click()

	logs := h.logs.String()
	assert.Contains(t, logs, "external link clicked")
	assert.Contains(t, logs, "github.com")
	assert.Contains(t, logs, "download initiated")
	assert.Contains(t, logs, "cv.pdf")
}

func TestLifecycle(t *testing.T) {
	h := newHarness(t, page)
	require.True(t, NewLifecycle(h.env).Init())

	h.doc.SetHidden(true)
	h.doc.SetHidden(false)
	h.win.Dispatch("offline")
	h.win.Dispatch("online")

	logs := h.logs.String()
	for _, want := range []string{"page hidden", "page visible", "connection lost", "connection restored"} {
		assert.Contains(t, logs, want)
	}
}
