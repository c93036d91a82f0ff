//go:build !js || !wasm
// +build !js !wasm

package dom

// Browser binds the dom interfaces to the page (stub for non-wasm builds).
type Browser struct{}

// NewBrowser always fails outside js/wasm.
func NewBrowser() (*Browser, error) {
	return nil, ErrUnsupported
}

// Window returns nil (stub).
func (b *Browser) Window() Window { return nil }

// Document returns nil (stub).
func (b *Browser) Document() Document { return nil }
