package devserver

import (
	"bytes"
	"fmt"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// reloadMarker tags the injected script so pages are only rewritten once.
const reloadMarker = "data-portfolio-reload"

// reloadClient reconnects nothing and keeps no state: a RELOAD for css
// re-fetches the style sheets, anything else reloads the page.
const reloadClient = `(function () {
  var proto = location.protocol === "https:" ? "wss://" : "ws://";
  var ws = new WebSocket(proto + location.host + "` + ReloadPath + `");
  ws.onopen = function () { ws.send(JSON.stringify({ type: "HELLO" })); };
  ws.onmessage = function (e) {
    var msg = JSON.parse(e.data);
    if (msg.type !== "RELOAD") return;
    if (msg.target === "css") {
      document.querySelectorAll('link[rel="stylesheet"]').forEach(function (link) {
        var url = new URL(link.href);
        url.searchParams.set("t", Date.now());
        link.href = url.toString();
      });
      return;
    }
    location.reload();
  };
})();`

// InjectReloadScript appends the live-reload client as the last element of
// the body.
func InjectReloadScript(page []byte) ([]byte, error) {
	doc, err := html.Parse(bytes.NewReader(page))
	if err != nil {
		return nil, fmt.Errorf("parse page: %w", err)
	}

	body := findElement(doc, atom.Body)
	if body == nil {
		return nil, fmt.Errorf("page has no body")
	}
	if hasReloadScript(body) {
		return page, nil
	}

	script := &html.Node{
		Type:     html.ElementNode,
		Data:     "script",
		DataAtom: atom.Script,
		Attr:     []html.Attribute{{Key: reloadMarker}},
	}
	script.AppendChild(&html.Node{Type: html.TextNode, Data: reloadClient})
	body.AppendChild(script)

	var buf bytes.Buffer
	if err := html.Render(&buf, doc); err != nil {
		return nil, fmt.Errorf("render page: %w", err)
	}
	return buf.Bytes(), nil
}

func findElement(n *html.Node, a atom.Atom) *html.Node {
	if n.Type == html.ElementNode && n.DataAtom == a {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findElement(c, a); found != nil {
			return found
		}
	}
	return nil
}

func hasReloadScript(body *html.Node) bool {
	for c := body.FirstChild; c != nil; c = c.NextSibling {
		if c.DataAtom != atom.Script {
			continue
		}
		for _, attr := range c.Attr {
			if attr.Key == reloadMarker {
				return true
			}
		}
	}
	return false
}
