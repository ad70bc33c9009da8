package popup

import (
	"testing"

	"github.com/solatis/domrules/internal/dom"
	"github.com/solatis/domrules/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

func parseDoc(t *testing.T, src string) *html.Node {
	t.Helper()
	doc, err := dom.ParseString(src)
	require.NoError(t, err)
	return doc
}

func TestShow(t *testing.T) {
	doc := parseDoc(t, `<html><body><p id="content">x</p></body></html>`)

	require.NoError(t, Show(doc, DefaultOptions("http://localhost:8000")))

	body, err := (dom.HTML{}).QueryOne(doc, "body")
	require.NoError(t, err)
	children := (dom.HTML{}).Children(body)
	require.Len(t, children, 4)

	link := children[1]
	assert.Equal(t, "link", link.Data)
	assert.Equal(t, "stylesheet", dom.AttrOr(link, "rel", ""))
	assert.Equal(t, "http://localhost:8000/static/css/layout.css", dom.AttrOr(link, "href", ""))

	overlay := children[2]
	assert.Equal(t, "div", overlay.Data)
	assert.Equal(t, OverlayClass, dom.AttrOr(overlay, "class", ""))

	holder := children[3]
	assert.Equal(t, "iframe", holder.Data)
	assert.Equal(t, HolderClass, dom.AttrOr(holder, "class", ""))
	assert.Equal(t, "no", dom.AttrOr(holder, "scrolling", ""))
	assert.Equal(t, "true", dom.AttrOr(holder, "allowtransparency", ""))
	assert.Equal(t, "http://localhost:8000/static/standalone.html", dom.AttrOr(holder, "src", ""))

	out, err := dom.Render(body)
	require.NoError(t, err)
	assert.Contains(t, out, `<iframe class="tad-holder" scrolling="no" allowtransparency="true" src="http://localhost:8000/static/standalone.html"></iframe>`)
}

func TestClose(t *testing.T) {
	doc := parseDoc(t, `<html><body></body></html>`)
	opts := DefaultOptions("")
	require.NoError(t, Show(doc, opts))
	require.NoError(t, Show(doc, opts))

	require.NoError(t, Close(doc))
	assert.Len(t, dom.ElementsByClassName(doc, HolderClass), 1)
	assert.Len(t, dom.ElementsByClassName(doc, OverlayClass), 1)

	require.NoError(t, Close(doc))
	assert.Empty(t, dom.ElementsByClassName(doc, HolderClass))
	assert.Empty(t, dom.ElementsByClassName(doc, OverlayClass))

	assert.ErrorIs(t, Close(doc), types.ErrNoPopup)
}

func TestCloseWithoutHolderKeepsOverlay(t *testing.T) {
	doc := parseDoc(t, `<div class="tad-overlay"></div>`)

	err := Close(doc)
	assert.ErrorIs(t, err, types.ErrNoPopup)
	assert.Len(t, dom.ElementsByClassName(doc, OverlayClass), 1)
}

func TestShowWithoutBody(t *testing.T) {
	frag := &html.Node{Type: html.DocumentNode}
	assert.Error(t, Show(frag, DefaultOptions("")))
}
