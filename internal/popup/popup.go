// Package popup opens and closes the standalone modal: a full-page overlay
// with an iframe holder on top, styled by the site's layout stylesheet.
package popup

import (
	"fmt"

	"github.com/solatis/domrules/internal/dom"
	"github.com/solatis/domrules/internal/types"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

const (
	OverlayClass = "tad-overlay"
	HolderClass  = "tad-holder"
)

// Options locates the popup's resources.
type Options struct {
	StylesheetURL string
	FrameURL      string
}

// DefaultOptions returns the resource URLs below base, e.g.
// "http://localhost:8000".
func DefaultOptions(base string) Options {
	return Options{
		StylesheetURL: base + "/static/css/layout.css",
		FrameURL:      base + "/static/standalone.html",
	}
}

// Show appends the stylesheet link, the overlay and the iframe holder to
// the document body, in that order.
func Show(doc *html.Node, opts Options) error {
	body, err := (dom.HTML{}).QueryOne(doc, "body")
	if err != nil {
		return err
	}
	if body == nil {
		return fmt.Errorf("show popup: document has no body")
	}

	elements := []struct {
		tag   atom.Atom
		attrs [][2]string
	}{
		{atom.Link, [][2]string{{"rel", "stylesheet"}, {"href", opts.StylesheetURL}}},
		{atom.Div, [][2]string{{"class", OverlayClass}}},
		{atom.Iframe, [][2]string{
			{"class", HolderClass},
			{"scrolling", "no"},
			{"allowtransparency", "true"},
			{"src", opts.FrameURL},
		}},
	}
	for _, e := range elements {
		el := &html.Node{Type: html.ElementNode, DataAtom: e.tag, Data: e.tag.String()}
		for _, a := range e.attrs {
			if err := (dom.HTML{}).SetAttr(el, a[0], a[1]); err != nil {
				return err
			}
		}
		body.AppendChild(el)
	}
	return nil
}

// Close removes the first holder and then the first overlay. Without a
// holder nothing is removed.
func Close(doc *html.Node) error {
	for _, class := range []string{HolderClass, OverlayClass} {
		found := dom.ElementsByClassName(doc, class)
		if len(found) == 0 {
			return fmt.Errorf("%w: no .%s element", types.ErrNoPopup, class)
		}
		found[0].Parent.RemoveChild(found[0])
	}
	return nil
}
