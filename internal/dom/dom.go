// Package dom is the capability layer between the rule engine and a document
// tree.
//
// The engine never walks nodes itself. Everything it needs from a DOM (CSS
// queries, closest-ancestor matching, sibling and child navigation, class and
// attribute mutation) is expressed by interface Tree. HTML implements Tree on
// top of golang.org/x/net/html documents, with CSS matching delegated to
// cascadia.
//
// Only element nodes take part in navigation: text, comment and doctype
// nodes are skipped the way a browser's element-sibling accessors skip them.
package dom

import (
	"golang.org/x/net/html"
)

// Tree is the set of DOM capabilities the rule engine relies on.
// Selector arguments are CSS selector groups; invalid selectors return an
// error from the matcher.
type Tree interface {
	// QueryAll returns the descendants of scope matching selector, in
	// document order. scope itself is never part of the result.
	QueryAll(scope *html.Node, selector string) ([]*html.Node, error)
	// QueryOne returns the first descendant of scope matching selector.
	QueryOne(scope *html.Node, selector string) (*html.Node, error)
	// QueryChildren returns descendants matching ":scope > selector".
	QueryChildren(scope *html.Node, selector string) ([]*html.Node, error)
	// Matches reports whether el matches selector.
	Matches(el *html.Node, selector string) (bool, error)
	// Closest returns el or its nearest ancestor element matching selector.
	Closest(el *html.Node, selector string) (*html.Node, error)

	Children(el *html.Node) []*html.Node
	Siblings(el *html.Node) []*html.Node
	NextSibling(el *html.Node) *html.Node
	PreviousSibling(el *html.Node) *html.Node
	Parent(el *html.Node) *html.Node
	Root(el *html.Node) *html.Node

	Attr(el *html.Node, name string) (string, bool)
	Dataset(el *html.Node) map[string]string
	SetAttr(el *html.Node, name, value string) error
	ClassList(el *html.Node) []string
	AddClass(el *html.Node, classes ...string) error
	RemoveClass(el *html.Node, classes ...string) error
}

// HTML implements Tree for golang.org/x/net/html node trees.
// The zero value is ready to use and holds no state.
type HTML struct{}

var _ Tree = HTML{}

// IsElement reports whether n is an element node.
func IsElement(n *html.Node) bool {
	return n != nil && n.Type == html.ElementNode
}

// Children returns the element children of el in document order.
func (HTML) Children(el *html.Node) []*html.Node {
	return elementChildren(el)
}

// Siblings returns the element children of el's parent element, excluding
// el itself. An element without a parent element has no siblings.
func (h HTML) Siblings(el *html.Node) []*html.Node {
	parent := h.Parent(el)
	if parent == nil {
		return nil
	}
	var siblings []*html.Node
	for _, c := range elementChildren(parent) {
		if c != el {
			siblings = append(siblings, c)
		}
	}
	return siblings
}

// NextSibling returns the next element sibling of el, or nil.
func (HTML) NextSibling(el *html.Node) *html.Node {
	if el == nil {
		return nil
	}
	for s := el.NextSibling; s != nil; s = s.NextSibling {
		if s.Type == html.ElementNode {
			return s
		}
	}
	return nil
}

// PreviousSibling returns the previous element sibling of el, or nil.
func (HTML) PreviousSibling(el *html.Node) *html.Node {
	if el == nil {
		return nil
	}
	for s := el.PrevSibling; s != nil; s = s.PrevSibling {
		if s.Type == html.ElementNode {
			return s
		}
	}
	return nil
}

// Parent returns the parent element of el. The document node is not an
// element, so the <html> element has no parent.
func (HTML) Parent(el *html.Node) *html.Node {
	if el == nil || !IsElement(el.Parent) {
		return nil
	}
	return el.Parent
}

// Root returns the topmost ancestor of el, usually the document node.
func (HTML) Root(el *html.Node) *html.Node {
	if el == nil {
		return nil
	}
	for el.Parent != nil {
		el = el.Parent
	}
	return el
}

func elementChildren(el *html.Node) []*html.Node {
	if el == nil {
		return nil
	}
	var children []*html.Node
	for c := el.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			children = append(children, c)
		}
	}
	return children
}
