package dom

import (
	"fmt"

	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"
)

// scopeMarker is the attribute QueryChildren puts on the scope element while
// the query runs; cascadia has no :scope pseudo-class.
const scopeMarker = "data-domrules-scope"

// Compile parses a CSS selector group.
func Compile(selector string) (cascadia.Selector, error) {
	sel, err := cascadia.Compile(selector)
	if err != nil {
		return nil, fmt.Errorf("compile selector %q: %w", selector, err)
	}
	return sel, nil
}

// QueryAll returns the descendants of scope matching selector.
func (HTML) QueryAll(scope *html.Node, selector string) ([]*html.Node, error) {
	sel, err := Compile(selector)
	if err != nil {
		return nil, err
	}
	if scope == nil {
		return nil, nil
	}
	return cascadia.QueryAll(scope, sel), nil
}

// QueryOne returns the first descendant of scope matching selector, or nil.
func (HTML) QueryOne(scope *html.Node, selector string) (*html.Node, error) {
	sel, err := Compile(selector)
	if err != nil {
		return nil, err
	}
	if scope == nil {
		return nil, nil
	}
	return cascadia.Query(scope, sel), nil
}

// QueryChildren evaluates ":scope > selector" below scope. The scope element
// is tagged with a marker attribute for the duration of the query, so
// selector keeps full CSS semantics (groups, descendant parts after the
// child step) exactly as a browser applies them.
func (h HTML) QueryChildren(scope *html.Node, selector string) ([]*html.Node, error) {
	if scope == nil {
		return nil, nil
	}
	sel, err := Compile("[" + scopeMarker + "] > " + selector)
	if err != nil {
		return nil, err
	}
	restore := mark(scope)
	defer restore()
	return cascadia.QueryAll(scope, sel), nil
}

// Matches reports whether el matches selector.
func (HTML) Matches(el *html.Node, selector string) (bool, error) {
	sel, err := Compile(selector)
	if err != nil {
		return false, err
	}
	return IsElement(el) && sel.Match(el), nil
}

// Closest returns el or the nearest ancestor element matching selector.
func (HTML) Closest(el *html.Node, selector string) (*html.Node, error) {
	sel, err := Compile(selector)
	if err != nil {
		return nil, err
	}
	for n := el; IsElement(n); n = n.Parent {
		if sel.Match(n) {
			return n, nil
		}
	}
	return nil, nil
}

// mark appends the scope marker to el and returns a func restoring the
// original attribute slice.
func mark(el *html.Node) func() {
	saved := el.Attr
	attrs := make([]html.Attribute, len(saved), len(saved)+1)
	copy(attrs, saved)
	el.Attr = append(attrs, html.Attribute{Key: scopeMarker})
	return func() { el.Attr = saved }
}
