// internal/rules/selector.go
package rules

import (
	"strings"

	"github.com/solatis/domrules/internal/dom"
	"github.com/solatis/domrules/internal/types"
	"golang.org/x/net/html"
)

/*
 * Selector resolution relative to the clicked element.
 *
 * Resolves an interpolated selector to an ordered element list. Handlers are
 * tried in table order and the first whose prefix matches wins:
 *
 *   self | siblings | parent   keyword, optional continuation query
 *   ~frag                      following siblings (filtered)
 *   +frag                      next sibling (filtered)
 *   >frag                      direct children (filtered)
 *   ^frag                      closest matching ancestor, self inclusive
 *   anything else              CSS; #id searches the document, the rest
 *                              searches below the clicked element
 *
 * Continuation queries after a keyword run once per base element: ">frag"
 * selects direct children, anything else is a descendant query. Results are
 * concatenated in base order and duplicates are kept.
 *
 * Every matcher failure surfaces as *types.ResolveError; resolution never
 * reads state other than the live tree, so earlier rules' mutations are
 * visible here.
 */

// selectorHandler is one row of the resolution table.
type selectorHandler struct {
	name    string
	match   func(selector string) (rest string, ok bool)
	resolve func(r resolver, clicked *html.Node, rest string) ([]*html.Node, error)
}

// selectorTable lists the custom selector forms in priority order.
var selectorTable = []selectorHandler{
	{name: "self", match: keyword("self"), resolve: resolver.self},
	{name: "siblings", match: keyword("siblings"), resolve: resolver.siblings},
	{name: "parent", match: keyword("parent"), resolve: resolver.parent},
	{name: "~", match: combinator('~'), resolve: resolver.following},
	{name: "+", match: combinator('+'), resolve: resolver.adjacent},
	{name: ">", match: combinator('>'), resolve: resolver.children},
	{name: "^", match: combinator('^'), resolve: resolver.closest},
}

// keyword matches k exactly, or k followed by a space or '>'.
func keyword(k string) func(string) (string, bool) {
	return func(selector string) (string, bool) {
		if selector == k || strings.HasPrefix(selector, k+" ") || strings.HasPrefix(selector, k+">") {
			return strings.TrimSpace(selector[len(k):]), true
		}
		return "", false
	}
}

// combinator matches a leading combinator character.
func combinator(c byte) func(string) (string, bool) {
	return func(selector string) (string, bool) {
		if len(selector) > 0 && selector[0] == c {
			return strings.TrimSpace(selector[1:]), true
		}
		return "", false
	}
}

// resolver binds the table handlers to a DOM implementation.
type resolver struct {
	tree dom.Tree
}

// Resolve returns the elements selector designates relative to clicked.
// selector is the authored text, interpolated its {…}-substituted form.
func (r resolver) Resolve(selector, interpolated string, clicked *html.Node) ([]*html.Node, error) {
	elements, err := r.dispatch(interpolated, clicked)
	if err != nil {
		return nil, &types.ResolveError{
			Selector:     selector,
			Interpolated: interpolated,
			Cause:        err,
		}
	}
	return elements, nil
}

func (r resolver) dispatch(interpolated string, clicked *html.Node) ([]*html.Node, error) {
	for _, h := range selectorTable {
		if rest, ok := h.match(interpolated); ok {
			return h.resolve(r, clicked, rest)
		}
	}
	if strings.HasPrefix(interpolated, "#") {
		return r.tree.QueryAll(r.tree.Root(clicked), interpolated)
	}
	return r.tree.QueryAll(clicked, interpolated)
}

// SelectorKind names the resolution form selector dispatches to: a keyword,
// a combinator character, or "css" for the document query fallback.
func SelectorKind(selector string) string {
	for _, h := range selectorTable {
		if _, ok := h.match(selector); ok {
			return h.name
		}
	}
	return "css"
}

func (r resolver) self(clicked *html.Node, rest string) ([]*html.Node, error) {
	return r.continueFrom([]*html.Node{clicked}, rest)
}

func (r resolver) siblings(clicked *html.Node, rest string) ([]*html.Node, error) {
	return r.continueFrom(r.tree.Siblings(clicked), rest)
}

func (r resolver) parent(clicked *html.Node, rest string) ([]*html.Node, error) {
	var base []*html.Node
	if p := r.tree.Parent(clicked); p != nil {
		base = append(base, p)
	}
	return r.continueFrom(base, rest)
}

func (r resolver) following(clicked *html.Node, frag string) ([]*html.Node, error) {
	var out []*html.Node
	for s := r.tree.NextSibling(clicked); s != nil; s = r.tree.NextSibling(s) {
		ok, err := r.matches(s, frag)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r resolver) adjacent(clicked *html.Node, frag string) ([]*html.Node, error) {
	next := r.tree.NextSibling(clicked)
	if next == nil {
		return nil, nil
	}
	ok, err := r.matches(next, frag)
	if err != nil || !ok {
		return nil, err
	}
	return []*html.Node{next}, nil
}

func (r resolver) children(clicked *html.Node, frag string) ([]*html.Node, error) {
	if frag == "" {
		return r.tree.Children(clicked), nil
	}
	return r.tree.QueryChildren(clicked, frag)
}

func (r resolver) closest(clicked *html.Node, frag string) ([]*html.Node, error) {
	el, err := r.tree.Closest(clicked, frag)
	if err != nil || el == nil {
		return nil, err
	}
	return []*html.Node{el}, nil
}

// matches treats an empty fragment as "match anything".
func (r resolver) matches(el *html.Node, frag string) (bool, error) {
	if frag == "" {
		return true, nil
	}
	return r.tree.Matches(el, frag)
}

// continueFrom applies a keyword's continuation query to every base element.
func (r resolver) continueFrom(base []*html.Node, rest string) ([]*html.Node, error) {
	if rest == "" {
		return base, nil
	}
	var out []*html.Node
	for _, el := range base {
		var found []*html.Node
		var err error
		if strings.HasPrefix(rest, ">") {
			found, err = r.children(el, strings.TrimSpace(rest[1:]))
		} else {
			found, err = r.tree.QueryAll(el, rest)
		}
		if err != nil {
			return nil, err
		}
		out = append(out, found...)
	}
	return out, nil
}
