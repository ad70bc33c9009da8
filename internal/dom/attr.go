package dom

import (
	"fmt"
	"slices"
	"strings"

	"github.com/solatis/domrules/internal/types"
	"golang.org/x/net/html"
)

// Attr returns the value of attribute name on el.
func (HTML) Attr(el *html.Node, name string) (string, bool) {
	if el == nil {
		return "", false
	}
	name = normalizeAttrName(el, name)
	for _, a := range el.Attr {
		if a.Namespace == "" && a.Key == name {
			return a.Val, true
		}
	}
	return "", false
}

// AttrOr returns the value of attribute name on el, or fallback when absent.
func AttrOr(el *html.Node, name, fallback string) string {
	if v, ok := (HTML{}).Attr(el, name); ok {
		return v
	}
	return fallback
}

// SetAttr sets attribute name to value, replacing an existing value in
// place. Names are ASCII-lowercased on HTML elements.
func (HTML) SetAttr(el *html.Node, name, value string) error {
	if !IsElement(el) {
		return fmt.Errorf("set attribute %q: not an element", name)
	}
	if !validAttrName(name) {
		return fmt.Errorf("%w: %q", types.ErrInvalidAttributeName, name)
	}
	setAttr(el, normalizeAttrName(el, name), value)
	return nil
}

// RemoveAttr deletes attribute name from el. Missing attributes are ignored.
func RemoveAttr(el *html.Node, name string) {
	if el == nil {
		return
	}
	name = normalizeAttrName(el, name)
	for i, a := range el.Attr {
		if a.Namespace == "" && a.Key == name {
			el.Attr = append(el.Attr[:i:i], el.Attr[i+1:]...)
			return
		}
	}
}

// Dataset returns the data-* attributes of el keyed by their dataset names:
// the "data-" prefix is dropped and every "-x" with x an ASCII lowercase
// letter becomes "X", so data-target-id is reachable as "targetId".
func (HTML) Dataset(el *html.Node) map[string]string {
	ds := make(map[string]string)
	if el == nil {
		return ds
	}
	for _, a := range el.Attr {
		if a.Namespace != "" || !strings.HasPrefix(a.Key, "data-") {
			continue
		}
		ds[datasetName(a.Key[len("data-"):])] = a.Val
	}
	return ds
}

func datasetName(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == '-' && i+1 < len(s) && 'a' <= s[i+1] && s[i+1] <= 'z' {
			b.WriteByte(s[i+1] - ('a' - 'A'))
			i++
			continue
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

// ClassList returns the ordered, de-duplicated class tokens of el.
func (h HTML) ClassList(el *html.Node) []string {
	v, _ := h.Attr(el, "class")
	return tokenSet(v)
}

// AddClass adds classes to el's class list. Tokens already present keep
// their position.
func (h HTML) AddClass(el *html.Node, classes ...string) error {
	if err := validateTokens(classes); err != nil {
		return err
	}
	set := h.ClassList(el)
	for _, c := range classes {
		if !slices.Contains(set, c) {
			set = append(set, c)
		}
	}
	h.writeClassList(el, set)
	return nil
}

// RemoveClass removes classes from el's class list.
func (h HTML) RemoveClass(el *html.Node, classes ...string) error {
	if err := validateTokens(classes); err != nil {
		return err
	}
	var kept []string
	for _, c := range h.ClassList(el) {
		if !slices.Contains(classes, c) {
			kept = append(kept, c)
		}
	}
	h.writeClassList(el, kept)
	return nil
}

// writeClassList serializes set into the class attribute. An element without
// a class attribute does not get an empty one.
func (h HTML) writeClassList(el *html.Node, set []string) {
	if _, ok := h.Attr(el, "class"); !ok && len(set) == 0 {
		return
	}
	setAttr(el, "class", strings.Join(set, " "))
}

func setAttr(el *html.Node, name, value string) {
	for i, a := range el.Attr {
		if a.Namespace == "" && a.Key == name {
			el.Attr[i].Val = value
			return
		}
	}
	el.Attr = append(el.Attr, html.Attribute{Key: name, Val: value})
}

// normalizeAttrName lowercases ASCII letters for elements in the HTML
// namespace; x/net/html stores foreign elements with a non-empty Namespace.
func normalizeAttrName(el *html.Node, name string) string {
	if el.Namespace != "" {
		return name
	}
	return strings.Map(func(r rune) rune {
		if 'A' <= r && r <= 'Z' {
			return r + ('a' - 'A')
		}
		return r
	}, name)
}

// validAttrName follows the DOM's valid attribute local name production:
// non-empty, no ASCII whitespace, NUL, '/', '=' or '>'.
func validAttrName(name string) bool {
	if name == "" {
		return false
	}
	for _, r := range name {
		if isASCIISpace(r) || r == 0 || r == '/' || r == '=' || r == '>' {
			return false
		}
	}
	return true
}

func validateTokens(tokens []string) error {
	for _, t := range tokens {
		if t == "" || strings.IndexFunc(t, isASCIISpace) >= 0 {
			return fmt.Errorf("%w: %q", types.ErrInvalidClassName, t)
		}
	}
	return nil
}

func tokenSet(s string) []string {
	var set []string
	for _, t := range strings.FieldsFunc(s, isASCIISpace) {
		if !slices.Contains(set, t) {
			set = append(set, t)
		}
	}
	return set
}

func isASCIISpace(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\f', '\r':
		return true
	}
	return false
}
