package dom

import (
	"bytes"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/xlab/treeprint"
	"golang.org/x/net/html"
)

// Parse reads a complete HTML document.
func Parse(r io.Reader) (*html.Node, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	return doc, nil
}

// ParseString is Parse for in-memory markup.
func ParseString(s string) (*html.Node, error) {
	return Parse(strings.NewReader(s))
}

// Render serializes the tree rooted at n.
func Render(n *html.Node) (string, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return "", fmt.Errorf("render html: %w", err)
	}
	return buf.String(), nil
}

// ElementByID returns the first element below root whose id is id.
func ElementByID(root *html.Node, id string) *html.Node {
	return find(root, func(n *html.Node) bool {
		return AttrOr(n, "id", "\x00") == id
	})
}

// ElementsByName returns all elements below root whose name attribute is name.
func ElementsByName(root *html.Node, name string) []*html.Node {
	return findAll(root, func(n *html.Node) bool {
		return AttrOr(n, "name", "\x00") == name
	})
}

// ElementsByClassName returns all elements below root carrying class.
func ElementsByClassName(root *html.Node, class string) []*html.Node {
	return findAll(root, func(n *html.Node) bool {
		return slices.Contains((HTML{}).ClassList(n), class)
	})
}

// SetInnerHTML replaces the children of el with the parsed fragment.
func SetInnerHTML(el *html.Node, fragment string) error {
	if !IsElement(el) {
		return fmt.Errorf("set inner html: not an element")
	}
	nodes, err := html.ParseFragment(strings.NewReader(fragment), el)
	if err != nil {
		return fmt.Errorf("parse fragment: %w", err)
	}
	for c := el.FirstChild; c != nil; {
		next := c.NextSibling
		el.RemoveChild(c)
		c = next
	}
	for _, n := range nodes {
		el.AppendChild(n)
	}
	return nil
}

// Describe renders el as a short opening tag, e.g. <button id="tab1">.
func Describe(el *html.Node) string {
	if !IsElement(el) {
		return "<#none>"
	}
	if id, ok := (HTML{}).Attr(el, "id"); ok && id != "" {
		return fmt.Sprintf("<%s id=%q>", el.Data, id)
	}
	return "<" + el.Data + ">"
}

// Dump prints the element structure below n as a tree, one line per
// element with its id and classes.
func Dump(n *html.Node) string {
	tree := treeprint.New()
	var walk func(branch treeprint.Tree, n *html.Node)
	walk = func(branch treeprint.Tree, n *html.Node) {
		for _, c := range elementChildren(n) {
			if len(elementChildren(c)) == 0 {
				branch.AddNode(label(c))
				continue
			}
			walk(branch.AddBranch(label(c)), c)
		}
	}
	if IsElement(n) {
		walk(tree.AddBranch(label(n)), n)
	} else {
		walk(tree, n)
	}
	return tree.String()
}

func label(el *html.Node) string {
	var b strings.Builder
	b.WriteString(el.Data)
	if id := AttrOr(el, "id", ""); id != "" {
		b.WriteString("#" + id)
	}
	for _, c := range (HTML{}).ClassList(el) {
		b.WriteString("." + c)
	}
	return b.String()
}

func find(root *html.Node, pred func(*html.Node) bool) *html.Node {
	if root == nil {
		return nil
	}
	for c := root.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && pred(c) {
			return c
		}
		if n := find(c, pred); n != nil {
			return n
		}
	}
	return nil
}

func findAll(root *html.Node, pred func(*html.Node) bool) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.ElementNode && pred(c) {
				out = append(out, c)
			}
			walk(c)
		}
	}
	if root != nil {
		walk(root)
	}
	return out
}
