package rules

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/solatis/domrules/internal/dom"
	"golang.org/x/net/html"
)

var (
	placeholderPattern = regexp.MustCompile(`\{([^}]+)\}`)
	classIndexPattern  = regexp.MustCompile(`class\[(\d+)\]`)
)

// Interpolate replaces every {name} placeholder in selector with a value
// read from el. Unknown or absent values become the empty string; it never
// fails.
//
//	{data-X}    dataset entry X (dataset naming, e.g. {data-targetId})
//	{id}        id attribute
//	{attr:X}    attribute X
//	{class[N]}  N-th class, zero based
//	{X}         attribute X
func Interpolate(tree dom.Tree, selector string, el *html.Node) string {
	return placeholderPattern.ReplaceAllStringFunc(selector, func(m string) string {
		return variable(tree, m[1:len(m)-1], el)
	})
}

func variable(tree dom.Tree, name string, el *html.Node) string {
	switch {
	case strings.HasPrefix(name, "data-"):
		return tree.Dataset(el)[name[len("data-"):]]
	case name == "id":
		v, _ := tree.Attr(el, "id")
		return v
	case strings.HasPrefix(name, "attr:"):
		v, _ := tree.Attr(el, name[len("attr:"):])
		return v
	case strings.HasPrefix(name, "class["):
		if m := classIndexPattern.FindStringSubmatch(name); m != nil {
			idx, err := strconv.Atoi(m[1])
			classes := tree.ClassList(el)
			if err != nil || idx >= len(classes) {
				return ""
			}
			return classes[idx]
		}
	}
	v, _ := tree.Attr(el, name)
	return v
}
