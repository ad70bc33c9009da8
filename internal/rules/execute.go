// internal/rules/execute.go
package rules

import (
	"fmt"
	"strings"

	"github.com/solatis/domrules/internal/dom"
	"github.com/solatis/domrules/internal/types"
	"go.uber.org/zap"
	"golang.org/x/net/html"
)

/*
 * Rule execution.
 *
 * Runs a parsed RuleSet against the live tree, statement by statement.
 *
 * Execution flow per rule:
 *   1. Interpolate {…} placeholders from the clicked element
 *   2. Resolve the interpolated selector (may fail: ResolveError)
 *   3. Zero matches: warn and continue with the next rule
 *   4. Apply every action, in order, to every resolved element
 *
 * Failure semantics: fail-fast without rollback. A DOM refusal (bad class
 * token, bad attribute name) stops the run; mutations already made stay.
 *
 * Duplicates: an element resolved twice receives the actions twice, so the
 * last write of an attribute wins.
 */

// ExecResult summarises one execution for callers and tests.
type ExecResult struct {
	Rules     int      // rules executed
	Matched   int      // element visits that received actions
	Unmatched []string // selectors that resolved to nothing
}

// execute applies rules in order. Errors carry the offending selector.
func (e *Engine) execute(rules types.RuleSet, clicked *html.Node, log *zap.Logger) (ExecResult, error) {
	var result ExecResult
	r := resolver{tree: e.tree}

	for _, rule := range rules {
		interpolated := Interpolate(e.tree, rule.Selector, clicked)
		elements, err := r.Resolve(rule.Selector, interpolated, clicked)
		if err != nil {
			return result, err
		}
		result.Rules++

		if e.debug {
			e.debugRule(log, rule, interpolated, elements)
		}

		if len(elements) == 0 {
			e.warnNoMatch(log, rule.Selector, interpolated, clicked)
			result.Unmatched = append(result.Unmatched, rule.Selector)
			continue
		}

		for _, el := range elements {
			if err := e.applyActions(el, rule.Actions); err != nil {
				return result, fmt.Errorf("rule %q on %s: %w", rule.Selector, dom.Describe(el), err)
			}
			result.Matched++
		}
	}
	return result, nil
}

// applyActions mutates el. The switch covers the closed Action set.
func (e *Engine) applyActions(el *html.Node, actions []types.Action) error {
	for _, action := range actions {
		var err error
		switch a := action.(type) {
		case types.AddClass:
			err = e.tree.AddClass(el, a.Classes...)
		case types.RemoveClass:
			err = e.tree.RemoveClass(el, a.Classes...)
		case types.SetAttribute:
			err = e.tree.SetAttr(el, a.Name, a.Value)
		default:
			err = fmt.Errorf("unsupported action %T", action)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (e *Engine) debugRule(log *zap.Logger, rule types.Rule, interpolated string, elements []*html.Node) {
	fields := []zap.Field{
		zap.String("selector", rule.Selector),
		zap.String("kind", SelectorKind(interpolated)),
		zap.Int("found", len(elements)),
	}
	if interpolated != rule.Selector {
		fields = append(fields, zap.String("interpolated", interpolated))
	}
	if len(elements) > 0 {
		described := make([]string, len(elements))
		for i, el := range elements {
			described[i] = dom.Describe(el)
		}
		fields = append(fields,
			zap.Strings("elements", described),
			zap.String("actions", rule.ActionsString()))
	}
	log.Debug("rule", fields...)
}

// warnNoMatch reports a selector that resolved to nothing. The hint about
// element IDs only applies to selectors with placeholders.
func (e *Engine) warnNoMatch(log *zap.Logger, selector, interpolated string, clicked *html.Node) {
	fields := []zap.Field{
		zap.String("selector", selector),
		zap.String("clicked", dom.Describe(clicked)),
	}
	if interpolated != selector {
		fields = append(fields, zap.String("interpolated", interpolated))
	}
	if strings.Contains(selector, "{") {
		fields = append(fields, zap.String("hint",
			"check if the interpolated selector matches any element IDs/classes in your HTML"))
	}
	log.Warn("no elements found for selector", fields...)
}
