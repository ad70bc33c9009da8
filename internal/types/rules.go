// internal/types/rules.go
package types

import "strings"

/*
 * Domain types for rule application.
 *
 * Provides RuleSet, Rule and the Action sum type produced by
 * internal/rules parsing and consumed by its executor. A RuleSet is built
 * fresh for every invocation, executed once and discarded.
 *
 * Key types:
 *   - RuleSet: ordered statements, textual order is execution order
 *   - Rule: raw selector text plus the actions applied to each match
 *   - Action: closed set of mutations (AddClass, RemoveClass, SetAttribute)
 *
 * Action is closed through the unexported isAction marker; executors switch
 * over the three concrete types and nothing outside this package can add a
 * fourth.
 */

// RuleSet is the parsed form of a rules string.
type RuleSet []Rule

// Rule pairs a selector with the actions applied to every element it
// resolves to.
type Rule struct {
	Selector string   // raw selector text, before interpolation
	Actions  []Action // never empty for a parsed rule
}

// Action is a single DOM mutation.
type Action interface {
	isAction()
	String() string
}

// AddClass adds every class in Classes to the element.
type AddClass struct {
	Classes []string // non-empty, in authored order
}

// RemoveClass removes every class in Classes from the element.
type RemoveClass struct {
	Classes []string // non-empty, in authored order
}

// SetAttribute writes Value verbatim to attribute Name.
type SetAttribute struct {
	Name  string
	Value string
}

func (AddClass) isAction()     {}
func (RemoveClass) isAction()  {}
func (SetAttribute) isAction() {}

// String renders the action the way debug diagnostics print it.
func (a AddClass) String() string {
	return "+" + strings.Join(a.Classes, ", +")
}

// String renders the action the way debug diagnostics print it.
func (a RemoveClass) String() string {
	return "-" + strings.Join(a.Classes, ", -")
}

// String renders the action the way debug diagnostics print it.
func (a SetAttribute) String() string {
	return a.Name + "=" + a.Value
}

// ActionsString joins the rendered actions of a rule with spaces.
func (r Rule) ActionsString() string {
	parts := make([]string, len(r.Actions))
	for i, a := range r.Actions {
		parts[i] = a.String()
	}
	return strings.Join(parts, " ")
}
