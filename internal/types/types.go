// Package types provides domain models shared across domrules components.
//
// Zero-dependency design: types.go, rules.go and errors.go use only the
// standard library so hosts embedding the engine (CLI, WASM shim, server-side
// renderer) pull in nothing beyond the engine itself. ID utilities in ids.go
// import uuid but are isolated for selective inclusion.
//
// DOM nodes are not modelled here; the engine addresses elements through the
// capability interface in internal/dom.
package types

// InvocationID identifies a single rule application for log correlation.
// String alias keeps the value printable in structured log fields.
type InvocationID string

// Selector keywords understood by the resolver, in resolution priority order.
// Listed in grammar errors for empty selectors.
var SelectorKeywords = []string{
	"self",
	"siblings",
	"parent",
	"~",
	"+",
	">",
	"^",
	"#",
	".",
	"[",
}

// SupportedPatterns is the reminder attached to selector resolution failures.
const SupportedPatterns = `Supported patterns:
  self              : The clicked element
  siblings          : All siblings
  parent            : Direct parent
  ~ selector        : Following siblings
  + selector        : Next sibling
  > selector        : Direct children
  ^ selector        : Closest parent matching selector
  #id, .class, etc  : Standard CSS selectors`

// SupportedActions is the reminder attached to unknown action tokens.
const SupportedActions = `Supported actions:
  +classname    : Add a class
  -classname    : Remove a class
  +[c1,c2]      : Add multiple classes
  -[c1,c2]      : Remove multiple classes
  attribute=val : Set an attribute`
