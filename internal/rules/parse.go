// internal/rules/parse.go
package rules

import (
	"fmt"
	"strings"

	"github.com/solatis/domrules/internal/types"
)

/*
 * Rules string parsing.
 *
 * Turns "selector: actions; selector: actions" into a types.RuleSet.
 *
 * Parsing workflow:
 *   1. Split statements on ';' outside single/double quotes
 *   2. Split each statement on its first unquoted ':'
 *   3. Tokenize actions on whitespace outside '[...]'
 *   4. Classify each token: +class, -class, +[a,b], -[a,b], key=value
 *
 * Parsing is total and happens before any execution: one malformed
 * statement fails the whole string and no element is touched.
 *
 * Quote handling: a quote preceded by a backslash is literal. The quote that
 * opened a section is the only one that closes it, so "it's" style text
 * inside double quotes does not toggle state.
 */

// Parse converts a rules string into an ordered RuleSet.
// Returns a *types.ParseError for every grammar violation.
func Parse(rulesString string) (types.RuleSet, error) {
	statements, err := tokenizeStatements(rulesString)
	if err != nil {
		return nil, err
	}

	rules := make(types.RuleSet, 0, len(statements))
	for _, stmt := range statements {
		rule, err := parseStatement(stmt)
		if err != nil {
			return nil, err
		}
		rules = append(rules, rule)
	}
	return rules, nil
}

// quoteScanner tracks whether a byte position is inside a quoted section.
// Quotes and separators are ASCII, so byte scanning is safe for UTF-8 input.
type quoteScanner struct {
	quote byte // opening quote character, 0 outside quotes
}

// step feeds s[i] to the scanner and reports whether s[i] sits outside quotes.
func (q *quoteScanner) step(s string, i int) bool {
	c := s[i]
	if (c == '"' || c == '\'') && (i == 0 || s[i-1] != '\\') {
		switch {
		case q.quote == 0:
			q.quote = c
			return false
		case q.quote == c:
			q.quote = 0
			return false
		}
	}
	return q.quote == 0
}

// tokenizeStatements splits on ';' outside quotes and drops blank statements.
func tokenizeStatements(rulesString string) ([]string, error) {
	cleaned := strings.TrimSpace(rulesString)
	if cleaned == "" {
		return nil, &types.ParseError{
			Err:     types.ErrEmptyRules,
			Message: "Empty rules string provided",
		}
	}

	var statements []string
	var q quoteScanner
	start := 0
	for i := 0; i < len(cleaned); i++ {
		if q.step(cleaned, i) && cleaned[i] == ';' {
			if stmt := strings.TrimSpace(cleaned[start:i]); stmt != "" {
				statements = append(statements, stmt)
			}
			start = i + 1
		}
	}
	if stmt := strings.TrimSpace(cleaned[start:]); stmt != "" {
		statements = append(statements, stmt)
	}
	return statements, nil
}

// separatorIndex returns the index of the first ':' outside quotes, or -1.
func separatorIndex(statement string) int {
	var q quoteScanner
	for i := 0; i < len(statement); i++ {
		if q.step(statement, i) && statement[i] == ':' {
			return i
		}
	}
	return -1
}

// parseStatement splits a statement into selector and actions.
func parseStatement(statement string) (types.Rule, error) {
	colon := separatorIndex(statement)
	if colon < 0 {
		return types.Rule{}, &types.ParseError{
			Err:       types.ErrMissingSeparator,
			Statement: statement,
			Message: fmt.Sprintf("Invalid statement format: %q\n"+
				"Expected: \"selector: actions\"\n"+
				"Example: \"self: +active -inactive aria-selected=true\"", statement),
		}
	}

	selector := strings.TrimSpace(statement[:colon])
	actionsText := strings.TrimSpace(statement[colon+1:])

	if selector == "" {
		return types.Rule{}, &types.ParseError{
			Err:       types.ErrEmptySelector,
			Statement: statement,
			Message: fmt.Sprintf("Empty selector in statement: %q\nSupported selectors: %s",
				statement, strings.Join(types.SelectorKeywords, ", ")),
		}
	}
	if actionsText == "" {
		return types.Rule{}, &types.ParseError{
			Err:       types.ErrEmptyActions,
			Statement: statement,
			Message: fmt.Sprintf("No actions specified for selector %q\n"+
				"Expected actions like: +class, -class, attribute=value", selector),
		}
	}

	actions, err := parseActions(actionsText)
	if err != nil {
		return types.Rule{}, err
	}
	return types.Rule{Selector: selector, Actions: actions}, nil
}

func parseActions(actionsText string) ([]types.Action, error) {
	tokens := tokenizeActions(actionsText)
	actions := make([]types.Action, 0, len(tokens))
	for _, tok := range tokens {
		action, err := parseActionToken(tok)
		if err != nil {
			return nil, err
		}
		actions = append(actions, action)
	}
	return actions, nil
}

// tokenizeActions splits on ASCII whitespace outside '[...]'.
// Brackets do not nest: the first ']' closes.
func tokenizeActions(actionsText string) []string {
	var tokens []string
	var current strings.Builder
	inBrackets := false

	flush := func() {
		if tok := strings.TrimSpace(current.String()); tok != "" {
			tokens = append(tokens, tok)
		}
		current.Reset()
	}

	for i := 0; i < len(actionsText); i++ {
		c := actionsText[i]
		switch {
		case c == '[':
			inBrackets = true
			current.WriteByte(c)
		case c == ']':
			inBrackets = false
			current.WriteByte(c)
		case isSpace(c) && !inBrackets:
			flush()
		default:
			current.WriteByte(c)
		}
	}
	flush()
	return tokens
}

// parseActionToken classifies a single token. Prefix checks come before the
// '=' check, so "+a=b" adds the class "a=b".
func parseActionToken(token string) (types.Action, error) {
	switch {
	case strings.HasPrefix(token, "+"):
		classes, err := parseClassList(token)
		if err != nil {
			return nil, err
		}
		return types.AddClass{Classes: classes}, nil

	case strings.HasPrefix(token, "-"):
		classes, err := parseClassList(token)
		if err != nil {
			return nil, err
		}
		return types.RemoveClass{Classes: classes}, nil

	case strings.Contains(token, "="):
		key, value, _ := strings.Cut(token, "=")
		key = strings.TrimSpace(key)
		if key == "" {
			return nil, &types.ParseError{
				Err:       types.ErrInvalidAttribute,
				Statement: token,
				Message: fmt.Sprintf("Invalid attribute assignment: %q\n"+
					"Expected format: attribute=value\n"+
					"Example: aria-selected=true", token),
			}
		}
		return types.SetAttribute{Name: key, Value: stripQuotes(strings.TrimSpace(value))}, nil
	}

	return nil, &types.ParseError{
		Err:       types.ErrUnknownAction,
		Statement: token,
		Message:   fmt.Sprintf("Unknown action format: %q\n%s", token, types.SupportedActions),
	}
}

// parseClassList reads the class operand of a +/- token: a single name or a
// bracketed comma list. Every entry is trimmed and must be non-empty.
func parseClassList(token string) ([]string, error) {
	value := token[1:]
	var classes []string
	if len(value) >= 2 && value[0] == '[' && value[len(value)-1] == ']' {
		for _, c := range strings.Split(value[1:len(value)-1], ",") {
			classes = append(classes, strings.TrimSpace(c))
		}
	} else {
		classes = []string{value}
	}

	for _, c := range classes {
		if c == "" {
			return nil, &types.ParseError{
				Err:       types.ErrEmptyClassList,
				Statement: token,
				Message: fmt.Sprintf("Empty class name in action: %q\n"+
					"Expected: %cclassname or %c[c1,c2]", token, token[0], token[0]),
			}
		}
	}
	return classes, nil
}

// stripQuotes removes one enclosing pair of matching single or double
// quotes. A lone or mismatched quote is left alone.
func stripQuotes(value string) string {
	if len(value) >= 2 {
		first, last := value[0], value[len(value)-1]
		if (first == '"' || first == '\'') && first == last {
			return value[1 : len(value)-1]
		}
	}
	return value
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\f', '\r':
		return true
	}
	return false
}
