// internal/rules/parse_test.go
package rules

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/solatis/domrules/internal/types"
)

func TestParse_SingleStatement(t *testing.T) {
	rules, err := Parse("self: +active -inactive aria-selected=true")
	if err != nil {
		t.Fatalf("Parse() error = %v, want nil", err)
	}
	if len(rules) != 1 {
		t.Fatalf("len(rules) = %d, want 1", len(rules))
	}

	want := types.Rule{
		Selector: "self",
		Actions: []types.Action{
			types.AddClass{Classes: []string{"active"}},
			types.RemoveClass{Classes: []string{"inactive"}},
			types.SetAttribute{Name: "aria-selected", Value: "true"},
		},
	}
	if !reflect.DeepEqual(rules[0], want) {
		t.Errorf("rules[0] = %+v, want %+v", rules[0], want)
	}
}

func TestParse_StatementOrderAndBlanks(t *testing.T) {
	rules, err := Parse(" ; self: +a ;; siblings: -a ; ")
	if err != nil {
		t.Fatalf("Parse() error = %v, want nil", err)
	}
	var selectors []string
	for _, r := range rules {
		selectors = append(selectors, r.Selector)
	}
	if !reflect.DeepEqual(selectors, []string{"self", "siblings"}) {
		t.Errorf("selectors = %v, want [self siblings]", selectors)
	}
}

func TestParse_QuotedSemicolonDoesNotSplit(t *testing.T) {
	tests := []struct {
		name  string
		input string
		value string
	}{
		{"double quotes", `self: title="a;b"; parent: +x`, "a;b"},
		{"single quotes", `self: title='a;b'; parent: +x`, "a;b"},
		{"other quote inside", `self: title="it's;ok"; parent: +x`, "it's;ok"},
		{"escaped quote", `self: title="a\";b"; parent: +x`, `a\";b`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rules, err := Parse(tt.input)
			if err != nil {
				t.Fatalf("Parse() error = %v, want nil", err)
			}
			if len(rules) != 2 {
				t.Fatalf("len(rules) = %d, want 2", len(rules))
			}
			got := rules[0].Actions[0].(types.SetAttribute)
			if got.Value != tt.value {
				t.Errorf("Value = %q, want %q", got.Value, tt.value)
			}
		})
	}
}

func TestParse_SelectorColonInsideQuotes(t *testing.T) {
	rules, err := Parse(`[title="a:b"]: +hit`)
	if err != nil {
		t.Fatalf("Parse() error = %v, want nil", err)
	}
	if rules[0].Selector != `[title="a:b"]` {
		t.Errorf("Selector = %q, want %q", rules[0].Selector, `[title="a:b"]`)
	}
}

func TestParse_ValueKeepsLaterColons(t *testing.T) {
	rules, err := Parse("self: href=http://example.com:8080/x")
	if err != nil {
		t.Fatalf("Parse() error = %v, want nil", err)
	}
	got := rules[0].Actions[0].(types.SetAttribute)
	if got.Value != "http://example.com:8080/x" {
		t.Errorf("Value = %q, want %q", got.Value, "http://example.com:8080/x")
	}
}

func TestParse_BracketClassLists(t *testing.T) {
	rules, err := Parse("self: +[ a , b,c ] -[x, y]")
	if err != nil {
		t.Fatalf("Parse() error = %v, want nil", err)
	}
	want := []types.Action{
		types.AddClass{Classes: []string{"a", "b", "c"}},
		types.RemoveClass{Classes: []string{"x", "y"}},
	}
	if !reflect.DeepEqual(rules[0].Actions, want) {
		t.Errorf("Actions = %+v, want %+v", rules[0].Actions, want)
	}
}

func TestParse_FirstEqualsSplitsAssignment(t *testing.T) {
	rules, err := Parse("self: data-expr=a=b=c")
	if err != nil {
		t.Fatalf("Parse() error = %v, want nil", err)
	}
	want := types.SetAttribute{Name: "data-expr", Value: "a=b=c"}
	if rules[0].Actions[0] != want {
		t.Errorf("Action = %+v, want %+v", rules[0].Actions[0], want)
	}
}

func TestParse_PrefixBeatsEquals(t *testing.T) {
	rules, err := Parse("self: +a=b")
	if err != nil {
		t.Fatalf("Parse() error = %v, want nil", err)
	}
	if _, ok := rules[0].Actions[0].(types.AddClass); !ok {
		t.Errorf("Action = %T, want types.AddClass", rules[0].Actions[0])
	}
}

func TestStripQuotes(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{`"hello"`, "hello"},
		{`'hello'`, "hello"},
		{`""`, ""},
		{`"x`, `"x`},
		{`x"`, `x"`},
		{`'x"`, `'x"`},
		{`"`, `"`},
		{`""x""`, `"x"`},
		{`"he"llo"`, `he"llo`},
		{"plain", "plain"},
	}

	for _, tt := range tests {
		if got := stripQuotes(tt.in); got != tt.want {
			t.Errorf("stripQuotes(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestParse_AttributeValueQuotes(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{`self: title="hello"`, "hello"},
		{`self: title='hello'`, "hello"},
		{`self: title='x`, `'x`},
		{`self: title="x'`, `"x'`},
		{`self: title=`, ""},
	}

	for _, tt := range tests {
		rules, err := Parse(tt.input)
		if err != nil {
			t.Fatalf("Parse(%q) error = %v, want nil", tt.input, err)
		}
		got := rules[0].Actions[0].(types.SetAttribute)
		if got.Value != tt.want {
			t.Errorf("Parse(%q) value = %q, want %q", tt.input, got.Value, tt.want)
		}
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr error
		message string
	}{
		{"empty", "", types.ErrEmptyRules, "Empty rules string provided"},
		{"whitespace", "   \n\t", types.ErrEmptyRules, "Empty rules string provided"},
		{"missing colon", "self +active", types.ErrMissingSeparator, `Invalid statement format: "self +active"`},
		{"empty selector", ": +active", types.ErrEmptySelector, "Empty selector in statement"},
		{"empty actions", "self:   ", types.ErrEmptyActions, `No actions specified for selector "self"`},
		{"unknown action", "self: active", types.ErrUnknownAction, `Unknown action format: "active"`},
		{"blank key", "self: =value", types.ErrInvalidAttribute, `Invalid attribute assignment: "=value"`},
		{"bare plus", "self: +", types.ErrEmptyClassList, "Empty class name"},
		{"empty brackets", "self: -[]", types.ErrEmptyClassList, "Empty class name"},
		{"empty entry", "self: +[a,,b]", types.ErrEmptyClassList, "Empty class name"},
		{"second statement bad", "self: +a; siblings -a", types.ErrMissingSeparator, "Invalid statement format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rules, err := Parse(tt.input)
			if err == nil {
				t.Fatalf("Parse() = %v, want error", rules)
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Parse() error = %v, want %v", err, tt.wantErr)
			}
			var pe *types.ParseError
			if !errors.As(err, &pe) {
				t.Errorf("Parse() error type = %T, want *types.ParseError", err)
			}
			if !strings.Contains(err.Error(), tt.message) {
				t.Errorf("Error() = %q, want it to contain %q", err.Error(), tt.message)
			}
		})
	}
}

func TestParse_UnknownActionListsSupportedActions(t *testing.T) {
	_, err := Parse("self: ?x")
	if err == nil || !strings.Contains(err.Error(), types.SupportedActions) {
		t.Errorf("Parse() error = %v, want supported actions reminder", err)
	}
}

func TestTokenizeActions(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"+a -b c=d", []string{"+a", "-b", "c=d"}},
		{"+[a, b]   -[c,\td]", []string{"+[a, b]", "-[c,\td]"}},
		{"\n+a\n", []string{"+a"}},
		{"", nil},
	}

	for _, tt := range tests {
		if got := tokenizeActions(tt.in); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("tokenizeActions(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

// Property: parsing rules built from valid parts never fails, keeps
// statement order, and yields one action per token.
func TestParse_Properties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	selectors := []string{"self", "siblings", "parent", "~.tab", "+.panel", "> li", "^.card", "#main", ".item", "[role=tab]"}
	classes := []string{"active", "hidden", "is-open", "tab_1"}

	properties.Property("well-formed rules parse in order", prop.ForAll(
		func(statementCount int, actionCount int, quoteValue bool) bool {
			var stmts []string
			for i := 0; i < statementCount; i++ {
				sel := selectors[i%len(selectors)]
				var actions []string
				for j := 0; j < actionCount; j++ {
					c := classes[(i+j)%len(classes)]
					switch j % 3 {
					case 0:
						actions = append(actions, "+"+c)
					case 1:
						actions = append(actions, "-["+c+", "+c+"x]")
					default:
						v := c
						if quoteValue {
							v = `"` + c + `;` + `"`
						}
						actions = append(actions, "data-"+c+"="+v)
					}
				}
				stmts = append(stmts, sel+": "+strings.Join(actions, " "))
			}

			rules, err := Parse(strings.Join(stmts, "; "))
			if err != nil {
				return false
			}
			if len(rules) != statementCount {
				return false
			}
			for i, r := range rules {
				if r.Selector != selectors[i%len(selectors)] || len(r.Actions) != actionCount {
					return false
				}
			}
			return true
		},
		gen.IntRange(1, 12),
		gen.IntRange(1, 6),
		gen.Bool(),
	))

	properties.Property("parsing never panics", prop.ForAll(
		func(s string) bool {
			defer func() {
				if r := recover(); r != nil {
					t.Errorf("Parse(%q) panicked: %v", s, r)
				}
			}()
			rules, err := Parse(s)
			if err != nil {
				var pe *types.ParseError
				return errors.As(err, &pe) && rules == nil
			}
			for _, r := range rules {
				if r.Selector == "" || len(r.Actions) == 0 {
					return false
				}
			}
			return true
		},
		gen.AnyString(),
	))

	properties.Property("bracket lists are trimmed", prop.ForAll(
		func(pad int) bool {
			sp := strings.Repeat(" ", pad)
			rules, err := Parse("self: +[" + sp + "a" + sp + "," + sp + "b" + sp + "]")
			if err != nil {
				return false
			}
			add, ok := rules[0].Actions[0].(types.AddClass)
			return ok && reflect.DeepEqual(add.Classes, []string{"a", "b"})
		},
		gen.IntRange(0, 5),
	))

	properties.TestingRun(t)
}
