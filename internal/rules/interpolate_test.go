package rules

import (
	"testing"

	"github.com/solatis/domrules/internal/dom"
)

func TestInterpolate(t *testing.T) {
	doc := parseHTML(t, `<button id="tab-2" class="tab  primary" data-target-id="panel-2" data-panel="p" aria-controls="panel-2" title="T"></button>`)
	el := mustByID(t, doc, "tab-2")

	tests := []struct {
		selector string
		want     string
	}{
		{"#{data-targetId}", "#panel-2"},
		{"#{data-panel}", "#p"},
		{"#{data-target-id}", "#"},
		{"#{id}-panel", "#tab-2-panel"},
		{"#{attr:aria-controls}", "#panel-2"},
		{"#{aria-controls}", "#panel-2"},
		{".{class[0]}", ".tab"},
		{".{class[1]}", ".primary"},
		{".{class[5]}", "."},
		{"#{nonexistent-attr}", "#"},
		{"[title={title}] ~ #{id}", "[title=T] ~ #tab-2"},
		{"self", "self"},
		{"{}", "{}"},
		{"#{data-missing}", "#"},
	}

	for _, tt := range tests {
		if got := Interpolate(dom.HTML{}, tt.selector, el); got != tt.want {
			t.Errorf("Interpolate(%q) = %q, want %q", tt.selector, got, tt.want)
		}
	}
}

func TestInterpolate_ClassIndexFallsBackToAttribute(t *testing.T) {
	doc := parseHTML(t, `<i id="i" class="a"></i>`)
	el := mustByID(t, doc, "i")

	if got := Interpolate(dom.HTML{}, "{class[x]}", el); got != "" {
		t.Errorf("Interpolate({class[x]}) = %q, want empty", got)
	}
}
