package rules

import (
	"github.com/solatis/domrules/internal/dom"
	"github.com/solatis/domrules/internal/types"
	"go.uber.org/zap"
	"golang.org/x/net/html"
)

// Engine applies rules strings to a document tree.
// It holds configuration only; every call parses and executes from scratch,
// so one Engine may serve any number of documents.
type Engine struct {
	tree   dom.Tree
	logger *zap.Logger
	debug  bool
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the diagnostics logger. Defaults to a no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithDebug enables per-rule debug diagnostics and makes Apply return
// failures instead of only logging them.
func WithDebug(debug bool) Option {
	return func(e *Engine) { e.debug = debug }
}

// WithTree replaces the DOM implementation. Defaults to dom.HTML.
func WithTree(t dom.Tree) Option {
	return func(e *Engine) {
		if t != nil {
			e.tree = t
		}
	}
}

// NewEngine creates a new rules engine instance.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{tree: dom.HTML{}, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Debug reports whether debug mode is on.
func (e *Engine) Debug() bool {
	return e.debug
}

// ApplyRules parses rulesString and executes it with clicked as anchor.
// Parsing completes before any mutation. Failures are logged and returned.
func (e *Engine) ApplyRules(rulesString string, clicked *html.Node) (ExecResult, error) {
	id := types.NewInvocationID()
	log := e.logger.With(zap.String("invocation_id", string(id)))

	if !dom.IsElement(clicked) {
		log.Error("rule application failed", zap.Error(types.ErrNoClickedElement))
		return ExecResult{}, types.ErrNoClickedElement
	}

	rules, err := Parse(rulesString)
	if err != nil {
		log.Error("rule application failed", zap.String("rules", rulesString), zap.Error(err))
		return ExecResult{}, err
	}

	if e.debug {
		log.Debug("rule applier run",
			zap.Time("invoked_at", types.InvocationIDTime(id)),
			zap.String("clicked", dom.Describe(clicked)),
			zap.Int("rules", len(rules)))
	}

	result, err := e.execute(rules, clicked, log)
	if err != nil {
		log.Error("rule application failed", zap.String("rules", rulesString), zap.Error(err))
		return result, err
	}
	return result, nil
}
