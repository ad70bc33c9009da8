package rules

import (
	"go.uber.org/zap"
	"golang.org/x/net/html"
)

// Event is the UI interaction that triggers a rules string.
type Event interface {
	Target() *html.Node        // element the interaction originated from
	CurrentTarget() *html.Node // element the handler is attached to
	PreventDefault()
	StopPropagation()
}

// ApplyOptions controls event handling before the rules run.
type ApplyOptions struct {
	PreventDefault  bool
	StopPropagation bool
}

// ClickEvent is a plain Event for hosts without a native event object.
type ClickEvent struct {
	TargetNode        *html.Node
	CurrentTargetNode *html.Node

	DefaultPrevented   bool
	PropagationStopped bool
}

var _ Event = (*ClickEvent)(nil)

func (ev *ClickEvent) Target() *html.Node        { return ev.TargetNode }
func (ev *ClickEvent) CurrentTarget() *html.Node { return ev.CurrentTargetNode }
func (ev *ClickEvent) PreventDefault()           { ev.DefaultPrevented = true }
func (ev *ClickEvent) StopPropagation()          { ev.PropagationStopped = true }

// Apply is the markup-facing entry point. It applies the requested event
// options, anchors the rules at the event's current target (falling back to
// its target) and runs them.
//
// Failures are always logged. They are returned only in debug mode; in
// normal operation a broken rule degrades to a log line.
func (e *Engine) Apply(rulesString string, ev Event, opts ApplyOptions) error {
	var clicked *html.Node
	if ev != nil {
		if opts.PreventDefault {
			ev.PreventDefault()
		}
		if opts.StopPropagation {
			ev.StopPropagation()
		}
		clicked = ev.CurrentTarget()
		if clicked == nil {
			clicked = ev.Target()
		}
	}

	_, err := e.ApplyRules(rulesString, clicked)
	if err != nil && !e.debug {
		e.logger.Debug("rule application error suppressed", zap.Error(err))
		return nil
	}
	return err
}
