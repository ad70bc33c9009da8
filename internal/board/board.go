// internal/board/board.go
package board

import (
	"fmt"
	"net/url"

	"github.com/solatis/domrules/internal/dom"
	"github.com/solatis/domrules/internal/types"
	"golang.org/x/net/html"
)

/*
 * Task board plumbing.
 *
 * A board is a set of column elements (class progress_cards_container), each
 * holding draggable card elements. When a drag ends the card's new position
 * is written into the hidden #cardMovedForm and the form is triggered with
 * the cardmoved event so the server can persist the move.
 *
 * Markup contract:
 *   column   class="progress_cards_container" data-id="<status id>"
 *   card     data-id="<task id>" data-target-id="<element id to swap>"
 *   form     id="cardMovedForm" with inputs named taskId, statusId,
 *            previousSiblingId, nextSiblingId
 *
 * Neighbour ids fall back to NoSibling at either end of a column.
 */

const (
	ColumnClass = "progress_cards_container"
	FormID      = "cardMovedForm"
	// MovedEvent is the event the card-moved form is triggered with.
	MovedEvent = "cardmoved"
	// NoSibling stands in for a missing neighbour id.
	NoSibling = "-1"
)

// Form input names, in the order they are written.
const (
	FieldTaskID            = "taskId"
	FieldStatusID          = "statusId"
	FieldPreviousSiblingID = "previousSiblingId"
	FieldNextSiblingID     = "nextSiblingId"
)

// SortEnd describes a finished drag. Item already sits at its new position.
type SortEnd struct {
	Item     *html.Node
	From     *html.Node // column the card left
	To       *html.Node // column the card landed in
	OldIndex int
	NewIndex int
}

// Moved reports whether the drag changed the card's position.
func (ev SortEnd) Moved() bool {
	return ev.OldIndex != ev.NewIndex || ev.From != ev.To
}

// CardMove is what MoveCard wrote into the form.
type CardMove struct {
	TaskID            string
	StatusID          string
	PreviousSiblingID string
	NextSiblingID     string
	Target            string // hx-target selector, "#" + data-target-id
	Trigger           string
}

// Values returns the form fields as request parameters.
func (m *CardMove) Values() url.Values {
	return url.Values{
		FieldTaskID:            {m.TaskID},
		FieldStatusID:          {m.StatusID},
		FieldPreviousSiblingID: {m.PreviousSiblingID},
		FieldNextSiblingID:     {m.NextSiblingID},
	}
}

// Columns returns the sortable column elements below doc.
func Columns(doc *html.Node) []*html.Node {
	return dom.ElementsByClassName(doc, ColumnClass)
}

// Relocate moves item to position index among the element children of to
// and returns the matching SortEnd. An index past the end appends.
func Relocate(item, to *html.Node, index int) (SortEnd, error) {
	var t dom.HTML
	from := t.Parent(item)
	if from == nil || !dom.IsElement(to) {
		return SortEnd{}, fmt.Errorf("relocate %s: card and column must be elements", dom.Describe(item))
	}
	for n := to; n != nil; n = n.Parent {
		if n == item {
			return SortEnd{}, fmt.Errorf("relocate %s: column %s is inside the card", dom.Describe(item), dom.Describe(to))
		}
	}
	ev := SortEnd{Item: item, From: from, To: to, OldIndex: indexOf(t.Children(from), item)}

	from.RemoveChild(item)
	children := t.Children(to)
	if index < 0 {
		index = 0
	}
	if index < len(children) {
		to.InsertBefore(item, children[index])
	} else {
		to.AppendChild(item)
		index = len(children)
	}
	ev.NewIndex = index
	return ev, nil
}

// MoveCard writes a finished drag into the card-moved form. It returns nil
// when the card did not move.
func MoveCard(doc *html.Node, ev SortEnd) (*CardMove, error) {
	if !ev.Moved() {
		return nil, nil
	}
	var t dom.HTML

	move := &CardMove{
		TaskID:            dom.AttrOr(ev.Item, "data-id", ""),
		StatusID:          dom.AttrOr(ev.To, "data-id", ""),
		PreviousSiblingID: siblingID(t.PreviousSibling(ev.Item)),
		NextSiblingID:     siblingID(t.NextSibling(ev.Item)),
		Target:            "#" + dom.AttrOr(ev.Item, "data-target-id", ""),
		Trigger:           MovedEvent,
	}

	form := dom.ElementByID(doc, FormID)
	if form == nil {
		return nil, fmt.Errorf("%w: #%s", types.ErrMissingFormField, FormID)
	}
	fields := []struct{ name, value string }{
		{FieldTaskID, move.TaskID},
		{FieldStatusID, move.StatusID},
		{FieldPreviousSiblingID, move.PreviousSiblingID},
		{FieldNextSiblingID, move.NextSiblingID},
	}
	for _, f := range fields {
		inputs := dom.ElementsByName(doc, f.name)
		if len(inputs) == 0 {
			return nil, fmt.Errorf("%w: %s", types.ErrMissingFormField, f.name)
		}
		if err := t.SetAttr(inputs[0], "value", f.value); err != nil {
			return nil, err
		}
	}
	if err := t.SetAttr(form, "hx-target", move.Target); err != nil {
		return nil, err
	}
	return move, nil
}

func siblingID(el *html.Node) string {
	if el == nil {
		return NoSibling
	}
	return dom.AttrOr(el, "data-id", "")
}

func indexOf(list []*html.Node, n *html.Node) int {
	for i, el := range list {
		if el == n {
			return i
		}
	}
	return -1
}
