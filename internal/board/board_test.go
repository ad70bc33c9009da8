package board

import (
	"testing"

	"github.com/solatis/domrules/internal/dom"
	"github.com/solatis/domrules/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

const boardHTML = `<html><body>
<div id="errorContainer"></div>
<div class="progress_cards_container" id="todo" data-id="1">
  <div id="c1" data-id="11" data-target-id="task-11">one</div>
  <div id="c2" data-id="12" data-target-id="task-12">two</div>
</div>
<div class="progress_cards_container" id="done" data-id="2">
  <div id="c3" data-id="21" data-target-id="task-21">three</div>
</div>
<form id="cardMovedForm" hx-post="/tasks/move" hx-trigger="cardmoved">
  <input type="hidden" name="taskId">
  <input type="hidden" name="statusId">
  <input type="hidden" name="previousSiblingId">
  <input type="hidden" name="nextSiblingId">
</form>
</body></html>`

func parseBoard(t *testing.T, src string) *html.Node {
	t.Helper()
	doc, err := dom.ParseString(src)
	require.NoError(t, err)
	return doc
}

func inputValue(doc *html.Node, name string) string {
	return dom.AttrOr(dom.ElementsByName(doc, name)[0], "value", "")
}

func TestColumns(t *testing.T) {
	doc := parseBoard(t, boardHTML)

	cols := Columns(doc)
	require.Len(t, cols, 2)
	assert.Equal(t, "todo", dom.AttrOr(cols[0], "id", ""))
	assert.Equal(t, "done", dom.AttrOr(cols[1], "id", ""))
}

func TestMoveCardAcrossColumns(t *testing.T) {
	doc := parseBoard(t, boardHTML)
	card := dom.ElementByID(doc, "c1")
	done := dom.ElementByID(doc, "done")

	ev, err := Relocate(card, done, 1)
	require.NoError(t, err)
	assert.Equal(t, 0, ev.OldIndex)
	assert.Equal(t, 1, ev.NewIndex)
	assert.True(t, ev.Moved())

	move, err := MoveCard(doc, ev)
	require.NoError(t, err)
	require.NotNil(t, move)

	assert.Equal(t, &CardMove{
		TaskID:            "11",
		StatusID:          "2",
		PreviousSiblingID: "21",
		NextSiblingID:     NoSibling,
		Target:            "#task-11",
		Trigger:           MovedEvent,
	}, move)

	assert.Equal(t, "11", inputValue(doc, FieldTaskID))
	assert.Equal(t, "2", inputValue(doc, FieldStatusID))
	assert.Equal(t, "21", inputValue(doc, FieldPreviousSiblingID))
	assert.Equal(t, "-1", inputValue(doc, FieldNextSiblingID))
	assert.Equal(t, "#task-11", dom.AttrOr(dom.ElementByID(doc, FormID), "hx-target", ""))
}

func TestMoveCardWithinColumn(t *testing.T) {
	doc := parseBoard(t, boardHTML)
	card := dom.ElementByID(doc, "c2")
	todo := dom.ElementByID(doc, "todo")

	ev, err := Relocate(card, todo, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, ev.OldIndex)
	assert.Equal(t, 0, ev.NewIndex)

	move, err := MoveCard(doc, ev)
	require.NoError(t, err)
	require.NotNil(t, move)
	assert.Equal(t, NoSibling, move.PreviousSiblingID)
	assert.Equal(t, "11", move.NextSiblingID)
	assert.Equal(t, "1", move.StatusID)
}

func TestMoveCardUnmoved(t *testing.T) {
	doc := parseBoard(t, boardHTML)
	card := dom.ElementByID(doc, "c1")
	todo := dom.ElementByID(doc, "todo")

	move, err := MoveCard(doc, SortEnd{Item: card, From: todo, To: todo, OldIndex: 0, NewIndex: 0})
	require.NoError(t, err)
	assert.Nil(t, move)
	assert.Equal(t, "", inputValue(doc, FieldTaskID))
}

func TestMoveCardMissingForm(t *testing.T) {
	doc := parseBoard(t, `<div class="progress_cards_container" id="a" data-id="1"><div id="c" data-id="5"></div></div>
<div class="progress_cards_container" id="b" data-id="2"></div>`)

	ev, err := Relocate(dom.ElementByID(doc, "c"), dom.ElementByID(doc, "b"), 0)
	require.NoError(t, err)

	_, err = MoveCard(doc, ev)
	assert.ErrorIs(t, err, types.ErrMissingFormField)
}

func TestMoveCardMissingInput(t *testing.T) {
	doc := parseBoard(t, `<div class="progress_cards_container" id="a" data-id="1"><div id="c" data-id="5"></div></div>
<div class="progress_cards_container" id="b" data-id="2"></div>
<form id="cardMovedForm"><input name="taskId"><input name="statusId"></form>`)

	ev, err := Relocate(dom.ElementByID(doc, "c"), dom.ElementByID(doc, "b"), 0)
	require.NoError(t, err)

	_, err = MoveCard(doc, ev)
	require.ErrorIs(t, err, types.ErrMissingFormField)
	assert.Contains(t, err.Error(), FieldPreviousSiblingID)
}

func TestCardMoveValues(t *testing.T) {
	move := &CardMove{TaskID: "1", StatusID: "2", PreviousSiblingID: "-1", NextSiblingID: "3"}

	v := move.Values()
	assert.Equal(t, "1", v.Get(FieldTaskID))
	assert.Equal(t, "2", v.Get(FieldStatusID))
	assert.Equal(t, "-1", v.Get(FieldPreviousSiblingID))
	assert.Equal(t, "3", v.Get(FieldNextSiblingID))
}

func TestHandleLifecycle(t *testing.T) {
	doc := parseBoard(t, boardHTML)
	container := dom.ElementByID(doc, ErrorContainerID)

	cols, err := HandleLifecycle(doc, EventSendError)
	require.NoError(t, err)
	assert.Nil(t, cols)
	got, err := dom.Render(container)
	require.NoError(t, err)
	assert.Contains(t, got, "Placeholder: Error while connecting to server")

	_, err = HandleLifecycle(doc, EventBeforeRequest)
	require.NoError(t, err)
	assert.Nil(t, container.FirstChild)

	cols, err = HandleLifecycle(doc, EventAfterSwap)
	require.NoError(t, err)
	assert.Len(t, cols, 2)

	cols, err = HandleLifecycle(doc, "htmx:unknown")
	assert.NoError(t, err)
	assert.Nil(t, cols)
}

func TestHandleLifecycleMissingContainer(t *testing.T) {
	doc := parseBoard(t, `<p>no container</p>`)

	_, err := HandleLifecycle(doc, EventSendError)
	assert.Error(t, err)
}

func TestRelocateIntoOwnDescendant(t *testing.T) {
	doc := parseBoard(t, `<div class="progress_cards_container" id="col" data-id="1">
<div id="card" data-id="5"><ul id="inner"></ul></div></div>`)
	card := dom.ElementByID(doc, "card")
	col := dom.ElementByID(doc, "col")

	for _, target := range []string{"inner", "card"} {
		_, err := Relocate(card, dom.ElementByID(doc, target), 0)
		require.Error(t, err, "target %s", target)
	}

	assert.Equal(t, col, card.Parent)
	assert.Equal(t, card, dom.ElementByID(doc, "card"))
	assert.Equal(t, card, dom.ElementByID(doc, "inner").Parent)
}
