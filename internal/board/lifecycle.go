package board

import (
	"fmt"

	"github.com/solatis/domrules/internal/dom"
	"golang.org/x/net/html"
)

// Request lifecycle events the board reacts to.
const (
	EventBeforeRequest = "htmx:beforeRequest"
	EventSendError     = "htmx:sendError"
	EventAfterSwap     = "htmx:afterSwap"
)

// ErrorContainerID is the element connection errors are reported in.
const ErrorContainerID = "errorContainer"

// SendErrorBanner is shown when the server cannot be reached.
const SendErrorBanner = "<h1>Placeholder: Error while connecting to server</h1>"

// HandleLifecycle updates doc for a request lifecycle event. For
// EventAfterSwap it returns the columns that need sortable behaviour
// (re)attached; other events return nil. Unknown events are ignored.
func HandleLifecycle(doc *html.Node, event string) ([]*html.Node, error) {
	switch event {
	case EventBeforeRequest:
		return nil, setErrorContainer(doc, "")
	case EventSendError:
		return nil, setErrorContainer(doc, SendErrorBanner)
	case EventAfterSwap:
		return Columns(doc), nil
	}
	return nil, nil
}

func setErrorContainer(doc *html.Node, content string) error {
	el := dom.ElementByID(doc, ErrorContainerID)
	if el == nil {
		return fmt.Errorf("no #%s element", ErrorContainerID)
	}
	return dom.SetInnerHTML(el, content)
}
