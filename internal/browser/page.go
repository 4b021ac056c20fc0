// Package browser exposes the small set of DOM primitives the floor-sheet
// extraction needs, and a chromedp-backed implementation of them.
package browser

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// ErrTimeout matches every *TimeoutError via errors.Is.
var ErrTimeout = errors.New("browser: wait timed out")

// ErrNotFound is returned when an interaction targets an element that is not in the document.
var ErrNotFound = errors.New("browser: element not found")

// TimeoutError reports a selector that did not appear within its bound.
type TimeoutError struct {
	Selector string
	Timeout  time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("waiting for %q: timed out after %s", e.Selector, e.Timeout)
}

func (e *TimeoutError) Is(target error) bool { return target == ErrTimeout }

// Page is a loaded document that can be queried and interacted with.
//
// Calls are sequential: implementations are not required to be safe for
// concurrent use.
type Page interface {
	// Navigate loads url and waits for the document to be ready.
	Navigate(ctx context.Context, url string) error
	// WaitForElement blocks until selector matches an element or timeout elapses,
	// in which case the error matches ErrTimeout.
	WaitForElement(ctx context.Context, selector string, timeout time.Duration) error
	// QueryAll snapshots the current document and returns every element matching selector.
	// Later changes to the live document are not reflected in the selection.
	QueryAll(ctx context.Context, selector string) (*goquery.Selection, error)
	// Click dispatches a click on the first element matching selector.
	Click(ctx context.Context, selector string) error
	// SelectOption sets the value of a <select> and fires its input and change events.
	SelectOption(ctx context.Context, selector, value string) error
	// Close ends the browser session. It is safe to call more than once.
	Close() error
}

// hiddenContent matches descendants that contribute no rendered text.
const hiddenContent = `script, style, template, [hidden], [aria-hidden="true"], ` +
	`[style*="display:none"], [style*="display: none"], ` +
	`[style*="visibility:hidden"], [style*="visibility: hidden"]`

// ReadText returns the rendered text of the first element in sel: hidden
// descendants are skipped and runs of whitespace, including line breaks,
// collapse to a single space.
func ReadText(sel *goquery.Selection) string {
	if sel.Length() == 0 {
		return ""
	}
	return renderedText(sel.First())
}

// ReadTexts returns the rendered text of every element in sel, in document order.
func ReadTexts(sel *goquery.Selection) []string {
	return sel.Map(func(_ int, s *goquery.Selection) string {
		return renderedText(s)
	})
}

func renderedText(s *goquery.Selection) string {
	visible := s.Clone()
	visible.Find(hiddenContent).Remove()
	return strings.Join(strings.Fields(visible.Text()), " ")
}
