// Package browsertest provides an in-memory browser.Page for tests.
//
// A Page serves a fixed list of HTML documents, one per remote page. Clicking
// the configured next selector moves to the following document; every query
// is answered from a goquery parse of the current document.
package browsertest

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/guttosm/floorsheet/internal/browser"
)

// Page is a scripted browser.Page. Fields may be set before use; the
// recorded fields (Navigated, Clicks, Selected, Waits, Closed) are filled as
// the page is driven.
type Page struct {
	// Documents holds the HTML shown for each remote page, in order.
	Documents []string
	// NextSelector advances to the next document when clicked. Clicking it on
	// the last document leaves the view unchanged.
	NextSelector string
	// Missing lists selectors that never appear; waits on them time out and
	// clicks on them fail.
	Missing map[string]bool
	// MissingFrom makes a selector disappear starting at the given zero-based document.
	MissingFrom map[string]int

	Navigated []string
	Clicks    []string
	Selected  map[string]string
	Waits     []string
	Closed    bool
	CloseErr  error

	current int
}

var _ browser.Page = (*Page)(nil)

// New returns a Page over documents that advances when nextSelector is clicked.
func New(nextSelector string, documents ...string) *Page {
	return &Page{Documents: documents, NextSelector: nextSelector}
}

// Current returns the zero-based index of the document being shown.
func (p *Page) Current() int { return p.current }

// Advances counts clicks on the next selector, including clicks past the last document.
func (p *Page) Advances() int {
	n := 0
	for _, c := range p.Clicks {
		if c == p.NextSelector {
			n++
		}
	}
	return n
}

func (p *Page) missing(selector string) bool {
	if p.Missing[selector] {
		return true
	}
	if from, ok := p.MissingFrom[selector]; ok && p.current >= from {
		return true
	}
	return false
}

func (p *Page) Navigate(ctx context.Context, url string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	p.Navigated = append(p.Navigated, url)
	return nil
}

func (p *Page) WaitForElement(ctx context.Context, selector string, timeout time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	p.Waits = append(p.Waits, selector)
	if p.missing(selector) {
		return &browser.TimeoutError{Selector: selector, Timeout: timeout}
	}
	return nil
}

func (p *Page) QueryAll(ctx context.Context, selector string) (*goquery.Selection, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	html := ""
	if p.current < len(p.Documents) {
		html = p.Documents[p.current]
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, err
	}
	return doc.Find(selector), nil
}

func (p *Page) Click(ctx context.Context, selector string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if p.missing(selector) {
		return fmt.Errorf("click %q: %w", selector, browser.ErrNotFound)
	}
	p.Clicks = append(p.Clicks, selector)
	if selector == p.NextSelector && p.current < len(p.Documents)-1 {
		p.current++
	}
	return nil
}

func (p *Page) SelectOption(ctx context.Context, selector, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if p.missing(selector) {
		return fmt.Errorf("select %q: %w", selector, browser.ErrNotFound)
	}
	if p.Selected == nil {
		p.Selected = map[string]string{}
	}
	p.Selected[selector] = value
	return nil
}

func (p *Page) Close() error {
	p.Closed = true
	return p.CloseErr
}

// Table renders rows as an HTML table body. A row is written as <td> cells;
// header adds a <thead> row of <th> cells.
func Table(header []string, rows ...[]string) string {
	var b strings.Builder
	b.WriteString("<table>")
	if len(header) > 0 {
		b.WriteString("<thead><tr>")
		for _, h := range header {
			b.WriteString("<th>" + h + "</th>")
		}
		b.WriteString("</tr></thead>")
	}
	b.WriteString("<tbody>")
	for _, r := range rows {
		b.WriteString("<tr>")
		for _, c := range r {
			b.WriteString("<td>" + c + "</td>")
		}
		b.WriteString("</tr>")
	}
	b.WriteString("</tbody></table>")
	return b.String()
}
