package extraction

import (
	"context"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/guttosm/floorsheet/internal/browser"
)

// Adapter exposes the floor-sheet view as semantic operations. The
// controller and the extractor only talk to an Adapter; selector strings
// stay inside its implementation.
type Adapter interface {
	// Open loads the floor-sheet page.
	Open(ctx context.Context, url string) error
	// ConfigureFilters selects pageSize rows per page and applies the filter.
	ConfigureFilters(ctx context.Context, pageSize string) error
	// SortByRate triggers the rate column sort.
	SortByRate(ctx context.Context) error
	// TotalPagesLabel returns the text of the last pagination label, or ""
	// when the label is not rendered.
	TotalPagesLabel(ctx context.Context) (string, error)
	// Rows waits for the table body and returns the cell texts of every
	// table row, in document order.
	Rows(ctx context.Context) ([][]string, error)
	// Advance clicks the next-page control once.
	Advance(ctx context.Context) error
}

const (
	floorSheetRoot = "body > app-root > div > main > div > app-floor-sheet > div"
	filterRoot     = floorSheetRoot + " > div.box__filter.d-flex.flex-column.flex-md-row.justify-content-between.align-items-md-center > div"
	paginationRoot = floorSheetRoot + " > div.table__pagination.d-flex.flex-column.flex-md-row.justify-content-between.align-items-center" +
		" > div.table__pagination--main.d-flex.mt-3.mt-md-0.align-items-center > pagination-controls > pagination-template > ul"
)

// Selectors locates the controls of the floor-sheet view.
type Selectors struct {
	PageSize     string
	FilterButton string
	SortByRate   string
	TotalPages   string
	NextPage     string
	TableBody    string
	Row          string
	Cell         string
}

// DefaultSelectors targets the NEPSE floor-sheet page.
func DefaultSelectors() Selectors {
	return Selectors{
		PageSize:     filterRoot + " > div:nth-child(5) > div > select",
		FilterButton: filterRoot + " > div.box__filter--btns.mt-md-1 > button.box__filter--search",
		SortByRate:   floorSheetRoot + " > div.table-responsive > table > thead > tr > th:nth-child(7)",
		TotalPages:   paginationRoot + " > li:nth-child(9) > a > span:nth-child(2)",
		NextPage:     paginationRoot + " > li.pagination-next > a",
		TableBody:    "tbody",
		Row:          "tr",
		Cell:         "td",
	}
}

// NepseAdapter implements Adapter over a browser.Page.
type NepseAdapter struct {
	page    browser.Page
	sel     Selectors
	timeout time.Duration
}

var _ Adapter = (*NepseAdapter)(nil)

// NewNepseAdapter binds sel to page. timeout bounds every element wait.
func NewNepseAdapter(page browser.Page, sel Selectors, timeout time.Duration) *NepseAdapter {
	return &NepseAdapter{page: page, sel: sel, timeout: timeout}
}

func (a *NepseAdapter) Open(ctx context.Context, url string) error {
	if err := a.page.Navigate(ctx, url); err != nil {
		return navErr(StepNavigate, "", err)
	}
	return nil
}

func (a *NepseAdapter) ConfigureFilters(ctx context.Context, pageSize string) error {
	if err := a.page.WaitForElement(ctx, a.sel.PageSize, a.timeout); err != nil {
		return navErr(StepConfigure, a.sel.PageSize, err)
	}
	if err := a.page.SelectOption(ctx, a.sel.PageSize, pageSize); err != nil {
		return navErr(StepConfigure, a.sel.PageSize, err)
	}
	if err := a.page.Click(ctx, a.sel.FilterButton); err != nil {
		return navErr(StepConfigure, a.sel.FilterButton, err)
	}
	return nil
}

func (a *NepseAdapter) SortByRate(ctx context.Context) error {
	if err := a.page.WaitForElement(ctx, a.sel.SortByRate, a.timeout); err != nil {
		return navErr(StepSort, a.sel.SortByRate, err)
	}
	if err := a.page.Click(ctx, a.sel.SortByRate); err != nil {
		return navErr(StepSort, a.sel.SortByRate, err)
	}
	return nil
}

func (a *NepseAdapter) TotalPagesLabel(ctx context.Context) (string, error) {
	labels, err := a.page.QueryAll(ctx, a.sel.TotalPages)
	if err != nil {
		return "", navErr(StepDetect, a.sel.TotalPages, err)
	}
	if labels.Length() == 0 {
		return "", nil
	}
	return browser.ReadText(labels.Last()), nil
}

func (a *NepseAdapter) Rows(ctx context.Context) ([][]string, error) {
	if err := a.page.WaitForElement(ctx, a.sel.TableBody, a.timeout); err != nil {
		return nil, navErr(StepRows, a.sel.TableBody, err)
	}
	rows, err := a.page.QueryAll(ctx, a.sel.Row)
	if err != nil {
		return nil, navErr(StepRows, a.sel.Row, err)
	}

	out := make([][]string, 0, rows.Length())
	rows.Each(func(_ int, row *goquery.Selection) {
		out = append(out, browser.ReadTexts(row.Find(a.sel.Cell)))
	})
	return out, nil
}

func (a *NepseAdapter) Advance(ctx context.Context) error {
	if err := a.page.WaitForElement(ctx, a.sel.NextPage, a.timeout); err != nil {
		return navErr(StepAdvance, a.sel.NextPage, err)
	}
	if err := a.page.Click(ctx, a.sel.NextPage); err != nil {
		return navErr(StepAdvance, a.sel.NextPage, err)
	}
	return nil
}
