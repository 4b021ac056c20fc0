package browser

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/chromedp/chromedp"
)

// ChromePage is a Page backed by a single chromedp tab.
type ChromePage struct {
	ctx    context.Context
	cancel context.CancelFunc
	opts   Options

	closeOnce sync.Once
	closeErr  error
}

var _ Page = (*ChromePage)(nil)

// Launch starts a Chrome process with one tab. The browser lives until Close
// is called or ctx is canceled.
func Launch(ctx context.Context, opts Options) (*ChromePage, error) {
	opts = opts.withDefaults()

	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, BuildChromeOptions(opts)...)
	tabCtx, tabCancel := chromedp.NewContext(allocCtx)
	cancel := func() {
		tabCancel()
		allocCancel()
	}

	// The first Run on a fresh context starts the browser.
	if err := chromedp.Run(tabCtx); err != nil {
		cancel()
		return nil, fmt.Errorf("start browser: %w", err)
	}

	return &ChromePage{ctx: tabCtx, cancel: cancel, opts: opts}, nil
}

// run executes actions on the tab, bounded by timeout and by the caller's ctx.
func (p *ChromePage) run(ctx context.Context, timeout time.Duration, actions ...chromedp.Action) error {
	runCtx, cancel := context.WithTimeout(p.ctx, timeout)
	defer cancel()
	stop := context.AfterFunc(ctx, cancel)
	defer stop()

	return chromedp.Run(runCtx, actions...)
}

// timeoutErr converts a deadline hit while waiting on selector into a TimeoutError.
// Cancellation by the caller is passed through unchanged.
func timeoutErr(ctx context.Context, err error, selector string, timeout time.Duration) error {
	if err == nil {
		return nil
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return &TimeoutError{Selector: selector, Timeout: timeout}
	}
	return err
}

func (p *ChromePage) Navigate(ctx context.Context, url string) error {
	err := p.run(ctx, p.opts.LoadTimeout,
		chromedp.Navigate(url),
		chromedp.WaitReady("body", chromedp.ByQuery),
	)
	if err != nil {
		return fmt.Errorf("navigate %s: %w", url, timeoutErr(ctx, err, "body", p.opts.LoadTimeout))
	}
	return nil
}

func (p *ChromePage) WaitForElement(ctx context.Context, selector string, timeout time.Duration) error {
	err := p.run(ctx, timeout, chromedp.WaitReady(selector, chromedp.ByQuery))
	return timeoutErr(ctx, err, selector, timeout)
}

func (p *ChromePage) QueryAll(ctx context.Context, selector string) (*goquery.Selection, error) {
	var html string
	if err := p.run(ctx, p.opts.ActionTimeout, chromedp.OuterHTML("html", &html, chromedp.ByQuery)); err != nil {
		return nil, fmt.Errorf("snapshot document: %w", timeoutErr(ctx, err, "html", p.opts.ActionTimeout))
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}
	return doc.Find(selector), nil
}

func (p *ChromePage) Click(ctx context.Context, selector string) error {
	err := p.run(ctx, p.opts.ActionTimeout, chromedp.Click(selector, chromedp.ByQuery))
	if err != nil {
		return fmt.Errorf("click: %w", timeoutErr(ctx, err, selector, p.opts.ActionTimeout))
	}
	return nil
}

func (p *ChromePage) SelectOption(ctx context.Context, selector, value string) error {
	script, err := selectOptionScript(selector, value)
	if err != nil {
		return err
	}
	var found bool
	if err := p.run(ctx, p.opts.ActionTimeout, chromedp.Evaluate(script, &found)); err != nil {
		return fmt.Errorf("select %q: %w", value, timeoutErr(ctx, err, selector, p.opts.ActionTimeout))
	}
	if !found {
		return fmt.Errorf("select %q in %q: %w", value, selector, ErrNotFound)
	}
	return nil
}

// Close shuts the browser down and releases the allocator.
func (p *ChromePage) Close() error {
	p.closeOnce.Do(func() {
		p.closeErr = chromedp.Cancel(p.ctx)
		p.cancel()
	})
	return p.closeErr
}

// selectOptionScript builds the expression evaluated by SelectOption. It
// yields false when the selector matches nothing.
func selectOptionScript(selector, value string) (string, error) {
	sel, err := json.Marshal(selector)
	if err != nil {
		return "", fmt.Errorf("encode selector: %w", err)
	}
	val, err := json.Marshal(value)
	if err != nil {
		return "", fmt.Errorf("encode value: %w", err)
	}
	return fmt.Sprintf(`(() => {
	const el = document.querySelector(%s);
	if (!el) return false;
	el.value = %s;
	el.dispatchEvent(new Event("input", { bubbles: true }));
	el.dispatchEvent(new Event("change", { bubbles: true }));
	return true;
})()`, sel, val), nil
}
