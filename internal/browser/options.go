package browser

import (
	"time"

	"github.com/chromedp/chromedp"
)

// Browser defaults.
const (
	DefaultWindowWidth   = 1366
	DefaultWindowHeight  = 900
	DefaultActionTimeout = 30 * time.Second
	DefaultLoadTimeout   = 60 * time.Second
)

// Options contains configuration for the Chrome process and its page.
type Options struct {
	Headless      bool
	WindowWidth   int
	WindowHeight  int
	UserAgent     string
	ActionTimeout time.Duration // bound for clicks and selects
	LoadTimeout   time.Duration // bound for Navigate
}

// DefaultOptions returns headless options with the default viewport and timeouts.
func DefaultOptions() Options {
	return Options{
		Headless:      true,
		WindowWidth:   DefaultWindowWidth,
		WindowHeight:  DefaultWindowHeight,
		UserAgent:     "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
		ActionTimeout: DefaultActionTimeout,
		LoadTimeout:   DefaultLoadTimeout,
	}
}

// withDefaults fills zero values from DefaultOptions.
func (o Options) withDefaults() Options {
	def := DefaultOptions()
	if o.WindowWidth <= 0 {
		o.WindowWidth = def.WindowWidth
	}
	if o.WindowHeight <= 0 {
		o.WindowHeight = def.WindowHeight
	}
	if o.ActionTimeout <= 0 {
		o.ActionTimeout = def.ActionTimeout
	}
	if o.LoadTimeout <= 0 {
		o.LoadTimeout = def.LoadTimeout
	}
	return o
}

// BuildChromeOptions creates Chrome allocator options based on Options.
func BuildChromeOptions(opts Options) []chromedp.ExecAllocatorOption {
	opts = opts.withDefaults()

	chromeOpts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", opts.Headless),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-blink-features", "AutomationControlled"),
		chromedp.Flag("disable-infobars", true),
		chromedp.Flag("disable-extensions", true),
		chromedp.WindowSize(opts.WindowWidth, opts.WindowHeight),
	)
	if opts.UserAgent != "" {
		chromeOpts = append(chromeOpts, chromedp.UserAgent(opts.UserAgent))
	}
	return chromeOpts
}
