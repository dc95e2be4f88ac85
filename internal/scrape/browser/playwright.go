// Package browser drives a headless Chromium for listing pages that only grow
// through a "load more" button or infinite scroll.
package browser

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/playwright-community/playwright-go"
)

type Options struct {
	Headless        bool
	UserAgent       string
	LoadMoreXPath   string        // xpath of the "load more" control
	NavTimeout      time.Duration // page.Goto timeout
	SettleAfterLoad time.Duration // wait for new cards after a click or scroll
}

// DefaultLoadMore matches Kalibrr's "Load more" button.
const DefaultLoadMore = `xpath=//button[contains(normalize-space(.), 'Load more')]`

type Playwright struct {
	pw      *playwright.Playwright
	browser playwright.Browser
	page    playwright.Page
	opts    Options
}

// Launch starts the driver and opens one page. The driver and browser
// binaries must already be installed (playwright.Install).
func Launch(opts Options) (*Playwright, error) {
	if opts.LoadMoreXPath == "" {
		opts.LoadMoreXPath = DefaultLoadMore
	}
	if opts.NavTimeout <= 0 {
		opts.NavTimeout = 30 * time.Second
	}
	if opts.SettleAfterLoad <= 0 {
		opts.SettleAfterLoad = 2 * time.Second
	}

	pw, err := playwright.Run()
	if err != nil {
		return nil, fmt.Errorf("start playwright: %w", err)
	}
	b, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(opts.Headless),
		Args:     []string{"--no-sandbox", "--disable-dev-shm-usage"},
	})
	if err != nil {
		_ = pw.Stop()
		return nil, fmt.Errorf("launch chromium: %w", err)
	}

	pageOpts := playwright.BrowserNewPageOptions{}
	if opts.UserAgent != "" {
		pageOpts.UserAgent = playwright.String(opts.UserAgent)
	}
	page, err := b.NewPage(pageOpts)
	if err != nil {
		_ = b.Close()
		_ = pw.Stop()
		return nil, fmt.Errorf("new page: %w", err)
	}

	return &Playwright{pw: pw, browser: b, page: page, opts: opts}, nil
}

func (p *Playwright) Goto(ctx context.Context, url string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := p.page.Goto(url, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateDomcontentloaded,
		Timeout:   playwright.Float(ms(p.opts.NavTimeout)),
	})
	if err != nil {
		return err
	}
	p.page.WaitForTimeout(ms(p.opts.SettleAfterLoad))
	return nil
}

func (p *Playwright) Content(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return p.page.Content()
}

func (p *Playwright) ClickLoadMore(ctx context.Context) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	btn := p.page.Locator(p.opts.LoadMoreXPath).First()
	n, err := btn.Count()
	if err != nil || n == 0 {
		return false, nil
	}
	visible, err := btn.IsVisible()
	if err != nil || !visible {
		return false, nil
	}

	_ = btn.ScrollIntoViewIfNeeded()
	if err := btn.Click(playwright.LocatorClickOptions{Timeout: playwright.Float(5000)}); err != nil {
		// a covered or detached button counts as "no control"; the pager scrolls instead
		log.Printf("[browser] load more click err=%v", err)
		return false, nil
	}
	p.page.WaitForTimeout(ms(p.opts.SettleAfterLoad))
	return true, nil
}

func (p *Playwright) ScrollToBottom(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, err := p.page.Evaluate("window.scrollTo(0, document.body.scrollHeight)"); err != nil {
		return err
	}
	p.page.WaitForTimeout(ms(p.opts.SettleAfterLoad))
	return nil
}

func (p *Playwright) Close() error {
	var first error
	if err := p.page.Close(); err != nil && first == nil {
		first = err
	}
	if err := p.browser.Close(); err != nil && first == nil {
		first = err
	}
	if err := p.pw.Stop(); err != nil && first == nil {
		first = err
	}
	return first
}

func ms(d time.Duration) float64 { return float64(d.Milliseconds()) }
