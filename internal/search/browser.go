package search

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/chromedp/chromedp"
)

// resultsScript runs in the page and collects organic result links. Kept as
// page script because the result markup only settles after client-side
// rendering.
const resultsScript = `(() => {
	const items = [];
	for (const el of document.querySelectorAll('div.g')) {
		const link = el.querySelector('a');
		const heading = el.querySelector('h3');
		if (link && heading && link.href && heading.textContent) {
			items.push({url: link.href, title: heading.textContent.trim()});
		}
	}
	return items;
})()`

// Browser implements Provider by rendering the search surface in a headless
// browser, so results are read from the same DOM a user would see. The
// browser session is scoped to a single Search call and released on every
// exit path.
type Browser struct {
	BaseURL   string
	UserAgent string
	Timeout   time.Duration
	Filter    Filter
}

func (b *Browser) Name() string { return "browser" }

func (b *Browser) Search(ctx context.Context, query string, limit int) ([]Result, error) {
	if strings.TrimSpace(b.BaseURL) == "" {
		return nil, fmt.Errorf("missing search base url")
	}
	if limit <= 0 {
		limit = 10
	}
	timeout := b.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.NoSandbox,
		chromedp.DisableGPU,
		chromedp.Flag("disable-dev-shm-usage", true),
	)
	if b.UserAgent != "" {
		opts = append(opts, chromedp.UserAgent(b.UserAgent))
	}
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()
	tabCtx, cancelTab := chromedp.NewContext(allocCtx)
	defer cancelTab()
	tabCtx, cancelTimeout := context.WithTimeout(tabCtx, timeout)
	defer cancelTimeout()

	target := strings.TrimRight(b.BaseURL, "/") + "/search?q=" + url.QueryEscape(query)
	var raw []Result
	err := chromedp.Run(tabCtx,
		chromedp.Navigate(target),
		chromedp.WaitVisible("div#search", chromedp.ByQuery),
		chromedp.Evaluate(resultsScript, &raw),
	)
	if err != nil {
		return nil, fmt.Errorf("browser search: %w", err)
	}
	out := b.Filter.Apply(raw)
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
