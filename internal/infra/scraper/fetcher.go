package scraper

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gocolly/colly/v2"
	"github.com/sitemint/sitemint-backend/internal/application/errs"
	"github.com/sitemint/sitemint-backend/pkg/env"
)

type FetcherConfig struct {
	UserAgent string
	Timeout   time.Duration
}

func NewFetcherConfig() FetcherConfig {
	timeout, err := time.ParseDuration(env.GetEnv("SCRAPER_TIMEOUT", "30s"))
	if err != nil {
		timeout = 30 * time.Second
	}
	return FetcherConfig{
		UserAgent: env.GetEnv("SCRAPER_USER_AGENT", "sitemint-scraper/1.0"),
		Timeout:   timeout,
	}
}

// CollyFetcher retrieves a single page's HTML body.
type CollyFetcher struct {
	base *colly.Collector
}

func NewCollyFetcher(cfg FetcherConfig) *CollyFetcher {
	base := colly.NewCollector(colly.UserAgent(cfg.UserAgent))
	base.AllowURLRevisit = true
	base.WithTransport(&http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		IdleConnTimeout:       30 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ResponseHeaderTimeout: cfg.Timeout,
	})
	base.SetRequestTimeout(cfg.Timeout)
	return &CollyFetcher{base: base}
}

type fetchResult struct {
	html string
	err  error
}

// Fetch downloads rawURL and returns its HTML. Network failures and
// non-success statuses both surface as errs.FetchError.
func (f *CollyFetcher) Fetch(ctx context.Context, rawURL string) (string, error) {
	collector := f.base.Clone()
	resultCh := make(chan fetchResult, 1)
	var once sync.Once
	send := func(res fetchResult) {
		once.Do(func() {
			resultCh <- res
		})
	}

	collector.OnResponse(func(r *colly.Response) {
		send(fetchResult{html: string(r.Body)})
	})
	collector.OnError(func(r *colly.Response, err error) {
		if err == nil {
			err = fmt.Errorf("status %d", r.StatusCode)
		}
		send(fetchResult{err: err})
	})

	if err := collector.Visit(rawURL); err != nil {
		return "", errs.FetchError{URL: rawURL, Err: err}
	}
	collector.Wait()

	select {
	case res := <-resultCh:
		if err := ctx.Err(); err != nil {
			return "", errs.FetchError{URL: rawURL, Err: err}
		}
		if res.err != nil {
			return "", errs.FetchError{URL: rawURL, Err: res.err}
		}
		return res.html, nil
	default:
		return "", errs.FetchError{URL: rawURL, Err: errors.New("fetch produced no result")}
	}
}
