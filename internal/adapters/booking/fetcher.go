package booking

import (
	"context"
	crand "crypto/rand"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"hoteai/internal/adapters/observability"
	"hoteai/internal/domain"
)

const (
	// Desktop UA plus a Hebrew locale so the site serves the he review list.
	userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) " +
		"AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123 Safari/537.36"
	acceptLanguage = "he-IL"

	maxPageBytes = 10 << 20
)

// Fetcher downloads review-listing pages over plain HTTP with client-side
// rate limiting and bounded retries. It satisfies domain.PageFetcher.
type Fetcher struct {
	hc *http.Client
	rl *rate.Limiter
}

func NewFetcher(rps int, timeout time.Duration) *Fetcher {
	if rps <= 0 {
		rps = 2
	}
	if timeout <= 0 {
		timeout = 45 * time.Second
	}
	return &Fetcher{
		hc: &http.Client{Timeout: timeout},
		rl: rate.NewLimiter(rate.Limit(rps), rps),
	}
}

// FetchPage GETs the URL and returns the raw HTML. Retries on 429 and
// transient 5xx, honoring Retry-After when provided.
func (f *Fetcher) FetchPage(ctx context.Context, url string) (string, error) {
	if err := f.rl.Wait(ctx); err != nil {
		return "", err
	}

	start := time.Now()
	var lastErr error
	for i := 0; i < 4; i++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return "", err
		}
		req.Header.Set("User-Agent", userAgent)
		req.Header.Set("Accept-Language", acceptLanguage)

		resp, err := f.hc.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return "", ctx.Err()
			}
			lastErr = err
			if i < 3 && sleepCtx(ctx, backoff(i)) {
				continue
			}
			if ctx.Err() != nil {
				return "", ctx.Err()
			}
			return "", lastErr
		}

		switch resp.StatusCode {
		case http.StatusOK:
			b, err := io.ReadAll(io.LimitReader(resp.Body, maxPageBytes))
			resp.Body.Close()
			observability.ObserveExternal("booking", "page", resp.StatusCode, time.Since(start))
			if err != nil {
				return "", err
			}
			return string(b), nil

		case http.StatusNotFound:
			resp.Body.Close()
			observability.ObserveExternal("booking", "page", resp.StatusCode, time.Since(start))
			return "", fmt.Errorf("fetch %s: %w", url, domain.ErrNotFound)

		case http.StatusTooManyRequests, http.StatusInternalServerError,
			http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
			wait := retryAfter(resp)
			resp.Body.Close()
			if wait == 0 {
				wait = backoff(i)
			}
			lastErr = fmt.Errorf("remote %d", resp.StatusCode)
			if i < 3 && sleepCtx(ctx, wait) {
				continue
			}
			if ctx.Err() != nil {
				return "", ctx.Err()
			}
			return "", lastErr

		default:
			b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
			resp.Body.Close()
			observability.ObserveExternal("booking", "page", resp.StatusCode, time.Since(start))
			return "", fmt.Errorf("bad status %d: %s", resp.StatusCode, strings.TrimSpace(string(b)))
		}
	}

	return "", lastErr
}

// sleepCtx waits for d or returns early if ctx is done.
func sleepCtx(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return true
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

// retryAfter parses Retry-After (seconds or HTTP-date). Returns 0 if absent/invalid.
func retryAfter(resp *http.Response) time.Duration {
	h := resp.Header.Get("Retry-After")
	if h == "" {
		return 0
	}
	if secs, err := strconv.Atoi(strings.TrimSpace(h)); err == nil && secs >= 0 {
		return time.Duration(secs) * time.Second
	}
	if t, err := http.ParseTime(h); err == nil {
		if d := time.Until(t); d > 0 {
			return d
		}
	}
	return 0
}

// backoff returns an exponential delay (200ms, 400ms, 800ms...) with up to
// +50% jitter to avoid thundering herds.
func backoff(i int) time.Duration {
	base := time.Duration(1<<i) * 200 * time.Millisecond
	var b [1]byte
	if _, err := crand.Read(b[:]); err != nil {
		return base
	}
	f := float64(b[0]) / 255.0
	j := time.Duration(0.5 * f * float64(base))
	return base + j
}
