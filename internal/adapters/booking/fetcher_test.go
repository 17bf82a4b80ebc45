package booking_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"hoteai/internal/adapters/booking"
	"hoteai/internal/domain"
)

func TestFetcher_RetriesThenSuccess(t *testing.T) {
	var hits int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch atomic.AddInt32(&hits, 1) {
		case 1, 2:
			w.WriteHeader(500)
		default:
			if al := r.Header.Get("Accept-Language"); al != "he-IL" {
				t.Errorf("Accept-Language = %q", al)
			}
			w.WriteHeader(200)
			_, _ = w.Write([]byte("<html>page</html>"))
		}
	}))
	defer ts.Close()

	f := booking.NewFetcher(100, 2*time.Second)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	html, err := f.FetchPage(ctx, ts.URL)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if html != "<html>page</html>" {
		t.Fatalf("unexpected body: %q", html)
	}
	if atomic.LoadInt32(&hits) < 3 {
		t.Fatalf("expected at least 3 calls due to retries, got %d", hits)
	}
}

func TestFetcher_404(t *testing.T) {
	ts := httptest.NewServer(http.NotFoundHandler())
	defer ts.Close()

	f := booking.NewFetcher(100, time.Second)
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	_, err := f.FetchPage(ctx, ts.URL)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
