package httpclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func newTestClient(interval time.Duration) *Client {
	c := NewClient(nil, interval, "mangaview-test")
	c.retryBase = time.Millisecond
	return c
}

func TestClient_Do_Success(t *testing.T) {
	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := newTestClient(0)
	req, _ := http.NewRequest(http.MethodGet, srv.URL, nil)
	resp, err := c.Do(context.Background(), req)
	if err != nil {
		t.Fatalf("Do failed: %v", err)
	}
	resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("expected 200, got %d", resp.StatusCode)
	}
	if gotUA != "mangaview-test" {
		t.Errorf("expected user agent to be set, got %q", gotUA)
	}
}

func TestClient_Do_RetriesRateLimited(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := newTestClient(0)
	req, _ := http.NewRequest(http.MethodGet, srv.URL, nil)
	resp, err := c.Do(context.Background(), req)
	if err != nil {
		t.Fatalf("Do failed: %v", err)
	}
	resp.Body.Close()

	if atomic.LoadInt32(&calls) != 2 {
		t.Errorf("expected 2 calls, got %d", calls)
	}
}

func TestClient_Do_GivesUp(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := newTestClient(0)
	req, _ := http.NewRequest(http.MethodGet, srv.URL, nil)
	if _, err := c.Do(context.Background(), req); err == nil {
		t.Fatal("expected error after exhausting retries")
	}
	if atomic.LoadInt32(&calls) != 3 {
		t.Errorf("expected 3 attempts, got %d", calls)
	}
}

func TestClient_Do_CancelledContext(t *testing.T) {
	c := newTestClient(0)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	req, _ := http.NewRequest(http.MethodGet, "http://127.0.0.1:1", nil)
	if _, err := c.Do(ctx, req); err != context.Canceled {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestParseRetryAfter(t *testing.T) {
	resp := &http.Response{Header: http.Header{}}
	if d := parseRetryAfter(resp); d != 0 {
		t.Errorf("expected 0 without header, got %v", d)
	}

	resp.Header.Set("Retry-After", "2")
	if d := parseRetryAfter(resp); d != 2*time.Second {
		t.Errorf("expected 2s, got %v", d)
	}

	resp.Header.Set("Retry-After", "garbage")
	if d := parseRetryAfter(resp); d != 0 {
		t.Errorf("expected 0 for garbage, got %v", d)
	}
}

func TestClient_Reserve_SpacesRequests(t *testing.T) {
	c := newTestClient(50 * time.Millisecond)

	if d := c.reserve(); d != 0 {
		t.Errorf("first slot should be free, got wait %v", d)
	}
	if d := c.reserve(); d < 40*time.Millisecond {
		t.Errorf("second slot should wait about the interval, got %v", d)
	}
}

func TestClient_Delay_PushesNextSlot(t *testing.T) {
	c := newTestClient(0)
	c.delay(time.Second)

	if d := c.reserve(); d < 900*time.Millisecond {
		t.Errorf("expected wait close to 1s after delay, got %v", d)
	}
}
