package challenge

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newTestProvider(t *testing.T, handler http.HandlerFunc) *Provider {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	p, err := NewProvider(Config{
		VerifyURL: srv.URL,
		Secret:    "shared-secret",
		Timeout:   2 * time.Second,
	})
	if err != nil {
		t.Fatalf("NewProvider failed: %v", err)
	}
	return p
}

func TestVerifySuccess(t *testing.T) {
	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			t.Errorf("ParseForm failed: %v", err)
		}
		if got := r.PostFormValue("secret"); got != "shared-secret" {
			t.Errorf("expected shared secret, got %q", got)
		}
		if got := r.PostFormValue("response"); got != "challenge-token" {
			t.Errorf("expected challenge token, got %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":true,"score":0.9}`))
	})

	ok, err := p.Verify(context.Background(), "challenge-token")
	if err != nil {
		t.Fatalf("Verify failed: %v", err)
	}
	if !ok {
		t.Fatal("expected affirmative verification")
	}
}

func TestVerifyNegativeAnswer(t *testing.T) {
	p := newTestProvider(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"success":false,"score":0.1}`))
	})

	ok, err := p.Verify(context.Background(), "challenge-token")
	if err != nil {
		t.Fatalf("Verify failed: %v", err)
	}
	if ok {
		t.Fatal("expected negative verification")
	}
}

func TestVerifyEmptyTokenShortCircuits(t *testing.T) {
	called := false
	p := newTestProvider(t, func(w http.ResponseWriter, _ *http.Request) {
		called = true
		_, _ = w.Write([]byte(`{"success":true}`))
	})

	ok, err := p.Verify(context.Background(), "")
	if err != nil {
		t.Fatalf("Verify failed: %v", err)
	}
	if ok {
		t.Fatal("empty token must not verify")
	}
	if called {
		t.Fatal("empty token must not reach the provider")
	}
}

func TestVerifyServerErrorFailsClosed(t *testing.T) {
	p := newTestProvider(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	ok, err := p.Verify(context.Background(), "challenge-token")
	if !errors.Is(err, ErrProviderUnavailable) {
		t.Fatalf("expected ErrProviderUnavailable, got %v", err)
	}
	if ok {
		t.Fatal("provider error must not verify")
	}
}

func TestVerifyMalformedBodyFailsClosed(t *testing.T) {
	p := newTestProvider(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("not json"))
	})

	ok, err := p.Verify(context.Background(), "challenge-token")
	if !errors.Is(err, ErrProviderUnavailable) {
		t.Fatalf("expected ErrProviderUnavailable, got %v", err)
	}
	if ok {
		t.Fatal("malformed body must not verify")
	}
}

func TestVerifyTimeoutFailsClosed(t *testing.T) {
	// The handler parks until the client gives up; waiting on the request
	// context lets srv.Close drain the connection afterwards.
	srv := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	t.Cleanup(srv.Close)

	p, err := NewProvider(Config{
		VerifyURL: srv.URL,
		Secret:    "shared-secret",
		Timeout:   50 * time.Millisecond,
	})
	if err != nil {
		t.Fatalf("NewProvider failed: %v", err)
	}

	ok, err := p.Verify(context.Background(), "challenge-token")
	if !errors.Is(err, ErrProviderUnavailable) {
		t.Fatalf("expected ErrProviderUnavailable, got %v", err)
	}
	if ok {
		t.Fatal("timeout must not verify")
	}
}

func TestNewProviderRequiresURL(t *testing.T) {
	if _, err := NewProvider(Config{}); err == nil {
		t.Fatal("expected error for missing verify URL")
	}
}
