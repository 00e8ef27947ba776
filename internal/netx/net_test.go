package netx

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestDownloadPresignedURL(t *testing.T) {
	t.Run("success 200 OK", func(t *testing.T) {
		var gotMethod, gotQuery string

		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotMethod = r.Method
			gotQuery = r.URL.RawQuery
			_, _ = w.Write([]byte("id,title\n1,Lunch\n"))
		}))
		defer ts.Close()

		body, err := DownloadPresignedURL(context.Background(), ts.URL+"/exports/a.csv?X-Amz-Signature=abc")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if gotMethod != http.MethodGet {
			t.Fatalf("method = %q, want GET", gotMethod)
		}
		if gotQuery != "X-Amz-Signature=abc" {
			t.Fatalf("query = %q, signature must be preserved", gotQuery)
		}
		if string(body) != "id,title\n1,Lunch\n" {
			t.Fatalf("body = %q", string(body))
		}
	})

	t.Run("non-200 -> error", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusForbidden)
			_, _ = w.Write([]byte("SignatureDoesNotMatch"))
		}))
		defer ts.Close()

		_, err := DownloadPresignedURL(context.Background(), ts.URL)
		if err == nil {
			t.Fatal("expected error, got nil")
		}
		if !strings.Contains(err.Error(), "download failed: 403") || !strings.Contains(err.Error(), "SignatureDoesNotMatch") {
			t.Fatalf("error = %q, want status and body", err.Error())
		}
	})

	t.Run("bad url", func(t *testing.T) {
		if _, err := DownloadPresignedURL(context.Background(), "://nope"); err == nil {
			t.Fatal("expected error for malformed url")
		}
	})

	t.Run("cancelled context", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		defer ts.Close()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		if _, err := DownloadPresignedURL(ctx, ts.URL); err == nil {
			t.Fatal("expected error for cancelled context")
		}
	})
}
