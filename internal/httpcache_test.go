/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package internal

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestHeaderOverrideTransport(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Cache-Control", "no-store")
			w.Header().Set("Pragma", "no-cache")
			w.Write([]byte("ok"))
		}))
	defer srv.Close()

	var sawAgent string
	rt := &HeaderOverrideTransport{
		wrappedRT: http.DefaultTransport,
		Request: func(req *http.Request) {
			req.Header.Set("User-Agent", UserAgent)
			sawAgent = req.Header.Get("User-Agent")
		},
		Response: func(resp *http.Response) error {
			resp.Header.Del("Pragma")
			resp.Header.Set("Cache-Control", "public, max-age=60")
			return nil
		},
	}

	client := &http.Client{Transport: rt, Timeout: 5 * time.Second}
	resp, err := client.Get(srv.URL)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if sawAgent != UserAgent {
		t.Errorf("request hook not applied; user agent = %q", sawAgent)
	}
	if resp.Header.Get("Pragma") != "" {
		t.Errorf("Pragma header should have been stripped")
	}
	if got := resp.Header.Get("Cache-Control"); got != "public, max-age=60" {
		t.Errorf("Cache-Control = %q; want rewritten max-age", got)
	}
}

func TestHeaderOverrideTransportLeavesOriginalRequest(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("ok"))
		}))
	defer srv.Close()

	rt := &HeaderOverrideTransport{
		wrappedRT: http.DefaultTransport,
		Request: func(req *http.Request) {
			req.Header.Set("X-Test", "set")
		},
	}

	req, err := http.NewRequest("GET", srv.URL, nil)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	resp, err := rt.RoundTrip(req)
	if err != nil {
		t.Fatalf("round trip: %v", err)
	}
	resp.Body.Close()

	if req.Header.Get("X-Test") != "" {
		t.Errorf("caller's request was mutated")
	}
}
