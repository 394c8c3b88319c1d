/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package usatt

import (
	"context"
	"net/http"
	"time"

	"github.com/mikeb26/ttleague-tdbot/internal"
)

const baseURL = "https://usatt.simplycompete.com"

type Client struct {
	// profile pages move slowly; member ratings update after events
	httpClient30day *http.Client
	httpClient1day  *http.Client

	// overridable for tests
	base string
}

func NewClient(ctx context.Context) *Client {
	ret := &Client{
		httpClient30day: internal.NewCachedHttpClient(ctx, 30*24*time.Hour),
		base:            baseURL,
	}
	if ret.httpClient30day != http.DefaultClient {
		ret.httpClient1day = internal.NewCachedHttpClient(ctx, 24*time.Hour)
	} else {
		ret.httpClient1day = http.DefaultClient
	}

	return ret
}
