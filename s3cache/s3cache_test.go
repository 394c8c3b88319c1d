/* Copyright (c) 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file in the current directory for license terms
 */
package s3cache

import (
	"bytes"
	"context"
	"fmt"
	"testing"

	"github.com/gregjones/httpcache/test"
)

// matches internal.WebCacheBucket; duplicated here to keep the test package
// free of a dependency cycle through internal
const testBucket = "bopmatic-ttleague-tdbot-prod-webcache"

func TestS3Cache(t *testing.T) {
	cache := New(context.Background(), testBucket, false, true)
	err := cache.Init()
	if err != nil {
		t.Skip(fmt.Sprintf("Skipping test due to lack of access to %v: %v",
			testBucket, err))
	}

	test.Cache(t, cache)
}

func TestS3CacheWithGzip(t *testing.T) {
	cache := New(context.Background(), testBucket, true, true)
	err := cache.Init()
	if err != nil {
		t.Skip(fmt.Sprintf("Skipping test due to lack of access to %v: %v",
			testBucket, err))
	}

	test.Cache(t, cache)
}

func TestSnapshotRoundTrip(t *testing.T) {
	cache := New(context.Background(), testBucket, false, true)
	err := cache.Init()
	if err != nil {
		t.Skip(fmt.Sprintf("Skipping test due to lack of access to %v: %v",
			testBucket, err))
	}

	want := []byte("league database image")
	if err := cache.PutSnapshot("testleague", "unittest", want); err != nil {
		t.Fatalf("PutSnapshot: %v", err)
	}
	got, err := cache.GetSnapshot("testleague", "unittest")
	if err != nil {
		t.Fatalf("GetSnapshot: %v", err)
	}
	if !bytes.Equal(got, want) {
		t.Errorf("snapshot round trip: got %q want %q", got, want)
	}
}
