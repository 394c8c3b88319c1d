/* Copyright © 2025-2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package internal

const (
	UserAgent        = "ttleague-tdbot/0.3.0 (+https://github.com/mikeb26/ttleague-tdbot)"
	WebCacheBucket   = "bopmatic-ttleague-tdbot-prod-webcache"
	SnapshotBucket   = "bopmatic-ttleague-tdbot-prod-snapshots"
	DefaultNewRating = 1200

	// USATT publishes league ratings in this band; anything scraped outside
	// it is treated as a parse failure
	MinValidRating = 100
	MaxValidRating = 3000
)
