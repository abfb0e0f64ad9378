// SPDX-License-Identifier: GPL-3.0-or-later

package detect

// Buckets all progress values that may be reported to Observer.OnUpdate
var Buckets = []int{10, 20, 40, 60, 80, 90, 100}

// bucketRule maps an inclusive percentage range to a bucket. The rule fires
// only while the committed cursor is below "below".
type bucketRule struct {
	low    int
	high   int
	below  int
	bucket int
}

// cursor starts at 0 so the first rule "below 1" means "cursor == 0"
var bucketRules = []bucketRule{
	{low: 0, high: 19, below: 1, bucket: 10},
	{low: 20, high: 39, below: 20, bucket: 20},
	{low: 40, high: 59, below: 40, bucket: 40},
	{low: 60, high: 79, below: 60, bucket: 60},
	{low: 80, high: 89, below: 80, bucket: 80},
	{low: 90, high: 97, below: 90, bucket: 90},
	{low: 98, high: 100, below: 100, bucket: 100},
}

// Percentage returns floor(index * 100 / total)
func Percentage(index, total int) int {
	if total <= 0 {
		return 100
	}

	return (index * 100) / total
}

// NextBucket returns the bucket to commit for percentage given the
// currently committed cursor. ok is false when no transition occurs.
func NextBucket(percentage, cursor int) (bucket int, ok bool) {
	for _, r := range bucketRules {
		if percentage < r.low || percentage > r.high {
			continue
		}

		if cursor < r.below {
			return r.bucket, true
		}

		return cursor, false
	}

	return cursor, false
}
