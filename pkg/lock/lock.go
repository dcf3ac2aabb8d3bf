// Package lock serializes operations that touch the same account.
//
// Every mutating operation acquires the lock for each account it touches
// before it reads any balance, and holds it until its unit of work has
// committed. Keys are acquired in sorted order so two transfers between the
// same pair of accounts cannot deadlock.
package lock

import (
	"context"
	"errors"
	"sort"
	"strconv"
)

// ErrNotAcquired is returned when a lock could not be obtained.
var ErrNotAcquired = errors.New("lock not acquired")

// Locker runs fn while holding the locks named by keys.
type Locker interface {
	WithLock(ctx context.Context, keys []string, fn func(ctx context.Context) error) error
}

// AccountKey returns the lock key for an account number.
func AccountKey(number int64) string {
	return "account:" + strconv.FormatInt(number, 10)
}

// normalize sorts keys and drops duplicates and empty keys.
func normalize(keys []string) []string {
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		if k != "" {
			out = append(out, k)
		}
	}
	sort.Strings(out)
	uniq := out[:0]
	for i, k := range out {
		if i == 0 || k != out[i-1] {
			uniq = append(uniq, k)
		}
	}
	return uniq
}
