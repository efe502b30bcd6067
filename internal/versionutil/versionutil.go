// Package versionutil compares platform version strings of the form used by
// integration definitions in their fromversion/toversion fields (e.g. "4.1.0").
package versionutil

import (
	"strconv"
	"strings"
)

// Compare compares two dotted version strings numerically, segment by segment.
// Missing segments are treated as zero, so "5.0" equals "5.0.0".
// Non-numeric segments are treated as zero.
// Returns -1 if a < b, 0 if a == b, and 1 if a > b.
func Compare(a, b string) int {
	as := segments(a)
	bs := segments(b)

	n := len(as)
	if len(bs) > n {
		n = len(bs)
	}
	for i := 0; i < n; i++ {
		av := segmentAt(as, i)
		bv := segmentAt(bs, i)
		if av < bv {
			return -1
		}
		if av > bv {
			return 1
		}
	}
	return 0
}

// AtLeast reports whether version v is greater than or equal to min.
func AtLeast(v, min string) bool {
	return Compare(v, min) >= 0
}

func segments(v string) []string {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil
	}
	return strings.Split(v, ".")
}

func segmentAt(segs []string, i int) int {
	if i >= len(segs) {
		return 0
	}
	n, err := strconv.Atoi(strings.TrimSpace(segs[i]))
	if err != nil {
		return 0
	}
	return n
}
