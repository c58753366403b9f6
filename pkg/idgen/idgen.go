// Package idgen derives sequential display identifiers such as
// PATIENT001 from the last identifier a store handed out.
package idgen

import (
	"fmt"
	"regexp"
	"strconv"
)

// Next returns the identifier following last for the given prefix.
// Identifiers are the prefix followed by a zero-padded sequence number
// (minimum three digits, growing as needed). When last is empty or does
// not match the expected shape, the sequence restarts at 001.
func Next(prefix, last string) string {
	pattern := regexp.MustCompile("^" + regexp.QuoteMeta(prefix) + `(\d+)$`)

	m := pattern.FindStringSubmatch(last)
	if m == nil {
		return fmt.Sprintf("%s%03d", prefix, 1)
	}

	n, err := strconv.Atoi(m[1])
	if err != nil {
		return fmt.Sprintf("%s%03d", prefix, 1)
	}

	return fmt.Sprintf("%s%03d", prefix, n+1)
}
