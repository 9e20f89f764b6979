// Package id issues record identifiers for journaled transactions.
package id

import (
	"time"

	"github.com/oklog/ulid/v2"
)

// New returns a ULID string. A source's own transaction ID may repeat or be
// unknown, so every journal row gets one of these as its key. IDs issued by
// one process sort in issue order, including within a millisecond.
func New() string {
	return ulid.Make().String()
}

// Time reports when s was issued.
func Time(s string) (time.Time, error) {
	u, err := ulid.ParseStrict(s)
	if err != nil {
		return time.Time{}, err
	}
	return ulid.Time(u.Time()).UTC(), nil
}
