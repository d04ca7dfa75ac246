package compiler

import (
	"strings"
	"time"
)

// isDatetime reports whether s parses as an ISO-8601 datetime, mirroring
// the Python original's `datetime.fromisoformat(val.replace("Z", "+00:00"))`
// probe: a trailing "Z" is rewritten to an explicit UTC offset before
// attempting RFC3339. fromisoformat also accepts a bare date with no time
// component ("2023-01-01"), so that layout is tried too. This is
// deliberately narrow — see the Design Notes on the datetime heuristic —
// and must not be swapped for a permissive third-party date parser.
func isDatetime(s string) bool {
	candidate := s
	if strings.HasSuffix(candidate, "Z") {
		candidate = strings.TrimSuffix(candidate, "Z") + "+00:00"
	}
	_, err := time.Parse("2006-01-02T15:04:05.999999999-07:00", candidate)
	if err == nil {
		return true
	}
	_, err = time.Parse("2006-01-02T15:04:05-07:00", candidate)
	if err == nil {
		return true
	}
	_, err = time.Parse("2006-01-02T15:04:05", candidate)
	if err == nil {
		return true
	}
	_, err = time.Parse("2006-01-02", candidate)
	return err == nil
}
