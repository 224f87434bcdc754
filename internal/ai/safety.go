package ai

import (
	"fmt"
	"regexp"
)

// mutatingKeywords rejects any statement that could modify the dataset.
// This is a blocklist, not a parser: it does not prove the string is a
// well-formed SELECT, only that no mutating keyword appears word-bounded
// anywhere in it. That covers every query shape this system generates.
var mutatingKeywords = regexp.MustCompile(`(?i)\b(DROP|DELETE|INSERT|UPDATE|ALTER|CREATE|TRUNCATE)\b`)

// ValidateSQL rejects candidate queries containing a mutating statement
// keyword. It is the single enforcement point run on every candidate
// before execution, regardless of which tier produced it.
func ValidateSQL(sql string) error {
	if m := mutatingKeywords.FindString(sql); m != "" {
		return fmt.Errorf("unsafe SQL rejected: %q statement is not allowed, only SELECT is permitted", m)
	}
	return nil
}
