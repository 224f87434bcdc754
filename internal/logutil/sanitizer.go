// Package logutil provides logging utilities for sanitization
package logutil

import (
	"regexp"
)

// SanitizeSQL removes literal values from SQL queries before logging.
// Query text reaches the logs on every resolution, and literals can
// carry vendor names and contract amounts.
//
// Replacements:
// - String literals (single quotes): '<redacted>'
// - Numeric literals: <num>
// - IPv4 addresses: <ip>
// - UUIDs: <uuid>
//
// Example:
//
//	SELECT * FROM evms WHERE WHO1_하도급업체 LIKE '%금빛건설%' AND R10_합계_금액 > 1000000
//	=> SELECT * FROM evms WHERE WHO1_하도급업체 LIKE '<redacted>' AND R10_합계_금액 > <num>
func SanitizeSQL(query string) string {
	// Order matters - process from most specific to least specific

	// 1. Single-quoted string literals, including doubled-quote escapes
	// ('it''s')
	singleQuotePattern := regexp.MustCompile(`'(?:[^']|'')*'`)
	query = singleQuotePattern.ReplaceAllString(query, "'<redacted>'")

	// 2. IPv4 addresses, before plain numerics eat the octets
	ipPattern := regexp.MustCompile(`\b\d{1,3}\.\d{1,3}\.\d{1,3}\.\d{1,3}\b`)
	query = ipPattern.ReplaceAllString(query, "<ip>")

	// 3. UUIDs
	uuidPattern := regexp.MustCompile(`\b[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}\b`)
	query = uuidPattern.ReplaceAllString(query, "<uuid>")

	// 4. Numeric literals: integers, floats, scientific notation.
	// Column names like R10_합계_금액 are untouched because \b does not
	// split identifier characters.
	numericPattern := regexp.MustCompile(`\b\d+(?:\.\d+)?(?:[eE][+-]?\d+)?\b`)
	query = numericPattern.ReplaceAllString(query, "<num>")

	return query
}

// credential query parameters that must never appear in logs
var credentialParamPattern = regexp.MustCompile(`([?&](?:key|api_key|apikey|token|access_token)=)[^&\s]+`)

// RedactCredential masks credential-bearing query parameters in a URL.
// The Gemini API carries the key as a ?key= parameter, so any logged
// request URL has to pass through here first.
//
// Example:
//
//	https://host/v1beta/models/m:generateContent?key=AIzaSyXXXX
//	=> https://host/v1beta/models/m:generateContent?key=<redacted>
func RedactCredential(url string) string {
	return credentialParamPattern.ReplaceAllString(url, "$1<redacted>")
}
