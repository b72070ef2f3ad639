// Copyright (c) Tailscale Inc & AUTHORS
// SPDX-License-Identifier: BSD-3-Clause

package peercolor

import (
	"strconv"
	"strings"
	"unicode"
)

// ParseIDs extracts peer IDs from free text holding one ID per line.
// Surrounding whitespace is ignored, and lines that are blank, are not
// decimal integers, or do not fit in 64 bits are silently skipped.
// The result preserves input order, including duplicates.
//
// Any Unicode line break ends a line. An ID may carry a sign, may use any
// Unicode decimal digits, and may separate digits with single underscores,
// as in "1_000".
func ParseIDs(text string) []int64 {
	var ids []int64
	for _, line := range strings.FieldsFunc(text, isLineBreak) {
		id, ok := parseID(strings.TrimSpace(line))
		if !ok {
			continue // not an ID, skip it
		}
		ids = append(ids, id)
	}
	return ids
}

func isLineBreak(r rune) bool {
	switch r {
	case '\n', '\r', '\v', '\f', 0x1c, 0x1d, 0x1e, 0x85, 0x2028, 0x2029:
		return true
	}
	return false
}

// parseID parses s as a signed decimal integer, normalizing Unicode digits
// to ASCII and removing digit separators first.
func parseID(s string) (int64, bool) {
	if s == "" {
		return 0, false
	}
	var sb strings.Builder
	rs := []rune(s)
	if rs[0] == '+' || rs[0] == '-' {
		sb.WriteRune(rs[0])
		rs = rs[1:]
	}
	if len(rs) == 0 {
		return 0, false
	}
	for i, r := range rs {
		if r == '_' {
			// Only a single underscore between two digits.
			if i == 0 || i == len(rs)-1 || rs[i-1] == '_' {
				return 0, false
			}
			continue
		}
		d, ok := digitValue(r)
		if !ok {
			return 0, false
		}
		sb.WriteByte('0' + d)
	}
	id, err := strconv.ParseInt(sb.String(), 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}

// digitValue returns the value of the decimal digit r. Unicode decimal
// digits come in contiguous runs of ten, starting at zero.
func digitValue(r rune) (byte, bool) {
	if r >= '0' && r <= '9' {
		return byte(r - '0'), true
	} else if !unicode.IsDigit(r) {
		return 0, false
	}
	start := r
	for unicode.IsDigit(start - 1) {
		start--
	}
	return byte((r - start) % 10), true
}
