// Copyright (c) Tailscale Inc & AUTHORS
// SPDX-License-Identifier: BSD-3-Clause

// Package palette holds the avatar color palettes used by each client
// variant, together with the auxiliary ordering data needed to reproduce
// each client's selection rule.
//
// # Structure
//
// Every variant has a canonical palette, its full authoritative color list.
// A variant may also display a filtered and reordered view of its canonical
// palette, described by a list of canonical indices (the visible index set).
// Variants without filtering use the canonical palette as-is.
//
// Translating a position between two variants goes through a
// [Correspondence], built once by inverting a visible index set.
//
// All the tables are built when the package is initialized and never change
// afterward, so every function here is safe for concurrent use.
package palette

import (
	"fmt"

	"github.com/creachadair/mds/mapset"
	"github.com/tailscale/peercolor"
	"golang.org/x/exp/slices"
)

// A table is the registry record for one variant.
type table struct {
	canonical peercolor.Palette
	visible   []int // indices into canonical, in display order; nil means all
}

var tables [peercolor.NumVariants]table

// Canonical returns a copy of the full palette for v.
// It panics if v is not a valid variant.
func Canonical(v peercolor.Variant) peercolor.Palette {
	return slices.Clone(mustTable(v).canonical)
}

// Visible returns a copy of the palette v actually shows, in display order.
// For variants without filtering this equals [Canonical].
// It panics if v is not a valid variant.
func Visible(v peercolor.Variant) peercolor.Palette {
	t := mustTable(v)
	if t.visible == nil {
		return slices.Clone(t.canonical)
	}
	out := make(peercolor.Palette, len(t.visible))
	for pos, idx := range t.visible {
		out[pos] = t.canonical[idx]
	}
	return out
}

// VisibleIndices returns the canonical indices of the entries v shows, in
// display order.
// It panics if v is not a valid variant.
func VisibleIndices(v peercolor.Variant) []int {
	t := mustTable(v)
	if t.visible == nil {
		return identity(len(t.canonical))
	}
	return slices.Clone(t.visible)
}

// Entry returns the canonical entry of v at index i, and reports whether i
// is in range.
func Entry(v peercolor.Variant, i int) (peercolor.ColorEntry, bool) {
	t := mustTable(v)
	if i < 0 || i >= len(t.canonical) {
		return peercolor.ColorEntry{}, false
	}
	return t.canonical[i], true
}

// VisibleEntry returns the entry v shows at display position pos, and reports
// whether pos is in range.
func VisibleEntry(v peercolor.Variant, pos int) (peercolor.ColorEntry, bool) {
	t := mustTable(v)
	if t.visible == nil {
		return Entry(v, pos)
	}
	if pos < 0 || pos >= len(t.visible) {
		return peercolor.ColorEntry{}, false
	}
	return t.canonical[t.visible[pos]], true
}

// Len reports the number of entries in the canonical palette of v.
func Len(v peercolor.Variant) int { return len(mustTable(v).canonical) }

func mustTable(v peercolor.Variant) *table {
	if !v.Valid() {
		panic(fmt.Sprintf("palette: invalid variant %d", int(v)))
	}
	return &tables[v]
}

func identity(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}

// checkVisible reports an error unless idx is a duplicate-free sequence of
// valid indices into a palette of length n.
func checkVisible(idx []int, n int) error {
	seen := mapset.New[int]()
	for pos, i := range idx {
		if i < 0 || i >= n {
			return fmt.Errorf("position %d: index %d out of range [0, %d)", pos, i, n)
		} else if seen.Has(i) {
			return fmt.Errorf("position %d: duplicate index %d", pos, i)
		}
		seen.Add(i)
	}
	return nil
}
