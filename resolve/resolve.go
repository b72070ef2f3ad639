// Copyright (c) Tailscale Inc & AUTHORS
// SPDX-License-Identifier: BSD-3-Clause

// Package resolve computes the avatar color each client variant assigns to a
// peer ID.
//
// Every function in this package is a pure function of its arguments over
// the fixed tables in package palette. They accept any int64, never fail, and
// are safe for concurrent use. A peer that cannot be mapped onto a client's
// palette resolves to [peercolor.Unknown].
package resolve

import (
	"fmt"

	"github.com/creachadair/mds/slice"
	"github.com/tailscale/peercolor"
	"github.com/tailscale/peercolor/palette"
)

// remap is the desktop residue permutation, copied once from the registry.
var remap = palette.DesktopRemap()

// toAndroid translates desktop canonical indices into Telegram X positions.
var toAndroid, _ = palette.IndexCorrespondence(peercolor.Desktop, peercolor.Android)

// DesktopIndex returns the canonical desktop palette index for peer.
//
// The residue is taken with floored modulo, so negative IDs wrap around into
// [0, 7) rather than going negative: -5 has residue 2.
func DesktopIndex(peer int64) int {
	n := int64(len(remap))
	r := peer % n
	if r < 0 {
		r += n
	}
	return remap[r]
}

// gradientIndex returns |peer| mod n, computing the magnitude in unsigned
// arithmetic so that math.MinInt64 is handled.
func gradientIndex(peer int64, n int) int {
	mag := uint64(peer)
	if peer < 0 {
		mag = -mag
	}
	return int(mag % uint64(n))
}

func desktopEntry(peer int64) (peercolor.ColorEntry, bool) {
	return palette.Entry(peercolor.Desktop, DesktopIndex(peer))
}

func androidEntry(peer int64) (peercolor.ColorEntry, bool) {
	pos, ok := toAndroid.Lookup(DesktopIndex(peer))
	if !ok {
		return peercolor.ColorEntry{}, false
	}
	return palette.VisibleEntry(peercolor.Android, pos)
}

func iosEntry(peer int64) (peercolor.ColorEntry, bool) {
	return palette.Entry(peercolor.IOS, gradientIndex(peer, palette.Len(peercolor.IOS)))
}

func macosEntry(peer int64) (peercolor.ColorEntry, bool) {
	return palette.Entry(peercolor.MacOS, gradientIndex(peer, palette.Len(peercolor.MacOS)))
}

// resolvers is the dispatch table from variant to selection rule.
// Each variant has its own entry even where the rules coincide.
var resolvers = [peercolor.NumVariants]func(int64) (peercolor.ColorEntry, bool){
	peercolor.Desktop: desktopEntry,
	peercolor.Android: androidEntry,
	peercolor.IOS:     iosEntry,
	peercolor.MacOS:   macosEntry,
}

func init() {
	for v, r := range resolvers {
		if r == nil {
			panic(fmt.Sprintf("resolve: no resolver for variant %v", peercolor.Variant(v)))
		}
	}
}

func nameOf(e peercolor.ColorEntry, ok bool) string {
	if !ok {
		return peercolor.Unknown
	}
	return e.Name
}

// Desktop returns the Telegram Desktop color name for peer.
func Desktop(peer int64) string { return nameOf(desktopEntry(peer)) }

// Android returns the Telegram X color name for peer. Telegram X takes the
// desktop index and translates it onto its own palette; an index with no
// translation yields [peercolor.Unknown].
func Android(peer int64) string { return nameOf(androidEntry(peer)) }

// IOS returns the Telegram iOS color name for peer, chosen by |peer| mod 7.
func IOS(peer int64) string { return nameOf(iosEntry(peer)) }

// MacOS returns the native Telegram macOS color name for peer. It currently
// follows the same rule as [IOS].
func MacOS(peer int64) string { return nameOf(macosEntry(peer)) }

// Lookup returns the palette entry v assigns to peer, and reports whether
// there is one. It reports false for an invalid variant.
func Lookup(v peercolor.Variant, peer int64) (peercolor.ColorEntry, bool) {
	if !v.Valid() {
		return peercolor.ColorEntry{}, false
	}
	return resolvers[v](peer)
}

// Resolve returns the color name v assigns to peer, or [peercolor.Unknown].
func Resolve(v peercolor.Variant, peer int64) string { return nameOf(Lookup(v, peer)) }

// Filter returns the peers whose color under v is called name, in their
// original order. The input slice is not modified.
func Filter(v peercolor.Variant, peers []int64, name string) []int64 {
	cp := make([]int64, len(peers))
	copy(cp, peers)
	return slice.Partition(cp, func(p int64) bool {
		return Resolve(v, p) == name
	})
}
