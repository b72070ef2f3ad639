// Copyright (c) Tailscale Inc & AUTHORS
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"image"
	"strconv"

	"github.com/tailscale/peercolor"
	"github.com/tailscale/peercolor/resolve"
)

// UnknownColor fills the chip of a peer that has no color under a client.
var UnknownColor = peercolor.MustColor("#808080")

// ChipEntries returns one entry per peer, named by the peer ID and colored
// as client v shows it.
func ChipEntries(v peercolor.Variant, peers []int64) peercolor.Palette {
	out := make(peercolor.Palette, len(peers))
	for i, p := range peers {
		out[i].Name = strconv.FormatInt(p, 10)
		if e, ok := resolve.Lookup(v, p); ok {
			out[i].Value = e.Value
		} else {
			out[i].Value = UnknownColor
		}
	}
	return out
}

// Chips draws a chip for each of peers, in order, filled with the avatar
// color client v assigns it and labelled with the ID. The layout matches
// [Palette].
func Chips(v peercolor.Variant, peers []int64) image.Image {
	return Palette(ChipEntries(v, peers))
}
