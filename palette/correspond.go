// Copyright (c) Tailscale Inc & AUTHORS
// SPDX-License-Identifier: BSD-3-Clause

package palette

import "github.com/tailscale/peercolor"

// A Correspondence is a partial mapping from a canonical index in one
// variant's palette to a position in another variant's visible palette.
// The zero value maps nothing.
type Correspondence struct {
	m map[int]int
}

// invert builds the correspondence that takes visible[p] to p.
func invert(visible []int) Correspondence {
	m := make(map[int]int, len(visible))
	for pos, idx := range visible {
		m[idx] = pos
	}
	return Correspondence{m: m}
}

// Lookup returns the position corresponding to canonical index idx, and
// reports whether there is one.
func (c Correspondence) Lookup(idx int) (int, bool) {
	pos, ok := c.m[idx]
	return pos, ok
}

// Len reports the number of indices that have a correspondence.
func (c Correspondence) Len() int { return len(c.m) }

// IndexCorrespondence returns the correspondence translating canonical
// indices of from into visible positions of to, and reports whether the
// registry defines one for that pair. The tables are built once at
// initialization.
//
// The only translation currently defined is Desktop to Android.
func IndexCorrespondence(from, to peercolor.Variant) (Correspondence, bool) {
	if from == peercolor.Desktop && to == peercolor.Android {
		return desktopToAndroid, true
	}
	return Correspondence{}, false
}
