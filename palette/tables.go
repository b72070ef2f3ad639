// Copyright (c) Tailscale Inc & AUTHORS
// SPDX-License-Identifier: BSD-3-Clause

package palette

import (
	"fmt"

	"github.com/tailscale/peercolor"
)

func entry(name, hex string) peercolor.ColorEntry {
	return peercolor.ColorEntry{Name: name, Value: peercolor.MustColor(hex)}
}

// desktopPalette is the canonical Telegram Desktop palette.
var desktopPalette = peercolor.Palette{
	entry("Red", "#d45246"),
	entry("Green", "#46ba43"),
	entry("Yellow", "#e5ca77"),
	entry("Blue", "#408acf"),
	entry("Purple", "#6c61df"),
	entry("Pink", "#d95574"),
	entry("Sea", "#359ad4"),
	entry("Orange", "#f68136"),
}

// desktopVisible lists the desktop entries the client actually shows.
// Yellow (2) is never displayed.
var desktopVisible = []int{0, 1, 3, 4, 5, 6, 7}

// desktopRemap maps a peer ID residue (mod 7) to a canonical desktop index.
// Every value must be a member of desktopVisible.
var desktopRemap = []int{0, 7, 4, 1, 6, 3, 5}

// androidPalette is the Telegram X palette. It is used in full.
var androidPalette = peercolor.Palette{
	entry("Red", "#CC5049"),
	entry("Green", "#40A920"),
	entry("Blue", "#368AD1"),
	entry("Violet", "#955CDB"),
	entry("Pink", "#C7508B"),
	entry("Cyan", "#309EBA"),
	entry("Orange", "#D67722"),
}

// iosPalette is the gradient palette shared by the iOS and native macOS
// clients.
var iosPalette = peercolor.Palette{
	entry("Red", "#ff516a"),
	entry("Orange", "#ffa85c"),
	entry("Violet", "#665fff"),
	entry("Green", "#54cb68"),
	entry("Cyan", "#4acccd"),
	entry("Blue", "#2a9ef1"),
	entry("Pink", "#d669ed"),
}

// DesktopRemap returns a copy of the fixed permutation the desktop client
// applies to a peer ID residue. Its length is the desktop modulus.
func DesktopRemap() []int {
	out := make([]int, len(desktopRemap))
	copy(out, desktopRemap)
	return out
}

// desktopToAndroid is the Desktop→Android correspondence. Telegram X shows
// the desktop visible colors in the same order, so position p of its
// palette stands for canonical desktop index desktopVisible[p].
var desktopToAndroid Correspondence

func init() {
	tables[peercolor.Desktop] = table{canonical: desktopPalette, visible: desktopVisible}
	tables[peercolor.Android] = table{canonical: androidPalette}
	tables[peercolor.IOS] = table{canonical: iosPalette}
	tables[peercolor.MacOS] = table{canonical: iosPalette}

	for v, t := range tables {
		if len(t.canonical) == 0 {
			panic(fmt.Sprintf("palette: variant %v has no colors", peercolor.Variant(v)))
		}
		if t.visible != nil {
			if err := checkVisible(t.visible, len(t.canonical)); err != nil {
				panic(fmt.Sprintf("palette: variant %v: %v", peercolor.Variant(v), err))
			}
		}
	}
	if err := checkRemap(desktopRemap, desktopVisible); err != nil {
		panic(fmt.Sprintf("palette: desktop remap: %v", err))
	}

	desktopToAndroid = invert(desktopVisible)
	if desktopToAndroid.Len() != len(androidPalette) {
		panic("palette: desktop visible set does not match the Telegram X palette")
	}
}

// checkRemap reports an error unless remap is a duplicate-free sequence drawn
// from the visible indices.
func checkRemap(remap, visible []int) error {
	inv := invert(visible)
	if err := checkVisible(remap, len(desktopPalette)); err != nil {
		return err
	}
	for pos, idx := range remap {
		if _, ok := inv.Lookup(idx); !ok {
			return fmt.Errorf("position %d: index %d is not visible", pos, idx)
		}
	}
	return nil
}
