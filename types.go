// Copyright (c) Tailscale Inc & AUTHORS
// SPDX-License-Identifier: BSD-3-Clause

// Package peercolor reproduces the avatar colors that the various Telegram
// clients assign to a peer, given its numeric ID.
//
// This package defines shared data types used throughout the module. The
// palette data live in package palette, and the per-client selection rules in
// package resolve.
package peercolor

import (
	"fmt"
	"strings"
)

// Unknown is the color name reported when a peer ID cannot be mapped onto a
// client's palette. It is a valid result, not an error.
const Unknown = "Unknown"

// A ColorEntry is a single named color in a client palette.
type ColorEntry struct {
	Name  string `json:"name"`
	Value Color  `json:"value"`
}

// A Palette is an ordered sequence of color entries. Palettes handed out by
// this module are copies; modifying one has no effect on later lookups.
type Palette []ColorEntry

// Names returns the entry names of p in order.
func (p Palette) Names() []string {
	out := make([]string, len(p))
	for i, e := range p {
		out[i] = e.Name
	}
	return out
}

// Index reports the position of the first entry in p called name, or -1.
func (p Palette) Index(name string) int {
	for i, e := range p {
		if e.Name == name {
			return i
		}
	}
	return -1
}

// A Variant selects one client's avatar coloring convention.
type Variant int

// The supported client variants.
const (
	Desktop Variant = iota // Telegram Desktop
	Android                // Telegram X for Android
	IOS                    // Telegram for iOS
	MacOS                  // Telegram for macOS (native)

	NumVariants int = iota
)

var variantNames = [NumVariants]string{
	Desktop: "tdesktop",
	Android: "tgx",
	IOS:     "ios",
	MacOS:   "macos",
}

var variantLabels = [NumVariants]string{
	Desktop: "Telegram Desktop",
	Android: "Telegram X (Android)",
	IOS:     "Telegram iOS",
	MacOS:   "Telegram macOS (native)",
}

// Variants returns all the supported variants in declaration order.
func Variants() []Variant {
	vs := make([]Variant, NumVariants)
	for i := range vs {
		vs[i] = Variant(i)
	}
	return vs
}

// Valid reports whether v is one of the defined variants.
func (v Variant) Valid() bool { return v >= 0 && int(v) < NumVariants }

// String returns the short name of v, for example "tdesktop".
func (v Variant) String() string {
	if !v.Valid() {
		return fmt.Sprintf("Variant(%d)", int(v))
	}
	return variantNames[v]
}

// Label returns a human-readable description of the client v stands for.
func (v Variant) Label() string {
	if !v.Valid() {
		return v.String()
	}
	return variantLabels[v]
}

// ParseVariant returns the variant whose short name is s, ignoring case.
func ParseVariant(s string) (Variant, error) {
	for i, name := range variantNames {
		if strings.EqualFold(s, name) {
			return Variant(i), nil
		}
	}
	return 0, fmt.Errorf("unknown client variant %q", s)
}

func (v Variant) MarshalText() ([]byte, error) {
	if !v.Valid() {
		return nil, fmt.Errorf("invalid variant %d", int(v))
	}
	return []byte(v.String()), nil
}

func (v *Variant) UnmarshalText(data []byte) error {
	p, err := ParseVariant(string(data))
	if err != nil {
		return err
	}
	*v = p
	return nil
}
