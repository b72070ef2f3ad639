// Copyright (c) Tailscale Inc & AUTHORS
// SPDX-License-Identifier: BSD-3-Clause

package peercolor

import (
	"errors"
	"fmt"
	"image/color"
	"strings"
)

// MustColor constructs a color from a hex specification #xxx or #xxxxxx.
// It panics if s does not correspond to a valid color.
func MustColor(s string) Color {
	var c Color
	if err := c.UnmarshalText([]byte(s)); err != nil {
		panic("invalid color: " + err.Error())
	}
	return c
}

// A Color represents an RGB color encoded as hex. It supports encoding in JSON
// as a string, allowing "#xxxxxx" or "#xxx" format (the "#" is optional).
//
// Palette code stores and returns colors without interpreting them; the
// component accessors exist for drawing.
type Color [3]byte

func (c Color) R() float64 { return float64(c[0]) / 255 }
func (c Color) G() float64 { return float64(c[1]) / 255 }
func (c Color) B() float64 { return float64(c[2]) / 255 }

// RGBA implements the [color.Color] interface. Colors are always opaque.
func (c Color) RGBA() (r, g, b, a uint32) {
	return color.RGBA{R: c[0], G: c[1], B: c[2], A: 0xff}.RGBA()
}

// String returns the lower-case "#rrggbb" form of c.
func (c Color) String() string { return fmt.Sprintf("#%02x%02x%02x", c[0], c[1], c[2]) }

func (c Color) MarshalText() ([]byte, error) { return []byte(c.String()), nil }

func (c *Color) UnmarshalText(data []byte) error {
	p := strings.TrimPrefix(string(data), "#")
	var r, g, b byte
	var err error
	switch len(p) {
	case 3:
		_, err = fmt.Sscanf(p, "%1x%1x%1x", &r, &g, &b)
		r |= r << 4
		g |= g << 4
		b |= b << 4
	case 6:
		_, err = fmt.Sscanf(p, "%2x%2x%2x", &r, &g, &b)
	default:
		return errors.New("invalid hex color")
	}
	if err != nil {
		return err
	}
	c[0], c[1], c[2] = r, g, b
	return nil
}
