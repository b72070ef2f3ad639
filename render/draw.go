// Copyright (c) Tailscale Inc & AUTHORS
// SPDX-License-Identifier: BSD-3-Clause

// Package render draws client palettes as grids of labelled color swatches.
package render

import (
	"fmt"
	"image"
	"image/draw"
	"runtime"

	"github.com/creachadair/taskgroup"
	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"github.com/tailscale/peercolor"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
)

// Swatch geometry, in pixels.
const (
	SwatchWidth  = 150
	SwatchHeight = 80
	Columns      = 4 // swatches per row
	Gap          = 8 // space between swatches and around the grid

	borderWidth  = 3
	cornerRadius = 8
	labelPoints  = 18
)

var (
	borderColor = peercolor.MustColor("#222")
	labelColor  = peercolor.MustColor("#fff")
)

// Preloaded font definition.
var goBold *truetype.Font

func init() {
	var err error
	goBold, err = truetype.Parse(gobold.TTF)
	if err != nil {
		panic(fmt.Sprintf("Parsing font: %v", err))
	}
}

// fontForSize constructs a new font.Face for the specified point size.
func fontForSize(points int) font.Face {
	return truetype.NewFace(goBold, &truetype.Options{
		Size: float64(points),
	})
}

// Swatch draws a single rounded, bordered tile filled with e's color and
// labelled with its name.
func Swatch(e peercolor.ColorEntry) image.Image {
	dc := gg.NewContext(SwatchWidth, SwatchHeight)
	drawSwatch(dc, e)
	return dc.Image()
}

func drawSwatch(dc *gg.Context, e peercolor.ColorEntry) {
	const inset = borderWidth / 2.0
	dc.DrawRoundedRectangle(inset, inset,
		SwatchWidth-2*inset, SwatchHeight-2*inset, cornerRadius)
	dc.SetColor(e.Value)
	dc.FillPreserve()
	dc.SetColor(borderColor)
	dc.SetLineWidth(borderWidth)
	dc.Stroke()

	dc.SetFontFace(fontForSize(labelPoints))
	dc.SetColor(labelColor)
	dc.DrawStringAnchored(e.Name, SwatchWidth/2, SwatchHeight/2, 0.5, 0.5)
}

// GridSize reports the pixel dimensions of a grid holding n swatches.
func GridSize(n int) (width, height int) {
	cols := min(n, Columns)
	rows := (n + Columns - 1) / Columns
	return Gap + cols*(SwatchWidth+Gap), Gap + rows*(SwatchHeight+Gap)
}

// SwatchOrigin returns the top-left corner of swatch i within a grid.
func SwatchOrigin(i int) image.Point {
	row, col := i/Columns, i%Columns
	return image.Pt(Gap+col*(SwatchWidth+Gap), Gap+row*(SwatchHeight+Gap))
}

// Palette draws p as a grid of swatches, Columns per row, in palette order.
// The background is transparent. An empty palette yields an empty image.
func Palette(p peercolor.Palette) image.Image {
	w, h := GridSize(len(p))
	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	if len(p) == 0 {
		return dst
	}

	tiles := make([]image.Image, len(p))
	g, run := taskgroup.New(nil).Limit(runtime.NumCPU())
	for i, e := range p {
		i, e := i, e
		run.Run(func() {
			tiles[i] = Swatch(e)
		})
	}
	g.Wait()

	for i, tile := range tiles {
		at := SwatchOrigin(i)
		r := image.Rectangle{Min: at, Max: at.Add(tile.Bounds().Size())}
		draw.Draw(dst, r, tile, tile.Bounds().Min, draw.Over)
	}
	return dst
}
