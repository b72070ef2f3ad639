// Copyright (c) Tailscale Inc & AUTHORS
// SPDX-License-Identifier: BSD-3-Clause

package main

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"log"
	"net/http"
	"strings"

	"github.com/tailscale/peercolor"
	"github.com/tailscale/peercolor/palette"
	"github.com/tailscale/peercolor/resolve"
)

//go:embed ui/*
var uiFS embed.FS

//go:embed static
var staticFS embed.FS

var ui = template.Must(template.New("ui").ParseFS(uiFS, "ui/*.tmpl"))

// Status messages shown in the result box.
const (
	msgChoose    = "Choose a color, then filter or show colors."
	msgNoIDs     = "No valid IDs."
	msgNoColor   = "Choose a color first."
	msgNoMatches = "No matches for the chosen color."
)

// uiData is the value passed to HTML templates.
type uiData struct {
	Client  peercolor.Variant
	Clients []uiClient
	Palette []uiSwatch
	Color   string // the chosen color name, or ""
	IDs     string // the ID text as entered
	Info    string
	Result  string
}

type uiClient struct {
	Name     string
	Label    string
	Selected bool
}

type uiSwatch struct {
	peercolor.ColorEntry
	Style    template.CSS
	Selected bool
}

// uiForm is the state submitted by the inspector form.
type uiForm struct {
	Client   string // selected client
	Previous string // client the page was rendered for
	Color    string // color button pressed, if any
	Selected string // previously chosen color
	IDs      string
	Action   string // "filter", "show", or ""
}

func formFromRequest(r *http.Request) uiForm {
	return uiForm{
		Client:   r.FormValue("client"),
		Previous: r.FormValue("prev"),
		Color:    r.FormValue("color"),
		Selected: r.FormValue("selected"),
		IDs:      r.FormValue("ids"),
		Action:   r.FormValue("action"),
	}
}

// newUIData computes the page state for a form submission. Switching clients
// discards the chosen color and any result, since the palettes differ.
func newUIData(f uiForm) *uiData {
	v, err := peercolor.ParseVariant(f.Client)
	if err != nil {
		v = peercolor.Desktop
	}
	data := &uiData{Client: v, IDs: f.IDs, Info: msgChoose}

	switched := f.Previous != "" && f.Previous != v.String()
	if !switched {
		data.Color = f.Selected
		if f.Color != "" {
			data.Color = f.Color
		}
	}
	vis := palette.Visible(v)
	if vis.Index(data.Color) < 0 {
		data.Color = ""
	}
	if data.Color != "" {
		data.Info = fmt.Sprintf("Chosen color [%v]: %s", v, data.Color)
	}

	for _, c := range peercolor.Variants() {
		data.Clients = append(data.Clients, uiClient{
			Name:     c.String(),
			Label:    c.Label(),
			Selected: c == v,
		})
	}
	for _, e := range vis {
		data.Palette = append(data.Palette, uiSwatch{
			ColorEntry: e,
			Style:      template.CSS("background-color: " + e.Value.String()),
			Selected:   e.Name == data.Color,
		})
	}

	// Choosing a color or switching clients clears the result.
	if switched || f.Color != "" {
		return data
	}
	switch f.Action {
	case "filter":
		data.Result = filterResult(v, data.Color, peercolor.ParseIDs(f.IDs))
	case "show":
		data.Result = showResult(peercolor.ParseIDs(f.IDs))
	}
	return data
}

func filterResult(v peercolor.Variant, color string, ids []int64) string {
	if len(ids) == 0 {
		return msgNoIDs
	} else if color == "" {
		return msgNoColor
	}
	match := resolve.Filter(v, ids, color)
	if len(match) == 0 {
		return msgNoMatches
	}
	lines := make([]string, len(match))
	for i, id := range match {
		lines[i] = fmt.Sprint(id)
	}
	return strings.Join(lines, "\n")
}

func showResult(ids []int64) string {
	if len(ids) == 0 {
		return msgNoIDs
	}
	lines := make([]string, len(ids))
	for i, row := range resolve.AllOf(ids) {
		lines[i] = row.String()
	}
	return strings.Join(lines, "\n")
}

func (s *peerColorServer) serveUI(w http.ResponseWriter, r *http.Request) {
	serveMetrics.Add("ui", 1)
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	} else if r.Method != "GET" && r.Method != "POST" {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var buf bytes.Buffer
	if err := ui.ExecuteTemplate(&buf, "index.tmpl", newUIData(formFromRequest(r))); err != nil {
		log.Printf("error rendering UI: %v", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	buf.WriteTo(w)
}
