// Copyright (c) Tailscale Inc & AUTHORS
// SPDX-License-Identifier: BSD-3-Clause

package main

import (
	"bytes"
	"crypto/sha256"
	"encoding/json"
	"errors"
	"expvar"
	"fmt"
	"image"
	"image/png"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/tailscale/peercolor"
	"github.com/tailscale/peercolor/palette"
	"github.com/tailscale/peercolor/render"
	"github.com/tailscale/peercolor/resolve"
	"tailscale.com/metrics"
	"tailscale.com/tsweb"
	"tailscale.com/util/singleflight"
)

// maxBodyBytes bounds the size of ID lists accepted in request bodies.
const maxBodyBytes = 1 << 20

// maxChips bounds the number of peers drawn in one chip image.
const maxChips = 256

var errBodyTooLarge = errors.New("request body too large")

type peerColorServer struct {
	paletteSingleFlight singleflight.Group[peercolor.Variant, pngCache]
	chipsSingleFlight   singleflight.Group[string, pngCache] // key: client and IDs

	mu            sync.Mutex // guards paletteImages
	paletteImages [peercolor.NumVariants]pngCache
}

// A pngCache holds one rendered image and its Etag. The zero value is empty.
type pngCache struct {
	data []byte
	etag string
}

func newServer() *peerColorServer { return new(peerColorServer) }

var (
	serveMetrics   = &metrics.LabelMap{Label: "type"}
	resolveMetrics = &metrics.LabelMap{Label: "client"}
)

func init() {
	expvar.Publish("peercolor_serve_metrics", serveMetrics)
	expvar.Publish("peercolor_resolve_metrics", resolveMetrics)
}

func startDebugServer(listen listenFunc, addr string) error {
	ln, err := listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("debug listener on %q: %w", addr, err)
	}
	go func() {
		defer ln.Close()
		log.Printf("Starting debug server on %v", addr)
		mux := http.NewServeMux()
		tsweb.Debugger(mux)
		http.Serve(ln, mux)
	}()
	return nil
}

// newMux constructs a router for the peercolor API.
//
// There are three groups of endpoints:
//
//   - The /api/ endpoints serve JSON for tools to consume.
//   - The /content/ endpoints serve rendered palette images.
//   - The rest of the endpoints serve UI components.
func (s *peerColorServer) newMux() *http.ServeMux {
	apiMux := http.NewServeMux()
	apiMux.HandleFunc("/api/palette/", s.serveAPIPalette) // one client's palette
	apiMux.HandleFunc("/api/palette", s.serveAPIPalette)  // all palettes
	apiMux.HandleFunc("/api/color/", s.serveAPIColor)     // one ID under one client
	apiMux.HandleFunc("/api/colors", s.serveAPIColors)    // many IDs under all clients
	apiMux.HandleFunc("/api/filter", s.serveAPIFilter)    // IDs matching a color

	contentMux := http.NewServeMux()
	contentMux.HandleFunc("/content/palette/", s.serveContentPalette)
	contentMux.HandleFunc("/content/chips/", s.serveContentChips)

	uiMux := http.NewServeMux()
	uiMux.HandleFunc("/", s.serveUI)

	mux := http.NewServeMux()
	mux.Handle("/api/", apiMux)
	mux.Handle("/content/", contentMux)
	mux.Handle("/static/", http.FileServer(http.FS(staticFS)))
	mux.Handle("/", uiMux)

	return mux
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// apiPalette is the JSON form of one client's visible palette.
type apiPalette struct {
	Client peercolor.Variant `json:"client"`
	Label  string            `json:"label"`
	Colors peercolor.Palette `json:"colors"`
}

func newAPIPalette(v peercolor.Variant) apiPalette {
	return apiPalette{Client: v, Label: v.Label(), Colors: palette.Visible(v)}
}

func (s *peerColorServer) serveAPIPalette(w http.ResponseWriter, r *http.Request) {
	serveMetrics.Add("api-palette", 1)
	const apiPath = "/api/palette/"
	if r.Method != "GET" {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	name, ok := strings.CutPrefix(r.URL.Path, apiPath)
	if !ok || name == "" {
		var all []apiPalette
		for _, v := range peercolor.Variants() {
			all = append(all, newAPIPalette(v))
		}
		writeJSON(w, all)
		return
	}
	v, err := peercolor.ParseVariant(name)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	writeJSON(w, newAPIPalette(v))
}

// apiColor is the JSON form of a single resolution.
type apiColor struct {
	ID     int64             `json:"id"`
	Client peercolor.Variant `json:"client"`
	Name   string            `json:"name"`
	Value  *peercolor.Color  `json:"value,omitempty"` // nil if Name is Unknown
}

func (s *peerColorServer) serveAPIColor(w http.ResponseWriter, r *http.Request) {
	serveMetrics.Add("api-color", 1)
	const apiPath = "/api/color/"
	if r.Method != "GET" {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	// Require /client/id.
	client, idStr, ok := strings.Cut(strings.TrimPrefix(r.URL.Path, apiPath), "/")
	if !ok || client == "" || idStr == "" {
		http.Error(w, "missing client or id", http.StatusBadRequest)
		return
	}
	v, err := peercolor.ParseVariant(client)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	resolveMetrics.Add(v.String(), 1)
	rsp := apiColor{ID: id, Client: v, Name: peercolor.Unknown}
	if e, ok := resolve.Lookup(v, id); ok {
		rsp.Name = e.Name
		rsp.Value = &e.Value
	}
	writeJSON(w, rsp)
}

// requestIDs collects the peer IDs of a request: the "id" query parameters,
// followed by the lines of a POST body. Invalid entries are skipped.
func requestIDs(r *http.Request) ([]int64, error) {
	ids := peercolor.ParseIDs(strings.Join(r.URL.Query()["id"], "\n"))
	if r.Method == "POST" {
		body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes+1))
		if err != nil {
			return nil, fmt.Errorf("reading request body: %w", err)
		} else if len(body) > maxBodyBytes {
			return nil, fmt.Errorf("%w (limit %d bytes)", errBodyTooLarge, maxBodyBytes)
		}
		ids = append(ids, peercolor.ParseIDs(string(body))...)
	}
	return ids, nil
}

func (s *peerColorServer) serveAPIColors(w http.ResponseWriter, r *http.Request) {
	serveMetrics.Add("api-colors", 1)
	if r.Method != "GET" && r.Method != "POST" {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	ids, err := requestIDs(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	resolveMetrics.Add("all", int64(len(ids)))
	writeJSON(w, resolve.AllOf(ids))
}

// apiFilter is the JSON form of a filter result.
type apiFilter struct {
	Client peercolor.Variant `json:"client"`
	Color  string            `json:"color"`
	IDs    []int64           `json:"ids"`
}

func (s *peerColorServer) serveAPIFilter(w http.ResponseWriter, r *http.Request) {
	serveMetrics.Add("api-filter", 1)
	if r.Method != "GET" && r.Method != "POST" {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	v, err := peercolor.ParseVariant(r.URL.Query().Get("client"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	color := r.URL.Query().Get("color")
	if color == "" {
		http.Error(w, "missing color", http.StatusBadRequest)
		return
	}
	ids, err := requestIDs(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	resolveMetrics.Add(v.String(), int64(len(ids)))
	match := resolve.Filter(v, ids, color)
	if match == nil {
		match = []int64{}
	}
	writeJSON(w, apiFilter{Client: v, Color: color, IDs: match})
}

func (s *peerColorServer) serveContentPalette(w http.ResponseWriter, r *http.Request) {
	serveMetrics.Add("content-palette", 1)
	const apiPath = "/content/palette/"
	if r.Method != "GET" {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	// Require /client.png.
	name, ok := strings.CutSuffix(strings.TrimPrefix(r.URL.Path, apiPath), ".png")
	if !ok {
		http.Error(w, "wrong file extension", http.StatusBadRequest)
		return
	}
	v, err := peercolor.ParseVariant(name)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	img, err, reused := s.paletteSingleFlight.Do(v, func() (pngCache, error) {
		return s.paletteImage(v)
	})
	if err != nil {
		log.Printf("error rendering palette %v: %v", v, err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	} else if reused {
		serveMetrics.Add("content-palette-reused", 1)
	}

	servePNG(w, r, name+".png", img, 24*time.Hour)
}

// servePNG writes a rendered image with caching headers. Requests carrying
// a matching If-None-Match get a 304.
func servePNG(w http.ResponseWriter, r *http.Request, name string, img pngCache, maxAge time.Duration) {
	w.Header().Set("Cache-Control", fmt.Sprintf(
		"public, max-age=%d, no-transform", maxAge/time.Second))
	w.Header().Set("Etag", img.etag)
	w.Header().Set("Content-Type", "image/png")
	http.ServeContent(w, r, name, time.Time{}, bytes.NewReader(img.data))
}

func (s *peerColorServer) serveContentChips(w http.ResponseWriter, r *http.Request) {
	serveMetrics.Add("content-chips", 1)
	const apiPath = "/content/chips/"
	if r.Method != "GET" {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	// Require /client.png?id=...
	name, ok := strings.CutSuffix(strings.TrimPrefix(r.URL.Path, apiPath), ".png")
	if !ok {
		http.Error(w, "wrong file extension", http.StatusBadRequest)
		return
	}
	v, err := peercolor.ParseVariant(name)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	ids, err := requestIDs(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	} else if len(ids) == 0 {
		http.Error(w, "missing id", http.StatusBadRequest)
		return
	} else if len(ids) > maxChips {
		http.Error(w, fmt.Sprintf("too many ids (limit %d)", maxChips), http.StatusBadRequest)
		return
	}
	resolveMetrics.Add(v.String(), int64(len(ids)))

	key := fmt.Sprint(v, ids)
	img, err, reused := s.chipsSingleFlight.Do(key, func() (pngCache, error) {
		return encodePNG(render.Chips(v, ids))
	})
	if err != nil {
		log.Printf("error rendering chips for %v: %v", v, err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	} else if reused {
		serveMetrics.Add("content-chips-reused", 1)
	}

	// Colors never change for a given ID, so the image is as durable as
	// the palette.
	servePNG(w, r, name+".png", img, 24*time.Hour)
}

// encodePNG encodes img and computes its Etag.
func encodePNG(img image.Image) (pngCache, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return pngCache{}, fmt.Errorf("encoding PNG: %w", err)
	}
	return pngCache{
		data: buf.Bytes(),
		etag: formatEtag(sha256.Sum256(buf.Bytes())),
	}, nil
}

// paletteImage returns the PNG encoding of the visible palette of v,
// rendering it on first use.
func (s *peerColorServer) paletteImage(v peercolor.Variant) (pngCache, error) {
	s.mu.Lock()
	c := s.paletteImages[v]
	s.mu.Unlock()
	if c.data != nil {
		return c, nil
	}

	start := time.Now()
	c, err := encodePNG(render.Palette(palette.Visible(v)))
	if err != nil {
		return pngCache{}, fmt.Errorf("palette %v: %w", v, err)
	}
	log.Printf("Rendered palette %v in %v", v, time.Since(start).Round(time.Millisecond))

	s.mu.Lock()
	defer s.mu.Unlock()
	s.paletteImages[v] = c
	return c, nil
}

func formatEtag(sum [sha256.Size]byte) string { return fmt.Sprintf(`"%x"`, sum) }
