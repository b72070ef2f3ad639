// Copyright (c) Tailscale Inc & AUTHORS
// SPDX-License-Identifier: BSD-3-Clause

package resolve

import (
	"math"
	"sync"
	"testing"

	"github.com/creachadair/mds/mapset"
	"github.com/google/go-cmp/cmp"
	"github.com/tailscale/peercolor"
	"github.com/tailscale/peercolor/palette"
)

// byResidue gives the expected names for residues 0..6 of each variant.
var byResidue = map[peercolor.Variant][]string{
	peercolor.Desktop: {"Red", "Orange", "Purple", "Green", "Sea", "Blue", "Pink"},
	peercolor.Android: {"Red", "Orange", "Violet", "Green", "Cyan", "Blue", "Pink"},
	peercolor.IOS:     {"Red", "Orange", "Violet", "Green", "Cyan", "Blue", "Pink"},
	peercolor.MacOS:   {"Red", "Orange", "Violet", "Green", "Cyan", "Blue", "Pink"},
}

func TestResidues(t *testing.T) {
	for v, want := range byResidue {
		for r, name := range want {
			for _, peer := range []int64{int64(r), int64(r) + 7, int64(r) + 7*1_000_003} {
				if got := Resolve(v, peer); got != name {
					t.Errorf("Resolve(%v, %d): got %q, want %q", v, peer, got, name)
				}
			}
		}
	}
}

func TestEntryPoints(t *testing.T) {
	funcs := map[peercolor.Variant]func(int64) string{
		peercolor.Desktop: Desktop,
		peercolor.Android: Android,
		peercolor.IOS:     IOS,
		peercolor.MacOS:   MacOS,
	}
	for v, f := range funcs {
		for peer := int64(-50); peer <= 50; peer++ {
			if got, want := f(peer), Resolve(v, peer); got != want {
				t.Errorf("%v(%d): got %q, Resolve gives %q", v, peer, got, want)
			}
		}
	}
}

func TestNegative(t *testing.T) {
	tests := []struct {
		peer int64
		v    peercolor.Variant
		want string
	}{
		// Desktop uses floored modulo: -5 mod 7 == 2.
		{-5, peercolor.Desktop, "Purple"},
		{-1, peercolor.Desktop, "Pink"},
		{-7, peercolor.Desktop, "Red"},
		{-5, peercolor.Android, "Violet"},

		// iOS and macOS use the magnitude: |-5| mod 7 == 5.
		{-5, peercolor.IOS, "Blue"},
		{-5, peercolor.MacOS, "Blue"},
		{-1001234567890, peercolor.IOS, IOS(1001234567890)},

		{math.MinInt64, peercolor.Desktop, "Pink"},
		{math.MinInt64, peercolor.IOS, "Orange"},
		{math.MaxInt64, peercolor.Desktop, "Red"},
		{math.MaxInt64, peercolor.MacOS, "Red"},
	}
	for _, tc := range tests {
		if got := Resolve(tc.v, tc.peer); got != tc.want {
			t.Errorf("Resolve(%v, %d): got %q, want %q", tc.v, tc.peer, got, tc.want)
		}
	}
	if got := DesktopIndex(-5); got != 4 {
		t.Errorf("DesktopIndex(-5): got %d, want 4", got)
	}
	for peer := int64(-100); peer <= 100; peer++ {
		if IOS(peer) != IOS(-peer) {
			t.Errorf("IOS(%d) = %q, IOS(%d) = %q", peer, IOS(peer), -peer, IOS(-peer))
		}
	}
}

func TestDesktopNeverYellow(t *testing.T) {
	seen := mapset.New[string]()
	for peer := int64(-1000); peer <= 1000; peer++ {
		idx := DesktopIndex(peer)
		if idx < 0 || idx >= palette.Len(peercolor.Desktop) {
			t.Fatalf("DesktopIndex(%d) = %d out of range", peer, idx)
		}
		seen.Add(Desktop(peer))
	}
	if seen.Len() != 7 {
		t.Errorf("Desktop names: got %v, want 7 distinct", seen.Slice())
	}
	for _, name := range palette.Visible(peercolor.Desktop).Names() {
		if !seen.Has(name) {
			t.Errorf("Desktop never produced %q", name)
		}
	}
	if seen.Has("Yellow") {
		t.Error("Desktop produced Yellow")
	}
}

func TestAndroidFollowsDesktop(t *testing.T) {
	corr, ok := palette.IndexCorrespondence(peercolor.Desktop, peercolor.Android)
	if !ok {
		t.Fatal("No desktop to Android correspondence")
	}
	android := palette.Visible(peercolor.Android)
	for peer := int64(-200); peer <= 200; peer++ {
		want := peercolor.Unknown
		if pos, ok := corr.Lookup(DesktopIndex(peer)); ok {
			want = android[pos].Name
		}
		if got := Android(peer); got != want {
			t.Errorf("Android(%d): got %q, want %q", peer, got, want)
		}
	}
}

func TestAndroidUnknown(t *testing.T) {
	saved := toAndroid
	defer func() { toAndroid = saved }()
	toAndroid = palette.Correspondence{}

	if got := Android(3); got != peercolor.Unknown {
		t.Errorf("Android(3) with no correspondence: got %q, want %q", got, peercolor.Unknown)
	}
	if e, ok := Lookup(peercolor.Android, 3); ok {
		t.Errorf("Lookup(tgx, 3): got %v, want none", e)
	}
}

func TestLookup(t *testing.T) {
	e, ok := Lookup(peercolor.Desktop, 3)
	if !ok {
		t.Fatal("Lookup(tdesktop, 3): not found")
	}
	want := peercolor.ColorEntry{Name: "Green", Value: peercolor.MustColor("#46ba43")}
	if diff := cmp.Diff(want, e); diff != "" {
		t.Errorf("Lookup(tdesktop, 3) (-want, +got):\n%s", diff)
	}
	if got := Resolve(peercolor.Variant(99), 3); got != peercolor.Unknown {
		t.Errorf("Resolve(invalid): got %q, want %q", got, peercolor.Unknown)
	}
}

func TestFilter(t *testing.T) {
	ids := []int64{1, 2, 3, 4, 5, 6, 7}
	tests := []struct {
		v    peercolor.Variant
		name string
		want []int64
	}{
		{peercolor.Desktop, "Green", []int64{3}},
		{peercolor.Desktop, "Red", []int64{7}},
		{peercolor.Desktop, "Yellow", []int64{}},
		{peercolor.IOS, "Blue", []int64{5}},
		{peercolor.Android, "Violet", []int64{2}},
	}
	for _, tc := range tests {
		got := Filter(tc.v, ids, tc.name)
		if diff := cmp.Diff(tc.want, got); diff != "" {
			t.Errorf("Filter(%v, %q) (-want, +got):\n%s", tc.v, tc.name, diff)
		}
	}

	// Green desktop peers are exactly those whose index is Green's position.
	green := palette.Canonical(peercolor.Desktop).Index("Green")
	var want []int64
	for _, id := range ids {
		if DesktopIndex(id) == green {
			want = append(want, id)
		}
	}
	if diff := cmp.Diff(want, Filter(peercolor.Desktop, ids, "Green")); diff != "" {
		t.Errorf("Filter by index (-want, +got):\n%s", diff)
	}

	// Order and duplicates are kept, and the input is untouched.
	in := []int64{10, 1, 3, -4, 2, 3, 17}
	got := Filter(peercolor.Desktop, in, "Green")
	if diff := cmp.Diff([]int64{10, 3, -4, 3, 17}, got); diff != "" {
		t.Errorf("Filter order (-want, +got):\n%s", diff)
	}
	in2 := []int64{1, 3, 2}
	Filter(peercolor.Desktop, in2, "Green")
	if diff := cmp.Diff([]int64{1, 3, 2}, in2); diff != "" {
		t.Errorf("Filter modified its input (-want, +got):\n%s", diff)
	}
}

func TestAll(t *testing.T) {
	got := All(100)
	want := Colors{ID: 100, TDesktop: "Purple", TGX: "Violet", IOS: "Violet", MacOS: "Violet"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("All(100) (-want, +got):\n%s", diff)
	}
	for _, v := range peercolor.Variants() {
		if n := got.Name(v); n != Resolve(v, 100) {
			t.Errorf("Name(%v): got %q, want %q", v, n, Resolve(v, 100))
		}
	}
	const wantText = "100:  TDesktop=Purple,  TGX=Violet,  iOS=Violet,  macOS=Violet"
	if s := got.String(); s != wantText {
		t.Errorf("String: got %q, want %q", s, wantText)
	}

	for peer := int64(-300); peer <= 300; peer += 7 {
		c := All(peer)
		if c.IOS != c.MacOS {
			t.Errorf("All(%d): iOS %q differs from macOS %q", peer, c.IOS, c.MacOS)
		}
	}
	rows := AllOf([]int64{1, 2})
	if len(rows) != 2 || rows[0] != All(1) || rows[1] != All(2) {
		t.Errorf("AllOf: got %+v", rows)
	}
}

func TestConcurrent(t *testing.T) {
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for peer := int64(0); peer < 500; peer++ {
				for v, want := range byResidue {
					if got := Resolve(v, peer); got != want[peer%7] {
						t.Errorf("Resolve(%v, %d): got %q, want %q", v, peer, got, want[peer%7])
					}
				}
			}
		}()
	}
	wg.Wait()
}
