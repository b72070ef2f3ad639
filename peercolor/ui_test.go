// Copyright (c) Tailscale Inc & AUTHORS
// SPDX-License-Identifier: BSD-3-Clause

package main

import (
	"testing"

	"github.com/tailscale/peercolor"
)

func TestNewUIData(t *testing.T) {
	tests := []struct {
		name       string
		form       uiForm
		client     peercolor.Variant
		color      string
		info       string
		result     string
		numPalette int
	}{
		{"Default", uiForm{}, peercolor.Desktop, "", msgChoose, "", 7},
		{"BadClient", uiForm{Client: "nope"}, peercolor.Desktop, "", msgChoose, "", 7},
		{"PickColor",
			uiForm{Client: "ios", Previous: "ios", Color: "Blue", IDs: "5", Action: "filter"},
			peercolor.IOS, "Blue", "Chosen color [ios]: Blue", "", 7},
		{"FilterNoIDs",
			uiForm{Client: "tdesktop", Selected: "Green", IDs: "abc", Action: "filter"},
			peercolor.Desktop, "Green", "Chosen color [tdesktop]: Green", msgNoIDs, 7},
		{"FilterNoColor",
			uiForm{Client: "tdesktop", IDs: "3", Action: "filter"},
			peercolor.Desktop, "", msgChoose, msgNoColor, 7},
		{"FilterNoMatch",
			uiForm{Client: "tdesktop", Selected: "Green", IDs: "1\n2", Action: "filter"},
			peercolor.Desktop, "Green", "Chosen color [tdesktop]: Green", msgNoMatches, 7},
		{"FilterMatch",
			uiForm{Client: "tgx", Previous: "tgx", Selected: "Violet", IDs: "2\n9\n3", Action: "filter"},
			peercolor.Android, "Violet", "Chosen color [tgx]: Violet", "2\n9", 7},
		{"Show",
			uiForm{Client: "macos", IDs: "100", Action: "show"},
			peercolor.MacOS, "", msgChoose,
			"100:  TDesktop=Purple,  TGX=Violet,  iOS=Violet,  macOS=Violet", 7},
		{"ShowNoIDs",
			uiForm{Client: "macos", Action: "show"},
			peercolor.MacOS, "", msgChoose, msgNoIDs, 7},
		{"SwitchClient",
			uiForm{Client: "tgx", Previous: "tdesktop", Selected: "Green", IDs: "3", Action: "filter"},
			peercolor.Android, "", msgChoose, "", 7},
		{"ColorNotInPalette",
			uiForm{Client: "tdesktop", Selected: "Yellow", IDs: "3", Action: "filter"},
			peercolor.Desktop, "", msgChoose, msgNoColor, 7},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			d := newUIData(tc.form)
			if d.Client != tc.client {
				t.Errorf("Client: got %v, want %v", d.Client, tc.client)
			}
			if d.Color != tc.color {
				t.Errorf("Color: got %q, want %q", d.Color, tc.color)
			}
			if d.Info != tc.info {
				t.Errorf("Info: got %q, want %q", d.Info, tc.info)
			}
			if d.Result != tc.result {
				t.Errorf("Result: got %q, want %q", d.Result, tc.result)
			}
			if len(d.Palette) != tc.numPalette {
				t.Errorf("Palette: got %d swatches, want %d", len(d.Palette), tc.numPalette)
			}
			var selected int
			for _, c := range d.Clients {
				if c.Selected {
					selected++
					if c.Name != tc.client.String() {
						t.Errorf("Selected client %q, want %v", c.Name, tc.client)
					}
				}
			}
			if selected != 1 {
				t.Errorf("Got %d selected clients, want 1", selected)
			}
		})
	}
}
