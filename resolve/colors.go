// Copyright (c) Tailscale Inc & AUTHORS
// SPDX-License-Identifier: BSD-3-Clause

package resolve

import (
	"fmt"

	"github.com/tailscale/peercolor"
)

// Colors records the color name every client variant assigns to one peer.
type Colors struct {
	ID       int64  `json:"id"`
	TDesktop string `json:"tdesktop"`
	TGX      string `json:"tgx"`
	IOS      string `json:"ios"`
	MacOS    string `json:"macos"`
}

// All resolves peer under every variant.
func All(peer int64) Colors {
	return Colors{
		ID:       peer,
		TDesktop: Desktop(peer),
		TGX:      Android(peer),
		IOS:      IOS(peer),
		MacOS:    MacOS(peer),
	}
}

// AllOf resolves each of peers under every variant, in order.
func AllOf(peers []int64) []Colors {
	out := make([]Colors, len(peers))
	for i, p := range peers {
		out[i] = All(p)
	}
	return out
}

// Name returns the color name recorded for v, or "" if v is invalid.
func (c Colors) Name(v peercolor.Variant) string {
	switch v {
	case peercolor.Desktop:
		return c.TDesktop
	case peercolor.Android:
		return c.TGX
	case peercolor.IOS:
		return c.IOS
	case peercolor.MacOS:
		return c.MacOS
	}
	return ""
}

func (c Colors) String() string {
	return fmt.Sprintf("%d:  TDesktop=%s,  TGX=%s,  iOS=%s,  macOS=%s",
		c.ID, c.TDesktop, c.TGX, c.IOS, c.MacOS)
}
