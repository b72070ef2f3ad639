// Copyright (c) Tailscale Inc & AUTHORS
// SPDX-License-Identifier: BSD-3-Clause

package bot

import (
	"fmt"
	"strings"

	"github.com/tailscale/peercolor"
	"github.com/tailscale/peercolor/resolve"
)

const maxAnswerIDs = 20

const usage = "Send me peer IDs, optionally preceded by a client " +
	"(tdesktop, tgx, ios, macos), and I will tell you their avatar colors."

// answer builds the reply to a message or command text. The text holds
// whitespace-separated peer IDs, optionally led by a client name; other
// words (such as the mention of the bot itself) are ignored.
func answer(text string) string {
	fields := strings.Fields(text)
	var (
		variant    peercolor.Variant
		hasVariant bool
	)
	for i, f := range fields {
		if v, err := peercolor.ParseVariant(f); err == nil {
			variant, hasVariant = v, true
			fields = append(fields[:i:i], fields[i+1:]...)
			break
		}
	}
	ids := peercolor.ParseIDs(strings.Join(fields, "\n"))
	if len(ids) == 0 {
		return usage
	}

	var sb strings.Builder
	if len(ids) > maxAnswerIDs {
		fmt.Fprintf(&sb, "Showing the first %d of %d IDs.\n", maxAnswerIDs, len(ids))
		ids = ids[:maxAnswerIDs]
	}
	for _, id := range ids {
		if hasVariant {
			fmt.Fprintf(&sb, "%d: %s=%s\n", id, variant.Label(), resolve.Resolve(variant, id))
		} else {
			fmt.Fprintln(&sb, resolve.All(id))
		}
	}
	return strings.TrimSuffix(sb.String(), "\n")
}
