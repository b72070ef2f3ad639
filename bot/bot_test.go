// Copyright (c) Tailscale Inc & AUTHORS
// SPDX-License-Identifier: BSD-3-Clause

package bot

import (
	"strings"
	"testing"

	"github.com/slack-go/slack"
)

func TestNewSlackBot(t *testing.T) {
	t.Setenv("SLACK_APP_TOKEN", "")
	t.Setenv("SLACK_BOT_TOKEN", "")

	tests := []struct {
		name    string
		config  Config
		env     map[string]string
		wantErr string
	}{
		{"Missing", Config{}, nil, "SLACK_APP_TOKEN must be set"},
		{"MissingBot", Config{AppToken: "xapp-1"}, nil, "SLACK_BOT_TOKEN must be set"},
		{"BadPrefix", Config{AppToken: "xoxb-1", BotToken: "xoxb-2"}, nil, `SLACK_APP_TOKEN must have the prefix "xapp-"`},
		{"Explicit", Config{AppToken: "xapp-1", BotToken: "xoxb-2"}, nil, ""},
		{"FromEnv", Config{}, map[string]string{
			"SLACK_APP_TOKEN": "xapp-env",
			"SLACK_BOT_TOKEN": "xoxb-env",
		}, ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			for k, v := range tc.env {
				t.Setenv(k, v)
			}
			cfg := tc.config
			b, err := NewSlackBot(&cfg)
			if tc.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tc.wantErr) {
					t.Errorf("NewSlackBot: got err %v, want %q", err, tc.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("NewSlackBot: unexpected error: %v", err)
			}
			if b.api == nil || b.client == nil || b.logf == nil {
				t.Errorf("NewSlackBot: incomplete bot %+v", b)
			}
		})
	}
}

func TestSlashReply(t *testing.T) {
	payload := slashReply(slack.SlashCommand{Command: "/peercolor", Text: "tgx 2"})
	blocks, ok := payload["blocks"].([]slack.Block)
	if !ok || len(blocks) != 1 {
		t.Fatalf("slashReply: got payload %+v", payload)
	}
	sec, ok := blocks[0].(*slack.SectionBlock)
	if !ok {
		t.Fatalf("slashReply: block is %T, want section", blocks[0])
	}
	const want = "```2: Telegram X (Android)=Violet```"
	if sec.Text == nil || sec.Text.Text != want {
		t.Errorf("slashReply text: got %+v, want %q", sec.Text, want)
	}
}
