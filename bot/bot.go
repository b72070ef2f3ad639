// Copyright (c) Tailscale Inc & AUTHORS
// SPDX-License-Identifier: BSD-3-Clause

// Package bot answers peer color queries in Slack.
package bot

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/slack-go/slack"
	"github.com/slack-go/slack/slackevents"
	"github.com/slack-go/slack/socketmode"
)

// Config is the configuration for the Slack bot.
type Config struct {
	Debug bool
	Logf  func(string, ...any)

	BotToken string // xoxb-...; default $SLACK_BOT_TOKEN
	AppToken string // xapp-...; default $SLACK_APP_TOKEN
}

// SlackBot is a Slack bot that replies to mentions and slash commands with
// the avatar colors of the peer IDs they mention.
type SlackBot struct {
	logf   func(string, ...any)
	client *socketmode.Client
	api    *slack.Client
}

// token returns val, or the value of the environment variable env if val is
// empty, and checks that it has the expected prefix.
func token(val, env, prefix string) (string, error) {
	if val == "" {
		val = os.Getenv(env)
	}
	if val == "" {
		return "", fmt.Errorf("%s must be set", env)
	} else if !strings.HasPrefix(val, prefix) {
		return "", fmt.Errorf("%s must have the prefix %q", env, prefix)
	}
	return val, nil
}

// NewSlackBot constructs a bot from config.
func NewSlackBot(config *Config) (*SlackBot, error) {
	appToken, aerr := token(config.AppToken, "SLACK_APP_TOKEN", "xapp-")
	botToken, berr := token(config.BotToken, "SLACK_BOT_TOKEN", "xoxb-")
	if err := errors.Join(aerr, berr); err != nil {
		return nil, err
	}

	api := slack.New(
		botToken,
		slack.OptionDebug(config.Debug),
		slack.OptionLog(log.New(os.Stdout, "api: ", log.Lshortfile|log.LstdFlags)),
		slack.OptionAppLevelToken(appToken),
	)
	client := socketmode.New(
		api,
		socketmode.OptionDebug(config.Debug),
		socketmode.OptionLog(log.New(os.Stdout, "socketmode: ", log.Lshortfile|log.LstdFlags)),
	)

	logf := config.Logf
	if logf == nil {
		logf = log.Printf
	}
	return &SlackBot{logf: logf, api: api, client: client}, nil
}

func (b *SlackBot) handleEvents() {
	for evt := range b.client.Events {
		switch evt.Type {
		case socketmode.EventTypeConnecting:
			b.logf("Connecting to Slack with Socket Mode...")
		case socketmode.EventTypeConnectionError:
			b.logf("Connection failed. Retrying later...")
		case socketmode.EventTypeConnected:
			b.logf("Connected to Slack with Socket Mode.")
		case socketmode.EventTypeEventsAPI:
			b.client.Ack(*evt.Request)
			if ev, ok := evt.Data.(slackevents.EventsAPIEvent); ok {
				b.handleCallback(ev)
			}
		case socketmode.EventTypeSlashCommand:
			cmd, ok := evt.Data.(slack.SlashCommand)
			if !ok {
				b.client.Ack(*evt.Request)
				continue
			}
			b.client.Ack(*evt.Request, slashReply(cmd))
		case socketmode.EventTypeInteractive:
			b.client.Ack(*evt.Request) // no interactive elements yet
		default:
			b.client.Debugf("Ignored event type %s", evt.Type)
		}
	}
}

// handleCallback replies in-channel to mentions of the bot.
func (b *SlackBot) handleCallback(ev slackevents.EventsAPIEvent) {
	if ev.Type != slackevents.CallbackEvent {
		return
	}
	mention, ok := ev.InnerEvent.Data.(*slackevents.AppMentionEvent)
	if !ok {
		return
	}
	_, _, err := b.api.PostMessage(mention.Channel,
		slack.MsgOptionText(answer(mention.Text), false),
		slack.MsgOptionTS(mention.TimeStamp), // reply in a thread
	)
	if err != nil {
		b.logf("Posting reply in %s: %v", mention.Channel, err)
	}
}

// slashReply builds the acknowledgement payload for a slash command.
func slashReply(cmd slack.SlashCommand) map[string]any {
	text := slack.NewTextBlockObject(slack.MarkdownType, "```"+answer(cmd.Text)+"```", false, false)
	return map[string]any{
		"blocks": []slack.Block{slack.NewSectionBlock(text, nil, nil)},
	}
}

// Run starts the bot and blocks until its connection ends.
func (b *SlackBot) Run() error {
	go b.handleEvents()
	return b.client.Run()
}
