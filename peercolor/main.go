// Copyright (c) Tailscale Inc & AUTHORS
// SPDX-License-Identifier: BSD-3-Clause

// Program peercolor is an avatar color inspector for Telegram peers. It
// serves a UI and JSON API that report the color each Telegram client assigns
// to a peer ID, and filters lists of IDs by color.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/tailscale/peercolor/bot"
	"tailscale.com/tsnet"
	"tailscale.com/types/logger"
)

// Flag definitions
var (
	doVerbose = flag.Bool("v", false, "Enable verbose debug logging")

	// The hostname to advertise on the tailnet.
	hostName = flag.String("hostname", "peercolor",
		"The tailscale hostname to use for the server")

	// The directory where the tsnet node keeps its state.
	stateDir = flag.String("state-dir", "/tmp/peercolor", "Node state directory")

	// If set, serve on this local address instead of joining a tailnet.
	listenAddr = flag.String("listen", "",
		"Serve HTTP on this local address instead of the tailnet (e.g., localhost:8080)")

	// The address of the debug and metrics server. Empty disables it.
	debugAddr = flag.String("debug-listen", ":8383", "Debug server address (empty to disable)")

	// Experimental features.

	enableSlackBot = flag.Bool("enable-slack-bot", false,
		"Enable Slack integration (experimental)")
)

func init() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: [TS_AUTHKEY=k] %[1]s <options>

Run a Telegram avatar color inspector. By default the service runs as a node
on a tailnet and listens for HTTP requests (not HTTPS) on port 80. Use -listen
to serve on a local address instead.

The first time you start %[1]s on a tailnet, you must authenticate its node.
Generate an auth key [1] and pass it in via the TS_AUTHKEY environment
variable. The server runs until terminated by SIGINT or SIGTERM.

With -enable-slack-bot, the SLACK_APP_TOKEN and SLACK_BOT_TOKEN environment
variables must be set.

[1]: https://tailscale.com/kb/1085/auth-keys/

Options:
`, filepath.Base(os.Args[0]))
		flag.PrintDefaults()
	}
}

// A listenFunc opens a listener on the given network address.
type listenFunc func(network, addr string) (net.Listener, error)

func main() {
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	var (
		listen   listenFunc = net.Listen
		httpAddr            = *listenAddr
	)
	if *listenAddr == "" {
		logf := logger.Discard
		if *doVerbose {
			logf = log.Printf
		}
		s := &tsnet.Server{
			Hostname: *hostName,
			Dir:      filepath.Join(*stateDir, "tsnet"),
			Logf:     logf,
		}
		defer s.Close()
		go func() {
			<-ctx.Done()
			log.Print("Signal received, stopping server...")
			s.Close()
		}()
		listen, httpAddr = s.Listen, ":80"
	}

	ln, err := listen("tcp", httpAddr)
	if err != nil {
		log.Fatalf("Listening on %q: %v", httpAddr, err)
	}
	defer ln.Close()

	ps := newServer()
	if *debugAddr != "" {
		if err := startDebugServer(listen, *debugAddr); err != nil {
			log.Fatalf("Starting debug server: %v", err)
		}
	}
	if *enableSlackBot {
		go startSlackBot()
	}

	hs := &http.Server{Handler: ps.newMux()}
	go func() {
		<-ctx.Done()
		hs.Close()
	}()
	log.Printf("Serving on %v", ln.Addr())
	if err := hs.Serve(ln); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Serve: %v", err)
	}
}

func startSlackBot() {
	b, err := bot.NewSlackBot(&bot.Config{
		Debug: *doVerbose,
	})
	if err != nil {
		log.Fatalf("Creating Slack bot: %v", err)
	}
	if err := b.Run(); err != nil {
		log.Fatalf("Running Slack bot: %v", err)
	}
}
