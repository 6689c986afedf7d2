// Copyright 2025 The WordServe Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package main runs the wordfix spell-suggestion engine, as a MessagePack IPC
server for editors or as an interactive CLI.

Note: This is a BETA release. APIs and functionality may rapidly change.

wordfix sends the text being edited to an external analysis service, folds
the returned token fragments back into words, and keeps one candidate list
per occurrence of every flagged word. Choosing a suggestion rewrites exactly
the occurrence that was clicked, even when the same word appears many times.

# Usage

Start the server with default settings:

	wordfix

Enable debug logging and use a custom config:

	wordfix -d -config ./config.toml

Run in CLI mode for interactive testing:

	wordfix -c

# Configuration

Runtime configuration is read from a TOML file, created with defaults when
missing:

	[server]
	max_text_length = 5000
	debounce_ms = 300

	[analysis]
	base_url = "http://localhost:8000"
	endpoint = "/review"
	timeout_ms = 8000

	[dict]
	path = "dict.txt"
	words = []

	[cli]
	color = true

Words ignored through the server are appended to the dictionary file.

# IPC Protocol

Requests and responses are MessagePack maps on stdin and stdout; logs are
written to stderr. See package server for the message reference.

	{"id": "r1", "action": "edit", "text": "teh cat teh dog"}
	{"action": "analysis", "gen": 1, "status": "ok", "f": 2}
	{"id": "r2", "action": "click", "w": "teh", "i": 1}
	{"id": "r3", "action": "choose", "s": "the"}

# Command Line Flags

	-d  Enable debug mode with detailed logging
	-c  Run CLI mode instead of server mode
	-config string
	    Path to a config file
	-url string
	    Analysis service base URL, overrides the config
	-rebuild-config
	    Overwrite the config file (or -config path) with defaults and exit
	-version
	    Show current version
*/
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/bastiangx/wordfix/internal/cli"
	"github.com/bastiangx/wordfix/internal/logger"
	"github.com/bastiangx/wordfix/internal/utils"
	"github.com/bastiangx/wordfix/pkg/config"
	"github.com/bastiangx/wordfix/pkg/server"
	"github.com/bastiangx/wordfix/pkg/session"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

const (
	Version = "0.1.0-beta"
	AppName = "wordfix"
	gh      = "https://github.com/bastiangx/wordfix"
)

func main() {
	showVersion := flag.Bool("version", false, "Show current version")
	debugMode := flag.Bool("d", false, "Toggle debug mode")
	cliMode := flag.Bool("c", false, "Run CLI -- useful for testing and debugging")
	configPath := flag.String("config", "", "Path to a custom config file")
	baseURL := flag.String("url", "", "Analysis service base URL (overrides config)")
	rebuildConfig := flag.Bool("rebuild-config", false, "Overwrite the config file with defaults and exit")

	flag.Parse()

	if *showVersion {
		printVersion()
		os.Exit(0)
	}

	log.SetOutput(os.Stderr)
	logger.SetDebug(*debugMode)
	if *debugMode {
		log.SetReportTimestamp(true)
		for k, v := range utils.NewPathResolver().GetRuntimeInfo() {
			log.Debug("runtime", k, v)
		}
	}

	if *rebuildConfig {
		path, err := config.RebuildConfigFile(*configPath)
		if err != nil {
			log.Fatalf("Failed to rebuild config: %v", err)
		}
		log.Infof("Config rebuilt with defaults: (%s)", path)
		os.Exit(0)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, activePath, err := config.LoadConfigWithPriority(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *baseURL != "" {
		cfg.Analysis.BaseURL = *baseURL
	}
	log.Debugf("Using config file: (%s)", config.GetActiveConfigPath(activePath))

	dict, dictPath, err := cfg.Dict.LoadDict()
	if err != nil {
		log.Warnf("Failed to load dictionary %s: %v", dictPath, err)
	}
	log.Debugf("Dictionary: %d words from (%s)", dict.Len(), dictPath)

	sess := session.New(dict)
	client := cfg.NewClient()

	// CLI is for trying the analysis service by hand.
	if *cliMode {
		log.SetReportTimestamp(false)
		h := cli.NewInputHandler(sess, client, cfg.Server.MaxTextLength, cfg.CLI.Color)
		if err := h.Start(ctx); err != nil {
			log.Fatalf("CLI error: %v", err)
		}
		return
	}

	log.Debug("spawning IPC")
	srv := server.NewServer(sess, client, server.Options{
		MaxText:  cfg.Server.MaxTextLength,
		Debounce: cfg.Debounce(),
		DictPath: dictPath,
	})
	showStartupInfo(cfg, sess.ID)

	if err := srv.Start(ctx); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}

func printVersion() {
	banner := log.NewWithOptions(os.Stderr, log.Options{
		ReportCaller:    false,
		ReportTimestamp: false,
		Prefix:          "",
	})

	styles := log.DefaultStyles()
	styles.Values["version"] = lipgloss.NewStyle().Bold(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"}).
		Background(lipgloss.AdaptiveColor{Light: "#f2e9e1", Dark: "#26233a"})
	styles.Values["gh"] = lipgloss.NewStyle().Italic(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
	banner.SetStyles(styles)

	banner.Print("")
	banner.Print("[ wordfix ] Occurrence-precise spelling suggestions")
	banner.Print("", "version", Version)
	banner.Print("")
	banner.Print("use -h or --help to see available options")
	banner.Print("Github Repo", "gh", gh)
}

// showStartupInfo prints basic info to stderr; stdout carries IPC.
func showStartupInfo(cfg *config.Config, sessionID string) {
	currentLevel := log.GetLevel()
	log.SetLevel(log.InfoLevel)
	defer log.SetLevel(currentLevel)

	fmt.Fprintln(os.Stderr, "===========")
	fmt.Fprintln(os.Stderr, "  wordfix  ")
	fmt.Fprintln(os.Stderr, "===========")
	log.Infof("Version: %s", Version)
	log.Infof("Process ID: [ %d ]", os.Getpid())
	log.Infof("Session: %s", sessionID)
	log.Infof("Analysis: ( %s%s )", cfg.Analysis.BaseURL, cfg.Analysis.Endpoint)
	log.Info("status: ready")
	fmt.Fprintln(os.Stderr, "===========")
}
