// Copyright 2026 The Symserve Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package main implements the code completion server and CLI [DBG] application.

Note: This is a BETA release. APIs and functionality may rapidly change.

Symserve provides fast prefix-based code completion backed by a character
trie over symbols extracted from source files. It can operate as a
MessagePack IPC server for integration with text editors, or as a CLI
application for testing and debugging.

The server mode indexes a codebase up front and answers completion requests
against the in-memory index. Suggestions are ranked by symbol kind, cursor
scope and usage frequency to surface the most relevant identifiers first.

# Usage

Index a project and start the server:

	symserve -dir /path/to/project

Restrict indexing to specific languages and enable debug mode:

	symserve -dir /path/to/project -langs python,typescript -d

Run in CLI mode for interactive testing:

	symserve -dir /path/to/project -c -limit 10 -prmin 2

# Configuration

Runtime configuration is managed through a TOML file that supports server
parameters, indexing settings, and CLI defaults:

	[server]
	max_limit = 64
	min_prefix = 1
	max_prefix = 60
	enable_filter = true

	[index]
	workers = 4
	max_file_size = 1000000
	case_sensitive = false

The config file is automatically created with defaults if it doesn't exist.

# IPC Protocol

The server communicates via MessagePack over stdin/stdout. Completion
requests are processed synchronously with millisecond timing information
included in responses.

Send a completion request:

	{"id": "req1", "cmd": "complete", "p": "calc", "l": 20}

Receive suggestions ranked by score:

	{"id": "req1", "s": [{"t": "calculate", "k": "function", "sc": 0.9}], "c": 1, "tm": 1}

Indexing and introspection commands are available on the same pipe:

	{"id": "idx1", "cmd": "index", "dir": "/path/to/project"}
	{"id": "st1", "cmd": "stats"}

# Server Mode

The default mode starts a MessagePack IPC server that processes completion
requests from stdin and writes responses to stdout. This design enables
integration with text editors and other applications through process
communication.

	srv := server.NewServer(indexer, contextAnalyzer, ranker, cfg)
	err := srv.Start()

# CLI Mode

CLI mode provides an interactive interface for testing and debugging
completion functionality. It reads prefixes from stdin and displays
suggestions with kind, score and source location.

	inputHandler := cli.NewInputHandler(indexer, ranker, minLen, maxLen, limit, noFilter)
	err := inputHandler.Start()

This mode is primarily intended for development and testing new features
before deploying to server mode.

# Command Line Flags

The following flags control application behavior:

	-dir string
	    Directory to index at startup
	-langs string
	    Comma-separated language filter (default: all supported)
	-workers int
	    Indexing worker count (default from config)
	-case
	    Case-sensitive completion matching
	-d  Enable debug mode with detailed logging
	-c  Run in CLI mode instead of server mode
	-limit int
	    Number of suggestions to return (default from config)
	-prmin int
	    Minimum prefix length for suggestions
	-prmax int
	    Maximum prefix length for suggestions
	-no-filter
	    Disable input filtering for debugging
	-config string
	    Custom config file path

Input filtering removes numeric and repetitive prefixes by default to
improve suggestion relevance, though this can be disabled for debugging
purposes.
*/
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/hollis-dev/symserve/internal/cli"
	"github.com/hollis-dev/symserve/pkg/analyzer"
	"github.com/hollis-dev/symserve/pkg/config"
	"github.com/hollis-dev/symserve/pkg/index"
	"github.com/hollis-dev/symserve/pkg/parser"
	"github.com/hollis-dev/symserve/pkg/rank"
	"github.com/hollis-dev/symserve/pkg/server"
)

const (
	Version = "0.3.0-beta"
	AppName = "symserve"
	gh      = "https://github.com/hollis-dev/symserve"
)

// sigHandler is a simple handler for OS signals to exit normally.
func sigHandler() {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		fmt.Fprintf(os.Stderr, "\nExiting...\n")
		os.Exit(0)
	}()
}

// main calls other packages to initialize the server or CLI inputs.
// main() does not implement logic for them and only manages the flow.
func main() {
	sigHandler()
	defaultConfig := config.DefaultConfig()

	// custom Flags
	showVersion := flag.Bool("version", false, "Show current version")
	indexDir := flag.String("dir", "", "Directory to index at startup")
	langFilter := flag.String("langs", "", "Comma-separated language filter (e.g. python,typescript)")
	workers := flag.Int("workers", defaultConfig.Index.Workers, "Number of indexing workers")
	caseSensitive := flag.Bool("case", defaultConfig.Index.CaseSensitive, "Case-sensitive completion matching")
	debugMode := flag.Bool("d", false, "Toggle debug mode")
	cliMode := flag.Bool("c", false, "Run CLI -- useful for testing and debugging")
	limit := flag.Int("limit", defaultConfig.CLI.DefaultLimit, "Number of suggestions to return")
	minPrefix := flag.Int("prmin", defaultConfig.Server.MinPrefix, "Minimum prefix length for suggestions (1 < n <= prmax)")
	maxPrefix := flag.Int("prmax", defaultConfig.Server.MaxPrefix, "Maximum prefix length for suggestions")
	noFilter := flag.Bool("no-filter", defaultConfig.CLI.DefaultNoFilter, "Disable input filtering (DBG only) - shows all raw index entries")
	configPath := flag.String("config", "", "Custom config file path")

	flag.Parse()

	if *showVersion {
		logger := log.NewWithOptions(os.Stderr, log.Options{
			ReportCaller:    false,
			ReportTimestamp: false,
			Prefix:          "",
		})

		styles := log.DefaultStyles()

		styles.Values["version"] = lipgloss.NewStyle().Bold(true).
			Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
		styles.Values["version"] = lipgloss.NewStyle().
			Background(lipgloss.AdaptiveColor{Light: "#f2e9e1", Dark: "#26233a"})

		styles.Values["gh"] = lipgloss.NewStyle().Italic(true).
			Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})

		logger.SetStyles(styles)

		logger.Print("")
		logger.Print("[ Symserve ] Serves really fast code completions!")
		logger.Print("", "version", Version)
		logger.Print("")
		logger.Print("use -h or --help to see available options")
		logger.Print("Github Repo", "gh", gh)

		os.Exit(0)
	}

	if *debugMode {
		log.SetLevel(log.DebugLevel)
		log.SetReportTimestamp(true)
	} else {
		log.SetLevel(log.WarnLevel)
	}

	// stdout carries the msgpack stream in server mode
	log.SetOutput(os.Stderr)

	appConfig, activeConfigPath, err := config.LoadConfigWithPriority(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
		os.Exit(1)
	}
	log.Debugf("Using config file: (%s)", config.GetActiveConfigPath(activeConfigPath))

	registry := parser.DefaultRegistry()
	log.Debugf("Registered languages: %v", registry.Supported())

	indexer := index.New(registry, index.Options{
		CaseSensitive: *caseSensitive,
		Workers:       *workers,
		MaxFileSize:   appConfig.Index.MaxFileSize,
	})

	var languages []string
	if *langFilter != "" {
		for _, lang := range strings.Split(*langFilter, ",") {
			if lang = strings.TrimSpace(lang); lang != "" {
				languages = append(languages, lang)
			}
		}
	}

	if *indexDir != "" {
		log.Debugf("Indexing %s (workers=%d, langs=%v)", *indexDir, *workers, languages)
		result, err := indexer.IndexDirectory(context.Background(), *indexDir, languages, *workers)
		if err != nil {
			log.Fatalf("Failed to index %s: %v", *indexDir, err)
			os.Exit(1)
		}
		log.Debugf("Indexed %d/%d files, %d symbols (%d unique)",
			result.FilesIndexed, result.TotalFiles, result.SymbolsIndexed, result.UniqueSymbols)
	} else {
		log.Warn("No directory specified, serving keywords and builtins only until an index command arrives...")
	}

	ranker := rank.New()

	// CLI would be mainly used for testing and dbg purposes.
	// Any new features or changes should be tested in CLI mode first.
	if *cliMode {
		log.SetReportTimestamp(false)
		log.Debug("Input info:",
			"minPrefix", *minPrefix,
			"maxPrefix", *maxPrefix,
			"limit", *limit,
			"noFilter", *noFilter)

		inputHandler := cli.NewInputHandler(indexer, ranker, *minPrefix, *maxPrefix, *limit, *noFilter)
		if err := inputHandler.Start(); err != nil {
			log.Fatalf("CLI error: %v", err)
			os.Exit(1)
		}
		return
	}

	log.Debug("spawning IPC")
	contextAnalyzer := analyzer.New(registry)
	srv := server.NewServer(indexer, contextAnalyzer, ranker, appConfig)

	showStartupInfo(*indexDir, indexer)

	if err := srv.Start(); err != nil {
		log.Fatalf("Failed to start server: %v", err)
		os.Exit(1)
	}
}

// showStartupInfo displays some basic info about the init process.
func showStartupInfo(indexDir string, indexer *index.Indexer) {
	pid := os.Getpid()
	currentLevel := log.GetLevel()
	log.SetLevel(log.InfoLevel)

	stats := indexer.Stats()

	fmt.Fprintln(os.Stderr, "==========")
	fmt.Fprintln(os.Stderr, " Symserve ")
	fmt.Fprintln(os.Stderr, "==========")
	log.Infof("Version: %s", Version)
	log.Infof("Process ID: [ %d ]", pid)
	log.Info("init: OK")
	if indexDir != "" {
		log.Infof("index dir: ( %s )", indexDir)
	}
	log.Infof("files: %d, symbols: %d", stats.FilesIndexed, stats.UniqueSymbols)
	log.Info("status: ready")
	fmt.Fprintln(os.Stderr, "==========")
	fmt.Fprintln(os.Stderr, "Press Ctrl+C to exit")

	log.SetLevel(currentLevel)
}
