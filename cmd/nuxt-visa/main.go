// Copyright 2026 The Nuxt Visa Authors
// SPDX-License-Identifier: Apache-2.0

// nuxt-visa is the terminal client for the visa service's support
// chat. It signs the user in (or registers a new account), resumes
// their support conversation, sends messages with automated assistant
// replies, and keeps a notification panel fresh in the background.
//
// Configuration comes from a YAML file named by NUXTVISA_CONFIG or
// --config; flags override file values. The session persists under
// the state directory so a later run resumes without logging in.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/n515f/nuxt-visa/chatui"
	"github.com/n515f/nuxt-visa/lib/config"
	"github.com/n515f/nuxt-visa/session"
	"github.com/n515f/nuxt-visa/support"
	"github.com/n515f/nuxt-visa/visaapi"
)

const clientVersion = "0.3.0"

func main() {
	if err := run(); err != nil {
		if coder, ok := err.(interface{ ExitCode() int }); ok {
			os.Exit(coder.ExitCode())
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var configPath string
	var apiBase string
	var stateDir string
	var logOutput string

	flagSet := pflag.NewFlagSet("nuxt-visa", pflag.ContinueOnError)
	flagSet.StringVar(&configPath, "config", "", "path to the YAML config file (default: $NUXTVISA_CONFIG)")
	flagSet.StringVar(&apiBase, "api-base", "", "base URL of the visa service API (overrides config)")
	flagSet.StringVar(&stateDir, "state-dir", "", "directory for session state (overrides config)")
	flagSet.StringVar(&logOutput, "log-output", "", "write JSON log records to this file")
	flagSet.BoolP("help", "h", false, "show help")

	if len(os.Args) > 1 && os.Args[1] == "--version" {
		fmt.Printf("nuxt-visa %s\n", clientVersion)
		return nil
	}

	if err := flagSet.Parse(os.Args[1:]); err != nil {
		if err == pflag.ErrHelp {
			printHelp(flagSet)
			return nil
		}
		return err
	}
	if help, _ := flagSet.GetBool("help"); help {
		printHelp(flagSet)
		return nil
	}
	if args := flagSet.Args(); len(args) > 0 {
		return fmt.Errorf("unexpected argument: %s", args[0])
	}

	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	if apiBase != "" {
		cfg.API.BaseURL = apiBase
	}
	if stateDir != "" {
		cfg.State.Dir = stateDir
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("nuxt-visa is an interactive program; stdout is not a terminal")
	}

	// Background log records go to a file when requested and are
	// discarded otherwise: stderr would corrupt the alt screen.
	logger, closeLogger, err := newLogger(logOutput, cfg.Log.Level)
	if err != nil {
		return err
	}
	defer closeLogger()

	timeout, err := cfg.RequestTimeout()
	if err != nil {
		return err
	}
	pollInterval, err := cfg.PollInterval()
	if err != nil {
		return err
	}

	store := session.NewStore(cfg.State.Dir)
	client, err := visaapi.NewClient(visaapi.ClientConfig{
		BaseURL:    cfg.API.BaseURL,
		Tokens:     store,
		HTTPClient: &http.Client{Timeout: timeout},
		Logger:     logger,
	})
	if err != nil {
		return err
	}

	cache := support.NewCache()
	resolver := support.NewResolver(client, store, logger)
	conversation := support.NewConversation(support.ConversationConfig{
		API:      client,
		Store:    store,
		Resolver: resolver,
		Cache:    cache,
		Logger:   logger,
	})
	poller := support.NewPoller(support.PollerConfig{
		API:      client,
		Store:    store,
		Cache:    cache,
		Interval: pollInterval,
		Logger:   logger,
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	updates := make(chan chatui.PollUpdate, 1)
	go func() {
		defer close(updates)
		poller.Run(ctx, func(notifications []visaapi.Notification, err error) {
			select {
			case updates <- chatui.PollUpdate{Notifications: notifications, Err: err}:
			case <-ctx.Done():
			}
		})
	}()

	model := chatui.New(chatui.Config{
		API:          client,
		Store:        store,
		Resolver:     resolver,
		Conversation: conversation,
		Poller:       poller,
		Cache:        cache,
		PollUpdates:  updates,
	})
	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err = program.Run()
	return err
}

// loadConfig prefers an explicit --config path over the environment
// lookup.
func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFile(path)
	}
	return config.Load()
}

func newLogger(path, level string) (*slog.Logger, func(), error) {
	if path == "" {
		return slog.New(slog.DiscardHandler), func() {}, nil
	}
	file, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("cannot open log file %s: %w", path, err)
	}
	var logLevel slog.Level
	if err := logLevel.UnmarshalText([]byte(level)); err != nil {
		logLevel = slog.LevelInfo
	}
	handler := slog.NewJSONHandler(file, &slog.HandlerOptions{Level: logLevel})
	return slog.New(handler), func() { file.Close() }, nil
}

func printHelp(flagSet *pflag.FlagSet) {
	fmt.Fprintf(os.Stderr, `nuxt-visa - terminal client for the visa support chat.

Signs in to the visa service, resumes your support conversation, and
keeps notifications fresh every poll interval. A persisted session in
the state directory skips the login form on the next run.

Usage:
  nuxt-visa [flags]

Examples:
  # Use the config file named by NUXTVISA_CONFIG
  nuxt-visa

  # Point at a specific backend
  nuxt-visa --api-base https://visa.example.com/api

  # Keep a debug log for a bug report
  nuxt-visa --log-output /tmp/nuxt-visa.log

Flags:
`)
	flagSet.SetOutput(os.Stderr)
	flagSet.PrintDefaults()
}
