package main

import (
	"bytes"
	"testing"

	"meetingmind/internal/tui"
)

func TestParseArgs(t *testing.T) {
	opts, err := parseArgs([]string{"-plain", "-page", "actions", "-highlight", " m1 ", "-config", "/tmp/c.json"}, &bytes.Buffer{})
	if err != nil {
		t.Fatalf("parseArgs: %v", err)
	}
	if !opts.plain || opts.page != tui.PageActions || opts.highlight != "m1" || opts.configPath != "/tmp/c.json" {
		t.Fatalf("unexpected options: %+v", opts)
	}

	opts, err = parseArgs(nil, &bytes.Buffer{})
	if err != nil {
		t.Fatalf("parseArgs defaults: %v", err)
	}
	if opts.plain || opts.page != tui.PageUpload || opts.initConfig {
		t.Fatalf("unexpected defaults: %+v", opts)
	}
}

func TestParseArgs_Errors(t *testing.T) {
	if _, err := parseArgs([]string{"-page", "settings"}, &bytes.Buffer{}); err == nil {
		t.Fatal("want error for unknown page")
	}
	if _, err := parseArgs([]string{"-nope"}, &bytes.Buffer{}); err == nil {
		t.Fatal("want error for unknown flag")
	}
}

func TestUsePlain(t *testing.T) {
	if usePlain(cliOptions{}, true) {
		t.Fatal("terminal without -plain should use the TUI")
	}
	if !usePlain(cliOptions{plain: true}, true) {
		t.Fatal("-plain should force plain mode")
	}
	if !usePlain(cliOptions{}, false) {
		t.Fatal("piped stdin should use plain mode")
	}
}
