// Command mdpane renders markdown files in a scrollable terminal pane.
//
// Usage:
//
//	mdpane [flags] [pattern ...]
//
// Each pattern is a doublestar glob (e.g. "docs/**/*.md"); matching files
// are concatenated and rendered as one document. With no patterns, markdown
// is read from standard input.
//
// Flags:
//
//	-wide-threshold int  Column width beyond which code blocks scroll horizontally (default 80)
//	-log-level string    Log level: debug, info, warn, error (default "warn")
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/charmbracelet/log"

	"mdpane"
	bt "mdpane/bubbletea"
	"mdpane/segment"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "mdpane: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		wideThreshold = flag.Int("wide-threshold", segment.DefaultWideThreshold, "Column width beyond which code blocks scroll horizontally")
		logLevel      = flag.String("log-level", "warn", "Log level: debug, info, warn, error")
	)
	flag.Parse()

	level, err := log.ParseLevel(*logLevel)
	if err != nil {
		return fmt.Errorf("parse log level: %w", err)
	}
	logger := log.NewWithOptions(os.Stderr, log.Options{Level: level})

	source, err := readSource(flag.Args())
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	doc := bt.New(source, mdpane.DefaultTheme(),
		bt.WithWideThreshold(*wideThreshold),
		bt.WithLogger(logger),
	)

	if err := bt.Run(ctx, doc); err != nil {
		return fmt.Errorf("TUI: %w", err)
	}
	return nil
}

// readSource resolves glob patterns and concatenates the matching files.
// With no patterns it reads standard input.
func readSource(patterns []string) (string, error) {
	if len(patterns) == 0 {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	}

	var paths []string
	seen := make(map[string]bool)
	for _, pattern := range patterns {
		matches, err := doublestar.FilepathGlob(pattern)
		if err != nil {
			return "", fmt.Errorf("glob %q: %w", pattern, err)
		}
		for _, m := range matches {
			if !seen[m] {
				seen[m] = true
				paths = append(paths, m)
			}
		}
	}
	if len(paths) == 0 {
		return "", fmt.Errorf("%w: %s", mdpane.ErrNoFiles, strings.Join(patterns, " "))
	}
	sort.Strings(paths)

	var parts []string
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("read %s: %w", path, err)
		}
		parts = append(parts, strings.TrimRight(string(data), "\n"))
	}
	return strings.Join(parts, "\n\n---\n\n") + "\n", nil
}
