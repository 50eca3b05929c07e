// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Command vstageplan plans the vertex buffer layout of an attribute
// declaration file and prints the buckets and draw groups it produces.
//
// Usage:
//
//	vstageplan [flags] attributes.toml
//
// The declaration file is TOML or YAML:
//
//	size = 70000
//
//	[[attributes]]
//	name = "position"
//	index = 0
//	components = 3
//	datatype = "float32"
//
//	[[attributes]]
//	name = "color"
//	index = 1
//	components = 4
//	datatype = "uint8"
//	normalize = true
//
// Every staged vertex is written and committed, so the report also shows
// what a first upload costs.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"

	"github.com/gogpu/vstage"
	_ "github.com/gogpu/vstage/recording"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(2)
		}
		fmt.Fprintln(os.Stderr, "vstageplan:", err)
		os.Exit(1)
	}
}

// options holds the parsed command line.
type options struct {
	declPath   string
	configPath string
	device     string
	size       int
	wgsl       bool
	watch      bool
	verbose    bool
}

func parseFlags(args []string, stderr io.Writer) (*options, error) {
	fs := flag.NewFlagSet("vstageplan", flag.ContinueOnError)
	fs.SetOutput(stderr)

	o := &options{}
	fs.StringVar(&o.configPath, "config", "", "stage config file (TOML or YAML)")
	fs.StringVar(&o.device, "device", "recording", "registered device to plan on")
	fs.IntVar(&o.size, "size", -1, "vertex count (default: the declaration's size)")
	fs.BoolVar(&o.wgsl, "wgsl", false, "print the generated vertex shader of each purpose")
	fs.BoolVar(&o.watch, "watch", false, "re-plan when the input files change")
	fs.BoolVar(&o.verbose, "v", false, "debug logging")
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "usage: vstageplan [flags] attributes.{toml,yaml}\n\nflags:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return nil, errors.New("expected one declaration file")
	}
	o.declPath = fs.Arg(0)
	return o, nil
}

// newLogger returns the slog logger the tool installs for vstage.
func newLogger(w io.Writer, verbose bool) *slog.Logger {
	l := log.NewWithOptions(w, log.Options{
		ReportCaller:    verbose,
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339,
		Prefix:          "vstageplan",
	})
	if verbose {
		l.SetLevel(log.DebugLevel)
	}
	return slog.New(l)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	o, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}
	logger := newLogger(stderr, o.verbose)
	vstage.SetLogger(logger)
	defer vstage.SetLogger(nil)

	if err := planOnce(o, stdout); err != nil {
		if !o.watch {
			return err
		}
		logger.Error("plan failed", "err", err)
	}
	if !o.watch {
		return nil
	}
	return watch(ctx, o, stdout, logger)
}

// planOnce loads the inputs, builds a stage on the selected device and
// prints the report.
func planOnce(o *options, w io.Writer) error {
	decl, err := loadDeclaration(o.declPath)
	if err != nil {
		return err
	}
	opts := []vstage.Option{vstage.WithLabel(filepath.Base(o.declPath))}
	if o.configPath != "" {
		cfg, err := vstage.LoadConfig(o.configPath)
		if err != nil {
			return err
		}
		if cfg.Label == "" {
			cfg.Label = filepath.Base(o.declPath)
		}
		opts = append(opts, vstage.WithConfig(cfg))
	}

	size := o.size
	if size < 0 {
		size = decl.Size
	}
	opts = append(opts, vstage.WithInitialSize(size))

	dev, err := vstage.OpenDevice(o.device)
	if err != nil {
		return err
	}
	if c, ok := dev.(interface{ Close() }); ok {
		defer c.Close()
	}

	return plan(dev, decl, size, opts, o.wgsl, w)
}

// plan stages decl on dev, commits every vertex and prints the report.
// Everything it creates on dev is released before it returns.
func plan(dev vstage.Device, decl *declaration, size int, opts []vstage.Option, wgsl bool, w io.Writer) error {
	attrs, err := decl.attributes(dev, size)
	if err != nil {
		return err
	}
	defer releaseExternal(attrs)

	s, err := vstage.New(dev, attrs, opts...)
	if err != nil {
		return err
	}
	defer s.Destroy()

	fill(s)
	res, err := s.Commit(nil)
	if err != nil {
		return err
	}
	return report(w, s, res, wgsl)
}

// fill writes a distinct value into every component of every vertex.
func fill(s *vstage.Stage) {
	values := make([]float64, 4)
	for _, byIndex := range s.Writers() {
		for _, wr := range byIndex {
			n := wr.Components()
			for i := 0; i < s.Size(); i++ {
				for c := 0; c < n; c++ {
					values[c] = float64((i + c) % 128)
				}
				wr.Write(i, values[:n]...)
			}
		}
	}
}

// watch re-plans whenever the declaration or config file changes, until
// ctx is done. Directories are watched so editors that replace files on
// save are seen too.
func watch(ctx context.Context, o *options, w io.Writer, logger *slog.Logger) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	targets := map[string]bool{}
	for _, p := range []string{o.declPath, o.configPath} {
		if p == "" {
			continue
		}
		abs, err := filepath.Abs(p)
		if err != nil {
			return err
		}
		targets[abs] = true
		if err := watcher.Add(filepath.Dir(abs)); err != nil {
			return err
		}
	}
	logger.Info("watching for changes", "files", len(targets))

	for {
		select {
		case <-ctx.Done():
			return nil
		case e, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			abs, _ := filepath.Abs(e.Name)
			if !targets[abs] || e.Op&(fsnotify.Create|fsnotify.Write) == 0 {
				continue
			}
			logger.Debug("file changed", "file", e.Name, "op", e.Op.String())
			if err := planOnce(o, w); err != nil {
				logger.Error("plan failed", "err", err)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watcher error", "err", err)
		}
	}
}
