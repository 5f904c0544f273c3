package main

import (
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/sirupsen/logrus"

	"github.com/odvcencio/ssphys/pkg/config"
	"github.com/odvcencio/ssphys/pkg/physfile"
	"github.com/odvcencio/ssphys/pkg/vss"
)

// useColor applies the color setting to w. Auto colours terminals only.
func useColor(w io.Writer) bool {
	switch settings().Color {
	case config.ColorAlways:
		return true
	case config.ColorNever:
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// painter returns a colour for w that stays plain when w gets no colour.
func painter(w io.Writer, attrs ...color.Attribute) *color.Color {
	c := color.New(attrs...)
	if useColor(w) {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	return c
}

// locatorFor is the database tree around path, or the configured root.
func locatorFor(path string) physfile.Locator {
	if root := settings().DatabaseRoot; root != "" {
		return physfile.Locator{Root: root}
	}
	return physfile.LocatorFor(path)
}

// sessionOptions builds vss options for inspecting path. The returned
// function releases the names cache when one was found.
func sessionOptions(path string, acceptUnknown bool) (vss.Options, func()) {
	cfg := settings()
	loc := locatorFor(path)
	opts := vss.Options{
		AcceptUnknown: cfg.AcceptUnknown || acceptUnknown,
		MaxHops:       cfg.MaxChainHops,
		Logger:        logrus.StandardLogger(),
		Locator:       &loc,
	}
	if cs, err := cfg.Charset(); err == nil {
		opts.Charset = cs
	}
	names, err := vss.FindNames(loc, opts.Logger)
	if err != nil {
		logrus.Debugf("no names cache for %s: %v", path, err)
		return opts, func() {}
	}
	opts.Names = names
	return opts, func() { _ = names.Close() }
}
