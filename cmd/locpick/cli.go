package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/fwojciec/locpick"
	"github.com/fwojciec/locpick/extract"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger

	Config   *locpick.Config
	Batch    *extract.Batch
	Pipeline *extract.Pipeline
	Sink     locpick.ResultSink
	Runs     locpick.RunService
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Run        RunCmd        `cmd:"" help:"Run a batch extraction from a config file"`
	Probe      ProbeCmd      `cmd:"" help:"Extract locators for a single URL"`
	Check      CheckCmd      `cmd:"" help:"Validate a config file without running"`
	InitConfig InitConfigCmd `cmd:"" name:"init-config" help:"Write a starter config file"`
	History    HistoryCmd    `cmd:"" help:"Show past batch runs"`
}

// RunCmd is the "run" subcommand.
type RunCmd struct {
	Config    string `short:"c" default:"config.json" help:"Config file path"`
	Output    string `short:"o" help:"Override the configured output file"`
	Render    bool   `help:"Fetch with a headless browser for JavaScript-rendered pages"`
	Verbose   bool   `short:"v" help:"Enable debug logging"`
	NoHistory bool   `help:"Skip recording the run in the history database"`
}

// ProbeCmd is the "probe" subcommand.
type ProbeCmd struct {
	URL     string   `arg:"" help:"Page URL"`
	Fields  []string `arg:"" help:"Content fields to locate"`
	Model   string   `short:"m" help:"Override the default model"`
	Render  bool     `help:"Fetch with a headless browser"`
	Verbose bool     `short:"v" help:"Enable debug logging"`
}

// CheckCmd is the "check" subcommand.
type CheckCmd struct {
	Config string `short:"c" default:"config.json" help:"Config file path"`
}

// InitConfigCmd is the "init-config" subcommand.
type InitConfigCmd struct {
	Path  string `arg:"" optional:"" default:"config.json" help:"Where to write the config file"`
	Force bool   `short:"f" help:"Overwrite an existing file"`
}

// HistoryCmd is the "history" subcommand.
type HistoryCmd struct {
	ID    string `arg:"" optional:"" help:"Show one run's result rows"`
	Limit int    `short:"n" default:"10" help:"How many runs to list"`
}
