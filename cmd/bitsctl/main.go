package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/danmuck/bitsctl/internal/logging"
	"github.com/danmuck/bitsctl/internal/transmission"
	"github.com/rs/zerolog/log"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("bitsctl", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "", "optional bitsctl config.toml")
	mode := fs.String("mode", "", "output mode: versions|value|tree|json (aliases 1, 2)")
	input := fs.String("input", "", "file holding one line of hex digits")
	hex := fs.String("hex", "", "hex digits given inline instead of -input")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	opts := defaultOptions()
	if *configPath != "" {
		loaded, err := loadOptions(*configPath, opts)
		if err != nil {
			fmt.Fprintf(stderr, "bitsctl: %v\n", err)
			return 1
		}
		opts = loaded
	}
	if *mode != "" {
		m, err := transmission.ParseMode(*mode)
		if err != nil {
			fmt.Fprintf(stderr, "bitsctl: %v\n", err)
			return 2
		}
		opts.Mode = m
	}
	if *input != "" {
		opts.Input = *input
	}

	cfg := logging.DefaultConfig(logging.ProfileRuntime)
	cfg.Out = stderr
	if lvl, ok := logging.ParseLevel(opts.LogLevel); ok {
		cfg.Level = lvl
	}
	logging.ApplyEnvOverrides(&cfg)
	logging.Apply(cfg)

	source := *hex
	origin := "inline"
	if source == "" {
		raw, err := transmission.ReadInput(opts.Input)
		if err != nil {
			fmt.Fprintf(stderr, "bitsctl: %v\n", err)
			return 1
		}
		source = raw
		origin = opts.Input
	}

	decoder := transmission.NewDecoder(opts.Limits, log.Logger.With().Str("app", "bitsctl").Logger())
	report, err := decoder.Decode(context.Background(), "cli", source)
	if err != nil {
		fmt.Fprintf(stderr, "bitsctl: decode %s (%s): %v\n", origin, transmission.ErrorKind(err), err)
		return 1
	}
	out, err := report.Render(opts.Mode)
	if err != nil {
		fmt.Fprintf(stderr, "bitsctl: %s %s (%s): %v\n", opts.Mode, origin, transmission.ErrorKind(err), err)
		return 1
	}
	log.Debug().Str("mode", string(opts.Mode)).Str("origin", origin).Msg("bitsctl render")
	fmt.Fprintln(stdout, out)
	return 0
}
