// Command nsfextract wires internal/nsfconfig, internal/nsfemu,
// internal/extract and internal/container together end to end: open an
// NSF, run the extraction, write a .nsfn container. It carries no
// business logic of its own — every behavior it invokes lives in those
// packages (spec.md's Non-goals keep this a thin wrapper, not a
// full command-line product).
package main

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"github.com/sfingram/nsfnotate/internal/container"
	"github.com/sfingram/nsfnotate/internal/extract"
	"github.com/sfingram/nsfnotate/internal/nsfconfig"
	"github.com/sfingram/nsfnotate/internal/nsfemu"
	"github.com/sfingram/nsfnotate/internal/nsflog"
)

func main() {
	var (
		duration      = pflag.IntP("duration", "d", 0, "Seconds of each track to emulate (0 uses the documented default).")
		patternLength = pflag.IntP("pattern-length", "p", 0, "Advisory notation grouping width (0 uses the documented default).")
		tuning        = pflag.IntP("tuning", "t", 0, "A4 tuning reference in Hz (0 uses the documented default).")
		out           = pflag.StringP("out", "o", "", "Output .nsfn path (required).")
		configPath    = pflag.StringP("config", "c", "", "YAML config file; flags override its fields.")
	)
	pflag.Parse()

	if len(pflag.Args()) != 1 || *out == "" {
		fmt.Fprintln(os.Stderr, "usage: nsfextract [flags] <input.nsf> --out <output.nsfn>")
		pflag.PrintDefaults()
		os.Exit(2)
	}
	nsfPath := pflag.Arg(0)

	cfg := nsfconfig.ExtractionConfig{}
	if *configPath != "" {
		loaded, err := nsfconfig.Load(*configPath)
		if err != nil {
			nsflog.Logger.Error("failed to load config", "path", *configPath, "err", err)
			os.Exit(1)
		}
		cfg = loaded
	}
	if *duration > 0 {
		cfg.Duration = *duration
	}
	if *patternLength > 0 {
		cfg.PatternLength = *patternLength
	}
	if *tuning > 0 {
		cfg.Tuning = *tuning
	}

	backend, err := newBackend()
	if err != nil {
		nsflog.Logger.Error("no emulator backend available", "err", err)
		os.Exit(1)
	}

	emu, err := nsfemu.Open(backend, nsfPath)
	if err != nil {
		nsflog.Logger.Error("failed to open nsf", "path", nsfPath, "err", err)
		os.Exit(1)
	}
	defer emu.Close()

	notationFile, err := extract.Run(emu, cfg)
	if err != nil {
		nsflog.Logger.Error("extraction failed", "path", nsfPath, "err", err)
		os.Exit(1)
	}

	if err := container.WriteFile(*out, notationFile); err != nil {
		nsflog.Logger.Error("failed to write container", "path", *out, "err", err)
		os.Exit(1)
	}

	nsflog.Logger.Info("wrote notation container", "path", *out, "songs", len(notationFile.Songs))
}
