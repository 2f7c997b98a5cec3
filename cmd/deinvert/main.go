package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	influxdb2 "github.com/influxdata/influxdb-client-go"
	"github.com/norasector/deinvert/pkg/deinvert"
	"github.com/norasector/deinvert/pkg/deinvert/config"
	"github.com/norasector/deinvert/pkg/deinvert/input"
	"github.com/norasector/deinvert/pkg/deinvert/output"
	"golang.org/x/sync/errgroup"
)

const version = "1.3.0"

const usageText = `Usage: deinvert [options]

Descrambles frequency-inverted voice audio. Without -i, raw signed 16-bit
little-endian mono PCM is read from stdin and -r is required. Without -o,
raw PCM is written to stdout. Files are read and written as WAV.

Options:
  -config FILE            YAML configuration file; flags override it
  -f, -frequency HZ       inversion carrier frequency (default 2632)
  -p, -preset N           Selectone ST-20B preset 1..8
  -s, -split-frequency HZ split point, enables split-band mode
  -i, -input-file FILE    input WAV file
  -o, -output-file FILE   output WAV file
  -r, -samplerate HZ      sample rate of raw input
  -q, -quality N          filter quality 0..3 (default 2)
  -n, -nofilter           no filtering, same as -q 0
  -backend NAME           DSP backend: native or segdsp
  -verbose                debug logging
  -h, -help               show this help
  -v, -version            print version
`

type command struct {
	cfg     config.Config
	verbose bool
	help    bool
	version bool
}

func parseArgs(args []string, errOutput io.Writer) (*command, error) {
	fs := flag.NewFlagSet("deinvert", flag.ContinueOnError)
	fs.SetOutput(errOutput)
	fs.Usage = func() { fmt.Fprint(errOutput, usageText) }

	var (
		cmd            command
		configFile     string
		frequency      float64
		preset         int
		splitFrequency float64
		inputFile      string
		outputFile     string
		sampleRate     int
		quality        int
		noFilter       bool
		backend        string
	)

	fs.StringVar(&configFile, "config", "", "YAML config file")
	for _, name := range []string{"f", "frequency"} {
		fs.Float64Var(&frequency, name, 0, "inversion carrier frequency in Hz")
	}
	for _, name := range []string{"p", "preset"} {
		fs.IntVar(&preset, name, 0, "Selectone ST-20B preset 1..8")
	}
	for _, name := range []string{"s", "split-frequency"} {
		fs.Float64Var(&splitFrequency, name, 0, "split point in Hz")
	}
	for _, name := range []string{"i", "input-file"} {
		fs.StringVar(&inputFile, name, "", "input WAV file")
	}
	for _, name := range []string{"o", "output-file"} {
		fs.StringVar(&outputFile, name, "", "output WAV file")
	}
	for _, name := range []string{"r", "samplerate"} {
		fs.IntVar(&sampleRate, name, 0, "sample rate of raw input")
	}
	for _, name := range []string{"q", "quality"} {
		fs.IntVar(&quality, name, deinvert.DefaultQuality, "filter quality 0..3")
	}
	for _, name := range []string{"n", "nofilter"} {
		fs.BoolVar(&noFilter, name, false, "disable filtering")
	}
	for _, name := range []string{"h", "help"} {
		fs.BoolVar(&cmd.help, name, false, "show help")
	}
	for _, name := range []string{"v", "version"} {
		fs.BoolVar(&cmd.version, name, false, "print version")
	}
	fs.StringVar(&backend, "backend", string(deinvert.BackendNative), "DSP backend")
	fs.BoolVar(&cmd.verbose, "verbose", false, "debug logging")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("unexpected argument %q", fs.Arg(0))
	}
	if cmd.help || cmd.version {
		return &cmd, nil
	}

	cmd.cfg = config.Default()
	if configFile != "" {
		cfg, err := config.Load(configFile)
		if err != nil {
			return nil, err
		}
		cmd.cfg = cfg
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "f", "frequency":
			cmd.cfg.Frequency = frequency
		case "p", "preset":
			cmd.cfg.Preset = preset
		case "s", "split-frequency":
			cmd.cfg.SplitFrequency = splitFrequency
		case "i", "input-file":
			cmd.cfg.InputFile = inputFile
		case "o", "output-file":
			cmd.cfg.OutputFile = outputFile
		case "r", "samplerate":
			cmd.cfg.SampleRate = sampleRate
		case "q", "quality":
			cmd.cfg.Quality = quality
		case "backend":
			cmd.cfg.Backend = backend
		}
	})
	if noFilter {
		cmd.cfg.Quality = 0
	}

	return &cmd, nil
}

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr}).Level(zerolog.InfoLevel)

	cmd, err := parseArgs(os.Args[1:], os.Stderr)
	if err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}

	switch {
	case cmd.help:
		fmt.Fprint(os.Stdout, usageText)
		return
	case cmd.version:
		fmt.Fprintf(os.Stdout, "deinvert %s\n", version)
		return
	}

	if cmd.verbose {
		log.Logger = log.Logger.Level(zerolog.DebugLevel)
	}

	if err := run(context.Background(), cmd.cfg); err != nil {
		log.Fatal().Err(err).Msg("exited program")
	}
}

func run(ctx context.Context, cfg config.Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	var src deinvert.AudioSource
	if cfg.RawInput() {
		log.Debug().Str("input", "stdin").Int("sample_rate", cfg.SampleRate).Msg("reading raw PCM")
		src = input.NewRawSource(bufio.NewReader(os.Stdin), cfg.SampleRate)
	} else {
		wavFile, err := input.OpenWAVFile(cfg.InputFile)
		if err != nil {
			return fmt.Errorf("failed to open input: %w", err)
		}
		defer wavFile.Close()
		log.Debug().Str("input", cfg.InputFile).Int("sample_rate", wavFile.SampleRate()).Msg("reading WAV file")
		src = wavFile
	}

	opts, err := cfg.Options(src.SampleRate())
	if err != nil {
		return err
	}
	if _, defaulted, _ := cfg.Carrier(); defaulted {
		log.Warn().Float64("carrier_hz", opts.CarrierFrequencyHigh).Msg("no frequency or preset given, using default carrier")
	}

	deinverterOpts := []deinvert.DeinverterOption{deinvert.WithLogger(log.Logger)}
	if cfg.InfluxDB.Host != "" {
		client := influxdb2.NewClient(cfg.InfluxDB.Host, cfg.InfluxDB.Token)
		defer client.Close()
		deinverterOpts = append(deinverterOpts, deinvert.WithInfluxDB(
			client.WriteAPI(cfg.InfluxDB.Organization, cfg.InfluxDB.Bucket),
		))
	}

	deinverter, err := deinvert.NewDeinverter(opts, deinverterOpts...)
	if err != nil {
		return err
	}

	var sink deinvert.AudioSink
	if cfg.RawOutput() {
		sink = output.NewRawSink(os.Stdout)
	} else {
		sink, err = output.CreateWAVFile(cfg.OutputFile, src.SampleRate())
		if err != nil {
			return fmt.Errorf("failed to create output: %w", err)
		}
	}

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	eg, egCtx := errgroup.WithContext(runCtx)

	eg.Go(func() error {
		select {
		case sig := <-sigChan:
			log.Warn().Str("signal", sig.String()).Msg("stopping at next block")
			cancel()
		case <-egCtx.Done():
		}
		return nil
	})

	eg.Go(func() error {
		defer cancel()
		stats, err := deinverter.Run(egCtx, src, sink)
		if stats.WriteFailures > 0 {
			log.Warn().Int64("write_failures", stats.WriteFailures).Msg("some samples could not be written")
		}
		return err
	})

	runErr := eg.Wait()
	closeErr := sink.Close()

	if runErr != nil && !errors.Is(runErr, context.Canceled) {
		return runErr
	}
	return closeErr
}
