// Package main provides the gnupipe CLI, a thin front end that streams
// commands and plots into a gnuplot session.
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
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/joaquinabian/gnuplot-go/gnuplot"
)

const version = "v0.1.0-dev"

func main() {
	if len(os.Args) < 2 {
		usage(os.Stderr)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var err error
	switch os.Args[1] {
	case "version":
		fmt.Printf("gnupipe %s\n", version)
	case "run":
		err = runCommand(ctx, os.Args[2:])
	case "plot":
		err = plotCommand(ctx, os.Args[2:])
	case "help", "-h", "--help":
		usage(os.Stdout)
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n", os.Args[1])
		usage(os.Stderr)
		os.Exit(2)
	}

	if err != nil && !errors.Is(err, context.Canceled) {
		fmt.Fprintf(os.Stderr, "gnupipe: %v\n", err)
		os.Exit(1)
	}
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "gnupipe - drive gnuplot from the command line")
	fmt.Fprintf(w, "Version: %s\n\n", version)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  version                        Show version")
	fmt.Fprintln(w, "  run [flags] [script...]        Send scripts, or stdin, to gnuplot")
	fmt.Fprintln(w, "  plot [flags] source...         Plot expressions and data files")
}

// sessionFlags are shared by every command that opens a session.
type sessionFlags struct {
	config   string
	platform string
	debug    bool
	persist  bool
}

func (f *sessionFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&f.config, "config", "", "YAML config file")
	fs.StringVar(&f.platform, "platform", "", "Platform preset (unix, macosx, windows, cygwin)")
	fs.BoolVar(&f.debug, "debug", false, "Log every command sent to gnuplot")
	fs.BoolVar(&f.persist, "persist", false, "Keep plot windows open after gnuplot exits")
}

func (f *sessionFlags) open(ctx context.Context) (*gnuplot.Session, error) {
	cfg := gnuplot.DefaultConfig()
	var err error
	switch {
	case f.config != "":
		cfg, err = gnuplot.LoadConfig(f.config)
	case f.platform != "":
		cfg, err = gnuplot.ConfigFor(f.platform)
	}
	if err != nil {
		return nil, err
	}
	if f.persist {
		cfg.Persist = true
	}
	if f.debug {
		cfg.Debug = true
	}

	level := slog.LevelInfo
	if cfg.Debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	return gnuplot.New(ctx, cfg, gnuplot.WithLogger(logger))
}

func runCommand(ctx context.Context, args []string) error {
	var sf sessionFlags
	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	sf.register(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}

	s, err := sf.open(ctx)
	if err != nil {
		return err
	}
	defer s.Close()

	if fs.NArg() == 0 {
		var prompt io.Writer
		if isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd()) {
			prompt = os.Stdout
		}
		return s.Interact(ctx, os.Stdin, prompt)
	}

	for _, path := range fs.Args() {
		if err := runScript(ctx, s, path); err != nil {
			return err
		}
	}
	return nil
}

func runScript(ctx context.Context, s *gnuplot.Session, path string) error {
	//nolint:gosec // G304: script path is supplied by the user
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open script: %w", err)
	}
	defer f.Close()
	return s.Interact(ctx, f, nil)
}

func plotCommand(ctx context.Context, args []string) error {
	var sf sessionFlags
	fs := flag.NewFlagSet("plot", flag.ContinueOnError)
	sf.register(fs)
	var (
		output   = fs.String("o", "", "Write a hardcopy to this file instead of waiting")
		terminal = fs.String("terminal", "", "Hardcopy terminal (default from the output extension)")
		title    = fs.String("title", "", "Plot title")
		style    = fs.String("with", "", "Style applied to every source")
		splot    = fs.Bool("3d", false, "Use splot")
	)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		return errors.New("plot needs at least one expression or data file")
	}

	items, err := plotSources(fs.Args(), *style)
	if err != nil {
		return err
	}
	defer func() {
		for _, item := range items {
			_ = item.Close()
		}
	}()

	s, err := sf.open(ctx)
	if err != nil {
		return err
	}
	defer s.Close()

	if *title != "" {
		if err := s.Title(*title); err != nil {
			return err
		}
	}
	if *splot {
		err = s.Splot(items...)
	} else {
		err = s.Plot(items...)
	}
	if err != nil {
		return err
	}

	if *output != "" {
		opts := gnuplot.HardcopyOptions{Terminal: *terminal}
		if opts.Terminal == "" {
			opts.Terminal = terminalFor(*output)
		}
		return s.Hardcopy(*output, opts)
	}

	if !s.SupportsPersist() {
		fmt.Fprintln(os.Stderr, "press Enter to exit")
		_, _ = fmt.Fscanln(os.Stdin)
	}
	return nil
}

// plotSources turns each argument into a File item if it names an existing
// file and a Func item otherwise.
func plotSources(args []string, style string) ([]gnuplot.Item, error) {
	var opts []gnuplot.Option
	if style != "" {
		opts = append(opts, gnuplot.With(style))
	}

	items := make([]gnuplot.Item, 0, len(args))
	for _, arg := range args {
		var (
			item gnuplot.Item
			err  error
		)
		if info, statErr := os.Stat(arg); statErr == nil && !info.IsDir() {
			item, err = gnuplot.NewFile(arg, append(opts, gnuplot.Title(filepath.Base(arg)))...)
		} else {
			item, err = gnuplot.NewFunc(arg, opts...)
		}
		if err != nil {
			for _, done := range items {
				_ = done.Close()
			}
			return nil, fmt.Errorf("%s: %w", arg, err)
		}
		items = append(items, item)
	}
	return items, nil
}

func terminalFor(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".svg":
		return "svg"
	case ".png":
		return "pngcairo"
	case ".pdf":
		return "pdfcairo"
	default:
		return gnuplot.DefaultHardcopyTerminal
	}
}
