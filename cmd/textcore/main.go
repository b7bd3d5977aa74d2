// Package main is the entry point for the textcore script runner.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"golang.org/x/term"

	"github.com/dshills/textcore/internal/binding"
	"github.com/dshills/textcore/internal/config"
	"github.com/dshills/textcore/internal/locale"
	"github.com/dshills/textcore/internal/mask"
	"github.com/dshills/textcore/internal/script"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
)

type options struct {
	configPath string
	mask       string
	locale     string
	logLevel   string
	bindPath   string
	text       string
	script     string
}

func main() {
	os.Exit(run())
}

func run() int {
	opts, ok := parseFlags()
	if !ok {
		return 2
	}

	cfg, err := config.LoadWithEnv(opts.configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	if opts.locale != "" {
		cfg.Mask.Locale = opts.locale
	}
	if opts.logLevel != "" {
		cfg.Log.Level = opts.logLevel
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	cat, err := cfg.Catalog()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: loading locales: %v\n", err)
		return 1
	}
	table, err := cfg.Locale(cat)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	logger := cfg.Logger(os.Stderr)
	sessOpts := []script.Option{script.WithOutput(os.Stdout), script.WithLogger(logger)}

	if opts.mask != "" {
		f, err := buildMask(opts.mask, table)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		sessOpts = append(sessOpts, script.WithMask(f))
	}
	if opts.bindPath != "" {
		doc, err := binding.Load(opts.bindPath)
		if errors.Is(err, os.ErrNotExist) {
			doc, err = binding.New(), nil
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		sessOpts = append(sessOpts, script.WithDocument(doc, opts.bindPath))
	}

	sess, err := script.New(cfg, table, sessOpts...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	defer sess.Close()

	if opts.text != "" && sess.Masked() == nil {
		if err := sess.Engine().SetText(opts.text); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
	}

	var in io.Reader = os.Stdin
	prompt := ""
	if opts.script != "" && opts.script != "-" {
		f, err := os.Open(opts.script)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		defer f.Close()
		in = f
	} else if term.IsTerminal(int(os.Stdin.Fd())) {
		prompt = "> "
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := sess.Run(ctx, in, prompt); err != nil {
		if errors.Is(err, context.Canceled) {
			return 130
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// buildMask turns a -mask value into a field. Kinds:
//
//	date[:layout]       date or time, default layout from the locale
//	integer[:digits]    calculator-style signed integer
//	decimal             signed decimal with two fraction digits
//	number:<format>     numeric format such as -#,##0.00
//	pattern:<pattern>   generic pattern such as (000) 000-0000
func buildMask(spec string, table locale.Table) (*mask.Field, error) {
	kind, arg, _ := strings.Cut(spec, ":")
	switch kind {
	case "date":
		if arg == "" {
			arg = mask.DateLayout(table)
		}
		return mask.Date(arg, table)
	case "integer":
		opts := mask.IntegerOptions{Signed: true, Grouping: true}
		if arg != "" {
			if _, err := fmt.Sscan(arg, &opts.Digits); err != nil {
				return nil, fmt.Errorf("integer digits %q: %w", arg, err)
			}
		}
		return mask.Integer(table, opts)
	case "decimal":
		return mask.Decimal(table, mask.DecimalOptions{Signed: true, Grouping: true})
	case "number":
		return mask.Number(arg, table)
	case "pattern":
		return mask.CompileLocale(arg, table)
	default:
		return nil, fmt.Errorf("unknown mask kind %q", kind)
	}
}

func parseFlags() (options, bool) {
	var opts options
	var showVersion bool

	flag.StringVar(&opts.configPath, "config", "textcore.toml", "Path to configuration file")
	flag.StringVar(&opts.configPath, "c", "textcore.toml", "Path to configuration file (shorthand)")
	flag.StringVar(&opts.mask, "mask", "", "Edit a masked field (date, integer, decimal, number:<fmt>, pattern:<pat>)")
	flag.StringVar(&opts.mask, "m", "", "Edit a masked field (shorthand)")
	flag.StringVar(&opts.locale, "locale", "", "Locale tag, overrides mask.locale")
	flag.StringVar(&opts.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	flag.StringVar(&opts.bindPath, "bind", "", "JSON document for load/store/save")
	flag.StringVar(&opts.text, "text", "", "Initial text of a plain field")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "textcore - scripted text field editing\n\n")
		fmt.Fprintf(os.Stderr, "Usage: textcore [options] [script]\n\n")
		fmt.Fprintf(os.Stderr, "Reads commands from script, or stdin when it is absent or \"-\".\n")
		fmt.Fprintf(os.Stderr, "Type \"help\" for the command list.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  textcore edits.txt                 Run a script on a plain field\n")
		fmt.Fprintf(os.Stderr, "  textcore -m date -locale de-DE      Edit a German date interactively\n")
		fmt.Fprintf(os.Stderr, "  textcore -m decimal -bind form.json Edit and store a decimal\n")
	}

	flag.Parse()

	if showVersion {
		fmt.Printf("textcore %s (%s)\n", version, commit)
		os.Exit(0)
	}
	if flag.NArg() > 1 {
		flag.Usage()
		return opts, false
	}
	opts.script = flag.Arg(0)
	return opts, true
}
