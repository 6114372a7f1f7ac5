// Command mailscreen screens one address or a list of addresses.
//
//	mailscreen verify user@example.com
//	mailscreen bulk addresses.txt --copy
//	cat addresses.txt | mailscreen bulk --json
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/pflag"

	"github.com/optimode/mailscreen"
	"github.com/optimode/mailscreen/internal/config"
	"github.com/optimode/mailscreen/internal/export"
	"github.com/optimode/mailscreen/internal/logging"
)

const (
	exitOK        = 0
	exitRejected  = 1
	exitUsage     = 2
	exitCancelled = 130
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

type app struct {
	verifier *mailscreen.Verifier
	stdout   io.Writer
	stderr   io.Writer
	asJSON   bool
	copy     bool
	sink     export.Sink
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := pflag.NewFlagSet("mailscreen", pflag.ContinueOnError)
	fs.SetOutput(stderr)
	config.RegisterFlags(fs)
	asJSON := fs.Bool("json", false, "print results as JSON")
	copyReport := fs.Bool("copy", false, "copy the bulk report to the clipboard")
	envFile := fs.String("env-file", ".env", "file with MAILSCREEN_* variables, ignored when missing")
	fs.Usage = func() {
		_, _ = fmt.Fprintf(stderr, "usage: mailscreen verify <address> | mailscreen bulk [file|-]\n\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return exitOK
		}
		return exitUsage
	}

	cfg, err := config.Load(fs, *envFile)
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "mailscreen: %v\n", err)
		return exitUsage
	}

	ctx = logging.WithLogger(ctx, logging.New(logging.Config{
		Level:     cfg.Logging.Level,
		Output:    cfg.Logging.Output,
		FilePath:  cfg.Logging.FilePath,
		MaxSizeMB: cfg.Logging.MaxSizeMB,
		MaxFiles:  cfg.Logging.MaxFiles,
	}))

	a := &app{
		verifier: mailscreen.New().
			WithDNS(mailscreen.DNSOptions{
				Endpoint:  cfg.DNS.Endpoint,
				Format:    cfg.DNS.Format,
				Timeout:   cfg.DNS.Timeout,
				RateLimit: cfg.DNS.RateLimit,
			}).
			WithBulk(mailscreen.BulkOptions{Workers: cfg.Bulk.Workers}),
		stdout: stdout,
		stderr: stderr,
		asJSON: *asJSON,
		copy:   *copyReport,
		sink:   export.System,
	}

	switch fs.Arg(0) {
	case "verify":
		return a.verify(ctx, fs.Arg(1))
	case "bulk":
		return a.bulk(ctx, fs.Arg(1), stdin)
	}
	fs.Usage()
	return exitUsage
}

func (a *app) verify(ctx context.Context, address string) int {
	out, err := a.verifier.Verify(ctx, address)
	switch {
	case errors.Is(err, mailscreen.ErrMissingInput):
		_, _ = color.New(color.FgRed).Fprintln(a.stderr, "Please enter an email address.")
		return exitUsage
	case errors.Is(err, context.Canceled):
		return exitCancelled
	case err != nil:
		_, _ = fmt.Fprintf(a.stderr, "mailscreen: %v\n", err)
		return exitUsage
	}

	if a.asJSON {
		if err := writeJSON(a.stdout, out); err != nil {
			return exitUsage
		}
	} else {
		_, _ = outcomeColor(out).Fprintln(a.stdout, out.Text())
	}
	if !out.OK() {
		return exitRejected
	}
	return exitOK
}

func (a *app) bulk(ctx context.Context, source string, stdin io.Reader) int {
	text, err := readSource(source, stdin)
	if err != nil {
		_, _ = fmt.Fprintf(a.stderr, "mailscreen: %v\n", err)
		return exitUsage
	}

	report, err := a.verifier.VerifyAll(ctx, text)
	cancelled := errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
	switch {
	case errors.Is(err, mailscreen.ErrMissingInput):
		_, _ = color.New(color.FgRed).Fprintln(a.stderr, "Please paste some email addresses.")
		return exitUsage
	case err != nil && !cancelled:
		_, _ = fmt.Fprintf(a.stderr, "mailscreen: %v\n", err)
		return exitUsage
	}

	if a.asJSON {
		if err := writeJSON(a.stdout, report); err != nil {
			return exitUsage
		}
	} else {
		for _, e := range report.Entries {
			_, _ = outcomeColor(e.Outcome).Fprintf(a.stdout, "%s: %s\n", e.Email, e.Text())
		}
	}

	if a.copy && report.Copyable() {
		copied, err := export.Copy(ctx, a.sink, report.Render(), a.stdout)
		if err != nil {
			_, _ = fmt.Fprintf(a.stderr, "mailscreen: %v\n", err)
		} else if copied {
			_, _ = fmt.Fprintln(a.stderr, "Bulk verification results copied to clipboard!")
		}
	}

	if cancelled {
		_, _ = fmt.Fprintf(a.stderr, "mailscreen: cancelled after %d line(s)\n", report.Len())
		return exitCancelled
	}
	return exitOK
}

func readSource(source string, stdin io.Reader) (string, error) {
	if source == "" || source == "-" {
		b, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(b), nil
	}
	b, err := os.ReadFile(source)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", source, err)
	}
	return string(b), nil
}

func outcomeColor(o mailscreen.Outcome) *color.Color {
	if o.OK() {
		return color.New(color.FgGreen)
	}
	return color.New(color.FgRed)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
