// Package navigate opens reference URLs in the user's browser.
package navigate

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"runtime"
	"strings"

	"github.com/npratt/refgraph/internal/config"
)

// ErrUnsupportedURL is returned for URLs that are not http or https.
var ErrUnsupportedURL = errors.New("unsupported url")

// Opener launches the platform URL handler, or a configured command.
type Opener struct {
	runner CommandRunner
	cfg    config.BrowserConfig
	goos   string
	logger *slog.Logger
}

// Option configures an Opener.
type Option func(*Opener)

// WithRunner sets the command runner.
func WithRunner(r CommandRunner) Option {
	return func(o *Opener) {
		o.runner = r
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *Opener) {
		o.logger = l
	}
}

// WithGOOS overrides the platform used to pick the opener command.
func WithGOOS(goos string) Option {
	return func(o *Opener) {
		o.goos = goos
	}
}

// New creates an Opener for cfg.
func New(cfg config.BrowserConfig, opts ...Option) *Opener {
	o := &Opener{
		runner: NewExecRunner(),
		cfg:    cfg,
		goos:   runtime.GOOS,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Open opens rawURL. An empty URL does nothing. With the browser disabled
// the URL is only logged.
func (o *Opener) Open(ctx context.Context, rawURL string) error {
	if rawURL == "" {
		return nil
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("parse %q: %w", rawURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%w: %s", ErrUnsupportedURL, rawURL)
	}

	if !o.cfg.Enabled {
		o.logger.Info("browser disabled, not opening", "url", rawURL)
		return nil
	}

	name, args := o.Command(rawURL)
	out, err := o.runner.Run(ctx, name, args...)
	if err != nil {
		if msg := strings.TrimSpace(string(out)); msg != "" {
			return fmt.Errorf("open %s with %s: %w: %s", rawURL, name, err, msg)
		}
		return fmt.Errorf("open %s with %s: %w", rawURL, name, err)
	}
	o.logger.Debug("opened url", "url", rawURL, "command", name)
	return nil
}

// Command returns the program and arguments used to open rawURL. A
// configured command is split on whitespace and the URL appended.
func (o *Opener) Command(rawURL string) (string, []string) {
	if fields := strings.Fields(o.cfg.Command); len(fields) > 0 {
		return fields[0], append(fields[1:], rawURL)
	}
	switch o.goos {
	case "darwin":
		return "open", []string{rawURL}
	case "windows":
		return "rundll32", []string{"url.dll,FileProtocolHandler", rawURL}
	default:
		return "xdg-open", []string{rawURL}
	}
}
