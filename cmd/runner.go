package main

import (
	"bufio"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/desertthunder/cioprune/internal/services"
	"github.com/desertthunder/cioprune/internal/shared"
	"github.com/desertthunder/cioprune/internal/tasks"
)

// Console styles for summary output
var (
	okStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#04B575")).Bold(true)
	errStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF0000")).Bold(true)
	warnStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFA500"))
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config     *shared.Config
	deleter    services.Deleter
	engine     *tasks.PurgeEngine
	httpClient *http.Client
	logger     *log.Logger
	output     io.Writer
	input      *bufio.Reader
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config     *shared.Config
	Deleter    services.Deleter
	HTTPClient *http.Client
	Logger     *log.Logger
	Output     io.Writer
	Input      io.Reader
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.Input == nil {
		opts.Input = os.Stdin
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = http.DefaultClient
	}

	return &Runner{
		config:     opts.Config,
		deleter:    opts.Deleter,
		engine:     tasks.NewPurgeEngine(opts.Deleter),
		httpClient: opts.HTTPClient,
		logger:     opts.Logger,
		output:     opts.Output,
		input:      bufio.NewReader(opts.Input),
	}
}

// ensureDeleter builds the customer.io client from the environment when no
// deleter was injected. Missing credentials are fatal before any API traffic.
func (r *Runner) ensureDeleter(region string) error {
	if r.deleter != nil {
		return nil
	}

	creds, err := shared.LoadCredentials()
	if err != nil {
		return err
	}

	client, err := services.NewCustomerIO(services.CustomerIOOpts{
		Credentials: creds,
		Region:      region,
		HTTPClient:  r.httpClient,
	})
	if err != nil {
		return err
	}

	r.deleter = client
	r.engine = tasks.NewPurgeEngine(client)
	return nil
}

// confirm prompts for an exact literal response and reports whether it was given.
//
// Lowercase literals are matched case-insensitively ("YES" passes for "yes");
// uppercase literals like "DELETE" must be typed exactly. EOF counts as a
// decline so a closed stdin never proceeds with a purge.
func (r *Runner) confirm(prompt, literal string) bool {
	r.writePlain("%s", prompt)

	line, err := r.input.ReadString('\n')
	if err != nil && line == "" {
		return false
	}

	answer := strings.TrimSpace(line)
	if literal == strings.ToLower(literal) {
		answer = strings.ToLower(answer)
	}
	return answer == literal
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainHeader(title string) {
	r.writePlain("═══════════════════════════════════════\n")
	r.writePlain("%v\n", title)
	r.writePlain("═══════════════════════════════════════\n")
}
