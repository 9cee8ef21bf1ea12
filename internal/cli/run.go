package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"golang.org/x/term"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/macropower/namify/pkg/browse"
	"github.com/macropower/namify/pkg/catalog"
	"github.com/macropower/namify/pkg/config"
	"github.com/macropower/namify/pkg/log"
	"github.com/macropower/namify/pkg/search"
	"github.com/macropower/namify/pkg/telemetry"
	"github.com/macropower/namify/pkg/ui"
	"github.com/macropower/namify/pkg/ui/theme"
	"github.com/macropower/namify/pkg/yaml"
)

const (
	cmdExamples = `  # Browse the catalog:
  namify

  # Start on page 3 in the table view:
  namify --page 3 --view table

  # Use another catalog and reload the UI settings when the config changes:
  namify --base-url http://localhost:8080/api/people --watch

  # Print page 2 filtered by name (disables the TUI):
  namify --page 2 --search sky | cat

  # Print the active configuration:
  namify --show-config`

	shutdownTimeout = 5 * time.Second
)

var ErrInvalidFlag = errors.New("invalid flag")

type RunArgs struct {
	*RootArgs

	ConfigPath    string
	BaseURL       string
	View          string
	Search        string
	TraceEndpoint string
	Timeout       time.Duration
	Debounce      time.Duration
	Page          int
	TraceInsecure bool
	Watch         bool
	WriteConfig   bool
	ShowConfig    bool
}

func NewRunArgs(rootArgs *RootArgs) *RunArgs {
	return &RunArgs{
		RootArgs: rootArgs,
	}
}

func (ra *RunArgs) AddFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVar(&ra.ConfigPath, "config", "", "Path to the namify configuration file")
	f.StringVar(&ra.BaseURL, "base-url", catalog.DefaultBaseURL, "Catalog collection URL")
	f.DurationVar(&ra.Timeout, "timeout", catalog.DefaultTimeout, "Timeout for each catalog request")
	f.DurationVar(&ra.Debounce, "debounce", browse.DefaultDebounce, "Delay between typing and refetching")
	f.IntVarP(&ra.Page, "page", "p", 1, "Page to open")
	f.StringVar(&ra.View, "view", string(ui.ViewCards), fmt.Sprintf("Results layout, one of: %s", ui.ViewModes))
	f.StringVarP(&ra.Search, "search", "s", "", "Filter printed results by name (non-interactive output only)")
	f.BoolVarP(&ra.Watch, "watch", "w", false, "Apply UI changes from the config file while running")
	f.BoolVar(&ra.WriteConfig, "write-config", false, "Write the default configuration files and exit")
	f.BoolVar(&ra.ShowConfig, "show-config", false, "Print the active configuration and exit")
	f.StringVar(&ra.TraceEndpoint, "trace-endpoint", "", "OTLP/gRPC endpoint to export traces to")
	f.BoolVar(&ra.TraceInsecure, "trace-insecure", false, "Disable TLS for the trace endpoint")

	must(cmd.MarkFlagFilename("config", "yaml", "yml"))

	views := make([]string, 0, len(ui.ViewModes))
	for _, v := range ui.ViewModes {
		views = append(views, string(v))
	}

	must(cmd.RegisterFlagCompletionFunc("view",
		cobra.FixedCompletions(views, cobra.ShellCompDirectiveNoFileComp),
	))
}

func NewRunCmd(ra *RunArgs) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "run",
		Short:   "Default command, can be used explicitly",
		Example: cmdExamples,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, ra)
		},
	}
	ra.AddFlags(cmd)

	bindEnvVars(cmd)

	return cmd
}

// applyFlags overrides cfg with every flag set on the command line or
// through the environment.
func (ra *RunArgs) applyFlags(fs *pflag.FlagSet, cfg *config.Config) error {
	if ra.Page < 1 {
		return fmt.Errorf("%w: --page must be at least 1", ErrInvalidFlag)
	}

	if fs.Changed("base-url") {
		cfg.Catalog.BaseURL = ra.BaseURL
	}
	if fs.Changed("timeout") {
		cfg.Catalog.Timeout = &config.Duration{Duration: ra.Timeout}
	}
	if fs.Changed("debounce") {
		cfg.Search.Debounce = &config.Duration{Duration: ra.Debounce}
	}
	if fs.Changed("view") {
		if !slices.Contains(ui.ViewModes, ui.ViewMode(ra.View)) {
			return fmt.Errorf("%w: --view must be one of %s", ErrInvalidFlag, ui.ViewModes)
		}

		cfg.UI.View = ui.ViewMode(ra.View)
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidFlag, err)
	}

	return nil
}

func (ra *RunArgs) configPath() string {
	if ra.ConfigPath != "" {
		return ra.ConfigPath
	}

	return config.GetPath()
}

func run(cmd *cobra.Command, ra *RunArgs) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	configPath := ra.configPath()

	if ra.WriteConfig {
		return writeConfig(cmd.OutOrStdout(), configPath)
	}

	cfg, err := config.LoadOrDefault(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if err := ra.applyFlags(cmd.Flags(), cfg); err != nil {
		return err
	}

	if ra.ShowConfig {
		slog.Info("active configuration", slog.String("path", configPath))

		return showConfig(cmd.OutOrStdout(), cfg)
	}

	var telemetryOpts []telemetry.Opt
	if ra.TraceInsecure {
		telemetryOpts = append(telemetryOpts, telemetry.WithInsecure())
	}

	tp, err := telemetry.Setup(ctx, ra.TraceEndpoint, telemetryOpts...)
	if err != nil {
		return fmt.Errorf("setup tracing: %w", err)
	}

	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer cancel()

		if err := tp.Shutdown(shutdownCtx); err != nil {
			slog.Error("shutdown tracing", slog.Any("err", err))
		}
	}()

	clientOpts := cfg.ClientOptions()
	if tp.Enabled() {
		clientOpts = append(clientOpts, catalog.WithTracerProvider(tp.TracerProvider()))
	}

	client, err := catalog.NewClient(cfg.Catalog.BaseURL, clientOpts...)
	if err != nil {
		return fmt.Errorf("create catalog client: %w", err)
	}

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return printPage(ctx, cmd.OutOrStdout(), client, ra.Page, ra.Search)
	}

	logBuf := log.NewRing(log.DefaultRingSize)

	handler, err := log.NewHandler(logBuf, ra.LogLevel, ra.LogFormat)
	if err != nil {
		return fmt.Errorf("create log handler: %w", err)
	}

	slog.SetDefault(slog.New(handler))

	err = runUI(ctx, cfg, client, ra, configPath)

	flushLogs(cmd.ErrOrStderr(), logBuf)

	if err != nil {
		return fmt.Errorf("ui program failure: %w", err)
	}

	return nil
}

// runUI runs the terminal UI until the user quits.
func runUI(ctx context.Context, cfg *config.Config, client *catalog.Client, ra *RunArgs, configPath string) error {
	coord := browse.New(ctx, client, append(cfg.BrowseOptions(), browse.WithStartPage(ra.Page))...)
	defer coord.Close()

	p := ui.NewProgram(cfg.UI, coord)

	if ra.Watch {
		stop, err := watchConfig(ctx, configPath, p.Send)
		if err != nil {
			slog.Warn("config watch disabled", slog.Any("err", err))
		} else {
			defer stop()
		}
	}

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tea: %w", err)
	}

	return nil
}

// watchConfig forwards the ui section of every valid reload of the config
// file to send. Invalid reloads are logged and ignored.
func watchConfig(ctx context.Context, path string, send func(tea.Msg)) (func(), error) {
	w, err := config.NewWatcher(path)
	if err != nil {
		return nil, fmt.Errorf("watch config: %w", err)
	}

	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})

	go func() {
		defer close(done)

		w.Run(ctx, func(c *config.Config, err error) {
			if err != nil {
				slog.Error("reload config", slog.Any("err", err))

				return
			}

			slog.Info("applying config", slog.String("path", path))
			send(ui.ApplyConfigMsg{Config: c.UI})
		})
	}()

	return func() {
		cancel()
		<-done

		if err := w.Close(); err != nil {
			slog.Error("close config watcher", slog.Any("err", err))
		}
	}, nil
}

func writeConfig(w io.Writer, path string) error {
	if err := config.New().Write(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}

	schemaPath, err := config.WriteSchema(path)
	if err != nil {
		return fmt.Errorf("write schema: %w", err)
	}

	mustN(fmt.Fprintln(w, path))
	mustN(fmt.Fprintln(w, schemaPath))

	return nil
}

func showConfig(w io.Writer, cfg *config.Config) error {
	b, err := cfg.Encode()
	if err != nil {
		return err
	}

	if f, ok := w.(*os.File); !ok || !term.IsTerminal(int(f.Fd())) {
		mustN(w.Write(b))

		return nil
	}

	pretty, err := yaml.Highlight(b, theme.New(cfg.UI.Theme).Name)
	if err != nil {
		mustN(w.Write(b))

		return fmt.Errorf("highlight config: %w", err)
	}

	mustN(fmt.Fprint(w, pretty))

	return nil
}

// printPage writes one page of results as a plain table.
func printPage(ctx context.Context, w io.Writer, f catalog.Fetcher, page int, query string) error {
	p, err := f.FetchPage(ctx, page)
	if err != nil {
		return err //nolint:wrapcheck // Already a descriptive FetchError.
	}

	if total := p.TotalPages(); page > total {
		return &catalog.FetchError{
			Page: page,
			Err:  fmt.Errorf("%w: %d of %d", catalog.ErrPageOutOfRange, page, total),
		}
	}

	items := search.Filter(p.Items, query)

	rows := make([][]string, 0, len(items))
	for _, it := range items {
		rows = append(rows, []string{
			it.Name,
			it.HairColor,
			it.SkinColor,
			it.Gender,
			it.BirthYear,
			strconv.Itoa(it.VehicleCount()),
		})
	}

	t := table.New().
		Border(lipgloss.MarkdownBorder()).
		BorderTop(false).
		BorderBottom(false).
		Headers("NAME", "HAIR COLOR", "SKIN COLOR", "GENDER", "BIRTH YEAR", "VEHICLES").
		Rows(rows...)

	mustN(fmt.Fprintln(w, t.String()))
	mustN(fmt.Fprintf(w, "\npage %d of %d, %d of %d people shown\n",
		page, p.TotalPages(), len(items), p.TotalCount))

	return nil
}

func flushLogs(w io.Writer, buf *log.Ring) {
	slog.Debug("flush logs to console",
		slog.Int("count", buf.Len()),
		slog.Int("max", buf.Cap()),
	)

	if _, err := buf.WriteTo(w); err != nil {
		panic(err)
	}
}
