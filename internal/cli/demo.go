package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/roach88/calltrace/internal/adapter"
	"github.com/roach88/calltrace/internal/config"
	"github.com/roach88/calltrace/internal/store"
	"github.com/roach88/calltrace/internal/tracer"
)

// DemoOptions holds flags for the demo command.
type DemoOptions struct {
	*RootOptions
	Database string
	Config   string
}

// NewDemoCommand creates the demo command.
func NewDemoCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &DemoOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Run an instrumented workload and print the ledger",
		Long: `Run a small save/delete/fetch workload against a SQLite entity store
with the call-stack adapters wired in, then print the resulting ledger.

The workload touches the store from a few distinct call sites, repeats
one of them, and performs one save under a scoped tracking suspension,
so the output shows deduplication, the duplicate counter, and the gate
all doing their jobs.

Examples:
  calltrace demo
  calltrace demo --db ./demo.db --format json
  calltrace demo --config calltrace.yaml --verbose`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDemo(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", ":memory:", "path to SQLite database")
	cmd.Flags().StringVar(&opts.Config, "config", "", "path to config file (optional)")

	return cmd
}

func runDemo(opts *DemoOptions, cmd *cobra.Command) error {
	ctx := context.Background()
	out := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}

	tracerOpts := []tracer.Option{tracer.WithLogger(slog.Default())}
	if opts.Config != "" {
		cfg, err := config.Load(opts.Config)
		if err != nil {
			_ = out.Error(ErrCodeConfig, err.Error())
			return WrapExitError(ExitFailure, "config validation failed", err)
		}
		f, err := cfg.Filter()
		if err != nil {
			_ = out.Error(ErrCodeConfig, err.Error())
			return WrapExitError(ExitFailure, "config validation failed", err)
		}
		tracerOpts = append(tracerOpts,
			tracer.WithFilter(f),
			tracer.WithTracking(cfg.TrackingEnabled()),
		)
	}
	tr := tracer.New(tracerOpts...)

	slog.Info("opening entity store", "path", opts.Database)
	st, err := store.Open(opts.Database)
	if err != nil {
		_ = out.Error(ErrCodeDatabase, err.Error())
		return WrapExitError(ExitCommandError, "failed to open store", err)
	}
	defer func() {
		if closeErr := st.Close(); closeErr != nil {
			slog.Error("error closing store", "error", closeErr)
		}
	}()

	persist := adapter.WrapPersister[store.Record](tr, st)
	query := adapter.WrapQuerier[store.Record](tr, st)

	if err := demoWorkload(ctx, tr, persist, query); err != nil {
		_ = out.Error(ErrCodeDatabase, err.Error())
		return WrapExitError(ExitCommandError, "demo workload failed", err)
	}

	report := tr.Snapshot()
	if opts.Format == "json" {
		return out.JSON(report)
	}
	report.WriteText(cmd.OutOrStdout())
	return nil
}

// demoWorkload drives the instrumented store from distinct call sites.
// ingest and archive are separate functions on purpose: each is its own
// call site and should land as its own ledger entry, while the repeated
// ingest call should not.
func demoWorkload(ctx context.Context, tr *tracer.Tracer, persist *adapter.Persistence[store.Record], query *adapter.Query[store.Record]) error {
	notes := []store.Record{
		{ID: "r-1", Kind: "note", Body: "first"},
		{ID: "r-2", Kind: "note", Body: "second"},
	}
	for _, r := range notes {
		// Same call site both times; the second capture is a duplicate.
		if err := ingest(ctx, persist, r); err != nil {
			return err
		}
	}
	if err := archive(ctx, persist, store.Record{ID: "r-3", Kind: "archive", Body: "third"}); err != nil {
		return err
	}

	// Known-boring housekeeping path: suspend tracking around it.
	if err := tr.WithTrackingSuspended(func() error {
		return persist.Save(ctx, store.Record{ID: "r-housekeeping", Kind: "internal", Body: ""})
	}); err != nil {
		return err
	}

	records, err := query.FetchAll(ctx)
	if err != nil {
		return err
	}
	slog.Info("fetched records", "count", len(records))

	return persist.Delete(ctx, store.Record{ID: "r-3"})
}

func ingest(ctx context.Context, persist *adapter.Persistence[store.Record], r store.Record) error {
	if err := persist.Save(ctx, r); err != nil {
		return fmt.Errorf("ingest %s: %w", r.ID, err)
	}
	return nil
}

func archive(ctx context.Context, persist *adapter.Persistence[store.Record], r store.Record) error {
	if err := persist.Save(ctx, r); err != nil {
		return fmt.Errorf("archive %s: %w", r.ID, err)
	}
	return nil
}
