package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/calltrace/internal/config"
	"github.com/roach88/calltrace/internal/filter"
)

// PatternsOptions holds flags for the patterns command.
type PatternsOptions struct {
	*RootOptions
	Config string
}

// PatternsResult lists the effective exclusion patterns.
type PatternsResult struct {
	Patterns []string `json:"patterns"`
}

// NewPatternsCommand creates the patterns command.
func NewPatternsCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &PatternsOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "patterns",
		Short: "List the effective frame-exclusion patterns",
		Long: `List the effective frame-exclusion patterns, in evaluation order.

Without --config, shows the built-in set. With --config, shows the
built-in set plus the configured extras.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPatterns(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Config, "config", "", "path to config file (optional)")

	return cmd
}

func runPatterns(opts *PatternsOptions, cmd *cobra.Command) error {
	out := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}

	f := filter.Default()
	if opts.Config != "" {
		cfg, err := config.Load(opts.Config)
		if err != nil {
			_ = out.Error(ErrCodeConfig, err.Error())
			return WrapExitError(ExitFailure, "config validation failed", err)
		}
		f, err = cfg.Filter()
		if err != nil {
			_ = out.Error(ErrCodeConfig, err.Error())
			return WrapExitError(ExitFailure, "config validation failed", err)
		}
	}

	patterns := f.Patterns()
	if opts.Format == "json" {
		return out.JSON(PatternsResult{Patterns: patterns})
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "Exclusion patterns (%d):\n", len(patterns))
	for _, p := range patterns {
		fmt.Fprintf(w, "  %s\n", p)
	}
	return nil
}
