package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/calltrace/internal/config"
)

// ValidateOptions holds flags for the validate command.
type ValidateOptions struct {
	*RootOptions
	Config string
}

// ValidateResult is the payload for a successful validation.
type ValidateResult struct {
	Config   string `json:"config"`
	Patterns int    `json:"patterns"`
	Tracking bool   `json:"tracking"`
	LogLevel string `json:"log_level"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ValidateOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate a tracer config file",
		Long: `Validate a tracer config file.

Checks the YAML against the embedded CUE schema, then compiles the
configured exclusion patterns so bad regular expressions fail here
rather than at capture time.

Examples:
  calltrace validate --config calltrace.yaml
  calltrace validate --config calltrace.yaml --format json`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Config, "config", "", "path to config file (required)")
	_ = cmd.MarkFlagRequired("config")

	return cmd
}

func runValidate(opts *ValidateOptions, cmd *cobra.Command) error {
	out := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}

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

	level := cfg.LogLevel
	if level == "" {
		level = "info"
	}
	result := ValidateResult{
		Config:   opts.Config,
		Patterns: len(f.Patterns()),
		Tracking: cfg.TrackingEnabled(),
		LogLevel: level,
	}

	if opts.Format == "json" {
		return out.JSON(result)
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "Config OK: %s\n", result.Config)
	fmt.Fprintf(w, "  Patterns: %d\n", result.Patterns)
	fmt.Fprintf(w, "  Tracking: %v\n", result.Tracking)
	fmt.Fprintf(w, "  LogLevel: %s\n", result.LogLevel)
	return nil
}
