// Package cli implements the bugport command tree.
package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ALT-F4-LLC/bugport/internal/config"
	"github.com/ALT-F4-LLC/bugport/internal/convert"
	"github.com/ALT-F4-LLC/bugport/internal/lookup"
	"github.com/ALT-F4-LLC/bugport/internal/output"
)

var (
	version   = "dev"
	commit    = "none"
	buildDate = "unknown"
)

type contextKey string

const cfgKey contextKey = "cfg"

// CmdError wraps an error with a machine-readable error code for structured
// output. Data, when set, is attached to the JSON error envelope.
type CmdError struct {
	Err  error
	Code output.ErrorCode
	Data any
}

func (e *CmdError) Error() string { return e.Err.Error() }

func (e *CmdError) Unwrap() error { return e.Err }

func cmdErr(err error, code output.ErrorCode) *CmdError {
	return &CmdError{Err: err, Code: code}
}

var rootCmd = &cobra.Command{
	Use:     "bugport",
	Short:   "Convert Mantis XML exports into Bitbucket issue import archives",
	Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, buildDate),
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if _, ok := cmd.Annotations["skipConfig"]; ok {
			return nil
		}

		configPath, _ := cmd.Flags().GetString("config")
		cfg, err := config.Resolve(configPath)
		if err != nil {
			return err
		}
		if cfg.Path != "" {
			getWriter(cmd).Debug("Using config %s", cfg.Path)
		}

		cmd.SetContext(context.WithValue(cmd.Context(), cfgKey, cfg))
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().Bool("json", false, "Output in JSON format")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "Suppress non-essential output")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Print per-issue progress")
	rootCmd.PersistentFlags().String("config", "", "Path to a YAML config file (default $"+config.EnvVar+")")
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true
}

func getWriter(cmd *cobra.Command) *output.Writer {
	jsonMode, _ := cmd.Flags().GetBool("json")
	quietMode, _ := cmd.Flags().GetBool("quiet")
	verboseMode, _ := cmd.Flags().GetBool("verbose")
	return output.New(jsonMode, quietMode, verboseMode)
}

func getCfg(cmd *cobra.Command) *config.Config {
	cfg, _ := cmd.Context().Value(cfgKey).(*config.Config)
	if cfg == nil {
		return &config.Config{}
	}
	return cfg
}

// errorCode classifies an error returned by a command.
func errorCode(err error) output.ErrorCode {
	var (
		ce *CmdError
		fe *lookup.FileError
		ue *convert.UnknownEnumValueError
		te *convert.TimestampError
		re *convert.RecordError
		ne *convert.NoteError
	)
	switch {
	case errors.As(err, &ce):
		return ce.Code
	case errors.As(err, &fe):
		return output.ErrConfig
	case errors.As(err, &ue), errors.As(err, &te), errors.As(err, &re), errors.As(err, &ne):
		return output.ErrValidation
	default:
		return output.ErrGeneral
	}
}

// Execute runs the root command and returns an exit code.
func Execute() int {
	if err := rootCmd.Execute(); err != nil {
		jsonMode, _ := rootCmd.PersistentFlags().GetBool("json")
		quietMode, _ := rootCmd.PersistentFlags().GetBool("quiet")
		w := output.New(jsonMode, quietMode, false)

		var ce *CmdError
		if errors.As(err, &ce) {
			return w.ErrorWithData(ce.Err, ce.Code, ce.Data)
		}
		return w.Error(err, errorCode(err))
	}
	return output.ExitSuccess
}
