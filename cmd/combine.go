package cmd

import (
	"fmt"
	"os"

	"csvcombine/pkg/combine"
	"csvcombine/pkg/config"
	"csvcombine/pkg/logging"
	"csvcombine/pkg/version"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// globalIgnoreEnv names a global ignore file when neither a flag nor the
// config file provides one.
const globalIgnoreEnv = "COMBINEIGNORE_GLOBAL"

type combineOptions struct {
	configPath   string
	extension    string
	xlsx         bool
	debug        bool
	globalIgnore string
}

func (o *combineOptions) bindFlags(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringVar(&o.configPath, "config", "", "Path to a YAML config file (default: ./"+config.FileName+" if present)")
	flags.StringVarP(&o.extension, "ext", "e", combine.DefaultExtension, "File extension to combine, without the dot (case-sensitive)")
	flags.BoolVar(&o.xlsx, "xlsx", false, "Also write the combined rows to <directory>-combined.xlsx")
	flags.BoolVar(&o.debug, "debug", false, "Enable debug logging")
	flags.StringVar(&o.globalIgnore, "global-ignore", "", "Path to a global ignore file (default: $"+globalIgnoreEnv+")")
}

// resolveConfig merges the config file and the flags given on the command line.
func (o *combineOptions) resolveConfig(cmd *cobra.Command, root string) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if o.configPath != "" {
		if _, statErr := os.Stat(o.configPath); statErr != nil {
			return nil, fmt.Errorf("config file %s: %w", o.configPath, statErr)
		}
		cfg, err = config.LoadConfig(o.configPath)
	} else {
		cfg, err = config.LoadConfigFromDir(root)
	}
	if err != nil {
		return nil, err
	}

	var (
		ext, globalIgnore *string
		xlsx, debug       *bool
	)
	flags := cmd.Flags()
	if flags.Changed("ext") {
		ext = &o.extension
	}
	if flags.Changed("xlsx") {
		xlsx = &o.xlsx
	}
	if flags.Changed("debug") {
		debug = &o.debug
	}
	if flags.Changed("global-ignore") {
		globalIgnore = &o.globalIgnore
	}
	cfg.MergeWithFlags(ext, xlsx, debug, globalIgnore)

	if cfg.GlobalIgnore == "" {
		cfg.GlobalIgnore = os.Getenv(globalIgnoreEnv)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// runCombine combines the working directory and prints a summary.
func runCombine(cmd *cobra.Command, opts *combineOptions, logger *zap.Logger) error {
	if logger == nil {
		logger = zap.NewNop()
	}

	root, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to resolve working directory: %w", err)
	}

	cfg, err := opts.resolveConfig(cmd, root)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	if cfg.Debug {
		if err := logging.Setup(true, version.AppName, version.Version); err != nil {
			logger.Warn("Failed to enable debug logging", zap.Error(err))
		} else {
			logger = logging.Logger
		}
	}

	result, err := combine.Execute(combine.Arguments{
		Root:             root,
		Extension:        cfg.Extension,
		GlobalIgnoreFile: cfg.GlobalIgnore,
		XLSX:             cfg.XLSX,
	}, logger)
	if err != nil {
		return err
	}

	printSummary(cmd, result)
	return nil
}

func printSummary(cmd *cobra.Command, result *combine.Result) {
	out := cmd.OutOrStdout()
	green := color.New(color.FgGreen)
	yellow := color.New(color.FgYellow)

	green.Fprintf(out, "Combined CSV file created at: %s\n", result.OutputPath)
	if result.XLSXPath != "" {
		green.Fprintf(out, "Combined workbook created at: %s\n", result.XLSXPath)
	}
	fmt.Fprintf(out, "%d files, %d rows\n", len(result.Files), result.Rows)
	if result.Skipped > 0 {
		yellow.Fprintf(out, "Skipped %d malformed record(s); see log for details\n", result.Skipped)
	}
}
