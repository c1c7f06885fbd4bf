package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/motoko-tools/ttlex/application/config"
	"github.com/motoko-tools/ttlex/application/schema"
	ttlexlog "github.com/motoko-tools/ttlex/log"
)

// app holds what every subcommand shares once flags are parsed.
type app struct {
	cfg    *config.Config
	logger *slog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "ttlex",
		Short:         "Motoko token-tree lexer",
		Long:          `ttlex builds token trees, finds comments and classifies keywords in Motoko source.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}

	flags := root.PersistentFlags()
	flags.String("config", "", "config file (default: ttlex.yaml, ttlex.toml or ttlex.json in the working directory)")
	flags.String("format", "json", "output format (json|msgpack|cbor|text)")
	flags.String("wasm", "", "run the lexer from this guest binary instead of in process")
	flags.Bool("preprocess", false, "expand tabs, trim trailing spaces and strip invisible characters first")
	flags.Int("tab-width", 2, "spaces per tab when preprocessing")
	flags.Int("jobs", 0, "files processed concurrently (0: number of CPUs)")
	flags.String("log-level", "warn", "log level (debug|info|warn|error)")
	flags.Bool("no-color", false, "disable colored text output")
	flags.Bool("validate", false, "check every response against the JSON Schema")

	root.AddCommand(
		newTokensCmd(a),
		newCommentsCmd(a),
		newKeywordCmd(a),
		newSchemaCmd(),
	)
	return root
}

func (a *app) setup(cmd *cobra.Command) error {
	flags := cmd.Flags()

	path, _ := flags.GetString("config")
	if path == "" {
		path = config.Find(".")
	}
	cfg := config.Default()
	if path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return err
		}
		cfg = loaded
	}

	if flags.Changed("format") {
		cfg.Format, _ = flags.GetString("format")
	}
	if flags.Changed("wasm") {
		cfg.Wasm, _ = flags.GetString("wasm")
	}
	if flags.Changed("preprocess") {
		cfg.Preprocess.Enabled, _ = flags.GetBool("preprocess")
	}
	if flags.Changed("tab-width") {
		width, _ := flags.GetInt("tab-width")
		cfg.Preprocess.TabWidth = &width
	}
	if flags.Changed("jobs") {
		cfg.Jobs, _ = flags.GetInt("jobs")
	}
	if flags.Changed("log-level") {
		cfg.LogLevel, _ = flags.GetString("log-level")
	}
	if flags.Changed("validate") {
		cfg.Validate, _ = flags.GetBool("validate")
	}
	if noColor, _ := flags.GetBool("no-color"); noColor {
		off := false
		cfg.Color = &off
	}
	if err := config.Validate(cfg); err != nil {
		return err
	}

	a.cfg = cfg
	a.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
		Level: ttlexlog.ParseLevel(cfg.LogLevel),
	}))
	slog.SetDefault(a.logger)

	color.NoColor = !useColor(cfg.Color, cmd.OutOrStdout())
	a.logger.Debug("configuration loaded", "file", path, "format", cfg.Format, "wasm", cfg.Wasm)
	return nil
}

// useColor honours an explicit setting, otherwise colors only terminals.
func useColor(setting *bool, out any) bool {
	if setting != nil {
		return *setting
	}
	f, ok := out.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func newSchemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Print the JSON Schema of every response",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			doc, err := schema.MarshalDocument()
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(doc))
			return err
		},
	}
}
