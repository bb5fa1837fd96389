package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"ce2grammaire/internal/app"
	"ce2grammaire/internal/ui"

	"github.com/spf13/cobra"
)

type rootFlags struct {
	dataDir   string
	logPath   string
	logFormat string
	levels    string
	style     string
	ascii     bool
	ephemeral bool
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}
	root := &cobra.Command{
		Use:           "ce2",
		Short:         "Grammar and logic drills for CE2 pupils",
		Long:          "ce2 keeps a pupil's score, perfect streaks and badges between sessions and grades sentence labelling exercises.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	pf := root.PersistentFlags()
	pf.StringVar(&flags.dataDir, "data-dir", "", "directory holding the progress database (env CE2_DATA_DIR)")
	pf.StringVar(&flags.logPath, "log", "", "JSON log file path (env CE2_LOG_PATH)")
	pf.StringVar(&flags.logFormat, "log-format", "", "json or text (env CE2_LOG_FORMAT)")
	pf.StringVar(&flags.levels, "levels", "", "level catalog YAML, embedded catalog when empty (env CE2_LEVELS_PATH)")
	pf.StringVar(&flags.style, "style", "", "modern_arcade, cozy_clean or retro_terminal (env CE2_UI_STYLE)")
	pf.BoolVar(&flags.ascii, "ascii", false, "ASCII-only rendering (env CE2_UI_ASCII)")
	pf.BoolVar(&flags.ephemeral, "ephemeral", false, "keep progress in memory only (env CE2_EPHEMERAL)")

	root.AddCommand(
		newShowCmd(flags),
		newStartCmd(flags),
		newRecordCmd(flags),
		newCheckCmd(flags),
		newMathCmd(flags),
		newBadgesCmd(flags),
		newLevelsCmd(flags),
		newResetCmd(flags),
		newServeCmd(flags),
		newDemoCmd(flags),
	)
	return root
}

// loadConfig layers explicitly set flags over the environment.
func loadConfig(cmd *cobra.Command, flags *rootFlags) (app.Config, error) {
	cfg, err := app.LoadConfig()
	if err != nil {
		return app.Config{}, err
	}
	changed := cmd.Flags().Changed
	if changed("data-dir") {
		cfg.DataDir = flags.dataDir
	}
	if changed("log") {
		cfg.LogPath = flags.logPath
	}
	if changed("log-format") {
		cfg.LogFormat = flags.logFormat
	}
	if changed("levels") {
		cfg.LevelsPath = flags.levels
	}
	if changed("style") {
		cfg.UI.StyleVariant = flags.style
	}
	if changed("ascii") {
		cfg.UI.ASCIIOnly = flags.ascii
	}
	if changed("ephemeral") {
		cfg.Ephemeral = flags.ephemeral
	}
	return cfg, nil
}

func openApp(cmd *cobra.Command, flags *rootFlags) (*app.App, *ui.Renderer, error) {
	cfg, err := loadConfig(cmd, flags)
	if err != nil {
		return nil, nil, err
	}
	a, err := app.New(cfg)
	if err != nil {
		return nil, nil, err
	}
	cfg = a.Config()
	width := 0
	if f, ok := cmd.OutOrStdout().(*os.File); ok {
		width = ui.TerminalWidth(f)
	}
	r := ui.New(ui.Options{Variant: cfg.UI.StyleVariant, ASCII: cfg.UI.ASCIIOnly, Width: width})
	return a, r, nil
}
