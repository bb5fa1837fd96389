package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"ce2grammaire/internal/app"
	"ce2grammaire/internal/devtools"

	"charm.land/lipgloss/v2"
	"github.com/spf13/cobra"
)

func newShowCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show score, streaks and where you left off",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, r, err := openApp(cmd, flags)
			if err != nil {
				return err
			}
			defer a.Close()
			rec := a.Progress()
			label := ""
			if last := rec.LastLevelID(); last != "" {
				label = a.Catalog().LevelLabel(last)
			}
			out := cmd.OutOrStdout()
			lipgloss.Fprintln(out, r.Scoreboard(rec, label))
			lipgloss.Fprintln(out, r.Resume(a.Resume()))
			return nil
		},
	}
}

func newStartCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "start <level>",
		Short: "Start a level and remember it as the last one played",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, r, err := openApp(cmd, flags)
			if err != nil {
				return err
			}
			defer a.Close()
			info, err := a.StartLevel(args[0])
			if err != nil {
				return err
			}
			lipgloss.Fprintln(cmd.OutOrStdout(), r.Level(info))
			return nil
		},
	}
}

func newRecordCmd(flags *rootFlags) *cobra.Command {
	var req app.RecordRequest
	cmd := &cobra.Command{
		Use:   "record",
		Short: "Record the outcome of one exercise",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if req.Stars < 0 || req.Stars > 3 {
				return fmt.Errorf("stars must be between 0 and 3, got %d", req.Stars)
			}
			a, r, err := openApp(cmd, flags)
			if err != nil {
				return err
			}
			defer a.Close()
			out := a.RecordResult(req)
			w := cmd.OutOrStdout()
			lipgloss.Fprintln(w, r.Stars(req.Stars))
			if out.Announcement != "" {
				lipgloss.Fprintln(w, out.Announcement)
			}
			lipgloss.Fprintln(w, r.Scoreboard(out.Progress, ""))
			return nil
		},
	}
	cmd.Flags().StringVar(&req.ItemID, "item", "", "exercise item id")
	cmd.Flags().IntVar(&req.DeltaScore, "delta", 0, "points to add, may be negative")
	cmd.Flags().IntVar(&req.Stars, "stars", 0, "star rating 0..3, 3 is a perfect answer")
	cmd.Flags().StringVar(&req.Level, "level", "", "level the exercise belongs to")
	return cmd
}

func newCheckCmd(flags *rootFlags) *cobra.Command {
	var file string
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Grade a labelled sentence read as JSON from stdin or --file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var src io.Reader = cmd.InOrStdin()
			if file != "" {
				f, err := os.Open(file)
				if err != nil {
					return err
				}
				defer f.Close()
				src = f
			}
			var req app.CheckRequest
			if err := json.NewDecoder(src).Decode(&req); err != nil {
				return fmt.Errorf("decode check request: %w", err)
			}
			a, r, err := openApp(cmd, flags)
			if err != nil {
				return err
			}
			defer a.Close()
			out, err := a.Check(req)
			if err != nil {
				return err
			}
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(out)
			}
			lipgloss.Fprintln(cmd.OutOrStdout(), r.Check(out))
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "read the request from this file")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the raw outcome as JSON")
	return cmd
}

func newMathCmd(flags *rootFlags) *cobra.Command {
	var file string
	var hint bool
	cmd := &cobra.Command{
		Use:   "math",
		Short: "Grade math answers read as a JSON stream from stdin or --file",
		Long:  "Each request holds a level, a question and an answer. The session tally covers every request of one run.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var src io.Reader = cmd.InOrStdin()
			if file != "" {
				f, err := os.Open(file)
				if err != nil {
					return err
				}
				defer f.Close()
				src = f
			}
			a, r, err := openApp(cmd, flags)
			if err != nil {
				return err
			}
			defer a.Close()
			w := cmd.OutOrStdout()
			dec := json.NewDecoder(src)
			for {
				var req app.MathCheckRequest
				if err := dec.Decode(&req); err != nil {
					if errors.Is(err, io.EOF) {
						break
					}
					return fmt.Errorf("decode math request: %w", err)
				}
				if hint {
					h, err := a.MathHint(req)
					if err != nil {
						return err
					}
					if h != "" {
						fmt.Fprintln(w, "Indice : "+h)
					}
				}
				out, err := a.CheckMath(req)
				if err != nil {
					return err
				}
				lipgloss.Fprintln(w, r.MathCheck(out))
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "read the requests from this file")
	cmd.Flags().BoolVar(&hint, "hint", false, "show the hint before grading each question")
	return cmd
}

func newBadgesCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "badges",
		Short: "List badges and how to unlock them",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, r, err := openApp(cmd, flags)
			if err != nil {
				return err
			}
			defer a.Close()
			statuses := a.Badges()
			lipgloss.Fprintln(cmd.OutOrStdout(), r.Badges(statuses, app.BadgeHelp(statuses)))
			return nil
		},
	}
}

func newLevelsCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "levels",
		Short: "List grammar and math levels",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, _, err := openApp(cmd, flags)
			if err != nil {
				return err
			}
			defer a.Close()
			c := a.Catalog()
			w := cmd.OutOrStdout()
			for _, l := range c.GrammarLevels {
				fmt.Fprintf(w, "%-7s %-16s %s\n", l.LevelID, c.LevelLabel(l.LevelID), strings.Join(l.RequiredRoles, ", "))
			}
			for _, l := range c.MathLevels {
				fmt.Fprintf(w, "%-7s %s\n", l.LevelID, l.Title)
			}
			return nil
		},
	}
}

func newResetCmd(flags *rootFlags) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Erase all progress, badges included",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !yes {
				return errors.New("reset erases all progress; pass --yes to confirm")
			}
			a, _, err := openApp(cmd, flags)
			if err != nil {
				return err
			}
			defer a.Close()
			a.Reset()
			fmt.Fprintln(cmd.OutOrStdout(), "Progression remise à zéro.")
			return nil
		},
	}
	cmd.Flags().BoolVar(&yes, "yes", false, "confirm the reset")
	return cmd
}

func newServeCmd(flags *rootFlags) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the progress API to the browser front-end",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd, flags)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("addr") {
				cfg.HTTPAddr = addr
			}
			a, err := app.New(cfg)
			if err != nil {
				return err
			}
			defer a.Close()
			fmt.Fprintf(cmd.OutOrStdout(), "listening on http://%s\n", a.Config().HTTPAddr)
			return a.Serve(cmd.Context())
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (env CE2_HTTP_ADDR)")
	return cmd
}

func newDemoCmd(flags *rootFlags) *cobra.Command {
	m := devtools.NewManager()
	return &cobra.Command{
		Use:       "demo <scenario>",
		Short:     "Replace progress with a scripted scenario",
		Long:      "Scenarios: " + strings.Join(m.Names(), ", "),
		Args:      cobra.ExactArgs(1),
		ValidArgs: m.Names(),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, r, err := openApp(cmd, flags)
			if err != nil {
				return err
			}
			defer a.Close()
			sc := m.Resolve(args[0])
			out, err := m.Apply(a, sc)
			if err != nil {
				return err
			}
			if err := m.SetState(cmd.Context(), a.Config().DataDir, sc.Name, false); err != nil {
				return err
			}
			label := ""
			if sc.LastLevel != "" {
				label = a.Catalog().LevelLabel(sc.LastLevel)
			}
			lipgloss.Fprintln(cmd.OutOrStdout(), r.Scoreboard(out.Progress, label))
			return nil
		},
	}
}
