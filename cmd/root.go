package cmd

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/classlens/classlens/internal/app"
	"github.com/classlens/classlens/internal/catalog"
	"github.com/classlens/classlens/internal/chat"
	"github.com/classlens/classlens/internal/config"
	"github.com/classlens/classlens/internal/logging"
	"github.com/classlens/classlens/internal/session"
)

var (
	v   = config.New()
	cfg *config.Config

	closeLog = func() error { return nil }
)

var rootCmd = &cobra.Command{
	Use:           "classlens",
	Short:         "Classroom analytics for biology teachers",
	Long:          "ClassLens is a terminal dashboard of engagement, queries, grades, reading and note-taking for a biology class.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return closeLog()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := newSession()
		if err != nil {
			return err
		}
		return app.Run(sess)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Assigned here rather than in the literal: the hook compares against
	// rootCmd, which would otherwise be an initialization cycle.
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		// The TUI owns stdout; subcommands log to stderr.
		var fallback io.Writer = os.Stderr
		if cmd == rootCmd {
			fallback = io.Discard
		}
		return setup(cmd, fallback)
	}

	flags := rootCmd.PersistentFlags()
	flags.Int64("seed", 0, "Seed for the generated datasets (0 picks one from the clock)")
	flags.String("catalog", "", "Path to a catalog YAML file that replaces the built-in one")
	flags.String("log-level", "info", "Log level: trace, debug, info, warn, error")
	flags.String("log-file", "", "Append logs to this file")
	flags.String("env-file", ".env", "Optional dotenv file with CLASSLENS_* settings")

	for key, flag := range map[string]string{
		"seed":         "seed",
		"catalog.path": "catalog",
		"log.level":    "log-level",
		"log.file":     "log-file",
	} {
		if err := v.BindPFlag(key, flags.Lookup(flag)); err != nil {
			panic(fmt.Sprintf("bind flag %s: %v", flag, err))
		}
	}

	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(catalogCmd)
	rootCmd.AddCommand(versionCmd)
}

// setup loads the dotenv file and the configuration, then starts logging.
func setup(cmd *cobra.Command, fallback io.Writer) error {
	envFile, _ := cmd.Flags().GetString("env-file")
	if err := config.LoadDotEnv(envFile); err != nil {
		return err
	}
	c, err := config.Load(v)
	if err != nil {
		return err
	}
	cfg = c

	closer, err := logging.Init(cfg.Log, fallback)
	if err != nil {
		return err
	}
	closeLog = closer
	return nil
}

// newSession loads the catalog and generates the datasets for one run.
func newSession() (*session.Session, error) {
	c, err := catalog.Load(cfg.Catalog.Path)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}

	now := time.Now()
	seed := cfg.ResolveSeed(now)
	logging.Log.WithFields(logrus.Fields{
		"seed": seed,
		"path": cfg.Catalog.Path,
	}).Info("starting session")

	return session.New(c, session.Options{
		Seed: seed,
		Now:  now,
		Chat: chat.Options{
			Seed:     seed,
			MinDelay: cfg.Chat.MinDelay,
			Jitter:   cfg.Chat.MaxJitter,
			Now:      time.Now,
		},
		Log: logging.Log,
	}), nil
}
