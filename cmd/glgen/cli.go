package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/refaktor/glgen"
	"github.com/refaktor/glgen/config"
	"github.com/refaktor/glgen/logger"
	"github.com/refaktor/glgen/registry/khronos"
)

var errChangesPending = errors.New("generated modules are out of date")

type options struct {
	configPath   string
	registryPath string
	verbosity    int
	watch        bool
	force        bool
}

func newCLI() *cobra.Command {
	var opts options

	generateCmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate binding modules from the registry",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, &opts)
		},
	}
	generateCmd.Flags().BoolVarP(&opts.watch, "watch", "w", false, "regenerate when the registry or config file changes")

	rootCmd := &cobra.Command{
		Use:   "glgen",
		Short: "OpenGL binding generator",
		Long: `glgen generates Python OpenGL binding modules from a Khronos API registry.

Running glgen without a subcommand is the same as "glgen generate".`,
		Args: cobra.NoArgs,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Disable usage printing on errors
			cmd.SilenceUsage = true
		},
		RunE: generateCmd.RunE,
	}
	rootCmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "glgen.toml", "config file; defaults are used if it does not exist")
	rootCmd.PersistentFlags().StringVarP(&opts.registryPath, "registry", "r", "", "registry XML file, overrides the config")
	rootCmd.PersistentFlags().CountVarP(&opts.verbosity, "verbose", "v", "increase log verbosity (-v info, -vv debug)")
	rootCmd.Flags().AddFlagSet(generateCmd.Flags())

	checkCmd := &cobra.Command{
		Use:   "check",
		Short: "Report modules that would change, without writing",
		Long:  "Check exits with an error if generating would modify any file.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, &opts)
		},
	}

	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default config file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := os.Stat(opts.configPath); err == nil && !opts.force {
				return errors.WithHint(
					errors.Newf("%v already exists", opts.configPath),
					"use --force to overwrite it",
				)
			}
			if err := config.Default().Save(opts.configPath); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "created default config at", opts.configPath)
			return nil
		},
	}
	initCmd.Flags().BoolVar(&opts.force, "force", false, "overwrite an existing config file")

	rootCmd.AddCommand(generateCmd, checkCmd, initCmd)
	return rootCmd
}

func loadConfig(cmd *cobra.Command, opts *options, log *zap.SugaredLogger) (*config.Config, error) {
	var cfg *config.Config
	if _, err := os.Stat(opts.configPath); errors.Is(err, os.ErrNotExist) {
		log.Infow("config file not found, using defaults", logger.FieldPath, opts.configPath)
		cfg = config.Default()
	} else {
		cfg, err = config.Load(opts.configPath)
		if err != nil {
			if cErr := (&config.Error{}); errors.As(err, &cErr) {
				fmt.Fprintln(cmd.ErrOrStderr(), cErr.String())
			}
			return nil, err
		}
	}
	if opts.registryPath != "" {
		cfg.Registry = opts.registryPath
	}
	return cfg, nil
}

func newGenerator(cmd *cobra.Command, opts *options, dryRun bool) (*glgen.Generator, error) {
	log := logger.New(cmd.ErrOrStderr(), "glgen", opts.verbosity)
	cfg, err := loadConfig(cmd, opts, log)
	if err != nil {
		return nil, err
	}
	src := &khronos.Loader{Path: cfg.Registry, APIs: cfg.APIs}
	return glgen.New(cfg, src, log, dryRun), nil
}

func generateOnce(cmd *cobra.Command, opts *options) error {
	g, err := newGenerator(cmd, opts, false)
	if err != nil {
		return err
	}
	rep, err := g.Run(cmd.Context())
	if rep != nil {
		rep.Render(cmd.OutOrStdout())
	}
	if mErr := (&glgen.ModuleErrors{}); errors.As(err, &mErr) {
		fmt.Fprint(cmd.ErrOrStderr(), mErr.String())
	}
	return err
}

func runGenerate(cmd *cobra.Command, opts *options) error {
	if err := generateOnce(cmd, opts); err != nil && !opts.watch {
		return err
	}
	if !opts.watch {
		return nil
	}
	return watch(cmd, opts)
}

func runCheck(cmd *cobra.Command, opts *options) error {
	g, err := newGenerator(cmd, opts, true)
	if err != nil {
		return err
	}
	rep, err := g.Run(cmd.Context())
	if err != nil {
		return err
	}
	paths := rep.ChangedPaths()
	for _, p := range paths {
		fmt.Fprintln(cmd.OutOrStdout(), "would write", p)
	}
	if len(paths) > 0 {
		return errChangesPending
	}
	fmt.Fprintln(cmd.OutOrStdout(), "all modules up to date")
	return nil
}

// watch regenerates whenever the registry or config file changes,
// until the command's context is done.
func watch(cmd *cobra.Command, opts *options) error {
	log := logger.New(cmd.ErrOrStderr(), "glgen", opts.verbosity)
	cfg, err := loadConfig(cmd, opts, log)
	if err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, "create file watcher")
	}
	defer watcher.Close()

	// Watch the parent directories, editors often replace files by
	// renaming.
	watched := make(map[string]bool)
	for _, p := range []string{cfg.Registry, opts.configPath} {
		abs, err := filepath.Abs(p)
		if err != nil {
			return err
		}
		watched[abs] = true
		if err := watcher.Add(filepath.Dir(abs)); err != nil {
			return errors.Wrapf(err, "watch %v", p)
		}
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	log.Warnw("watching for changes", logger.FieldPath, cfg.Registry)
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			abs, _ := filepath.Abs(event.Name)
			if !watched[abs] || event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			log.Infow("change detected, regenerating", logger.FieldPath, event.Name)
			if err := generateOnce(cmd, opts); err != nil {
				log.Errorw("generation failed", logger.FieldError, err)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Warnw("file watcher error", logger.FieldError, err)
		}
	}
}
