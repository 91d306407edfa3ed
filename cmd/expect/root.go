package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/aretw0/expect"
	"github.com/aretw0/expect/internal/config"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	cfgFile   string
	logLevel  string
	storeKind string
	storeDir  string
)

// errInvalid signals a completed run whose value failed validation.
var errInvalid = errors.New("validation failed")

var rootCmd = &cobra.Command{
	Use:   "expect",
	Short: "Validate JSON-like values against declarative schemas",
	Long: `expect checks objects against schemas written in YAML or JSON.

Field types are primitives (number, string, boolean, any), regular
expressions with <name> placeholders from the pattern registry, arrays of
alternatives or nested objects. Failures report the dotted path of the
field that broke and why.

Examples:
  expect validate payload.json --schema user.yaml
  expect schemas put user user.yaml
  expect validate payload.json --name user
  expect patterns expand '<mobile_number>|<citizen_id>'
  expect serve --port 8080`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errInvalid) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", config.DefaultPath, "config file path")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level override (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&storeKind, "store", "", "schema store override (memory, file, redis)")
	rootCmd.PersistentFlags().StringVar(&storeDir, "dir", "", "schema directory override for the file store")
}

// app bundles what a command needs once configuration is resolved.
type app struct {
	cfg       config.Config
	logger    *slog.Logger
	validator *expect.Validator
	closer    io.Closer
}

func (a *app) Close() error {
	if a.closer == nil {
		return nil
	}
	return a.closer.Close()
}

// loadApp resolves configuration from the config file, the environment and
// the global flags, then builds the validator with opts applied last.
// Logs go to logOut.
func loadApp(logOut io.Writer, opts ...expect.Option) (*app, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, err
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	if storeKind != "" {
		cfg.Store.Driver = storeKind
	}
	if storeDir != "" {
		cfg.Store.Dir = storeDir
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger, err := cfg.Logger(logOut)
	if err != nil {
		return nil, err
	}
	slog.SetDefault(logger)

	reg, err := cfg.Registry()
	if err != nil {
		return nil, err
	}
	store, err := cfg.OpenStore()
	if err != nil {
		return nil, err
	}

	a := &app{
		cfg:       cfg,
		logger:    logger,
		validator: expect.New(append([]expect.Option{
			expect.WithRegistry(reg),
			expect.WithStore(store),
			expect.WithLogger(logger),
		}, opts...)...),
	}
	if c, ok := store.(io.Closer); ok {
		a.closer = c
	}
	return a, nil
}
