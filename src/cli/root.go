// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package cli

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"

	"github.com/H0llyW00dzZ/x509-validator/src/internal/helper/input"
	"github.com/H0llyW00dzZ/x509-validator/src/internal/helper/posix"
	"github.com/H0llyW00dzZ/x509-validator/src/logger"
	"github.com/H0llyW00dzZ/x509-validator/src/violation"
	x509chain "github.com/H0llyW00dzZ/x509-validator/src/x509/chain"
	x509info "github.com/H0llyW00dzZ/x509-validator/src/x509/info"
	x509validator "github.com/H0llyW00dzZ/x509-validator/src/x509/validator"
)

var (
	// OperationPerformed reports whether a validation command ran.
	OperationPerformed bool
	// OperationPerformedSuccessfully reports whether that command passed.
	OperationPerformedSuccessfully bool
)

// debugSetter is implemented by loggers with switchable debug output.
type debugSetter interface {
	SetDebug(enabled bool)
}

// app holds the state shared by all subcommands of one invocation.
type app struct {
	version string
	log     logger.Logger
	out     io.Writer

	configFile string
	language   string
	debug      bool

	config    *Config
	extractor *x509info.Extractor
	validator *x509validator.Validator
}

// Execute runs the root command with the process arguments, writing results to stdout.
//
// Parameters:
//   - ctx: Context for cancellation of network operations (OCSP)
//   - version: Version string shown by --version and sent in the User-Agent
//   - log: Logger for diagnostics and violation messages
//
// Returns:
//   - error: The first violation or other failure, already reported to log
func Execute(ctx context.Context, version string, log logger.Logger) error {
	return ExecuteArgs(ctx, version, log, os.Stdout, os.Args[1:])
}

// ExecuteArgs runs the root command with explicit arguments and output writer.
//
// Violations are reported through log in the configured language; other
// errors are reported in English. The error is returned unchanged.
func ExecuteArgs(ctx context.Context, version string, log logger.Logger, out io.Writer, args []string) error {
	a := &app{version: version, log: log, out: out}

	rootCmd := a.rootCommand()
	rootCmd.SetArgs(args)
	rootCmd.SetOut(out)
	rootCmd.SetErr(out)

	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		a.report(err)
	}

	if a.extractor != nil {
		log.Debugf("%s", a.extractor.Metrics())
	}

	return err
}

func (a *app) rootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:               posix.ExecutableName("x509-validator"),
		Short:             "X.509 certificate policy validator",
		Long:              "Validate X.509 certificates, their issuers, purposes, hosts and private keys against policy rules.",
		Version:           a.version,
		SilenceErrors:     true,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
	}

	rootCmd.PersistentFlags().StringVarP(&a.configFile, "config", "c", "", "configuration file (JSON or YAML, default: $"+ConfigEnv+")")
	rootCmd.PersistentFlags().StringVarP(&a.language, "lang", "l", "", "language of violation messages (default: from config)")
	rootCmd.PersistentFlags().BoolVar(&a.debug, "debug", false, "print debug diagnostics")

	rootCmd.AddCommand(
		a.validateCommand(),
		a.purposeCommand(),
		a.hostCommand(),
		a.keyCommand(),
		a.resolveCommand(),
		a.ocspCommand(),
		a.inspectCommand(),
	)

	return rootCmd
}

// setup loads the configuration and builds the validators for the command.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	config, err := LoadConfig(a.configFile)
	if err != nil {
		return err
	}
	if a.language != "" {
		config.Language = a.language
	}
	a.config = config

	if v, ok := a.log.(debugSetter); ok {
		v.SetDebug(a.debug)
	}

	a.extractor = x509info.NewExtractor(nil, x509info.WithCacheSize(config.Cache.Size))
	a.validator = x509validator.New(nil, x509validator.WithExtractor(a.extractor))
	return nil
}

func (a *app) tag() language.Tag {
	if a.config != nil {
		return violation.ParseLanguage(a.config.Language)
	}
	if a.language != "" {
		return violation.ParseLanguage(a.language)
	}
	return language.English
}

func (a *app) report(err error) {
	if v, ok := violation.As(err); ok {
		a.log.Errorf("%s", violation.Translate(v, a.tag()))
		return
	}
	a.log.Errorf("%v", err)
}

// pool reads "NAME=FILE" specs into a CA pool in order.
func (a *app) pool(specs []string) (x509chain.Pool, error) {
	values, err := input.ReadNamed(specs)
	if err != nil {
		return x509chain.Pool{}, err
	}

	var pool x509chain.Pool
	for _, v := range values {
		pool.Add(v.Name, v.Value)
	}
	return pool, nil
}

func (a *app) ocspValidator(timeoutSeconds int) *x509chain.OCSPValidator {
	if timeoutSeconds <= 0 {
		timeoutSeconds = a.config.OCSP.Timeout
	}

	httpConfig := x509chain.NewHTTPConfig(a.version)
	httpConfig.Timeout = time.Duration(timeoutSeconds) * time.Second
	httpConfig.UserAgent = a.config.OCSP.UserAgent

	return x509chain.NewOCSPValidator(
		x509chain.NewResolver(a.extractor),
		x509chain.WithPoster(x509chain.NewHTTPPoster(httpConfig)),
		x509chain.WithLogger(a.log),
	)
}
