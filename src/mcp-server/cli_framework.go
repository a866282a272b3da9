// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package mcpserver

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"text/template"

	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	"github.com/H0llyW00dzZ/x509-validator/src/cli"
	"github.com/H0llyW00dzZ/x509-validator/src/internal/helper/posix"
	"github.com/H0llyW00dzZ/x509-validator/src/logger"
	"github.com/H0llyW00dzZ/x509-validator/src/mcp-server/templates"
)

// ConfigEnv names the environment variable holding the server config file path.
// [cli.ConfigEnv] is consulted when it is unset.
const ConfigEnv = "MCP_X509_CONFIG_FILE"

// cliHelpData holds the data used to populate the CLI help template.
type cliHelpData struct {
	// ExeName: Executable name for command examples
	ExeName string
	// InstructionsFlagName: Dynamic instructions flag name
	InstructionsFlagName string
	// ConfigFlagName: Dynamic config flag name
	ConfigFlagName string
	// ConfigEnv: Environment variable naming the config file
	ConfigEnv string
}

// CLIFramework integrates Cobra CLI with MCP server capabilities.
//
// Running the binary without arguments starts the stdio server. --instructions
// prints the rendered client instructions, [Gopls-style], and --config selects
// the configuration file.
//
// [Gopls-style]: https://tip.golang.org/gopls/features/mcp#instructions-to-the-model
type CLIFramework struct {
	configFile string
	embed      templates.EmbedFS
	version    string
	tools      []ToolDefinition
	log        logger.Logger

	stdin  io.Reader
	stdout io.Writer
}

// NewCLIFramework creates a new CLI framework instance with MCP server integration.
//
// Parameters:
//   - configFile: Initial config path, overridable with --config
//   - deps: Embed, Version, Tools and Log are taken from deps
//
// Returns:
//   - *CLIFramework: Initialized CLI framework ready for building commands.
func NewCLIFramework(configFile string, deps ServerDependencies) *CLIFramework {
	embed := deps.Embed
	if embed == nil {
		embed = templates.MagicEmbed
	}
	log := deps.Log
	if log == nil {
		log = logger.NewJSONLogger(os.Stderr, false)
	}

	return &CLIFramework{
		configFile: configFile,
		embed:      embed,
		version:    deps.Version,
		tools:      deps.Tools,
		log:        log,
		stdin:      os.Stdin,
		stdout:     os.Stdout,
	}
}

// BuildRootCommand creates the root Cobra command with integrated MCP server capabilities.
//
// Command behavior:
//   - With --instructions: Displays the rendered instructions and exits
//   - With arguments: Returns an error, there are no subcommands
//   - Without arguments: Starts the MCP server on stdin and stdout
//
// It panics when the embedded help template cannot be rendered.
func (cf *CLIFramework) BuildRootCommand() *cobra.Command {
	exeName := posix.ExecutableName("x509-validator-mcp")

	rootCmd := &cobra.Command{
		Use:           exeName,
		Short:         "X.509 certificate policy validator MCP server",
		Version:       cf.version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	var showInstructions bool
	rootCmd.PersistentFlags().BoolVar(&showInstructions, "instructions", false, "print usage workflows for certificate validation")
	rootCmd.PersistentFlags().StringVar(&cf.configFile, "config", cf.configFile, "path to the validator configuration file (JSON or YAML)")

	longDesc, examples, err := cf.loadAndExecuteCLIHelpTemplate(cliHelpData{
		ExeName:              exeName,
		InstructionsFlagName: "--" + rootCmd.PersistentFlags().Lookup("instructions").Name,
		ConfigFlagName:       "--" + rootCmd.PersistentFlags().Lookup("config").Name,
		ConfigEnv:            ConfigEnv,
	})
	if err != nil {
		panic(fmt.Sprintf("failed to process CLI help template: %v", err))
	}
	rootCmd.Long = longDesc
	rootCmd.Example = examples

	rootCmd.RunE = func(cmd *cobra.Command, args []string) error {
		if len(args) > 0 {
			return fmt.Errorf("unexpected arguments: %s for %q", strings.Join(args, " "), exeName)
		}
		if showInstructions {
			return cf.printInstructions(cmd.OutOrStdout())
		}
		return cf.startMCPServer(cmd.Context())
	}

	return rootCmd
}

// loadAndExecuteCLIHelpTemplate renders [templates.CLIHelp] and splits it into
// the Long description and the Examples section.
func (cf *CLIFramework) loadAndExecuteCLIHelpTemplate(data cliHelpData) (longDesc, examples string, err error) {
	templateBytes, err := cf.embed.ReadFile(templates.CLIHelp)
	if err != nil {
		return "", "", fmt.Errorf("failed to load CLI help template: %w", err)
	}

	tmpl, err := template.New("cli_help").Parse(string(templateBytes))
	if err != nil {
		return "", "", fmt.Errorf("failed to parse CLI help template: %w", err)
	}

	var result strings.Builder
	if err := tmpl.Execute(&result, data); err != nil {
		return "", "", fmt.Errorf("failed to execute CLI help template: %w", err)
	}

	return parseTemplateResult(result.String())
}

// parseTemplateResult splits the rendered help at its "## Examples" line.
func parseTemplateResult(templateResult string) (longDesc, examples string, err error) {
	const examplesMarker = "## Examples"

	markerIndex := strings.Index(templateResult, examplesMarker)
	if markerIndex == -1 {
		return "", "", errors.New("CLI help template has invalid format - missing '## Examples' section")
	}

	longDesc = strings.TrimSpace(templateResult[:markerIndex])
	examples = strings.TrimSpace(templateResult[markerIndex+len(examplesMarker):])
	return longDesc, examples, nil
}

// loadConfig reads path, then [ConfigEnv], then the shared CLI configuration.
func loadConfig(path string) (*cli.Config, error) {
	if path == "" {
		path = os.Getenv(ConfigEnv)
	}
	return cli.LoadConfig(path)
}

// newBuilder assembles the server builder for config.
func (cf *CLIFramework) newBuilder(config *cli.Config) (*ServerBuilder, error) {
	instructions, err := loadInstructions(cf.embed, cf.tools)
	if err != nil {
		return nil, err
	}

	return NewServerBuilder().
		WithConfig(config).
		WithEmbed(cf.embed).
		WithVersion(cf.version).
		WithLogger(cf.log).
		WithTools(cf.tools...).
		WithResources(createResources(config, cf.version, cf.embed)...).
		WithInstructions(instructions), nil
}

// startMCPServer serves MCP over stdio until the input ends, ctx is done,
// or the process receives SIGINT or SIGTERM.
//
// Returns:
//   - nil: When server shuts down gracefully due to signal interruption
//   - error: Configuration loading, server building, or other runtime errors
func (cf *CLIFramework) startMCPServer(ctx context.Context) error {
	config, err := loadConfig(cf.configFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	builder, err := cf.newBuilder(config)
	if err != nil {
		return err
	}
	mcpServer, err := builder.Build()
	if err != nil {
		return fmt.Errorf("failed to build MCP server: %w", err)
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	cf.log.Printf("X.509 Validator MCP server %s started.", cf.version)

	stdioServer := server.NewStdioServer(mcpServer)
	if err := stdioServer.Listen(ctx, cf.stdin, cf.stdout); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	cf.log.Printf("X.509 Validator MCP server stopped.")
	return nil
}

// printInstructions writes the rendered client instructions to w.
func (cf *CLIFramework) printInstructions(w io.Writer) error {
	instructions, err := loadInstructions(cf.embed, cf.tools)
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(w, instructions)
	return err
}
