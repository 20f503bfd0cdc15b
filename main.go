package main

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"
	"github.com/mcncl/navlayout/internal/analyzer"
	"github.com/mcncl/navlayout/internal/config"
	"github.com/mcncl/navlayout/internal/errors"
	"github.com/mcncl/navlayout/internal/formatter"
	"github.com/mcncl/navlayout/internal/idgen"
	"github.com/mcncl/navlayout/internal/layout"
	"github.com/mcncl/navlayout/internal/models"
	"github.com/mcncl/navlayout/internal/parser"
)

// CLI defines the command-line interface
var CLI struct {
	Input              string `help:"Path to input layout file (JSON or YAML). If not specified, reads from stdin." short:"i" type:"path"`
	Output             string `help:"Path to output file. If not specified, writes to stdout." short:"o" type:"path"`
	Format             string `help:"Output format: json, yaml or tree." short:"f"`
	InputFormat        string `help:"Input format: auto, json or yaml."`
	Config             string `help:"Path to config file. If not specified, searches for .navlayout.yml." short:"c" type:"path"`
	IDs                string `help:"Identifier provider: counter, uuid or static." name:"ids"`
	NormalizeKeys      bool   `help:"Accept structural keys in any case style (side_menu, SideMenu)."`
	BareSideContainers bool   `help:"Do not wrap single-screen side menus in a ContainerStack."`
	NoValidate         bool   `help:"Skip canonical tree validation."`
	Stats              bool   `help:"Log a summary of the canonical tree."`
	Debug              bool   `help:"Enable debug logging." short:"d"`
	Verbose            bool   `help:"Log each processing step with its duration." short:"V"`
	Version            bool   `help:"Show version information." short:"v"`
	Interactive        bool   `help:"Run in interactive mode, allowing direct layout input with Ctrl+D to process." short:"I"`
}

// Context holds the runtime context
type Context struct {
	Config *config.Config
	Logger *log.Logger
}

func (c *Context) logger() *log.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return log.Default()
}

// Version information
const (
	Version = "0.1.0"
)

func main() {
	parser := kong.Must(&CLI,
		kong.Name("navlayout"),
		kong.Description("Normalize shorthand screen layouts into canonical navigation trees"),
		kong.UsageOnError(),
	)

	// Check if no arguments provided and set interactive mode by default
	if len(os.Args) == 1 {
		CLI.Interactive = true
	}

	_, err := parser.Parse(os.Args[1:])
	if err != nil {
		// If there's an error parsing arguments, the usage will already be shown by kong.UsageOnError()
		os.Exit(1)
	}

	if CLI.Version {
		fmt.Printf("navlayout version %s\n", Version)
		return
	}

	level := log.InfoLevel
	if CLI.Debug {
		level = log.DebugLevel
	}
	logger := newLogger(os.Stderr, level)

	cfg, err := loadConfig(logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", errors.UserFriendlyError(err))
		os.Exit(1)
	}
	if cfg.Dev.Debug {
		logger.SetLevel(log.DebugLevel)
	}

	err = run(&Context{Config: cfg, Logger: logger})
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", errors.UserFriendlyError(err))
		fmt.Fprintf(os.Stderr, "\nFor help, run: navlayout --help\n")
		os.Exit(1)
	}
}

// loadConfig merges the config file (explicit or discovered) with CLI flags
func loadConfig(logger *log.Logger) (*config.Config, error) {
	path := CLI.Config
	if path == "" {
		path = config.FindConfigFile()
	}
	if path != "" {
		logger.Debug("using config file", "path", path)
	}

	cfg, err := config.LoadConfigWithCLI(path, cliOverrides())
	if err != nil {
		return nil, errors.NewConfigError(err.Error(), err)
	}
	return cfg, nil
}

// cliOverrides turns set flags into config overrides. Boolean flags can
// only switch their option on (or, for --no-validate, off).
func cliOverrides() config.Overrides {
	on, off := true, false
	o := config.Overrides{
		IDProvider:   CLI.IDs,
		InputFormat:  CLI.InputFormat,
		OutputFormat: CLI.Format,
	}
	if CLI.NormalizeKeys {
		o.NormalizeKeys = &on
	}
	if CLI.BareSideContainers {
		o.BareSideContainers = &on
	}
	if CLI.NoValidate {
		o.Validate = &off
	}
	if CLI.Stats {
		o.Stats = &on
	}
	if CLI.Debug {
		o.Debug = &on
	}
	if CLI.Verbose {
		o.Verbose = &on
	}
	return o
}

// run executes the main program logic
func run(ctx *Context) error {
	cfg := ctx.Config
	if cfg == nil {
		cfg = config.NewConfig()
	}
	logger := ctx.logger()

	// 1. Read the shorthand layout
	step := newProgress(logger, cfg.Dev.Verbose)
	doc, err := parseInput(cfg)
	if err != nil {
		return err
	}
	step.done("read layout", "format", doc.Format)

	// 2. Normalize it
	step = newProgress(logger, cfg.Dev.Verbose)
	ids, err := idgen.New(cfg.IDs)
	if err != nil {
		return err
	}
	layoutParser := layout.NewLayoutTreeParserWithConfig(ids, cfg)
	root, err := layoutParser.ParseFromSimpleJSON(doc.Root)
	if err != nil {
		return err
	}
	step.done("normalized layout", "ids", cfg.IDs.Provider)

	// 3. Check the canonical tree
	analyzerInst := analyzer.NewAnalyzer()
	if cfg.Output.Validate {
		if cfg.IDs.Provider == "static" {
			logger.Warn("skipping validation: static ids are not unique")
		} else if err := analyzerInst.Validate(root); err != nil {
			return err
		}
	}
	if cfg.Output.Stats {
		logStats(logger, analyzerInst.Analyze(root))
	}

	// 4. Render and write
	out, err := formatter.NewFormatter().Format(root, cfg.Output.Format)
	if err != nil {
		return errors.NewOutputError("failed to render layout", err)
	}
	return writeOutput(out, logger)
}

func logStats(logger *log.Logger, result models.AnalysisResult) {
	keyvals := []interface{}{"nodes", result.TotalNodes, "depth", result.MaxDepth}
	for _, nodeType := range models.NodeTypes {
		if n := result.Counts[nodeType]; n > 0 {
			keyvals = append(keyvals, string(nodeType), n)
		}
	}
	logger.Info("canonical tree", keyvals...)
	if len(result.Screens) > 0 {
		logger.Info("screens", "names", result.Screens)
	}
}

// parseInput reads the layout from file or stdin
func parseInput(cfg *config.Config) (parser.Document, error) {
	if CLI.Input != "" {
		return parser.ParseFile(CLI.Input, cfg.Input.Format)
	}

	stdinInfo, err := os.Stdin.Stat()
	if err != nil {
		return parser.Document{}, errors.NewInputError("failed to access stdin", err)
	}

	if (stdinInfo.Mode() & os.ModeCharDevice) != 0 {
		// Terminal is interactive (not piped)
		if CLI.Interactive {
			return readInteractiveInput(cfg)
		}
		return parser.Document{}, errors.NewInputError("no input provided", errors.ErrNoInput)
	}

	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return parser.Document{}, errors.NewInputError("failed to read from stdin", err)
	}
	if len(data) == 0 {
		return parser.Document{}, errors.NewInputError("empty input received from stdin", errors.ErrEmptyInput)
	}

	return parser.ParseString(string(data), cfg.Input.Format)
}

// writeOutput writes the rendered tree to file or stdout
func writeOutput(out string, logger *log.Logger) error {
	if CLI.Output != "" {
		err := os.WriteFile(CLI.Output, []byte(out), 0644)
		if err != nil {
			return errors.NewOutputError(fmt.Sprintf("failed to write to file '%s'", CLI.Output), err)
		}
		logger.Info("canonical layout written", "path", CLI.Output)
		return nil
	}

	if _, err := fmt.Print(out); err != nil {
		return errors.NewOutputError("failed to write to stdout", err)
	}
	return nil
}

// readInteractiveInput lets users paste a layout and signal completion
// with Ctrl+D (EOF)
func readInteractiveInput(cfg *config.Config) (parser.Document, error) {
	fmt.Fprintln(os.Stderr, "navlayout Interactive Mode")
	fmt.Fprintln(os.Stderr, "Paste your layout (JSON or YAML) below and press Ctrl+D (or Ctrl+Z on Windows) when done:")

	data, err := io.ReadAll(bufio.NewReader(os.Stdin))
	if err != nil {
		return parser.Document{}, errors.NewInputError("error reading input", err)
	}
	if len(data) == 0 {
		return parser.Document{}, errors.NewInputError("empty input received", errors.ErrEmptyInput)
	}

	fmt.Fprintln(os.Stderr, "\nProcessing layout...")
	return parser.ParseString(string(data), cfg.Input.Format)
}
