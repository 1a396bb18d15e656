// Package config defines the command line of the fensql binary.
//
// Every flag can also be set through a FENSQL_* environment variable or a
// JSON file passed with --config, keyed by flag name:
//
//	{"name": "people", "max-pages": 12, "log-level": "info"}
//
// Command line flags win over both. Unknown keys in the file are rejected.
package config

import (
	"fmt"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"fensql/pkg/logging"
	"fensql/pkg/storage/page"
)

// MaxPagesLimit bounds --max-pages so a layout always fits in memory.
const MaxPagesLimit = 100000

// Config holds every setting of a fensql run.
type Config struct {
	Name     string `name:"name" default:"users" help:"Name of the table." validate:"required,max=64"`
	MaxPages uint32 `name:"max-pages" default:"100" help:"Number of pages the table may allocate." validate:"min=1,max=100000"`

	TUI    bool   `name:"tui" help:"Start the full-screen terminal UI instead of the line shell."`
	Color  bool   `name:"color" default:"true" negatable:"" help:"Color shell output when it goes to a terminal."`
	Quiet  bool   `name:"quiet" short:"q" help:"Skip the welcome banner."`
	Demo   bool   `name:"demo" help:"Seed the table with sample rows before starting."`
	Import string `name:"import" type:"existingfile" help:"Run the statements in FILE before starting."`

	LogLevel  string `name:"log-level" default:"warn" enum:"debug,info,warn,error" help:"Log level (${enum})." validate:"oneof=debug info warn error"`
	LogFormat string `name:"log-format" default:"text" enum:"text,json" help:"Log format (${enum})." validate:"oneof=text json"`
	LogFile   string `name:"log-file" type:"path" help:"Write logs to FILE with rotation instead of stderr."`

	ConfigFile kong.ConfigFlag `name:"config" short:"c" help:"Load settings from a JSON file."`
}

// Parse reads the configuration from args and the environment. Extra kong
// options are appended, which is how tests swap the exit hook and writers.
func Parse(args []string, options ...kong.Option) (*Config, error) {
	cfg := &Config{}

	opts := append([]kong.Option{
		kong.Name("fensql"),
		kong.Description("A single-table SQL shell over a paged in-memory store."),
		kong.UsageOnError(),
		kong.DefaultEnvars("FENSQL"),
		kong.Configuration(loadJSON),
	}, options...)

	parser, err := kong.New(cfg, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "build command line")
	}
	if _, err := parser.Parse(args); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks value ranges that kong cannot express.
func (c *Config) Validate() error {
	err := validator.New(validator.WithRequiredStructEnabled()).Struct(c)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		msgs := make([]string, 0, len(fieldErrs))
		for _, fe := range fieldErrs {
			msgs = append(msgs, fmt.Sprintf("%s fails %q (got %v)", flagName(fe.Field()), fe.Tag(), fe.Value()))
		}
		return errors.Errorf("invalid configuration: %s", strings.Join(msgs, "; "))
	}
	return errors.Wrap(err, "invalid configuration")
}

// Layout returns the page layout for the configured page budget.
func (c *Config) Layout() page.Layout {
	return page.NewLayout(c.MaxPages)
}

// Logging returns the logger settings.
func (c *Config) Logging() logging.Config {
	return logging.Config{
		Level:      logging.ParseLevel(c.LogLevel),
		Format:     c.LogFormat,
		OutputPath: c.LogFile,
	}
}

func flagName(field string) string {
	switch field {
	case "MaxPages":
		return "--max-pages"
	case "LogLevel":
		return "--log-level"
	case "LogFormat":
		return "--log-format"
	default:
		return "--" + strings.ToLower(field)
	}
}
