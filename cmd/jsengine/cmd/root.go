package cmd

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"
)

var (
	// Version information (set by build flags)
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var (
	verbose    bool
	configPath string
)

// engineConfig is the optional YAML configuration file the parse and run
// subcommands consult for engine options before applying their own flags
// on top; lex and fmt do not read it.
type engineConfig struct {
	AnnexB  bool   `yaml:"annexB"`
	Timeout int    `yaml:"timeoutMs"`
	Module  string `yaml:"moduleSearchPath"`
}

func loadConfig() (engineConfig, error) {
	cfg := engineConfig{AnnexB: true}
	if configPath == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(configPath)
	if err != nil {
		return cfg, fmt.Errorf("reading config %s: %w", configPath, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", configPath, err)
	}
	return cfg, nil
}

var rootCmd = &cobra.Command{
	Use:   "jsengine",
	Short: "An embeddable ECMAScript interpreter's command-line front end",
	Long: `jsengine exposes the lex/parse/run pipeline behind pkg/jsengine.Engine
as a standalone tool, useful for debugging the front end and running
scripts without writing a Go host program.`,
	Version: Version,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a YAML engine config file")
}
