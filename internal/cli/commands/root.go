package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/syssam/crudgen/internal/config"
)

// version is set at build time with -ldflags "-X ...commands.version=v1.2.3".
var version = "0.1.0"

// options holds the persistent flags shared by all commands.
type options struct {
	configFile string
	schema     string
	target     string
	pkg        string
	logLevel   string
	logFormat  string
}

// Execute executes the root command
func Execute() error {
	return newRootCmd().Execute()
}

// newRootCmd builds the command tree. Every call returns fresh flag state.
func newRootCmd() *cobra.Command {
	opts := &options{}
	rootCmd := &cobra.Command{
		Use:     "crudgen",
		Short:   "Generate repository and service code from entity definitions",
		Version: version,
		Long: `crudgen generates a repository interface and a service type for every
entity marked for CRUD generation. Entities are read from a YAML schema file
or from Go structs annotated with a //crudgen:crud directive.`,
		Example: `  # Generate code next to annotated structs
  $ crudgen generate --schema ./internal/model

  # Generate from a schema file into a directory
  $ crudgen generate --schema entities.yaml --target ./store

  # Print the artifact definitions of one entity
  $ crudgen describe User

  # Regenerate on every schema change
  $ crudgen watch`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.SetVersionTemplate(fmt.Sprintf("crudgen version %s\n", version))
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&opts.configFile, "config", "c", config.DefaultFile, "config file")
	flags.StringVarP(&opts.schema, "schema", "s", "", "YAML schema file or directory of Go sources")
	flags.StringVarP(&opts.target, "target", "t", "", "output directory")
	flags.StringVar(&opts.pkg, "package", "", "import path of entities loaded from Go sources")
	flags.StringVar(&opts.logLevel, "log-level", "", "log level: debug, info, warn or error")
	flags.StringVar(&opts.logFormat, "log-format", "", "log format: console or json")

	rootCmd.AddCommand(
		newGenerateCmd(opts),
		newDescribeCmd(opts),
		newWatchCmd(opts),
		newVersionCmd(),
	)
	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "crudgen version %s\n", version)
		},
	}
}
