package commands

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/syssam/crudgen/compiler/gen"
	"github.com/syssam/crudgen/compiler/gen/golang"
	"github.com/syssam/crudgen/internal/cli/ui"
)

func newGenerateCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "generate",
		Short: "Generate repository and service code",
		Long: `Generate writes one repository file and one service file per entity.
Existing generated files are overwritten.`,
		Example: `  $ crudgen generate --schema ./internal/model
  $ crudgen generate -c crudgen.yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := setup(opts, cmd.Flag("config").Changed)
			if err != nil {
				ui.PrintError("%v", err)
				return err
			}
			defer e.log.Sync() //nolint:errcheck // stderr sync fails on some terminals
			return e.generate(cmd.Context())
		},
	}
}

// generate loads the entities and writes their code.
func (e *env) generate(ctx context.Context) error {
	types, err := e.types()
	if err != nil {
		ui.PrintError("load %s: %v", e.cfg.Schema, err)
		return err
	}
	if len(types) == 0 {
		ui.PrintWarning("no entities found in %s", e.cfg.Schema)
		return nil
	}
	cfg, err := e.genConfig()
	if err != nil {
		ui.PrintError("%v", err)
		return err
	}
	w, err := golang.NewWriter(cfg)
	if err != nil {
		ui.PrintError("%v", err)
		return err
	}
	if err := gen.NewGenerator(cfg).WithEmitter(w).Generate(ctx, types); err != nil {
		ui.PrintError("%v", err)
		return err
	}
	m := w.Metrics()
	e.log.Infow("generated", "files", m.FilesGenerated, "bytes", m.TotalBytes,
		"render", m.RenderTime, "format", m.FormatTime, "write", m.WriteTime)
	ui.PrintSuccess("generated %d files for %d entities in %s", m.FilesGenerated, len(types), cfg.Target)
	return nil
}
