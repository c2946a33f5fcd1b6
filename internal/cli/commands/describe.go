package commands

import (
	"context"
	"fmt"
	"io"
	"slices"

	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/syssam/crudgen/compiler/gen"
	"github.com/syssam/crudgen/compiler/gen/golang"
)

// Output formats of the describe command.
const (
	formatYAML = "yaml"
	formatGo   = "go"
)

func newDescribeCmd(opts *options) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "describe [entity...]",
		Short: "Print the artifact definitions of entities",
		Long: `Describe prints the repository and service definitions built for each
entity without writing any file. With --format go it prints the Go source
that generate would write.`,
		Example: `  $ crudgen describe
  $ crudgen describe User Order --format go`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != formatYAML && format != formatGo {
				return fmt.Errorf("unknown format %q: use %s or %s", format, formatYAML, formatGo)
			}
			e, err := setup(opts, cmd.Flag("config").Changed)
			if err != nil {
				return err
			}
			defer e.log.Sync() //nolint:errcheck // stderr sync fails on some terminals
			return e.describe(cmd.Context(), cmd.OutOrStdout(), format, args)
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", formatYAML, "output format: yaml or go")
	return cmd
}

// describe writes the artifacts of the named entities, or of all entities
// if names is empty.
func (e *env) describe(ctx context.Context, w io.Writer, format string, names []string) error {
	types, err := e.types()
	if err != nil {
		return err
	}
	if len(names) > 0 {
		missing, _ := lo.Difference(names, lo.Map(types, func(t *gen.Type, _ int) string { return t.Name() }))
		if len(missing) > 0 {
			return fmt.Errorf("unknown entities: %v", missing)
		}
		types = lo.Filter(types, func(t *gen.Type, _ int) bool { return slices.Contains(names, t.Name()) })
	}
	cfg, err := e.genConfig()
	if err != nil {
		return err
	}
	artifacts, err := gen.NewGenerator(cfg).Build(ctx, types)
	if err != nil {
		return err
	}
	if format == formatGo {
		return writeSource(w, cfg, artifacts)
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	for _, a := range artifacts {
		if err := enc.Encode(a.List()); err != nil {
			return err
		}
	}
	return enc.Close()
}

func writeSource(w io.Writer, cfg *gen.Config, artifacts []*gen.Artifacts) error {
	gw, err := golang.NewWriter(cfg)
	if err != nil {
		return err
	}
	for _, a := range artifacts {
		for _, art := range a.List() {
			src, err := gw.Source(art)
			if err != nil {
				return err
			}
			if _, err := fmt.Fprintf(w, "// %s\n%s\n", golang.FileName(art), src); err != nil {
				return err
			}
		}
	}
	return nil
}
