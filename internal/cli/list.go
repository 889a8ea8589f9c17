package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"uvm/internal/app"
)

type listOptions struct {
	Components bool
	Verbose    bool
}

func newListCommand() *cobra.Command {
	opts := listOptions{}
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List installed editor versions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runList(cmd.Context(), cmd, opts)
		},
	}
	cmd.Flags().BoolVar(&opts.Components, "components", false, "Show installed components")
	cmd.Flags().BoolVar(&opts.Verbose, "verbose", false, "Also report corrupt installations")
	_ = viper.BindPFlag("list_components", cmd.Flags().Lookup("components"))
	_ = viper.BindPFlag("list_verbose", cmd.Flags().Lookup("verbose"))
	return cmd
}

func runList(ctx context.Context, cmd *cobra.Command, opts listOptions) error {
	service, err := newAppService()
	if err != nil {
		return err
	}
	result, err := service.List(ctx, app.ListRequest{
		Components: resolveBool(cmd, opts.Components, "list_components", "components"),
	})
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	for _, inst := range result.Installations {
		fmt.Fprintf(out, "%s\t%s\n", inst.Version, inst.Location)
		if len(inst.Components) > 0 {
			fmt.Fprintf(out, "  %s\n", strings.Join(inst.Components, ", "))
		}
	}
	if resolveBool(cmd, opts.Verbose, "list_verbose", "verbose") {
		for _, finding := range result.Findings {
			fmt.Fprintf(out, "corrupt: %s (%s)\n", finding.Location, finding.Reason)
		}
	}
	return nil
}
