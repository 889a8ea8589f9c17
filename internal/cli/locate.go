package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"uvm/internal/app"
)

func newLocateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "locate <version>",
		Short: "Print the location of the best installed match for a version",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLocate(cmd.Context(), cmd, args[0])
		},
	}
}

func runLocate(ctx context.Context, cmd *cobra.Command, version string) error {
	service, err := newAppService()
	if err != nil {
		return err
	}
	result, err := service.Locate(ctx, app.LocateRequest{Version: version})
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), result.Installation.Location)
	return nil
}
