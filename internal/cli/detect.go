package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"uvm/internal/app"
)

func newDetectCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "detect <project>",
		Short: "Print the editor version a project requires",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDetect(cmd.Context(), cmd, args[0])
		},
	}
}

func runDetect(ctx context.Context, cmd *cobra.Command, project string) error {
	service, err := newAppService()
	if err != nil {
		return err
	}
	result, err := service.Detect(ctx, app.DetectRequest{ProjectPath: project})
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), result.Version)
	return nil
}
