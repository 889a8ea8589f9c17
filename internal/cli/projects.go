package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"uvm/internal/app"
)

func newProjectsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "projects <root>",
		Short: "List projects below a directory with their editor versions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProjects(cmd.Context(), cmd, args[0])
		},
	}
}

func runProjects(ctx context.Context, cmd *cobra.Command, root string) error {
	service, err := newAppService()
	if err != nil {
		return err
	}
	result, err := service.Projects(ctx, app.ProjectsRequest{Root: root})
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	for _, project := range result.Projects {
		switch {
		case project.Problem != "":
			fmt.Fprintf(out, "%s\terror: %s\n", project.Path, project.Problem)
		case !project.Declared:
			fmt.Fprintf(out, "%s\tno version\n", project.Path)
		case project.Location == "":
			fmt.Fprintf(out, "%s\t%s\tnot installed\n", project.Path, project.Version)
		default:
			fmt.Fprintf(out, "%s\t%s\t%s\n", project.Path, project.Version, project.Location)
		}
	}
	return nil
}
