package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"uvm/internal/app"
)

type installOptions struct {
	Components []string
	Project    string
}

func newInstallCommand() *cobra.Command {
	opts := installOptions{}
	cmd := &cobra.Command{
		Use:   "install [version]",
		Short: "Install an editor version and components unless already present",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			requested := ""
			if len(args) == 1 {
				requested = args[0]
			}
			return runInstall(cmd.Context(), cmd, requested, opts)
		},
	}
	cmd.Flags().StringSliceVar(&opts.Components, "component", nil, "Component to install (repeatable)")
	cmd.Flags().StringVar(&opts.Project, "project", "", "Install the version this project requires")
	_ = viper.BindPFlag("install_components", cmd.Flags().Lookup("component"))
	_ = viper.BindPFlag("install_project", cmd.Flags().Lookup("project"))
	return cmd
}

func runInstall(ctx context.Context, cmd *cobra.Command, requested string, opts installOptions) error {
	service, err := newAppService()
	if err != nil {
		return err
	}
	result, err := service.Install(ctx, app.InstallRequest{
		Version:     requested,
		ProjectPath: resolveString(cmd, opts.Project, "install_project", "project"),
		Components:  resolveStrings(cmd, opts.Components, "install_components", "component"),
	})
	if err != nil {
		return err
	}
	for _, hint := range result.Hints {
		fmt.Fprintln(cmd.ErrOrStderr(), hint)
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "installed: %s\t%s\n", result.Installation.Version, result.Installation.Location)
	if len(result.Installation.Components) > 0 {
		fmt.Fprintf(out, "  %s\n", strings.Join(result.Installation.Components, ", "))
	}
	return nil
}
