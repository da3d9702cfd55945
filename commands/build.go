package commands

import (
	"context"

	"github.com/outofforest/ioc/v2"
	"github.com/outofforest/logger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/apaolillo/pythainer"
	"github.com/apaolillo/pythainer/config"
	"github.com/apaolillo/pythainer/infra/types"
)

// NewBuildCommand creates new build command.
func NewBuildCommand(cmdF *CmdFactory) *cobra.Command {
	var loggingF *config.LoggingFactory
	var workspaceF *config.WorkspaceFactory
	buildF := &config.BuildFactory{}

	cmd := &cobra.Command{
		Short: "Builds user image combined with builder presets",
		Args:  cobra.ExactArgs(1),
		Use:   "build [flags] image[:tag]",
		RunE: cmdF.Cmd(func(c *ioc.Container, args config.Args) {
			buildF.Image = args[0]
			c.Singleton(loggingF.Config)
			c.Singleton(workspaceF.Config)
			c.Singleton(buildF.Config)
		}, func(ctx context.Context, c *ioc.Container) error {
			var ref types.ImageRef
			var err error
			c.Call(pythainer.Build, &ref, &err)
			if err != nil {
				return err
			}
			logger.Get(ctx).Info("Image built", zap.String("image", ref.String()))
			return nil
		}),
	}
	loggingF = cmdF.AddLoggingFlags(cmd)
	workspaceF = cmdF.AddWorkspaceFlags(cmd)
	cmd.Flags().StringVar(&buildF.BaseImage, "base-image", "ubuntu:22.04", "Base image the user image is built from")
	cmd.Flags().StringVar(&buildF.UserName, "user", "user", "Name of the non-root user created inside the image")
	cmd.Flags().StringSliceVar(&buildF.Builders, "builder", []string{}, "Builder presets merged into the image")
	cmd.Flags().StringSliceVar(&buildF.Packages, "package", []string{}, "Additional packages installed in the image")
	cmd.Flags().BoolVar(&buildF.NoBuildKit, "no-buildkit", false, "If set, the legacy build backend is used instead of BuildKit")
	return cmd
}
