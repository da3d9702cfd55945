package commands

import (
	"github.com/outofforest/ioc/v2"
	"github.com/spf13/cobra"

	"github.com/apaolillo/pythainer"
	"github.com/apaolillo/pythainer/config"
)

// NewRunCommand creates new run command.
func NewRunCommand(cmdF *CmdFactory) *cobra.Command {
	var loggingF *config.LoggingFactory
	runF := &config.RunFactory{}

	cmd := &cobra.Command{
		Short: "Runs container from image combined with runner presets",
		Args:  cobra.ExactArgs(1),
		Use:   "run [flags] image[:tag]",
		RunE: cmdF.Cmd(func(c *ioc.Container, args config.Args) {
			runF.Image = args[0]
			c.Singleton(loggingF.Config)
			c.Singleton(runF.Config)
		}, func(c *ioc.Container) error {
			var err error
			c.Call(pythainer.Run, &err)
			return err
		}),
	}
	loggingF = cmdF.AddLoggingFlags(cmd)
	cmd.Flags().StringVar(&runF.Name, "name", "", "Name assigned to the container, derived from image name if empty")
	cmd.Flags().StringSliceVar(&runF.Runners, "runner", []string{}, "Runner presets merged into the container configuration")
	cmd.Flags().StringVar(&runF.Workdir, "workdir", "", "Working directory inside the container")
	cmd.Flags().StringVar(&runF.Network, "network", "", "Docker network the container joins")
	cmd.Flags().BoolVar(&runF.Root, "root", false, "If set, the container starts as root instead of the host user")
	return cmd
}
