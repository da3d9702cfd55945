package commands

import (
	"fmt"

	"github.com/outofforest/ioc/v2"
	"github.com/spf13/cobra"

	"github.com/apaolillo/pythainer"
	"github.com/apaolillo/pythainer/config"
)

// NewScriptCommand creates new script command.
func NewScriptCommand(cmdF *CmdFactory) *cobra.Command {
	var loggingF *config.LoggingFactory
	var workspaceF *config.WorkspaceFactory
	buildF := &config.BuildFactory{}
	runF := &config.RunFactory{}
	scriptF := &config.ScriptFactory{}

	cmd := &cobra.Command{
		Short: "Generates shell script rebuilding and running the image",
		Args:  cobra.ExactArgs(1),
		Use:   "script [flags] image[:tag]",
		RunE: cmdF.Cmd(func(c *ioc.Container, args config.Args) {
			buildF.Image = args[0]
			runF.Image = args[0]
			c.Singleton(loggingF.Config)
			c.Singleton(workspaceF.Config)
			c.Singleton(buildF.Config)
			c.Singleton(runF.Config)
			c.Singleton(scriptF.Config)
		}, func(c *ioc.Container) error {
			var script string
			var err error
			c.Call(pythainer.Script, &script, &err)
			if err != nil {
				return err
			}
			if scriptF.Output == "" {
				fmt.Println(script)
			}
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
	cmd.Flags().StringSliceVar(&runF.Runners, "runner", []string{}, "Runner presets merged into the container configuration")
	cmd.Flags().StringVar(&runF.Workdir, "workdir", "", "Working directory inside the container")
	cmd.Flags().StringVar(&scriptF.Output, "output", "", "File the generated script is written to, stdout if empty")
	return cmd
}
