package commands

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/outofforest/ioc/v2"
	"github.com/outofforest/logger"
	"github.com/spf13/cobra"

	"github.com/apaolillo/pythainer/config"
	"github.com/apaolillo/pythainer/infra/format"
)

// NewCmdFactory returns new CmdFactory.
func NewCmdFactory(c *ioc.Container) *CmdFactory {
	return &CmdFactory{
		c: c,
	}
}

// CmdFactory is a wrapper around cobra RunE.
type CmdFactory struct {
	c *ioc.Container
}

// Cmd returns function compatible with RunE.
func (f *CmdFactory) Cmd(setupFunc interface{}, cmdFunc interface{}) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		f.c.Singleton(func() config.Args {
			return args
		})
		if setupFunc != nil {
			f.c.Call(setupFunc)
		}
		f.c.Call(func(loggingConfig config.Logging) {
			if !loggingConfig.Verbose {
				logger.VerboseOff()
			}
		})
		var err error
		f.c.Call(cmdFunc, &err)
		return err
	}
}

// AddLoggingFlags adds logging flags to command.
func (f *CmdFactory) AddLoggingFlags(cmd *cobra.Command) *config.LoggingFactory {
	loggingF := &config.LoggingFactory{}

	cmd.Flags().BoolVarP(&loggingF.VerboseLogging, "verbose", "v", false,
		"Turns on verbose logging")

	return loggingF
}

// AddWorkspaceFlags adds workspace flags to command.
func (f *CmdFactory) AddWorkspaceFlags(cmd *cobra.Command) *config.WorkspaceFactory {
	workspaceF := &config.WorkspaceFactory{}

	cmd.Flags().StringVar(&workspaceF.Root, "workspace-root", filepath.Join(os.TempDir(), "pythainer"),
		"Location where build contexts are materialized")

	return workspaceF
}

// AddFormatFlags adds formatting flags to command.
func (f *CmdFactory) AddFormatFlags(cmd *cobra.Command) *config.FormatFactory {
	formatF := &config.FormatFactory{}

	cmd.Flags().StringVar(&formatF.Formatter, "format", "table",
		"Name of formatter used to format the output: "+strings.Join(f.c.Names((*format.Formatter)(nil)), " | "))

	return formatF
}
