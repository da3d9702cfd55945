package commands

import (
	"fmt"

	"github.com/outofforest/ioc/v2"
	"github.com/spf13/cobra"

	"github.com/apaolillo/pythainer"
	"github.com/apaolillo/pythainer/config"
	"github.com/apaolillo/pythainer/infra/catalog"
	"github.com/apaolillo/pythainer/infra/format"
)

// NewListCommand returns new list command.
func NewListCommand(cmdF *CmdFactory) *cobra.Command {
	var loggingF *config.LoggingFactory
	var formatF *config.FormatFactory

	cmd := &cobra.Command{
		Short: "Lists builder and runner presets available in the catalog",
		Use:   "list",
		RunE: cmdF.Cmd(func(c *ioc.Container) {
			c.Singleton(loggingF.Config)
			c.Singleton(formatF.Config)
		}, func(c *ioc.Container, formatter format.Formatter) error {
			var presets []catalog.Info
			c.Call(pythainer.List, &presets)
			fmt.Println(formatter.Format(presets))
			return nil
		}),
	}
	loggingF = cmdF.AddLoggingFlags(cmd)
	formatF = cmdF.AddFormatFlags(cmd)
	return cmd
}
