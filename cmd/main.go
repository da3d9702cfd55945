package main

import (
	"context"

	"github.com/outofforest/ioc/v2"
	"github.com/outofforest/run"
	"github.com/spf13/cobra"

	"github.com/apaolillo/pythainer/commands"
	"github.com/apaolillo/pythainer/infra/catalog"
	"github.com/apaolillo/pythainer/infra/engine"
	"github.com/apaolillo/pythainer/infra/format"
	"github.com/apaolillo/pythainer/infra/workspace"
)

func iocBuilder(c *ioc.Container) {
	c.Singleton(commands.NewCmdFactory)
	c.Singleton(engine.NewDocker)
	c.Singleton(catalog.NewDefault)
	c.Singleton(workspace.Resolve)

	c.Singleton(format.Resolve)
	c.SingletonNamed("table", format.NewTableFormatter)
	c.SingletonNamed("json", format.NewJSONFormatter)

	c.Singleton(commands.NewRootCommand)
	c.SingletonNamed("build", commands.NewBuildCommand)
	c.SingletonNamed("run", commands.NewRunCommand)
	c.SingletonNamed("script", commands.NewScriptCommand)
	c.SingletonNamed("list", commands.NewListCommand)
}

func main() {
	run.Tool("pythainer", iocBuilder, func(ctx context.Context, rootCmd *cobra.Command) error {
		return rootCmd.Execute()
	})
}
