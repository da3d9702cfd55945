package catalog

import (
	"github.com/apaolillo/pythainer/infra/builder"
	"github.com/apaolillo/pythainer/infra/dockerfile"
	"github.com/apaolillo/pythainer/infra/engine"
	"github.com/apaolillo/pythainer/infra/workspace"
)

var defaultPackages = []string{
	"apt-transport-https",
	"build-essential",
	"ca-certificates",
	"curl",
	"file",
	"gdb",
	"git",
	"gnupg",
	"less",
	"libssl-dev",
	"locales",
	"locales-all",
	"lsb-release",
	"ninja-build",
	"software-properties-common",
	"sudo",
	"telnet",
	"tmux",
	"tree",
	"vim",
	"wget",
}

// UserBuilderConfig configures the base user builder.
type UserBuilderConfig struct {
	// Tag is assigned to the built image.
	Tag string

	// BaseImage is the Ubuntu image to start from.
	BaseImage string

	// UserName is the name of the non-root user created inside the image.
	UserName string

	// Packages are installed in addition to the default development tooling.
	Packages []string

	// UseBuildKit selects BuildKit as the build backend.
	UseBuildKit bool
}

// UserBuilder returns a full Ubuntu builder creating a non-root user and installing
// general development tooling. Preset partial builders from the catalog are meant to
// be merged on top of it.
func UserBuilder(config UserBuilderConfig, docker *engine.Docker, ws *workspace.Workspace) *builder.Builder {
	b := builder.New(builder.Config{
		Tag:            config.Tag,
		PackageManager: dockerfile.PackageManagerApt,
		UseBuildKit:    config.UseBuildKit,
	}, docker, ws)
	b.From(config.BaseImage)
	b.Space()

	b.Env("DEBIAN_FRONTEND", "noninteractive")
	b.Space()

	b.AddPackages("apt-utils")
	b.Space()

	b.Desc("General packages & tools")
	b.AddPackages(defaultPackages...)
	b.Space()

	b.Desc("Set locales")
	builder.SetLocales(b.Partial)
	b.Space()

	b.Desc("Set root password")
	b.Run("echo 'root:root' | chpasswd")
	b.Space()

	b.Desc("Unminimize image")
	builder.Unminimize(b.Partial)
	b.Space()

	if additional := additionalPackages(config.Packages); len(additional) > 0 {
		b.Desc("Required packages")
		b.AddPackages(additional...)
		b.Space()
	}

	b.Desc("Create a non-root user")
	builder.CreateUser(b.Partial, config.UserName)
	b.Space()

	b.Desc("Configure user environment")
	b.User("")
	b.Workdir("/home/${USER_NAME}")
	b.Run("touch ~/.sudo_as_admin_successful")
	b.Run("mkdir workspace")
	b.Workdir("/home/${USER_NAME}/workspace")
	b.Space()

	b.Run("mkdir -p " + LibDir)
	b.Space()

	return b
}

func additionalPackages(packages []string) []string {
	known := map[string]bool{}
	for _, p := range defaultPackages {
		known[p] = true
	}
	var additional []string
	for _, p := range packages {
		if !known[p] {
			additional = append(additional, p)
		}
	}
	return additional
}
