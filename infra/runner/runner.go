package runner

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/apaolillo/pythainer/infra/engine"
)

// Runner is an abstract docker run configuration. It does not reference an image yet,
// so independently authored configurations can be merged before being concretized.
type Runner struct {
	// EnvVars are passed to the container environment.
	EnvVars map[string]string

	// Volumes maps host paths to container paths.
	Volumes map[string]string

	// Devices are host device paths made available inside the container.
	Devices []string

	// Options are additional raw docker run options.
	Options []string
}

// Merge combines two runner configurations into a new one. On conflicting keys the
// value of b wins, slices are concatenated.
func Merge(a, b Runner) Runner {
	merged := Runner{
		EnvVars: map[string]string{},
		Volumes: map[string]string{},
		Devices: append(append([]string{}, a.Devices...), b.Devices...),
		Options: append(append([]string{}, a.Options...), b.Options...),
	}
	for k, v := range a.EnvVars {
		merged.EnvVars[k] = v
	}
	for k, v := range b.EnvVars {
		merged.EnvVars[k] = v
	}
	for k, v := range a.Volumes {
		merged.Volumes[k] = v
	}
	for k, v := range b.Volumes {
		merged.Volumes[k] = v
	}
	return merged
}

// ContainerConfig binds a runner configuration to a concrete image and container.
type ContainerConfig struct {
	Image       string
	Name        string
	Network     string
	Workdir     string
	Root        bool
	TTY         bool
	Interactive bool
}

// Concretize binds the runner configuration to an image, making it runnable.
func (r Runner) Concretize(config ContainerConfig) *Concrete {
	return &Concrete{
		runner: r,
		config: config,
	}
}

// Concrete is a runnable docker run invocation.
type Concrete struct {
	runner Runner
	config ContainerConfig
}

// Command returns the docker run command line for the configuration.
func (c *Concrete) Command() []string {
	command := []string{"docker", "run", "--rm"}
	if c.config.TTY {
		command = append(command, "--tty")
	}
	if c.config.Interactive {
		command = append(command, "--interactive")
	}
	for _, k := range sortedKeys(c.runner.EnvVars) {
		command = append(command, fmt.Sprintf("--env=%s=%s", k, c.runner.EnvVars[k]))
	}
	for _, k := range sortedKeys(c.runner.Volumes) {
		command = append(command, fmt.Sprintf("--volume=%s:%s", k, c.runner.Volumes[k]))
	}
	for _, device := range c.runner.Devices {
		// Devices present in the configuration but absent on this host are skipped.
		if _, err := os.Stat(device); err != nil {
			continue
		}
		command = append(command, fmt.Sprintf("--device=%s", device))
	}
	command = append(command, c.runner.Options...)
	if c.config.Name != "" {
		command = append(command, fmt.Sprintf("--name=%s", c.config.Name))
	}
	hostname := c.config.Name
	if hostname == "" {
		hostname = c.config.Image
	}
	command = append(command, fmt.Sprintf("--hostname=%s", hostname))
	if c.config.Network != "" {
		command = append(command,
			fmt.Sprintf("--network=%s", c.config.Network),
			fmt.Sprintf("--add-host=%s:127.0.1.1", hostname),
		)
	}
	if c.config.Workdir != "" {
		command = append(command, fmt.Sprintf("--workdir=%s", c.config.Workdir))
	}
	if !c.config.Root {
		command = append(command, fmt.Sprintf("--user=%d:%d", os.Getuid(), os.Getgid()))
	}
	return append(command, c.config.Image)
}

// String returns the docker run command as a single string.
func (c *Concrete) String() string {
	return strings.Join(c.Command(), " ")
}

// Script renders a shell script executing the docker run command, forwarding script
// arguments to the container.
func (c *Concrete) Script() string {
	command := c.Command()

	lines := []string{
		"#!/bin/sh",
		"set -ex",
		"",
	}
	lines = append(lines, strings.Join(command[:2], " ")+" \\")
	for _, arg := range command[2:] {
		lines = append(lines, fmt.Sprintf("    %s \\", arg))
	}
	lines = append(lines, `    "$@"`)
	return strings.Join(lines, "\n") + "\n"
}

// Run executes the container via the engine.
func (c *Concrete) Run(ctx context.Context, docker *engine.Docker) error {
	return docker.Run(ctx, c.Command())
}

// Exec executes a command inside the running container.
func (c *Concrete) Exec(ctx context.Context, docker *engine.Docker, command ...string) error {
	name := c.config.Name
	if name == "" {
		name = c.config.Image
	}
	return docker.Exec(ctx, name, command...)
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
