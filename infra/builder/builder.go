package builder

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/outofforest/logger"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/apaolillo/pythainer/infra/dockerfile"
	"github.com/apaolillo/pythainer/infra/engine"
	"github.com/apaolillo/pythainer/infra/runner"
	"github.com/apaolillo/pythainer/infra/types"
	"github.com/apaolillo/pythainer/infra/workspace"
)

// Config configures a full builder.
type Config struct {
	// Tag is assigned to the built image.
	Tag string

	// PackageManager is the package manager available in the base image.
	PackageManager string

	// UseBuildKit selects BuildKit as the build backend.
	UseBuildKit bool

	// ContextRoot, if set, makes copied host paths keep their layout relative to it
	// inside the build context.
	ContextRoot string
}

// New creates a full builder producing an image through the given engine.
func New(config Config, docker *engine.Docker, ws *workspace.Workspace) *Builder {
	partial := NewPartial()
	if config.ContextRoot != "" {
		partial = NewPartialWithContextRoot(config.ContextRoot)
	}
	return &Builder{
		Partial:        partial,
		tag:            config.Tag,
		packageManager: config.PackageManager,
		useBuildKit:    config.UseBuildKit,
		docker:         docker,
		workspace:      ws,
	}
}

// Builder records Dockerfile instructions and a build context, then builds the image by
// materializing both into a fresh workspace directory and invoking the engine.
type Builder struct {
	*Partial

	tag            string
	packageManager string
	useBuildKit    bool
	docker         *engine.Docker
	workspace      *workspace.Workspace
}

// Tag returns the tag assigned to the built image.
func (b *Builder) Tag() string {
	return b.tag
}

// With returns a new builder combining b with the given partial builders, in order.
// It fails if any build context merge conflicts.
func (b *Builder) With(others ...*Partial) (*Builder, error) {
	combined := b.Partial.Clone()
	for _, other := range others {
		merged, err := Merge(combined, other)
		if err != nil {
			return nil, err
		}
		combined = merged
	}
	return &Builder{
		Partial:        combined,
		tag:            b.tag,
		packageManager: b.packageManager,
		useBuildKit:    b.useBuildKit,
		docker:         b.docker,
		workspace:      b.workspace,
	}, nil
}

// Dockerfile renders the recorded instructions into Dockerfile content.
func (b *Builder) Dockerfile() (string, error) {
	return dockerfile.Render(b.commands, dockerfile.RenderConfig{PackageManager: b.packageManager})
}

// Build renders the Dockerfile, materializes the build context in a fresh workspace
// directory and invokes the engine build. The workspace directory is removed afterwards.
func (b *Builder) Build(ctx context.Context) (retErr error) {
	ref, err := types.ParseImageRef(b.tag)
	if err != nil {
		return err
	}

	content, err := b.Dockerfile()
	if err != nil {
		return err
	}

	dir, err := b.workspace.Acquire()
	if err != nil {
		return err
	}
	defer func() {
		if err := b.workspace.Release(dir); err != nil && retErr == nil {
			retErr = err
		}
	}()

	dockerfilePath := filepath.Join(dir, "Dockerfile")
	if err := os.WriteFile(dockerfilePath, []byte(content), 0o600); err != nil {
		return errors.WithStack(err)
	}
	if err := b.context.Materialize(ctx, dir); err != nil {
		return err
	}

	logger.Get(ctx).Info("Building image", zap.String("image", ref.String()), zap.String("contextDir", dir))
	return b.docker.Build(ctx, engine.BuildArgs{
		Dockerfile:  dockerfilePath,
		ContextDir:  dir,
		Tag:         b.tag,
		UID:         strconv.Itoa(os.Getuid()),
		GID:         strconv.Itoa(os.Getgid()),
		UseBuildKit: b.useBuildKit,
	})
}

// BuildScript renders a shell script reproducing the engine build, assuming the
// Dockerfile and the materialized context live in the working directory.
func (b *Builder) BuildScript() string {
	command := engine.BuildCommand(engine.BuildArgs{
		Dockerfile: "Dockerfile",
		ContextDir: ".",
		Tag:        b.tag,
		UID:        "$(id -u)",
		GID:        "$(id -g)",
	})

	lines := []string{
		"#!/bin/sh",
		"set -ex",
		"",
	}
	env := engine.BuildEnvironment(b.useBuildKit)
	for _, k := range sortedKeys(env) {
		lines = append(lines, fmt.Sprintf("export %s=%s", k, env[k]))
	}
	lines = append(lines, "")
	lines = append(lines, strings.Join(command[:2], " ")+" \\")
	for _, arg := range command[2 : len(command)-1] {
		lines = append(lines, fmt.Sprintf("    %s \\", arg))
	}
	lines = append(lines, fmt.Sprintf("    %s", command[len(command)-1]))
	return strings.Join(lines, "\n") + "\n"
}

// Runner returns a concrete runner for the image built by this builder.
func (b *Builder) Runner(r runner.Runner, workdir string) *runner.Concrete {
	name := b.tag
	if ref, err := types.ParseImageRef(b.tag); err == nil {
		name = strings.ReplaceAll(ref.Name, "/", "-")
	}
	return r.Concretize(runner.ContainerConfig{
		Image:       b.tag,
		Name:        name,
		Workdir:     workdir,
		TTY:         true,
		Interactive: true,
	})
}

// Engine returns the engine the builder builds through.
func (b *Builder) Engine() *engine.Docker {
	return b.docker
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
