package engine

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"sort"

	"github.com/outofforest/libexec"
	"github.com/outofforest/logger"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// NewDocker returns engine shelling out to the docker binary found in PATH.
func NewDocker() *Docker {
	return &Docker{
		binary: "docker",
	}
}

// Docker invokes the external docker binary.
type Docker struct {
	binary string
}

// BuildArgs configure a docker build invocation.
type BuildArgs struct {
	// Dockerfile is the path of the Dockerfile to build.
	Dockerfile string

	// ContextDir is the materialized build context passed to the engine.
	ContextDir string

	// Tag is assigned to the built image.
	Tag string

	// UID and GID are passed as build arguments if set.
	UID string
	GID string

	// UseBuildKit selects BuildKit as the build backend.
	UseBuildKit bool
}

// BuildCommand returns the docker build command line for args.
func BuildCommand(args BuildArgs) []string {
	command := []string{"docker", "build", "--file", args.Dockerfile}
	if args.UID != "" {
		command = append(command, fmt.Sprintf("--build-arg=UID=%s", args.UID))
	}
	if args.GID != "" {
		command = append(command, fmt.Sprintf("--build-arg=GID=%s", args.GID))
	}
	command = append(command, fmt.Sprintf("--tag=%s", args.Tag), args.ContextDir)
	return command
}

// BuildEnvironment returns environment variables selecting the build backend.
func BuildEnvironment(useBuildKit bool) map[string]string {
	if useBuildKit {
		return map[string]string{"BUILDKIT_PROGRESS": "plain"}
	}
	return map[string]string{"DOCKER_BUILDKIT": "0"}
}

// Build builds an image from a Dockerfile and a materialized build context.
func (d *Docker) Build(ctx context.Context, args BuildArgs) error {
	cmd, err := d.command(ctx, BuildCommand(args))
	if err != nil {
		return err
	}
	cmd.Dir = args.ContextDir
	cmd.Env = append(os.Environ(), envPairs(BuildEnvironment(args.UseBuildKit))...)
	return errors.WithStack(libexec.Exec(ctx, cmd))
}

// Run executes a docker run command line, attached to the terminal of the caller.
func (d *Docker) Run(ctx context.Context, command []string) error {
	cmd, err := d.command(ctx, command)
	if err != nil {
		return err
	}
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return errors.WithStack(libexec.Exec(ctx, cmd))
}

// Exec executes command inside a running container.
func (d *Docker) Exec(ctx context.Context, containerName string, command ...string) error {
	argv := append([]string{"docker", "exec", "-ti", containerName}, command...)
	cmd, err := d.command(ctx, argv)
	if err != nil {
		return err
	}
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return errors.WithStack(libexec.Exec(ctx, cmd))
}

func (d *Docker) command(ctx context.Context, argv []string) (*exec.Cmd, error) {
	path, err := exec.LookPath(d.binary)
	if err != nil {
		return nil, errors.Wrapf(err, "%s binary not found", d.binary)
	}
	logger.Get(ctx).Info("Executing engine command", zap.Strings("command", argv))
	return exec.Command(path, argv[1:]...), nil
}

func envPairs(env map[string]string) []string {
	pairs := make([]string, 0, len(env))
	for k, v := range env {
		pairs = append(pairs, fmt.Sprintf("%s=%s", k, v))
	}
	sort.Strings(pairs)
	return pairs
}
