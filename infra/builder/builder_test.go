package builder

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/apaolillo/pythainer/infra/buildcontext"
	"github.com/apaolillo/pythainer/infra/dockerfile"
	"github.com/apaolillo/pythainer/infra/engine"
	"github.com/apaolillo/pythainer/infra/workspace"
)

func newTestBuilder(t *testing.T, tag string) *Builder {
	t.Helper()
	return New(Config{
		Tag:            tag,
		PackageManager: dockerfile.PackageManagerApt,
		UseBuildKit:    true,
	}, engine.NewDocker(), workspace.New(t.TempDir()))
}

func TestDockerfileRendering(t *testing.T) {
	b := newTestBuilder(t, "image:latest")
	b.From("ubuntu:22.04")
	b.Space()
	b.Env("DEBIAN_FRONTEND", "noninteractive")
	b.Arg("UID", "")
	b.Arg("VERSION", "1.0")
	b.Run("echo hello")
	b.Workdir("/workspace")
	b.User("")
	b.Entrypoint([]string{"/bin/bash", "-l"})

	content, err := b.Dockerfile()
	require.NoError(t, err)
	require.Equal(t,
		"FROM ubuntu:22.04\n"+
			"\n"+
			"ENV DEBIAN_FRONTEND=noninteractive\n"+
			"ARG UID\n"+
			"ARG VERSION=1.0\n"+
			"RUN echo hello\n"+
			"WORKDIR /workspace\n"+
			"USER ${USER_NAME}\n"+
			"ENTRYPOINT [\"/bin/bash\", \"-l\"]\n",
		content)
}

func TestDockerfileRenderingIsDeterministic(t *testing.T) {
	b := newTestBuilder(t, "image:latest")
	b.From("ubuntu:22.04")
	b.AddPackages("wget", "curl")

	first, err := b.Dockerfile()
	require.NoError(t, err)
	second, err := b.Dockerfile()
	require.NoError(t, err)
	require.Equal(t, first, second)
}

func TestRunMultipleChainsCommands(t *testing.T) {
	b := NewPartial()
	b.RunMultiple([]string{"apt-get update", "apt-get install -y curl"})

	content, err := dockerfile.Render(b.Commands(), dockerfile.RenderConfig{})
	require.NoError(t, err)
	require.Equal(t, "RUN apt-get update && \\\n    apt-get install -y curl\n", content)
}

func TestCopyFromHostRegistersContextEntry(t *testing.T) {
	b := NewPartial()

	ctxPath, err := b.CopyFromHost("/host/dir/file.txt", "/opt/file.txt")
	require.NoError(t, err)
	require.Equal(t, "file.txt", ctxPath)

	content, err := dockerfile.Render(b.Commands(), dockerfile.RenderConfig{})
	require.NoError(t, err)
	require.Equal(t, "COPY file.txt /opt/file.txt\n", content)

	require.Equal(t, []buildcontext.Entry{
		{ContextPath: "file.txt", HostPath: "/host/dir/file.txt"},
	}, b.Context().Entries())
}

func TestCopyFromHostChown(t *testing.T) {
	b := NewPartial()

	_, err := b.CopyFromHostChown("/host/file.txt", "/opt/file.txt", "${USER_NAME}")
	require.NoError(t, err)

	content, err := dockerfile.Render(b.Commands(), dockerfile.RenderConfig{})
	require.NoError(t, err)
	require.Equal(t, "COPY --chown=${USER_NAME} file.txt /opt/file.txt\n", content)
}

func TestCopyFromHostReportsBasenameCollision(t *testing.T) {
	b := NewPartial()

	_, err := b.CopyFromHost("/a/file.txt", "/opt/a.txt")
	require.NoError(t, err)
	_, err = b.CopyFromHost("/b/file.txt", "/opt/b.txt")
	require.ErrorIs(t, err, buildcontext.ErrAmbiguousMapping)
}

func TestContextRootDisambiguatesCollidingBasenames(t *testing.T) {
	b := NewPartialWithContextRoot("/project")

	ctxPathA, err := b.CopyFromHost("/project/a/file.txt", "/opt/a.txt")
	require.NoError(t, err)
	ctxPathB, err := b.CopyFromHost("/project/b/file.txt", "/opt/b.txt")
	require.NoError(t, err)

	require.Equal(t, filepath.Join("a", "file.txt"), ctxPathA)
	require.Equal(t, filepath.Join("b", "file.txt"), ctxPathB)
}

func TestMergeConcatenatesCommandsAndContexts(t *testing.T) {
	a := NewPartial()
	a.Run("first")
	_, err := a.CopyFromHost("/host/one.txt", "/opt/one.txt")
	require.NoError(t, err)

	b := NewPartial()
	b.Run("second")
	_, err = b.CopyFromHost("/host/two.txt", "/opt/two.txt")
	require.NoError(t, err)

	merged, err := Merge(a, b)
	require.NoError(t, err)

	content, err := dockerfile.Render(merged.Commands(), dockerfile.RenderConfig{})
	require.NoError(t, err)
	require.Equal(t, "RUN first\nCOPY one.txt /opt/one.txt\nRUN second\nCOPY two.txt /opt/two.txt\n", content)
	require.Len(t, merged.Context().Entries(), 2)
}

func TestMergeFailsOnContextConflict(t *testing.T) {
	a := NewPartial()
	_, err := a.CopyFromHost("/a/file.txt", "/opt/file.txt")
	require.NoError(t, err)

	b := NewPartial()
	_, err = b.CopyFromHost("/b/file.txt", "/opt/file.txt")
	require.NoError(t, err)

	_, err = Merge(a, b)
	require.ErrorIs(t, err, buildcontext.ErrMergeConflict)

	// Operands stay usable after a failed merge.
	require.Len(t, a.Context().Entries(), 1)
	require.Len(t, b.Context().Entries(), 1)
}

func TestWithCombinesBuilderAndPartials(t *testing.T) {
	b := newTestBuilder(t, "image:latest")
	b.From("ubuntu:22.04")

	p := NewPartial()
	p.Run("echo extra")

	combined, err := b.With(p)
	require.NoError(t, err)
	require.Equal(t, "image:latest", combined.Tag())

	content, err := combined.Dockerfile()
	require.NoError(t, err)
	require.Equal(t, "FROM ubuntu:22.04\nRUN echo extra\n", content)

	// Original builder is left untouched.
	content, err = b.Dockerfile()
	require.NoError(t, err)
	require.Equal(t, "FROM ubuntu:22.04\n", content)
}

func TestBuildRejectsInvalidTag(t *testing.T) {
	b := newTestBuilder(t, "Invalid Tag")
	b.From("ubuntu:22.04")
	require.Error(t, b.Build(context.Background()))
}

func TestBuildScript(t *testing.T) {
	b := newTestBuilder(t, "image:latest")
	script := b.BuildScript()

	require.Equal(t,
		"#!/bin/sh\n"+
			"set -ex\n"+
			"\n"+
			"export BUILDKIT_PROGRESS=plain\n"+
			"\n"+
			"docker build \\\n"+
			"    --file \\\n"+
			"    Dockerfile \\\n"+
			"    --build-arg=UID=$(id -u) \\\n"+
			"    --build-arg=GID=$(id -g) \\\n"+
			"    --tag=image:latest \\\n"+
			"    .\n",
		script)
}

func TestUbuntuBuilder(t *testing.T) {
	b := NewUbuntu("image:latest", "ubuntu:22.04", engine.NewDocker(), workspace.New(t.TempDir()))
	SetLocales(b.Partial)
	CreateUser(b.Partial, "user")

	content, err := b.Dockerfile()
	require.NoError(t, err)

	require.True(t, strings.HasPrefix(content, "FROM ubuntu:22.04\n"))
	require.Contains(t, content, "ENV LC_ALL=en_US.UTF-8")
	require.Contains(t, content, "ARG USER_NAME=user")
	require.Contains(t, content, "RUN groupadd -g ${GID} ${USER_NAME}")
	require.Contains(t, content, "xargs userdel --remove")
	require.Contains(t, content, "/etc/sudoers.d/10-docker")
}

func TestUnminimize(t *testing.T) {
	p := NewPartial()
	Unminimize(p)

	content, err := dockerfile.Render(p.Commands(), dockerfile.RenderConfig{})
	require.NoError(t, err)
	require.Contains(t, content, "apt-cache show unminimize")
	require.Contains(t, content, "if which unminimize; then yes | unminimize; fi")
}
