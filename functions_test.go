package pythainer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/apaolillo/pythainer/config"
	"github.com/apaolillo/pythainer/infra/catalog"
	"github.com/apaolillo/pythainer/infra/engine"
	"github.com/apaolillo/pythainer/infra/workspace"
)

func testBuildConfig() config.Build {
	return config.Build{
		Image:       "image:latest",
		BaseImage:   "ubuntu:22.04",
		UserName:    "user",
		UseBuildKit: true,
	}
}

func TestComposeCombinesBuilderPresets(t *testing.T) {
	cfg := testBuildConfig()
	cfg.Builders = []string{"opencl", "rust"}

	b, err := compose(cfg, engine.NewDocker(), workspace.New(t.TempDir()), catalog.NewDefault())
	require.NoError(t, err)

	content, err := b.Dockerfile()
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(content, "FROM ubuntu:22.04\n"))
	require.Contains(t, content, "ocl-icd-opencl-dev")
	require.Contains(t, content, "rustup component add clippy")
}

func TestComposeRejectsUnknownBuilderPreset(t *testing.T) {
	cfg := testBuildConfig()
	cfg.Builders = []string{"does-not-exist"}

	_, err := compose(cfg, engine.NewDocker(), workspace.New(t.TempDir()), catalog.NewDefault())
	require.Error(t, err)
	require.Contains(t, err.Error(), "does-not-exist")
}

func TestMergeRunnersRejectsUnknownPreset(t *testing.T) {
	_, err := mergeRunners([]string{"does-not-exist"}, catalog.NewDefault())
	require.Error(t, err)
}

func TestScriptCombinesBuildAndRun(t *testing.T) {
	script, err := Script(
		config.Script{},
		testBuildConfig(),
		config.Run{Image: "image:latest", Runners: []string{"gpu"}},
		engine.NewDocker(),
		workspace.New(t.TempDir()),
		catalog.NewDefault(),
	)
	require.NoError(t, err)

	require.Contains(t, script, "docker build \\")
	require.Contains(t, script, "--tag=image:latest")
	require.Contains(t, script, "docker run \\")
	require.Contains(t, script, "--gpus=all")
	require.Contains(t, script, `"$@"`)
}

func TestList(t *testing.T) {
	infos := List(catalog.NewDefault())
	require.NotEmpty(t, infos)

	names := make([]string, 0, len(infos))
	for _, info := range infos {
		names = append(names, info.Kind+"/"+info.Name)
	}
	require.Contains(t, names, "builder/cmake")
	require.Contains(t, names, "runner/gui")
}
