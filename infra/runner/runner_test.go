package runner

import (
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMergeUnionsConfigurations(t *testing.T) {
	a := Runner{
		EnvVars: map[string]string{"A": "1", "SHARED": "a"},
		Volumes: map[string]string{"/host/a": "/container/a"},
		Devices: []string{"/dev/a"},
		Options: []string{"--opt-a"},
	}
	b := Runner{
		EnvVars: map[string]string{"B": "2", "SHARED": "b"},
		Volumes: map[string]string{"/host/b": "/container/b"},
		Devices: []string{"/dev/b"},
		Options: []string{"--opt-b"},
	}

	merged := Merge(a, b)
	require.Equal(t, map[string]string{"A": "1", "B": "2", "SHARED": "b"}, merged.EnvVars)
	require.Equal(t, map[string]string{"/host/a": "/container/a", "/host/b": "/container/b"}, merged.Volumes)
	require.Equal(t, []string{"/dev/a", "/dev/b"}, merged.Devices)
	require.Equal(t, []string{"--opt-a", "--opt-b"}, merged.Options)
}

func TestMergeDoesNotMutateOperands(t *testing.T) {
	a := Runner{EnvVars: map[string]string{"A": "1"}}
	b := Runner{EnvVars: map[string]string{"B": "2"}}

	Merge(a, b)
	require.Equal(t, map[string]string{"A": "1"}, a.EnvVars)
	require.Equal(t, map[string]string{"B": "2"}, b.EnvVars)
}

func TestCommandIsDeterministic(t *testing.T) {
	r := Runner{
		EnvVars: map[string]string{"B": "2", "A": "1"},
		Volumes: map[string]string{"/host/b": "/b", "/host/a": "/a"},
	}
	concrete := r.Concretize(ContainerConfig{
		Image:       "image",
		Name:        "container",
		TTY:         true,
		Interactive: true,
	})

	command := concrete.Command()
	require.Equal(t, []string{
		"docker", "run", "--rm",
		"--tty",
		"--interactive",
		"--env=A=1",
		"--env=B=2",
		"--volume=/host/a:/a",
		"--volume=/host/b:/b",
		"--name=container",
		"--hostname=container",
		fmt.Sprintf("--user=%d:%d", os.Getuid(), os.Getgid()),
		"image",
	}, command)
	require.Equal(t, command, concrete.Command())
}

func TestCommandSkipsMissingDevices(t *testing.T) {
	concrete := Runner{
		Devices: []string{"/dev/null", "/dev/does-not-exist-pythainer"},
	}.Concretize(ContainerConfig{Image: "image", Root: true})

	command := strings.Join(concrete.Command(), " ")
	require.Contains(t, command, "--device=/dev/null")
	require.NotContains(t, command, "does-not-exist-pythainer")
}

func TestCommandWithNetworkAndWorkdir(t *testing.T) {
	concrete := Runner{}.Concretize(ContainerConfig{
		Image:   "image",
		Network: "host",
		Workdir: "/workspace",
		Root:    true,
	})

	command := concrete.Command()
	require.Equal(t, []string{
		"docker", "run", "--rm",
		"--hostname=image",
		"--network=host",
		"--add-host=image:127.0.1.1",
		"--workdir=/workspace",
		"image",
	}, command)
}

func TestScript(t *testing.T) {
	script := Runner{}.Concretize(ContainerConfig{Image: "image", Root: true}).Script()

	require.True(t, strings.HasPrefix(script, "#!/bin/sh\nset -ex\n\ndocker run \\\n"))
	require.True(t, strings.HasSuffix(script, "    image \\\n    \"$@\"\n"))
}

func TestGPUPreset(t *testing.T) {
	r := GPU()
	require.Equal(t, []string{"--runtime=nvidia", "--gpus=all"}, r.Options)
}

func TestCameraPreset(t *testing.T) {
	r := Camera()
	require.Equal(t, []string{"/dev"}, r.Devices)
	require.Contains(t, r.Options, "--privileged")
}
