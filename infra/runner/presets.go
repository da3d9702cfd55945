package runner

import (
	"os"
	"path/filepath"
)

// GUI returns runner configuration exposing the X11 display of the host.
// If mountInputEvents is set, input event devices are passed through as well.
func GUI(mountInputEvents bool) Runner {
	envVars := map[string]string{}
	volumes := map[string]string{}

	if display := os.Getenv("DISPLAY"); display != "" {
		envVars["DISPLAY"] = display
	}
	if info, err := os.Stat("/tmp/.X11-unix"); err == nil && info.IsDir() {
		volumes["/tmp/.X11-unix"] = "/tmp/.X11-unix"
	}
	if xauthority := os.Getenv("XAUTHORITY"); xauthority != "" {
		volumes[xauthority] = "/root/.Xauthority"
	}

	var devices []string
	if mountInputEvents {
		matches, _ := filepath.Glob("/dev/input/event*")
		devices = matches
	}

	return Runner{
		EnvVars: envVars,
		Volumes: volumes,
		Devices: devices,
	}
}

// Camera returns runner configuration with access to video and media devices.
func Camera() Runner {
	return Runner{
		Devices: []string{"/dev"},
		Options: []string{
			"--privileged",
			`--device-cgroup-rule=c 81:* rmw`,
			`--device-cgroup-rule=c 189:* rmw`,
		},
	}
}

// GPU returns runner configuration using the NVIDIA runtime.
func GPU() Runner {
	return Runner{
		Options: []string{
			"--runtime=nvidia",
			"--gpus=all",
		},
	}
}

// Personal returns runner configuration mounting personal vim and tmux dotfiles of the
// host user into the home directory of the container user.
func Personal(userName string) Runner {
	home, err := os.UserHomeDir()
	if err != nil {
		return Runner{}
	}

	return Runner{
		Volumes: map[string]string{
			filepath.Join(home, "git", "machines-config", "dotfiles", "vimrc"):     "/home/" + userName + "/.vimrc",
			filepath.Join(home, "git", "machines-config", "dotfiles", "tmux.conf"): "/home/" + userName + "/.tmux.conf",
		},
	}
}
