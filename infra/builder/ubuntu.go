package builder

import (
	"fmt"

	"github.com/apaolillo/pythainer/infra/dockerfile"
	"github.com/apaolillo/pythainer/infra/engine"
	"github.com/apaolillo/pythainer/infra/workspace"
)

// NewUbuntu creates a full builder based on an Ubuntu image, with apt as the package
// manager and BuildKit enabled.
func NewUbuntu(tag, baseImage string, docker *engine.Docker, ws *workspace.Workspace) *Builder {
	b := New(Config{
		Tag:            tag,
		PackageManager: dockerfile.PackageManagerApt,
		UseBuildKit:    true,
	}, docker, ws)
	b.From(baseImage)
	return b
}

// SetLocales sets up UTF-8 locale environment variables.
func SetLocales(b *Partial) {
	b.Env("LC_ALL", "en_US.UTF-8")
	b.Env("LANG", "en_US.UTF-8")
	b.Env("LANGUAGE", "en_US.UTF-8")
}

// Unminimize restores a minimized Ubuntu image to its full version. The unminimize
// package is only installed when the base image provides it.
func Unminimize(b *Partial) {
	b.RunMultiple([]string{
		"apt-get update",
		"((apt-cache show unminimize && apt-get install -y unminimize) || true)",
		"rm -rf /var/lib/apt/lists/*",
	})
	b.Run("if which unminimize; then yes | unminimize; fi")
}

// CreateUser creates a non-root sudo-enabled user whose UID and GID are taken from
// build arguments, removing any user or group already claiming those IDs.
func CreateUser(b *Partial, username string) {
	b.Arg("USER_NAME", username)
	b.Arg("UID", "")
	b.Arg("GID", "")
	removeGroupIfGIDExists(b, "${GID}")
	removeUserIfUIDExists(b, "${UID}", "${GID}")
	b.Run("groupadd -g ${GID} ${USER_NAME}")
	b.Run(`adduser --disabled-password --uid $UID --gid $GID --gecos "" ${USER_NAME}`)
	b.Run("adduser ${USER_NAME} sudo")
	b.Run("echo '%sudo ALL=(ALL) NOPASSWD:ALL' >> /etc/sudoers")
	b.Run(`echo "${USER_NAME} ALL=(ALL) NOPASSWD:ALL" > /etc/sudoers.d/10-docker`)
}

func removeGroupIfGIDExists(b *Partial, gid string) {
	b.Desc(fmt.Sprintf("Remove group with gid=%s if it already exists.", gid))
	b.Run(fmt.Sprintf("grep :%[1]s: /etc/group && \\\n"+
		"    (grep :%[1]s: /etc/group | \\\n"+
		"     cut -d ':' -f 1 | \\\n"+
		"     xargs groupdel) || \\\n"+
		"    true", gid))
}

func removeUserIfUIDExists(b *Partial, uid, gid string) {
	b.Desc(fmt.Sprintf("Remove user with uid:gid=%s:%s if it already exists.", uid, gid))
	b.Run(fmt.Sprintf("grep :%[1]s:%[2]s: /etc/passwd && \\\n"+
		"    (grep :%[1]s:%[2]s: /etc/passwd | \\\n"+
		"     cut -d ':' -f 1 | \\\n"+
		"     xargs userdel --remove) || \\\n"+
		"    true", uid, gid))
}
