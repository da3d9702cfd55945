package builder

import (
	"fmt"
	"strings"

	"github.com/apaolillo/pythainer/infra/buildcontext"
	"github.com/apaolillo/pythainer/infra/dockerfile"
)

// NewPartial creates an empty partial builder. Host paths copied into the image are
// mapped to their basename inside the build context.
func NewPartial() *Partial {
	return &Partial{
		context: buildcontext.New(),
	}
}

// NewPartialWithContextRoot creates an empty partial builder whose copied host paths
// keep their layout relative to root inside the build context.
func NewPartialWithContextRoot(root string) *Partial {
	return &Partial{
		context: buildcontext.NewWithRoot(root),
	}
}

// Partial is a composable fragment of Dockerfile instructions together with the build
// context entries those instructions reference. Partials are combined with Merge before
// a full builder turns them into an image.
type Partial struct {
	commands []dockerfile.Command
	context  *buildcontext.Context
}

// Commands returns the recorded Dockerfile commands.
func (b *Partial) Commands() []dockerfile.Command {
	return append([]dockerfile.Command{}, b.commands...)
}

// Context returns the build context owned by the builder.
func (b *Partial) Context() *buildcontext.Context {
	return b.context
}

// Clone returns a deep copy of the partial builder.
func (b *Partial) Clone() *Partial {
	return &Partial{
		commands: append([]dockerfile.Command{}, b.commands...),
		context:  b.context.Clone(),
	}
}

// Space adds an empty line to the Dockerfile.
func (b *Partial) Space() {
	b.commands = append(b.commands, dockerfile.Str(""))
}

// Desc adds a comment line to the Dockerfile.
func (b *Partial) Desc(text string) {
	b.commands = append(b.commands, dockerfile.Str("# "+text))
}

// From sets the base image.
func (b *Partial) From(image string) {
	b.commands = append(b.commands, dockerfile.Str("FROM "+image))
}

// Arg adds an ARG instruction. An empty value declares the argument unassigned.
func (b *Partial) Arg(name, value string) {
	if value == "" {
		b.commands = append(b.commands, dockerfile.Str("ARG "+name))
		return
	}
	b.commands = append(b.commands, dockerfile.Str(fmt.Sprintf("ARG %s=%s", name, value)))
}

// Env sets an environment variable.
func (b *Partial) Env(name, value string) {
	b.commands = append(b.commands, dockerfile.Str(fmt.Sprintf("ENV %s=%s", name, value)))
}

// Run adds a RUN instruction.
func (b *Partial) Run(command string) {
	b.commands = append(b.commands, dockerfile.Str("RUN "+command))
}

// RunMultiple adds a single RUN instruction chaining all commands.
func (b *Partial) RunMultiple(commands []string) {
	b.Run(strings.Join(commands, " && \\\n    "))
}

// Entrypoint sets the entrypoint of the image.
func (b *Partial) Entrypoint(command []string) {
	quoted := make([]string, 0, len(command))
	for _, c := range command {
		quoted = append(quoted, fmt.Sprintf("%q", c))
	}
	b.commands = append(b.commands, dockerfile.Str(fmt.Sprintf("ENTRYPOINT [%s]", strings.Join(quoted, ", "))))
}

// User switches the user for subsequent instructions. An empty name refers to the user
// created with CreateUser.
func (b *Partial) User(name string) {
	if name == "" {
		name = "${USER_NAME}"
	}
	b.commands = append(b.commands, dockerfile.Str("USER "+name))
}

// Root switches to the root user for subsequent instructions.
func (b *Partial) Root() {
	b.User("root")
}

// Workdir sets the working directory for subsequent instructions.
func (b *Partial) Workdir(path string) {
	b.commands = append(b.commands, dockerfile.Str("WORKDIR "+path))
}

// AddPackages installs packages with the package manager configured at build time.
func (b *Partial) AddPackages(packages ...string) {
	b.commands = append(b.commands, dockerfile.AddPackages(packages...))
}

// Copy adds a COPY instruction referencing an already registered context path.
func (b *Partial) Copy(source, destination string) {
	b.commands = append(b.commands, dockerfile.Copy([]string{source}, destination))
}

// CopyFromHost registers a host file or directory in the build context and adds the
// COPY instruction staging it inside the image. The returned context path is where the
// entry will live inside the build context.
func (b *Partial) CopyFromHost(hostPath, destination string) (string, error) {
	return b.copyFromHost(hostPath, destination, "")
}

// CopyFromHostChown is CopyFromHost with an ownership assigned to the copied files.
func (b *Partial) CopyFromHostChown(hostPath, destination, chown string) (string, error) {
	return b.copyFromHost(hostPath, destination, chown)
}

func (b *Partial) copyFromHost(hostPath, destination, chown string) (string, error) {
	ctxPath, err := b.context.Add(hostPath)
	if err != nil {
		return "", err
	}
	cmd := dockerfile.Copy([]string{ctxPath}, destination)
	cmd.Chown = chown
	b.commands = append(b.commands, cmd)
	return ctxPath, nil
}

// Merge combines two partial builders into a new one: commands of a are followed by
// commands of b, build contexts are unioned. The merge fails if the two contexts map
// the same context path to different host paths; neither operand is modified.
func Merge(a, b *Partial) (*Partial, error) {
	mergedContext, err := buildcontext.Merge(a.context, b.context)
	if err != nil {
		return nil, err
	}
	return &Partial{
		commands: append(append([]dockerfile.Command{}, a.commands...), b.commands...),
		context:  mergedContext,
	}, nil
}
