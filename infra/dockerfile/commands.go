package dockerfile

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pkg/errors"
)

// PackageManagerApt installs packages with apt-get.
const PackageManagerApt = "apt"

// RenderConfig parameterizes rendering of commands into Dockerfile text.
type RenderConfig struct {
	// PackageManager is the package manager available in the base image.
	PackageManager string
}

// Command is implemented by instructions rendered into a Dockerfile.
type Command interface {
	Render(config RenderConfig) (string, error)
}

// Str returns command rendering the given line verbatim.
func Str(line string) Command {
	return &strCommand{
		line: line,
	}
}

// Copy returns handler for COPY instruction.
func Copy(sources []string, destination string) *CopyCommand {
	return &CopyCommand{
		Sources:     sources,
		Destination: destination,
	}
}

// AddPackages returns command installing packages with the configured package manager.
func AddPackages(packages ...string) Command {
	return &addPackagesCommand{
		packages: packages,
	}
}

type strCommand struct {
	line string
}

func (cmd *strCommand) Render(config RenderConfig) (string, error) {
	return cmd.line, nil
}

// CopyCommand renders a COPY instruction referencing context-relative sources.
type CopyCommand struct {
	Sources     []string
	Destination string
	Chown       string
	Chmod       string
}

// Render renders the COPY instruction.
func (cmd *CopyCommand) Render(config RenderConfig) (string, error) {
	if len(cmd.Sources) == 0 {
		return "", errors.New("COPY requires at least one source")
	}
	if cmd.Destination == "" {
		return "", errors.New("COPY requires a destination")
	}

	parts := []string{"COPY"}
	if cmd.Chown != "" {
		parts = append(parts, fmt.Sprintf("--chown=%s", cmd.Chown))
	}
	if cmd.Chmod != "" {
		parts = append(parts, fmt.Sprintf("--chmod=%s", cmd.Chmod))
	}
	parts = append(parts, cmd.Sources...)
	parts = append(parts, cmd.Destination)
	return strings.Join(parts, " "), nil
}

type addPackagesCommand struct {
	packages []string
}

func (cmd *addPackagesCommand) Render(config RenderConfig) (string, error) {
	switch config.PackageManager {
	case PackageManagerApt:
		return renderAptInstall(cmd.packages), nil
	default:
		return "", errors.Errorf("unsupported package manager: '%s'", config.PackageManager)
	}
}

func renderAptInstall(packages []string) string {
	sorted := make([]string, len(packages))
	copy(sorted, packages)
	sort.Strings(sorted)

	var sb strings.Builder
	sb.WriteString("RUN apt-get update && apt-get install -y --no-install-recommends \\\n")
	for _, pkg := range sorted {
		sb.WriteString(fmt.Sprintf("        %s \\\n", pkg))
	}
	sb.WriteString("    && rm -rf /var/lib/apt/lists/*")
	return sb.String()
}
