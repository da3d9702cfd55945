package recipes

import (
	"fmt"
	"path"
	"sort"
	"strings"

	"github.com/apaolillo/pythainer/infra/builder"
)

// CMakeBuildInstall downloads, builds and installs CMake from source.
func CMakeBuildInstall(b *builder.Partial, version, workdir string, cleanup bool) {
	versionStr := "${cmake_version}"
	pkgName := fmt.Sprintf("cmake-%s.tar.gz", versionStr)
	url := fmt.Sprintf("https://github.com/Kitware/CMake/releases/download/v%s/%s", versionStr, pkgName)

	cmakeDirName := "cmake-${cmake_version}"
	cmakePathName := path.Join(workdir, cmakeDirName)

	b.Workdir(workdir)
	b.Arg("cmake_version", version)
	b.Run("wget --quiet " + url)
	b.Run("tar -xf " + pkgName)
	b.Workdir(cmakeDirName)
	b.RunMultiple(append([]string{
		"./bootstrap --parallel=$(nproc)",
		"make -j $(nproc)",
		"sudo make install",
	}, cleanupCommands(cmakePathName, cleanup)...))
}

// ProjectGitClone clones a git repository at a given commit into workdir and returns
// the name of the repository directory.
func ProjectGitClone(b *builder.Partial, workdir, gitURL, commit string, submoduleInitRecursive bool) string {
	repoName := strings.TrimSuffix(path.Base(gitURL), ".git")

	b.Workdir(workdir)
	b.Run("git clone " + gitURL)
	b.Workdir(repoName)
	b.Run("git checkout " + commit)
	if submoduleInitRecursive {
		b.Run("git submodule update --init --recursive")
	}

	return repoName
}

// CMakeOptions configure a cmake configure-build-install cycle.
type CMakeOptions struct {
	// SourceDir is the cmake source directory relative to the build directory.
	SourceDir string

	// Generator is the build system generator, make is used if empty.
	Generator string

	// Defines are passed as -D options.
	Defines map[string]string

	// Install runs the install step.
	Install bool

	// Cleanup removes the project directory after installation.
	Cleanup bool
}

// ProjectCMakeBuildInstall configures, builds and optionally installs an already
// cloned project with cmake.
func ProjectCMakeBuildInstall(b *builder.Partial, workdir, repoName string, options CMakeOptions) {
	projectPath := path.Join(workdir, repoName)
	sourceDir := options.SourceDir
	if sourceDir == "" {
		sourceDir = ".."
	}

	var cmakeCmd string
	if options.Generator != "" || len(options.Defines) > 0 {
		var listOptions []string
		if options.Generator != "" {
			listOptions = append(listOptions, "-G "+options.Generator)
		}
		for _, k := range sortedKeys(options.Defines) {
			listOptions = append(listOptions, fmt.Sprintf("-D%s=%s", k, options.Defines[k]))
		}

		spaces := strings.Repeat(" ", 8)
		var sb strings.Builder
		sb.WriteString("cmake \\\n")
		for _, o := range listOptions {
			sb.WriteString(spaces + o + " \\\n")
		}
		sb.WriteString(spaces + sourceDir)
		cmakeCmd = sb.String()
	} else {
		cmakeCmd = "cmake " + sourceDir
	}

	generator := options.Generator
	if generator == "" {
		generator = "make"
	}
	generatorCommand := strings.ToLower(generator)

	commands := []string{
		"mkdir build",
		"cd build",
		cmakeCmd,
		fmt.Sprintf("%s -j $(nproc)", generatorCommand),
	}
	if options.Install {
		commands = append(commands, "sudo "+generatorCommand+" install")
	}
	commands = append(commands, cleanupCommands(projectPath, options.Cleanup)...)

	b.RunMultiple(commands)
}

// ProjectGitCMakeBuildInstall clones a project and builds it with cmake in one go.
func ProjectGitCMakeBuildInstall(
	b *builder.Partial,
	workdir, gitURL, commit string,
	submoduleInitRecursive bool,
	options CMakeOptions,
) string {
	repoName := ProjectGitClone(b, workdir, gitURL, commit, submoduleInitRecursive)
	ProjectCMakeBuildInstall(b, workdir, repoName, options)
	return repoName
}

func cleanupCommands(projectPath string, cleanup bool) []string {
	if !cleanup {
		return nil
	}

	usernameTag := "${USER_NAME}:${USER_NAME}"
	return []string{
		fmt.Sprintf("(rm -rf %s || true)", projectPath),
		fmt.Sprintf("(sudo chown -f --recursive %s %s || true)", usernameTag, projectPath),
		fmt.Sprintf("rm -rf %s", projectPath),
	}
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
