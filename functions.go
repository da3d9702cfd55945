package pythainer

import (
	"context"
	"os"
	"strings"

	"github.com/pkg/errors"

	"github.com/apaolillo/pythainer/config"
	"github.com/apaolillo/pythainer/infra/builder"
	"github.com/apaolillo/pythainer/infra/catalog"
	"github.com/apaolillo/pythainer/infra/engine"
	"github.com/apaolillo/pythainer/infra/runner"
	"github.com/apaolillo/pythainer/infra/types"
	"github.com/apaolillo/pythainer/infra/workspace"
)

// Build builds the user image combined with the selected builder presets.
func Build(
	ctx context.Context,
	build config.Build,
	docker *engine.Docker,
	ws *workspace.Workspace,
	cat *catalog.Catalog,
) (types.ImageRef, error) {
	b, err := compose(build, docker, ws, cat)
	if err != nil {
		return types.ImageRef{}, err
	}
	if err := b.Build(ctx); err != nil {
		return types.ImageRef{}, err
	}
	return types.ParseImageRef(b.Tag())
}

// Run starts a container from the image, combining the selected runner presets.
func Run(ctx context.Context, run config.Run, docker *engine.Docker, cat *catalog.Catalog) error {
	ref, err := types.ParseImageRef(run.Image)
	if err != nil {
		return err
	}

	r, err := mergeRunners(run.Runners, cat)
	if err != nil {
		return err
	}

	name := run.Name
	if name == "" {
		name = strings.ReplaceAll(ref.Name, "/", "-")
	}

	concrete := r.Concretize(runner.ContainerConfig{
		Image:       ref.String(),
		Name:        name,
		Network:     run.Network,
		Workdir:     run.Workdir,
		Root:        run.Root,
		TTY:         true,
		Interactive: true,
	})
	return concrete.Run(ctx, docker)
}

// Script generates a shell script rebuilding the image and starting the container,
// equivalent to what Build and Run execute directly.
func Script(
	script config.Script,
	build config.Build,
	run config.Run,
	docker *engine.Docker,
	ws *workspace.Workspace,
	cat *catalog.Catalog,
) (string, error) {
	b, err := compose(build, docker, ws, cat)
	if err != nil {
		return "", err
	}

	r, err := mergeRunners(run.Runners, cat)
	if err != nil {
		return "", err
	}

	text := b.BuildScript() + "\n" + b.Runner(r, run.Workdir).Script()
	if script.Output != "" {
		if err := os.WriteFile(script.Output, []byte(text), 0o700); err != nil {
			return "", errors.WithStack(err)
		}
	}
	return text, nil
}

// List lists builder and runner presets available in the catalog.
func List(cat *catalog.Catalog) []catalog.Info {
	return cat.List()
}

func compose(
	build config.Build,
	docker *engine.Docker,
	ws *workspace.Workspace,
	cat *catalog.Catalog,
) (*builder.Builder, error) {
	base := catalog.UserBuilder(catalog.UserBuilderConfig{
		Tag:         build.Image,
		BaseImage:   build.BaseImage,
		UserName:    build.UserName,
		Packages:    build.Packages,
		UseBuildKit: build.UseBuildKit,
	}, docker, ws)

	partials := make([]*builder.Partial, 0, len(build.Builders))
	for _, name := range build.Builders {
		fn := cat.Builder(name)
		if fn == nil {
			return nil, errors.Errorf("unknown builder preset: %s", name)
		}
		partials = append(partials, fn())
	}
	return base.With(partials...)
}

func mergeRunners(names []string, cat *catalog.Catalog) (runner.Runner, error) {
	r := runner.Runner{}
	for _, name := range names {
		fn := cat.Runner(name)
		if fn == nil {
			return runner.Runner{}, errors.Errorf("unknown runner preset: %s", name)
		}
		r = runner.Merge(r, fn())
	}
	return r, nil
}
