package config

// RunFactory collects data for run config.
type RunFactory struct {
	// Image is the tag of the image to run
	Image string

	// Name is the name assigned to the container
	Name string

	// Runners is the list of runner presets merged into the container config
	Runners []string

	// Workdir is the working directory inside the container
	Workdir string

	// Network is the docker network the container joins
	Network string

	// Root starts the container as root instead of the host user
	Root bool
}

// Config creates run config.
func (f *RunFactory) Config() Run {
	return Run{
		Image:   f.Image,
		Name:    f.Name,
		Runners: f.Runners,
		Workdir: f.Workdir,
		Network: f.Network,
		Root:    f.Root,
	}
}

// Run stores configuration for run command.
type Run struct {
	// Image is the tag of the image to run
	Image string

	// Name is the name assigned to the container
	Name string

	// Runners is the list of runner presets merged into the container config
	Runners []string

	// Workdir is the working directory inside the container
	Workdir string

	// Network is the docker network the container joins
	Network string

	// Root starts the container as root instead of the host user
	Root bool
}
