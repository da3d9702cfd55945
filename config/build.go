package config

// BuildFactory collects data for build config.
type BuildFactory struct {
	// Image is the tag assigned to the built image
	Image string

	// BaseImage is the Ubuntu base image to start from
	BaseImage string

	// UserName is the name of the non-root user created inside the image
	UserName string

	// Builders is the list of builder presets merged into the image
	Builders []string

	// Packages are additional apt packages installed in the image
	Packages []string

	// NoBuildKit disables the BuildKit build backend
	NoBuildKit bool
}

// Config creates build config.
func (f *BuildFactory) Config() Build {
	return Build{
		Image:       f.Image,
		BaseImage:   f.BaseImage,
		UserName:    f.UserName,
		Builders:    f.Builders,
		Packages:    f.Packages,
		UseBuildKit: !f.NoBuildKit,
	}
}

// Build stores configuration for build command.
type Build struct {
	// Image is the tag assigned to the built image
	Image string

	// BaseImage is the Ubuntu base image to start from
	BaseImage string

	// UserName is the name of the non-root user created inside the image
	UserName string

	// Builders is the list of builder presets merged into the image
	Builders []string

	// Packages are additional apt packages installed in the image
	Packages []string

	// UseBuildKit selects BuildKit as the build backend
	UseBuildKit bool
}
