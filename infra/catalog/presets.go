package catalog

import (
	"github.com/apaolillo/pythainer/infra/builder"
	"github.com/apaolillo/pythainer/infra/recipes"
	"github.com/apaolillo/pythainer/infra/runner"
)

// NewDefault creates a catalog populated with the bundled presets.
func NewDefault() *Catalog {
	c := New()

	c.StoreBuilder("cmake", "CMake built from source", CMakeBuilder)
	c.StoreBuilder("opencl", "OpenCL headers, ICD loaders and tooling", OpenCLBuilder)
	c.StoreBuilder("vulkan", "Vulkan development packages and validation layers", VulkanBuilder)
	c.StoreBuilder("rust", "Rust toolchain via rustup with rustfmt and clippy", RustBuilder)

	c.StoreRunner("gui", "X11 display and input devices", func() runner.Runner {
		return runner.GUI(true)
	})
	c.StoreRunner("gpu", "NVIDIA runtime with all GPUs", runner.GPU)
	c.StoreRunner("camera", "Video and media devices", runner.Camera)
	c.StoreRunner("personal", "Personal vim and tmux dotfiles", func() runner.Runner {
		return runner.Personal("user")
	})

	return c
}

// LibDir is where preset builders install libraries built from source.
const LibDir = "/home/${USER_NAME}/workspace/libraries"

// CMakeBuilder builds and installs CMake from source.
func CMakeBuilder() *builder.Partial {
	b := builder.NewPartial()
	b.Space()
	b.Desc("CMake built from source")
	b.User("")
	recipes.CMakeBuildInstall(b, "3.27.9", LibDir, true)
	return b
}

// OpenCLBuilder prepares the image for OpenCL development.
func OpenCLBuilder() *builder.Partial {
	b := builder.NewPartial()
	b.Space()
	b.Desc("Required for OpenCL")
	b.User("root")
	b.AddPackages(
		"clinfo",
		"ocl-icd-opencl-dev",
		"opencl-c-headers",
		"opencl-clhpp-headers",
		"opencl-headers",
	)
	b.RunMultiple([]string{
		"mkdir -p /etc/OpenCL/vendors",
		"echo libamdocl64.so > /etc/OpenCL/vendors/amdocl64.icd",
		"echo libnvidia-opencl.so.1 > /etc/OpenCL/vendors/nvidia.icd",
	})
	b.Run("ln -s /usr/lib/x86_64-linux-gnu/libOpenCL.so.1 /usr/lib/libOpenCL.so")
	b.Env("NVIDIA_VISIBLE_DEVICES", "all")
	b.Env("NVIDIA_DRIVER_CAPABILITIES", "compute,utility")
	return b
}

// VulkanBuilder prepares the image for Vulkan development.
func VulkanBuilder() *builder.Partial {
	b := builder.NewPartial()
	b.Space()

	xdgRuntimeDir := "/home/${USER_NAME}/.xdg-runtime-dir"
	b.Env("XDG_RUNTIME_DIR", xdgRuntimeDir)
	b.Env("NVIDIA_DRIVER_CAPABILITIES", "all")
	b.Env("NVIDIA_VISIBLE_DEVICES", "all")
	b.Space()

	b.Root()
	b.AddPackages(
		"mesa-utils",
		"vulkan-tools",
		"libvulkan-dev",
		"pciutils",
		"vulkan-validationlayers",
		"vulkan-validationlayers-dev",
	)

	b.User("")
	b.Run("mkdir -p " + xdgRuntimeDir)
	b.Space()
	return b
}

// RustBuilder installs the Rust toolchain via rustup.
func RustBuilder() *builder.Partial {
	b := builder.NewPartial()
	b.User("")
	b.Run("curl --proto '=https' --tlsv1.2 -sSf https://sh.rustup.rs | sh -s -- -y")
	b.Env("PATH", "/home/${USER_NAME}/.cargo/bin:$PATH")
	b.Run("cargo --version")
	b.Run("rustup component add rustfmt")
	b.Run("rustup component add clippy")
	return b
}
