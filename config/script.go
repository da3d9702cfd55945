package config

// ScriptFactory collects data for script config.
type ScriptFactory struct {
	// Output is the file the generated script is written to, stdout if empty
	Output string
}

// Config creates script config.
func (f *ScriptFactory) Config() Script {
	return Script{
		Output: f.Output,
	}
}

// Script stores configuration for script command.
type Script struct {
	// Output is the file the generated script is written to, stdout if empty
	Output string
}
