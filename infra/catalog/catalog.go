package catalog

import (
	"sort"

	"github.com/apaolillo/pythainer/infra/builder"
	"github.com/apaolillo/pythainer/infra/runner"
)

// BuilderFunc produces a partial builder preset.
type BuilderFunc func() *builder.Partial

// RunnerFunc produces a runner preset.
type RunnerFunc func() runner.Runner

// Info describes a preset stored in the catalog.
type Info struct {
	Name        string
	Kind        string
	Description string
}

// New creates an empty catalog.
func New() *Catalog {
	return &Catalog{
		builders:     map[string]BuilderFunc{},
		runners:      map[string]RunnerFunc{},
		descriptions: map[string]Info{},
	}
}

// Catalog stores named builder and runner presets.
type Catalog struct {
	builders     map[string]BuilderFunc
	runners      map[string]RunnerFunc
	descriptions map[string]Info
}

// StoreBuilder stores a builder preset in the catalog.
func (c *Catalog) StoreBuilder(name, description string, fn BuilderFunc) {
	c.builders[name] = fn
	c.descriptions["builder/"+name] = Info{Name: name, Kind: "builder", Description: description}
}

// StoreRunner stores a runner preset in the catalog.
func (c *Catalog) StoreRunner(name, description string, fn RunnerFunc) {
	c.runners[name] = fn
	c.descriptions["runner/"+name] = Info{Name: name, Kind: "runner", Description: description}
}

// Builder retrieves a builder preset, nil if none is stored under name.
func (c *Catalog) Builder(name string) BuilderFunc {
	return c.builders[name]
}

// Runner retrieves a runner preset, nil if none is stored under name.
func (c *Catalog) Runner(name string) RunnerFunc {
	return c.runners[name]
}

// List returns information about all stored presets, sorted by kind and name.
func (c *Catalog) List() []Info {
	infos := make([]Info, 0, len(c.descriptions))
	for _, info := range c.descriptions {
		infos = append(infos, info)
	}
	sort.Slice(infos, func(i, j int) bool {
		if infos[i].Kind != infos[j].Kind {
			return infos[i].Kind < infos[j].Kind
		}
		return infos[i].Name < infos[j].Name
	})
	return infos
}
