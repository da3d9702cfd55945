package format

import (
	"github.com/outofforest/ioc/v2"

	"github.com/apaolillo/pythainer/config"
)

// Formatter formats slice into string.
type Formatter interface {
	// Format formats preset list into string.
	Format(slice interface{}) string
}

// Resolve resolves concrete formatter based on config.
func Resolve(c *ioc.Container, config config.Format) Formatter {
	var formatter Formatter
	c.ResolveNamed(config.Formatter, &formatter)
	return formatter
}
