package format

import (
	"encoding/json"

	"github.com/ridge/must"
)

// NewJSONFormatter returns formatter converting preset list into json string.
func NewJSONFormatter() Formatter {
	return &jsonFormatter{}
}

type jsonFormatter struct {
}

// Format formats preset list into json string.
func (f *jsonFormatter) Format(slice interface{}) string {
	return string(must.Bytes(json.MarshalIndent(slice, "", "  ")))
}
