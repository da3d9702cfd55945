package types

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/pkg/errors"
)

// DefaultTag is used whenever no tag is given explicitly.
const DefaultTag Tag = "latest"

var nameRegExp = regexp.MustCompile(`^[a-z0-9]+(?:(?:[._]|__|-+)[a-z0-9]+)*(?:/[a-z0-9]+(?:(?:[._]|__|-+)[a-z0-9]+)*)*$`)
var tagRegExp = regexp.MustCompile(`^[a-zA-Z0-9_][a-zA-Z0-9._-]{0,127}$`)

// Tag is the tag of an image.
type Tag string

// IsValid returns true if tag is valid.
func (t Tag) IsValid() bool {
	return tagRegExp.MatchString(string(t))
}

// IsNameValid returns true if name is a valid image repository name.
func IsNameValid(name string) bool {
	return nameRegExp.MatchString(name)
}

// NewImageRef returns image reference made of name and tag.
func NewImageRef(name string, tag Tag) ImageRef {
	if tag == "" {
		tag = DefaultTag
	}
	return ImageRef{Name: name, Tag: tag}
}

// ParseImageRef parses string into image reference and returns error if string is not a valid one.
func ParseImageRef(strRef string) (ImageRef, error) {
	if strRef == "" {
		return ImageRef{}, errors.New("empty image reference received")
	}
	parts := strings.SplitN(strRef, ":", 2)
	name := parts[0]
	if !IsNameValid(name) {
		return ImageRef{}, errors.Errorf("image name '%s' is invalid", name)
	}

	tag := DefaultTag
	if len(parts) == 2 {
		tag = Tag(parts[1])
		if tag == "" {
			return ImageRef{}, errors.New("empty tag received")
		}
	}
	if !tag.IsValid() {
		return ImageRef{}, errors.Errorf("tag '%s' is invalid", tag)
	}

	return ImageRef{Name: name, Tag: tag}, nil
}

// ImageRef represents name-tag pair identifying an image.
type ImageRef struct {
	Name string
	Tag  Tag
}

// String returns string representation of image reference.
func (r ImageRef) String() string {
	return fmt.Sprintf("%s:%s", r.Name, r.Tag)
}
