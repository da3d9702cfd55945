package types

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseImageRef(t *testing.T) {
	ref, err := ParseImageRef("ubuntu:22.04")
	require.NoError(t, err)
	require.Equal(t, ImageRef{Name: "ubuntu", Tag: "22.04"}, ref)
	require.Equal(t, "ubuntu:22.04", ref.String())
}

func TestParseImageRefDefaultsTag(t *testing.T) {
	ref, err := ParseImageRef("library/ubuntu")
	require.NoError(t, err)
	require.Equal(t, ImageRef{Name: "library/ubuntu", Tag: DefaultTag}, ref)
}

func TestParseImageRefRejectsInvalidInput(t *testing.T) {
	for _, strRef := range []string{"", "UBUNTU", "ubuntu:", "ubuntu:!", "-ubuntu", "ubuntu/:latest"} {
		_, err := ParseImageRef(strRef)
		require.Error(t, err, strRef)
	}
}

func TestTagIsValid(t *testing.T) {
	require.True(t, Tag("latest").IsValid())
	require.True(t, Tag("22.04").IsValid())
	require.False(t, Tag("").IsValid())
	require.False(t, Tag(".dot").IsValid())
	require.False(t, Tag("-dash").IsValid())
}
