package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSlugify(t *testing.T) {
	require.Equal(t, "hello-world", Slugify("Hello World"))
	require.Equal(t, "ola-mundo", Slugify("Olá Mundo"))
}

func TestSlugWithSuffix(t *testing.T) {
	first, err := SlugWithSuffix("Hello World")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(first, "hello-world-"))

	second, err := SlugWithSuffix("Hello World")
	require.NoError(t, err)
	require.NotEqual(t, first, second)
}
