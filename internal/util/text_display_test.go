package util

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDisplaySnippet(t *testing.T) {
	in := "Hello\x00   world \n\t C\\u0001"
	out := DisplaySnippet(in, 100)
	require.NotEmpty(t, out)
	require.NotContains(t, out, "\n")
}

func TestDisplaySnippetTruncates(t *testing.T) {
	out := DisplaySnippet("Attention Is All You Need", 9)
	require.Equal(t, "Attention...", out)
}

func TestDisplaySnippetSplitsRunTogetherWords(t *testing.T) {
	require.Equal(t, "Deep Learning for Graphs 2024", DisplaySnippet("DeepLearning for Graphs2024", 100))
}
