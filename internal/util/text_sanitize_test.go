package util

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSanitizeTextRemovesNulAndControls(t *testing.T) {
	in := "ab\x00cd\x01\x02\n\txy"
	require.Equal(t, "abcd\n\txy", SanitizeText(in))
}
