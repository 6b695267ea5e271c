package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLimitOffsetDefaults(t *testing.T) {
	limit, offset, err := ParseLimitOffset("", "")
	require.NoError(t, err)
	assert.Equal(t, 20, limit)
	assert.Equal(t, 0, offset)
}

func TestParseLimitOffsetExplicit(t *testing.T) {
	limit, offset, err := ParseLimitOffset("50", "10")
	require.NoError(t, err)
	assert.Equal(t, 50, limit)
	assert.Equal(t, 10, offset)
}

func TestParseLimitOffsetInvalid(t *testing.T) {
	cases := [][2]string{
		{"0", ""},
		{"-1", ""},
		{"51", ""},
		{"abc", ""},
		{"", "-1"},
		{"", "abc"},
	}
	for _, c := range cases {
		_, _, err := ParseLimitOffset(c[0], c[1])
		assert.Error(t, err)
	}
}
