package utils

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateSlug(t *testing.T) {
	cases := map[string]string{
		"Men":              "men",
		"Summer Dresses":   "summer-dresses",
		"Éclair & Crème":   "eclair-creme",
		"  Shoes / Boots ": "shoes-boots",
		"UPPER_case":       "upper-case",
	}
	for in, want := range cases {
		assert.Equal(t, want, GenerateSlug(in), "input %q", in)
	}
}

func TestStringsToObjectIDs(t *testing.T) {
	ids, err := StringsToObjectIDs([]string{"68b8a8f29c1d4e0001000000", "68b8a8f29c1d4e0001000001"})
	require.NoError(t, err)
	require.Len(t, ids, 2)
	assert.Equal(t, "68b8a8f29c1d4e0001000000", ids[0].Hex())

	_, err = StringsToObjectIDs([]string{"not-hex"})
	assert.Error(t, err)
}

func TestIsDuplicateKey_MessageFallback(t *testing.T) {
	err := errors.New(`write exception: E11000 duplicate key error collection: merze.sections index: name_1`)
	assert.True(t, IsDuplicateKey(err))
	assert.False(t, IsDuplicateKey(errors.New("connection reset")))
}

func TestParseIntDefault(t *testing.T) {
	assert.Equal(t, 5, ParseIntDefault("", 5))
	assert.Equal(t, 12, ParseIntDefault("12", 5))
	assert.Equal(t, 5, ParseIntDefault("abc", 5))
}
