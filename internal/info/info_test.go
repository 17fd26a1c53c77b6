package info

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/varcore/varcore/internal/variant"
)

func TestParse_Deletion(t *testing.T) {
	d, err := Parse("SVTYPE=DEL;END=2000")
	require.NoError(t, err)
	assert.Equal(t, variant.SVTypeDeletion, d.SVType)
	require.True(t, d.HasEnd())
	assert.EqualValues(t, 2000, *d.End)
}

func TestParse_InversionFlags(t *testing.T) {
	d, err := Parse("SVTYPE=INV;END=2000;INV3")
	require.NoError(t, err)
	assert.True(t, d.IsInv3)
	assert.False(t, d.IsInv5)
}

func TestParse_EmptyField(t *testing.T) {
	d, err := Parse(".")
	require.NoError(t, err)
	assert.False(t, d.HasEnd())
	assert.Equal(t, variant.SVTypeNone, d.SVType)
}

func TestParse_UnknownKeysIgnored(t *testing.T) {
	d, err := Parse("DP=30;AF=0.5;SOMATIC")
	require.NoError(t, err)
	assert.Equal(t, variant.SVTypeNone, d.SVType)
}

func TestParse_MalformedEndFails(t *testing.T) {
	_, err := Parse("SVTYPE=DEL;END=notanumber")
	require.Error(t, err)
}

func TestParse_UnrecognizedSVTYPEValueIgnored(t *testing.T) {
	d, err := Parse("SVTYPE=WEIRD;END=5")
	require.NoError(t, err)
	assert.Equal(t, variant.SVTypeNone, d.SVType)
	require.True(t, d.HasEnd())
}
