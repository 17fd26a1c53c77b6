package variant

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStaticChromosomeTable_ResolvesEitherSpelling(t *testing.T) {
	tbl := NewStaticChromosomeTable([][2]string{{"1", "chr1"}, {"X", "chrX"}})

	byShort := tbl.Lookup("1")
	byRef := tbl.Lookup("chr1")
	require.False(t, byShort.IsEmpty())
	assert.Same(t, byShort, byRef, "both spellings must resolve to the same chromosome identity")
}

func TestStaticChromosomeTable_UnknownNameYieldsSyntheticEmpty(t *testing.T) {
	tbl := NewStaticChromosomeTable([][2]string{{"1", "chr1"}})

	c := tbl.Lookup("chrZZZ")
	require.True(t, c.IsEmpty())
	assert.Equal(t, "chrZZZ", c.Name)
}

func TestMapRefMinorProvider(t *testing.T) {
	p := NewMapRefMinorProvider()
	chrom := NewChromosome("1", "chr1")
	p.Set(chrom, 1000, "G")

	allele, ok := p.GlobalMajorAllele(chrom, 1000)
	require.True(t, ok)
	assert.Equal(t, "G", allele)

	_, ok = p.GlobalMajorAllele(chrom, 2000)
	assert.False(t, ok)
}
