package factory

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/varcore/varcore/internal/coreerr"
	"github.com/varcore/varcore/internal/variant"
)

func newLookup() variant.ChromosomeLookup {
	return variant.NewStaticChromosomeTable([][2]string{
		{"1", "chr1"},
		{"2", "chr2"},
	})
}

func TestCreate_Scenario1_SmallVariantSNV(t *testing.T) {
	lookup := newLookup()
	refMinor := variant.NewMapRefMinorProvider()

	vs, err := Create(lookup, refMinor, "1", 100, "A", []string{"G"}, &variant.InfoData{}, nil)
	require.NoError(t, err)
	require.Len(t, vs, 1)
	assert.Equal(t, variant.TypeSNV, vs[0].Type)
	assert.Equal(t, int64(100), vs[0].Start)
	assert.Equal(t, int64(100), vs[0].End)
	assert.Same(t, lookup.Lookup("1"), vs[0].Chromosome)
}

func TestCreate_ReferenceCallYieldsOneVariantAndConsultsRefMinor(t *testing.T) {
	lookup := newLookup()
	refMinor := variant.NewMapRefMinorProvider()
	chrom := lookup.Lookup("1")
	refMinor.Set(chrom, 200, "T")

	vs, err := Create(lookup, refMinor, "1", 200, "C", []string{"."}, &variant.InfoData{}, nil)
	require.NoError(t, err)
	require.Len(t, vs, 1)
	assert.Equal(t, variant.TypeReference, vs[0].Type)
	require.True(t, vs[0].HasGlobalMajor)
	assert.Equal(t, "T", vs[0].GlobalMajorAllele)
}

func TestCreate_SymbolicDeletionDerivesBreakends(t *testing.T) {
	lookup := newLookup()
	refMinor := variant.NewMapRefMinorProvider()
	end := int64(350)
	info := &variant.InfoData{SVType: variant.SVTypeDeletion, End: &end}

	vs, err := Create(lookup, refMinor, "1", 300, "N", []string{"<DEL>"}, info, nil)
	require.NoError(t, err)
	require.Len(t, vs, 1)
	v := vs[0]
	assert.Equal(t, variant.TypeDeletion, v.Type)
	assert.Equal(t, int64(300), v.Start)
	assert.Equal(t, int64(350), v.End)
	require.Len(t, v.BreakEnds, 2)
	assert.Equal(t, int64(300), v.BreakEnds[0].Position1)
	assert.Equal(t, int64(351), v.BreakEnds[0].Position2)
}

func TestCreate_InversionWithInv3Flag(t *testing.T) {
	lookup := newLookup()
	refMinor := variant.NewMapRefMinorProvider()
	end := int64(500)
	info := &variant.InfoData{SVType: variant.SVTypeInversion, End: &end, IsInv3: true}

	vs, err := Create(lookup, refMinor, "1", 400, "N", []string{"<INV>"}, info, nil)
	require.NoError(t, err)
	require.Len(t, vs, 1)
	v := vs[0]
	assert.Equal(t, variant.TypeInversion, v.Type)
	require.Len(t, v.BreakEnds, 2)
	assert.False(t, v.BreakEnds[0].IsSuffix1)
	assert.False(t, v.BreakEnds[0].IsSuffix2)
	assert.Equal(t, int64(400), v.BreakEnds[0].Position1)
	assert.Equal(t, int64(500), v.BreakEnds[0].Position2)
}

func TestCreate_ForwardBreakendAlt(t *testing.T) {
	lookup := newLookup()
	refMinor := variant.NewMapRefMinorProvider()

	vs, err := Create(lookup, refMinor, "1", 500, "G", []string{"G[2:800["}, &variant.InfoData{}, nil)
	require.NoError(t, err)
	require.Len(t, vs, 1)
	v := vs[0]
	assert.Equal(t, variant.TypeTranslocationBreakend, v.Type)
	require.Len(t, v.BreakEnds, 1)
	be := v.BreakEnds[0]
	assert.Same(t, lookup.Lookup("1"), be.Chromosome1)
	assert.Same(t, lookup.Lookup("2"), be.Chromosome2)
	assert.Equal(t, int64(500), be.Position1)
	assert.Equal(t, int64(800), be.Position2)
	assert.False(t, be.IsSuffix1)
	assert.True(t, be.IsSuffix2)
}

func TestCreate_ReverseBreakendAlt(t *testing.T) {
	lookup := newLookup()
	refMinor := variant.NewMapRefMinorProvider()

	vs, err := Create(lookup, refMinor, "2", 800, "G", []string{"]1:500]G"}, &variant.InfoData{}, nil)
	require.NoError(t, err)
	require.Len(t, vs, 1)
	be := vs[0].BreakEnds[0]
	assert.True(t, be.IsSuffix1)
	assert.False(t, be.IsSuffix2)
	assert.Equal(t, int64(500), be.Position2)
}

func TestCreate_MultiAllelicSkipsNonInformativeAlt(t *testing.T) {
	lookup := newLookup()
	refMinor := variant.NewMapRefMinorProvider()

	vs, err := Create(lookup, refMinor, "1", 100, "A", []string{"G", "<NON_REF>"}, &variant.InfoData{}, nil)
	require.NoError(t, err)
	require.Len(t, vs, 1)
	assert.Equal(t, "G", vs[0].Alt)
}

func TestCreate_InsertionAndDeletionClassification(t *testing.T) {
	lookup := newLookup()
	refMinor := variant.NewMapRefMinorProvider()

	ins, err := Create(lookup, refMinor, "1", 100, "A", []string{"ATT"}, &variant.InfoData{}, nil)
	require.NoError(t, err)
	assert.Equal(t, variant.TypeInsertion, ins[0].Type)

	del, err := Create(lookup, refMinor, "1", 100, "ATT", []string{"A"}, &variant.InfoData{}, nil)
	require.NoError(t, err)
	assert.Equal(t, variant.TypeDeletion, del[0].Type)

	mnv, err := Create(lookup, refMinor, "1", 100, "AT", []string{"GC"}, &variant.InfoData{}, nil)
	require.NoError(t, err)
	assert.Equal(t, variant.TypeMNV, mnv[0].Type)

	indel, err := Create(lookup, refMinor, "1", 100, "ATG", []string{"GC"}, &variant.InfoData{}, nil)
	require.NoError(t, err)
	assert.Equal(t, variant.TypeIndel, indel[0].Type)
}

func TestCreate_RepeatExpansionAndCNVCategories(t *testing.T) {
	lookup := newLookup()
	refMinor := variant.NewMapRefMinorProvider()
	end := int64(650)

	str, err := Create(lookup, refMinor, "1", 600, "N", []string{"<STR8>"}, &variant.InfoData{End: &end}, nil)
	require.NoError(t, err)
	assert.Equal(t, variant.TypeShortTandemRepeatVariation, str[0].Type)

	cnv, err := Create(lookup, refMinor, "1", 600, "N", []string{"<CN3>"}, &variant.InfoData{End: &end}, nil)
	require.NoError(t, err)
	assert.Equal(t, variant.TypeCopyNumberVariation, cnv[0].Type)
}

func TestCreate_MalformedBreakendAltFailsWithBreakendParse(t *testing.T) {
	lookup := newLookup()
	refMinor := variant.NewMapRefMinorProvider()

	// "G[2:800" has an opening bracket but no closing bracket/position pair,
	// so it matches neither reForwardBreakend nor reReverseBreakend.
	_, err := Create(lookup, refMinor, "1", 500, "G", []string{"G[2:800"}, &variant.InfoData{}, nil)
	require.Error(t, err)

	var coreErr *coreerr.Error
	require.True(t, errors.As(err, &coreErr))
	assert.Equal(t, coreerr.KindBreakendParse, coreErr.Kind)
}

func TestCreateForCategory_UnknownCategoryFailsWithUnknownCategory(t *testing.T) {
	lookup := newLookup()
	refMinor := variant.NewMapRefMinorProvider()
	chrom := lookup.Lookup("1")

	// Classify never itself produces an out-of-range Category; this exercises
	// createForCategory's default branch directly, the way an unrecognized
	// category value reaching dispatch (e.g. from a future category added to
	// the enum but not the switch) would fail.
	_, err := createForCategory(lookup, chrom, refMinor, variant.Category(99), 100, "A", []string{"G"}, &variant.InfoData{})
	require.Error(t, err)

	var coreErr *coreerr.Error
	require.True(t, errors.As(err, &coreErr))
	assert.Equal(t, coreerr.KindUnknownCategory, coreErr.Kind)
	assert.Equal(t, "Unknown", coreErr.Record)
}
