package sample

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_EmptyColumn(t *testing.T) {
	s := Parse(ParseFormatIndices("GT:AD"), ".", Options{Ref: "A", Alt: "G"})
	assert.True(t, s.IsEmpty)
	assert.Nil(t, s.Genotype)
}

func TestParse_Scenario1_SmallVariantADOnly(t *testing.T) {
	idx := ParseFormatIndices("GT:AD")
	s := Parse(idx, "0/1:5,7", Options{Ref: "A", Alt: "G"})

	require.NotNil(t, s.Genotype)
	assert.Equal(t, "0/1", *s.Genotype)
	require.Equal(t, []int{5, 7}, s.AlleleDepths)
	require.NotNil(t, s.VariantFrequency)
	assert.InDelta(t, 0.5833, *s.VariantFrequency, 1e-9)
	assert.Nil(t, s.TotalDepth)
}

func TestParse_Scenario5_StrelkaPerBaseCounts(t *testing.T) {
	idx := ParseFormatIndices("GT:AU:CU:GU:TU")
	s := Parse(idx, "1/1:10,11:20,21:30,31:40,41", Options{Ref: "A", Alt: "C"})

	require.NotNil(t, s.TotalDepth)
	assert.Equal(t, 100, *s.TotalDepth) // sum of the four tier-1 counts: 10+20+30+40
	require.Equal(t, []int{10, 20}, s.AlleleDepths)
	require.NotNil(t, s.VariantFrequency)
	assert.InDelta(t, 20.0/30.0, *s.VariantFrequency, 1e-4)
}

func TestParse_GenotypeFullyMissingPreservedVerbatim(t *testing.T) {
	idx := ParseFormatIndices("GT:DP")
	s := Parse(idx, "./.:20", Options{Ref: "A", Alt: "G"})
	require.NotNil(t, s.Genotype)
	assert.Equal(t, "./.", *s.Genotype)
}

func TestParse_GenotypeLeadingDotNotFullyMissingIsUndefined(t *testing.T) {
	idx := ParseFormatIndices("GT:DP")
	s := Parse(idx, ".:208", Options{Ref: "A", Alt: "G"})
	assert.Nil(t, s.Genotype)
	require.NotNil(t, s.TotalDepth)
	assert.Equal(t, 208, *s.TotalDepth)
}

func TestParse_GQXPreferredOverGQ(t *testing.T) {
	idx := ParseFormatIndices("GT:GQ:GQX")
	s := Parse(idx, "0/1:30:45", Options{Ref: "A", Alt: "G"})
	require.NotNil(t, s.GenotypeQuality)
	assert.Equal(t, 45, *s.GenotypeQuality)
}

func TestParse_GQFallsBackWhenGQXDotted(t *testing.T) {
	idx := ParseFormatIndices("GT:GQ:GQX")
	s := Parse(idx, "0/1:30:.", Options{Ref: "A", Alt: "G"})
	require.NotNil(t, s.GenotypeQuality)
	assert.Equal(t, 30, *s.GenotypeQuality)
}

func TestParse_FailedFilter(t *testing.T) {
	idx := ParseFormatIndices("GT:FT")
	require.True(t, Parse(idx, "0/1:LowDepth", Options{}).FailedFilter)
	require.False(t, Parse(idx, "0/1:PASS", Options{}).FailedFilter)
	require.False(t, Parse(idx, "0/1:.", Options{}).FailedFilter)
}

func TestParse_LossOfHeterozygosity(t *testing.T) {
	idx := ParseFormatIndices("GT:CN:MCC")
	assert.True(t, Parse(idx, "1/1:2:2", Options{}).IsLossOfHeterozygosity)
	assert.False(t, Parse(idx, "1/1:6:4", Options{}).IsLossOfHeterozygosity)
	assert.False(t, Parse(idx, "1/1:1:1", Options{}).IsLossOfHeterozygosity) // CN < 2
}

func TestParse_MultiAllelicDisablesTierAndStrelkaSources(t *testing.T) {
	idx := ParseFormatIndices("GT:TAR:TIR:AD")
	s := Parse(idx, "1/2:5,5:3,3:5,3,4", Options{Ref: "A", Alt: "G", MultiAllelic: true})
	// AD is the only honored source on multi-allelic records.
	require.Equal(t, []int{5, 3}, s.AlleleDepths)
}

func TestParse_NRNVAlleleDepths(t *testing.T) {
	idx := ParseFormatIndices("GT:NR:NV")
	s := Parse(idx, "0/1:30:10", Options{Ref: "A", Alt: "G"})
	require.Equal(t, []int{20, 10}, s.AlleleDepths)
}

func TestParse_TotalDepthFallsBackThroughDPIAndDP(t *testing.T) {
	idx := ParseFormatIndices("GT:DPI")
	s := Parse(idx, "0/1:55", Options{Ref: "A", Alt: "G"})
	require.NotNil(t, s.TotalDepth)
	assert.Equal(t, 55, *s.TotalDepth)

	idx2 := ParseFormatIndices("GT:DP")
	s2 := Parse(idx2, "0/1:60", Options{Ref: "A", Alt: "G"})
	require.NotNil(t, s2.TotalDepth)
	assert.Equal(t, 60, *s2.TotalDepth)
}

func TestParse_LineDPOverrideUsedAsLastResort(t *testing.T) {
	idx := ParseFormatIndices("GT")
	lineDP := 42
	s := Parse(idx, "0/1", Options{Ref: "A", Alt: "G", LineDP: &lineDP})
	require.NotNil(t, s.TotalDepth)
	assert.Equal(t, 42, *s.TotalDepth)
}

func TestParse_ClinicalFields(t *testing.T) {
	idx := ParseFormatIndices("GT:DID:DCS:PCN:PLG:MAD")
	s := Parse(idx, "0/1:id1,id2:src1,src2:2,3:1111,2222:10,20,30", Options{})
	assert.Equal(t, []string{"id1", "id2"}, s.DiseaseIDs)
	assert.Equal(t, []string{"src1", "src2"}, s.DiseaseClassificationSources)
	assert.Equal(t, []int{2, 3}, s.ParalogousGeneCopyNumbers)
	assert.Equal(t, []int{1111, 2222}, s.ParalogousEntrezGeneIDs)
	assert.Equal(t, []int{10, 20, 30}, s.MpileupAlleleDepths)
}

func TestParse_VariantFrequencyZeroWhenBothZero(t *testing.T) {
	idx := ParseFormatIndices("GT:AD")
	s := Parse(idx, "0/0:0,0", Options{Ref: "A", Alt: "G"})
	require.NotNil(t, s.VariantFrequency)
	assert.Equal(t, 0.0, *s.VariantFrequency)
}
