package pipeline

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReader_ParsesHeaderAndSampleNames(t *testing.T) {
	const vcf = "##fileformat=VCFv4.2\n" +
		"#CHROM\tPOS\tID\tREF\tALT\tQUAL\tFILTER\tINFO\tFORMAT\tSAMPLE1\tSAMPLE2\n" +
		"chr1\t100\t.\tA\tG\t30\tPASS\t.\tGT:AD\t0/1:5,7\t1/1:0,12\n"

	r, err := NewReader(strings.NewReader(vcf))
	require.NoError(t, err)
	assert.Equal(t, []string{"SAMPLE1", "SAMPLE2"}, r.SampleNames())

	line, err := r.Next()
	require.NoError(t, err)
	require.NotNil(t, line)
	assert.Equal(t, "chr1", line.Chrom)
	assert.Equal(t, "100", line.Pos)
	assert.Equal(t, "A", line.Ref)
	assert.Equal(t, []string{"G"}, line.Alts)
	assert.Equal(t, "GT:AD", line.FormatRaw)
	assert.Equal(t, []string{"0/1:5,7", "1/1:0,12"}, line.SampleCols)

	next, err := r.Next()
	require.NoError(t, err)
	assert.Nil(t, next)
}

func TestReader_SkipsBlankLines(t *testing.T) {
	const vcf = "#CHROM\tPOS\tID\tREF\tALT\tQUAL\tFILTER\tINFO\n" +
		"\n" +
		"chr1\t100\t.\tA\tG\t30\tPASS\t.\n"

	r, err := NewReader(strings.NewReader(vcf))
	require.NoError(t, err)
	line, err := r.Next()
	require.NoError(t, err)
	require.NotNil(t, line)
	assert.Equal(t, "chr1", line.Chrom)
}

func TestReader_RejectsMissingChromHeader(t *testing.T) {
	_, err := NewReader(strings.NewReader("chr1\t100\t.\tA\tG\t30\tPASS\t.\n"))
	require.Error(t, err)
}
