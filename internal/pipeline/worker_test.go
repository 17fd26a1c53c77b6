package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/varcore/varcore/internal/variant"
)

func TestProcessor_ProcessSmallVariantWithSample(t *testing.T) {
	p := &Processor{
		ChromLookup: variant.NewStaticChromosomeTable([][2]string{{"1", "chr1"}}),
		RefMinor:    variant.NewMapRefMinorProvider(),
	}
	line := &CallLine{
		Chrom:      "1",
		Pos:        "100",
		Ref:        "A",
		Alts:       []string{"G"},
		InfoRaw:    ".",
		FormatRaw:  "GT:AD",
		SampleCols: []string{"0/1:5,7"},
	}

	variants, samples, err := p.Process(line)
	require.NoError(t, err)
	require.Len(t, variants, 1)
	assert.Equal(t, variant.TypeSNV, variants[0].Type)
	require.Len(t, samples, 1)
	require.NotNil(t, samples[0].VariantFrequency)
	assert.InDelta(t, 0.5833, *samples[0].VariantFrequency, 1e-4)
}

func TestRunWorkersAndOrderedCollect_PreservesSequenceOrder(t *testing.T) {
	p := &Processor{
		ChromLookup: variant.NewStaticChromosomeTable([][2]string{{"1", "chr1"}}),
		RefMinor:    variant.NewMapRefMinorProvider(),
	}

	jobs := make(chan LineJob, 8)
	for i := 0; i < 8; i++ {
		jobs <- LineJob{Seq: i, Line: &CallLine{
			Chrom: "1", Pos: "100", Ref: "A", Alts: []string{"G"}, InfoRaw: ".",
		}}
	}
	close(jobs)

	results := RunWorkers(jobs, 4, p.Process)

	var order []int
	err := OrderedCollect(results, func(r LineResult) error {
		order = append(order, r.Seq)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 6, 7}, order)
}
