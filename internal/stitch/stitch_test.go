package stitch

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/klauspost/compress/gzip"

	"github.com/varcore/varcore/internal/bgzfio"
)

// buildShard lays out three BGZF members: a positions-header block, a
// positions-body block, and a gene-section block, returning the bytes plus
// a sidecar index describing the positions and genes spans. Keeping the
// header in its own block mirrors real annotated JSON output, where the
// opening brace and "positions":[ precede the first record by enough bytes
// to land in a separate BGZF member.
func buildShard(t *testing.T, header, positionsBody, geneBody string) ([]byte, *bgzfio.SidecarIndex) {
	t.Helper()

	headerBlock, err := bgzfio.EncodeBlock([]byte(header))
	require.NoError(t, err)
	bodyBlock, err := bgzfio.EncodeBlock([]byte(positionsBody))
	require.NoError(t, err)
	geneBlock, err := bgzfio.EncodeBlock([]byte(geneBody))
	require.NoError(t, err)

	var buf bytes.Buffer
	buf.Write(headerBlock)
	buf.Write(bodyBlock)
	geneStart := uint64(buf.Len())
	buf.Write(geneBlock)
	geneEnd := uint64(buf.Len())

	idx := &bgzfio.SidecarIndex{Sections: map[string]bgzfio.SectionSpan{
		bgzfio.SectionPositions: {
			Begin: bgzfio.NewVirtualOffset(0, 0),
			End:   bgzfio.NewVirtualOffset(geneStart, 0),
		},
		bgzfio.SectionGenes: {
			Begin: bgzfio.NewVirtualOffset(geneStart, 0),
			End:   bgzfio.NewVirtualOffset(geneEnd, 0),
		},
	}}
	return buf.Bytes(), idx
}

func decompressAll(t *testing.T, raw []byte) string {
	t.Helper()
	gzr, err := gzip.NewReader(bytes.NewReader(raw))
	require.NoError(t, err)
	var out bytes.Buffer
	buf := make([]byte, 4096)
	for {
		n, rerr := gzr.Read(buf)
		out.Write(buf[:n])
		if rerr != nil {
			break
		}
	}
	return out.String()
}

func TestStitch_TwoShardsMergePositionsAndDedupGenes(t *testing.T) {
	shard1Bytes, idx1 := buildShard(t,
		`{"header":true,"positions":[`,
		`{"pos":1}`,
		"\"genes\":[\n\"BRCA1\",\n\"TP53\",\n]}",
	)
	shard2Bytes, idx2 := buildShard(t,
		`{"header":true,"positions":[`,
		`{"pos":2}`,
		"\"genes\":[\n\"TP53\",\n\"EGFR\",\n]}",
	)

	inputs := []Input{
		{JSON: bytes.NewReader(shard1Bytes), Index: idx1},
		{JSON: bytes.NewReader(shard2Bytes), Index: idx2},
	}

	var out bytes.Buffer
	require.NoError(t, Stitch(inputs, &out))

	merged := decompressAll(t, out.Bytes())

	assert.Contains(t, merged, "{\"header\":true,\"positions\":[{\"pos\":1},\n{\"pos\":2}")
	assert.Equal(t, 1, strings.Count(merged, `"header":true`))
	assert.Contains(t, merged, "\"genes\":[\n\"BRCA1\",\n\"EGFR\",\n\"TP53\"\n]}")
}

func TestStitch_SingleInputNoLeadingComma(t *testing.T) {
	shardBytes, idx := buildShard(t, `{"positions":[`, `{"pos":1}`, "\"genes\":[\n\"ZZZ\",\n]}")
	var out bytes.Buffer
	require.NoError(t, Stitch([]Input{{JSON: bytes.NewReader(shardBytes), Index: idx}}, &out))

	merged := decompressAll(t, out.Bytes())
	assert.Contains(t, merged, `{"positions":[{"pos":1}`)
	assert.Contains(t, merged, "\"genes\":[\n\"ZZZ\"\n]}")
}

func TestStitch_NoGeneLinesYieldsBareFooter(t *testing.T) {
	shardBytes, idx := buildShard(t, `{"positions":[`, `{"pos":1}`, "\"genes\":[\n]}")
	var out bytes.Buffer
	require.NoError(t, Stitch([]Input{{JSON: bytes.NewReader(shardBytes), Index: idx}}, &out))

	merged := decompressAll(t, out.Bytes())
	assert.Contains(t, merged, "]}")
}
