// Package stitch implements C5: merging several BGZF-compressed annotated
// JSON outputs into one well-formed output, using C4's block reader and a
// sidecar index to locate section boundaries without decompressing the
// positions section.
package stitch

import (
	"bytes"
	"errors"
	"io"
	"sort"
	"strings"

	"github.com/klauspost/compress/gzip"

	"github.com/varcore/varcore/internal/bgzfio"
	"github.com/varcore/varcore/internal/coreerr"
)

// Input is one shard to merge: its BGZF-compressed JSON body and the
// sidecar index recording where its positions and genes sections lie.
type Input struct {
	JSON  io.ReadSeeker
	Index *bgzfio.SidecarIndex
}

// continuationBlock is the precomputed ",\n" BGZF block written between
// shards to keep the merged positions array well-formed JSON.
var continuationBlock = mustEncodeBlock([]byte(",\n"))

func mustEncodeBlock(data []byte) []byte {
	b, err := bgzfio.EncodeBlock(data)
	if err != nil {
		panic(err) // data is a small compile-time constant; encoding cannot fail
	}
	return b
}

// Stitch merges inputs into out in the order supplied, then appends a
// single deduplicated, lexicographically sorted genes section.
func Stitch(inputs []Input, out io.Writer) error {
	var genes []string
	seen := make(map[string]bool)

	for i, in := range inputs {
		posSpan, ok := in.Index.Span(bgzfio.SectionPositions)
		if !ok {
			return coreerr.New(coreerr.KindBgzfCorrupt, "", errors.New("sidecar index missing positions section"))
		}

		if i > 0 {
			if _, err := out.Write(continuationBlock); err != nil {
				return err
			}
		}

		if err := WritePositionBlocks(out, in.JSON, posSpan.Begin, posSpan.End, i == 0); err != nil {
			return err
		}

		geneSpan, ok := in.Index.Span(bgzfio.SectionGenes)
		if !ok {
			continue
		}
		lines, err := ReadGeneLines(in.JSON, geneSpan.Begin, geneSpan.End)
		if err != nil {
			return err
		}
		for _, line := range lines {
			if seen[line] {
				continue
			}
			seen[line] = true
			genes = append(genes, line)
		}
	}

	sort.Strings(genes)
	return writeGeneFooter(out, genes)
}

// WritePositionBlocks copies the positions section of one shard through to
// out verbatim, without decompressing any block. The first compressed
// block of the first input (the JSON header) is kept; the same block on
// every later input is skipped, since the header is only written once.
// Blocks are copied up to, but not including, the block containing
// positionsEnd. The caller is responsible for seeking stream to the gene
// section's start afterward (its begin virtual offset's block offset);
// Stitch and ReadGeneLines already do this.
func WritePositionBlocks(out io.Writer, stream io.ReadSeeker, positionsBegin, positionsEnd bgzfio.VirtualOffset, isFirstInput bool) error {
	if _, err := stream.Seek(int64(positionsBegin.BlockOffset()), io.SeekStart); err != nil {
		return coreerr.New(coreerr.KindBgzfCorrupt, "", err)
	}

	br := bgzfio.NewBlockReader(stream)
	br.Reset(stream, positionsBegin.BlockOffset())

	isFirstBlock := true
	for {
		blockStart := br.Offset()
		if blockStart >= positionsEnd.BlockOffset() {
			break
		}
		block, err := br.ReadBlock()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return err
		}

		keep := true
		if isFirstBlock {
			isFirstBlock = false
			// Open question (documented as-is, not guessed): the algorithm
			// description only ever says "the header block", singular, without
			// specifying whether a header spanning more than one compressed
			// block on a later shard would also need skipping. Taken literally:
			// exactly the first block of each non-first shard is dropped.
			keep = isFirstInput
		}
		if keep {
			if _, err := out.Write(block.Raw); err != nil {
				return err
			}
		}
	}

	return nil
}

// ReadGeneLines decompresses the gene section of one shard and returns its
// individual, newline-delimited gene entries (the body between the
// `"genes":[` header and the closing `]}` footer, one JSON value per line),
// each with a trailing comma appended if it lacked one.
func ReadGeneLines(stream io.ReadSeeker, begin, end bgzfio.VirtualOffset) ([]string, error) {
	if _, err := stream.Seek(int64(begin.BlockOffset()), io.SeekStart); err != nil {
		return nil, coreerr.New(coreerr.KindBgzfCorrupt, "", err)
	}

	br := bgzfio.NewBlockReader(stream)
	br.Reset(stream, begin.BlockOffset())

	var decompressed []byte
	for {
		blockStart := br.Offset()
		if blockStart > end.BlockOffset() {
			break
		}
		block, err := br.ReadBlock()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		data, err := decodeBlockBody(block.Raw)
		if err != nil {
			return nil, err
		}
		decompressed = append(decompressed, data...)
		if blockStart == end.BlockOffset() {
			break
		}
	}

	text := string(decompressed)
	// Trim the "genes":[ ... ] envelope and the trailing footer, leaving a
	// line per gene entry.
	if i := strings.Index(text, "["); i >= 0 {
		text = text[i+1:]
	}
	text = strings.TrimRight(text, "\n")
	text = strings.TrimSuffix(text, "]}")
	text = strings.TrimRight(text, "\n")

	var lines []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if !strings.HasSuffix(line, ",") {
			line += ","
		}
		lines = append(lines, line)
	}
	return lines, nil
}

// decodeBlockBody decompresses one already-read raw BGZF member, the only
// point in the stitcher that actually inflates a block (the gene section is
// small and deduplicated in memory; positions are never touched).
func decodeBlockBody(raw []byte) ([]byte, error) {
	gzr, err := gzip.NewReader(bytes.NewReader(raw))
	if err != nil {
		return nil, coreerr.New(coreerr.KindBgzfCorrupt, "", err)
	}
	defer gzr.Close()
	gzr.Multistream(false)
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, gzr); err != nil {
		return nil, coreerr.New(coreerr.KindBgzfCorrupt, "", err)
	}
	return buf.Bytes(), nil
}

func writeGeneFooter(out io.Writer, genes []string) error {
	if len(genes) == 0 {
		block, err := bgzfio.EncodeBlock([]byte("]}"))
		if err != nil {
			return err
		}
		_, err = out.Write(block)
		return err
	}

	var body strings.Builder
	body.WriteString("\n],\"genes\":[\n")
	for i, g := range genes {
		if i == len(genes)-1 {
			g = strings.TrimSuffix(g, ",")
		}
		body.WriteString(g)
		body.WriteString("\n")
	}
	body.WriteString("]}")

	return writeChunked(out, []byte(body.String()))
}

// writeChunked splits data into BGZF-member-sized pieces and writes each as
// its own block, since a single block cannot exceed bgzfio.MaxBlockSize.
func writeChunked(out io.Writer, data []byte) error {
	for len(data) > 0 {
		n := len(data)
		if n > bgzfio.MaxBlockSize {
			n = bgzfio.MaxBlockSize
		}
		block, err := bgzfio.EncodeBlock(data[:n])
		if err != nil {
			return err
		}
		if _, err := out.Write(block); err != nil {
			return err
		}
		data = data[n:]
	}
	return nil
}
