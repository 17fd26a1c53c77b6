package bgzfio

import (
	"encoding/binary"
	"errors"
	"io"

	"github.com/varcore/varcore/internal/coreerr"
)

const (
	gzipID1   = 0x1f
	gzipID2   = 0x8b
	flagExtra = 0x04
	bgzfSI1   = 66 // 'B'
	bgzfSI2   = 67 // 'C'
)

// Block is one raw, still-compressed BGZF member read verbatim from a
// stream. Raw is the complete gzip member (header through footer); the
// stitcher's pass-through mode copies it to the output without touching it.
type Block struct {
	Raw              []byte
	UncompressedSize uint32 // ISIZE, from the member's footer
}

// BlockReader reads a BGZF stream member by member without decompressing
// any of them, trusting the BC/BSIZE extra subfield each member carries
// (per googlegenomics-htsget's bgzf.DecodeBlock) to know exactly how many
// bytes make up the member. It deliberately does not buffer ahead of what
// io.ReadFull consumes, so the underlying stream's position always matches
// Offset — a caller holding an io.Seeker can reposition it and call Reset
// to keep reading blocks from the new position.
type BlockReader struct {
	r      io.Reader
	offset uint64
}

// NewBlockReader wraps r for block-at-a-time reading starting at offset 0.
func NewBlockReader(r io.Reader) *BlockReader {
	return &BlockReader{r: r}
}

// Offset returns the file offset of the next unread block.
func (br *BlockReader) Offset() uint64 {
	return br.offset
}

// Reset points br at r, starting from the given known file offset. Used
// after seeking the underlying stream directly.
func (br *BlockReader) Reset(r io.Reader, offset uint64) {
	br.r = r
	br.offset = offset
}

// ReadBlock reads and returns the next raw BGZF member. It returns io.EOF,
// unwrapped, once the stream ends cleanly at a member boundary.
func (br *BlockReader) ReadBlock() (*Block, error) {
	header := make([]byte, 12)
	if _, err := io.ReadFull(br.r, header); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, io.EOF
		}
		return nil, coreerr.New(coreerr.KindBgzfCorrupt, "", err)
	}
	if header[0] != gzipID1 || header[1] != gzipID2 {
		return nil, coreerr.New(coreerr.KindBgzfCorrupt, "", errors.New("bad gzip magic"))
	}
	if header[3]&flagExtra == 0 {
		return nil, coreerr.New(coreerr.KindBgzfCorrupt, "", errors.New("member has no extra field"))
	}

	xlen := int(binary.LittleEndian.Uint16(header[10:12]))
	extra := make([]byte, xlen)
	if _, err := io.ReadFull(br.r, extra); err != nil {
		return nil, coreerr.New(coreerr.KindBgzfCorrupt, "", err)
	}

	bsize, ok := findBSIZE(extra)
	if !ok {
		return nil, coreerr.New(coreerr.KindBgzfCorrupt, "", errors.New("missing BC subfield"))
	}

	totalLen := int(bsize) + 1
	consumed := len(header) + xlen
	remaining := totalLen - consumed
	if remaining < 8 {
		return nil, coreerr.New(coreerr.KindBgzfCorrupt, "", errors.New("block shorter than its footer"))
	}
	rest := make([]byte, remaining)
	if _, err := io.ReadFull(br.r, rest); err != nil {
		return nil, coreerr.New(coreerr.KindBgzfCorrupt, "", err)
	}

	raw := make([]byte, 0, totalLen)
	raw = append(raw, header...)
	raw = append(raw, extra...)
	raw = append(raw, rest...)

	isize := binary.LittleEndian.Uint32(raw[len(raw)-4:])
	br.offset += uint64(totalLen)
	return &Block{Raw: raw, UncompressedSize: isize}, nil
}

func findBSIZE(extra []byte) (uint16, bool) {
	i := 0
	for i+4 <= len(extra) {
		si1, si2 := extra[i], extra[i+1]
		slen := int(binary.LittleEndian.Uint16(extra[i+2 : i+4]))
		if si1 == bgzfSI1 && si2 == bgzfSI2 && slen == 2 && i+6 <= len(extra) {
			return binary.LittleEndian.Uint16(extra[i+4 : i+6]), true
		}
		i += 4 + slen
	}
	return 0, false
}
