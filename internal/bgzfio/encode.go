package bgzfio

import (
	"bytes"
	"errors"

	"github.com/klauspost/compress/gzip"

	"github.com/varcore/varcore/internal/coreerr"
)

// EncodeBlock compresses data into one complete, self-contained BGZF
// member. Grounded on googlegenomics-htsget's bgzf.EncodeBlock: the BC
// extra subfield is written with a placeholder BSIZE and patched in place
// once the true member length is known, since the gzip writer only reports
// the final size after Close.
func EncodeBlock(data []byte) ([]byte, error) {
	if len(data) > MaxBlockSize {
		return nil, coreerr.New(coreerr.KindBgzfCorrupt, "", errors.New("block payload exceeds the maximum BGZF block size"))
	}

	var buf bytes.Buffer
	gzw := gzip.NewWriter(&buf)
	gzw.Header.Extra = []byte{
		bgzfSI1, bgzfSI2,
		0x02, 0x00,
		0x88, 0x88, // BSIZE placeholder, patched below
	}
	if _, err := gzw.Write(data); err != nil {
		return nil, coreerr.New(coreerr.KindBgzfCorrupt, "", err)
	}
	if err := gzw.Close(); err != nil {
		return nil, coreerr.New(coreerr.KindBgzfCorrupt, "", err)
	}

	bsize := buf.Len() - 1
	encoded := buf.Bytes()
	encoded[16] = byte(bsize)
	encoded[17] = byte(bsize >> 8)
	return encoded, nil
}

// EOFMarker is the standard empty BGZF end-of-file block.
var EOFMarker = []byte{
	0x1f, 0x8b, 0x08, 0x04, 0x00, 0x00, 0x00, 0x00, 0x00, 0xff, 0x06, 0x00,
	0x42, 0x43, 0x02, 0x00, 0x1b, 0x00, 0x03, 0x00, 0x00, 0x00, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x00,
}
