package bgzfio

import (
	"errors"
	"io"

	"github.com/varcore/varcore/internal/coreerr"
)

const maxVarintBytes = 10 // enough 7-bit groups for a full 64-bit value

// boundedByteReader reads from an io.ByteReader but fails, rather than
// blocking past it, once more than limit bytes have been consumed. Shaped
// after carbocation-bgen's bitReader: a small stateful wrapper over an
// io.ByteReader that can't read past the field it was handed.
type boundedByteReader struct {
	reader io.ByteReader
	read   int
	limit  int
}

func newBoundedByteReader(r io.ByteReader, limit int) *boundedByteReader {
	return &boundedByteReader{reader: r, limit: limit}
}

func (r *boundedByteReader) ReadByte() (byte, error) {
	if r.read >= r.limit {
		return 0, io.ErrUnexpectedEOF
	}
	b, err := r.reader.ReadByte()
	if err != nil {
		return 0, err
	}
	r.read++
	return b, nil
}

// ReadOptInt7bit decodes a little-endian base-128 varint (continuation bit
// set in the high bit of each byte) from r. This is the sidecar index's
// compact integer encoding: each value costs one byte per 7 bits of
// magnitude, and zero is a single zero byte; there is no separate encoding
// for an absent value. Fails with
// coreerr.KindOptInt7bit if the value does not terminate within maxBytes.
func ReadOptInt7bit(r io.ByteReader, maxBytes int) (int64, error) {
	br := newBoundedByteReader(r, maxBytes)
	var result uint64
	var shift uint
	for i := 0; i < maxVarintBytes; i++ {
		b, err := br.ReadByte()
		if err != nil {
			return 0, coreerr.New(coreerr.KindOptInt7bit, "", err)
		}
		result |= uint64(b&0x7f) << shift
		if b&0x80 == 0 {
			return int64(result), nil
		}
		shift += 7
	}
	return 0, coreerr.New(coreerr.KindOptInt7bit, "", errors.New("varint did not terminate within its advertised span"))
}

// WriteOptInt7bit encodes v as a little-endian base-128 varint.
func WriteOptInt7bit(v int64) []byte {
	u := uint64(v)
	var out []byte
	for {
		b := byte(u & 0x7f)
		u >>= 7
		if u != 0 {
			out = append(out, b|0x80)
			continue
		}
		out = append(out, b)
		break
	}
	return out
}
