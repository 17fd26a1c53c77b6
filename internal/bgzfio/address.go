// Package bgzfio implements C4: reading a BGZF stream block by block
// without decompressing bodies, and a sidecar index recording the
// virtual-offset span of named sections within such a stream.
package bgzfio

import (
	"bytes"
	"encoding/base64"
	"strconv"

	"github.com/varcore/varcore/internal/coreerr"
)

// MaxBlockSize is the maximum size, compressed or uncompressed, of a single
// BGZF member.
const MaxBlockSize = 65536

// VirtualOffset is a BGZF virtual file offset: the high 48 bits are the file
// offset to the start of a BGZF member, the low 16 bits are an offset into
// that member's decompressed content. Grounded on googlegenomics-htsget's
// bgzf.Address.
type VirtualOffset uint64

// BlockOffset returns the file offset of the member this offset points into.
func (v VirtualOffset) BlockOffset() uint64 {
	return uint64(v >> 16)
}

// DataOffset returns the offset into the member's decompressed content.
func (v VirtualOffset) DataOffset() uint16 {
	return uint16(v & 0xffff)
}

// NewVirtualOffset packs a block offset and a data offset into one address.
func NewVirtualOffset(blockOffset uint64, dataOffset uint16) VirtualOffset {
	return VirtualOffset(blockOffset<<16 | uint64(dataOffset))
}

// String renders v as a hex scalar, parseable by ParseVirtualOffset.
func (v VirtualOffset) String() string {
	return strconv.FormatUint(uint64(v), 16)
}

// ParseVirtualOffset parses the hex form produced by String.
func ParseVirtualOffset(s string) (VirtualOffset, error) {
	u, err := strconv.ParseUint(s, 16, 64)
	return VirtualOffset(u), err
}

// MarshalJSON encodes v as the sidecar index's compact offset encoding: a
// base-128 varint (ReadOptInt7bit/WriteOptInt7bit in varint.go), wrapped in
// a base64 string so it survives as JSON text.
func (v VirtualOffset) MarshalJSON() ([]byte, error) {
	s := base64.StdEncoding.EncodeToString(WriteOptInt7bit(int64(v)))
	return []byte(strconv.Quote(s)), nil
}

// UnmarshalJSON decodes the compact offset encoding produced by MarshalJSON.
// Fails with coreerr.KindOptInt7bit if the varint does not terminate within
// the decoded byte span.
func (v *VirtualOffset) UnmarshalJSON(data []byte) error {
	s, err := strconv.Unquote(string(data))
	if err != nil {
		return coreerr.New(coreerr.KindOptInt7bit, "", err)
	}
	raw, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return coreerr.New(coreerr.KindOptInt7bit, "", err)
	}
	n, err := ReadOptInt7bit(bytes.NewReader(raw), len(raw))
	if err != nil {
		return err
	}
	*v = VirtualOffset(n)
	return nil
}
