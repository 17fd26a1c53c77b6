package bgzfio

import (
	"errors"
	"io"

	json "github.com/goccy/go-json"

	"github.com/varcore/varcore/internal/coreerr"
)

// Well-known section names inside a stitcher sidecar ("jasix") index.
const (
	SectionPositions = "positions"
	SectionGenes     = "genes"
)

// SectionSpan is the virtual-offset range of one section inside a
// BGZF-compressed JSON output.
type SectionSpan struct {
	Begin VirtualOffset `json:"begin"`
	End   VirtualOffset `json:"end"`
}

// SidecarIndex maps a section name to its span, the companion index a
// stitcher input carries alongside its compressed JSON body.
type SidecarIndex struct {
	Sections map[string]SectionSpan `json:"sections"`
}

// DecodeSidecarIndex reads a sidecar index using goccy/go-json. A failure
// decoding a VirtualOffset's compact varint encoding (coreerr.KindOptInt7bit)
// is returned as-is rather than masked as KindBgzfCorrupt.
func DecodeSidecarIndex(r io.Reader) (*SidecarIndex, error) {
	var idx SidecarIndex
	if err := json.NewDecoder(r).Decode(&idx); err != nil {
		var coreErr *coreerr.Error
		if errors.As(err, &coreErr) {
			return nil, err
		}
		return nil, coreerr.New(coreerr.KindBgzfCorrupt, "", err)
	}
	return &idx, nil
}

// Encode writes idx using goccy/go-json.
func (idx *SidecarIndex) Encode(w io.Writer) error {
	return json.NewEncoder(w).Encode(idx)
}

// Span looks up a named section's virtual-offset range.
func (idx *SidecarIndex) Span(section string) (SectionSpan, bool) {
	s, ok := idx.Sections[section]
	return s, ok
}
