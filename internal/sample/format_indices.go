// Package sample implements C2: parsing a VCF record's FORMAT descriptor and
// each per-sample column into a typed Sample value.
package sample

import "strings"

// recognizedTags lists every FORMAT tag the extractor interprets. Tags not
// in this set are skipped silently when building FormatIndices.
var recognizedTags = map[string]bool{
	"GT": true, "GQ": true, "GQX": true, "DP": true, "DPI": true, "DPF": true,
	"AD": true, "VF": true, "TIR": true, "TAR": true, "NR": true, "NV": true,
	"AU": true, "CU": true, "GU": true, "TU": true, "FT": true, "PR": true,
	"SR": true, "DQ": true, "CN": true, "MCC": true, "DST": true, "DID": true,
	"DCS": true, "SCH": true, "PCN": true, "PLG": true, "MAD": true, "CHC": true,
	"PCH": true,
}

// FormatIndices maps a recognized FORMAT tag to its column index within the
// colon-delimited per-sample fields. A tag absent from the FORMAT
// descriptor (or not in recognizedTags) has no entry; Index reports that as
// -1, the "undefined index" value.
type FormatIndices map[string]int

// ParseFormatIndices builds a FormatIndices from the FORMAT column. A null
// FORMAT ("." or empty) yields an empty (all-undefined) FormatIndices.
// Unrecognized tags are skipped silently.
func ParseFormatIndices(format string) FormatIndices {
	indices := make(FormatIndices)
	if format == "" || format == "." {
		return indices
	}
	for i, tag := range strings.Split(format, ":") {
		if recognizedTags[tag] {
			indices[tag] = i
		}
	}
	return indices
}

// Index returns the column index of tag, or -1 if it is undefined.
func (f FormatIndices) Index(tag string) int {
	if f == nil {
		return -1
	}
	if i, ok := f[tag]; ok {
		return i
	}
	return -1
}

// Has reports whether tag has a defined column index.
func (f FormatIndices) Has(tag string) bool {
	return f.Index(tag) != -1
}

// HasAll reports whether every listed tag has a defined column index.
func (f FormatIndices) HasAll(tags ...string) bool {
	for _, t := range tags {
		if !f.Has(t) {
			return false
		}
	}
	return true
}
