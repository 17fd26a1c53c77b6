package factory

import (
	"regexp"
	"strconv"

	"github.com/varcore/varcore/internal/coreerr"
	"github.com/varcore/varcore/internal/variant"
)

// Breakend grammars are compiled once at process lifetime, not per call,
// the way the donor's HGVS-style variant-spec regexes are package-level
// regexp.MustCompile vars (internal/annotate/variant_spec.go in the donor).
var (
	// Forward form: <seq>[CHR:POS[  or  <seq>]CHR:POS]
	reForwardBreakend = regexp.MustCompile(`^\w+([\[\]])([^:]+):(\d+)([\[\]])$`)
	// Reverse form: [CHR:POS[<seq>  or  ]CHR:POS]<seq>
	reReverseBreakend = regexp.MustCompile(`^([\[\]])([^:]+):(\d+)([\[\]])\w+$`)
)

// SymbolicBreakEnds derives the canonical breakend pair for a symbolic SV
// per §4.3.2. Returns nil if END is absent, or if the SV type/orientation
// combination has no defined breakend pair.
func SymbolicBreakEnds(chrom *variant.Chromosome, start int64, info *variant.InfoData) []*variant.BreakEnd {
	if !info.HasEnd() {
		return nil
	}
	end := *info.End

	switch info.SVType {
	case variant.SVTypeDeletion:
		return []*variant.BreakEnd{
			{Chromosome1: chrom, Chromosome2: chrom, Position1: start, Position2: end + 1, IsSuffix1: false, IsSuffix2: true},
			{Chromosome1: chrom, Chromosome2: chrom, Position1: end + 1, Position2: start, IsSuffix1: true, IsSuffix2: false},
		}
	case variant.SVTypeDuplication, variant.SVTypeTandemDuplication:
		return []*variant.BreakEnd{
			{Chromosome1: chrom, Chromosome2: chrom, Position1: end, Position2: start, IsSuffix1: false, IsSuffix2: true},
			{Chromosome1: chrom, Chromosome2: chrom, Position1: start, Position2: end, IsSuffix1: true, IsSuffix2: false},
		}
	case variant.SVTypeInversion:
		switch {
		case info.IsInv3:
			return []*variant.BreakEnd{
				{Chromosome1: chrom, Chromosome2: chrom, Position1: start, Position2: end, IsSuffix1: false, IsSuffix2: false},
				{Chromosome1: chrom, Chromosome2: chrom, Position1: end, Position2: start, IsSuffix1: false, IsSuffix2: false},
			}
		case info.IsInv5:
			return []*variant.BreakEnd{
				{Chromosome1: chrom, Chromosome2: chrom, Position1: start + 1, Position2: end + 1, IsSuffix1: true, IsSuffix2: true},
				{Chromosome1: chrom, Chromosome2: chrom, Position1: end + 1, Position2: start + 1, IsSuffix1: true, IsSuffix2: true},
			}
		default:
			return []*variant.BreakEnd{
				{Chromosome1: chrom, Chromosome2: chrom, Position1: start, Position2: end, IsSuffix1: false, IsSuffix2: false},
				{Chromosome1: chrom, Chromosome2: chrom, Position1: end + 1, Position2: start + 1, IsSuffix1: true, IsSuffix2: true},
			}
		}
	default:
		return nil
	}
}

// ParseBreakendAlt parses an explicit breakend alt allele (§4.3.3). The
// shape (forward vs. reverse) is chosen by testing whether alt starts with
// ref. chromLookup resolves the partner chromosome name.
func ParseBreakendAlt(chromLookup variant.ChromosomeLookup, selfChrom *variant.Chromosome, pos1 int64, ref, alt string) (*variant.BreakEnd, error) {
	forward := len(alt) >= len(ref) && alt[:len(ref)] == ref

	if forward {
		m := reForwardBreakend.FindStringSubmatch(alt)
		if m == nil {
			return nil, coreerr.New(coreerr.KindBreakendParse, alt, nil)
		}
		pos2, err := strconv.ParseInt(m[3], 10, 64)
		if err != nil {
			return nil, coreerr.New(coreerr.KindBreakendParse, alt, err)
		}
		chrom2 := chromLookup.Lookup(m[2])
		return &variant.BreakEnd{
			Chromosome1: selfChrom,
			Chromosome2: chrom2,
			Position1:   pos1,
			Position2:   pos2,
			IsSuffix1:   false,
			IsSuffix2:   m[4] == "[",
		}, nil
	}

	m := reReverseBreakend.FindStringSubmatch(alt)
	if m == nil {
		return nil, coreerr.New(coreerr.KindBreakendParse, alt, nil)
	}
	pos2, err := strconv.ParseInt(m[3], 10, 64)
	if err != nil {
		return nil, coreerr.New(coreerr.KindBreakendParse, alt, err)
	}
	chrom2 := chromLookup.Lookup(m[2])
	return &variant.BreakEnd{
		Chromosome1: selfChrom,
		Chromosome2: chrom2,
		Position1:   pos1,
		Position2:   pos2,
		IsSuffix1:   true,
		IsSuffix2:   m[1] == "[",
	}, nil
}
