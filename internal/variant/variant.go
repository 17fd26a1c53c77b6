package variant

// VariantType is the observable type tag attached to a constructed Variant.
type VariantType string

const (
	TypeSNV                         VariantType = "SNV"
	TypeInsertion                   VariantType = "insertion"
	TypeDeletion                    VariantType = "deletion"
	TypeMNV                         VariantType = "MNV"
	TypeIndel                       VariantType = "indel"
	TypeReference                   VariantType = "reference"
	TypeTranslocationBreakend       VariantType = "translocation_breakend"
	TypeTandemDuplication           VariantType = "tandem_duplication"
	TypeDuplication                 VariantType = "duplication"
	TypeInversion                   VariantType = "inversion"
	TypeCopyNumberVariation         VariantType = "copy_number_variation"
	TypeShortTandemRepeatVariation  VariantType = "short_tandem_repeat_variation"
	TypeComplexStructuralAlteration VariantType = "complex_structural_alteration"
)

// Category is the internal dispatch tag the factory uses to pick a
// constructor. It is never exposed on the resulting Variant.
type Category int

const (
	CategoryReference Category = iota
	CategorySmallVariant
	CategorySV
	CategoryCNV
	CategoryRepeatExpansion
)

func (c Category) String() string {
	switch c {
	case CategoryReference:
		return "Reference"
	case CategorySmallVariant:
		return "SmallVariant"
	case CategorySV:
		return "SV"
	case CategoryCNV:
		return "CNV"
	case CategoryRepeatExpansion:
		return "RepeatExpansion"
	default:
		return "Unknown"
	}
}

// BreakEnd is a single junction of a structural variant. IsSuffix means "the
// joined piece continues in the reference-forward direction starting at
// this coordinate" — the base at Position is the first base of the
// adjacent piece.
type BreakEnd struct {
	Chromosome1 *Chromosome
	Chromosome2 *Chromosome
	Position1   int64
	Position2   int64
	IsSuffix1   bool
	IsSuffix2   bool
}

// Variant is the normalized representation of a single alt allele on a VCF
// line. It is immutable after construction: all fields are set once by a
// factory function and never mutated.
type Variant struct {
	Chromosome *Chromosome
	Start      int64 // 1-based inclusive
	End        int64
	Ref        string
	Alt        string
	Type       VariantType
	BreakEnds  []*BreakEnd // nil unless the variant is a structural variant

	// GlobalMajorAllele is set only on Reference-category variants at a
	// ref-minor site.
	GlobalMajorAllele string
	HasGlobalMajor    bool
}

// SVType is the symbolic structural-variant kind carried by INFO's SVTYPE.
type SVType int

const (
	SVTypeNone SVType = iota
	SVTypeDeletion
	SVTypeDuplication
	SVTypeTandemDuplication
	SVTypeInversion
	SVTypeInsertion
	SVTypeCNV
	SVTypeBND
	SVTypeSTR
)

// InfoData is the typed result of parsing a VCF record's INFO column (C1).
type InfoData struct {
	SVType SVType
	End    *int64 // nil if END was absent
	IsInv3 bool
	IsInv5 bool
	// CopyNumber is a bare CN=<int> INFO hint, when present. Distinct from
	// the per-sample CN field parsed by the sample extractor.
	CopyNumber *int
}

// HasEnd reports whether END was present in the INFO field.
func (d *InfoData) HasEnd() bool {
	return d != nil && d.End != nil
}
