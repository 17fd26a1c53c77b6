package sample

// Sample is a single per-sample record parsed from a VCF sample column.
// Every field is optional except IsEmpty and FailedFilter/IsLossOfHeterozygosity,
// which are plain booleans that default to false rather than carrying a
// third "undefined" state.
type Sample struct {
	IsEmpty bool

	Genotype        *string
	GenotypeQuality *int
	TotalDepth      *int
	AlleleDepths    []int // [ref, alt] when defined
	VariantFrequency *float64
	FailedFilter    bool

	PairEndReadCounts []int // [ref, alt]
	SplitReadCounts   []int // [ref, alt]
	DeNovoQuality     *int

	CopyNumber              *int
	MajorChromosomeCopy     *int
	IsLossOfHeterozygosity  bool

	DiseaseAffectedStatus         *string
	DiseaseIDs                    []string
	DiseaseClassificationSources  []string
	SilentCarrierHaplotype        *string
	ParalogousGeneCopyNumbers     []int
	ParalogousEntrezGeneIDs       []int
	MpileupAlleleDepths           []int
	ClinicalHotspotClass          *string // CHC
	ParalogousChromosomeHint      *string // PCH: consumed per the FORMAT tag list but given no
	                                      // derivation rule in the spec; captured verbatim.
}

// Empty returns the sentinel empty sample: a column that was exactly "."
// or the empty string.
func Empty() *Sample {
	return &Sample{IsEmpty: true}
}
