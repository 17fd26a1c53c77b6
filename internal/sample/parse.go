package sample

import (
	"strconv"
	"strings"
)

// Options carries the per-line context the extractor needs beyond the
// sample column itself: the ref/alt alleles (to resolve which Strelka
// per-base counter corresponds to which allele), whether the line is
// multi-allelic (several tie-break rules are single-alt only), and an
// optional caller-supplied total-depth override used for callers (Pisces)
// that put depth on the line rather than in FORMAT.
type Options struct {
	Ref          string
	Alt          string
	MultiAllelic bool
	LineDP       *int
}

// Parse interprets a single sample column against the given FormatIndices.
// A column of exactly "." or "" yields the empty sample.
func Parse(indices FormatIndices, column string, opts Options) *Sample {
	if column == "" || column == "." {
		return Empty()
	}

	fields := strings.Split(column, ":")
	get := func(tag string) (string, bool) {
		i := indices.Index(tag)
		if i < 0 || i >= len(fields) {
			return "", false
		}
		v := fields[i]
		if v == "." || v == "" {
			return "", false
		}
		return v, true
	}

	s := &Sample{}
	s.Genotype = parseGenotype(get)
	s.GenotypeQuality = parseGenotypeQuality(get)
	s.FailedFilter = parseFailedFilter(get)
	s.DeNovoQuality = parseOptInt(get, "DQ")
	s.PairEndReadCounts = parseIntPair(get, "PR")
	s.SplitReadCounts = parseIntPair(get, "SR")

	s.CopyNumber = parseOptInt(get, "CN")
	s.MajorChromosomeCopy = parseOptInt(get, "MCC")
	s.IsLossOfHeterozygosity = computeLOH(s.CopyNumber, s.MajorChromosomeCopy)

	s.DiseaseAffectedStatus = parseOptString(get, "DST")
	s.DiseaseIDs = parseStringList(get, "DID")
	s.DiseaseClassificationSources = parseStringList(get, "DCS")
	s.SilentCarrierHaplotype = parseOptString(get, "SCH")
	s.ParalogousGeneCopyNumbers = parseIntList(get, "PCN")
	s.ParalogousEntrezGeneIDs = parseIntList(get, "PLG")
	s.MpileupAlleleDepths = parseIntList(get, "MAD")
	s.ClinicalHotspotClass = parseOptString(get, "CHC")
	s.ParalogousChromosomeHint = parseOptString(get, "PCH")

	adSource, ref, alt, adOK := selectAlleleDepths(indices, get, opts)
	if adOK {
		s.AlleleDepths = []int{ref, alt}
	}
	s.VariantFrequency = computeVariantFrequency(get, adSource, ref, alt, adOK)
	s.TotalDepth = selectTotalDepth(indices, get, opts)

	return s
}

// parseGenotype implements the GT tie-break: a leading-"." GT whose first
// allele is unknown yields undefined, except the literal fully-missing
// "./." which is preserved verbatim.
func parseGenotype(get func(string) (string, bool)) *string {
	raw, ok := get("GT")
	if !ok {
		return nil
	}
	if strings.HasPrefix(raw, ".") && raw != "./." {
		return nil
	}
	v := raw
	return &v
}

// parseGenotypeQuality prefers GQX over GQ when both are present.
func parseGenotypeQuality(get func(string) (string, bool)) *int {
	if v, ok := get("GQX"); ok {
		if n, err := strconv.Atoi(v); err == nil {
			return &n
		}
		return nil
	}
	if v, ok := get("GQ"); ok {
		if n, err := strconv.Atoi(v); err == nil {
			return &n
		}
	}
	return nil
}

// parseFailedFilter: FT is true iff the value is neither PASS, "." nor empty.
// Absent FT defaults to false.
func parseFailedFilter(get func(string) (string, bool)) bool {
	v, ok := get("FT")
	if !ok {
		return false
	}
	return v != "PASS"
}

func parseOptInt(get func(string) (string, bool), tag string) *int {
	v, ok := get(tag)
	if !ok {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return nil
	}
	return &n
}

func parseOptString(get func(string) (string, bool), tag string) *string {
	v, ok := get(tag)
	if !ok {
		return nil
	}
	return &v
}

func parseIntList(get func(string) (string, bool), tag string) []int {
	v, ok := get(tag)
	if !ok {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]int, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			continue
		}
		out = append(out, n)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func parseStringList(get func(string) (string, bool), tag string) []string {
	v, ok := get(tag)
	if !ok {
		return nil
	}
	return strings.Split(v, ",")
}

func parseIntPair(get func(string) (string, bool), tag string) []int {
	v, ok := get(tag)
	if !ok {
		return nil
	}
	parts := strings.SplitN(v, ",", 2)
	if len(parts) != 2 {
		return nil
	}
	ref, err1 := strconv.Atoi(parts[0])
	alt, err2 := strconv.Atoi(parts[1])
	if err1 != nil || err2 != nil {
		return nil
	}
	return []int{ref, alt}
}

// computeLOH: true iff MCC equals CN, both are defined, and CN >= 2.
//
// Open question (documented as-is, not guessed): a domain scenario with
// MCC=4, CN=6 expects IsLossOfHeterozygosity=false, which this MCC==CN
// contract already yields (4 != 6). Whether the intended contract is
// actually MCC<CN implying heterozygous is left unresolved per the spec.
func computeLOH(cn, mcc *int) bool {
	if cn == nil || mcc == nil {
		return false
	}
	return *mcc == *cn && *cn >= 2
}

func tier1(v string) (int, bool) {
	first, _, _ := strings.Cut(v, ",")
	n, err := strconv.Atoi(first)
	if err != nil {
		return 0, false
	}
	return n, true
}

// strelkaBaseTag maps a single-base allele to its Strelka per-base FORMAT
// tag (AU/CU/GU/TU).
func strelkaBaseTag(base string) (string, bool) {
	switch base {
	case "A", "a":
		return "AU", true
	case "C", "c":
		return "CU", true
	case "G", "g":
		return "GU", true
	case "T", "t":
		return "TU", true
	default:
		return "", false
	}
}

type adSourceKind int

const (
	adSourceNone adSourceKind = iota
	adSourceTierCounts
	adSourceNRNV
	adSourceStrelkaBases
	adSourceAD
)

// selectAlleleDepths implements the §4.2.2 allele-depth tie-break chain.
func selectAlleleDepths(indices FormatIndices, get func(string) (string, bool), opts Options) (adSourceKind, int, int, bool) {
	if !opts.MultiAllelic {
		if indices.HasAll("TAR", "TIR") {
			tar, tarOK := get("TAR")
			tir, tirOK := get("TIR")
			if tarOK && tirOK {
				refN, ok1 := tier1(tar)
				altN, ok2 := tier1(tir)
				if ok1 && ok2 {
					return adSourceTierCounts, refN, altN, true
				}
			}
		}

		if indices.HasAll("NR", "NV") {
			nr, nrOK := get("NR")
			nv, nvOK := get("NV")
			if nrOK && nvOK {
				nrN, err1 := strconv.Atoi(nr)
				nvN, err2 := strconv.Atoi(nv)
				if err1 == nil && err2 == nil {
					return adSourceNRNV, nrN - nvN, nvN, true
				}
			}
		}

		if indices.HasAll("AU", "CU", "GU", "TU") && len(opts.Ref) == 1 && len(opts.Alt) == 1 {
			refTag, refOK := strelkaBaseTag(opts.Ref)
			altTag, altOK := strelkaBaseTag(opts.Alt)
			if refOK && altOK {
				refRaw, refPresent := get(refTag)
				altRaw, altPresent := get(altTag)
				if refPresent && altPresent {
					refN, ok1 := tier1(refRaw)
					altN, ok2 := tier1(altRaw)
					if ok1 && ok2 {
						return adSourceStrelkaBases, refN, altN, true
					}
				}
				// Falls through to AD below per spec: "if (c) selects a base
				// whose tier-1 cell is '.', fall through to (d)."
			}
		}
	}

	if v, ok := get("AD"); ok {
		parts := strings.Split(v, ",")
		if len(parts) >= 2 {
			refN, err1 := strconv.Atoi(parts[0])
			altN, err2 := strconv.Atoi(parts[1])
			if err1 == nil && err2 == nil {
				return adSourceAD, refN, altN, true
			}
		}
	}

	return adSourceNone, 0, 0, false
}

// computeVariantFrequency derives VF from the allele-depth source selected
// above, honoring an explicit VF override for the (a)/(b) sources per
// §4.2.2.
func computeVariantFrequency(get func(string) (string, bool), src adSourceKind, ref, alt int, adOK bool) *float64 {
	if vfRaw, ok := get("VF"); ok && (src == adSourceTierCounts || src == adSourceNRNV) {
		if vf, err := strconv.ParseFloat(vfRaw, 64); err == nil {
			return roundClampVF(vf)
		}
	}

	if !adOK {
		return nil
	}

	denom := ref + alt
	if denom == 0 {
		zero := 0.0
		return &zero
	}
	vf := float64(alt) / float64(denom)
	return roundClampVF(vf)
}

func roundClampVF(vf float64) *float64 {
	if vf < 0 {
		vf = 0
	}
	if vf > 1 {
		vf = 1
	}
	rounded := float64(int64(vf*10000+0.5)) / 10000
	return &rounded
}

// selectTotalDepth implements the §4.2.2 total-depth tie-break chain. The
// NR-direct form is this implementation's resolution of the spec's
// otherwise-unlisted "NR-variant form [disabled on multi-alt records]":
// NR alone (total reads) serves as a single-alt-only source ranked
// alongside the Strelka-derived sources, before falling back to DPI/DP/the
// caller-supplied override.
func selectTotalDepth(indices FormatIndices, get func(string) (string, bool), opts Options) *int {
	if !opts.MultiAllelic {
		if indices.HasAll("TAR", "TIR") {
			tar, tarOK := get("TAR")
			tir, tirOK := get("TIR")
			if tarOK && tirOK {
				refN, ok1 := tier1(tar)
				altN, ok2 := tier1(tir)
				if ok1 && ok2 {
					total := refN + altN
					return &total
				}
				return nil
			}
		}

		if indices.HasAll("AU", "CU", "GU", "TU") {
			au, auOK := get("AU")
			cu, cuOK := get("CU")
			gu, guOK := get("GU")
			tu, tuOK := get("TU")
			if auOK && cuOK && guOK && tuOK {
				auN, ok1 := tier1(au)
				cuN, ok2 := tier1(cu)
				guN, ok3 := tier1(gu)
				tuN, ok4 := tier1(tu)
				if ok1 && ok2 && ok3 && ok4 {
					total := auN + cuN + guN + tuN
					return &total
				}
				return nil
			}
		}

		if indices.Has("NR") {
			nr, ok := get("NR")
			if !ok {
				return nil
			}
			if n, err := strconv.Atoi(nr); err == nil {
				return &n
			}
			return nil
		}
	}

	if indices.Has("DPI") {
		v, ok := get("DPI")
		if !ok {
			return nil
		}
		if n, err := strconv.Atoi(v); err == nil {
			return &n
		}
		return nil
	}

	if indices.Has("DP") {
		v, ok := get("DP")
		if !ok {
			return nil
		}
		if n, err := strconv.Atoi(v); err == nil {
			return &n
		}
		return nil
	}

	if opts.LineDP != nil {
		n := *opts.LineDP
		return &n
	}

	return nil
}
