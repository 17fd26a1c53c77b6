package factory

import (
	"strconv"
	"strings"

	"github.com/varcore/varcore/internal/coreerr"
	"github.com/varcore/varcore/internal/variant"
)

// Create classifies alts (§4.3.1) and constructs the ordered array of
// variants for one VCF call line. Returns nil (never an empty slice) when
// every alt is non-informative. sampleCN, when non-nil, is the per-sample
// copy-number hint some callers (e.g. Manta) attach outside INFO; it is
// informational only and does not affect classification.
func Create(
	chromLookup variant.ChromosomeLookup,
	refMinor variant.RefMinorProvider,
	chromName string,
	pos int64,
	ref string,
	alts []string,
	info *variant.InfoData,
	sampleCN *int,
) ([]*variant.Variant, error) {
	chrom := chromLookup.Lookup(chromName)
	category := Classify(alts)
	return createForCategory(chromLookup, chrom, refMinor, category, pos, ref, alts, info)
}

// createForCategory dispatches on an already-classified category. Split out
// of Create so the default branch (an out-of-range Category, which Classify
// itself never produces) is directly reachable from tests without needing a
// contrived alts input.
func createForCategory(
	chromLookup variant.ChromosomeLookup,
	chrom *variant.Chromosome,
	refMinor variant.RefMinorProvider,
	category variant.Category,
	pos int64,
	ref string,
	alts []string,
	info *variant.InfoData,
) ([]*variant.Variant, error) {
	switch category {
	case variant.CategoryReference:
		return createReference(chrom, refMinor, pos, ref, alts[0]), nil
	case variant.CategorySmallVariant:
		return createSmallVariants(chrom, pos, ref, alts), nil
	case variant.CategorySV:
		return createSVs(chromLookup, chrom, pos, ref, alts, info)
	case variant.CategoryCNV:
		return createCategoryVariants(chrom, pos, ref, alts, info, variant.TypeCopyNumberVariation), nil
	case variant.CategoryRepeatExpansion:
		return createCategoryVariants(chrom, pos, ref, alts, info, variant.TypeShortTandemRepeatVariation), nil
	default:
		return nil, coreerr.New(coreerr.KindUnknownCategory, category.String(), nil)
	}
}

func createReference(chrom *variant.Chromosome, refMinor variant.RefMinorProvider, pos int64, ref, alt string) []*variant.Variant {
	v := &variant.Variant{
		Chromosome: chrom,
		Start:      pos,
		End:        pos + int64(len(ref)) - 1,
		Ref:        ref,
		Alt:        alt,
		Type:       variant.TypeReference,
	}
	if major, ok := refMinor.GlobalMajorAllele(chrom, pos); ok {
		v.GlobalMajorAllele = major
		v.HasGlobalMajor = true
	}
	return []*variant.Variant{v}
}

func createSmallVariants(chrom *variant.Chromosome, pos int64, ref string, alts []string) []*variant.Variant {
	var out []*variant.Variant
	for _, alt := range alts {
		if nonInformativeAlts[alt] || alt == "." {
			continue
		}
		out = append(out, &variant.Variant{
			Chromosome: chrom,
			Start:      pos,
			End:        pos + int64(len(ref)) - 1,
			Ref:        ref,
			Alt:        alt,
			Type:       classifySmallType(ref, alt),
		})
	}
	return out
}

// classifySmallType distinguishes SNV/MNV/insertion/deletion/indel the way
// the donor's Variant.IsSNV/IsIndel/IsInsertion/IsDeletion helpers do
// (internal/vcf/variant.go), generalized to also name the complex-indel
// case where neither allele is a single base.
func classifySmallType(ref, alt string) variant.VariantType {
	switch {
	case len(ref) == len(alt):
		if len(ref) == 1 {
			return variant.TypeSNV
		}
		return variant.TypeMNV
	case len(alt) > len(ref):
		if len(ref) == 1 {
			return variant.TypeInsertion
		}
		return variant.TypeIndel
	default: // len(ref) > len(alt)
		if len(alt) == 1 {
			return variant.TypeDeletion
		}
		return variant.TypeIndel
	}
}

func createSVs(chromLookup variant.ChromosomeLookup, chrom *variant.Chromosome, pos int64, ref string, alts []string, info *variant.InfoData) ([]*variant.Variant, error) {
	var out []*variant.Variant
	for _, alt := range alts {
		if nonInformativeAlts[alt] || alt == "." {
			continue
		}

		if strings.ContainsAny(alt, "[]") {
			be, err := ParseBreakendAlt(chromLookup, chrom, pos, ref, alt)
			if err != nil {
				return nil, err
			}
			out = append(out, &variant.Variant{
				Chromosome: chrom,
				Start:      pos,
				End:        pos,
				Ref:        ref,
				Alt:        alt,
				Type:       variant.TypeTranslocationBreakend,
				BreakEnds:  []*variant.BreakEnd{be},
			})
			continue
		}

		end := pos
		if info.HasEnd() {
			end = *info.End
		}
		out = append(out, &variant.Variant{
			Chromosome: chrom,
			Start:      pos,
			End:        end,
			Ref:        ref,
			Alt:        alt,
			Type:       symbolicSVType(info.SVType),
			BreakEnds:  SymbolicBreakEnds(chrom, pos, info),
		})
	}
	return out, nil
}

func symbolicSVType(t variant.SVType) variant.VariantType {
	switch t {
	case variant.SVTypeDeletion:
		return variant.TypeDeletion
	case variant.SVTypeDuplication:
		return variant.TypeDuplication
	case variant.SVTypeTandemDuplication:
		return variant.TypeTandemDuplication
	case variant.SVTypeInversion:
		return variant.TypeInversion
	default:
		return variant.TypeComplexStructuralAlteration
	}
}

func createCategoryVariants(chrom *variant.Chromosome, pos int64, ref string, alts []string, info *variant.InfoData, t variant.VariantType) []*variant.Variant {
	var out []*variant.Variant
	for _, alt := range alts {
		if nonInformativeAlts[alt] || alt == "." {
			continue
		}
		end := pos
		if info.HasEnd() {
			end = *info.End
		}
		out = append(out, &variant.Variant{
			Chromosome: chrom,
			Start:      pos,
			End:        end,
			Ref:        ref,
			Alt:        alt,
			Type:       t,
		})
	}
	return out
}

// ParseAlts splits a VCF ALT column on commas. A convenience used by
// callers that haven't already split the field.
func ParseAlts(field string) []string {
	return strings.Split(field, ",")
}

// ParsePos parses a VCF POS column into a 1-based position.
func ParsePos(field string) (int64, error) {
	return strconv.ParseInt(field, 10, 64)
}
