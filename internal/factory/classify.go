// Package factory implements C3: classifying alt alleles into variant
// categories, dispatching the per-category constructor, and deriving
// breakends for structural variants.
package factory

import (
	"strings"

	"github.com/varcore/varcore/internal/variant"
)

// nonInformativeAlts are alt alleles that never produce a variant of their
// own (GATK's non-ref symbolic allele and the generic spanning-deletion
// marker).
var nonInformativeAlts = map[string]bool{
	"<NON_REF>": true,
	"*":         true,
	"<*>":       true,
}

// Classify determines the single VariantCategory shared by every alt on a
// call line, per the ordered rules in §4.3.1. The first rule that matches
// any alt wins.
func Classify(alts []string) variant.Category {
	if len(alts) == 1 && (alts[0] == "." || alts[0] == "<NON_REF>") {
		return variant.CategoryReference
	}

	for _, a := range alts {
		if strings.ContainsAny(a, "[]") {
			return variant.CategorySV
		}
	}

	if !anySymbolic(alts) {
		return variant.CategorySmallVariant
	}

	for _, a := range alts {
		if strings.HasPrefix(a, "<STR") {
			return variant.CategoryRepeatExpansion
		}
	}

	for _, a := range alts {
		if strings.HasPrefix(a, "<CN") {
			return variant.CategoryCNV
		}
	}

	return variant.CategorySV
}

// anySymbolic reports whether any alt is a bracketed symbolic allele
// (<TAG>) that is not merely one of the non-informative markers.
func anySymbolic(alts []string) bool {
	for _, a := range alts {
		if isSymbolic(a) && !nonInformativeAlts[a] {
			return true
		}
	}
	return false
}

func isSymbolic(a string) bool {
	return len(a) >= 2 && strings.HasPrefix(a, "<") && strings.HasSuffix(a, ">")
}
