// Package info implements C1: decoding a VCF record's INFO column into a
// typed variant.InfoData value.
package info

import (
	"strconv"
	"strings"

	"github.com/varcore/varcore/internal/coreerr"
	"github.com/varcore/varcore/internal/variant"
)

var svTypeByName = map[string]variant.SVType{
	"DEL":  variant.SVTypeDeletion,
	"DUP":  variant.SVTypeDuplication,
	"TDUP": variant.SVTypeTandemDuplication,
	"INV":  variant.SVTypeInversion,
	"INS":  variant.SVTypeInsertion,
	"CNV":  variant.SVTypeCNV,
	"BND":  variant.SVTypeBND,
	"STR":  variant.SVTypeSTR,
}

// Parse decodes the INFO column (semicolon-separated key[=value] pairs, or
// the literal "." for an empty field) into an InfoData. Unknown keys are
// ignored. A malformed numeric value for END or CN fails with
// kind=InfoParse.
func Parse(field string) (*variant.InfoData, error) {
	d := &variant.InfoData{}
	if field == "" || field == "." {
		return d, nil
	}

	for _, kv := range strings.Split(field, ";") {
		if kv == "" {
			continue
		}
		key, value, hasValue := strings.Cut(kv, "=")
		switch key {
		case "SVTYPE":
			if t, ok := svTypeByName[value]; ok {
				d.SVType = t
			}
		case "END":
			if !hasValue {
				continue
			}
			end, err := strconv.ParseInt(value, 10, 64)
			if err != nil {
				return nil, coreerr.New(coreerr.KindInfoParse, "END="+value, err)
			}
			d.End = &end
		case "INV3":
			d.IsInv3 = true
		case "INV5":
			d.IsInv5 = true
		case "CN":
			if !hasValue {
				continue
			}
			cn, err := strconv.Atoi(value)
			if err != nil {
				return nil, coreerr.New(coreerr.KindInfoParse, "CN="+value, err)
			}
			d.CopyNumber = &cn
		default:
			// Unknown keys pass through silently.
		}
	}

	return d, nil
}
