package rce

import (
	"regexp"
	"strings"

	apierrors "github.com/olgasafonova/monumenten-mcp-server/internal/errors"
)

// verblijfsobjectIDRegex matches a BAG object identifier: four digit
// municipality code, two digit object type, ten digit sequence number.
var verblijfsobjectIDRegex = regexp.MustCompile(`^\d{16}$`)

// verblijfsobjectTypeCode is the BAG object type code for verblijfsobjecten
const verblijfsobjectTypeCode = "01"

// idPrefixes are accepted in front of an identifier and stripped.
var idPrefixes = []string{
	"NL.IMBAG.Verblijfsobject.",
	"https://bag.basisregistraties.overheid.nl/id/verblijfsobject/",
	"http://bag.basisregistraties.overheid.nl/id/verblijfsobject/",
}

// NormalizeVerblijfsobjectID trims whitespace and strips a known prefix.
func NormalizeVerblijfsobjectID(id string) string {
	id = strings.TrimSpace(id)
	for _, p := range idPrefixes {
		if len(id) > len(p) && strings.EqualFold(id[:len(p)], p) {
			return id[len(p):]
		}
	}
	return id
}

// ValidateVerblijfsobjectID validates a normalized BAG verblijfsobject ID.
func ValidateVerblijfsobjectID(id string) error {
	if id == "" {
		return apierrors.NewValidationError("bag_verblijfsobject_id", "", "verblijfsobject ID is required")
	}
	if !verblijfsobjectIDRegex.MatchString(id) {
		return apierrors.NewValidationError("bag_verblijfsobject_id", id, "must be exactly 16 digits")
	}
	if id[4:6] != verblijfsobjectTypeCode {
		return apierrors.NewValidationError("bag_verblijfsobject_id", id,
			"object type code "+id[4:6]+" is not a verblijfsobject (expected "+verblijfsobjectTypeCode+" at positions 5-6)")
	}
	return nil
}
