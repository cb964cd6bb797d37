package rce

import "strconv"

// MonumentStatus holds the heritage flags of one verblijfsobject. Flags the
// registry has no data for are false.
type MonumentStatus struct {
	VerblijfsobjectID      string
	IsRijksmonument        bool
	RijksmonumentNummer    string
	InProtectedCityscape   bool
	ProtectedCityscapeName string
	IsMunicipalMonument    bool
}

// RijksmonumentURL returns the monument register page, or "" when the object
// is not a rijksmonument.
func (s MonumentStatus) RijksmonumentURL() string {
	if s.RijksmonumentNummer == "" {
		return ""
	}
	if _, err := strconv.Atoi(s.RijksmonumentNummer); err != nil {
		return ""
	}
	return MonumentRegisterURL + s.RijksmonumentNummer
}
