package bag

import (
	"strconv"
	"strings"
)

// Mode selects how an address is looked up in the BAG.
type Mode int

const (
	// ModePostalCode looks up by postal code and house number
	ModePostalCode Mode = iota + 1
	// ModeStreetCity looks up by street, house number and city
	ModeStreetCity
)

func (m Mode) String() string {
	switch m {
	case ModePostalCode:
		return "postal_code"
	case ModeStreetCity:
		return "street_city"
	default:
		return "unknown"
	}
}

// AddressQuery is a normalized address lookup. Exactly one of the two
// addressing modes is populated: PostalCode for ModePostalCode, Street and
// City for ModeStreetCity. HouseLetter and HouseSuffix are uppercase.
type AddressQuery struct {
	Mode        Mode
	PostalCode  string
	Street      string
	City        string
	HouseNumber int
	HouseLetter string
	HouseSuffix string
}

// Description renders the query for log lines and error messages.
func (q AddressQuery) Description() string {
	number := formatHouseNumber(q.HouseNumber, q.HouseLetter, q.HouseSuffix)
	if q.Mode == ModePostalCode {
		return "postal code " + q.PostalCode + ", house number " + number
	}
	return q.Street + " " + number + ", " + q.City
}

// Address is the BAG address of a verblijfsobject as reported by the registry.
type Address struct {
	PostalCode  string `json:"postal_code,omitempty"`
	Street      string `json:"street,omitempty"`
	HouseNumber int    `json:"house_number,omitempty"`
	HouseLetter string `json:"house_letter,omitempty"`
	HouseSuffix string `json:"house_suffix,omitempty"`
	City        string `json:"city,omitempty"`
}

// String formats the address the Dutch way, e.g. "Coolsingel 30A-2, 3011AD Rotterdam".
func (a Address) String() string {
	var b strings.Builder
	if a.Street != "" {
		b.WriteString(a.Street)
		b.WriteString(" ")
	}
	b.WriteString(formatHouseNumber(a.HouseNumber, a.HouseLetter, a.HouseSuffix))
	if a.PostalCode != "" || a.City != "" {
		b.WriteString(",")
		if a.PostalCode != "" {
			b.WriteString(" " + a.PostalCode)
		}
		if a.City != "" {
			b.WriteString(" " + a.City)
		}
	}
	return b.String()
}

// Match is a single verblijfsobject found for an address query.
type Match struct {
	VerblijfsobjectID string
	Address           Address
}

func formatHouseNumber(number int, letter, suffix string) string {
	s := strconv.Itoa(number) + letter
	if suffix != "" {
		s += "-" + suffix
	}
	return s
}
