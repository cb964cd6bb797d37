package bag

import (
	"regexp"
	"strconv"
	"strings"

	apierrors "github.com/olgasafonova/monumenten-mcp-server/internal/errors"
)

// postalCodeRegex matches a normalized Dutch postal code: four digits without
// a leading zero followed by two uppercase letters.
var postalCodeRegex = regexp.MustCompile(`^[1-9][0-9]{3}[A-Z]{2}$`)

// houseNumberRegex splits "30", "30A", "30-2", "30 2", "30A-2" and "30/2"
// into number, letter and suffix.
var houseNumberRegex = regexp.MustCompile(`^(\d{1,5})\s*([A-Za-z])?(?:\s*[-/ ]\s*([A-Za-z0-9]{1,4}))?$`)

var (
	houseLetterRegex = regexp.MustCompile(`^[A-Za-z]$`)
	houseSuffixRegex = regexp.MustCompile(`^[A-Za-z0-9]{1,4}$`)
)

// MaxNameLength bounds street and city names
const MaxNameLength = 200

// NormalizePostalCode strips whitespace and uppercases a postal code
// ("3011 ad" becomes "3011AD").
func NormalizePostalCode(pc string) string {
	return strings.ToUpper(strings.Join(strings.Fields(pc), ""))
}

// ValidatePostalCode validates a normalized Dutch postal code.
func ValidatePostalCode(pc string) error {
	if pc == "" {
		return apierrors.NewValidationError("postal_code", "", "postal code is required")
	}
	if !postalCodeRegex.MatchString(pc) {
		return apierrors.NewValidationError("postal_code", pc, "must be four digits followed by two letters, e.g. 3011AD")
	}
	return nil
}

// ParseHouseNumber splits a house number string into its numeric part, house
// letter and suffix. Letter and suffix are returned uppercase.
func ParseHouseNumber(s string) (number int, letter, suffix string, err error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, "", "", apierrors.NewValidationError("house_number", "", "house number is required")
	}
	m := houseNumberRegex.FindStringSubmatch(s)
	if m == nil {
		return 0, "", "", apierrors.NewValidationError("house_number", s, "must be a positive number, optionally followed by a letter and/or suffix, e.g. 30, 30A or 30-2")
	}
	number, err = strconv.Atoi(m[1])
	if err != nil || number <= 0 {
		return 0, "", "", apierrors.NewValidationError("house_number", s, "must be a positive number")
	}
	return number, strings.ToUpper(m[2]), strings.ToUpper(m[3]), nil
}

// normalizeName trims a street or city name and collapses inner whitespace.
func normalizeName(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func validateName(field, value string) error {
	if value == "" {
		return apierrors.NewValidationError(field, "", field+" is required when searching by street and city")
	}
	if len(value) > MaxNameLength {
		return apierrors.NewValidationError(field, "", "exceeds maximum length of "+strconv.Itoa(MaxNameLength)+" characters")
	}
	return nil
}

// mergePart combines a letter or suffix embedded in house_number with the
// explicit argument. Both may be given only if they agree.
func mergePart(field, embedded, explicit string) (string, error) {
	explicit = strings.ToUpper(strings.TrimSpace(explicit))
	switch {
	case explicit == "":
		return embedded, nil
	case embedded == "" || embedded == explicit:
		return explicit, nil
	default:
		return "", apierrors.NewValidationError(field, explicit, "conflicts with "+embedded+" given in house_number")
	}
}

// NewAddressQuery validates and normalizes tool arguments into an AddressQuery.
// Exactly one search mode must be supplied: postal_code, or street and city.
func NewAddressQuery(args GetVerblijfsobjectIDArgs) (AddressQuery, error) {
	postalCode := NormalizePostalCode(args.PostalCode)
	street := normalizeName(args.Street)
	city := normalizeName(args.City)

	var q AddressQuery
	switch {
	case postalCode != "" && (street != "" || city != ""):
		return q, apierrors.NewValidationError("", "", "provide either postal_code OR street + city, not both")
	case postalCode != "":
		if err := ValidatePostalCode(postalCode); err != nil {
			return q, err
		}
		q.Mode = ModePostalCode
		q.PostalCode = postalCode
	case street != "" || city != "":
		if err := validateName("street", street); err != nil {
			return q, err
		}
		if err := validateName("city", city); err != nil {
			return q, err
		}
		q.Mode = ModeStreetCity
		q.Street = street
		q.City = city
	default:
		return q, apierrors.NewValidationError("", "", "provide either postal_code + house_number OR street + house_number + city")
	}

	number, letter, suffix, err := ParseHouseNumber(string(args.HouseNumber))
	if err != nil {
		return AddressQuery{}, err
	}

	if hl := strings.TrimSpace(args.HouseLetter); hl != "" && !houseLetterRegex.MatchString(hl) {
		return AddressQuery{}, apierrors.NewValidationError("house_letter", hl, "must be a single letter")
	}
	if hs := strings.TrimSpace(args.HouseSuffix); hs != "" && !houseSuffixRegex.MatchString(hs) {
		return AddressQuery{}, apierrors.NewValidationError("house_suffix", hs, "must be 1-4 letters or digits")
	}

	if letter, err = mergePart("house_letter", letter, args.HouseLetter); err != nil {
		return AddressQuery{}, err
	}
	if suffix, err = mergePart("house_suffix", suffix, args.HouseSuffix); err != nil {
		return AddressQuery{}, err
	}

	q.HouseNumber = number
	q.HouseLetter = letter
	q.HouseSuffix = suffix
	return q, nil
}
