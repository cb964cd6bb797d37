package bag

import (
	"strconv"
	"strings"

	"github.com/olgasafonova/monumenten-mcp-server/internal/sparql"
)

// VerblijfsobjectIRIPrefix is stripped from BAG IRIs to obtain the identifier.
const VerblijfsobjectIRIPrefix = "https://bag.basisregistraties.overheid.nl/id/verblijfsobject/"

const queryPrefixes = `PREFIX prov: <http://www.w3.org/ns/prov#>
PREFIX imx:  <http://modellen.geostandaarden.nl/def/imx-geo#>
`

// MaxCandidates caps the number of candidates reported for one address. The
// query asks for one row more so a truncated result can be detected.
const MaxCandidates = 25

// BuildQuery renders the SPARQL SELECT for an address query. The same
// normalized AddressQuery always produces the same text.
//
// Without a house letter, addresses that carry one are excluded. Without a
// suffix, addresses with a suffix other than "H" are excluded, so "30" does
// not match "30-2".
func BuildQuery(q AddressQuery) string {
	var b strings.Builder
	b.WriteString(queryPrefixes)
	b.WriteString("\nSELECT DISTINCT ?identificatie ?postcode ?huisnummer ?huisletter ?huisnummertoevoeging ?straatnaam ?plaatsnaam\n")
	b.WriteString("WHERE {\n")
	b.WriteString("  ?adres prov:wasDerivedFrom ?verblijfsobjectIri ;\n")
	b.WriteString("         imx:isHoofdadres true ;\n")
	if q.Mode == ModePostalCode {
		b.WriteString("         imx:postcode " + sparql.Literal(q.PostalCode) + " ;\n")
		b.WriteString("         imx:huisnummer " + strconv.Itoa(q.HouseNumber) + " .\n")
	} else {
		b.WriteString("         imx:straatnaam " + sparql.Literal(q.Street) + " ;\n")
		b.WriteString("         imx:huisnummer " + strconv.Itoa(q.HouseNumber) + " ;\n")
		b.WriteString("         imx:plaatsnaam " + sparql.Literal(q.City) + " .\n")
	}
	b.WriteString("\n")

	if q.HouseLetter != "" {
		b.WriteString("  ?adres imx:huisletter " + sparql.Literal(q.HouseLetter) + " .\n")
	} else {
		b.WriteString("  FILTER NOT EXISTS { ?adres imx:huisletter ?_hl . }\n")
	}
	if q.HouseSuffix != "" {
		b.WriteString("  ?adres imx:huisnummertoevoeging ?_hs .\n")
		b.WriteString("  FILTER(UCASE(STR(?_hs)) = " + sparql.Literal(q.HouseSuffix) + ")\n")
	} else {
		b.WriteString("  FILTER NOT EXISTS { ?adres imx:huisnummertoevoeging ?_hs . FILTER(?_hs != \"H\") }\n")
	}
	b.WriteString("\n")

	b.WriteString("  OPTIONAL { ?adres imx:postcode ?postcode . }\n")
	b.WriteString("  OPTIONAL { ?adres imx:huisnummer ?huisnummer . }\n")
	b.WriteString("  OPTIONAL { ?adres imx:huisletter ?huisletter . }\n")
	b.WriteString("  OPTIONAL { ?adres imx:huisnummertoevoeging ?huisnummertoevoeging . }\n")
	b.WriteString("  OPTIONAL { ?adres imx:straatnaam ?straatnaam . }\n")
	b.WriteString("  OPTIONAL { ?adres imx:plaatsnaam ?plaatsnaam . }\n")
	b.WriteString("\n")
	b.WriteString("  BIND(STRAFTER(STR(?verblijfsobjectIri), " + sparql.Literal(VerblijfsobjectIRIPrefix) + ") AS ?identificatie)\n")
	b.WriteString("}\n")
	b.WriteString("ORDER BY ?identificatie\n")
	b.WriteString("LIMIT " + strconv.Itoa(MaxCandidates+1))
	return b.String()
}
