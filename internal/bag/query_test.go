package bag

import (
	"strings"
	"testing"
)

func TestBuildQuery_SuffixFormsEquivalent(t *testing.T) {
	embedded, err := NewAddressQuery(GetVerblijfsobjectIDArgs{PostalCode: "3011AD", HouseNumber: "30-2"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	explicit, err := NewAddressQuery(GetVerblijfsobjectIDArgs{PostalCode: "3011ad", HouseNumber: "30", HouseSuffix: "2"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if BuildQuery(embedded) != BuildQuery(explicit) {
		t.Errorf("queries differ:\n%s\n---\n%s", BuildQuery(embedded), BuildQuery(explicit))
	}
}

func TestBuildQuery_LetterFormsEquivalent(t *testing.T) {
	embedded, err := NewAddressQuery(GetVerblijfsobjectIDArgs{Street: "Coolsingel", City: "Rotterdam", HouseNumber: "30a"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	explicit, err := NewAddressQuery(GetVerblijfsobjectIDArgs{Street: "Coolsingel", City: "Rotterdam", HouseNumber: "30", HouseLetter: "A"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if BuildQuery(embedded) != BuildQuery(explicit) {
		t.Error("letter forms produced different queries")
	}
}

func TestBuildQuery_PostalCodeMode(t *testing.T) {
	q := BuildQuery(AddressQuery{Mode: ModePostalCode, PostalCode: "3011AD", HouseNumber: 30})

	for _, want := range []string{
		`imx:postcode "3011AD" ;`,
		`imx:huisnummer 30 .`,
		`FILTER NOT EXISTS { ?adres imx:huisletter ?_hl . }`,
		`FILTER NOT EXISTS { ?adres imx:huisnummertoevoeging ?_hs . FILTER(?_hs != "H") }`,
		`"` + VerblijfsobjectIRIPrefix + `"`,
		"LIMIT 26",
	} {
		if !strings.Contains(q, want) {
			t.Errorf("query missing %q:\n%s", want, q)
		}
	}
	if strings.Contains(q, "imx:straatnaam \"") {
		t.Error("postal code query should not constrain the street")
	}
}

func TestBuildQuery_StreetMode(t *testing.T) {
	q := BuildQuery(AddressQuery{
		Mode:        ModeStreetCity,
		Street:      "Coolsingel",
		City:        "Rotterdam",
		HouseNumber: 30,
		HouseLetter: "A",
		HouseSuffix: "2",
	})

	for _, want := range []string{
		`imx:straatnaam "Coolsingel" ;`,
		`imx:huisnummer 30 ;`,
		`imx:plaatsnaam "Rotterdam" .`,
		`?adres imx:huisletter "A" .`,
		`FILTER(UCASE(STR(?_hs)) = "2")`,
	} {
		if !strings.Contains(q, want) {
			t.Errorf("query missing %q:\n%s", want, q)
		}
	}
	if strings.Contains(q, "FILTER NOT EXISTS") {
		t.Error("query with letter and suffix should not exclude them")
	}
}

func TestBuildQuery_EscapesLiterals(t *testing.T) {
	q := BuildQuery(AddressQuery{
		Mode:        ModeStreetCity,
		Street:      `Foo" . } DROP ALL #`,
		City:        "Rotterdam",
		HouseNumber: 1,
	})

	if !strings.Contains(q, `imx:straatnaam "Foo\" . } DROP ALL #" ;`) {
		t.Errorf("street literal not escaped:\n%s", q)
	}
}
