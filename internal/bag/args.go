package bag

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/google/jsonschema-go/jsonschema"
)

// HouseNumber holds the house_number argument. Assistants send it either as a
// JSON integer (30) or as a string that may carry a letter or suffix
// ("30", "30A", "30-2").
type HouseNumber string

// UnmarshalJSON accepts a JSON number, string or null.
func (h *HouseNumber) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*h = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*h = HouseNumber(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("house_number must be an integer or string: %w", err)
	}
	*h = HouseNumber(n.String())
	return nil
}

// GetVerblijfsobjectIDArgs contains parameters for resolving an address
type GetVerblijfsobjectIDArgs struct {
	HouseNumber HouseNumber `json:"house_number" jsonschema:"The house number (required), e.g. 30. May include a letter or suffix such as '30A' or '30-2'"`
	PostalCode  string      `json:"postal_code,omitempty" jsonschema:"The postal code for search mode 1, e.g. '3011AD'"`
	Street      string      `json:"street,omitempty" jsonschema:"The street name for search mode 2, e.g. 'Coolsingel'"`
	City        string      `json:"city,omitempty" jsonschema:"The city name for search mode 2, e.g. 'Rotterdam'"`
	HouseLetter string      `json:"house_letter,omitempty" jsonschema:"The house letter, e.g. 'A' in '30A'"`
	HouseSuffix string      `json:"house_suffix,omitempty" jsonschema:"The house number suffix/addition, e.g. '2' in '30-2'"`
}

// GetVerblijfsobjectIDResult is the result of resolving an address
type GetVerblijfsobjectIDResult struct {
	VerblijfsobjectID string  `json:"verblijfsobject_id"`
	Address           Address `json:"address"`
}

// InputSchema returns the JSON schema for GetVerblijfsobjectIDArgs with
// house_number widened to accept both integers and strings.
func InputSchema() (*jsonschema.Schema, error) {
	schema, err := jsonschema.For[GetVerblijfsobjectIDArgs](nil)
	if err != nil {
		return nil, fmt.Errorf("failed to infer input schema: %w", err)
	}
	hn, ok := schema.Properties["house_number"]
	if !ok || hn == nil {
		return nil, fmt.Errorf("input schema has no house_number property")
	}
	hn.Type = ""
	hn.Types = []string{"integer", "string"}
	return schema, nil
}
