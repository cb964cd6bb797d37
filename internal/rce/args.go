package rce

// GetMonumentalStatusArgs contains parameters for the monument status lookup
type GetMonumentalStatusArgs struct {
	BagVerblijfsobjectID string `json:"bag_verblijfsobject_id" jsonschema:"The 16-digit BAG verblijfsobject ID, e.g. '0599010000165822'"`
}

// GetMonumentalStatusResult is the monumental status of a verblijfsobject
type GetMonumentalStatusResult struct {
	BagVerblijfsobjectID   string `json:"bag_verblijfsobject_id"`
	IsRijksmonument        bool   `json:"is_rijksmonument"`
	RijksmonumentNummer    string `json:"rijksmonument_nummer,omitempty"`
	RijksmonumentURL       string `json:"rijksmonument_url,omitempty"`
	InProtectedCityscape   bool   `json:"in_protected_cityscape"`
	ProtectedCityscapeName string `json:"protected_cityscape_name,omitempty"`
	IsMunicipalMonument    bool   `json:"is_municipal_monument"`
	Source                 string `json:"source,omitempty"`
}
