package rce

import "context"

// SourceNote is attached to results for rijksmonumenten
const SourceNote = "Always mention the source for the Rijksmonument status: RCE (Rijksdienst voor het Cultureel Erfgoed), monument register."

// GetMonumentalStatusMCP is the MCP wrapper for GetMonumentStatus
func (c *Client) GetMonumentalStatusMCP(ctx context.Context, args GetMonumentalStatusArgs) (GetMonumentalStatusResult, error) {
	status, err := c.GetMonumentStatus(ctx, args.BagVerblijfsobjectID)
	if err != nil {
		return GetMonumentalStatusResult{}, err
	}

	result := GetMonumentalStatusResult{
		BagVerblijfsobjectID:   status.VerblijfsobjectID,
		IsRijksmonument:        status.IsRijksmonument,
		RijksmonumentNummer:    status.RijksmonumentNummer,
		RijksmonumentURL:       status.RijksmonumentURL(),
		InProtectedCityscape:   status.InProtectedCityscape,
		ProtectedCityscapeName: status.ProtectedCityscapeName,
		IsMunicipalMonument:    status.IsMunicipalMonument,
	}
	if status.IsRijksmonument {
		result.Source = SourceNote
	}
	return result, nil
}
