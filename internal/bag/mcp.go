package bag

import "context"

// GetVerblijfsobjectIDMCP is the MCP wrapper for ResolveVerblijfsobject
func (c *Client) GetVerblijfsobjectIDMCP(ctx context.Context, args GetVerblijfsobjectIDArgs) (GetVerblijfsobjectIDResult, error) {
	q, err := NewAddressQuery(args)
	if err != nil {
		return GetVerblijfsobjectIDResult{}, err
	}

	match, err := c.ResolveVerblijfsobject(ctx, q)
	if err != nil {
		return GetVerblijfsobjectIDResult{}, err
	}

	return GetVerblijfsobjectIDResult{
		VerblijfsobjectID: match.VerblijfsobjectID,
		Address:           match.Address,
	}, nil
}
