package tools

// AllTools contains all tool specifications for the Monumenten MCP server.
// Tool descriptions follow a structured format for optimal LLM tool selection:
// - USE WHEN: Natural language triggers
// - NOT FOR: Disambiguation from similar tools
// - PARAMETERS: Key arguments with defaults
// - RETURNS: What the tool returns
var AllTools = []ToolSpec{
	// ==========================================================================
	// ADDRESS TOOLS (BAG)
	// ==========================================================================
	{
		Name:     "get_verblijfsobject_id",
		Method:   "GetVerblijfsobjectID",
		Title:    "Get Verblijfsobject ID",
		Category: "address",
		Registry: "bag",
		Description: `Get the BAG verblijfsobject ID for a Dutch address. Use postal_code + house_number OR street + house_number + city. Additional filters like house_letter and house_suffix can be provided for more precise matching.

USE WHEN: User gives a Dutch address and asks whether it is a monument, or needs the BAG ID of a dwelling or premises.

NOT FOR: Checking monument status when the verblijfsobject ID is already known (use get_monumental_status).

PARAMETERS:
- house_number: House number (required), integer or string such as "30", "30A", "30-2"
- postal_code: Postal code for search mode 1, e.g. "3011AD"
- street, city: Street and city for search mode 2, e.g. "Coolsingel", "Rotterdam"
- house_letter: House letter, e.g. "A" in "30A" (optional)
- house_suffix: House number suffix, e.g. "2" in "30-2" (optional)

RETURNS: The 16-digit verblijfsobject ID and the matched address. Fails with AmbiguousAddress listing the candidates when several units share the address.`,
		ReadOnly:   true,
		Idempotent: true,
		OpenWorld:  true,
	},

	// ==========================================================================
	// HERITAGE TOOLS (RCE)
	// ==========================================================================
	{
		Name:     "get_monumental_status",
		Method:   "GetMonumentalStatus",
		Title:    "Get Monumental Status",
		Category: "heritage",
		Registry: "rce",
		Description: `Get the monumental status of a verblijfsobject.

USE WHEN: User asks "is this building a rijksmonument", "is it in a protected cityscape", "is it a municipal monument", after resolving the address.

NOT FOR: Looking up an address (use get_verblijfsobject_id first).

PARAMETERS:
- bag_verblijfsobject_id: 16-digit BAG verblijfsobject ID (required); the NL.IMBAG.Verblijfsobject. prefix is accepted

RETURNS: is_rijksmonument, in_protected_cityscape and is_municipal_monument flags with the rijksmonument number and protected cityscape name when known. Unknown objects report all flags false. Always mention RCE as the source of the rijksmonument status.`,
		ReadOnly:   true,
		Idempotent: true,
		OpenWorld:  true,
	},
}
