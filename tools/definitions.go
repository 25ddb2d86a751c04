package tools

// AllTools contains all tool specifications for the Glide MCP server.
// Tools are organized by category for easier maintenance.
// Tool descriptions follow a structured format for optimal LLM tool selection:
// - USE WHEN: Natural language triggers
// - NOT FOR: Disambiguation from similar tools
// - PARAMETERS: Key arguments with defaults
// - RETURNS: What the tool returns
var AllTools = []ToolSpec{
	// ==========================================================================
	// SESSION TOOLS
	// ==========================================================================
	{
		Name:     "set_api_version",
		Method:   "SetAPIVersion",
		Title:    "Set API Version",
		Category: "session",
		Description: `Select which Glide API generation (v1 or v2) to use and provide the API key for it.

USE WHEN: User says "use API v2", "switch to v1", "set my API key", or any data tool failed because no version is configured.

NOT FOR: Fetching app data (use the get_* tools once a version is configured).

PARAMETERS:
- version: "v1" or "v2" (required)
- apiKey: Glide API key for that version (required)

RETURNS: Confirmation of the active version. No network call is made; the key is only validated for presence.

NOTE: Calling this again fully replaces the previous version and key. Requests already in flight finish against the old configuration.`,
		Idempotent: true,
	},

	// ==========================================================================
	// READ TOOLS
	// ==========================================================================
	{
		Name:     "get_app",
		Method:   "GetApp",
		Title:    "Get App",
		Category: "read",
		Description: `Retrieve metadata for one Glide app.

USE WHEN: User asks "show my app", "what is app X", "get app details".

NOT FOR: Listing the app's tables (use get_tables) or reading rows (use get_table_rows).

PARAMETERS:
- appId: ID of the Glide app (required)

RETURNS: The app object exactly as the configured API version returns it.`,
		ReadOnly:   true,
		Idempotent: true,
		OpenWorld:  true,
	},
	{
		Name:     "get_tables",
		Method:   "GetTables",
		Title:    "List Tables",
		Category: "read",
		Description: `List all tables of a Glide app.

USE WHEN: User asks "what tables does the app have", "list tables", "show the app's data structure".

NOT FOR: Reading the rows inside a table (use get_table_rows).

PARAMETERS:
- appId: ID of the Glide app (required)

RETURNS: The table list exactly as the configured API version returns it.`,
		ReadOnly:   true,
		Idempotent: true,
		OpenWorld:  true,
	},
	{
		Name:     "get_table_rows",
		Method:   "GetTableRows",
		Title:    "Get Table Rows",
		Category: "read",
		Description: `Read rows from one table of a Glide app.

USE WHEN: User asks "show the data in table X", "get the first 10 rows", "read records from the app".

NOT FOR: Discovering which tables exist (use get_tables). Not for adding or changing rows (use add_table_row or update_table_row).

PARAMETERS:
- appId: ID of the Glide app (required)
- tableId: ID of the table (required)
- limit: Max rows to return, minimum 1 (optional)
- offset: Rows to skip before the first returned row (optional; an offset of 0 is not sent to the backend)

RETURNS: Row data exactly as the configured API version returns it.`,
		ReadOnly:   true,
		Idempotent: true,
		OpenWorld:  true,
	},

	// ==========================================================================
	// WRITE TOOLS
	// ==========================================================================
	{
		Name:     "add_table_row",
		Method:   "AddTableRow",
		Title:    "Add Table Row",
		Category: "write",
		Description: `Append a new row to a table of a Glide app.

USE WHEN: User says "add a record", "insert a row", "create an entry in table X".

NOT FOR: Changing an existing row (use update_table_row with the row's ID).

PARAMETERS:
- appId: ID of the Glide app (required)
- tableId: ID of the table (required)
- values: Object mapping column names to cell values (required)

RETURNS: The backend's response for the created row. Column names are passed through unvalidated; unknown columns are the backend's problem to report.`,
		OpenWorld: true,
	},
	{
		Name:     "update_table_row",
		Method:   "UpdateTableRow",
		Title:    "Update Table Row",
		Category: "write",
		Description: `Overwrite columns of an existing row in a Glide app table.

USE WHEN: User says "update the row", "change the value of X in record Y", "edit an entry".

NOT FOR: Creating new rows (use add_table_row; it needs no rowId).

PARAMETERS:
- appId: ID of the Glide app (required)
- tableId: ID of the table (required)
- rowId: ID of the row to update (required)
- values: Object mapping column names to new cell values (required)

WARNING: Listed columns are overwritten with the supplied values.

RETURNS: The backend's response for the updated row.`,
		Destructive: true,
		Idempotent:  true,
		OpenWorld:   true,
	},
}

// ToolsByCategory returns all tools in a given category.
func ToolsByCategory(category string) []ToolSpec {
	var specs []ToolSpec
	for _, spec := range AllTools {
		if spec.Category == category {
			specs = append(specs, spec)
		}
	}
	return specs
}
