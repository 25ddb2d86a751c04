package glide

// SetAPIVersionArgs selects the backend API generation and credential.
type SetAPIVersionArgs struct {
	Version string `json:"version" jsonschema:"required" jsonschema_description:"API version to use: v1 or v2"`
	APIKey  string `json:"apiKey" jsonschema:"required" jsonschema_description:"Glide API key used to authenticate against the chosen version"`
}

// GetAppArgs contains parameters for fetching one app.
type GetAppArgs struct {
	AppID string `json:"appId" jsonschema:"required" jsonschema_description:"ID of the Glide app"`
}

// GetTablesArgs contains parameters for listing an app's tables.
type GetTablesArgs struct {
	AppID string `json:"appId" jsonschema:"required" jsonschema_description:"ID of the Glide app"`
}

// GetTableRowsArgs contains parameters for reading rows from a table.
type GetTableRowsArgs struct {
	AppID   string `json:"appId" jsonschema:"required" jsonschema_description:"ID of the Glide app"`
	TableID string `json:"tableId" jsonschema:"required" jsonschema_description:"ID of the table within the app"`
	Limit   int    `json:"limit,omitempty" jsonschema_description:"Maximum number of rows to return (minimum 1)"`
	Offset  int    `json:"offset,omitempty" jsonschema_description:"Number of rows to skip; omitted from the request when 0"`
}

// AddTableRowArgs contains parameters for appending a row.
type AddTableRowArgs struct {
	AppID   string         `json:"appId" jsonschema:"required" jsonschema_description:"ID of the Glide app"`
	TableID string         `json:"tableId" jsonschema:"required" jsonschema_description:"ID of the table within the app"`
	Values  map[string]any `json:"values" jsonschema:"required" jsonschema_description:"Column values for the new row, keyed by column name"`
}

// UpdateTableRowArgs contains parameters for updating an existing row.
type UpdateTableRowArgs struct {
	AppID   string         `json:"appId" jsonschema:"required" jsonschema_description:"ID of the Glide app"`
	TableID string         `json:"tableId" jsonschema:"required" jsonschema_description:"ID of the table within the app"`
	RowID   string         `json:"rowId" jsonschema:"required" jsonschema_description:"ID of the row to update"`
	Values  map[string]any `json:"values" jsonschema:"required" jsonschema_description:"Column values to overwrite, keyed by column name"`
}
