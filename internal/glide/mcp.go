package glide

import (
	"context"
	"fmt"
)

// MCP-facing wrappers around the session. Each data operation snapshots the
// active client first, so the session state check happens before argument
// validation and exactly one client serves the whole call.

// SetAPIVersionMCP handles the set_api_version tool. It never consults the
// active client and is valid in any state.
func (s *Session) SetAPIVersionMCP(_ context.Context, args SetAPIVersionArgs) (any, error) {
	client, err := s.SetVersion(args.Version, args.APIKey)
	if err != nil {
		return nil, err
	}
	return fmt.Sprintf("API version set to %s", client.Version()), nil
}

// GetAppMCP handles the get_app tool.
func (s *Session) GetAppMCP(ctx context.Context, args GetAppArgs) (any, error) {
	client, err := s.Active()
	if err != nil {
		return nil, err
	}
	if err := ValidateRequired("appId", args.AppID); err != nil {
		return nil, err
	}
	return client.GetApp(ctx, args.AppID)
}

// GetTablesMCP handles the get_tables tool.
func (s *Session) GetTablesMCP(ctx context.Context, args GetTablesArgs) (any, error) {
	client, err := s.Active()
	if err != nil {
		return nil, err
	}
	if err := ValidateRequired("appId", args.AppID); err != nil {
		return nil, err
	}
	return client.GetTables(ctx, args.AppID)
}

// GetTableRowsMCP handles the get_table_rows tool.
func (s *Session) GetTableRowsMCP(ctx context.Context, args GetTableRowsArgs) (any, error) {
	client, err := s.Active()
	if err != nil {
		return nil, err
	}
	if err := ValidateRequired("appId", args.AppID); err != nil {
		return nil, err
	}
	if err := ValidateRequired("tableId", args.TableID); err != nil {
		return nil, err
	}
	if err := ValidateLimit(args.Limit); err != nil {
		return nil, err
	}
	if err := ValidateOffset(args.Offset); err != nil {
		return nil, err
	}
	return client.GetTableRows(ctx, args.AppID, args.TableID, args.Limit, args.Offset)
}

// AddTableRowMCP handles the add_table_row tool.
func (s *Session) AddTableRowMCP(ctx context.Context, args AddTableRowArgs) (any, error) {
	client, err := s.Active()
	if err != nil {
		return nil, err
	}
	if err := ValidateRequired("appId", args.AppID); err != nil {
		return nil, err
	}
	if err := ValidateRequired("tableId", args.TableID); err != nil {
		return nil, err
	}
	if err := ValidateValues(args.Values); err != nil {
		return nil, err
	}
	return client.AddTableRow(ctx, args.AppID, args.TableID, args.Values)
}

// UpdateTableRowMCP handles the update_table_row tool.
func (s *Session) UpdateTableRowMCP(ctx context.Context, args UpdateTableRowArgs) (any, error) {
	client, err := s.Active()
	if err != nil {
		return nil, err
	}
	if err := ValidateRequired("appId", args.AppID); err != nil {
		return nil, err
	}
	if err := ValidateRequired("tableId", args.TableID); err != nil {
		return nil, err
	}
	if err := ValidateRequired("rowId", args.RowID); err != nil {
		return nil, err
	}
	if err := ValidateValues(args.Values); err != nil {
		return nil, err
	}
	return client.UpdateTableRow(ctx, args.AppID, args.TableID, args.RowID, args.Values)
}
