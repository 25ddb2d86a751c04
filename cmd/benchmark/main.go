package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/olgasafonova/glide-mcp-server/internal/glide"
)

// rowCount extracts the row count from a pass-through payload. The two API
// generations shape row responses differently: v1 returns a bare array, v2
// wraps it in a data field. Unknown shapes count as -1.
func rowCount(result any) int {
	switch payload := result.(type) {
	case []any:
		return len(payload)
	case map[string]any:
		if data, ok := payload["data"].([]any); ok {
			return len(data)
		}
	}
	return -1
}

// measureConnectionReuse compares a cold request (TCP + TLS handshake)
// against a warm one on the pooled connection.
func measureConnectionReuse(ctx context.Context, client *glide.Client, appID string) {
	fmt.Println("=== Connection Reuse Test ===")
	fmt.Println()

	fmt.Println("1. GetApp Cold vs Warm:")

	start := time.Now()
	_, err := client.GetApp(ctx, appID)
	if err != nil {
		fmt.Printf("   Error: %v\n", err)
		return
	}
	firstCall := time.Since(start)
	fmt.Printf("   First call (new connection):  %v\n", firstCall)

	start = time.Now()
	_, _ = client.GetApp(ctx, appID)
	secondCall := time.Since(start)
	fmt.Printf("   Second call (pooled):         %v\n", secondCall)
	fmt.Printf("   Speedup: %.1fx faster\n", float64(firstCall)/float64(secondCall))
	fmt.Println()
}

// measureRowThroughput reads the same table at two page sizes and reports the
// per-row cost, showing how much of a request is fixed overhead.
func measureRowThroughput(ctx context.Context, client *glide.Client, appID, tableID string) {
	fmt.Println("=== Row Throughput Test ===")
	fmt.Println()

	fmt.Println("2. GetTableRows at Increasing Page Sizes:")
	for _, limit := range []int{10, 100} {
		start := time.Now()
		result, err := client.GetTableRows(ctx, appID, tableID, limit, 0)
		if err != nil {
			fmt.Printf("   Error at limit %d: %v\n", limit, err)
			return
		}
		elapsed := time.Since(start)
		rows := rowCount(result)
		if rows <= 0 {
			fmt.Printf("   limit %-4d: %v (row count unavailable)\n", limit, elapsed)
			continue
		}
		fmt.Printf("   limit %-4d: %v total, %v per row (%d rows)\n",
			limit, elapsed, elapsed/time.Duration(rows), rows)
	}
	fmt.Println()
}

// measurePaginationOverhead fetches the same window of rows once in a single
// request and once as four paginated requests, to show the fixed cost each
// extra round trip adds.
func measurePaginationOverhead(ctx context.Context, client *glide.Client, appID, tableID string) {
	fmt.Println("=== Pagination Overhead Test ===")
	fmt.Println()

	fmt.Println("3. 100 Rows: Single Request vs 4 Pages of 25:")

	start := time.Now()
	_, err := client.GetTableRows(ctx, appID, tableID, 100, 0)
	if err != nil {
		fmt.Printf("   Error: %v\n", err)
		return
	}
	singleTime := time.Since(start)
	fmt.Printf("   Single request (limit 100):   %v\n", singleTime)

	start = time.Now()
	for offset := 0; offset < 100; offset += 25 {
		if _, err := client.GetTableRows(ctx, appID, tableID, 25, offset); err != nil {
			fmt.Printf("   Error at offset %d: %v\n", offset, err)
			return
		}
	}
	pagedTime := time.Since(start)
	fmt.Printf("   Four requests (limit 25):     %v\n", pagedTime)
	fmt.Printf("   Round-trip overhead: %.1fx slower\n", float64(pagedTime)/float64(singleTime))
	fmt.Println()
}

func main() {
	fmt.Println("Glide MCP Server - Performance Measurements")
	fmt.Println("===========================================")
	fmt.Println()

	config, err := glide.LoadConfig()
	if err != nil {
		fmt.Printf("Config error: %v\n", err)
		os.Exit(1)
	}
	if !config.HasCredentials() {
		fmt.Println("GLIDE_API_KEY and GLIDE_API_VERSION must be set")
		os.Exit(1)
	}
	appID := os.Getenv("GLIDE_APP_ID")
	tableID := os.Getenv("GLIDE_TABLE_ID")
	if appID == "" || tableID == "" {
		fmt.Println("GLIDE_APP_ID and GLIDE_TABLE_ID must name an app and table to measure against")
		os.Exit(1)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	session := glide.NewSession(logger,
		glide.WithLogger(logger),
		glide.WithTimeout(config.Timeout),
	)
	client, err := session.SetVersion(config.APIVersion, config.APIKey)
	if err != nil {
		fmt.Printf("Session error: %v\n", err)
		os.Exit(1)
	}
	ctx := context.Background()

	fmt.Printf("Backend: %s API, app %s, table %s\n\n", client.Version(), appID, tableID)

	measureConnectionReuse(ctx, client, appID)
	measureRowThroughput(ctx, client, appID, tableID)
	measurePaginationOverhead(ctx, client, appID, tableID)

	fmt.Println("=== Summary ===")
	fmt.Println()
	fmt.Println("Reading the numbers:")
	fmt.Println("• Connection reuse: warm requests skip the TCP + TLS handshake")
	fmt.Println("• Page size: larger limits amortize fixed request overhead across more rows")
	fmt.Println("• Pagination: each extra page pays one full round trip; prefer one large read")
}
