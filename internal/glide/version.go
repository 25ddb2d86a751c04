// Package glide provides the versioned client for the Glide apps REST API
// and the session state selecting which API generation is active.
//
// Two incompatible API generations exist. v1 lives on api.glideapp.io and
// authenticates with an X-API-Key header; v2 lives under
// api.glideapp.com/api/v2 and authenticates with a Bearer token. The set is
// closed: adding a generation means adding a descriptor to the variants
// table, not touching dispatch logic.
package glide

import (
	"net/http"
	"strings"

	apierrors "github.com/olgasafonova/glide-mcp-server/internal/errors"
)

// Version identifies one generation of the Glide API.
type Version string

// Supported API generations.
const (
	V1 Version = "v1"
	V2 Version = "v2"
)

// apiKeyHeader carries the raw credential for v1 requests.
const apiKeyHeader = "X-API-Key"

// variant describes one backend generation: where it lives and how it
// authenticates.
type variant struct {
	baseURL string
	headers func(apiKey string) http.Header
}

// variants maps each version tag to its descriptor.
var variants = map[Version]variant{
	V1: {
		baseURL: "https://api.glideapp.io",
		headers: func(apiKey string) http.Header {
			h := http.Header{}
			h.Set(apiKeyHeader, apiKey)
			h.Set("Content-Type", "application/json")
			return h
		},
	},
	V2: {
		baseURL: "https://api.glideapp.com/api/v2",
		headers: func(apiKey string) http.Header {
			h := http.Header{}
			h.Set("Authorization", "Bearer "+apiKey)
			h.Set("Content-Type", "application/json")
			return h
		},
	},
}

// ParseVersion validates a version tag against the known set. The returned
// error names the rejected tag.
func ParseVersion(tag string) (Version, error) {
	v := Version(tag)
	if _, ok := variants[v]; !ok {
		return "", apierrors.NewInvalidParams("unknown API version %q (supported: %s)",
			tag, strings.Join(SupportedVersions(), ", "))
	}
	return v, nil
}

// SupportedVersions lists the known version tags in a stable order.
func SupportedVersions() []string {
	return []string{string(V1), string(V2)}
}
