package glide

import (
	"strings"

	apierrors "github.com/olgasafonova/glide-mcp-server/internal/errors"
)

// ValidateRequired rejects blank values for a required string argument.
func ValidateRequired(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return apierrors.NewInvalidParams("%s is required", field)
	}
	return nil
}

// ValidateLimit checks the optional limit argument. Zero means unset and is
// dropped from the request; explicit values must be at least 1.
func ValidateLimit(limit int) error {
	if limit < 0 {
		return apierrors.NewInvalidParams("limit must be at least 1, got %d", limit)
	}
	return nil
}

// ValidateOffset checks the optional offset argument.
func ValidateOffset(offset int) error {
	if offset < 0 {
		return apierrors.NewInvalidParams("offset must be at least 0, got %d", offset)
	}
	return nil
}

// ValidateValues rejects a missing values object. Column contents are not
// inspected; payload shapes belong to the backend.
func ValidateValues(values map[string]any) error {
	if values == nil {
		return apierrors.NewInvalidParams("values is required")
	}
	return nil
}
