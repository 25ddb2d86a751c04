package glide

// APIError is the error envelope both API generations return on failures.
// Bodies that do not match it are surfaced as raw text.
type APIError struct {
	Message string `json:"message"`
}
