package glide

import (
	"log/slog"
	"strings"
	"sync"

	apierrors "github.com/olgasafonova/glide-mcp-server/internal/errors"
	"github.com/olgasafonova/glide-mcp-server/metrics"
)

// Session tracks which API generation is currently active. It is the only
// mutable state in the server. Handlers hold a *Session and snapshot the
// active client once at the start of each data operation, so a concurrent
// set_api_version never switches backends mid-call.
type Session struct {
	logger     *slog.Logger
	clientOpts []ClientOption

	mu     sync.RWMutex
	active *Client
}

// NewSession creates an unconfigured session. clientOpts are applied to
// every client the session builds.
func NewSession(logger *slog.Logger, clientOpts ...ClientOption) *Session {
	if logger == nil {
		logger = slog.Default()
	}
	return &Session{
		logger:     logger,
		clientOpts: clientOpts,
	}
}

// SetVersion validates the tag and credential, then swaps in a freshly built
// client. The previous client, if any, is discarded wholesale; in-flight
// calls that already snapshotted it finish against the old backend.
// Valid from either state and always produces a fresh client.
func (s *Session) SetVersion(versionTag, apiKey string) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, apierrors.NewInvalidParams("apiKey must be a non-empty string")
	}
	version, err := ParseVersion(versionTag)
	if err != nil {
		return nil, err
	}

	client, err := NewClient(version, apiKey, s.clientOpts...)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.active = client
	s.mu.Unlock()

	metrics.RecordVersionSwitch(string(version))
	metrics.SetSessionConfigured(true)
	s.logger.Info("API version configured", "version", version)

	return client, nil
}

// Active returns a snapshot of the current client, or InvalidRequest while
// the session is unconfigured. No network I/O happens on the error path.
func (s *Session) Active() (*Client, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.active == nil {
		return nil, apierrors.NewInvalidRequest("no API version configured: call set_api_version before data operations")
	}
	return s.active, nil
}

// Configured reports whether a client is active.
func (s *Session) Configured() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.active != nil
}

// ActiveVersion returns the active client's version tag, or "" while
// unconfigured. Used for log and span labels; never an error.
func (s *Session) ActiveVersion() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.active == nil {
		return ""
	}
	return string(s.active.version)
}
