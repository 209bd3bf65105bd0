package services

import (
	"errors"
	"fmt"

	"github.com/dmitrijs2005/docwatch/internal/client/client"
)

var (
	ErrNotLoaded           = errors.New("documents not loaded")
	ErrDocumentNotCached   = errors.New("document not in list")
	ErrSyncNotAllowed      = errors.New("document has no signature token")
	ErrAlreadySyncing      = errors.New("status sync already in progress")
	ErrRealtimeNotReady    = errors.New("live updates need a completed load with at least one company")
	ErrNoDocumentOpen      = errors.New("no document open")
	ErrReanalyzeNotAllowed = errors.New("reanalysis needs a PDF url and no analysis in progress")
)

// LoadError is a failed initial fetch. The view it belongs to shows no data.
type LoadError struct {
	What string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load %s: %v", e.What, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

func (e *LoadError) Message() string {
	return "could not load " + e.What + ": " + userMessage(e.Err)
}

// ActionError is a failed single action. Cached data is left as it was.
type ActionError struct {
	Op  string
	ID  int64
	Err error
}

func (e *ActionError) Error() string {
	return fmt.Sprintf("%s document %d: %v", e.Op, e.ID, e.Err)
}

func (e *ActionError) Unwrap() error { return e.Err }

func (e *ActionError) Message() string {
	return e.Op + " failed: " + userMessage(e.Err)
}

// RealtimeError reports a push channel that closed or failed. The cache is
// kept; it may be stale until the channel is reopened.
type RealtimeError struct {
	Channel string
	Err     error
}

func (e *RealtimeError) Error() string {
	if e.Err == nil {
		return e.Channel + " channel closed"
	}
	return fmt.Sprintf("%s channel: %v", e.Channel, e.Err)
}

func (e *RealtimeError) Unwrap() error { return e.Err }

func (e *RealtimeError) Message() string {
	return "live updates stopped (" + e.Channel + "); data shown may be stale"
}

func userMessage(err error) string {
	var apiErr *client.APIError
	switch {
	case errors.Is(err, client.ErrNotLoggedIn):
		return "not logged in"
	case errors.Is(err, client.ErrUnauthorized):
		return "session expired, please log in again"
	case errors.Is(err, client.ErrUnavailable):
		return "server unavailable, try again later"
	case errors.Is(err, client.ErrNotFound):
		return "not found"
	case errors.As(err, &apiErr) && apiErr.Message != "":
		return apiErr.Message
	default:
		return err.Error()
	}
}
