package realtime

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/docwatch/internal/client/models"
)

// ErrForeignMessage is returned for frames of a type the channel does not
// carry (for example test_message).
var ErrForeignMessage = errors.New("message type not handled by channel")

// DecodeListFrame decodes a list channel frame.
func DecodeListFrame(data []byte) (models.ListMessage, error) {
	var env models.Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return models.ListMessage{}, fmt.Errorf("decode list frame: %w", err)
	}
	if env.Type != models.MessageTypeListUpdate {
		return models.ListMessage{}, fmt.Errorf("%w: %q", ErrForeignMessage, env.Type)
	}
	m := models.ListMessage{EventType: env.EventType}
	if len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, &m.Document); err != nil {
			return models.ListMessage{}, fmt.Errorf("decode %s payload: %w", env.EventType, err)
		}
	}
	return m, nil
}

// DecodeDetailFrame decodes a detail channel frame.
func DecodeDetailFrame(data []byte) (models.DetailMessage, error) {
	var env models.Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return models.DetailMessage{}, fmt.Errorf("decode detail frame: %w", err)
	}
	if env.Type != models.MessageTypeDocumentUpdate {
		return models.DetailMessage{}, fmt.Errorf("%w: %q", ErrForeignMessage, env.Type)
	}
	m := models.DetailMessage{EventType: env.EventType}
	// analysis_completed carries the full analysis; it is refetched instead
	if env.EventType == models.EventAnalysisStatusUpdate && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, &m.Patch); err != nil {
			return models.DetailMessage{}, fmt.Errorf("decode %s payload: %w", env.EventType, err)
		}
	}
	return m, nil
}
