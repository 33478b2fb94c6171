package services

import (
	"encoding/json"

	"github.com/rs/zerolog"
)

// EventLogService tails the registry topic and writes each event to the
// structured log, giving operators a change feed without a separate
// consumer deployment.
type EventLogService struct {
	log zerolog.Logger
}

func NewEventLogService(log zerolog.Logger) *EventLogService {
	return &EventLogService{log: log}
}

func (s *EventLogService) HandleMessage(message string) error {
	var payload map[string]any
	if err := json.Unmarshal([]byte(message), &payload); err != nil {
		s.log.Info().Str("raw", message).Msg("registry event")
		return nil
	}
	s.log.Info().Interface("payload", payload).Msg("registry event")
	return nil
}
