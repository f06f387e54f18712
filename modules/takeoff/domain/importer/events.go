package importer

import "github.com/google/uuid"

type ImportCompletedEvent struct {
	ProjectID uuid.UUID
	Result    *ImportResult
}

type ImportFailedEvent struct {
	ProjectID uuid.UUID
	Result    *ImportResult
}

func NewImportCompletedEvent(projectID uuid.UUID, result *ImportResult) *ImportCompletedEvent {
	return &ImportCompletedEvent{ProjectID: projectID, Result: result}
}

func NewImportFailedEvent(projectID uuid.UUID, result *ImportResult) *ImportFailedEvent {
	return &ImportFailedEvent{ProjectID: projectID, Result: result}
}
