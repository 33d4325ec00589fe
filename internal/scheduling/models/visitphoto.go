package models

import (
	"time"

	"github.com/google/uuid"

	"carepath/pkg/domain"
)

// VisitPhoto is a photo attached to a visit note. The image itself lives in
// blob storage; PhotoURL is the only reference kept in the domain.
type VisitPhoto struct {
	ID          domain.VisitPhotoID `json:"id"`
	VisitNoteID domain.VisitNoteID  `json:"visit_note_id"`

	PhotoURL string    `json:"photo_url"`
	Caption  *string   `json:"caption,omitempty"`
	TakenAt  time.Time `json:"taken_at"`

	domain.Audit
}

// NewVisitPhoto returns a photo record for the given visit note.
func NewVisitPhoto(visitNoteID domain.VisitNoteID, photoURL string, takenAt, now time.Time) *VisitPhoto {
	return &VisitPhoto{
		ID:          domain.VisitPhotoID(uuid.New()),
		VisitNoteID: visitNoteID,
		PhotoURL:    photoURL,
		TakenAt:     takenAt,
		Audit:       domain.NewAudit(now),
	}
}

// RecordID implements the storage record contract.
func (p *VisitPhoto) RecordID() uuid.UUID {
	return uuid.UUID(p.ID)
}
