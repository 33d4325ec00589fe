package models

import (
	"time"

	"github.com/google/uuid"

	"carepath/pkg/domain"
)

// ExpirationAlertDays is the look-ahead window for credential-expiry
// alerting: a certification is "expiring soon" when its expiration date
// falls inside this many days from now.
const ExpirationAlertDays = 30

// CaregiverCertification records one credential held by a caregiver.
//
// CertificationNumber and IssuingAuthority are expected for board
// credentials (see CertificationType.IsBoardCredential) but construction
// does not reject their absence; intake sometimes records the credential
// before the license details arrive.
type CaregiverCertification struct {
	ID          domain.CertificationID `json:"id"`
	CaregiverID domain.CaregiverID     `json:"caregiver_id"`

	Type                CertificationType `json:"type"`
	CertificationNumber *string           `json:"certification_number,omitempty"`
	IssueDate           time.Time         `json:"issue_date"`
	ExpirationDate      time.Time         `json:"expiration_date"`
	IssuingAuthority    *string           `json:"issuing_authority,omitempty"`

	domain.Audit
}

// NewCaregiverCertification returns a certification with fresh audit fields.
func NewCaregiverCertification(caregiverID domain.CaregiverID, certType CertificationType, now time.Time) *CaregiverCertification {
	return &CaregiverCertification{
		ID:          domain.CertificationID(uuid.New()),
		CaregiverID: caregiverID,
		Type:        certType,
		Audit:       domain.NewAudit(now),
	}
}

// RecordID implements the storage record contract.
func (c *CaregiverCertification) RecordID() uuid.UUID {
	return uuid.UUID(c.ID)
}

// IsExpired reports whether the certification has lapsed as of now.
func (c *CaregiverCertification) IsExpired(now time.Time) bool {
	return c.ExpirationDate.Before(now)
}

// IsExpiringSoon reports whether the certification expires within the alert
// window. Mutually exclusive with IsExpired by construction: a lapsed
// certification never reports "expiring soon".
func (c *CaregiverCertification) IsExpiringSoon(now time.Time) bool {
	return !c.IsExpired(now) && c.ExpirationDate.Before(now.AddDate(0, 0, ExpirationAlertDays))
}
