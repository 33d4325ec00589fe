package models

// UserRole is the access role attached to a User account.
type UserRole string

const (
	RoleAdmin           UserRole = "admin"
	RoleCoordinator     UserRole = "coordinator"
	RoleCaregiver       UserRole = "caregiver"
	RoleClient          UserRole = "client"
	RoleFacilityManager UserRole = "facility_manager"
)

// IsValid reports whether the value is a known role.
func (r UserRole) IsValid() bool {
	switch r {
	case RoleAdmin, RoleCoordinator, RoleCaregiver, RoleClient, RoleFacilityManager:
		return true
	}
	return false
}

// EmploymentType is the caregiver's employment classification. It determines
// the billing model: W-2 employees staff in-home care, 1099 contractors staff
// facilities.
type EmploymentType string

const (
	EmploymentW2Employee     EmploymentType = "w2_employee"
	EmploymentContractor1099 EmploymentType = "contractor_1099"
)

// IsValid reports whether the value is a known employment type.
func (e EmploymentType) IsValid() bool {
	switch e {
	case EmploymentW2Employee, EmploymentContractor1099:
		return true
	}
	return false
}

// CertificationType classifies a caregiver credential.
type CertificationType string

const (
	CertificationCNA        CertificationType = "cna"
	CertificationLPN        CertificationType = "lpn"
	CertificationRN         CertificationType = "rn"
	CertificationHHA        CertificationType = "hha"
	CertificationCPR        CertificationType = "cpr"
	CertificationFirstAid   CertificationType = "first_aid"
	CertificationDementia   CertificationType = "dementia"
	CertificationAlzheimers CertificationType = "alzheimers"
	CertificationGNA        CertificationType = "gna"
	CertificationCRMA       CertificationType = "crma"
)

// IsValid reports whether the value is a known certification type.
func (c CertificationType) IsValid() bool {
	switch c {
	case CertificationCNA, CertificationLPN, CertificationRN, CertificationHHA,
		CertificationCPR, CertificationFirstAid, CertificationDementia,
		CertificationAlzheimers, CertificationGNA, CertificationCRMA:
		return true
	}
	return false
}

// IsBoardCredential reports whether this credential is issued by a state
// nursing board. Board credentials carry a license number and issuing
// authority; callers are expected to populate both when recording one. This
// is documented policy rather than a structural invariant, matching how
// intake actually works (numbers are sometimes transcribed after the fact).
func (c CertificationType) IsBoardCredential() bool {
	switch c {
	case CertificationCNA, CertificationLPN, CertificationRN, CertificationGNA, CertificationCRMA:
		return true
	}
	return false
}
