package domain

// ServiceType is the care delivery model. It drives the billing-rate range
// and the gross-margin target: in-home care (W-2 staff) targets 40-45%,
// facility staffing (1099 contractors) targets 25-30%.
type ServiceType string

const (
	ServiceTypeInHomeCare       ServiceType = "in_home_care"
	ServiceTypeFacilityStaffing ServiceType = "facility_staffing"
)

// IsValid reports whether the value is a known service type.
func (s ServiceType) IsValid() bool {
	switch s {
	case ServiceTypeInHomeCare, ServiceTypeFacilityStaffing:
		return true
	}
	return false
}
