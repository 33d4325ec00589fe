package postgres

import (
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	billing "carepath/internal/billing/models"
	clinical "carepath/internal/clinical/models"
	identity "carepath/internal/identity/models"
	scheduling "carepath/internal/scheduling/models"
	"carepath/pkg/domain"
)

// Numeric columns are selected as ::text so shopspring decimals scan
// losslessly through their sql.Scanner.

var auditCols = []string{"created_at", "updated_at", "created_by", "updated_by", "is_deleted"}

func withAudit(cols ...string) []string {
	return append(cols, auditCols...)
}

func auditValues(a domain.Audit) []any {
	return []any{a.CreatedAt, a.UpdatedAt, a.CreatedBy, a.UpdatedBy, a.IsDeleted}
}

func nullDec(d *decimal.Decimal) decimal.NullDecimal {
	if d == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: *d, Valid: true}
}

func decPtr(nd decimal.NullDecimal) *decimal.Decimal {
	if !nd.Valid {
		return nil
	}
	d := nd.Decimal
	return &d
}

func nullID[T ~[16]byte](id *T) any {
	if id == nil {
		return nil
	}
	return uuid.UUID(*id)
}

func idPtr[T ~[16]byte](nu uuid.NullUUID) *T {
	if !nu.Valid {
		return nil
	}
	id := T(nu.UUID)
	return &id
}

var userMapper = mapper[*identity.User]{
	table: "users",
	cols: withAudit("id", "first_name", "last_name", "email", "phone_number",
		"address", "city", "state", "zip_code", "role", "is_active", "last_login_at"),
	selectList: "id, first_name, last_name, email, phone_number, address, city, state, zip_code, " +
		"role, is_active, last_login_at, created_at, updated_at, created_by, updated_by, is_deleted",
	values: func(u *identity.User) []any {
		return append([]any{
			uuid.UUID(u.ID), u.FirstName, u.LastName, u.Email, u.PhoneNumber,
			u.Address, u.City, u.State, u.ZipCode, u.Role, u.IsActive, u.LastLoginAt,
		}, auditValues(u.Audit)...)
	},
	scan: func(rows pgx.Rows) (*identity.User, error) {
		u := &identity.User{}
		var id uuid.UUID
		if err := rows.Scan(&id, &u.FirstName, &u.LastName, &u.Email, &u.PhoneNumber,
			&u.Address, &u.City, &u.State, &u.ZipCode, &u.Role, &u.IsActive, &u.LastLoginAt,
			&u.CreatedAt, &u.UpdatedAt, &u.CreatedBy, &u.UpdatedBy, &u.IsDeleted); err != nil {
			return nil, err
		}
		u.ID = domain.UserID(id)
		return u, nil
	},
}

var caregiverMapper = mapper[*identity.Caregiver]{
	table: "caregivers",
	cols: withAudit("id", "user_id", "employment_type", "hourly_pay_rate", "hire_date",
		"termination_date", "has_dementia_care", "has_alzheimers_care", "has_mobility_assistance",
		"has_medication_management", "available_weekdays", "available_weekends", "available_nights",
		"max_weekly_hours", "average_rating", "total_shifts_completed", "no_show_count"),
	selectList: "id, user_id, employment_type, hourly_pay_rate::text, hire_date, termination_date, " +
		"has_dementia_care, has_alzheimers_care, has_mobility_assistance, has_medication_management, " +
		"available_weekdays, available_weekends, available_nights, max_weekly_hours, " +
		"average_rating::text, total_shifts_completed, no_show_count, " +
		"created_at, updated_at, created_by, updated_by, is_deleted",
	values: func(c *identity.Caregiver) []any {
		return append([]any{
			uuid.UUID(c.ID), uuid.UUID(c.UserID), c.EmploymentType, c.HourlyPayRate, c.HireDate,
			c.TerminationDate, c.HasDementiaCare, c.HasAlzheimersCare, c.HasMobilityAssistance,
			c.HasMedicationManagement, c.AvailableWeekdays, c.AvailableWeekends, c.AvailableNights,
			c.MaxWeeklyHours, nullDec(c.AverageRating), c.TotalShiftsCompleted(), c.NoShowCount(),
		}, auditValues(c.Audit)...)
	},
	scan: func(rows pgx.Rows) (*identity.Caregiver, error) {
		c := &identity.Caregiver{}
		var (
			id, userID         uuid.UUID
			rating             decimal.NullDecimal
			completed, noShows int
		)
		if err := rows.Scan(&id, &userID, &c.EmploymentType, &c.HourlyPayRate, &c.HireDate,
			&c.TerminationDate, &c.HasDementiaCare, &c.HasAlzheimersCare, &c.HasMobilityAssistance,
			&c.HasMedicationManagement, &c.AvailableWeekdays, &c.AvailableWeekends, &c.AvailableNights,
			&c.MaxWeeklyHours, &rating, &completed, &noShows,
			&c.CreatedAt, &c.UpdatedAt, &c.CreatedBy, &c.UpdatedBy, &c.IsDeleted); err != nil {
			return nil, err
		}
		c.ID = domain.CaregiverID(id)
		c.UserID = domain.UserID(userID)
		c.AverageRating = decPtr(rating)
		c.RestorePerformanceCounters(completed, noShows)
		return c, nil
	},
}

var certificationMapper = mapper[*identity.CaregiverCertification]{
	table: "caregiver_certifications",
	cols: withAudit("id", "caregiver_id", "cert_type", "certification_number",
		"issue_date", "expiration_date", "issuing_authority"),
	selectList: "id, caregiver_id, cert_type, certification_number, issue_date, expiration_date, " +
		"issuing_authority, created_at, updated_at, created_by, updated_by, is_deleted",
	values: func(c *identity.CaregiverCertification) []any {
		return append([]any{
			uuid.UUID(c.ID), uuid.UUID(c.CaregiverID), c.Type, c.CertificationNumber,
			c.IssueDate, c.ExpirationDate, c.IssuingAuthority,
		}, auditValues(c.Audit)...)
	},
	scan: func(rows pgx.Rows) (*identity.CaregiverCertification, error) {
		c := &identity.CaregiverCertification{}
		var id, caregiverID uuid.UUID
		if err := rows.Scan(&id, &caregiverID, &c.Type, &c.CertificationNumber,
			&c.IssueDate, &c.ExpirationDate, &c.IssuingAuthority,
			&c.CreatedAt, &c.UpdatedAt, &c.CreatedBy, &c.UpdatedBy, &c.IsDeleted); err != nil {
			return nil, err
		}
		c.ID = domain.CertificationID(id)
		c.CaregiverID = domain.CaregiverID(caregiverID)
		return c, nil
	},
}

var clientMapper = mapper[*identity.Client]{
	table: "clients",
	cols: withAudit("id", "user_id", "date_of_birth", "emergency_contact_name",
		"emergency_contact_phone", "emergency_contact_relationship", "requires_dementia_care",
		"requires_mobility_assistance", "requires_medication_management", "requires_companionship",
		"special_instructions", "medical_conditions", "allergies", "service_type",
		"hourly_bill_rate", "estimated_weekly_hours", "latitude", "longitude", "location_notes",
		"insurance_provider", "insurance_policy_number", "medicaid_number"),
	selectList: "id, user_id, date_of_birth, emergency_contact_name, emergency_contact_phone, " +
		"emergency_contact_relationship, requires_dementia_care, requires_mobility_assistance, " +
		"requires_medication_management, requires_companionship, special_instructions, " +
		"medical_conditions, allergies, service_type, hourly_bill_rate::text, estimated_weekly_hours, " +
		"latitude, longitude, location_notes, insurance_provider, insurance_policy_number, " +
		"medicaid_number, created_at, updated_at, created_by, updated_by, is_deleted",
	values: func(c *identity.Client) []any {
		return append([]any{
			uuid.UUID(c.ID), uuid.UUID(c.UserID), c.DateOfBirth, c.EmergencyContactName,
			c.EmergencyContactPhone, c.EmergencyContactRelationship, c.RequiresDementiaCare,
			c.RequiresMobilityAssistance, c.RequiresMedicationManagement, c.RequiresCompanionship,
			c.SpecialInstructions, c.MedicalConditions, c.Allergies, c.ServiceType,
			c.HourlyBillRate, c.EstimatedWeeklyHours, c.Latitude, c.Longitude, c.LocationNotes,
			c.InsuranceProvider, c.InsurancePolicyNumber, c.MedicaidNumber,
		}, auditValues(c.Audit)...)
	},
	scan: func(rows pgx.Rows) (*identity.Client, error) {
		c := &identity.Client{}
		var id, userID uuid.UUID
		if err := rows.Scan(&id, &userID, &c.DateOfBirth, &c.EmergencyContactName,
			&c.EmergencyContactPhone, &c.EmergencyContactRelationship, &c.RequiresDementiaCare,
			&c.RequiresMobilityAssistance, &c.RequiresMedicationManagement, &c.RequiresCompanionship,
			&c.SpecialInstructions, &c.MedicalConditions, &c.Allergies, &c.ServiceType,
			&c.HourlyBillRate, &c.EstimatedWeeklyHours, &c.Latitude, &c.Longitude, &c.LocationNotes,
			&c.InsuranceProvider, &c.InsurancePolicyNumber, &c.MedicaidNumber,
			&c.CreatedAt, &c.UpdatedAt, &c.CreatedBy, &c.UpdatedBy, &c.IsDeleted); err != nil {
			return nil, err
		}
		c.ID = domain.ClientID(id)
		c.UserID = domain.UserID(userID)
		return c, nil
	},
}

var carePlanMapper = mapper[*clinical.CarePlan]{
	table: "care_plans",
	cols: withAudit("id", "client_id", "title", "description", "start_date", "end_date",
		"is_active", "goals", "interventions", "notes"),
	selectList: "id, client_id, title, description, start_date, end_date, is_active, goals, " +
		"interventions, notes, created_at, updated_at, created_by, updated_by, is_deleted",
	values: func(p *clinical.CarePlan) []any {
		return append([]any{
			uuid.UUID(p.ID), uuid.UUID(p.ClientID), p.Title, p.Description, p.StartDate,
			p.EndDate, p.IsActive, p.Goals, p.Interventions, p.Notes,
		}, auditValues(p.Audit)...)
	},
	scan: func(rows pgx.Rows) (*clinical.CarePlan, error) {
		p := &clinical.CarePlan{}
		var id, clientID uuid.UUID
		if err := rows.Scan(&id, &clientID, &p.Title, &p.Description, &p.StartDate,
			&p.EndDate, &p.IsActive, &p.Goals, &p.Interventions, &p.Notes,
			&p.CreatedAt, &p.UpdatedAt, &p.CreatedBy, &p.UpdatedBy, &p.IsDeleted); err != nil {
			return nil, err
		}
		p.ID = domain.CarePlanID(id)
		p.ClientID = domain.ClientID(clientID)
		return p, nil
	},
}

var shiftMapper = mapper[*scheduling.Shift]{
	table: "shifts",
	cols: withAudit("id", "client_id", "caregiver_id", "scheduled_start_time", "scheduled_end_time",
		"actual_start_time", "actual_end_time", "status", "service_type", "bill_rate", "pay_rate",
		"overtime_pay_rate", "weekend_premium", "holiday_premium", "check_in_latitude",
		"check_in_longitude", "check_in_time", "check_out_latitude", "check_out_longitude",
		"check_out_time", "break_minutes", "notes", "cancellation_reason", "cancelled_at"),
	selectList: "id, client_id, caregiver_id, scheduled_start_time, scheduled_end_time, " +
		"actual_start_time, actual_end_time, status, service_type, bill_rate::text, pay_rate::text, " +
		"overtime_pay_rate::text, weekend_premium::text, holiday_premium::text, check_in_latitude, " +
		"check_in_longitude, check_in_time, check_out_latitude, check_out_longitude, check_out_time, " +
		"break_minutes, notes, cancellation_reason, cancelled_at, " +
		"created_at, updated_at, created_by, updated_by, is_deleted",
	values: func(s *scheduling.Shift) []any {
		return append([]any{
			uuid.UUID(s.ID), uuid.UUID(s.ClientID), nullID(s.CaregiverID),
			s.ScheduledStartTime, s.ScheduledEndTime, s.ActualStartTime, s.ActualEndTime,
			s.Status, s.ServiceType, s.BillRate, s.PayRate,
			nullDec(s.OvertimePayRate), nullDec(s.WeekendPremium), nullDec(s.HolidayPremium),
			s.CheckInLatitude, s.CheckInLongitude, s.CheckInTime,
			s.CheckOutLatitude, s.CheckOutLongitude, s.CheckOutTime,
			s.BreakMinutes, s.Notes, s.CancellationReason, s.CancelledAt,
		}, auditValues(s.Audit)...)
	},
	scan: func(rows pgx.Rows) (*scheduling.Shift, error) {
		s := &scheduling.Shift{}
		var (
			id, clientID               uuid.UUID
			caregiverID                uuid.NullUUID
			overtime, weekend, holiday decimal.NullDecimal
		)
		if err := rows.Scan(&id, &clientID, &caregiverID,
			&s.ScheduledStartTime, &s.ScheduledEndTime, &s.ActualStartTime, &s.ActualEndTime,
			&s.Status, &s.ServiceType, &s.BillRate, &s.PayRate,
			&overtime, &weekend, &holiday,
			&s.CheckInLatitude, &s.CheckInLongitude, &s.CheckInTime,
			&s.CheckOutLatitude, &s.CheckOutLongitude, &s.CheckOutTime,
			&s.BreakMinutes, &s.Notes, &s.CancellationReason, &s.CancelledAt,
			&s.CreatedAt, &s.UpdatedAt, &s.CreatedBy, &s.UpdatedBy, &s.IsDeleted); err != nil {
			return nil, err
		}
		s.ID = domain.ShiftID(id)
		s.ClientID = domain.ClientID(clientID)
		s.CaregiverID = idPtr[domain.CaregiverID](caregiverID)
		s.OvertimePayRate = decPtr(overtime)
		s.WeekendPremium = decPtr(weekend)
		s.HolidayPremium = decPtr(holiday)
		return s, nil
	},
}

var visitNoteMapper = mapper[*scheduling.VisitNote]{
	table: "visit_notes",
	cols: withAudit("id", "shift_id", "caregiver_id", "visit_date_time", "personal_care",
		"meal_preparation", "medication", "light_housekeeping", "companionship", "transportation",
		"exercise", "activities", "client_condition", "concerns", "medications",
		"blood_pressure_systolic", "blood_pressure_diastolic", "temperature", "heart_rate",
		"caregiver_signature_url", "client_or_family_signature_url"),
	selectList: "id, shift_id, caregiver_id, visit_date_time, personal_care, meal_preparation, " +
		"medication, light_housekeeping, companionship, transportation, exercise, activities, " +
		"client_condition, concerns, medications, blood_pressure_systolic, blood_pressure_diastolic, " +
		"temperature::text, heart_rate, caregiver_signature_url, client_or_family_signature_url, " +
		"created_at, updated_at, created_by, updated_by, is_deleted",
	values: func(n *scheduling.VisitNote) []any {
		return append([]any{
			uuid.UUID(n.ID), uuid.UUID(n.ShiftID), uuid.UUID(n.CaregiverID), n.VisitDateTime,
			n.PersonalCare, n.MealPreparation, n.Medication, n.LightHousekeeping, n.Companionship,
			n.Transportation, n.Exercise, n.Activities, n.ClientCondition, n.Concerns, n.Medications,
			n.BloodPressureSystolic, n.BloodPressureDiastolic, nullDec(n.Temperature), n.HeartRate,
			n.CaregiverSignatureURL, n.ClientOrFamilySignatureURL,
		}, auditValues(n.Audit)...)
	},
	scan: func(rows pgx.Rows) (*scheduling.VisitNote, error) {
		n := &scheduling.VisitNote{}
		var (
			id, shiftID, caregiverID uuid.UUID
			temperature              decimal.NullDecimal
		)
		if err := rows.Scan(&id, &shiftID, &caregiverID, &n.VisitDateTime,
			&n.PersonalCare, &n.MealPreparation, &n.Medication, &n.LightHousekeeping,
			&n.Companionship, &n.Transportation, &n.Exercise, &n.Activities, &n.ClientCondition,
			&n.Concerns, &n.Medications, &n.BloodPressureSystolic, &n.BloodPressureDiastolic,
			&temperature, &n.HeartRate, &n.CaregiverSignatureURL, &n.ClientOrFamilySignatureURL,
			&n.CreatedAt, &n.UpdatedAt, &n.CreatedBy, &n.UpdatedBy, &n.IsDeleted); err != nil {
			return nil, err
		}
		n.ID = domain.VisitNoteID(id)
		n.ShiftID = domain.ShiftID(shiftID)
		n.CaregiverID = domain.CaregiverID(caregiverID)
		n.Temperature = decPtr(temperature)
		return n, nil
	},
}

var visitPhotoMapper = mapper[*scheduling.VisitPhoto]{
	table:      "visit_photos",
	cols:       withAudit("id", "visit_note_id", "photo_url", "caption", "taken_at"),
	selectList: "id, visit_note_id, photo_url, caption, taken_at, created_at, updated_at, created_by, updated_by, is_deleted",
	values: func(p *scheduling.VisitPhoto) []any {
		return append([]any{
			uuid.UUID(p.ID), uuid.UUID(p.VisitNoteID), p.PhotoURL, p.Caption, p.TakenAt,
		}, auditValues(p.Audit)...)
	},
	scan: func(rows pgx.Rows) (*scheduling.VisitPhoto, error) {
		p := &scheduling.VisitPhoto{}
		var id, visitNoteID uuid.UUID
		if err := rows.Scan(&id, &visitNoteID, &p.PhotoURL, &p.Caption, &p.TakenAt,
			&p.CreatedAt, &p.UpdatedAt, &p.CreatedBy, &p.UpdatedBy, &p.IsDeleted); err != nil {
			return nil, err
		}
		p.ID = domain.VisitPhotoID(id)
		p.VisitNoteID = domain.VisitNoteID(visitNoteID)
		return p, nil
	},
}

var invoiceMapper = mapper[*billing.Invoice]{
	table: "invoices",
	cols: withAudit("id", "client_id", "invoice_number", "status", "invoice_date", "due_date",
		"tax_amount", "notes"),
	selectList: "id, client_id, invoice_number, status, invoice_date, due_date, tax_amount::text, " +
		"notes, created_at, updated_at, created_by, updated_by, is_deleted",
	values: func(i *billing.Invoice) []any {
		return append([]any{
			uuid.UUID(i.ID), uuid.UUID(i.ClientID), i.InvoiceNumber, i.Status,
			i.InvoiceDate, i.DueDate, i.TaxAmount, i.Notes,
		}, auditValues(i.Audit)...)
	},
	scan: func(rows pgx.Rows) (*billing.Invoice, error) {
		i := &billing.Invoice{}
		var id, clientID uuid.UUID
		if err := rows.Scan(&id, &clientID, &i.InvoiceNumber, &i.Status,
			&i.InvoiceDate, &i.DueDate, &i.TaxAmount, &i.Notes,
			&i.CreatedAt, &i.UpdatedAt, &i.CreatedBy, &i.UpdatedBy, &i.IsDeleted); err != nil {
			return nil, err
		}
		i.ID = domain.InvoiceID(id)
		i.ClientID = domain.ClientID(clientID)
		return i, nil
	},
}

var lineItemMapper = mapper[*billing.InvoiceLineItem]{
	table: "invoice_line_items",
	cols: withAudit("id", "invoice_id", "shift_id", "description", "service_date",
		"billable_hours", "rate_per_hour", "cost_per_hour"),
	selectList: "id, invoice_id, shift_id, description, service_date, billable_hours::text, " +
		"rate_per_hour::text, cost_per_hour::text, created_at, updated_at, created_by, updated_by, is_deleted",
	values: func(li *billing.InvoiceLineItem) []any {
		return append([]any{
			uuid.UUID(li.ID), uuid.UUID(li.InvoiceID), nullID(li.ShiftID), li.Description,
			li.ServiceDate, li.BillableHours, li.RatePerHour, nullDec(li.CostPerHour),
		}, auditValues(li.Audit)...)
	},
	scan: func(rows pgx.Rows) (*billing.InvoiceLineItem, error) {
		li := &billing.InvoiceLineItem{}
		var (
			id, invoiceID uuid.UUID
			shiftID       uuid.NullUUID
			costPerHour   decimal.NullDecimal
		)
		if err := rows.Scan(&id, &invoiceID, &shiftID, &li.Description, &li.ServiceDate,
			&li.BillableHours, &li.RatePerHour, &costPerHour,
			&li.CreatedAt, &li.UpdatedAt, &li.CreatedBy, &li.UpdatedBy, &li.IsDeleted); err != nil {
			return nil, err
		}
		li.ID = domain.LineItemID(id)
		li.InvoiceID = domain.InvoiceID(invoiceID)
		li.ShiftID = idPtr[domain.ShiftID](shiftID)
		li.CostPerHour = decPtr(costPerHour)
		return li, nil
	},
}

var paymentMapper = mapper[*billing.Payment]{
	table: "payments",
	cols: withAudit("id", "invoice_id", "payment_date", "amount", "method", "status",
		"reference_number", "notes", "failure_reason"),
	selectList: "id, invoice_id, payment_date, amount::text, method, status, reference_number, " +
		"notes, failure_reason, created_at, updated_at, created_by, updated_by, is_deleted",
	values: func(p *billing.Payment) []any {
		return append([]any{
			uuid.UUID(p.ID), uuid.UUID(p.InvoiceID), p.PaymentDate, p.Amount, p.Method,
			p.Status, p.ReferenceNumber, p.Notes, p.FailureReason,
		}, auditValues(p.Audit)...)
	},
	scan: func(rows pgx.Rows) (*billing.Payment, error) {
		p := &billing.Payment{}
		var id, invoiceID uuid.UUID
		if err := rows.Scan(&id, &invoiceID, &p.PaymentDate, &p.Amount, &p.Method,
			&p.Status, &p.ReferenceNumber, &p.Notes, &p.FailureReason,
			&p.CreatedAt, &p.UpdatedAt, &p.CreatedBy, &p.UpdatedBy, &p.IsDeleted); err != nil {
			return nil, err
		}
		p.ID = domain.PaymentID(id)
		p.InvoiceID = domain.InvoiceID(invoiceID)
		return p, nil
	},
}
