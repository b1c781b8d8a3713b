package ehrapi

// PatientRecord is the flat patient-field schema attached to a mapping.
// Field names follow the wire format of the remote EHR API; every field is
// optional on the wire, requiredness is enforced by the form validator.
type PatientRecord struct {
	Name                  string `json:"name"`
	Gender                string `json:"gender"`
	DOB                   string `json:"dob"`
	Address               string `json:"address"`
	Phone                 string `json:"phone"`
	Email                 string `json:"email"`
	EmergencyContact      string `json:"emergencyContact"`
	InsuranceProvider     string `json:"insuranceProvider"`
	InsurancePolicyNumber string `json:"insurancePolicyNumber"`
	PrimaryCarePhysician  string `json:"primaryCarePhysician"`
	Allergies             string `json:"allergies"`
	CurrentMedications    string `json:"currentMedications"`
	MedicalHistory        string `json:"medicalHistory"`
	SocialHistory         string `json:"socialHistory"`
	FamilyHistory         string `json:"familyHistory"`
}

// MappingEntry wraps the patient schema under a mapping key.
type MappingEntry struct {
	Patient PatientRecord `json:"patient"`
}

// MappingPayload is the create/update request body: the mapping object keyed
// by the chosen EHR system name, plus the system name as a separate field.
type MappingPayload struct {
	Mapping map[string]MappingEntry `json:"mapping"`
	EHRName string                  `json:"ehrName"`
}

// MappingRecord is a persisted mapping as returned by the remote store.
type MappingRecord struct {
	ID      string                  `json:"_id"`
	EHRName string                  `json:"ehrName"`
	Mapping map[string]MappingEntry `json:"mapping"`
}

// Patient returns the patient schema of the record's first mapping entry.
// Records hold exactly one entry in practice; iteration order is irrelevant
// for the single-entry case.
func (r MappingRecord) Patient() PatientRecord {
	if entry, ok := r.Mapping[r.EHRName]; ok {
		return entry.Patient
	}
	for _, entry := range r.Mapping {
		return entry.Patient
	}
	return PatientRecord{}
}

// SignInRequest is the credential payload for POST /signin.
type SignInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SignInResponse carries the bearer token issued on successful sign-in.
type SignInResponse struct {
	Token string `json:"token"`
}

// SignUpRequest is the registration payload for POST /signup. Roles is always
// ["user"]; the console has no role management.
type SignUpRequest struct {
	Email    string   `json:"email"`
	Username string   `json:"username"`
	Roles    []string `json:"roles"`
	Password string   `json:"password"`
}
