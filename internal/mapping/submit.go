package mapping

import (
	"context"

	"github.com/ehr/console/internal/ehrapi"
)

// Creator is the slice of the remote API the submission flow needs.
type Creator interface {
	CreateMapping(ctx context.Context, payload ehrapi.MappingPayload) (*ehrapi.MappingRecord, error)
}

// Submitter delivers a validated draft to the remote store.
type Submitter interface {
	Submit(ctx context.Context, payload ehrapi.MappingPayload) error
}

// APISubmitter submits drafts through the remote EHR API client.
type APISubmitter struct {
	api Creator
}

func NewAPISubmitter(api Creator) *APISubmitter {
	return &APISubmitter{api: api}
}

func (s *APISubmitter) Submit(ctx context.Context, payload ehrapi.MappingPayload) error {
	_, err := s.api.CreateMapping(ctx, payload)
	return err
}

// BuildPayload converts form values into the wire payload: the mapping object
// keyed by the chosen EHR system name, plus the name as a separate field.
func BuildPayload(values Values) ehrapi.MappingPayload {
	ehrName := values[FieldEHRName]
	return ehrapi.MappingPayload{
		Mapping: map[string]ehrapi.MappingEntry{
			ehrName: {Patient: PatientFromValues(values)},
		},
		EHRName: ehrName,
	}
}

// PatientFromValues copies the patient fields of the form into the wire schema.
func PatientFromValues(values Values) ehrapi.PatientRecord {
	return ehrapi.PatientRecord{
		Name:                  values[FieldName],
		Gender:                values[FieldGender],
		DOB:                   values[FieldDOB],
		Address:               values[FieldAddress],
		Phone:                 values[FieldPhone],
		Email:                 values[FieldEmail],
		EmergencyContact:      values[FieldEmergencyContact],
		InsuranceProvider:     values[FieldInsuranceProvider],
		InsurancePolicyNumber: values[FieldInsurancePolicyNumber],
		PrimaryCarePhysician:  values[FieldPrimaryCarePhysician],
		Allergies:             values[FieldAllergies],
		CurrentMedications:    values[FieldCurrentMedications],
		MedicalHistory:        values[FieldMedicalHistory],
		SocialHistory:         values[FieldSocialHistory],
		FamilyHistory:         values[FieldFamilyHistory],
	}
}
