// Package mapping holds the mapping-authoring core: the field validator, the
// three-step creation machine, the submission flow, and the list controller.
// Everything here is UI-free; the console layer renders on top of it.
package mapping

import (
	"regexp"
	"strings"
	"time"
)

// Form field identifiers, matching the wire names of the patient schema.
const (
	FieldEHRName               = "ehrName"
	FieldName                  = "name"
	FieldGender                = "gender"
	FieldDOB                   = "dob"
	FieldAddress               = "address"
	FieldPhone                 = "phone"
	FieldEmail                 = "email"
	FieldEmergencyContact      = "emergencyContact"
	FieldInsuranceProvider     = "insuranceProvider"
	FieldInsurancePolicyNumber = "insurancePolicyNumber"
	FieldPrimaryCarePhysician  = "primaryCarePhysician"
	FieldAllergies             = "allergies"
	FieldCurrentMedications    = "currentMedications"
	FieldMedicalHistory        = "medicalHistory"
	FieldSocialHistory         = "socialHistory"
	FieldFamilyHistory         = "familyHistory"
)

// PatientFields lists every patient field in form order.
var PatientFields = []string{
	FieldName, FieldGender, FieldDOB, FieldAddress, FieldPhone, FieldEmail,
	FieldEmergencyContact, FieldInsuranceProvider, FieldInsurancePolicyNumber,
	FieldPrimaryCarePhysician, FieldAllergies, FieldCurrentMedications,
	FieldMedicalHistory, FieldSocialHistory, FieldFamilyHistory,
}

// Validation messages are i18n catalog keys; the console translates them at
// render time.
const (
	MsgRequired     = "requiredField"
	MsgGenderFormat = "genderLabelError"
	MsgDateFuture   = "dateFutureError"
	MsgNumericOnly  = "numericFieldError"
	MsgInvalidEmail = "invalidEmailError"
)

// Values holds the current form values keyed by field id.
type Values map[string]string

// Clone returns an independent copy of the values.
func (v Values) Clone() Values {
	out := make(Values, len(v))
	for k, val := range v {
		out[k] = val
	}
	return out
}

// FieldErrors maps field ids to validation message keys.
type FieldErrors map[string]string

var (
	genderPattern = regexp.MustCompile(`(?i)^(Male|Female)$`)
	phonePattern  = regexp.MustCompile(`^\d+$`)
	emailPattern  = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

// rule is one declarative field constraint. Required is checked first; an
// empty value passes pattern and check rules (optional-when-empty semantics).
type rule struct {
	required bool
	pattern  *regexp.Regexp
	msg      string
	check    func(value string, now time.Time) string
}

var rules = map[string]rule{
	FieldEHRName: {required: true},
	FieldName:    {required: true},
	FieldGender:  {pattern: genderPattern, msg: MsgGenderFormat},
	FieldDOB:     {required: true, check: checkDOB},
	FieldPhone:   {pattern: phonePattern, msg: MsgNumericOnly},
	FieldEmail:   {pattern: emailPattern, msg: MsgInvalidEmail},
}

// checkDOB rejects dates strictly after the evaluation time. An unparseable
// date never passes the comparison and is reported the same way.
func checkDOB(value string, now time.Time) string {
	d, err := time.ParseInLocation("2006-01-02", value, now.Location())
	if err != nil {
		return MsgDateFuture
	}
	if d.After(now) {
		return MsgDateFuture
	}
	return ""
}

// Validator evaluates per-field constraints. Now is injectable for the
// date-of-birth comparison and defaults to time.Now.
type Validator struct {
	Now func() time.Time
}

func NewValidator() *Validator {
	return &Validator{Now: time.Now}
}

// Validate checks a single field against its rule given the full form state.
// It returns the empty string when the field is valid, otherwise a message key.
func (v *Validator) Validate(field, value string, _ Values) string {
	r, ok := rules[field]
	if !ok {
		return ""
	}
	if strings.TrimSpace(value) == "" {
		if r.required {
			return MsgRequired
		}
		return ""
	}
	if r.pattern != nil && !r.pattern.MatchString(value) {
		return r.msg
	}
	if r.check != nil {
		return r.check(value, v.Now())
	}
	return ""
}

// ValidateFields evaluates a set of fields and collects every failure.
func (v *Validator) ValidateFields(fields []string, values Values) FieldErrors {
	errs := FieldErrors{}
	for _, f := range fields {
		if msg := v.Validate(f, values[f], values); msg != "" {
			errs[f] = msg
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}
