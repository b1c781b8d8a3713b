package mapping

import (
	"testing"
	"time"
)

func fixedValidator() *Validator {
	// 2025-06-15 12:00 local time.
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.Local)
	return &Validator{Now: func() time.Time { return now }}
}

func TestValidate_EHRNameRequired(t *testing.T) {
	v := fixedValidator()
	for _, val := range []string{"", "   ", "\t"} {
		if msg := v.Validate(FieldEHRName, val, nil); msg != MsgRequired {
			t.Errorf("ehrName %q: expected %q, got %q", val, MsgRequired, msg)
		}
	}
	if msg := v.Validate(FieldEHRName, "client", nil); msg != "" {
		t.Errorf("expected valid, got %q", msg)
	}
}

func TestValidate_NameRequired(t *testing.T) {
	v := fixedValidator()
	if msg := v.Validate(FieldName, "", nil); msg != MsgRequired {
		t.Errorf("expected %q, got %q", MsgRequired, msg)
	}
	if msg := v.Validate(FieldName, "Jane Doe", nil); msg != "" {
		t.Errorf("expected valid, got %q", msg)
	}
}

func TestValidate_Gender(t *testing.T) {
	v := fixedValidator()
	valid := []string{"", "Male", "Female", "male", "FEMALE", "fEmAlE"}
	for _, val := range valid {
		if msg := v.Validate(FieldGender, val, nil); msg != "" {
			t.Errorf("gender %q: expected valid, got %q", val, msg)
		}
	}
	invalid := []string{"M", "man", "Malee", "Female ", "other"}
	for _, val := range invalid {
		if msg := v.Validate(FieldGender, val, nil); msg != MsgGenderFormat {
			t.Errorf("gender %q: expected %q, got %q", val, MsgGenderFormat, msg)
		}
	}
}

func TestValidate_DOB(t *testing.T) {
	v := fixedValidator()

	if msg := v.Validate(FieldDOB, "", nil); msg != MsgRequired {
		t.Errorf("empty dob: expected %q, got %q", MsgRequired, msg)
	}
	for _, val := range []string{"1990-01-01", "2025-06-15", "2020-02-29"} {
		if msg := v.Validate(FieldDOB, val, nil); msg != "" {
			t.Errorf("dob %q: expected valid, got %q", val, msg)
		}
	}
	// One day after "now" and beyond.
	for _, val := range []string{"2025-06-16", "2030-01-01"} {
		if msg := v.Validate(FieldDOB, val, nil); msg != MsgDateFuture {
			t.Errorf("dob %q: expected %q, got %q", val, MsgDateFuture, msg)
		}
	}
	// Unparseable dates never pass.
	for _, val := range []string{"not-a-date", "2025-13-40", "15/06/2025"} {
		if msg := v.Validate(FieldDOB, val, nil); msg != MsgDateFuture {
			t.Errorf("dob %q: expected %q, got %q", val, MsgDateFuture, msg)
		}
	}
}

func TestValidate_Phone(t *testing.T) {
	v := fixedValidator()
	for _, val := range []string{"", "0", "0745123456", "12345678901234"} {
		if msg := v.Validate(FieldPhone, val, nil); msg != "" {
			t.Errorf("phone %q: expected valid, got %q", val, msg)
		}
	}
	for _, val := range []string{"074 512", "0745-123", "+40745", "abc", "12a"} {
		if msg := v.Validate(FieldPhone, val, nil); msg != MsgNumericOnly {
			t.Errorf("phone %q: expected %q, got %q", val, MsgNumericOnly, msg)
		}
	}
}

func TestValidate_Email(t *testing.T) {
	v := fixedValidator()
	for _, val := range []string{"", "a@b.c", "jane.doe@example.com"} {
		if msg := v.Validate(FieldEmail, val, nil); msg != "" {
			t.Errorf("email %q: expected valid, got %q", val, msg)
		}
	}
	for _, val := range []string{"jane", "jane@", "@example.com", "jane@example", "a b@c.d"} {
		if msg := v.Validate(FieldEmail, val, nil); msg != MsgInvalidEmail {
			t.Errorf("email %q: expected %q, got %q", val, MsgInvalidEmail, msg)
		}
	}
}

func TestValidate_UnruledFieldsAcceptAnything(t *testing.T) {
	v := fixedValidator()
	for _, f := range []string{FieldAddress, FieldAllergies, FieldMedicalHistory, FieldSocialHistory} {
		if msg := v.Validate(f, "", nil); msg != "" {
			t.Errorf("field %q empty: expected valid, got %q", f, msg)
		}
		if msg := v.Validate(f, "anything at all 123 !?", nil); msg != "" {
			t.Errorf("field %q: expected valid, got %q", f, msg)
		}
	}
}

func TestValidateFields_CollectsAllFailures(t *testing.T) {
	v := fixedValidator()
	values := Values{
		FieldName:  "",
		FieldDOB:   "2030-01-01",
		FieldPhone: "074-512",
	}
	errs := v.ValidateFields(PatientFields, values)
	if len(errs) != 3 {
		t.Fatalf("expected 3 errors, got %d: %v", len(errs), errs)
	}
	if errs[FieldName] != MsgRequired {
		t.Errorf("name: expected %q, got %q", MsgRequired, errs[FieldName])
	}
	if errs[FieldDOB] != MsgDateFuture {
		t.Errorf("dob: expected %q, got %q", MsgDateFuture, errs[FieldDOB])
	}
	if errs[FieldPhone] != MsgNumericOnly {
		t.Errorf("phone: expected %q, got %q", MsgNumericOnly, errs[FieldPhone])
	}
}

func TestValidateFields_NilWhenClean(t *testing.T) {
	v := fixedValidator()
	values := Values{
		FieldEHRName: "client",
		FieldName:    "Jane Doe",
		FieldDOB:     "2020-01-01",
	}
	if errs := v.ValidateFields([]string{FieldEHRName}, values); errs != nil {
		t.Errorf("expected nil, got %v", errs)
	}
	if errs := v.ValidateFields(PatientFields, values); errs != nil {
		t.Errorf("expected nil, got %v", errs)
	}
}
