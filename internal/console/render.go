package console

import (
	"embed"
	"fmt"
	"html/template"
	"io"

	"github.com/labstack/echo/v4"

	"github.com/ehr/console/internal/ehrapi"
	"github.com/ehr/console/internal/i18n"
	"github.com/ehr/console/internal/mapping"
)

//go:embed templates/*.html
var templateFS embed.FS

// Renderer implements echo.Renderer over the embedded page templates.
type Renderer struct {
	templates *template.Template
}

// NewRenderer parses the embedded templates, wiring the i18n catalog in as
// the `t` template function: {{t .Locale "key"}}.
func NewRenderer(catalog *i18n.Catalog) (*Renderer, error) {
	t := template.New("console").Funcs(template.FuncMap{
		"t": catalog.T,
	})
	t, err := t.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &Renderer{templates: t}, nil
}

func (r *Renderer) Render(w io.Writer, name string, data interface{}, _ echo.Context) error {
	return r.templates.ExecuteTemplate(w, name, data)
}

// pageData is the render model shared by all console pages.
type pageData struct {
	Locale  string
	Locales []string
	Path    string

	// User is the navbar label for the signed-in user, empty when anonymous.
	User string

	// Flash is a one-shot success banner key; Error a failure banner key.
	Flash string
	Error string

	// Form holds retained values for login/register retry.
	Form map[string]string

	// Mapping page state.
	Stepper       mapping.Snapshot
	StepperErrors mapping.FieldErrors
	Records       []ehrapi.MappingRecord
	ListError     string
	PendingDelete *ehrapi.MappingRecord

	EnumeratedSystems []systemOption
	SentinelCustom    string
	PatientFields     []fieldDef
}

// systemOption pairs an enumerated EHR system value with its label key.
type systemOption struct {
	Value    string
	LabelKey string
}

var systemOptions = []systemOption{
	{"client", "ehrOptionClient"},
	{"hospitals", "ehrOptionHospitals"},
	{"clinics", "ehrOptionClinics"},
}

// fieldDef pairs a patient form field with its label key for rendering.
type fieldDef struct {
	ID       string
	LabelKey string
	Type     string
}

var patientFieldDefs = []fieldDef{
	{mapping.FieldName, "patientNameLabel", "text"},
	{mapping.FieldGender, "genderLabel", "text"},
	{mapping.FieldDOB, "dobLabel", "date"},
	{mapping.FieldAddress, "addressLabel", "text"},
	{mapping.FieldPhone, "phoneLabel", "text"},
	{mapping.FieldEmail, "emailLabel", "text"},
	{mapping.FieldEmergencyContact, "emergencyContactLabel", "text"},
	{mapping.FieldInsuranceProvider, "insuranceProviderLabel", "text"},
	{mapping.FieldInsurancePolicyNumber, "insurancePolicyNumberLabel", "text"},
	{mapping.FieldPrimaryCarePhysician, "primaryCarePhysicianLabel", "text"},
	{mapping.FieldAllergies, "allergiesLabel", "text"},
	{mapping.FieldCurrentMedications, "currentMedicationsLabel", "text"},
	{mapping.FieldMedicalHistory, "medicalHistoryLabel", "text"},
	{mapping.FieldSocialHistory, "socialHistoryLabel", "text"},
	{mapping.FieldFamilyHistory, "familyHistoryLabel", "text"},
}
