// Package i18n resolves UI message keys to localized strings. A missing key
// resolves to itself so unfinished catalogs degrade visibly, not fatally.
package i18n

// Catalog translates message keys for a set of locales.
type Catalog struct {
	locales       map[string]map[string]string
	defaultLocale string
}

// New creates a catalog with the built-in locales.
func New(defaultLocale string) *Catalog {
	if _, ok := locales[defaultLocale]; !ok {
		defaultLocale = "en"
	}
	return &Catalog{locales: locales, defaultLocale: defaultLocale}
}

// Locales returns the supported locale codes.
func (c *Catalog) Locales() []string {
	return []string{"en", "ro"}
}

// Supported reports whether a locale code has a catalog.
func (c *Catalog) Supported(locale string) bool {
	_, ok := c.locales[locale]
	return ok
}

// T resolves key in the given locale, falling back to the default locale and
// finally to the key itself.
func (c *Catalog) T(locale, key string) string {
	if msgs, ok := c.locales[locale]; ok {
		if s, ok := msgs[key]; ok {
			return s
		}
	}
	if msgs, ok := c.locales[c.defaultLocale]; ok {
		if s, ok := msgs[key]; ok {
			return s
		}
	}
	return key
}

// Func returns a t(key) closure bound to one locale, for template rendering.
func (c *Catalog) Func(locale string) func(string) string {
	return func(key string) string { return c.T(locale, key) }
}

var locales = map[string]map[string]string{
	"en": {
		"welcomeBack":                "Welcome back",
		"gladToSeeYouAgain":          "Glad to see you again. Sign in to continue.",
		"email":                      "Email",
		"username":                   "Username",
		"password":                   "Password",
		"placeholderEmail":           "you@example.com",
		"signIn":                     "Sign in",
		"signUp":                     "Sign up",
		"createAccount":              "Create an account",
		"alreadyHaveAccount":         "Already have an account?",
		"noAccountYet":               "No account yet?",
		"invalidCredentials":         "Invalid credentials, please try again.",
		"registrationFailed":         "Registration failed, please try again.",
		"registrationSuccess":        "Account created, you can sign in now.",
		"logout":                     "Log out",
		"signedInAs":                 "Signed in as",
		"ehrMappingConfig":           "EHR Mapping Configuration",
		"createMapping":              "Create Mapping",
		"currentMappingsList":        "Current Mappings",
		"actions":                    "Actions",
		"deleteButton":               "Delete",
		"deleteConfirmation":         "Are you sure you want to delete this mapping?",
		"cancelDelete":               "Cancel",
		"confirm":                    "Confirm",
		"mappingStepperTitle":        "New EHR Mapping",
		"step1":                      "EHR System",
		"step2":                      "Patient Details",
		"step3":                      "Review",
		"ehrNameLabel":               "EHR System Name",
		"ehrNameCustomLabel":         "Custom EHR System Name",
		"ehrOptionClient":            "Client",
		"ehrOptionHospitals":         "Hospitals",
		"ehrOptionClinics":           "Clinics",
		"ehrOptionOther":             "Other",
		"patientNameLabel":           "Patient Name",
		"genderLabel":                "Gender",
		"dobLabel":                   "Date of Birth",
		"addressLabel":               "Address",
		"phoneLabel":                 "Phone",
		"emailLabel":                 "Email",
		"emergencyContactLabel":      "Emergency Contact",
		"insuranceProviderLabel":     "Insurance Provider",
		"insurancePolicyNumberLabel": "Insurance Policy Number",
		"primaryCarePhysicianLabel":  "Primary Care Physician",
		"allergiesLabel":             "Allergies",
		"currentMedicationsLabel":    "Current Medications",
		"medicalHistoryLabel":        "Medical History",
		"socialHistoryLabel":         "Social History",
		"familyHistoryLabel":         "Family History",
		"reviewDataSummary":          "Review data summary",
		"cancel":                     "Cancel",
		"back":                       "Back",
		"next":                       "Next",
		"save":                       "Save",
		"saving":                     "Saving...",
		"requiredField":              "This field is required",
		"genderLabelError":           "Gender must be Male or Female",
		"dateFutureError":            "Date cannot be in the future",
		"numericFieldError":          "Only digits are allowed",
		"invalidEmailError":          "Invalid email address",
		"mappingSavedSuccess":        "Mapping saved successfully",
		"errorSavingMapping":         "Could not save the mapping, please try again.",
		"errorLoadingMappings":       "Could not load the mapping list; showing the last known state.",
		"errorDeletingMapping":       "Could not delete the mapping, please try again.",
		"bulkChanges":                "Bulk Changes",
		"bulkChangesComingSoon":      "Bulk changes are coming soon.",
		"notFoundTitle":              "Page not found",
		"notFoundBody":               "The page you are looking for does not exist.",
		"backToMappings":             "Back to mappings",
	},
	"ro": {
		"welcomeBack":                "Bine ai revenit",
		"gladToSeeYouAgain":          "Ne bucurăm să te revedem. Autentifică-te pentru a continua.",
		"email":                      "Email",
		"username":                   "Nume utilizator",
		"password":                   "Parolă",
		"placeholderEmail":           "tu@exemplu.com",
		"signIn":                     "Autentificare",
		"signUp":                     "Înregistrare",
		"createAccount":              "Creează un cont",
		"alreadyHaveAccount":         "Ai deja un cont?",
		"noAccountYet":               "Nu ai cont încă?",
		"invalidCredentials":         "Date de autentificare invalide, încearcă din nou.",
		"registrationFailed":         "Înregistrarea a eșuat, încearcă din nou.",
		"registrationSuccess":        "Cont creat, te poți autentifica acum.",
		"logout":                     "Deconectare",
		"signedInAs":                 "Autentificat ca",
		"ehrMappingConfig":           "Configurare mapări EHR",
		"createMapping":              "Creează mapare",
		"currentMappingsList":        "Mapări curente",
		"actions":                    "Acțiuni",
		"deleteButton":               "Șterge",
		"deleteConfirmation":         "Sigur vrei să ștergi această mapare?",
		"cancelDelete":               "Renunță",
		"confirm":                    "Confirmă",
		"mappingStepperTitle":        "Mapare EHR nouă",
		"step1":                      "Sistem EHR",
		"step2":                      "Detalii pacient",
		"step3":                      "Verificare",
		"ehrNameLabel":               "Nume sistem EHR",
		"ehrNameCustomLabel":         "Nume sistem EHR personalizat",
		"ehrOptionClient":            "Client",
		"ehrOptionHospitals":         "Spitale",
		"ehrOptionClinics":           "Clinici",
		"ehrOptionOther":             "Altul",
		"patientNameLabel":           "Nume pacient",
		"genderLabel":                "Gen",
		"dobLabel":                   "Data nașterii",
		"addressLabel":               "Adresă",
		"phoneLabel":                 "Telefon",
		"emailLabel":                 "Email",
		"emergencyContactLabel":      "Contact de urgență",
		"insuranceProviderLabel":     "Asigurator",
		"insurancePolicyNumberLabel": "Număr poliță de asigurare",
		"primaryCarePhysicianLabel":  "Medic de familie",
		"allergiesLabel":             "Alergii",
		"currentMedicationsLabel":    "Medicație curentă",
		"medicalHistoryLabel":        "Istoric medical",
		"socialHistoryLabel":         "Istoric social",
		"familyHistoryLabel":         "Istoric familial",
		"reviewDataSummary":          "Verifică datele introduse",
		"cancel":                     "Renunță",
		"back":                       "Înapoi",
		"next":                       "Înainte",
		"save":                       "Salvează",
		"saving":                     "Se salvează...",
		"requiredField":              "Acest câmp este obligatoriu",
		"genderLabelError":           "Genul trebuie să fie Male sau Female",
		"dateFutureError":            "Data nu poate fi în viitor",
		"numericFieldError":          "Sunt permise doar cifre",
		"invalidEmailError":          "Adresă de email invalidă",
		"mappingSavedSuccess":        "Maparea a fost salvată",
		"errorSavingMapping":         "Maparea nu a putut fi salvată, încearcă din nou.",
		"errorLoadingMappings":       "Lista de mapări nu a putut fi încărcată; se afișează ultima stare cunoscută.",
		"errorDeletingMapping":       "Maparea nu a putut fi ștearsă, încearcă din nou.",
		"bulkChanges":                "Modificări în masă",
		"bulkChangesComingSoon":      "Modificările în masă vor fi disponibile în curând.",
		"notFoundTitle":              "Pagina nu a fost găsită",
		"notFoundBody":               "Pagina căutată nu există.",
		"backToMappings":             "Înapoi la mapări",
	},
}
