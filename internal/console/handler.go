// Package console is the web layer of the EHR mapping console: echo handlers
// that render the login, registration, mapping-list and bulk-changes screens
// on top of the mapping core and the remote API client.
package console

import (
	"context"
	"net/http"
	"strings"
	"sync"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/ehr/console/internal/config"
	"github.com/ehr/console/internal/ehrapi"
	"github.com/ehr/console/internal/i18n"
	"github.com/ehr/console/internal/mapping"
	"github.com/ehr/console/internal/session"
)

// API is the slice of the remote EHR API the console uses.
type API interface {
	SignIn(ctx context.Context, email, password string) (*ehrapi.SignInResponse, error)
	SignUp(ctx context.Context, email, username, password string) error
	CreateMapping(ctx context.Context, payload ehrapi.MappingPayload) (*ehrapi.MappingRecord, error)
	ListMappings(ctx context.Context) ([]ehrapi.MappingRecord, error)
	DeleteMapping(ctx context.Context, id string) error
}

type Handler struct {
	cfg       *config.Config
	api       API
	sessions  *session.Manager
	catalog   *i18n.Catalog
	validator *mapping.Validator
	logger    zerolog.Logger

	mu     sync.Mutex
	states map[string]*sessionState
}

// sessionState is the per-browser-session console state: one stepper machine
// (the dialog is modal per session) and one cached mapping list. The machine
// and list carry their own locks; the state mutex covers the remaining fields
// against concurrent requests on the same session.
type sessionState struct {
	machine *mapping.Machine
	list    *mapping.ListController

	mu          sync.Mutex
	stepperErrs mapping.FieldErrors
	flash       string
}

func (st *sessionState) setStepperErrs(errs mapping.FieldErrors) {
	st.mu.Lock()
	st.stepperErrs = errs
	st.mu.Unlock()
}

func (st *sessionState) currentStepperErrs() mapping.FieldErrors {
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.stepperErrs
}

func (st *sessionState) setFlash(key string) {
	st.mu.Lock()
	st.flash = key
	st.mu.Unlock()
}

// takeFlash returns the pending flash key and clears it; flashes render once.
func (st *sessionState) takeFlash() string {
	st.mu.Lock()
	defer st.mu.Unlock()
	f := st.flash
	st.flash = ""
	return f
}

func NewHandler(cfg *config.Config, api API, sessions *session.Manager, catalog *i18n.Catalog, logger zerolog.Logger) *Handler {
	return &Handler{
		cfg:       cfg,
		api:       api,
		sessions:  sessions,
		catalog:   catalog,
		validator: mapping.NewValidator(),
		logger:    logger,
		states:    make(map[string]*sessionState),
	}
}

func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.GET("/login", h.LoginPage)
	e.POST("/login", h.Login)
	e.GET("/register", h.RegisterPage)
	e.POST("/register", h.Register)
	e.GET("/logout", h.Logout)
	e.POST("/locale", h.SetLocale)

	guard := session.Guard(h.sessions, h.cfg.SessionCookieName)
	protected := e.Group("", guard)
	protected.GET("/", h.MappingsPage)
	protected.GET("/mappings", h.MappingsPage)
	protected.POST("/mappings/stepper/open", h.StepperOpen)
	protected.POST("/mappings/stepper/next", h.StepperNext)
	protected.POST("/mappings/stepper/back", h.StepperBack)
	protected.POST("/mappings/stepper/cancel", h.StepperCancel)
	protected.POST("/mappings/delete/request", h.DeleteRequest)
	protected.POST("/mappings/delete/confirm", h.DeleteConfirm)
	protected.POST("/mappings/delete/cancel", h.DeleteCancel)
	protected.GET("/bulk-changes", h.BulkChangesPage)

	e.RouteNotFound("/*", h.NotFoundPage)
}

// stateFor returns the console state for a session, creating it on first use.
func (h *Handler) stateFor(s *session.Session) *sessionState {
	h.mu.Lock()
	defer h.mu.Unlock()
	if st, ok := h.states[s.ID]; ok {
		return st
	}
	st := &sessionState{
		list: mapping.NewListController(h.api, h.logger),
	}
	token := s.Token
	st.machine = mapping.NewMachine(h.validator, mapping.NewAPISubmitter(h.api), func() {
		// Success notification from the submission flow: flag the outcome and
		// refresh the cached list against the remote store.
		st.setFlash("mappingSavedSuccess")
		st.list.Refresh(ehrapi.WithToken(context.Background(), token))
	})
	h.states[s.ID] = st
	return st
}

func (h *Handler) dropState(sessionID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.states, sessionID)
}

func (h *Handler) locale(c echo.Context) string {
	if cookie, err := c.Cookie(h.cfg.LocaleCookieName); err == nil && h.catalog.Supported(cookie.Value) {
		return cookie.Value
	}
	return h.cfg.DefaultLocale
}

func (h *Handler) page(c echo.Context) pageData {
	data := pageData{
		Locale:            h.locale(c),
		Locales:           h.catalog.Locales(),
		Path:              c.Request().URL.Path,
		Form:              map[string]string{},
		EnumeratedSystems: systemOptions,
		SentinelCustom:    mapping.SentinelCustom,
		PatientFields:     patientFieldDefs,
	}
	if s, ok := session.FromContext(c); ok {
		data.User = "user"
		if claims, ok := session.PeekClaims(s.Token); ok {
			switch {
			case claims.Email != "":
				data.User = claims.Email
			case claims.Subject != "":
				data.User = claims.Subject
			}
		}
	}
	return data
}

// apiCtx carries the session's bearer token into remote API calls.
func apiCtx(c echo.Context, s *session.Session) context.Context {
	return ehrapi.WithToken(c.Request().Context(), s.Token)
}

// sanitize mirrors the original console's input trimming on credentials.
func sanitize(v string) string {
	return strings.TrimSpace(v)
}

// --- Auth screens ---

func (h *Handler) LoginPage(c echo.Context) error {
	return c.Render(http.StatusOK, "login.html", h.page(c))
}

func (h *Handler) Login(c echo.Context) error {
	email := sanitize(c.FormValue("email"))
	password := sanitize(c.FormValue("password"))

	resp, err := h.api.SignIn(c.Request().Context(), email, password)
	if err != nil {
		h.logger.Warn().Err(err).Msg("sign in rejected")
		data := h.page(c)
		data.Error = "invalidCredentials"
		data.Form["email"] = email
		return c.Render(http.StatusUnauthorized, "login.html", data)
	}

	s := h.sessions.Login(resp.Token)
	c.SetCookie(&http.Cookie{
		Name:     h.cfg.SessionCookieName,
		Value:    s.ID,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return c.Redirect(http.StatusFound, "/mappings")
}

func (h *Handler) RegisterPage(c echo.Context) error {
	return c.Render(http.StatusOK, "register.html", h.page(c))
}

func (h *Handler) Register(c echo.Context) error {
	email := sanitize(c.FormValue("email"))
	username := sanitize(c.FormValue("username"))
	password := sanitize(c.FormValue("password"))

	if err := h.api.SignUp(c.Request().Context(), email, username, password); err != nil {
		h.logger.Warn().Err(err).Msg("sign up rejected")
		data := h.page(c)
		data.Error = "registrationFailed"
		data.Form["email"] = email
		data.Form["username"] = username
		return c.Render(http.StatusBadRequest, "register.html", data)
	}

	data := h.page(c)
	data.Flash = "registrationSuccess"
	return c.Render(http.StatusOK, "login.html", data)
}

func (h *Handler) Logout(c echo.Context) error {
	if cookie, err := c.Cookie(h.cfg.SessionCookieName); err == nil && cookie.Value != "" {
		h.sessions.Logout(cookie.Value)
		h.dropState(cookie.Value)
	}
	c.SetCookie(&http.Cookie{
		Name:     h.cfg.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
	return c.Redirect(http.StatusFound, "/login")
}

func (h *Handler) SetLocale(c echo.Context) error {
	locale := c.FormValue("locale")
	if h.catalog.Supported(locale) {
		c.SetCookie(&http.Cookie{
			Name:  h.cfg.LocaleCookieName,
			Value: locale,
			Path:  "/",
		})
	}
	target := c.Request().Header.Get("Referer")
	if target == "" {
		target = "/"
	}
	return c.Redirect(http.StatusFound, target)
}

// --- Mapping screens ---

func (h *Handler) MappingsPage(c echo.Context) error {
	s, _ := session.FromContext(c)
	st := h.stateFor(s)

	// The list view reflects best-known server state on every activation.
	st.list.Refresh(apiCtx(c, s))

	return h.renderMappings(c, s, st, http.StatusOK)
}

func (h *Handler) renderMappings(c echo.Context, s *session.Session, st *sessionState, status int) error {
	data := h.page(c)
	data.Stepper = st.machine.Snapshot()
	data.StepperErrors = st.currentStepperErrs()
	data.Records = st.list.Records()
	data.ListError = st.list.LastError()
	if rec, ok := st.list.PendingDelete(); ok {
		data.PendingDelete = &rec
	}
	if flash := st.takeFlash(); flash != "" {
		data.Flash = flash
	}
	if data.Stepper.State == mapping.SubmitFailed {
		data.Error = data.Stepper.FailMessage
	}
	return c.Render(status, "mappings.html", data)
}

func (h *Handler) StepperOpen(c echo.Context) error {
	s, _ := session.FromContext(c)
	st := h.stateFor(s)
	st.setStepperErrs(nil)
	st.machine.Open()
	return c.Redirect(http.StatusFound, "/mappings")
}

func (h *Handler) StepperNext(c echo.Context) error {
	s, _ := session.FromContext(c)
	st := h.stateFor(s)

	switch st.machine.Snapshot().Step {
	case mapping.StepSystem:
		st.machine.SetSystemChoice(c.FormValue("ehrSelect"), sanitize(c.FormValue("ehrCustom")))
	case mapping.StepPatientDetails:
		values := mapping.Values{}
		for _, f := range mapping.PatientFields {
			values[f] = c.FormValue(f)
		}
		st.machine.SetFields(values)
	}

	errs, err := st.machine.Next(apiCtx(c, s))
	st.setStepperErrs(errs)
	if err != nil {
		// Submission failure: the dialog stays open on the review step with
		// the draft intact; the banner comes from the machine state.
		return h.renderMappings(c, s, st, http.StatusBadGateway)
	}
	return h.renderMappings(c, s, st, http.StatusOK)
}

func (h *Handler) StepperBack(c echo.Context) error {
	s, _ := session.FromContext(c)
	st := h.stateFor(s)
	st.setStepperErrs(nil)
	st.machine.Back()
	return c.Redirect(http.StatusFound, "/mappings")
}

func (h *Handler) StepperCancel(c echo.Context) error {
	s, _ := session.FromContext(c)
	st := h.stateFor(s)
	st.setStepperErrs(nil)
	st.machine.Cancel()
	return c.Redirect(http.StatusFound, "/mappings")
}

func (h *Handler) DeleteRequest(c echo.Context) error {
	s, _ := session.FromContext(c)
	st := h.stateFor(s)

	id := c.FormValue("id")
	for _, rec := range st.list.Records() {
		if rec.ID == id {
			st.list.RequestDelete(rec)
			break
		}
	}
	return h.renderMappings(c, s, st, http.StatusOK)
}

func (h *Handler) DeleteConfirm(c echo.Context) error {
	s, _ := session.FromContext(c)
	st := h.stateFor(s)

	if err := st.list.ConfirmDelete(apiCtx(c, s)); err != nil {
		return h.renderMappings(c, s, st, http.StatusBadGateway)
	}
	return h.renderMappings(c, s, st, http.StatusOK)
}

func (h *Handler) DeleteCancel(c echo.Context) error {
	s, _ := session.FromContext(c)
	st := h.stateFor(s)
	st.list.CancelDelete()
	return c.Redirect(http.StatusFound, "/mappings")
}

// --- Static pages ---

func (h *Handler) BulkChangesPage(c echo.Context) error {
	return c.Render(http.StatusOK, "bulk_changes.html", h.page(c))
}

func (h *Handler) NotFoundPage(c echo.Context) error {
	return c.Render(http.StatusNotFound, "not_found.html", h.page(c))
}
