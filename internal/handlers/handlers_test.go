package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sakhigps/internal/middleware"
	"sakhigps/internal/render"
	"sakhigps/internal/schedule"
	"sakhigps/internal/services"
	"sakhigps/internal/session"
	"sakhigps/web"
)

type recordingNotifier struct {
	mu   sync.Mutex
	sent []services.Recipient
	fail map[string]bool
}

func (n *recordingNotifier) Notify(_ context.Context, to services.Recipient, message string) (services.Receipt, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.fail[to.Name] {
		return services.Receipt{}, errors.New("unreachable")
	}
	n.sent = append(n.sent, to)
	return services.Receipt{Channel: services.ChannelAck, Recipient: to, Message: message}, nil
}

type testApp struct {
	t        *testing.T
	e        *echo.Echo
	sessions *session.Manager
	sched    *schedule.ManualScheduler
	notifier *recordingNotifier
	cookie   *http.Cookie
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	renderer, err := render.New(web.FS)
	require.NoError(t, err)

	sched := schedule.NewManualScheduler()
	app := &testApp{
		t:        t,
		e:        echo.New(),
		sessions: session.NewManager(sched, nil, session.DefaultConfig()),
		sched:    sched,
		notifier: &recordingNotifier{fail: map[string]bool{}},
	}
	app.e.Renderer = renderer
	app.e.HTTPErrorHandler = middleware.CustomErrorHandler
	RegisterRoutes(app.e, Deps{Sessions: app.sessions, Notifier: app.notifier})

	rec := app.do(http.MethodGet, "/api/dashboard", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	for _, c := range rec.Result().Cookies() {
		if c.Name == middleware.SessionCookie {
			app.cookie = c
		}
	}
	require.NotNil(t, app.cookie, "session cookie not set")
	return app
}

func (a *testApp) do(method, path, body, contentType string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, contentType)
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if a.cookie != nil {
		req.AddCookie(a.cookie)
	}
	rec := httptest.NewRecorder()
	a.e.ServeHTTP(rec, req)
	return rec
}

func (a *testApp) json(method, path, body string) *httptest.ResponseRecorder {
	return a.do(method, path, body, echo.MIMEApplicationJSON)
}

func (a *testApp) form(path string, values url.Values) *httptest.ResponseRecorder {
	return a.do(http.MethodPost, path, values.Encode(), echo.MIMEApplicationForm)
}

func (a *testApp) session() *session.Session {
	a.t.Helper()
	s, err := a.sessions.Get(context.Background(), a.cookie.Value)
	require.NoError(a.t, err)
	return s
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func TestPagesRender(t *testing.T) {
	app := newTestApp(t)

	pages := map[string]string{
		"/dashboard":    "Trusted Circle",
		"/routes":       "Safe Routes",
		"/navigation":   "Head north on Main Street",
		"/safety-score": "Safety Score",
		"/alerts":       "Smart Alerts",
		"/contacts":     "Emergency Services",
		"/voice":        "Voice Navigation",
		"/offline":      "Home to Work",
	}
	for path, want := range pages {
		t.Run(path, func(t *testing.T) {
			rec := app.do(http.MethodGet, path, "", "")
			require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
			assert.Contains(t, rec.Body.String(), want)
		})
	}
}

func TestPublicPages(t *testing.T) {
	app := newTestApp(t)

	rec := app.do(http.MethodGet, "/", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Offline Mode")

	rec = app.do(http.MethodGet, "/login?method=otp", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "/auth/otp/send")
}

func TestDemoLoginSetsIdentity(t *testing.T) {
	app := newTestApp(t)

	rec := app.form("/auth/demo", url.Values{"email": {"priya@example.com"}})
	require.Equal(t, http.StatusSeeOther, rec.Code)

	var user *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == middleware.DemoUserCookie {
			user = c
		}
	}
	require.NotNil(t, user)

	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	req.AddCookie(app.cookie)
	req.AddCookie(user)
	page := httptest.NewRecorder()
	app.e.ServeHTTP(page, req)
	assert.Contains(t, page.Body.String(), "priya@example.com")
}

func TestLogoutForgetsSession(t *testing.T) {
	app := newTestApp(t)
	require.Equal(t, 1, app.sessions.Len())

	rec := app.do(http.MethodPost, "/auth/logout", "", "")
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get(echo.HeaderLocation))
	assert.Equal(t, 0, app.sessions.Len())
}

func TestAddContactIgnoresIncompleteForm(t *testing.T) {
	app := newTestApp(t)
	before := app.session().Contacts.Len()

	rec := app.form("/contacts", url.Values{"name": {"Priya"}})
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, before, app.session().Contacts.Len())

	rec = app.form("/contacts", url.Values{"name": {"Priya"}, "phone": {"+91 98765 43210"}})
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, before+1, app.session().Contacts.Len())
}

func TestAPIAddContact(t *testing.T) {
	app := newTestApp(t)

	rec := app.json(http.MethodPost, "/api/contacts", `{"name":"Priya"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.NotEmpty(t, decode[map[string]string](t, rec)["error"])

	rec = app.json(http.MethodPost, "/api/contacts", `{"name":"Priya","phone":"555-0100"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	created := decode[map[string]interface{}](t, rec)
	assert.Equal(t, "Priya", created["name"])
	assert.Equal(t, "offline", created["presence"])
}

func TestEmergencyServicesCannotBeRemoved(t *testing.T) {
	app := newTestApp(t)

	rec := app.json(http.MethodDelete, "/api/contacts/3", "")
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = app.form("/contacts/3/delete", url.Values{})
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Contains(t, rec.Header().Get(echo.HeaderLocation), "flash=")

	_, err := app.session().Contacts.Get(3)
	assert.NoError(t, err)

	rec = app.json(http.MethodDelete, "/api/contacts/4", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	rec = app.json(http.MethodDelete, "/api/contacts/4", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAlertsMarkRead(t *testing.T) {
	app := newTestApp(t)
	require.Equal(t, 2, app.session().Alerts.UnreadCount())

	rec := app.json(http.MethodPost, "/api/alerts/1/read", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, app.session().Alerts.UnreadCount())

	rec = app.json(http.MethodPost, "/api/alerts/99/read", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = app.form("/alerts/read-all", url.Values{"filter": {"unread"}})
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/alerts?filter=unread", rec.Header().Get(echo.HeaderLocation))
	assert.Equal(t, 0, app.session().Alerts.UnreadCount())
}

func TestUnknownAlertRendersErrorPage(t *testing.T) {
	app := newTestApp(t)

	rec := app.form("/alerts/99/read", url.Values{})
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "alert not found")
}

func TestNavigationTrip(t *testing.T) {
	app := newTestApp(t)

	rec := app.json(http.MethodPost, "/api/navigation/trip", `{"route_id":1,"destination":"Home"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	view := decode[session.NavigationView](t, rec)
	assert.Equal(t, "Safest Route", view.Trip.RouteName)
	assert.True(t, view.State.Active)
	assert.Equal(t, 0, view.State.Index)

	app.sched.Advance(8 * time.Second)
	view = decode[session.NavigationView](t, app.json(http.MethodGet, "/api/navigation", ""))
	assert.Equal(t, 1, view.State.Index)

	view = decode[session.NavigationView](t, app.json(http.MethodPost, "/api/navigation/pause", ""))
	assert.False(t, view.State.Active)
	app.sched.Advance(30 * time.Second)
	assert.Equal(t, 1, app.session().Navigation.State().Index)

	rec = app.json(http.MethodPost, "/api/navigation/jump", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = app.json(http.MethodPost, "/api/navigation/trip", `{"route_id":9}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestNavigationPageStartsRoute(t *testing.T) {
	app := newTestApp(t)

	rec := app.do(http.MethodGet, "/navigation?route=2&destination=Library", "", "")
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/navigation", rec.Header().Get(echo.HeaderLocation))

	view := app.session().NavigationView()
	assert.Equal(t, "Balanced Route", view.Trip.RouteName)
	assert.Equal(t, "Library", view.Trip.Destination)
	assert.True(t, view.State.Active)
}

func TestGenerateRoutes(t *testing.T) {
	app := newTestApp(t)

	rec := app.form("/routes", url.Values{"destination": {"  "}})
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/routes", rec.Header().Get(echo.HeaderLocation))

	rec = app.form("/routes", url.Values{"destination": {"City Library"}})
	require.Equal(t, http.StatusSeeOther, rec.Code)
	location := rec.Header().Get(echo.HeaderLocation)
	assert.Equal(t, "/routes?destination=City+Library", location)

	rec = app.do(http.MethodGet, location, "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Fastest Route")

	rec = app.json(http.MethodGet, "/api/routes", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "destination is required", decode[map[string]string](t, rec)["error"])

	rec = app.json(http.MethodGet, "/api/routes?destination=Library", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]map[string]interface{}](t, rec), 3)
}

func TestSOSReachesEmergencyContacts(t *testing.T) {
	app := newTestApp(t)
	app.notifier.fail["Emergency Services"] = true

	rec := app.json(http.MethodPost, "/api/sos", "")
	require.Equal(t, http.StatusOK, rec.Code)
	result := decode[SOSResult](t, rec)
	assert.Len(t, result.Sent, 2)
	assert.Equal(t, []string{"Emergency Services"}, result.Failed)

	rec = app.form("/dashboard/sos", url.Values{})
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Contains(t, rec.Header().Get(echo.HeaderLocation), url.QueryEscape("SOS sent to 2 emergency contacts"))
}

func TestOfflineDownload(t *testing.T) {
	app := newTestApp(t)

	rec := app.json(http.MethodPost, "/api/offline/routes/3/download", "")
	require.Equal(t, http.StatusAccepted, rec.Code)
	body := decode[map[string]interface{}](t, rec)
	assert.Equal(t, true, body["started"])

	rec = app.json(http.MethodPost, "/api/offline/routes/1/download", "")
	assert.Equal(t, false, decode[map[string]interface{}](t, rec)["started"])

	app.sched.Advance(2 * time.Second)
	status := app.session().Offline.Status()
	assert.Zero(t, status.Downloading)
	assert.True(t, status.Routes[2].Downloaded)
	assert.Equal(t, 60, status.StorageUsed)

	rec = app.json(http.MethodPost, "/api/offline/routes/42/download", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestOfflineSMS(t *testing.T) {
	app := newTestApp(t)

	rec := app.json(http.MethodPost, "/api/offline/sms", `{"name":"Local Police","number":"+1 (555) 555-0199"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	receipt := decode[services.Receipt](t, rec)
	assert.Equal(t, smsAlertMessage, receipt.Message)

	rec = app.json(http.MethodPost, "/api/offline/sms", `{"name":"Nobody"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestVoiceSettingsValidation(t *testing.T) {
	app := newTestApp(t)

	rec := app.json(http.MethodPut, "/api/voice/settings", `{"speed":5}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = app.json(http.MethodPut, "/api/voice/settings", `{"persona":"elder","speed":0.8}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "elder", string(app.session().Voice.Settings().Persona))

	rec = app.form("/voice/settings", url.Values{"persona": {"child"}, "volume": {"50"}})
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	settings := app.session().Voice.Settings()
	assert.Equal(t, 50, settings.Volume)
	assert.False(t, settings.Enabled)
}

func TestVoiceGuidanceAdvances(t *testing.T) {
	app := newTestApp(t)

	rec := app.json(http.MethodPost, "/api/voice/start", "")
	require.Equal(t, http.StatusOK, rec.Code)
	app.sched.Advance(5 * time.Second)

	view := decode[session.VoiceView](t, app.json(http.MethodGet, "/api/voice", ""))
	assert.Equal(t, 1, view.State.Index)
	assert.Equal(t, 40, view.Progress)

	rec = app.json(http.MethodPost, "/api/voice/stop", "")
	view = decode[session.VoiceView](t, rec)
	assert.False(t, view.State.Active)
	assert.Equal(t, 0, view.State.Index)
}

func TestCheckinsWithoutDatabase(t *testing.T) {
	app := newTestApp(t)

	rec := app.json(http.MethodGet, "/api/checkins", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())

	rec = app.json(http.MethodPost, "/api/checkins", `{"location":"Park"}`)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestGreeting(t *testing.T) {
	day := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "Good Morning", Greeting(day.Add(9*time.Hour)))
	assert.Equal(t, "Good Afternoon", Greeting(day.Add(12*time.Hour)))
	assert.Equal(t, "Good Evening", Greeting(day.Add(17*time.Hour)))
}
