package main

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zlovtnik/gshell/cmd/gshell/api"
	"github.com/zlovtnik/gshell/cmd/gshell/ui"
	"github.com/zlovtnik/gshell/internal/config"
	"github.com/zlovtnik/gshell/internal/route"
	"github.com/zlovtnik/gshell/pkg/auth"
	"github.com/zlovtnik/gshell/pkg/fp"
)

const testSecret = "test-secret"

var (
	keyTab     = tea.KeyMsg{Type: tea.KeyTab}
	keyEnter   = tea.KeyMsg{Type: tea.KeyEnter}
	keyDown    = tea.KeyMsg{Type: tea.KeyDown}
	keyAltLeft = tea.KeyMsg{Type: tea.KeyLeft, Alt: true}
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func signToken(t *testing.T, user, tenant string) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, auth.Claims{
		User:     user,
		TenantID: tenant,
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return tok
}

// backend fakes the workspace API.
type backend struct {
	workspaces []map[string]any
	tenants    []map[string]any
	token      string
	logins     int
}

func (b *backend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var data any
	switch {
	case r.URL.Path == "/api/v1/workspaces":
		data = api.PaginatedResponse{Data: mustJSON(b.workspaces), Page: 1, PageSize: 50, TotalCount: len(b.workspaces), TotalPages: 1}
	case r.URL.Path == "/api/v1/tenants":
		data = b.tenants
	case r.URL.Path == "/api/v1/auth/login" && r.Method == http.MethodPost:
		b.logins++
		data = api.LoginResponse{AccessToken: b.token, User: "ana"}
	default:
		w.WriteHeader(http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(api.Response{Success: true, Data: mustJSON(data)})
}

func mustJSON(v any) json.RawMessage {
	b, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return b
}

func newTestModel(t *testing.T, b *backend, mutate func(*config.Config)) Model {
	t.Helper()
	srv := httptest.NewServer(b)
	t.Cleanup(srv.Close)

	cfg := &config.Config{
		Env: config.EnvDevelopment,
		API: config.APIConfig{DevURL: srv.URL, Timeout: 5 * time.Second, DeviceType: "web"},
		JWT: config.JWTConfig{Secret: testSecret},
	}
	if mutate != nil {
		mutate(cfg)
	}
	m, err := newModel(cfg, log.New(io.Discard), "")
	require.NoError(t, err)
	return settle(t, m, m.Init())
}

// settle feeds cmd's messages, and the messages they lead to, back into m.
func settle(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	queue := []tea.Cmd{cmd}
	for steps := 0; len(queue) > 0; steps++ {
		require.Less(t, steps, 100, "message loop does not settle")
		c := queue[0]
		queue = queue[1:]
		if c == nil {
			continue
		}
		msg := c()
		if batch, ok := msg.(tea.BatchMsg); ok {
			queue = append(queue, batch...)
			continue
		}
		if _, ok := msg.(tea.QuitMsg); ok {
			continue
		}
		next, out := m.Update(msg)
		m = next.(Model)
		queue = append(queue, out)
	}
	return m
}

func press(t *testing.T, m Model, keys ...tea.KeyMsg) Model {
	t.Helper()
	for _, k := range keys {
		next, cmd := m.Update(k)
		m = settle(t, next.(Model), cmd)
	}
	return m
}

func (m Model) currentPage() page { return m.pages[m.current] }

func TestModel_StartsOnLoginWithoutToken(t *testing.T) {
	b := &backend{tenants: []map[string]any{{"id": "acme", "name": "Acme"}}}
	m := newTestModel(t, b, nil)

	assert.Equal(t, route.Login, m.current)
	lp := m.currentPage().(*loginPage)
	assert.True(t, lp.username.Focused())
	assert.False(t, lp.tenant.Loading())
	require.Len(t, lp.tenant.Options(), 1)
	assert.Equal(t, "Acme", lp.tenant.Options()[0].Label)
}

func TestModel_ConfiguredTokenStartsHome(t *testing.T) {
	b := &backend{workspaces: []map[string]any{{"id": "w1", "name": "Main"}}}
	m := newTestModel(t, b, func(c *config.Config) {
		c.API.Token = signToken(t, "ana", "acme")
	})

	assert.Equal(t, route.Home, m.current)
	assert.Contains(t, m.account.TriggerView(), "ana@acme")
	assert.Equal(t, "Loaded 1 workspaces", m.message)
}

func TestModel_BadTokenFallsBackToLogin(t *testing.T) {
	m := newTestModel(t, &backend{}, func(c *config.Config) {
		c.API.Token = "not-a-jwt"
	})
	assert.Equal(t, route.Login, m.current)
	assert.Empty(t, m.sh.client.Token())
}

func TestModel_ExpiredTokenFallsBackToLogin(t *testing.T) {
	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, auth.Claims{
		User: "ana",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)

	// no secret: the token is decoded, not verified
	m := newTestModel(t, &backend{}, func(c *config.Config) {
		c.API.Token = expired
		c.JWT.Secret = ""
	})
	assert.Equal(t, route.Login, m.current)
	assert.True(t, fp.IsNone(m.identity))
	assert.Empty(t, m.sh.client.Token())
}

func TestModel_UnverifiedTokenStartsHome(t *testing.T) {
	m := newTestModel(t, &backend{}, func(c *config.Config) {
		c.API.Token = signToken(t, "ana", "acme")
		c.JWT.Secret = ""
	})
	assert.Equal(t, route.Home, m.current)
	assert.Contains(t, m.account.TriggerView(), "ana@acme")
}

func TestModel_LinkNavigation(t *testing.T) {
	m := newTestModel(t, &backend{}, nil)

	m.setFocus(1) // About
	m = press(t, m, keyEnter)

	assert.Equal(t, route.About, m.current)
	assert.Equal(t, "/about", m.sh.history.Location())
	assert.True(t, m.links[1].active)
	assert.False(t, m.links[0].active)
}

func TestModel_BackClosesAccountMenu(t *testing.T) {
	m := newTestModel(t, &backend{}, nil)
	m.setFocus(1)
	m = press(t, m, keyEnter)
	require.Equal(t, route.About, m.current)

	m.setFocus(2) // account menu
	m = press(t, m, keyEnter)
	require.True(t, m.account.IsOpen())
	assert.Contains(t, m.View(), "Logout")

	m = press(t, m, keyAltLeft)
	assert.False(t, m.account.IsOpen())
	assert.Equal(t, route.Login, m.current)
	assert.NotContains(t, m.View(), "Logout")
}

func TestModel_OpenPopupKeepsKeys(t *testing.T) {
	m := newTestModel(t, &backend{}, nil)
	m.setFocus(2)
	m = press(t, m, keyEnter)
	require.True(t, m.account.IsOpen())

	// q goes to the open menu, which ignores it
	next, cmd := m.Update(runes("q"))
	assert.Nil(t, cmd)
	assert.True(t, next.(Model).account.IsOpen())

	// tab leaves and dismisses
	m = press(t, next.(Model), keyTab)
	assert.False(t, m.account.IsOpen())
}

func TestModel_PageChangeUnmountsWidgets(t *testing.T) {
	b := &backend{}
	m := newTestModel(t, b, nil)
	// account menu and tenant selector
	assert.Equal(t, 2, m.sh.history.Subscribers())

	m = settle(t, m, navigate(m.sh.history, route.About))
	assert.Equal(t, 1, m.sh.history.Subscribers())

	m = settle(t, m, navigate(m.sh.history, route.Home))
	// account menu, workspace and view mode selectors
	assert.Equal(t, 3, m.sh.history.Subscribers())

	m = settle(t, m, navigate(m.sh.history, route.Href("/nowhere")))
	assert.Equal(t, route.NotFound, m.current)
	assert.Equal(t, 1, m.sh.history.Subscribers())
	assert.Contains(t, m.View(), "Nothing lives at /nowhere.")
}

func TestModel_TypingDoesNotTriggerShortcuts(t *testing.T) {
	m := newTestModel(t, &backend{}, nil)
	lp := m.currentPage().(*loginPage)
	require.True(t, lp.username.Focused())

	m = press(t, m, runes("q"), runes("["), runes("?"))
	assert.Equal(t, "q[?", lp.username.Value())
	assert.Equal(t, route.Login, m.current)
	assert.False(t, m.help.ShowAll)
}

func TestModel_LoginFlow(t *testing.T) {
	b := &backend{
		tenants:    []map[string]any{{"id": "acme", "name": "Acme"}},
		workspaces: []map[string]any{{"id": "w1", "name": "Main"}},
	}
	b.token = signToken(t, "ana", "acme")
	m := newTestModel(t, b, nil)
	lp := m.currentPage().(*loginPage)

	m = press(t, m, runes("ana"), keyTab, runes("pw"), keyTab)
	require.True(t, lp.tenant.Focused())
	m = press(t, m, keyEnter, keyEnter) // open, choose Acme
	assert.Equal(t, "acme", fp.GetOrElseOpt("")(lp.tenant.Value()))

	m = press(t, m, keyTab, keyEnter) // sign in
	assert.Equal(t, 1, b.logins)
	assert.Equal(t, route.Home, m.current)
	assert.Equal(t, b.token, m.sh.client.Token())
	assert.Contains(t, m.account.TriggerView(), "ana@acme")
	assert.Empty(t, lp.password.Value())
}

func TestModel_LoginRequiresCredentials(t *testing.T) {
	b := &backend{}
	m := newTestModel(t, b, nil)
	lp := m.currentPage().(*loginPage)

	m.setFocus(len(m.ring()) - 1) // submit
	m = press(t, m, keyEnter)
	assert.Equal(t, 0, b.logins)
	assert.Equal(t, route.Login, m.current)
	assert.Equal(t, ui.MessageTypeError, m.messageType)
	assert.False(t, lp.pending)
}

func TestModel_LogoutFromAccountMenu(t *testing.T) {
	m := newTestModel(t, &backend{}, func(c *config.Config) {
		c.API.Token = signToken(t, "ana", "")
	})
	require.Equal(t, route.Home, m.current)

	m.setFocus(2)
	m = press(t, m, keyEnter, keyDown, keyDown, keyEnter)

	assert.Equal(t, route.Login, m.current)
	assert.Empty(t, m.sh.client.Token())
	assert.True(t, fp.IsNone(m.identity))
	assert.Equal(t, "Signed out", m.message)
	assert.Contains(t, m.account.TriggerView(), guestLabel)
}

func TestModel_WorkspaceSelection(t *testing.T) {
	b := &backend{workspaces: []map[string]any{
		{"id": "w1", "name": "Main"},
		{"id": "w2", "name": "Staging"},
	}}
	m := newTestModel(t, b, func(c *config.Config) {
		c.API.Token = signToken(t, "ana", "acme")
	})
	hp := m.currentPage().(*homePage)
	require.True(t, hp.workspace.Focused())
	require.Len(t, hp.workspace.Options(), 2)

	m = press(t, m, keyEnter, keyDown, keyEnter)
	assert.Equal(t, "w2", fp.GetOrElseOpt("")(hp.workspace.Value()))
	assert.Equal(t, "Switched to Staging", m.message)
	assert.False(t, hp.workspace.IsOpen())
}

func TestModel_MalformedWorkspaces(t *testing.T) {
	b := &backend{workspaces: []map[string]any{
		{"id": "w1", "name": "Main"},
		{"id": "w2", "name": nil},
		{"id": " ", "name": "Blank"},
	}}
	token := signToken(t, "ana", "acme")

	lenient := newTestModel(t, b, func(c *config.Config) { c.API.Token = token })
	assert.Len(t, lenient.currentPage().(*homePage).workspace.Options(), 1)
	assert.Equal(t, ui.MessageTypeSuccess, lenient.messageType)

	strict := newTestModel(t, b, func(c *config.Config) {
		c.API.Token = token
		c.Options.Strict = true
	})
	assert.Len(t, strict.currentPage().(*homePage).workspace.Options(), 1)
	assert.Equal(t, ui.MessageTypeError, strict.messageType)
	assert.True(t, strings.HasPrefix(strict.message, "2 malformed workspaces"), strict.message)
}

func TestModel_FetchErrorStopsLoading(t *testing.T) {
	m := newTestModel(t, &backend{}, nil)
	lp := m.currentPage().(*loginPage)
	lp.tenant.SetLoading(true)
	next, _ := m.Update(errMsg{assert.AnError})
	m = next.(Model)
	assert.False(t, lp.tenant.Loading())
	assert.Equal(t, ui.MessageTypeError, m.messageType)
}

func TestModel_ViewFitsWidth(t *testing.T) {
	m := newTestModel(t, &backend{}, nil)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	m = next.(Model)

	view := m.View()
	assert.Contains(t, view, "gshell")
	assert.Contains(t, view, "/login")
	for _, line := range strings.Split(view, "\n") {
		assert.LessOrEqual(t, len([]rune(line)), 100)
	}
}

func TestRootCmd(t *testing.T) {
	root := newRootCmd()
	assert.Equal(t, "gshell", root.Use)
	assert.NotNil(t, root.PersistentFlags().Lookup("config"))

	sub, _, err := root.Find([]string{"ssh"})
	require.NoError(t, err)
	assert.Equal(t, "ssh", sub.Use)
}
