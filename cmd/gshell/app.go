package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/zlovtnik/gshell/cmd/gshell/api"
	"github.com/zlovtnik/gshell/cmd/gshell/ui"
	"github.com/zlovtnik/gshell/internal/config"
	"github.com/zlovtnik/gshell/internal/route"
	"github.com/zlovtnik/gshell/internal/widget/menu"
	"github.com/zlovtnik/gshell/internal/widget/popup"
	"github.com/zlovtnik/gshell/pkg/auth"
	"github.com/zlovtnik/gshell/pkg/fp"
)

const guestLabel = "Guest"

// Model is the root of the shell: header, routed page and footer.
type Model struct {
	sh       *shell
	cfg      *config.Config
	identity fp.Option[auth.Identity]

	keys    keyMap
	help    help.Model
	links   []*link
	account *menu.Model

	pages   map[route.Key]page
	current route.Key
	// focus indexes ring(); -1 means nothing is focused.
	focus int

	message     string
	messageType string
	width       int
	height      int
	startup     tea.Cmd
}

// newModel builds a shell session. user is the remote login name when the
// shell is served over SSH.
func newModel(cfg *config.Config, logger *log.Logger, user string) (Model, error) {
	client, err := api.NewClient(cfg.BaseURL(),
		api.WithTimeout(cfg.API.Timeout),
		api.WithDevice(cfg.API.DeviceType, cfg.API.TokenID),
	)
	if err != nil {
		return Model{}, fmt.Errorf("api client: %w", err)
	}

	identity := fp.None[auth.Identity]()
	initial := route.Login.Path()
	if cfg.API.Token != "" {
		id, err := auth.Identify(cfg.API.Token, cfg.JWT.Secret)
		switch {
		case err != nil:
			logger.Warn("ignoring configured token", "err", err)
		case id.Expired(time.Now()):
			// without a secret the token is only decoded, so expiry is checked here
			logger.Warn("ignoring expired configured token", "user", id.Label())
		default:
			client.SetToken(cfg.API.Token)
			identity = fp.Some(id)
			initial = route.Home.Path()
		}
	}

	history := route.NewHistory(initial)
	sh := &shell{
		client:  client,
		history: history,
		logger:  logger,
		timeout: cfg.API.Timeout,
		strict:  cfg.Options.Strict,
		user:    user,
	}

	m := Model{
		sh:       sh,
		cfg:      cfg,
		identity: identity,
		keys:     defaultKeyMap(),
		help:     help.New(),
		links: []*link{
			newLink("Home", route.Home, history),
			newLink("About", route.About, history),
		},
		pages:   make(map[route.Key]page),
		current: "",
		focus:   -1,
		width:   80,
		height:  24,
	}
	m.account = menu.New(guestLabel, []menu.Item{
		{Label: "Home", Icon: "⌂", To: route.Home},
		{Label: "About", Icon: "ℹ", To: route.About},
		{Label: "Logout", Icon: "⏻", Action: func() tea.Cmd {
			return func() tea.Msg { return logoutMsg{} }
		}},
	}, history, history)
	m.account.Init()
	m.syncIdentity()
	m.startup = m.syncPage()
	return m, nil
}

func (m Model) Init() tea.Cmd {
	return m.startup
}

// ring is the focus order: header links, account menu, page controls.
func (m Model) ring() []control {
	ring := make([]control, 0, len(m.links)+4)
	for _, l := range m.links {
		ring = append(ring, l)
	}
	ring = append(ring, m.account)
	if p, ok := m.pages[m.current]; ok {
		ring = append(ring, p.Controls()...)
	}
	return ring
}

func (m Model) focused() control {
	ring := m.ring()
	if m.focus < 0 || m.focus >= len(ring) {
		return nil
	}
	return ring[m.focus]
}

// typing reports whether bare keys belong to a text field.
func (m Model) typing() bool {
	_, ok := m.focused().(*field)
	return ok
}

func (m *Model) setFocus(i int) {
	ring := m.ring()
	for _, c := range ring {
		c.Blur()
	}
	if len(ring) == 0 {
		m.focus = -1
		return
	}
	m.focus = (i%len(ring) + len(ring)) % len(ring)
	ring[m.focus].Focus()
}

// syncPage switches to the page matching the history location, unmounting
// the old page's widgets and mounting the new ones.
func (m *Model) syncPage() tea.Cmd {
	k := route.Match(m.sh.history.Location())
	if k == m.current {
		return nil
	}
	if old, ok := m.pages[m.current]; ok {
		old.Leave()
	}
	for _, c := range m.ring() {
		c.Blur()
	}

	p, ok := m.pages[k]
	if !ok {
		p = buildPage(k, m.sh)
		m.pages[k] = p
	}
	m.current = k
	for _, l := range m.links {
		l.active = l.to == k
	}
	cmd := p.Enter()

	m.focus = -1
	if ctrls := p.Controls(); len(ctrls) > 0 {
		m.setFocus(len(m.links) + 1)
	}
	m.sh.logger.Debug("page", "key", k, "location", m.sh.history.Location())
	return cmd
}

func (m *Model) syncIdentity() {
	label := fp.FoldOpt(
		func() string { return guestLabel },
		func(id auth.Identity) string { return "◉ " + id.Label() },
	)(m.identity)
	m.account.SetTrigger(label)
	m.account.Header = fp.FoldOpt(
		func() string { return "" },
		func(id auth.Identity) string { return id.Label() },
	)(m.identity)
}

func (m *Model) setMessage(msgType, text string) {
	m.messageType = msgType
	m.message = text
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = max(msg.Width, ui.MinWidth)
		m.height = msg.Height
		m.help.Width = m.width
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	case route.NavigatedMsg:
		cmd := m.syncPage()
		return m, cmd
	case loginMsg:
		return m.handleLogin(msg)
	case logoutMsg:
		m.sh.client.SetToken("")
		m.identity = fp.None[auth.Identity]()
		m.syncIdentity()
		m.sh.history.Push(route.Login.Path())
		m.setMessage(ui.MessageTypeInfo, "Signed out")
		cmd := m.syncPage()
		return m, cmd
	case statusMsg:
		m.setMessage(msg.msgType, msg.text)
		return m, nil
	case errMsg:
		m.sh.logger.Error("request failed", "err", msg.err)
		m.setMessage(ui.MessageTypeError, msg.err.Error())
	}
	return m, m.forward(msg)
}

// forward hands a message to the current page and the focused control.
func (m Model) forward(msg tea.Msg) tea.Cmd {
	var cmds []tea.Cmd
	if p, ok := m.pages[m.current]; ok {
		cmds = append(cmds, p.Handle(msg))
	}
	if c := m.focused(); c != nil {
		_, cmd := c.Update(msg)
		cmds = append(cmds, cmd)
	}
	return tea.Batch(cmds...)
}

func (m Model) handleLogin(msg loginMsg) (tea.Model, tea.Cmd) {
	pageCmd := m.forward(msg)
	if msg.err != nil {
		m.sh.logger.Warn("login failed", "err", msg.err)
		m.setMessage(ui.MessageTypeError, msg.err.Error())
		return m, pageCmd
	}

	id, err := auth.Identify(msg.resp.AccessToken, m.cfg.JWT.Secret)
	if err != nil {
		m.sh.logger.Warn("login token not decodable", "err", err)
		id = auth.Identity{User: msg.resp.User, Tenant: msg.resp.TenantID, ExpiresAt: fp.None[time.Time]()}
	}
	m.identity = fp.Some(id)
	m.syncIdentity()
	m.sh.logger.Info("signed in", "user", id.Label())

	m.sh.history.Push(route.Home.Path())
	m.setMessage(ui.MessageTypeSuccess, "Welcome, "+id.Label())
	cmd := m.syncPage()
	return m, tea.Batch(pageCmd, cmd)
}

func (m Model) handleKey(k tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(k, m.keys.ForceQ) {
		return m, tea.Quit
	}

	// a bare rune is text whenever a field has focus
	bare := k.Type == tea.KeyRunes && !k.Alt
	if bare && m.typing() {
		_, cmd := m.focused().Update(k)
		return m, cmd
	}

	// history traversal fires the navigation signal, which closes whatever
	// popup is open
	switch {
	case key.Matches(k, m.keys.Back):
		if m.sh.history.Back() {
			cmd := m.syncPage()
			return m, cmd
		}
		return m, nil
	case key.Matches(k, m.keys.Forward):
		if m.sh.history.Forward() {
			cmd := m.syncPage()
			return m, cmd
		}
		return m, nil
	}

	if p, ok := m.focused().(popupControl); ok && p.IsOpen() &&
		!key.Matches(k, m.keys.Next, m.keys.Prev) {
		_, cmd := p.Update(k)
		return m, cmd
	}

	switch {
	case key.Matches(k, m.keys.Next):
		m.setFocus(m.focus + 1)
		return m, nil
	case key.Matches(k, m.keys.Prev):
		if m.focus < 0 {
			m.setFocus(-1)
		} else {
			m.setFocus(m.focus - 1)
		}
		return m, nil
	case key.Matches(k, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(k, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	if c := m.focused(); c != nil {
		_, cmd := c.Update(k)
		return m, cmd
	}
	return m, nil
}

func (m Model) View() string {
	header := m.renderHeader()
	footer := m.renderFooter()

	contentHeight := max(m.height-lipgloss.Height(header)-lipgloss.Height(footer), 1)
	body := ""
	if p, ok := m.pages[m.current]; ok {
		body = p.View(m.width - 4)
	}
	content := ui.ContentStyle.Width(m.width).Height(contentHeight).MaxHeight(contentHeight).Render(body)

	layout := lipgloss.JoinVertical(lipgloss.Left, header, content, footer)

	if floating := m.account.ContentView(); floating != "" {
		trigger := m.account.TriggerView()
		tw := lipgloss.Width(trigger)
		x, y := m.account.Anchor.Offset(
			popup.Rect{X: m.width - 2 - tw, Y: 0, W: tw, H: ui.HeaderHeight},
			lipgloss.Width(floating), lipgloss.Height(floating),
		)
		layout = popup.Overlay(layout, floating, x, y)
	}
	return layout
}

func (m Model) renderHeader() string {
	parts := make([]string, len(m.links))
	for i, l := range m.links {
		parts[i] = l.View()
	}
	left := ui.BrandStyle.Render("◆ gshell") + strings.Join(parts, " ")
	right := m.account.TriggerView()
	// HeaderStyle pads two cells on each side
	return ui.HeaderStyle.Width(m.width).Render(ui.Spread(left, right, m.width-4))
}

func (m Model) renderFooter() string {
	loc := ui.FooterLocationStyle.Render(m.sh.history.Location())
	msg := ""
	if m.message != "" {
		msg = ui.FormatMessage(m.messageType, m.message)
	}
	top := ui.Spread(msg, loc, m.width-4)
	return ui.FooterStyle.Width(m.width).Render(top + "\n" + m.help.View(m.keys))
}
