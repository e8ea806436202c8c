package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/zlovtnik/gshell/cmd/gshell/api"
	"github.com/zlovtnik/gshell/cmd/gshell/ui"
	"github.com/zlovtnik/gshell/internal/route"
	"github.com/zlovtnik/gshell/internal/widget/selector"
	"github.com/zlovtnik/gshell/pkg/fp"
)

// shell holds what every page shares.
type shell struct {
	client  *api.Client
	history *route.History
	logger  *log.Logger
	timeout time.Duration
	strict  bool
	// user is the remote login name for SSH sessions, empty locally.
	user    string
}

// page is one routed screen. Pages are built on first visit and kept; Enter
// and Leave bracket every visit.
type page interface {
	Title() string
	// Enter mounts the page's widgets and returns its startup commands.
	Enter() tea.Cmd
	// Leave unmounts every widget the page owns.
	Leave()
	Controls() []control
	Handle(msg tea.Msg) tea.Cmd
	View(width int) string
}

func buildPage(k route.Key, sh *shell) page {
	switch k {
	case route.Home:
		return newHomePage(sh)
	case route.About:
		return &aboutPage{}
	case route.Login:
		return newLoginPage(sh)
	default:
		return &notFoundPage{sh: sh}
	}
}

// droppedReporter collects what a selector left out of its option list.
type droppedReporter struct {
	logger *log.Logger
	what   string
	last   error
}

func (d *droppedReporter) report(err error) {
	d.last = err
	d.logger.Warn("dropped malformed options", "list", d.what, "err", err)
}

// check returns a status command for the last report, in strict mode only.
func (d *droppedReporter) check(strict bool) tea.Cmd {
	err := d.last
	d.last = nil
	if err == nil || !strict {
		return nil
	}
	var verrs fp.ValidationErrors
	n := 1
	if errors.As(err, &verrs) {
		n = len(verrs)
	}
	return status(ui.MessageTypeError, fmt.Sprintf("%d malformed %s: %v", n, d.what, err))
}

func toOption(key, title fp.Option[string]) selector.Option {
	return selector.Option{
		Value: fp.GetOrElseOpt("")(key),
		Label: fp.GetOrElseOpt("")(title),
	}
}

// ═══════════════════════════════════════════════════════════════════════════
// HOME
// ═══════════════════════════════════════════════════════════════════════════

var viewModes = []selector.Entry{
	{Value: "list", Content: "☰ list     one per row"},
	{Value: "grid", Content: "▦ grid     tiles"},
	{Value: "compact", Content: "≡ compact  dense rows"},
}

var viewModeIcons = map[string]string{"list": "☰", "grid": "▦", "compact": "≡"}

type homePage struct {
	sh        *shell
	workspace *selector.Model
	viewMode  *selector.Model
	dropped   *droppedReporter
}

func newHomePage(sh *shell) *homePage {
	p := &homePage{
		sh:      sh,
		dropped: &droppedReporter{logger: sh.logger, what: "workspaces"},
	}
	p.workspace = selector.New(selector.Config{
		Variant:     selector.VariantOthers,
		Width:       32,
		Placeholder: "Select a workspace",
		Value:       selector.Controlled(""),
		Label:       "Workspaces",
		IsLoading:   true,
		OnChange: func(v string) tea.Cmd {
			return func() tea.Msg { return workspaceChosenMsg{id: v} }
		},
		OnDropped: p.dropped.report,
	}, sh.history)
	p.viewMode = selector.New(selector.Config{
		Variant:     selector.VariantOthers,
		Placeholder: "View mode",
		Value:       selector.Uncontrolled(fp.Some("list")),
		SelectedRenderer: func(v string) string {
			return viewModeIcons[v] + " " + v
		},
		CustomOptions: viewModes,
	}, sh.history)
	return p
}

func (p *homePage) Title() string { return "Home" }

func (p *homePage) Enter() tea.Cmd {
	p.workspace.Init()
	p.viewMode.Init()
	p.workspace.SetLoading(true)
	return p.sh.fetchWorkspaces()
}

func (p *homePage) Leave() {
	p.workspace.Unmount()
	p.viewMode.Unmount()
}

func (p *homePage) Controls() []control {
	return []control{p.workspace, p.viewMode}
}

func (p *homePage) Handle(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case workspacesMsg:
		opts := make([]selector.Option, len(msg.items))
		for i, w := range msg.items {
			opts[i] = toOption(w.Key(), w.Title())
		}
		p.workspace.SetOptions(opts)
		p.workspace.SetLoading(false)
		if cmd := p.dropped.check(p.sh.strict); cmd != nil {
			return cmd
		}
		return status(ui.MessageTypeSuccess, fmt.Sprintf("Loaded %d workspaces", len(p.workspace.Options())))
	case workspaceChosenMsg:
		p.workspace.SetValue(msg.id)
		label, _ := p.workspace.Display()
		p.sh.logger.Info("workspace selected", "id", msg.id)
		return status(ui.MessageTypeInfo, "Switched to "+label)
	case errMsg:
		p.workspace.SetLoading(false)
	}
	return nil
}

func (p *homePage) View(width int) string {
	mode, _ := p.viewMode.Display()
	return lipgloss.JoinVertical(lipgloss.Left,
		ui.TitleStyle.Render("Home"),
		ui.SubtitleStyle.Render("Pick the workspace the shell acts on."),
		lipgloss.JoinHorizontal(lipgloss.Top,
			p.workspace.View(),
			"  ",
			p.viewMode.View(),
		),
		"",
		ui.MutedStyle.Render("view: "+mode),
	)
}

// ═══════════════════════════════════════════════════════════════════════════
// LOGIN
// ═══════════════════════════════════════════════════════════════════════════

type loginPage struct {
	sh       *shell
	username *field
	password *field
	tenant   *selector.Model
	submit   *button
	dropped  *droppedReporter
	pending  bool
}

func newLoginPage(sh *shell) *loginPage {
	p := &loginPage{
		sh:       sh,
		username: newField("Username", "jdoe", false),
		password: newField("Password", "••••••", true),
		dropped:  &droppedReporter{logger: sh.logger, what: "tenants"},
	}
	p.username.input.SetValue(sh.user)
	p.tenant = selector.New(selector.Config{
		Variant:     selector.VariantAuth,
		Width:       32,
		Placeholder: "Select your organisation",
		IsLoading:   true,
		OnDropped:   p.dropped.report,
	}, sh.history)
	p.submit = &button{label: "Sign in", press: p.signIn}
	return p
}

func (p *loginPage) Title() string { return "Sign in" }

func (p *loginPage) Enter() tea.Cmd {
	p.tenant.Init()
	p.tenant.SetLoading(true)
	p.pending = false
	return p.sh.fetchTenants()
}

func (p *loginPage) Leave() {
	p.tenant.Unmount()
	p.password.Reset()
}

func (p *loginPage) Controls() []control {
	return []control{p.username, p.password, p.tenant, p.submit}
}

func (p *loginPage) signIn() tea.Cmd {
	if p.pending {
		return nil
	}
	p.pending = true
	return p.sh.login(api.LoginRequest{
		Username: strings.TrimSpace(p.username.Value()),
		Password: p.password.Value(),
		TenantID: fp.GetOrElseOpt("")(p.tenant.Value()),
	})
}

func (p *loginPage) Handle(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tenantsMsg:
		opts := make([]selector.Option, len(msg.items))
		for i, t := range msg.items {
			opts[i] = toOption(t.Key(), t.Title())
		}
		p.tenant.SetOptions(opts)
		p.tenant.SetLoading(false)
		return p.dropped.check(p.sh.strict)
	case loginMsg:
		p.pending = false
		if msg.err == nil {
			p.password.Reset()
		}
	case errMsg:
		p.tenant.SetLoading(false)
	}
	return nil
}

func (p *loginPage) View(width int) string {
	return lipgloss.JoinVertical(lipgloss.Left,
		ui.TitleStyle.Render("Sign in"),
		p.username.View(),
		p.password.View(),
		ui.LabelStyle.Render("Organisation"),
		p.tenant.View(),
		"",
		p.submit.View(),
	)
}

// ═══════════════════════════════════════════════════════════════════════════
// STATIC PAGES
// ═══════════════════════════════════════════════════════════════════════════

type aboutPage struct{}

func (p *aboutPage) Title() string              { return "About" }
func (p *aboutPage) Enter() tea.Cmd             { return nil }
func (p *aboutPage) Leave()                     {}
func (p *aboutPage) Controls() []control        { return nil }
func (p *aboutPage) Handle(msg tea.Msg) tea.Cmd { return nil }

func (p *aboutPage) View(width int) string {
	body := "gshell is a terminal front end for the workspace API.\n\n" +
		"Use tab to move between the header links, the account menu and the\n" +
		"controls of the current page. Open a menu or selector with enter and\n" +
		"close it with esc. [ and ] walk back and forward through the pages you\n" +
		"visited; doing so closes any open popup."
	return lipgloss.JoinVertical(lipgloss.Left,
		ui.TitleStyle.Render("About"),
		ui.TextStyle.Width(min(width, 76)).Render(body),
	)
}

type notFoundPage struct {
	sh *shell
}

func (p *notFoundPage) Title() string              { return "Not found" }
func (p *notFoundPage) Enter() tea.Cmd             { return nil }
func (p *notFoundPage) Leave()                     {}
func (p *notFoundPage) Controls() []control        { return nil }
func (p *notFoundPage) Handle(msg tea.Msg) tea.Cmd { return nil }

func (p *notFoundPage) View(width int) string {
	return lipgloss.JoinVertical(lipgloss.Left,
		ui.TitleStyle.Render("404"),
		ui.TextStyle.Render(fmt.Sprintf("Nothing lives at %s.", p.sh.history.Location())),
		ui.MutedStyle.Render("Press [ to go back."),
	)
}
