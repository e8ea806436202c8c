package main

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/zlovtnik/gshell/cmd/gshell/api"
)

// Messages for async operations
type workspacesMsg struct{ items []api.Workspace }
type tenantsMsg struct{ items []api.Tenant }
type loginMsg struct {
	resp *api.LoginResponse
	err  error
}
type logoutMsg struct{}
type workspaceChosenMsg struct{ id string }
type errMsg struct{ err error }
type statusMsg struct {
	text    string
	msgType string
}

// defaultFetchTimeout is the fallback when the configured timeout is unset.
const defaultFetchTimeout = 10 * time.Second

func (s *shell) fetchTimeout() time.Duration {
	if s.timeout <= 0 {
		return defaultFetchTimeout
	}
	return s.timeout
}

func (s *shell) fetchWorkspaces() tea.Cmd {
	client, timeout := s.client, s.fetchTimeout()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		res, err := client.ListWorkspaces(ctx, nil)
		if err != nil {
			return errMsg{err}
		}
		return workspacesMsg{res.Items}
	}
}

func (s *shell) fetchTenants() tea.Cmd {
	client, timeout := s.client, s.fetchTimeout()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		tenants, err := client.ListTenants(ctx)
		if err != nil {
			return errMsg{err}
		}
		return tenantsMsg{tenants}
	}
}

func (s *shell) login(req api.LoginRequest) tea.Cmd {
	client, timeout := s.client, s.fetchTimeout()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		resp, err := client.Login(ctx, req)
		return loginMsg{resp: resp, err: err}
	}
}

func status(msgType, text string) tea.Cmd {
	return func() tea.Msg { return statusMsg{text: text, msgType: msgType} }
}
