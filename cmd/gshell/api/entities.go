package api

import (
	"context"
	"errors"
	"strings"

	"github.com/zlovtnik/gshell/pkg/fp"
)

// ErrEmptyResponse is returned when the API returns an empty data field
var ErrEmptyResponse = errors.New("empty response data from API")

// ErrLoginCredentialsRequired is returned before calling the API when the
// username or password is blank.
var ErrLoginCredentialsRequired = errors.New("username and password are required")

// API path constants
const (
	paginationQueryFmt = "%s?page=%d&limit=%d"
	apiErrorFmt        = "API error: %s"
	loginPath          = "/api/v1/auth/login"
	workspacesPath     = "/api/v1/workspaces"
	tenantsPath        = "/api/v1/tenants"
	defaultPageLimit   = 50
)

// LoginRequest represents login credentials
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	TenantID string `json:"tenant_id,omitempty"`
}

// LoginResponse represents the login response from the API
type LoginResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int    `json:"expires_in"`
	TokenType    string `json:"token_type"`
	User         string `json:"user"`
	TenantID     string `json:"tenant_id,omitempty"`
}

// Login authenticates with the API and stores the returned token for
// subsequent requests.
func (c *Client) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	valid := fp.Validate(req,
		func(r LoginRequest) error { return fp.Required("username")(r.Username) },
		func(r LoginRequest) error { return fp.Required("password")(r.Password) },
	)
	if fp.IsFailure(valid) {
		return nil, errors.Join(ErrLoginCredentialsRequired, fp.GetError(valid))
	}

	resp, err := c.Post(ctx, loginPath, req)
	if err != nil {
		return nil, err
	}
	login, err := parseResponseData[LoginResponse](resp)
	if err != nil {
		return nil, err
	}

	c.SetToken(login.AccessToken)
	return login, nil
}

// Workspace is a workspace the signed-in user can switch to. The backend may
// send entries without an id or name; those are kept so the caller decides
// what to do with them.
type Workspace struct {
	ID          *string `json:"id"`
	Name        *string `json:"name"`
	Description string  `json:"description,omitempty"`
}

// Key returns the workspace id, if present and not blank.
func (w Workspace) Key() fp.Option[string] {
	return trimmed(w.ID)
}

// Title returns the workspace name, if present and not blank.
func (w Workspace) Title() fp.Option[string] {
	return trimmed(w.Name)
}

// Tenant is an organisation a user can sign in to.
type Tenant struct {
	ID   *string `json:"id"`
	Name *string `json:"name"`
}

// Key returns the tenant id, if present and not blank.
func (t Tenant) Key() fp.Option[string] {
	return trimmed(t.ID)
}

// Title returns the tenant name, if present and not blank.
func (t Tenant) Title() fp.Option[string] {
	return trimmed(t.Name)
}

func trimmed(s *string) fp.Option[string] {
	return fp.FoldOpt(fp.None[string], func(v string) fp.Option[string] {
		return fp.FromNonZero(strings.TrimSpace(v))
	})(fp.FromPointer(s))
}

// ListWorkspaces fetches one page of workspaces.
func (c *Client) ListWorkspaces(ctx context.Context, opts *ListOptions) (*ListResult[Workspace], error) {
	return listItems[Workspace](ctx, c, workspacesPath, opts)
}

// ListTenants fetches every tenant. The endpoint is public and not paginated.
func (c *Client) ListTenants(ctx context.Context) ([]Tenant, error) {
	resp, err := c.Get(ctx, tenantsPath)
	if err != nil {
		return nil, err
	}
	return parseResponseList[Tenant](resp)
}
