package dashboardapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"nutri-admin/internal/domain/children"
	"nutri-admin/internal/domain/users"
	"nutri-admin/internal/platform/httpclient"
	"nutri-admin/internal/ports/dashboard"
)

var (
	ErrNotConfigured      = errors.New("dashboard api client not configured")
	ErrInvalidCredentials = errors.New("dashboard api invalid credentials")
	ErrUpstream           = errors.New("dashboard api upstream error")
)

const (
	LoginPath    = "/auth/login"
	UsersPath    = "/dashboard/users"
	ChildrenPath = "/dashboard/children"
)

// Client habla con el backend REST del panel.
// Las llamadas de listado van autenticadas con la sesión que se pase;
// el login va sin sesión.
type Client struct {
	http *httpclient.Client
}

func NewClient(hc *httpclient.Client) *Client {
	return &Client{http: hc}
}

func (c *Client) IsConfigured() bool {
	return c != nil && c.http != nil && c.http.BaseURL != ""
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// El backend devolvió distintos nombres para el token según la versión.
type loginResponse struct {
	Token       string     `json:"token"`
	AccessToken string     `json:"access_token"`
	AccessCamel string     `json:"accessToken"`
	User        users.User `json:"user"`
}

func (r loginResponse) token() string {
	for _, t := range []string{r.Token, r.AccessToken, r.AccessCamel} {
		if t = strings.TrimSpace(t); t != "" {
			return t
		}
	}
	return ""
}

// Login valida credenciales contra POST /auth/login.
// No decide si el rol puede entrar al panel: eso lo hace la sesión.
func (c *Client) Login(ctx context.Context, email, password string) (string, users.User, error) {
	if !c.IsConfigured() {
		return "", users.User{}, ErrNotConfigured
	}
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return "", users.User{}, ErrInvalidCredentials
	}

	var out loginResponse
	err := c.http.DoJSON(ctx, http.MethodPost, LoginPath, nil, nil, loginRequest{
		Email:    email,
		Password: password,
	}, &out)
	if err != nil {
		var httpErr *httpclient.HTTPError
		if errors.As(err, &httpErr) && (httpErr.StatusCode == http.StatusUnauthorized || httpErr.StatusCode == http.StatusForbidden || httpErr.StatusCode == http.StatusBadRequest) {
			return "", users.User{}, fmt.Errorf("%w: %w", ErrInvalidCredentials, err)
		}
		return "", users.User{}, fmt.Errorf("%w: %w", ErrUpstream, err)
	}

	token := out.token()
	if token == "" {
		return "", users.User{}, fmt.Errorf("%w: login response missing token", ErrUpstream)
	}
	if out.User.ID == "" {
		return "", users.User{}, fmt.Errorf("%w: login response missing user", ErrUpstream)
	}
	return token, out.User, nil
}

// Users devuelve el lister de GET /dashboard/users para una sesión.
func (c *Client) Users(auth httpclient.Authenticator) dashboard.Lister[users.User] {
	return lister[users.User]{http: c.authed(auth), path: UsersPath}
}

// Children devuelve el lister de GET /dashboard/children para una sesión.
func (c *Client) Children(auth httpclient.Authenticator) dashboard.Lister[children.Child] {
	return lister[children.Child]{http: c.authed(auth), path: ChildrenPath}
}

func (c *Client) authed(auth httpclient.Authenticator) *httpclient.Client {
	if c == nil || c.http == nil {
		return nil
	}
	return c.http.WithAuth(auth)
}

type lister[T any] struct {
	http *httpclient.Client
	path string
}

func (l lister[T]) List(ctx context.Context, q dashboard.Query) (dashboard.Envelope[T], error) {
	if l.http == nil {
		return dashboard.Envelope[T]{}, ErrNotConfigured
	}
	var out dashboard.Envelope[T]
	if err := l.http.DoJSON(ctx, http.MethodGet, l.path, q.Values(), nil, nil, &out); err != nil {
		return dashboard.Envelope[T]{}, err
	}
	return out.Normalize(q), nil
}
