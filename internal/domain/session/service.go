package session

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"nutri-admin/internal/domain/users"
	"nutri-admin/internal/platform/logger"
)

// Store es la sesión de auth de un cliente del panel.
// Contrato: Hydrate una vez al arrancar la vista; Logout/Unauthorized limpian
// storage y memoria juntos.
type Store struct {
	storage Storage
	nav     Navigator
	log     logger.Logger
	now     func() time.Time

	mu         sync.RWMutex
	user       *users.User
	token      string
	loading    bool
	hydrated   bool
	redirected bool
}

func NewStore(storage Storage, nav Navigator, log logger.Logger) *Store {
	if nav == nil {
		nav = nopNavigator{}
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Store{
		storage: storage,
		nav:     nav,
		log:     log,
		now:     time.Now,
	}
}

// Hydrate levanta la sesión desde el storage persistido.
// Una sesión incompleta, ilegible, vencida o de un rol que no es admin se
// descarta y se limpia el storage. Sólo falla si el storage falla.
func (s *Store) Hydrate(ctx context.Context) error {
	s.mu.Lock()
	if s.hydrated {
		s.mu.Unlock()
		return nil
	}
	s.loading = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.loading = false
		s.hydrated = true
		s.mu.Unlock()
	}()

	token, hasToken, err := s.storage.Get(ctx, KeyToken)
	if err != nil {
		return fmt.Errorf("session: read token: %w", err)
	}
	rawUser, hasUser, err := s.storage.Get(ctx, KeyUser)
	if err != nil {
		return fmt.Errorf("session: read user: %w", err)
	}
	if !hasToken && !hasUser {
		return nil
	}

	user, reason := s.validate(token, rawUser)
	if reason != "" {
		s.log.Warn("discarding persisted session", map[string]any{"reason": reason})
		if err := s.storage.RemoveAll(ctx, KeyToken, KeyUser); err != nil {
			return fmt.Errorf("session: clear invalid session: %w", err)
		}
		return nil
	}

	s.mu.Lock()
	s.user = &user
	s.token = strings.TrimSpace(token)
	s.mu.Unlock()
	return nil
}

func (s *Store) validate(token, rawUser string) (users.User, string) {
	if strings.TrimSpace(token) == "" || strings.TrimSpace(rawUser) == "" {
		return users.User{}, "incomplete session"
	}
	var u users.User
	if err := json.Unmarshal([]byte(rawUser), &u); err != nil {
		return users.User{}, "malformed user record"
	}
	if !u.IsAdmin() {
		return users.User{}, "role is not admin"
	}
	if tokenExpired(token, s.now()) {
		return users.User{}, "token expired"
	}
	return u, ""
}

// tokenExpired lee el exp del JWT sin verificar la firma (la verifica el
// backend). Un token que no es JWT se trata como opaco y no vence acá.
func tokenExpired(token string, now time.Time) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return !now.Before(exp.Time)
}

// Login persiste y activa la sesión. Falla con ErrNotAuthorized si el rol
// no es admin, sin tocar storage ni memoria.
func (s *Store) Login(ctx context.Context, token string, user users.User) error {
	if !user.IsAdmin() {
		return ErrNotAuthorized
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return ErrInvalidToken
	}

	raw, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("session: encode user: %w", err)
	}
	if err := s.storage.SetAll(ctx, map[string]string{
		KeyToken: token,
		KeyUser:  string(raw),
	}); err != nil {
		return fmt.Errorf("session: persist: %w", err)
	}

	s.mu.Lock()
	s.user = &user
	s.token = token
	s.hydrated = true
	s.redirected = false
	s.mu.Unlock()

	s.log.Info("admin signed in", map[string]any{"user_id": user.ID.String()})
	return nil
}

// Logout limpia storage y memoria y navega al login.
func (s *Store) Logout(ctx context.Context) error {
	err := s.clear(ctx)
	s.nav.Navigate(LoginPath)
	return err
}

// Unauthorized es el hook del cliente HTTP para respuestas 401: limpia la
// sesión y manda al login (una sola vez, y no si ya está ahí).
func (s *Store) Unauthorized(ctx context.Context) {
	if err := s.clear(ctx); err != nil {
		s.log.Error("clear session after 401", map[string]any{"error": err})
	}

	s.mu.Lock()
	shouldNavigate := !s.redirected && s.nav.Location() != LoginPath
	if shouldNavigate {
		s.redirected = true
	}
	s.mu.Unlock()

	if shouldNavigate {
		s.log.Info("session invalidated by backend", nil)
		s.nav.Navigate(LoginPath)
	}
}

// BearerToken devuelve el token guardado en el storage persistido.
func (s *Store) BearerToken(ctx context.Context) string {
	token, ok, err := s.storage.Get(ctx, KeyToken)
	if err != nil {
		s.log.Warn("read token for request", map[string]any{"error": err})
		return ""
	}
	if !ok {
		return ""
	}
	return strings.TrimSpace(token)
}

func (s *Store) clear(ctx context.Context) error {
	s.mu.Lock()
	s.user = nil
	s.token = ""
	s.mu.Unlock()

	if err := s.storage.RemoveAll(ctx, KeyToken, KeyUser); err != nil {
		return fmt.Errorf("session: clear: %w", err)
	}
	return nil
}

// State devuelve una copia del estado actual.
func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st := State{Token: s.token, Loading: s.loading}
	if s.user != nil {
		u := *s.user
		st.User = &u
	}
	return st
}

func (s *Store) IsAuthenticated() bool {
	return s.State().Authenticated()
}

// Navigator expone el navigator con el que se creó el store.
func (s *Store) Navigator() Navigator {
	return s.nav
}
