package session

import "context"

type ctxKey string

const storeKey ctxKey = "session"

// NewContext guarda el Store del request en ctx.
func NewContext(ctx context.Context, s *Store) context.Context {
	return context.WithValue(ctx, storeKey, s)
}

// FromContext devuelve el Store puesto por el middleware de sesión.
func FromContext(ctx context.Context) (*Store, bool) {
	s, ok := ctx.Value(storeKey).(*Store)
	return s, ok && s != nil
}

// UserName es el nombre del admin del request, para el layout.
func UserName(ctx context.Context) string {
	s, ok := FromContext(ctx)
	if !ok {
		return ""
	}
	st := s.State()
	if !st.Authenticated() {
		return ""
	}
	if st.User.Name != "" {
		return st.User.Name
	}
	return st.User.Email
}
