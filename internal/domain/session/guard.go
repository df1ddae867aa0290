package session

import "strings"

// IsPublic indica si path no requiere sesión.
func IsPublic(path string) bool {
	switch path {
	case LoginPath, "/health":
		return true
	}
	return strings.HasPrefix(path, "/static/")
}

// Guard es la regla de redirección que se evalúa cada vez que cambia el
// estado de auth o la ubicación:
// - sin sesión en un área protegida => login
// - con sesión en el login => home
func Guard(authenticated bool, path string) (string, bool) {
	if !authenticated && !IsPublic(path) {
		return LoginPath, true
	}
	if authenticated && path == LoginPath {
		return HomePath, true
	}
	return "", false
}
