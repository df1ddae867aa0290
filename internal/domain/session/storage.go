package session

import "context"

// Storage es el almacenamiento persistido de UNA sesión (equivalente al
// localStorage del navegador). SetAll y RemoveAll son atómicos.
type Storage interface {
	Get(ctx context.Context, key string) (string, bool, error)
	SetAll(ctx context.Context, values map[string]string) error
	RemoveAll(ctx context.Context, keys ...string) error
}

// Backend entrega el Storage de cada sesión (cookie en web, "default" en CLI).
type Backend interface {
	Scope(id string) Storage
}
