package dashboard

import "context"

// Lister trae una página de entidades del backend.
type Lister[T any] interface {
	List(ctx context.Context, q Query) (Envelope[T], error)
}

// ListerFunc adapta una función a Lister.
type ListerFunc[T any] func(ctx context.Context, q Query) (Envelope[T], error)

func (f ListerFunc[T]) List(ctx context.Context, q Query) (Envelope[T], error) {
	return f(ctx, q)
}
