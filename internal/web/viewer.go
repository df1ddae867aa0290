package web

import "context"

const viewerKey ctxKey = "viewer"

// WithViewer guarda el nombre del admin del request para el layout.
func WithViewer(ctx context.Context, name string) context.Context {
	return context.WithValue(ctx, viewerKey, name)
}

func Viewer(ctx context.Context) string {
	v, _ := ctx.Value(viewerKey).(string)
	return v
}
