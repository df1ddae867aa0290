package httpclient

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// HTTPError representa una respuesta no-2xx.
type HTTPError struct {
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("http error: status=%d", e.StatusCode)
	}
	return fmt.Sprintf("http error: status=%d body=%s", e.StatusCode, e.Body)
}

// Message intenta sacar un mensaje legible del payload de error.
// El backend responde {"message": "..."} o {"message": ["...", "..."]};
// algunos gateways usan {"error": "..."}. Si no hay nada, devuelve "".
func (e *HTTPError) Message() string {
	if e == nil || e.Body == "" {
		return ""
	}

	var payload struct {
		Message json.RawMessage `json:"message"`
		Error   string          `json:"error"`
	}
	if err := json.Unmarshal([]byte(e.Body), &payload); err != nil {
		return ""
	}

	if len(payload.Message) > 0 {
		var s string
		if err := json.Unmarshal(payload.Message, &s); err == nil && strings.TrimSpace(s) != "" {
			return strings.TrimSpace(s)
		}
		var list []string
		if err := json.Unmarshal(payload.Message, &list); err == nil {
			parts := make([]string, 0, len(list))
			for _, item := range list {
				if item = strings.TrimSpace(item); item != "" {
					parts = append(parts, item)
				}
			}
			if len(parts) > 0 {
				return strings.Join(parts, "; ")
			}
		}
	}

	return strings.TrimSpace(payload.Error)
}

// MessageOf devuelve el mensaje del backend si err es *HTTPError con payload
// legible; en cualquier otro caso devuelve fallback.
func MessageOf(err error, fallback string) string {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		if msg := httpErr.Message(); msg != "" {
			return msg
		}
	}
	return fallback
}

// IsUnauthorized reporta si err viene de una respuesta 401.
func IsUnauthorized(err error) bool {
	var httpErr *HTTPError
	return errors.As(err, &httpErr) && httpErr.StatusCode == http.StatusUnauthorized
}
