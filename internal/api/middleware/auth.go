package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/m04kA/SMC-SiteBooking/internal/api/handlers"
)

// UserIDHeader заголовок с ID сотрудника, который выставляет доверенный upstream
const UserIDHeader = "X-User-ID"

type contextKey string

const userIDKey contextKey = "user_id"

// Auth пропускает только запросы с заголовком X-User-ID
// Аутентификация выполняется до сервиса; здесь ID только переносится в контекст
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID := strings.TrimSpace(r.Header.Get(UserIDHeader))
		if userID == "" {
			handlers.RespondUnauthorized(w, "отсутствует ID пользователя")
			return
		}

		next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), userID)))
	})
}

// WithUserID кладет ID сотрудника в контекст
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// GetUserID возвращает ID сотрудника из контекста
func GetUserID(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(userIDKey).(string)
	return userID, ok && userID != ""
}
