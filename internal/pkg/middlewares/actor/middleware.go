package actor

import (
	"context"
	"net/http"
	"strconv"

	"marketplace/pkg/logger"
)

// HeaderUserID выставляет шлюз аутентификации перед сервисом.
const HeaderUserID = "X-User-ID"

type ctxKey struct{}

func WithUserID(ctx context.Context, userID int64) context.Context {
	return context.WithValue(ctx, ctxKey{}, userID)
}

func UserID(ctx context.Context) (int64, bool) {
	userID, ok := ctx.Value(ctxKey{}).(int64)
	return userID, ok && userID > 0
}

// Middleware кладет id пользователя в контекст. Роль здесь не читается:
// сервисы резолвят ее сами на каждый запрос.
func Middleware(log handlerLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := r.Header.Get(HeaderUserID)
			userID, err := strconv.ParseInt(raw, 10, 64)
			if err != nil || userID <= 0 {
				log.With(
					logger.NewField("path", r.URL.Path),
					logger.NewField("header", raw),
				).Warn("request without valid actor")

				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				_, _ = w.Write([]byte(`{"ok":false,"error":"Authentication required","code":"unauthorized"}`))
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), userID)))
		})
	}
}
