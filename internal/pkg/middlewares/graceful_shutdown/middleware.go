package graceful_shutdown

import (
	"context"
	"net/http"
	"strconv"
	"sync/atomic"
	"time"
)

// retryAfter подсказка клиенту: к этому времени трафик уйдет на другой инстанс.
const retryAfter = 5 * time.Second

const shuttingDownBody = `{"error":"service is shutting down"}` + "\n"

// Middleware отбивает новые запросы с 503, когда ongoingCtx отменен и
// выставлен флаг остановки. Запросы, уже попавшие в обработку, доживают.
func Middleware(isShuttingDown *atomic.Bool, ongoingCtx context.Context) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if ongoingCtx.Err() != nil && isShuttingDown.Load() {
				w.Header().Set("Content-Type", "application/json")
				w.Header().Set("Retry-After", strconv.Itoa(int(retryAfter.Seconds())))
				w.WriteHeader(http.StatusServiceUnavailable)
				_, _ = w.Write([]byte(shuttingDownBody))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
