package providers

import "net/http"

// CommandCounter is the slice of the document store the middleware needs.
// The counter mirrors the original bot, which bumped the total on every
// completed command, failed ones included.
type CommandCounter interface {
	IncrementCommands() error
}

// CommandCounterMiddleware counts every mutating API request into the
// document's total_commands setting. Counter failures never fail the
// request itself.
func CommandCounterMiddleware(counter CommandCounter, logger Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(w, r)

		if r.Method != http.MethodPost {
			return
		}
		if err := counter.IncrementCommands(); err != nil {
			logger.Warnf(TypeApi, "Command counter update failed: %s", err)
		}
	})
}
