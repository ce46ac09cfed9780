package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/en9inerd/railway-server/httperrors"
	"github.com/en9inerd/railway-server/httpjson"
)

// DefaultJSONBodyLimit caps JSON request bodies at 100 KiB.
const DefaultJSONBodyLimit int64 = 100 << 10

// JSONBodyConfig holds configuration for the JSON body middleware
type JSONBodyConfig struct {
	// Limit is the largest accepted body in bytes; <= 0 means DefaultJSONBodyLimit.
	Limit int64
	// Strict accepts only objects and arrays at the top level.
	Strict bool
	// Logger receives rejected requests; nil disables logging.
	Logger *slog.Logger
}

type jsonBodyKey struct{}

// JSONBody returns a strict JSON body decoder limited to limit bytes.
func JSONBody(limit int64, logger *slog.Logger) func(http.Handler) http.Handler {
	return JSONBodyWithConfig(JSONBodyConfig{Limit: limit, Strict: true, Logger: logger})
}

// JSONBodyWithConfig parses JSON request bodies before any handler runs.
//
// Requests whose Content-Type is not JSON, or that carry an empty body,
// pass through untouched. A JSON body that is too large is answered with
// 413, one that does not parse with 400; the next handler is not called in
// either case. On success the decoded value is available through
// JSONBodyFrom and the raw bytes are put back on r.Body so handlers can
// decode into their own types.
func JSONBodyWithConfig(cfg JSONBodyConfig) func(http.Handler) http.Handler {
	if cfg.Limit <= 0 {
		cfg.Limit = DefaultJSONBodyLimit
	}

	return func(next http.Handler) http.Handler {
		fn := func(w http.ResponseWriter, r *http.Request) {
			if r.Body == nil || r.Body == http.NoBody || !httpjson.IsJSONContentType(r.Header.Get("Content-Type")) {
				next.ServeHTTP(w, r)
				return
			}

			if r.ContentLength > cfg.Limit {
				httpjson.SendError(w, r, cfg.Logger, tooLarge(cfg.Limit))
				return
			}

			raw, err := io.ReadAll(http.MaxBytesReader(w, r.Body, cfg.Limit))
			if err != nil {
				var mbe *http.MaxBytesError
				if errors.As(err, &mbe) {
					httpjson.SendError(w, r, cfg.Logger, tooLarge(cfg.Limit))
					return
				}
				httpjson.SendError(w, r, cfg.Logger,
					httperrors.NewErrorWithErr(http.StatusBadRequest, "failed to read request body", err))
				return
			}
			r.Body = io.NopCloser(bytes.NewReader(raw))

			if len(raw) == 0 {
				next.ServeHTTP(w, r)
				return
			}

			if cfg.Strict {
				if c := firstNonSpace(raw); c != '{' && c != '[' {
					httpjson.SendError(w, r, cfg.Logger,
						httperrors.NewErrorWithDetails(http.StatusBadRequest, "invalid JSON body", "top-level value must be an object or array"))
					return
				}
			}

			var v any
			if err := json.Unmarshal(raw, &v); err != nil {
				httpjson.SendError(w, r, cfg.Logger,
					httperrors.NewErrorWithErr(http.StatusBadRequest, "invalid JSON body", err))
				return
			}

			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), jsonBodyKey{}, v)))
		}
		return http.HandlerFunc(fn)
	}
}

// JSONBodyFrom returns the body parsed by JSONBody, if there was one.
// Objects decode to map[string]any and arrays to []any.
func JSONBodyFrom(ctx context.Context) (any, bool) {
	v := ctx.Value(jsonBodyKey{})
	return v, v != nil
}

// firstNonSpace returns the first byte that is not JSON whitespace, or 0
// when there is none.
func firstNonSpace(b []byte) byte {
	for _, c := range b {
		switch c {
		case ' ', '\t', '\n', '\r':
		default:
			return c
		}
	}
	return 0
}

func tooLarge(limit int64) *httperrors.Error {
	return httperrors.NewErrorWithDetails(http.StatusRequestEntityTooLarge, "request too large",
		"limit is "+strconv.FormatInt(limit, 10)+" bytes")
}
