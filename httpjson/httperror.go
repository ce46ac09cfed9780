package httpjson

import (
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"runtime"
	"strings"

	"github.com/en9inerd/railway-server/httperrors"
)

// SendError logs e and writes it as the JSON response. Client errors are
// logged at warn level, everything else at error level.
func SendError(w http.ResponseWriter, r *http.Request, l *slog.Logger, e *httperrors.Error) {
	if l != nil {
		level := slog.LevelError
		if e.Code < http.StatusInternalServerError {
			level = slog.LevelWarn
		}
		l.Log(r.Context(), level, errDetails(r, e))
	}
	e.WriteJSON(w)
}

func errDetails(r *http.Request, e *httperrors.Error) string {
	q := r.URL.String()
	if qun, err := url.QueryUnescape(q); err == nil {
		q = qun
	}

	srcFileInfo := ""
	if pc, file, line, ok := runtime.Caller(2); ok {
		fnameElems := strings.Split(file, "/")
		funcNameElems := strings.Split(runtime.FuncForPC(pc).Name(), "/")
		srcFileInfo = fmt.Sprintf(" [caused by %s:%d %s]",
			strings.Join(fnameElems[max(0, len(fnameElems)-3):], "/"),
			line, funcNameElems[len(funcNameElems)-1])
	}

	remoteIP := r.RemoteAddr
	if host, _, err := net.SplitHostPort(remoteIP); err == nil {
		remoteIP = host
	}
	return fmt.Sprintf("%s - %d - %s %s - %s%s", e.Error(), e.Code, r.Method, q, remoteIP, srcFileInfo)
}
