package chi

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/kailas-cloud/lexrelay/internal/domain"
	"github.com/kailas-cloud/lexrelay/internal/logger"
	gen "github.com/kailas-cloud/lexrelay/internal/transport/generated"
)

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, r *http.Request, err error) bool

// handleError writes the first matching error handler's response, or a 500.
func (s *Server) handleError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromContextOr(r.Context(), s.logger)
	for _, h := range s.errorHandlers {
		if h(w, r, err) {
			log.Warn("request failed", zap.Error(err))
			return
		}
	}
	log.Error("internal error", zap.Error(err))
	writeError(w, r, http.StatusInternalServerError, gen.ErrorCodeInternalProxyError, err.Error())
}

// upstreamHandler relays a third-party status and raw body unchanged.
func upstreamHandler(w http.ResponseWriter, r *http.Request, err error) bool {
	ue, ok := domain.AsUpstreamError(err)
	if !ok {
		return false
	}
	writeJSON(w, ue.StatusCode, gen.ErrorResponse{
		Error:     ue.Error(),
		Details:   ue.Body,
		RequestId: middleware.GetReqID(r.Context()),
	})
	return true
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code gen.ErrorCode) errorHandler {
	return func(w http.ResponseWriter, r *http.Request, err error) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, r, status, code, err.Error())
		return true
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, r *http.Request, status int, code gen.ErrorCode, message string) {
	writeJSON(w, status, gen.ErrorResponse{
		Error:     string(code),
		Message:   message,
		RequestId: middleware.GetReqID(r.Context()),
	})
}

// paramErrorHandler answers parameter binding failures of the generated router.
func paramErrorHandler(w http.ResponseWriter, r *http.Request, err error) {
	writeError(w, r, http.StatusBadRequest, gen.ErrorCodeInvalidRequest, err.Error())
}

// decodeJSON reads a size-limited JSON body into dst. An empty body is accepted when allowEmpty.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any, allowEmpty bool) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		if allowEmpty && errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("%w: invalid request body: %s", domain.ErrInvalidRequest, err.Error())
	}
	return nil
}
