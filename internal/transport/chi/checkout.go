package chi

import (
	"net/http"

	"github.com/kailas-cloud/lexrelay/internal/domain"
	gen "github.com/kailas-cloud/lexrelay/internal/transport/generated"
)

// Checkout handles POST /checkout.
func (s *Server) Checkout(w http.ResponseWriter, r *http.Request) {
	if s.svc.Checkout == nil {
		s.handleError(w, r, domain.ErrNotConfigured)
		return
	}
	id, ok := domain.IdentityFromContext(r.Context())
	if !ok {
		s.handleError(w, r, domain.ErrUnauthorized)
		return
	}

	var body gen.CheckoutJSONRequestBody
	if err := decodeJSON(w, r, &body, true); err != nil {
		s.handleError(w, r, err)
		return
	}

	session, err := s.svc.Checkout.Checkout(r.Context(), id, body.Plan)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, gen.CheckoutResponse{Url: session.URL, SessionId: session.ID})
}

// CustomerPortal handles POST /customer-portal.
func (s *Server) CustomerPortal(w http.ResponseWriter, r *http.Request) {
	if s.svc.Checkout == nil {
		s.handleError(w, r, domain.ErrNotConfigured)
		return
	}
	id, ok := domain.IdentityFromContext(r.Context())
	if !ok {
		s.handleError(w, r, domain.ErrUnauthorized)
		return
	}

	session, err := s.svc.Checkout.Portal(r.Context(), id)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, gen.PortalResponse{Url: session.URL})
}
