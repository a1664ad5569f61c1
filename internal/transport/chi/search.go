package chi

import (
	"net/http"

	"github.com/kailas-cloud/lexrelay/internal/domain/search/request"
	gen "github.com/kailas-cloud/lexrelay/internal/transport/generated"
)

// Search handles POST /search. A 2xx upstream body is relayed byte-for-byte.
func (s *Server) Search(w http.ResponseWriter, r *http.Request) {
	var body gen.SearchJSONRequestBody
	if err := decodeJSON(w, r, &body, false); err != nil {
		s.handleError(w, r, err)
		return
	}

	req, err := request.New(body.TargetCollection, body.QueryTerm, body.Filters)
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	data, err := s.svc.Search.Search(r.Context(), req)
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// ListCollections handles GET /collections.
func (s *Server) ListCollections(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, gen.ListResponse{Items: s.svc.Search.Collections()})
}
