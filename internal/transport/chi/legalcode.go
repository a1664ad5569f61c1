package chi

import (
	"net/http"

	"github.com/kailas-cloud/lexrelay/internal/domain"
	gen "github.com/kailas-cloud/lexrelay/internal/transport/generated"
)

// ListLegalCodes handles GET /legal-codes.
func (s *Server) ListLegalCodes(w http.ResponseWriter, r *http.Request) {
	if s.svc.LegalCodes == nil {
		s.handleError(w, r, domain.ErrNotConfigured)
		return
	}
	writeJSON(w, http.StatusOK, gen.ListResponse{Items: s.svc.LegalCodes.Codes()})
}

// LegalCodeArticles handles GET /legal-codes/{code}/articles.
func (s *Server) LegalCodeArticles(
	w http.ResponseWriter,
	r *http.Request,
	code gen.LegalCodeSlug,
	params gen.LegalCodeArticlesParams,
) {
	if s.svc.LegalCodes == nil {
		s.handleError(w, r, domain.ErrNotConfigured)
		return
	}

	limit := 0
	if params.Limit != nil {
		if *params.Limit <= 0 {
			writeError(w, r, http.StatusBadRequest, gen.ErrorCodeInvalidRequest, "limit must be positive")
			return
		}
		limit = *params.Limit
	}
	var term string
	if params.Q != nil {
		term = *params.Q
	}

	page, err := s.svc.LegalCodes.Articles(r.Context(), code, term, limit)
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	items := make([]gen.Article, len(page.Items))
	for i, a := range page.Items {
		items[i] = gen.Article{Id: a.ID, Number: a.Number, Text: a.Text}
	}
	writeJSON(w, http.StatusOK, gen.ArticlesResponse{Code: page.Code, Items: items, Total: page.Total})
}
