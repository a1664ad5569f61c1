package chi

import (
	"net/http"

	"github.com/kailas-cloud/lexrelay/internal/domain"
	gen "github.com/kailas-cloud/lexrelay/internal/transport/generated"
)

// Transcript handles POST /transcript.
func (s *Server) Transcript(w http.ResponseWriter, r *http.Request) {
	if s.svc.Transcript == nil {
		s.handleError(w, r, domain.ErrNotConfigured)
		return
	}

	var body gen.TranscriptJSONRequestBody
	if err := decodeJSON(w, r, &body, false); err != nil {
		s.handleError(w, r, err)
		return
	}

	tr, err := s.svc.Transcript.Fetch(r.Context(), body.VideoId, body.Language)
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	resp := gen.TranscriptResponse{
		VideoId:  tr.VideoID,
		Language: tr.Language,
		Source:   gen.TranscriptResponseSource(tr.Source),
		Text:     tr.Text,
	}
	if len(tr.Segments) > 0 {
		resp.Segments = make([]gen.TranscriptSegment, len(tr.Segments))
		for i, seg := range tr.Segments {
			resp.Segments[i] = gen.TranscriptSegment{Start: seg.Start, Duration: seg.Duration, Text: seg.Text}
		}
	}
	writeJSON(w, http.StatusOK, resp)
}
