package transcript

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/kailas-cloud/lexrelay/internal/domain"
	domtr "github.com/kailas-cloud/lexrelay/internal/domain/transcript"
	"github.com/kailas-cloud/lexrelay/internal/logger"
)

// Service produces video transcripts, falling back to the video description.
type Service struct {
	src       Source
	preferred []string
}

// New creates a transcript service. preferred lists fallback caption languages in order.
func New(src Source, preferred []string) *Service {
	return &Service{src: src, preferred: preferred}
}

// Fetch returns the transcript of videoID in language when available.
func (s *Service) Fetch(ctx context.Context, videoID, language string) (domtr.Transcript, error) {
	if err := domtr.ValidateVideoID(videoID); err != nil {
		return domtr.Transcript{}, err //nolint:wrapcheck // domain error
	}
	log := logger.FromContext(ctx).With(zap.String("video_id", videoID))

	page, err := s.src.WatchPage(ctx, videoID)
	if err != nil {
		return domtr.Transcript{}, fmt.Errorf("watch page: %w", err)
	}

	if track, ok := domtr.PickTrack(page.Tracks, language, s.preferred); ok {
		segments, err := s.src.Captions(ctx, track)
		switch {
		case err != nil:
			log.Warn("caption fetch failed, using description", zap.String("language", track.LanguageCode), zap.Error(err))
		case len(segments) > 0:
			log.Info("transcript fetched",
				zap.String("language", track.LanguageCode),
				zap.Bool("auto_generated", track.AutoGenerated()),
				zap.Int("segments", len(segments)),
			)
			return domtr.Transcript{
				VideoID:  videoID,
				Language: track.LanguageCode,
				Source:   domtr.SourceCaptions,
				Segments: segments,
				Text:     domtr.JoinSegments(segments),
			}, nil
		default:
			log.Debug("caption track empty, using description", zap.String("language", track.LanguageCode))
		}
	}

	text := describe(page)
	if text == "" {
		return domtr.Transcript{}, fmt.Errorf("%w: video %s", domain.ErrTranscriptUnavailable, videoID)
	}
	log.Info("transcript from description", zap.Int("bytes", len(text)))
	return domtr.Transcript{
		VideoID:  videoID,
		Language: language,
		Source:   domtr.SourceDescription,
		Text:     text,
	}, nil
}

func describe(p domtr.Page) string {
	if p.Description == "" {
		return ""
	}
	if p.Title == "" {
		return p.Description
	}
	return strings.TrimSpace(p.Title + "\n\n" + p.Description)
}
