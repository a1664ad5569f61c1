package transcript

import (
	"context"

	domtr "github.com/kailas-cloud/lexrelay/internal/domain/transcript"
)

// Source fetches watch page data and caption tracks for a video.
type Source interface {
	WatchPage(ctx context.Context, videoID string) (domtr.Page, error)
	Captions(ctx context.Context, track domtr.Track) ([]domtr.Segment, error)
}
