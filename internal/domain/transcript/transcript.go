// Package transcript holds video transcript types and caption track selection.
package transcript

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/kailas-cloud/lexrelay/internal/domain"
)

// Source tells where the transcript text came from.
type Source string

// Transcript sources.
const (
	SourceCaptions    Source = "captions"
	SourceDescription Source = "description"
)

var videoIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{11}$`)

// ValidateVideoID checks the 11-character platform video id.
func ValidateVideoID(id string) error {
	if !videoIDPattern.MatchString(id) {
		return fmt.Errorf("%w: video_id must be 11 characters of [A-Za-z0-9_-]", domain.ErrInvalidRequest)
	}
	return nil
}

// Track is one caption track advertised by the watch page.
type Track struct {
	LanguageCode string
	Name         string
	BaseURL      string
	Kind         string // "asr" for auto-generated captions
}

// AutoGenerated reports whether the track is speech-recognized.
func (t Track) AutoGenerated() bool { return t.Kind == "asr" }

// PickTrack selects the track to fetch: the requested language, then each preferred
// language in order, then the first track. Manual captions win over auto-generated
// ones of the same language. ok is false when tracks is empty.
func PickTrack(tracks []Track, requested string, preferred []string) (Track, bool) {
	if len(tracks) == 0 {
		return Track{}, false
	}
	langs := make([]string, 0, len(preferred)+1)
	if requested != "" {
		langs = append(langs, requested)
	}
	langs = append(langs, preferred...)

	for _, lang := range langs {
		if t, ok := findLanguage(tracks, lang); ok {
			return t, true
		}
	}
	return tracks[0], true
}

func findLanguage(tracks []Track, lang string) (Track, bool) {
	lang = strings.ToLower(strings.TrimSpace(lang))
	if lang == "" {
		return Track{}, false
	}
	var exact, base *Track
	for i := range tracks {
		code := strings.ToLower(tracks[i].LanguageCode)
		switch {
		case code == lang:
			if exact == nil || (exact.AutoGenerated() && !tracks[i].AutoGenerated()) {
				exact = &tracks[i]
			}
		case baseLanguage(code) == baseLanguage(lang):
			if base == nil || (base.AutoGenerated() && !tracks[i].AutoGenerated()) {
				base = &tracks[i]
			}
		}
	}
	if exact != nil {
		return *exact, true
	}
	if base != nil {
		return *base, true
	}
	return Track{}, false
}

func baseLanguage(code string) string {
	base, _, _ := strings.Cut(code, "-")
	return base
}

// Segment is one timed caption line. Times are in seconds.
type Segment struct {
	Start    float64
	Duration float64
	Text     string
}

// Transcript is the text extracted for a video.
type Transcript struct {
	VideoID  string
	Language string
	Source   Source
	Segments []Segment
	Text     string
}

// JoinSegments concatenates segment texts with single spaces.
func JoinSegments(segments []Segment) string {
	parts := make([]string, 0, len(segments))
	for _, s := range segments {
		if t := strings.TrimSpace(s.Text); t != "" {
			parts = append(parts, t)
		}
	}
	return strings.Join(parts, " ")
}

// Page is what the watch page exposes about a video.
type Page struct {
	Tracks      []Track
	Title       string
	Description string
}
