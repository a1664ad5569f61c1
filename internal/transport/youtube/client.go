// Package youtube reads caption tracks and descriptions from the public video watch page.
package youtube

import (
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"html"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/tidwall/gjson"

	"github.com/kailas-cloud/lexrelay/internal/domain"
	"github.com/kailas-cloud/lexrelay/internal/domain/transcript"
	"github.com/kailas-cloud/lexrelay/internal/metrics"
)

const (
	upstreamName = "youtube"
	serviceName  = "YouTube"

	playerResponseMarker = "ytInitialPlayerResponse"
	maxPageBytes         = 8 << 20
)

var errNoPlayerResponse = errors.New("player response not found in watch page")

// Config holds the video platform client settings.
type Config struct {
	BaseURL    string
	Timeout    time.Duration
	HTTPClient *http.Client
}

// Client fetches watch pages and timed text.
type Client struct {
	baseURL string
	timeout time.Duration
	http    *http.Client
}

// NewClient creates a video platform client.
func NewClient(cfg *Config) *Client {
	hc := cfg.HTTPClient
	if hc == nil {
		hc = &http.Client{}
	}
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		timeout: cfg.Timeout,
		http:    hc,
	}
}

// WatchPage downloads the watch page of videoID and extracts caption tracks and description.
func (c *Client) WatchPage(ctx context.Context, videoID string) (transcript.Page, error) {
	u := c.baseURL + "/watch?v=" + url.QueryEscape(videoID)
	body, err := c.get(ctx, u)
	if err != nil {
		return transcript.Page{}, err
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return transcript.Page{}, fmt.Errorf("parse watch page: %w", err)
	}

	var page transcript.Page
	if raw, err := playerResponse(doc); err == nil {
		page.Tracks = captionTracks(raw)
		page.Title = strings.TrimSpace(gjson.Get(raw, "videoDetails.title").String())
		page.Description = strings.TrimSpace(gjson.Get(raw, "videoDetails.shortDescription").String())
	}
	if page.Description == "" {
		if meta, ok := doc.Find(`meta[name="description"]`).Attr("content"); ok {
			page.Description = strings.TrimSpace(meta)
		}
	}
	if page.Title == "" {
		page.Title = strings.TrimSpace(doc.Find("title").First().Text())
	}
	return page, nil
}

// Captions downloads the timed text of track and decodes its segments.
func (c *Client) Captions(ctx context.Context, track transcript.Track) ([]transcript.Segment, error) {
	u := track.BaseURL
	if strings.HasPrefix(u, "/") {
		u = c.baseURL + u
	}
	body, err := c.get(ctx, u)
	if err != nil {
		return nil, err
	}
	return decodeTimedText(body)
}

func (c *Client) get(ctx context.Context, u string) ([]byte, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept-Language", "pt-BR,pt;q=0.9,en;q=0.8")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		metrics.ObserveUpstream(upstreamName, 0, time.Since(start))
		return nil, fmt.Errorf("fetch %s: %w", serviceName, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxPageBytes))
	metrics.ObserveUpstream(upstreamName, resp.StatusCode, time.Since(start))
	if err != nil {
		return nil, fmt.Errorf("read %s response: %w", serviceName, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, domain.NewUpstreamError(serviceName, resp.StatusCode, string(body))
	}
	return body, nil
}

// playerResponse returns the JSON object assigned to ytInitialPlayerResponse in a page script.
func playerResponse(doc *goquery.Document) (string, error) {
	var found string
	doc.Find("script").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		text := s.Text()
		idx := strings.Index(text, playerResponseMarker)
		if idx < 0 {
			return true
		}
		obj, ok := jsonObjectAt(text, idx+len(playerResponseMarker))
		if !ok || !gjson.Valid(obj) {
			return true
		}
		found = obj
		return false
	})
	if found == "" {
		return "", errNoPlayerResponse
	}
	return found, nil
}

// jsonObjectAt returns the balanced {...} starting at the first brace at or after from.
func jsonObjectAt(s string, from int) (string, bool) {
	start := strings.IndexByte(s[from:], '{')
	if start < 0 {
		return "", false
	}
	start += from

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		ch := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case ch == '\\':
				escaped = true
			case ch == '"':
				inString = false
			}
			continue
		}
		switch ch {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[start : i+1], true
			}
		}
	}
	return "", false
}

func captionTracks(raw string) []transcript.Track {
	var tracks []transcript.Track
	gjson.Get(raw, "captions.playerCaptionsTracklistRenderer.captionTracks").ForEach(func(_, v gjson.Result) bool {
		base := v.Get("baseUrl").String()
		if base == "" {
			return true
		}
		name := v.Get("name.simpleText").String()
		if name == "" {
			name = v.Get("name.runs.0.text").String()
		}
		tracks = append(tracks, transcript.Track{
			LanguageCode: v.Get("languageCode").String(),
			Name:         name,
			BaseURL:      base,
			Kind:         v.Get("kind").String(),
		})
		return true
	})
	return tracks
}

type timedText struct {
	Texts []struct {
		Start string `xml:"start,attr"`
		Dur   string `xml:"dur,attr"`
		Body  string `xml:",chardata"`
	} `xml:"text"`
}

func decodeTimedText(data []byte) ([]transcript.Segment, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}
	var tt timedText
	if err := xml.Unmarshal(data, &tt); err != nil {
		return nil, fmt.Errorf("decode timed text: %w", err)
	}

	segments := make([]transcript.Segment, 0, len(tt.Texts))
	for _, t := range tt.Texts {
		text := strings.Join(strings.Fields(html.UnescapeString(t.Body)), " ")
		if text == "" {
			continue
		}
		start, _ := strconv.ParseFloat(t.Start, 64)
		dur, _ := strconv.ParseFloat(t.Dur, 64)
		segments = append(segments, transcript.Segment{Start: start, Duration: dur, Text: text})
	}
	return segments, nil
}
