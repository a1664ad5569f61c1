package lexrelay

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

// Transcript is the text of a video, from captions or, failing that, its description.
type Transcript struct {
	VideoID  string `json:"video_id"`
	Language string `json:"language"`
	Source   string `json:"source"` // "captions" or "description"
	Segments []struct {
		Start    float64 `json:"start"`
		Duration float64 `json:"duration"`
		Text     string  `json:"text"`
	} `json:"segments"`
	Text string `json:"text"`
}

// Transcript fetches the transcript of a video. language may be empty.
func (c *Client) Transcript(ctx context.Context, videoID, language string) (Transcript, error) {
	body := struct {
		VideoID  string `json:"video_id"`
		Language string `json:"language,omitempty"`
	}{VideoID: videoID, Language: language}

	var t Transcript
	if _, err := c.do(ctx, call{op: "transcript", method: http.MethodPost, path: "/transcript", body: body}, &t); err != nil {
		return Transcript{}, err
	}
	return t, nil
}

// Article is one article of a legal code.
type Article struct {
	ID     int64  `json:"id"`
	Number string `json:"number"`
	Text   string `json:"text"`
}

// ArticlePage is a page of matching articles with the total match count.
type ArticlePage struct {
	Code  string    `json:"code"`
	Items []Article `json:"items"`
	Total int64     `json:"total"`
}

// LegalCodes lists the legal-code slugs the relay serves.
func (c *Client) LegalCodes(ctx context.Context) ([]string, error) {
	var resp struct {
		Items []string `json:"items"`
	}
	if _, err := c.do(ctx, call{op: "legal_codes", method: http.MethodGet, path: "/legal-codes"}, &resp); err != nil {
		return nil, err
	}
	return resp.Items, nil
}

// Articles searches articles of code by number or text. limit zero uses the relay default.
func (c *Client) Articles(ctx context.Context, code, term string, limit int) (ArticlePage, error) {
	q := url.Values{}
	if term != "" {
		q.Set("q", term)
	}
	if limit != 0 {
		q.Set("limit", strconv.Itoa(limit))
	}

	var p ArticlePage
	_, err := c.do(ctx, call{
		op:     "articles",
		method: http.MethodGet,
		path:   "/legal-codes/" + url.PathEscape(code) + "/articles",
		query:  q,
	}, &p)
	if err != nil {
		return ArticlePage{}, err
	}
	return p, nil
}

// Session is a hosted payment page.
type Session struct {
	URL       string `json:"url"`
	SessionID string `json:"session_id"`
}

// Checkout opens a subscription checkout for the token's user. An empty plan uses the default plan.
func (c *Client) Checkout(ctx context.Context, plan string) (Session, error) {
	body := struct {
		Plan string `json:"plan,omitempty"`
	}{Plan: plan}

	var s Session
	_, err := c.do(ctx, call{op: "checkout", method: http.MethodPost, path: "/checkout", body: body, auth: true}, &s)
	if err != nil {
		return Session{}, err
	}
	return s, nil
}

// CustomerPortal opens the billing portal for the token's user.
func (c *Client) CustomerPortal(ctx context.Context) (string, error) {
	var resp struct {
		URL string `json:"url"`
	}
	_, err := c.do(ctx, call{op: "customer_portal", method: http.MethodPost, path: "/customer-portal", auth: true}, &resp)
	if err != nil {
		return "", err
	}
	return resp.URL, nil
}
