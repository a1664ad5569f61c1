// Package query builds the Elasticsearch request body sent to the jurisprudence API.
package query

// Defaults used when a builder field is left empty.
const (
	DefaultSize           = 50
	DefaultTimestampField = "dataAjuizamento"
	ScoreField            = "_score"
	OrderDesc             = "desc"
	MatchAllFields        = "*"
	MatchTypeBestFields   = "best_fields"
	FuzzinessAuto         = "AUTO"
)

// Body is the upstream _search payload.
type Body struct {
	Size  int          `json:"size"`
	Query Query        `json:"query"`
	Sort  []SortClause `json:"sort"`
}

// Query wraps the single full-text clause.
type Query struct {
	MultiMatch MultiMatch `json:"multi_match"`
}

// MultiMatch is a fuzzy match of the term across every indexed field.
type MultiMatch struct {
	Query     string   `json:"query"`
	Fields    []string `json:"fields"`
	Type      string   `json:"type"`
	Fuzziness string   `json:"fuzziness"`
}

// SortClause maps one field to its order, e.g. {"_score": {"order": "desc"}}.
type SortClause map[string]SortOrder

// SortOrder is the order of a sort clause.
type SortOrder struct {
	Order string `json:"order"`
}

// Builder produces query bodies with fixed size and timestamp field.
type Builder struct {
	size           int
	timestampField string
}

// NewBuilder creates a Builder. Zero values fall back to defaults.
func NewBuilder(size int, timestampField string) Builder {
	if size <= 0 {
		size = DefaultSize
	}
	if timestampField == "" {
		timestampField = DefaultTimestampField
	}
	return Builder{size: size, timestampField: timestampField}
}

// Build returns a fresh body for term: relevance first, then most recent filing.
func (b Builder) Build(term string) Body {
	return Body{
		Size: b.size,
		Query: Query{MultiMatch: MultiMatch{
			Query:     term,
			Fields:    []string{MatchAllFields},
			Type:      MatchTypeBestFields,
			Fuzziness: FuzzinessAuto,
		}},
		Sort: []SortClause{
			{ScoreField: {Order: OrderDesc}},
			{b.timestampField: {Order: OrderDesc}},
		},
	}
}
