package legalcode

import (
	"context"

	domlc "github.com/kailas-cloud/lexrelay/internal/domain/legalcode"
)

// ArticleReader reads article rows from a legal-code table.
type ArticleReader interface {
	Articles(ctx context.Context, table string, q domlc.Query) ([]domlc.Article, int64, error)
}
