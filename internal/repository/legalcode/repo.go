// Package legalcode reads legal-code article tables from Postgres.
package legalcode

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/kailas-cloud/lexrelay/internal/domain/legalcode"
)

// articleRow maps the columns shared by every legal-code table.
type articleRow struct {
	ID     int64  `gorm:"column:id"`
	Number string `gorm:"column:numero_artigo"`
	Text   string `gorm:"column:artigo"`
}

// Repo implements the legal-code article reader with gorm.
type Repo struct {
	db *gorm.DB
}

// New creates a legal-code repository.
func New(db *gorm.DB) *Repo {
	return &Repo{db: db}
}

// Articles returns up to q.Limit() rows of table matching q.Term(), ordered by id,
// and the total number of matching rows.
func (r *Repo) Articles(ctx context.Context, table string, q legalcode.Query) ([]legalcode.Article, int64, error) {
	tx := filtered(r.db.WithContext(ctx), table, q.Term()).Session(&gorm.Session{})

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count %s: %w", q.Code(), err)
	}
	if total == 0 {
		return []legalcode.Article{}, 0, nil
	}

	var rows []articleRow
	if err := page(tx, q.Limit()).Find(&rows).Error; err != nil {
		return nil, 0, fmt.Errorf("select %s: %w", q.Code(), err)
	}

	out := make([]legalcode.Article, len(rows))
	for i, row := range rows {
		out[i] = legalcode.Article{ID: row.ID, Number: strings.TrimSpace(row.Number), Text: row.Text}
	}
	return out, total, nil
}

// filtered scopes tx to table, matching the article number exactly or the text by substring.
func filtered(tx *gorm.DB, table, term string) *gorm.DB {
	tx = tx.Table("?", clause.Table{Name: table})
	if term == "" {
		return tx
	}
	return tx.Where("CAST(numero_artigo AS TEXT) = ? OR artigo ILIKE ?", term, "%"+escapeLike(term)+"%")
}

func page(tx *gorm.DB, limit int) *gorm.DB {
	return tx.Select("id", "numero_artigo", "artigo").Order("id").Limit(limit)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike makes LIKE wildcards in s match literally.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
