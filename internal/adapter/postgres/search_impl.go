package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/user/crm-service/internal/entity"
	"golang.org/x/sync/errgroup"
)

// searchQueries lists one ILIKE query per searchable table. Each returns
// (id, title, subtitle).
var searchQueries = []struct {
	kind  string
	query string
}{
	{entity.SearchTypeCompany, `SELECT id, name, industry FROM companies
		WHERE name ILIKE $1 OR industry ILIKE $1 ORDER BY id LIMIT $2`},
	{entity.SearchTypeContact, `SELECT id, name, company FROM contacts
		WHERE name ILIKE $1 OR email ILIKE $1 OR phone ILIKE $1 OR company ILIKE $1
		   OR role ILIKE $1 OR designation ILIKE $1 OR linkedin ILIKE $1 ORDER BY id LIMIT $2`},
	{entity.SearchTypeLead, `SELECT id, name, status FROM leads
		WHERE name ILIKE $1 OR email ILIKE $1 OR company ILIKE $1 OR status ILIKE $1 ORDER BY id LIMIT $2`},
	{entity.SearchTypeReport, `SELECT id, COALESCE(NULLIF(originalname, ''), name), COALESCE(company, '') FROM reports
		WHERE company ILIKE $1 OR summary ILIKE $1 OR metrics ILIKE $1 OR originalname ILIKE $1 ORDER BY id LIMIT $2`},
	{entity.SearchTypeCompliance, `SELECT id, name, status FROM compliances
		WHERE name ILIKE $1 OR status ILIKE $1 OR notes ILIKE $1 ORDER BY id LIMIT $2`},
}

// SearchRepoImpl runs the global search across all CRM tables.
type SearchRepoImpl struct {
	db       *pgxpool.Pool
	perTable int
}

func NewSearchRepo(db *pgxpool.Pool, perTable int) *SearchRepoImpl {
	return &SearchRepoImpl{db: db, perTable: perTable}
}

// Search queries every table concurrently and concatenates the hits in the
// fixed table order above.
func (r *SearchRepoImpl) Search(ctx context.Context, query string) ([]entity.SearchResult, error) {
	pattern := "%" + escapeLike(query) + "%"
	buckets := make([][]entity.SearchResult, len(searchQueries))

	g, ctx := errgroup.WithContext(ctx)
	for i, sq := range searchQueries {
		g.Go(func() error {
			rows, err := r.db.Query(ctx, sq.query, pattern, r.perTable)
			if err != nil {
				return fmt.Errorf("search %s: %w", sq.kind, err)
			}
			defer rows.Close()
			for rows.Next() {
				res := entity.SearchResult{Type: sq.kind}
				if err := rows.Scan(&res.ID, &res.Title, &res.Subtitle); err != nil {
					return fmt.Errorf("scan %s: %w", sq.kind, err)
				}
				buckets[i] = append(buckets[i], res)
			}
			return rows.Err()
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	results := []entity.SearchResult{}
	for _, b := range buckets {
		results = append(results, b...)
	}
	return results, nil
}

// escapeLike neutralises LIKE wildcards in user input.
func escapeLike(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		if r == '%' || r == '_' || r == '\\' {
			out = append(out, '\\')
		}
		out = append(out, r)
	}
	return string(out)
}
