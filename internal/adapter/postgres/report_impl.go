package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/user/crm-service/internal/entity"
)

const reportColumns = `id, name, url, filename, originalname, status, standard,
	company, year, metrics, summary, esg_score, uploaded_at`

// ReportRepoImpl implements repository.ReportRepository on PostgreSQL.
type ReportRepoImpl struct {
	db *pgxpool.Pool
}

func NewReportRepo(db *pgxpool.Pool) *ReportRepoImpl {
	return &ReportRepoImpl{db: db}
}

func scanReport(row pgx.Row) (*entity.Report, error) {
	var rp entity.Report
	err := row.Scan(
		&rp.ID,
		&rp.Name,
		&rp.URL,
		&rp.Filename,
		&rp.OriginalName,
		&rp.Status,
		&rp.Standard,
		&rp.Company,
		&rp.Year,
		&rp.Metrics,
		&rp.Summary,
		&rp.ESGScore,
		&rp.UploadedAt,
	)
	if err != nil {
		return nil, translateErr(err)
	}
	return &rp, nil
}

func (r *ReportRepoImpl) List(ctx context.Context) ([]*entity.Report, error) {
	rows, err := r.db.Query(ctx, `SELECT `+reportColumns+` FROM reports ORDER BY id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	reports := []*entity.Report{}
	for rows.Next() {
		rp, err := scanReport(rows)
		if err != nil {
			return nil, err
		}
		reports = append(reports, rp)
	}
	return reports, rows.Err()
}

func (r *ReportRepoImpl) Get(ctx context.Context, id int64) (*entity.Report, error) {
	return scanReport(r.db.QueryRow(ctx, `SELECT `+reportColumns+` FROM reports WHERE id = $1`, id))
}

func (r *ReportRepoImpl) Create(ctx context.Context, rp *entity.Report) (*entity.Report, error) {
	return scanReport(r.db.QueryRow(ctx,
		`INSERT INTO reports (name, url, filename, originalname, status, standard, company, year, metrics, summary, esg_score, uploaded_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		 RETURNING `+reportColumns,
		rp.Name,
		rp.URL,
		rp.Filename,
		rp.OriginalName,
		rp.Status,
		rp.Standard,
		rp.Company,
		rp.Year,
		rp.Metrics,
		rp.Summary,
		rp.ESGScore,
		rp.UploadedAt,
	))
}

// Update applies the non-nil fields of patch.
func (r *ReportRepoImpl) Update(ctx context.Context, id int64, patch entity.ReportPatch) (*entity.Report, error) {
	return scanReport(r.db.QueryRow(ctx,
		`UPDATE reports SET
			company   = COALESCE($1, company),
			year      = COALESCE($2, year),
			esg_score = COALESCE($3, esg_score),
			metrics   = COALESCE($4, metrics),
			summary   = COALESCE($5, summary),
			status    = COALESCE($6, status),
			standard  = COALESCE($7, standard)
		 WHERE id = $8
		 RETURNING `+reportColumns,
		patch.Company, patch.Year, patch.ESGScore, patch.Metrics, patch.Summary, patch.Status, patch.Standard, id,
	))
}

func (r *ReportRepoImpl) Delete(ctx context.Context, id int64) error {
	return execOne(ctx, r.db, `DELETE FROM reports WHERE id = $1`, id)
}

func (r *ReportRepoImpl) ESGBreakdown(ctx context.Context) ([]*entity.ESGBreakdownItem, error) {
	rows, err := r.db.Query(ctx,
		`SELECT company, AVG(esg_score), COUNT(*)
		 FROM reports
		 WHERE company IS NOT NULL AND esg_score IS NOT NULL
		 GROUP BY company
		 ORDER BY AVG(esg_score) DESC, company`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []*entity.ESGBreakdownItem{}
	for rows.Next() {
		var it entity.ESGBreakdownItem
		if err := rows.Scan(&it.Company, &it.AverageScore, &it.Reports); err != nil {
			return nil, err
		}
		items = append(items, &it)
	}
	return items, rows.Err()
}
