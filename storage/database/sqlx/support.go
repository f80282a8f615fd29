package sqlxrepos

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/campushub/support-service/core"
	"github.com/campushub/support-service/core/support"
)

const table = "support"

var (
	columns = []string{
		"id", "title", "description", "file_url", "level", "subject",
		"owner_id", "submitted_on", "status", "validated_on", "reviewer_note",
	}
	psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

	defaultOrdering = core.DBOrdering{Field: "submitted_on"} // DESC

	// orderable whitelists the columns a caller-supplied ordering may touch;
	// ORDER BY clauses cannot be parameterized.
	orderable = map[string]bool{
		"title":        true,
		"level":        true,
		"subject":      true,
		"owner_id":     true,
		"submitted_on": true,
		"status":       true,
		"validated_on": true,
	}
)

// orderBy renders ordering as ORDER BY clauses, dropping unknown fields.
func orderBy(ordering []core.DBOrdering) []string {
	clauses := make([]string, 0, len(ordering))
	for _, ord := range ordering {
		if orderable[ord.Field] {
			clauses = append(clauses, ord.String())
		}
	}
	if len(clauses) == 0 {
		clauses = append(clauses, defaultOrdering.String())
	}
	return clauses
}

// supportRow is the support table row; mapped to/from support.Support.
type supportRow struct {
	ID           string      `db:"id"`
	Title        string      `db:"title"`
	Description  string      `db:"description"`
	FileURL      string      `db:"file_url"`
	Level        string      `db:"level"`
	Subject      string      `db:"subject"`
	OwnerID      int         `db:"owner_id"`
	SubmittedOn  time.Time   `db:"submitted_on"`
	Status       string      `db:"status"`
	ValidatedOn  null.Time   `db:"validated_on"`
	ReviewerNote null.String `db:"reviewer_note"`
}

type supportRepository struct {
	db   *sqlx.DB        // read path; struct scanning
	exec core.DBExecutor // write path
}

var _ support.Repository = (*supportRepository)(nil) // interface compliance check

func NewSupportRepository(db *sql.DB, driverName string) *supportRepository {
	return &supportRepository{db: sqlx.NewDb(db, driverName), exec: db}
}

func (repo supportRepository) row(sup support.Support) supportRow {
	return supportRow{
		ID:           sup.ID,
		Title:        sup.Title,
		Description:  sup.Description,
		FileURL:      sup.FileURL,
		Level:        sup.Level,
		Subject:      sup.Subject,
		OwnerID:      sup.OwnerID,
		SubmittedOn:  sup.SubmittedOn.UTC(),
		Status:       string(sup.Status),
		ValidatedOn:  sup.ValidatedOn,
		ReviewerNote: sup.ReviewerNote,
	}
}

func (repo supportRepository) unrow(row supportRow) support.Support {
	return support.Support{
		ID:           row.ID,
		Title:        row.Title,
		Description:  row.Description,
		FileURL:      row.FileURL,
		Level:        row.Level,
		Subject:      row.Subject,
		OwnerID:      row.OwnerID,
		SubmittedOn:  row.SubmittedOn,
		Status:       support.Status(row.Status),
		ValidatedOn:  row.ValidatedOn,
		ReviewerNote: row.ReviewerNote,
	}
}

func (repo supportRepository) unrowSlice(rows []supportRow) []support.Support {
	sups := make([]support.Support, 0, len(rows))
	for _, row := range rows {
		sups = append(sups, repo.unrow(row))
	}
	return sups
}

// trapErr maps psql "no rows" to support.ErrNotFound and a dead connection
// to a shutdown error so the server stops serving instead of failing every
// request.
func (repo supportRepository) trapErr(err error, msg string) error {
	if err == sql.ErrNoRows {
		return support.ErrNotFound
	}
	if errors.Cause(err) == driver.ErrBadConn {
		return core.NewShutdownError(msg + ": " + err.Error())
	}
	return errors.Wrap(err, msg)
}

func (repo supportRepository) CreateSupport(ctx context.Context, sup support.Support) (support.Support, error) {
	row := repo.row(sup)
	q, args, err := psql.Insert(table).
		Columns(columns...).
		Values(
			row.ID, row.Title, row.Description, row.FileURL, row.Level, row.Subject,
			row.OwnerID, row.SubmittedOn, row.Status, row.ValidatedOn, row.ReviewerNote,
		).
		ToSql()
	if err != nil {
		return support.Support{}, errors.Wrap(err, "building insert")
	}
	if _, err = repo.exec.ExecContext(ctx, q, args...); err != nil {
		return support.Support{}, repo.trapErr(err, "inserting support")
	}
	return repo.unrow(row), nil
}

func (repo supportRepository) QueryAllSupports(ctx context.Context, ordering []core.DBOrdering) ([]support.Support, error) {
	q, args, err := psql.Select(columns...).From(table).OrderBy(orderBy(ordering)...).ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "building select")
	}
	var rows []supportRow
	if err = repo.db.SelectContext(ctx, &rows, q, args...); err != nil {
		return nil, repo.trapErr(err, "querying supports")
	}
	return repo.unrowSlice(rows), nil
}

func (repo supportRepository) GetSupportByID(ctx context.Context, id string) (support.Support, error) {
	q, args, err := psql.Select(columns...).From(table).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return support.Support{}, errors.Wrap(err, "building select")
	}
	var row supportRow
	if err = repo.db.GetContext(ctx, &row, q, args...); err != nil {
		return support.Support{}, repo.trapErr(err, "getting support")
	}
	return repo.unrow(row), nil
}

func (repo supportRepository) FilterSupportsByOwner(ctx context.Context, ownerID int, ordering []core.DBOrdering) ([]support.Support, error) {
	return repo.filter(ctx, sq.Eq{"owner_id": ownerID}, ordering)
}

func (repo supportRepository) FilterSupportsByStatus(ctx context.Context, status support.Status, ordering []core.DBOrdering) ([]support.Support, error) {
	return repo.filter(ctx, sq.Eq{"status": string(status)}, ordering)
}

func (repo supportRepository) filter(ctx context.Context, pred interface{}, ordering []core.DBOrdering) ([]support.Support, error) {
	q, args, err := psql.Select(columns...).From(table).Where(pred).OrderBy(orderBy(ordering)...).ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "building select")
	}
	var rows []supportRow
	if err = repo.db.SelectContext(ctx, &rows, q, args...); err != nil {
		return nil, repo.trapErr(err, "filtering supports")
	}
	return repo.unrowSlice(rows), nil
}

func (repo supportRepository) UpdateSupport(ctx context.Context, sup support.Support) (support.Support, error) {
	row := repo.row(sup)
	q, args, err := psql.Update(table).
		Set("title", row.Title).
		Set("description", row.Description).
		Set("file_url", row.FileURL).
		Set("level", row.Level).
		Set("subject", row.Subject).
		Set("status", row.Status).
		Set("validated_on", row.ValidatedOn).
		Set("reviewer_note", row.ReviewerNote).
		Where(sq.Eq{"id": row.ID}).
		ToSql()
	if err != nil {
		return support.Support{}, errors.Wrap(err, "building update")
	}

	res, err := repo.exec.ExecContext(ctx, q, args...)
	if err != nil {
		return support.Support{}, repo.trapErr(err, "updating support")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return support.Support{}, support.ErrNotFound
	}
	return repo.unrow(row), nil
}

func (repo supportRepository) DeleteSupport(ctx context.Context, id string) error {
	q, args, err := psql.Delete(table).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return errors.Wrap(err, "building delete")
	}
	res, err := repo.exec.ExecContext(ctx, q, args...)
	if err != nil {
		return repo.trapErr(err, "deleting support")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return support.ErrNotFound
	}
	return nil
}
