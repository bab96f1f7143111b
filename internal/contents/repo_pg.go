package contents

import (
	"context"
	"database/sql"
	"errors"

	"content-backend/internal/analysis"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

const contentColumns = `id, user_id, body, summary, sentiment, summary_source, sentiment_source, created_at, updated_at`

func (r *PGRepo) Create(ctx context.Context, content Content) error {
	const query = `
INSERT INTO contents (id, user_id, body, created_at, updated_at)
VALUES ($1, $2, $3, now(), now())`
	_, err := r.DB.ExecContext(ctx, query,
		content.ID,
		content.UserID,
		content.Text,
	)
	return err
}

func (r *PGRepo) GetByID(ctx context.Context, contentID string) (Content, error) {
	const query = `
SELECT ` + contentColumns + `
FROM contents
WHERE id = $1
LIMIT 1`
	return scanContent(r.DB.QueryRowContext(ctx, query, contentID))
}

func (r *PGRepo) GetForUser(ctx context.Context, userID, contentID string) (Content, error) {
	const query = `
SELECT ` + contentColumns + `
FROM contents
WHERE id = $1 AND user_id = $2
LIMIT 1`
	return scanContent(r.DB.QueryRowContext(ctx, query, contentID, userID))
}

func (r *PGRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]Content, int, error) {
	var total int
	if err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM contents WHERE user_id = $1`, userID).Scan(&total); err != nil {
		return nil, 0, err
	}

	const query = `
SELECT ` + contentColumns + `
FROM contents
WHERE user_id = $1
ORDER BY created_at DESC, id DESC
LIMIT $2 OFFSET $3`
	rows, err := r.DB.QueryContext(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	contents := make([]Content, 0)
	for rows.Next() {
		content, err := scanContentRow(rows)
		if err != nil {
			return nil, 0, err
		}
		contents = append(contents, content)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return contents, total, nil
}

func (r *PGRepo) Delete(ctx context.Context, userID, contentID string) error {
	const query = `DELETE FROM contents WHERE id = $1 AND user_id = $2`
	res, err := r.DB.ExecContext(ctx, query, contentID, userID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// ApplyAnalysis overwrites the analysis fields. Running it twice for the
// same content leaves the last result in place.
func (r *PGRepo) ApplyAnalysis(ctx context.Context, contentID string, result analysis.Result) error {
	const query = `
UPDATE contents
SET summary = $2,
    sentiment = $3,
    summary_source = $4,
    sentiment_source = $5,
    updated_at = now()
WHERE id = $1`
	res, err := r.DB.ExecContext(ctx, query,
		contentID,
		result.Summary,
		string(result.Sentiment),
		string(result.SummarySource),
		string(result.SentimentSource),
	)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanContent(row *sql.Row) (Content, error) {
	content, err := scanContentRow(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Content{}, ErrNotFound
		}
		return Content{}, err
	}
	return content, nil
}

func scanContentRow(row rowScanner) (Content, error) {
	var content Content
	var summary sql.NullString
	var sentiment sql.NullString
	var summarySource sql.NullString
	var sentimentSource sql.NullString
	err := row.Scan(
		&content.ID,
		&content.UserID,
		&content.Text,
		&summary,
		&sentiment,
		&summarySource,
		&sentimentSource,
		&content.CreatedAt,
		&content.UpdatedAt,
	)
	if err != nil {
		return Content{}, err
	}
	if summary.Valid {
		content.Summary = &summary.String
	}
	if sentiment.Valid {
		label := analysis.Sentiment(sentiment.String)
		content.Sentiment = &label
	}
	if summarySource.Valid {
		source := analysis.Source(summarySource.String)
		content.SummarySource = &source
	}
	if sentimentSource.Valid {
		source := analysis.Source(sentimentSource.String)
		content.SentimentSource = &source
	}
	return content, nil
}
