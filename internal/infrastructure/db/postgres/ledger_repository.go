package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ecoscan/ewaste-api/internal/core/domain"
	"github.com/ecoscan/ewaste-api/internal/core/ports"
)

// maxHistoryLimit bounds any history query regardless of what the caller asks
// for; the ledger is append-only and grows without bound.
const maxHistoryLimit = 50

// LedgerRepository persists the append-only classification ledger.
type LedgerRepository struct {
	pool *pgxpool.Pool
}

func NewLedgerRepository(pool *pgxpool.Pool) *LedgerRepository {
	return &LedgerRepository{pool: pool}
}

func (r *LedgerRepository) Insert(ctx context.Context, in ports.RecordInput) (int64, error) {
	const query = `
		INSERT INTO classification_history (user_id, image_path, predicted_class, confidence)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	var id int64
	err := r.pool.QueryRow(ctx, query,
		in.UserID,
		in.ImagePath,
		in.PredictedClass,
		domain.ClampConfidence(in.Confidence),
	).Scan(&id)
	if err != nil {
		if isPgError(err, codeForeignKeyViolation) {
			return 0, domain.ErrUserNotFound
		}
		return 0, fmt.Errorf("insert classification: %w", err)
	}

	return id, nil
}

func (r *LedgerRepository) History(ctx context.Context, userID int64, limit int) ([]domain.ClassificationRecord, error) {
	if limit <= 0 || limit > maxHistoryLimit {
		limit = maxHistoryLimit
	}

	const query = `
		SELECT id, user_id, image_path, predicted_class, confidence, timestamp
		FROM classification_history
		WHERE user_id = $1
		ORDER BY timestamp DESC, id DESC
		LIMIT $2
	`

	rows, err := r.pool.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	records := make([]domain.ClassificationRecord, 0, limit)
	for rows.Next() {
		var rec domain.ClassificationRecord
		var conf legacyConfidence
		if err := rows.Scan(&rec.ID, &rec.UserID, &rec.ImagePath, &rec.PredictedClass, &conf, &rec.Timestamp); err != nil {
			return nil, fmt.Errorf("scan history row: %w", err)
		}
		rec.Confidence = float64(conf)
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate history: %w", err)
	}

	return records, nil
}

func (r *LedgerRepository) Stats(ctx context.Context, userID int64) (domain.Stats, error) {
	const aggQuery = `
		SELECT COUNT(*),
		       COUNT(DISTINCT predicted_class),
		       COALESCE(AVG(confidence), 0)
		FROM classification_history
		WHERE user_id = $1
	`

	var stats domain.Stats
	err := r.pool.QueryRow(ctx, aggQuery, userID).Scan(
		&stats.TotalCount,
		&stats.UniqueCategoryCount,
		&stats.AverageConfidence,
	)
	if err != nil {
		return domain.Stats{}, fmt.Errorf("query stats: %w", err)
	}

	if stats.TotalCount == 0 {
		return stats, nil
	}

	// Modal category: most frequent label, ties broken by earliest insertion
	// so the result is deterministic.
	const modalQuery = `
		SELECT predicted_class
		FROM classification_history
		WHERE user_id = $1
		GROUP BY predicted_class
		ORDER BY COUNT(*) DESC, MIN(id) ASC
		LIMIT 1
	`

	if err := r.pool.QueryRow(ctx, modalQuery, userID).Scan(&stats.ModalCategory); err != nil {
		return domain.Stats{}, fmt.Errorf("query modal category: %w", err)
	}

	return stats, nil
}

func (r *LedgerRepository) Count(ctx context.Context, userID int64) (int64, error) {
	const query = `SELECT COUNT(*) FROM classification_history WHERE user_id = $1`

	var n int64
	if err := r.pool.QueryRow(ctx, query, userID).Scan(&n); err != nil {
		return 0, fmt.Errorf("count classifications: %w", err)
	}
	return n, nil
}

func (r *LedgerRepository) CountSince(ctx context.Context, userID int64, since time.Time) (int64, error) {
	const query = `
		SELECT COUNT(*)
		FROM classification_history
		WHERE user_id = $1 AND timestamp >= $2
	`

	var n int64
	if err := r.pool.QueryRow(ctx, query, userID, since).Scan(&n); err != nil {
		return 0, fmt.Errorf("count recent classifications: %w", err)
	}
	return n, nil
}
