package repository

import (
	"context"

	"content-recsys/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// likeProgressInterval is how many like pairs are consumed between progress
// log lines while the feed stream loads.
const likeProgressInterval = 500_000

type FeedRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewFeedRepository(db *pgxpool.Pool, logger *zap.Logger) *FeedRepository {
	return &FeedRepository{
		db:     db,
		logger: logger,
	}
}

// ForEachLikedPair streams every distinct (user_id, post_id) like pair to fn.
// The feed table is the one dataset too large to materialize as rows; pgx
// streams the result set, so peak memory is whatever the caller's index
// grows to, independent of row count.
func (r *FeedRepository) ForEachLikedPair(ctx context.Context, fn func(userID, postID int64) error) error {
	query := squirrel.Select("user_id", "post_id").
		Options("DISTINCT").
		From("feed_data").
		Where(squirrel.Eq{"action": "like"}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return err
	}
	defer rows.Close()

	var count int64
	for rows.Next() {
		var userID, postID int64
		if err := rows.Scan(&userID, &postID); err != nil {
			return err
		}
		if err := fn(userID, postID); err != nil {
			return err
		}

		count++
		if count%likeProgressInterval == 0 {
			r.logger.Info("Loading like pairs", zap.Int64("rows", count))
		}
	}

	return rows.Err()
}

// InsertFeedEvents batch-inserts feed events (seeder only).
func (r *FeedRepository) InsertFeedEvents(ctx context.Context, events []models.FeedEvent) error {
	if len(events) == 0 {
		return nil
	}

	builder := squirrel.Insert("feed_data").
		Columns("user_id", "post_id", "action", "target", "timestamp").
		PlaceholderFormat(squirrel.Dollar)

	for _, e := range events {
		builder = builder.Values(e.UserID, e.PostID, e.Action, e.Target, e.Timestamp)
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}
