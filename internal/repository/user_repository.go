package repository

import (
	"context"
	"time"

	"content-recsys/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// LikeCountCutoff is the fixed historical cutoff the model was trained with;
// the per-user like aggregate only counts interactions before it.
var LikeCountCutoff = time.Date(2021, time.December, 15, 0, 0, 0, 0, time.UTC)

type UserRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewUserRepository(db *pgxpool.Pool, logger *zap.Logger) *UserRepository {
	return &UserRepository{
		db:     db,
		logger: logger,
	}
}

// ListUsers loads the demographic attributes of every user. TotalLikes is
// left at zero; the store joins it on from CountHistoricalLikes.
func (r *UserRepository) ListUsers(ctx context.Context) ([]models.User, error) {
	query := squirrel.Select("user_id", "gender", "age", "country", "city", "exp_group", "os", "source").
		From("user_data").
		OrderBy("user_id").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.Gender, &u.Age, &u.Country, &u.City, &u.ExpGroup, &u.OS, &u.Source); err != nil {
			return nil, err
		}
		users = append(users, u)
	}

	return users, rows.Err()
}

// CountHistoricalLikes aggregates positive interactions per user before the
// cutoff. Users with no history are simply absent from the result.
func (r *UserRepository) CountHistoricalLikes(ctx context.Context, cutoff time.Time) (map[int64]int, error) {
	query := squirrel.Select("user_id", "COUNT(post_id) AS user_total_likes").
		From("feed_data").
		Where(squirrel.Lt{"timestamp": cutoff}).
		Where(squirrel.Eq{"target": 1}).
		GroupBy("user_id").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[int64]int)
	for rows.Next() {
		var userID int64
		var total int
		if err := rows.Scan(&userID, &total); err != nil {
			return nil, err
		}
		counts[userID] = total
	}

	return counts, rows.Err()
}

// InsertUsers batch-inserts users (seeder only).
func (r *UserRepository) InsertUsers(ctx context.Context, users []models.User) error {
	if len(users) == 0 {
		return nil
	}

	builder := squirrel.Insert("user_data").
		Columns("user_id", "gender", "age", "country", "city", "exp_group", "os", "source").
		PlaceholderFormat(squirrel.Dollar)

	for _, u := range users {
		builder = builder.Values(u.ID, u.Gender, u.Age, u.Country, u.City, u.ExpGroup, u.OS, u.Source)
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}
