package repository

import (
	"context"
	"fmt"

	"content-recsys/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type PostRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewPostRepository(db *pgxpool.Pool, logger *zap.Logger) *PostRepository {
	return &PostRepository{
		db:     db,
		logger: logger,
	}
}

// distanceColumns returns the distance_to_cluster_1..N column names in order.
func distanceColumns() []string {
	cols := make([]string, models.ClusterCount)
	for i := range cols {
		cols[i] = fmt.Sprintf("distance_to_cluster_%d", i+1)
	}
	return cols
}

// ListPosts loads the full post catalog (id, text, topic).
func (r *PostRepository) ListPosts(ctx context.Context) ([]models.Post, error) {
	query := squirrel.Select("post_id", "text", "topic").
		From("post_text_df").
		OrderBy("post_id").
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

	var posts []models.Post
	for rows.Next() {
		var p models.Post
		if err := rows.Scan(&p.ID, &p.Text, &p.Topic); err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}

	return posts, rows.Err()
}

// ListPostFeatures loads the static per-post model inputs. Rows come back in
// post_id order, which fixes the candidate order for ranking.
func (r *PostRepository) ListPostFeatures(ctx context.Context) ([]models.PostFeatures, error) {
	cols := append([]string{"post_id", "topic", "text_cluster"}, distanceColumns()...)
	query := squirrel.Select(cols...).
		From("post_clustering_features").
		OrderBy("post_id").
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

	var features []models.PostFeatures
	for rows.Next() {
		var pf models.PostFeatures
		dest := []any{&pf.PostID, &pf.Topic, &pf.TextCluster}
		for i := range pf.ClusterDistances {
			dest = append(dest, &pf.ClusterDistances[i])
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}
		features = append(features, pf)
	}

	return features, rows.Err()
}

// InsertPosts batch-inserts posts (seeder only).
func (r *PostRepository) InsertPosts(ctx context.Context, posts []models.Post) error {
	if len(posts) == 0 {
		return nil
	}

	builder := squirrel.Insert("post_text_df").
		Columns("post_id", "text", "topic").
		PlaceholderFormat(squirrel.Dollar)

	for _, p := range posts {
		builder = builder.Values(p.ID, p.Text, p.Topic)
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}

// InsertPostFeatures batch-inserts post feature rows (seeder only).
func (r *PostRepository) InsertPostFeatures(ctx context.Context, features []models.PostFeatures) error {
	if len(features) == 0 {
		return nil
	}

	cols := append([]string{"post_id", "topic", "text_cluster"}, distanceColumns()...)
	builder := squirrel.Insert("post_clustering_features").
		Columns(cols...).
		PlaceholderFormat(squirrel.Dollar)

	for _, pf := range features {
		values := []any{pf.PostID, pf.Topic, pf.TextCluster}
		for _, d := range pf.ClusterDistances {
			values = append(values, d)
		}
		builder = builder.Values(values...)
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}
