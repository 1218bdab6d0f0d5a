package models

import "time"

// FeedEvent is one row of the feed_data table. The service only reads
// projections of this table; full rows exist for the seeder.
type FeedEvent struct {
	UserID    int64     `db:"user_id"`
	PostID    int64     `db:"post_id"`
	Action    string    `db:"action"`
	Target    int       `db:"target"`
	Timestamp time.Time `db:"timestamp"`
}
