package models

// User is one row of the user_data table plus the aggregated historical like
// count joined on at load time.
type User struct {
	ID       int64  `db:"user_id"`
	Gender   int    `db:"gender"`
	Age      int    `db:"age"`
	Country  string `db:"country"`
	City     string `db:"city"`
	ExpGroup int    `db:"exp_group"`
	OS       string `db:"os"`
	Source   string `db:"source"`

	// TotalLikes is COUNT of positive interactions before the training
	// cutoff, 0 for users with no history.
	TotalLikes int
}
