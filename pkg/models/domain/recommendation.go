package domain

// Recommendation is the persisted output of one orchestration run: the
// ranked card ids selected for a user. A new run inserts a new record;
// existing records are never updated.
type Recommendation struct {
	UserID  string
	CardIDs []int64
}
