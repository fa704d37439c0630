package entity

import "fmt"

// Outcome is the success result of follow and unfollow. Reaching a state
// that already held is still a success.
type Outcome int

const (
	NowFollowing Outcome = iota
	AlreadyFollowing
	Unfollowed
	NotFollowing
)

func (o Outcome) Message(followeeID int64) string {
	switch o {
	case AlreadyFollowing:
		return fmt.Sprintf("You are already following user %d", followeeID)
	case Unfollowed:
		return fmt.Sprintf("You unfollowed user %d", followeeID)
	case NotFollowing:
		return fmt.Sprintf("You are not following user %d", followeeID)
	default:
		return fmt.Sprintf("You are now following user %d", followeeID)
	}
}

// Stats are the follow counts of one user.
type Stats struct {
	UserID    int64 `json:"userid"`
	Followers int64 `json:"followers"`
	Following int64 `json:"following"`
}
