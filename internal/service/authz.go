package service

import "socialfeed/internal/models"

// CanModify reports whether actor may edit or delete content written by
// authorID. Anonymous actors may modify nothing.
func CanModify(actor models.Actor, authorID uint) bool {
	return actor.IsAuthenticated() && actor.UserID == authorID
}

func requireActor(actor models.Actor) error {
	if !actor.IsAuthenticated() {
		return models.NewUnauthenticatedError()
	}
	return nil
}
