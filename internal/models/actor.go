package models

// Actor is the identity attached to an inbound request. The zero value is
// the anonymous actor.
type Actor struct {
	UserID uint
}

// Anonymous returns an actor with no identity.
func Anonymous() Actor {
	return Actor{}
}

// ActorFor returns an authenticated actor for the given user.
func ActorFor(userID uint) Actor {
	return Actor{UserID: userID}
}

// IsAuthenticated reports whether the request carried a verified identity.
func (a Actor) IsAuthenticated() bool {
	return a.UserID != 0
}
