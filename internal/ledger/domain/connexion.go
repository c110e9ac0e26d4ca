package domain

import "time"

// ConnexionAction is a login/logout event type.
type ConnexionAction string

const (
	ConnexionLogin  ConnexionAction = "login"
	ConnexionLogout ConnexionAction = "logout"
)

// Valid reports whether a is a known connexion action.
func (a ConnexionAction) Valid() bool {
	return a == ConnexionLogin || a == ConnexionLogout
}

// ConnexionEvent is one line of the append-only login/logout trail,
// kept separate from the business audit log. Username is denormalized
// so the trail survives user changes.
type ConnexionEvent struct {
	ID         string
	UserID     string
	Username   string
	Action     ConnexionAction
	DateAction time.Time
}
