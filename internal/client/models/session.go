package models

import "time"

// Session pairs a bearer token with the user it authenticates. The session
// manager owns the only instance; login replaces it and logout clears it
// atomically, it is never partially updated.
type Session struct {
	Token         string
	User          *User
	EstablishedAt time.Time
}
