package common

const (
	// Credential repository keys. The two are always written and cleared
	// together; a session exists iff both are present.
	TokenKey = "token"
	UserKey  = "user"
)
