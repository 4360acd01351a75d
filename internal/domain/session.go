package domain

// Session is the authenticated caller as seen by handlers. It is built by
// the session middleware from a verified token plus a directory lookup and
// passed explicitly; handlers never read ambient auth state.
type Session struct {
	UserID string
	Name   string
	Email  string
	Role   Role
	Active bool
}
