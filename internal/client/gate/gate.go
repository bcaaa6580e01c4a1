package gate

// SessionChecker reports whether a session is currently active.
type SessionChecker interface {
	IsAuthenticated() bool
}

// Gate guards protected views. It holds no state of its own: every
// Check consults the session store anew, so a logout takes effect on
// the very next navigation attempt.
type Gate struct {
	session     SessionChecker
	loginTarget string
}

func New(session SessionChecker, loginTarget string) Gate {
	return Gate{session: session, loginTarget: loginTarget}
}

// Check reports whether the protected view may render; when it may
// not, redirect names the view to divert to.
func (g Gate) Check() (allowed bool, redirect string) {
	if g.session.IsAuthenticated() {
		return true, ""
	}
	return false, g.loginTarget
}
