package view

// GuardState is the outcome of a route guard evaluation.
type GuardState int

const (
	GuardChecking GuardState = iota
	GuardAuthorized
	GuardRedirecting
)

func (s GuardState) String() string {
	switch s {
	case GuardAuthorized:
		return "authorized"
	case GuardRedirecting:
		return "redirecting"
	default:
		return "checking"
	}
}

// Authenticator is the part of the session the guard reads.
type Authenticator interface {
	IsAuthenticated() bool
}

// Guard decides, before anything is rendered, whether a protected view may
// be shown. Evaluation always starts from GuardChecking, so a session that
// logged out since the previous request is redirected on the next one.
type Guard struct {
	// LoginPath is where unauthenticated visitors are sent.
	LoginPath string
}

// Decision is a guard verdict plus where to go when redirecting.
type Decision struct {
	State    GuardState
	Redirect string
	// Replace is true for redirects: the protected location must not stay
	// in history.
	Replace bool
}

// Evaluate runs the guard state machine for one request.
func (g Guard) Evaluate(session Authenticator) Decision {
	state := GuardChecking
	for {
		switch state {
		case GuardChecking:
			if session != nil && session.IsAuthenticated() {
				state = GuardAuthorized
			} else {
				state = GuardRedirecting
			}
		case GuardAuthorized:
			return Decision{State: GuardAuthorized}
		case GuardRedirecting:
			path := g.LoginPath
			if path == "" {
				path = "/"
			}
			return Decision{State: GuardRedirecting, Redirect: path, Replace: true}
		}
	}
}
