package session

// State is the authentication state of the client
type State int

const (
	// StateUnauthenticated means no access token is applied
	StateUnauthenticated State = iota
	// StateAuthenticated means an access token is stored and applied to outgoing requests
	StateAuthenticated
)

func (s State) String() string {
	if s == StateAuthenticated {
		return "authenticated"
	}
	return "unauthenticated"
}
