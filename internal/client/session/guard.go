package session

// Access classifies a route or command.
type Access int

const (
	// Public routes are open in every state.
	Public Access = iota
	// Protected routes need a signed-in user.
	Protected
	// GuestOnly routes (sign-in, sign-up, reset) make no sense once signed in.
	GuestOnly
)

type Decision int

const (
	Allow Decision = iota
	// Wait means the session is still loading; decide again later.
	Wait
	RedirectToSignIn
	RedirectToHome
)

func (d Decision) String() string {
	switch d {
	case Allow:
		return "allow"
	case Wait:
		return "wait"
	case RedirectToSignIn:
		return "redirect to sign-in"
	case RedirectToHome:
		return "redirect to home"
	default:
		return "unknown"
	}
}

// Guard decides whether a route with access a may be shown now.
func (c *Context) Guard(a Access) Decision {
	return Decide(c.Snapshot(), a)
}

// Decide is Guard over an explicit snapshot.
func Decide(s Snapshot, a Access) Decision {
	if s.IsLoading {
		return Wait
	}
	switch {
	case a == Protected && !s.IsAuthenticated:
		return RedirectToSignIn
	case a == GuestOnly && s.IsAuthenticated:
		return RedirectToHome
	default:
		return Allow
	}
}
