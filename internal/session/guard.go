package session

// Routes the guard knows about.
const (
	RouteDashboard  = "/"
	RouteLogin      = "/login"
	RouteRegister   = "/register"
	RouteOnboarding = "/onboarding"
	RouteSettings   = "/settings"
)

// Decision is the guard's verdict for a navigation attempt.
type Decision struct {
	Allow      bool
	RedirectTo string
}

// Guard enforces route access from the persisted token state. Protected
// routes without a token redirect to the login page; the auth pages redirect
// signed-in users back to the dashboard.
func Guard(path string, authenticated bool) Decision {
	public := path == RouteLogin || path == RouteRegister

	if !authenticated && !public {
		return Decision{RedirectTo: RouteLogin}
	}
	if authenticated && public {
		return Decision{RedirectTo: RouteDashboard}
	}
	return Decision{Allow: true}
}
