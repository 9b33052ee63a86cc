// Package route decides which view a request lands on, given whether a
// user is logged in.
package route

import "strings"

type Route string

const (
	Login     Route = "/login"
	Register  Route = "/register"
	Dashboard Route = "/dashboard"
	Market    Route = "/market"
	Portfolio Route = "/portfolio"
)

// Default is where "/" and unknown paths go.
const Default = Dashboard

var gated = map[Route]bool{
	Dashboard: true,
	Market:    true,
	Portfolio: true,
}

var public = map[Route]bool{
	Login:    true,
	Register: true,
}

// Normalize maps a path to a known route, falling back to Default.
func Normalize(path string) Route {
	p := "/" + strings.Trim(strings.ToLower(strings.TrimSpace(path)), "/")
	r := Route(p)
	if gated[r] || public[r] {
		return r
	}
	return Default
}

// Resolve returns the route to render for path. Gated views send logged-out
// users to Login; the login and register views send logged-in users to
// Dashboard.
func Resolve(path string, authenticated bool) Route {
	r := Normalize(path)
	switch {
	case gated[r] && !authenticated:
		return Login
	case public[r] && authenticated:
		return Dashboard
	default:
		return r
	}
}

// Redirected reports whether Resolve moved the request elsewhere.
func Redirected(path string, authenticated bool) (Route, bool) {
	to := Resolve(path, authenticated)
	return to, to != Normalize(path)
}

// Gated reports whether r needs a logged-in user.
func (r Route) Gated() bool { return gated[r] }
