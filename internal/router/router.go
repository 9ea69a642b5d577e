// Package router maps paths to pages and enforces the login gate.
package router

import "strings"

// Route is a page path.
type Route string

const (
	Landing      Route = "/"
	Pricing      Route = "/precios"
	Registration Route = "/registro"
	Login        Route = "/login"
	Dashboard    Route = "/dashboard"
	Contacts     Route = "/contactos"
	Tasks        Route = "/tareas"
	Projects     Route = "/proyectos"
	Templates    Route = "/plantillas"
)

// Public pages render without an identity and without the shell.
var Public = []Route{Landing, Pricing, Registration, Login}

// Gated pages require an identity and render inside the shell, in
// sidebar order.
var Gated = []Route{Dashboard, Contacts, Tasks, Projects, Templates}

// Resolution is the outcome of routing a path.
type Resolution struct {
	// Route is the page to render.
	Route Route
	// Shell is true when the page is wrapped in the navigation shell.
	Shell bool
	// Redirected is true when Route differs from the requested path.
	Redirected bool
}

// Resolve decides which page to show for path given the login state.
// Gated pages redirect to /login without an identity, /login redirects to
// /dashboard with one, and unknown paths fall back to /.
func Resolve(path string, loggedIn bool) Resolution {
	requested := normalize(path)
	target := requested

	switch {
	case isGated(target) && !loggedIn:
		target = Login
	case target == Login && loggedIn:
		target = Dashboard
	case !isGated(target) && !isPublic(target):
		target = Landing
	}

	return Resolution{
		Route:      target,
		Shell:      isGated(target),
		Redirected: target != requested,
	}
}

// Label is the human name of a route.
func (r Route) Label() string {
	switch r {
	case Landing:
		return "Home"
	case Pricing:
		return "Pricing"
	case Registration:
		return "Sign up"
	case Login:
		return "Log in"
	case Dashboard:
		return "Dashboard"
	case Contacts:
		return "Contacts"
	case Tasks:
		return "Tasks"
	case Projects:
		return "Projects"
	case Templates:
		return "Templates"
	default:
		return string(r)
	}
}

func normalize(path string) Route {
	path = strings.TrimSpace(path)
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}
	if path == "" {
		return Landing
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	if len(path) > 1 {
		path = strings.TrimRight(path, "/")
		if path == "" {
			path = "/"
		}
	}
	return Route(path)
}

func isGated(r Route) bool {
	for _, g := range Gated {
		if g == r {
			return true
		}
	}
	return false
}

func isPublic(r Route) bool {
	for _, p := range Public {
		if p == r {
			return true
		}
	}
	return false
}
