package flows

import "sync"

// Routes known to the client.
const (
	RouteHome      = "/"
	RouteLogin     = "/login"
	RouteRegister  = "/register"
	RouteDashboard = "/dashboard"
)

// Navigator moves the UI to another route.
type Navigator interface {
	Navigate(route string)
}

// Notifier shows a short transient message to the user.
type Notifier interface {
	Notify(msg string)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(msg string)

func (f NotifierFunc) Notify(msg string) { f(msg) }

// Router is a Navigator that remembers the current route. The optional
// listener runs after every change, outside the lock.
type Router struct {
	mu       sync.RWMutex
	current  string
	listener func(from, to string)
}

func NewRouter(start string, listener func(from, to string)) *Router {
	return &Router{current: start, listener: listener}
}

func (r *Router) Navigate(route string) {
	r.mu.Lock()
	from := r.current
	r.current = route
	r.mu.Unlock()

	if r.listener != nil && from != route {
		r.listener(from, route)
	}
}

func (r *Router) Current() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.current
}
