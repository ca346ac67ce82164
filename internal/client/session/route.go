package session

import "github.com/dmitrijs2005/guialocal/internal/roles"

// Route is an application location.
type Route string

const (
	RootPath               = "/"
	RouteBusinessDashboard Route = "/dashboard/empresa"
	RouteAdmin             Route = "/admin"
)

// ActivityEvents are the UI interactions that count as user activity.
var ActivityEvents = []string{"mousedown", "mousemove", "keypress", "scroll", "touchstart"}

// DecidePostLoginRoute tells where a freshly signed-in user should land.
// Only users still at the root are moved; plain users stay.
func DecidePostLoginRoute(role roles.Role, currentPath string) (Route, bool) {
	if currentPath != RootPath {
		return "", false
	}
	switch {
	case role.IsBusiness():
		return RouteBusinessDashboard, true
	case role.IsAdmin():
		return RouteAdmin, true
	}
	return "", false
}

// Navigator moves the UI to a route.
type Navigator interface {
	Navigate(r Route)
}

type NavigatorFunc func(Route)

func (f NavigatorFunc) Navigate(r Route) { f(r) }

// NoticeSink shows short messages to the user.
type NoticeSink interface {
	Notice(msg string)
}

type NoticeFunc func(string)

func (f NoticeFunc) Notice(msg string) { f(msg) }

type nopNavigator struct{}

func (nopNavigator) Navigate(Route) {}

type nopNotices struct{}

func (nopNotices) Notice(string) {}
