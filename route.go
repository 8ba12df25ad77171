package formulary

import (
	"net/url"
	"strings"
)

// View identifies which screen a Route addresses.
type View string

// View constants.
const (
	ViewHome       View = "home"
	ViewFunction   View = "function"
	ViewPlayground View = "playground"
	ViewGuide      View = "guide"
)

// Route is an addressable application state. ID is set for ViewFunction and
// ViewGuide only.
type Route struct {
	View View   `json:"view"`
	ID   string `json:"id,omitempty"`
}

// HomeRoute is the default route.
var HomeRoute = Route{View: ViewHome}

// ParseRoute maps a location fragment to a Route. It never fails: anything
// unrecognized yields HomeRoute. A leading "#" and "/" are ignored so both
// "function/SUM" and "#/function/SUM" parse the same way.
//
// Function ids are percent-decoded; guide ids are taken verbatim. Ids are
// not checked against the catalog here, see Resolve.
func ParseRoute(fragment string) Route {
	fragment = strings.TrimPrefix(fragment, "#")
	fragment = strings.TrimPrefix(fragment, "/")

	path, rest, _ := strings.Cut(fragment, "/")
	switch {
	case path == "function" && rest != "":
		id, err := url.PathUnescape(rest)
		if err != nil {
			id = rest
		}
		return Route{View: ViewFunction, ID: id}
	case path == "playground":
		return Route{View: ViewPlayground}
	case path == "guide" && rest != "":
		return Route{View: ViewGuide, ID: rest}
	default:
		return HomeRoute
	}
}

// Fragment returns the location fragment that parses back to r.
func (r Route) Fragment() string {
	switch r.View {
	case ViewFunction:
		return "function/" + url.PathEscape(r.ID)
	case ViewPlayground:
		return "playground"
	case ViewGuide:
		return "guide/" + r.ID
	default:
		return ""
	}
}

// Resolve checks a parsed route against the catalog. Routes to unknown
// functions or guides resolve to HomeRoute. Function ids are canonicalized to
// the catalog spelling.
func Resolve(catalog Catalog, r Route) Route {
	switch r.View {
	case ViewFunction:
		f, ok := catalog.FindFunction(r.ID)
		if !ok {
			return HomeRoute
		}
		return Route{View: ViewFunction, ID: f.Name}
	case ViewGuide:
		if _, ok := catalog.FindGuide(r.ID); !ok {
			return HomeRoute
		}
		return r
	case ViewPlayground:
		return r
	default:
		return HomeRoute
	}
}
