// Package route holds the logical route table of the shell and the
// navigation history that backs it.
package route

import "strings"

// Key is a logical route identifier. Pages and widgets refer to keys and
// never build paths themselves.
type Key string

const (
	Home     Key = "home"
	About    Key = "about"
	Login    Key = "login"
	NotFound Key = "not_found"
)

// paths is the closed set of routes known to the shell.
var paths = map[Key]string{
	Home:     "/",
	About:    "/about",
	Login:    "/login",
	NotFound: "*",
}

// Path resolves a logical key to its concrete path. Unknown keys resolve to
// the not-found path.
func Path(k Key) string {
	if p, ok := paths[k]; ok {
		return p
	}
	return paths[NotFound]
}

// Keys returns every known key except NotFound, in a stable order.
func Keys() []Key {
	return []Key{Home, About, Login}
}

// Match maps a concrete path back to its key. Anything that is not an exact
// route (after trailing slash normalization) is NotFound.
func Match(path string) Key {
	if path != "/" {
		path = strings.TrimRight(path, "/")
	}
	if path == "" {
		path = "/"
	}
	for _, k := range Keys() {
		if paths[k] == path {
			return k
		}
	}
	return NotFound
}

// Destination is anything a menu item can navigate to.
type Destination interface {
	Path() string
}

// Path implements Destination for logical keys.
func (k Key) Path() string {
	return Path(k)
}

// Href is a literal path used as a destination.
type Href string

// Path implements Destination.
func (h Href) Path() string {
	return string(h)
}
