package common

import (
	"regexp"
)

var routeVar = regexp.MustCompile(`\{([a-z_]+)(:[^}]*)?\}`)

// Expand fills the {name} / {name:pattern} variables of a route, in order.
// Values are left unescaped; url.URL escapes Path when rendered.
func Expand(route string, values ...string) string {
	i := 0
	return routeVar.ReplaceAllStringFunc(route, func(string) string {
		if i >= len(values) {
			return ""
		}
		v := values[i]
		i++
		return v
	})
}
