// Package generichttp defines route tables for devices exposed over HTTP
// and binds them to a chi router
package generichttp

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"sort"

	"github.com/go-chi/chi"
)

// MethodPath is an HTTP method and a path, the key of a route
type MethodPath struct {
	Method string
	Path   string
}

func (mp MethodPath) String() string {
	return mp.Method + " " + mp.Path
}

// RouteTable2 maps methods and paths to handlers
type RouteTable2 map[MethodPath]http.HandlerFunc

// HTTPer is a type which has a route table
type HTTPer interface {
	RT() RouteTable2
}

// Endpoints lists the routes in the table, sorted
func (rt RouteTable2) Endpoints() []string {
	routes := make([]string, 0, len(rt))
	for k := range rt {
		routes = append(routes, k.String())
	}
	sort.Strings(routes)
	return routes
}

// Bind registers every route in the table on r, plus GET /route-list which
// returns the table as a JSON array of strings
func (rt RouteTable2) Bind(r chi.Router) {
	for mp, fcn := range rt {
		r.MethodFunc(mp.Method, mp.Path, fcn)
	}
	r.Get("/route-list", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		err := json.NewEncoder(w).Encode(rt.Endpoints())
		if err != nil {
			fstr := fmt.Sprintf("error encoding list of routes data to json %q", err)
			log.Println(fstr)
			http.Error(w, fstr, http.StatusInternalServerError)
		}
	})
}
