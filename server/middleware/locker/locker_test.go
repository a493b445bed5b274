package locker_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"

	"github.jpl.nasa.gov/bdube/rpgain/generichttp"
	"github.jpl.nasa.gov/bdube/rpgain/server/middleware/locker"
)

type table generichttp.RouteTable2

func (t table) RT() generichttp.RouteTable2 { return generichttp.RouteTable2(t) }

func TestLockerBlocksProtectedRoutes(t *testing.T) {
	rt := table{
		generichttp.MethodPath{Method: http.MethodPost, Path: "/output-gain"}: func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		},
	}
	l := locker.New()
	locker.Inject(rt, l)
	r := chi.NewRouter()
	r.Use(l.Check)
	rt.RT().Bind(r)

	send := func(method, path, body string) int {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(method, path, strings.NewReader(body)))
		return w.Code
	}

	assert.Equal(t, http.StatusOK, send(http.MethodPost, "/output-gain", ""))
	assert.Equal(t, http.StatusOK, send(http.MethodPost, "/lock", `{"bool": true}`))
	assert.True(t, l.Locked())
	assert.Equal(t, http.StatusLocked, send(http.MethodPost, "/output-gain", ""))
	assert.Equal(t, http.StatusOK, send(http.MethodGet, "/route-list", ""))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/lock", nil))
	assert.JSONEq(t, `{"bool": true}`, w.Body.String())

	assert.Equal(t, http.StatusOK, send(http.MethodPost, "/lock", `{"bool": false}`))
	assert.Equal(t, http.StatusOK, send(http.MethodPost, "/output-gain", ""))
	assert.Equal(t, http.StatusBadRequest, send(http.MethodPost, "/lock", `nope`))
}
