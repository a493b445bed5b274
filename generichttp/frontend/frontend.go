// Package frontend provides an HTTP interface to the analog front end of a
// Red Pitaya.
//
// Every write is a complete setgain transaction: validate, open the API,
// write one setting, release.  The API is never held between requests, so the
// setgain command can still be used alongside the server.
package frontend

import (
	"encoding/json"
	"errors"
	"fmt"
	"go/types"
	"log"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.jpl.nasa.gov/bdube/rpgain/generichttp"
	"github.jpl.nasa.gov/bdube/rpgain/redpitaya"
	"github.jpl.nasa.gov/bdube/rpgain/server"
	"github.jpl.nasa.gov/bdube/rpgain/setgain"
)

// ErrRateLimited is generated when writes arrive faster than the configured rate
var ErrRateLimited = errors.New("front end write rate exceeded, try again later")

// Setter performs front end transactions, one at a time
type Setter struct {
	mu          sync.Mutex
	open        redpitaya.Opener
	reset       bool
	initTimeout time.Duration
	limiter     *rate.Limiter
}

// NewSetter returns a Setter which opens sessions with open.
// reset is passed to every open.  initTimeout bounds retries of a failed
// open; 0 disables them.  writeRate is the maximum number of writes per
// second; <= 0 is unlimited.
func NewSetter(open redpitaya.Opener, reset bool, initTimeout time.Duration, writeRate float64) *Setter {
	lim := rate.Limit(writeRate)
	if writeRate <= 0 {
		lim = rate.Inf
	}
	return &Setter{
		open:        open,
		reset:       reset,
		initTimeout: initTimeout,
		limiter:     rate.NewLimiter(lim, 1),
	}
}

func (s *Setter) session() (redpitaya.Board, error) {
	b, err := redpitaya.OpenWithRetry(s.open, s.reset, s.initTimeout)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", setgain.ErrInit, err)
	}
	return b, nil
}

// Set writes r to the board and returns the confirmation message.
// A failed write is logged and otherwise ignored, as in setgain.
func (s *Setter) Set(r setgain.Request) (string, error) {
	if !s.limiter.Allow() {
		return "", ErrRateLimited
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	b, err := s.session()
	if err != nil {
		return "", err
	}
	defer b.Release()
	msg, err := setgain.Apply(b, r)
	if err != nil {
		log.Println("warning:", err)
	}
	return msg, nil
}

// Get reads the level of r's channel and direction from the board
func (s *Setter) Get(r setgain.Request) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, err := s.session()
	if err != nil {
		return 0, err
	}
	defer b.Release()
	return setgain.Read(b, r)
}

type portValue struct {
	Port int `json:"port"`

	Value int `json:"value"`
}

// status maps an error from this package or setgain to an HTTP status code
func status(err error) int {
	var mo *setgain.MissingOptionError
	switch {
	case errors.Is(err, setgain.ErrPortRange), errors.Is(err, setgain.ErrLevelRange), errors.As(err, &mo):
		return http.StatusBadRequest
	case errors.Is(err, ErrRateLimited):
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// Write returns an HTTP handlerfunc that writes {"port": 1, "value": 0}
// in the given direction
func Write(s *Setter, dir setgain.Direction) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input portValue
		err := json.NewDecoder(r.Body).Decode(&input)
		defer r.Body.Close()
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		req, err := setgain.Validate(input.Port, input.Value, dir)
		if err != nil {
			http.Error(w, err.Error(), status(err))
			return
		}
		msg, err := s.Set(req)
		if err != nil {
			http.Error(w, err.Error(), status(err))
			return
		}
		hp := server.HumanPayload{T: types.String, String: msg}
		hp.EncodeAndRespond(w, r)
	}
}

// Query returns an HTTP handlerfunc that reads the level in the given
// direction of the channel in the query string, ?port=1
func Query(s *Setter, dir setgain.Direction) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query().Get("port")
		if q == "" {
			http.Error(w, "port query parameter is required", http.StatusBadRequest)
			return
		}
		port, err := strconv.Atoi(q)
		if err != nil {
			http.Error(w, setgain.ErrPortRange.Error(), http.StatusBadRequest)
			return
		}
		req, err := setgain.Validate(port, 0, dir)
		if err != nil {
			http.Error(w, err.Error(), status(err))
			return
		}
		lvl, err := s.Get(req)
		if err != nil {
			http.Error(w, err.Error(), status(err))
			return
		}
		hp := server.HumanPayload{T: types.Int, Int: lvl}
		hp.EncodeAndRespond(w, r)
	}
}

// HTTPFrontEnd holds a route table for a Setter
type HTTPFrontEnd struct {
	s *Setter

	RouteTable generichttp.RouteTable2
}

// NewHTTPFrontEnd sets up an HTTP interface to a Setter
func NewHTTPFrontEnd(s *Setter) HTTPFrontEnd {
	paths := map[setgain.Direction]string{
		setgain.Output:   "/output-gain",
		setgain.Input:    "/input-attenuation",
		setgain.Coupling: "/input-coupling",
	}
	rt := generichttp.RouteTable2{}
	for dir, path := range paths {
		rt[generichttp.MethodPath{Method: http.MethodPost, Path: path}] = Write(s, dir)
		rt[generichttp.MethodPath{Method: http.MethodGet, Path: path}] = Query(s, dir)
	}
	return HTTPFrontEnd{s: s, RouteTable: rt}
}

// RT satisfies generichttp.HTTPer
func (h HTTPFrontEnd) RT() generichttp.RouteTable2 {
	return h.RouteTable
}
