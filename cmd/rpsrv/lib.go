package main

import (
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"

	"github.jpl.nasa.gov/bdube/rpgain/generichttp/frontend"
	"github.jpl.nasa.gov/bdube/rpgain/redpitaya"
	"github.jpl.nasa.gov/bdube/rpgain/server/middleware/locker"
)

// Config is the configuration of rpsrv
type Config struct {
	// Addr is the address to listen at
	Addr string `yaml:"Addr"`

	// Mock replaces the board with an in-memory mock, for testing clients
	Mock bool `yaml:"Mock"`

	// Reset resets the FPGA on every API initialization.  Leave false when
	// another FPGA image is in use.
	Reset bool `yaml:"Reset"`

	// InitTimeout is how long to retry a failed API initialization
	// before returning an error, e.g. "2s"
	InitTimeout time.Duration `yaml:"InitTimeout"`

	// WriteRate is the maximum number of front end writes per second
	WriteRate float64 `yaml:"WriteRate"`
}

// BuildMux creates the router serving the front end described by c
func BuildMux(c Config) chi.Router {
	open := redpitaya.Opener(redpitaya.OpenBoard)
	if c.Mock {
		open = redpitaya.NewMock().Open
	}
	return buildMux(c, open)
}

func buildMux(c Config, open redpitaya.Opener) chi.Router {
	s := frontend.NewSetter(open, c.Reset, c.InitTimeout, c.WriteRate)
	fe := frontend.NewHTTPFrontEnd(s)
	lock := locker.New()
	locker.Inject(fe, lock)

	root := chi.NewRouter()
	root.Use(middleware.Logger)
	root.Use(lock.Check)
	fe.RT().Bind(root)
	return root
}
