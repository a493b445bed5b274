package setgain

import (
	"errors"
	"fmt"
	"io"
	"log"

	"github.jpl.nasa.gov/bdube/rpgain/redpitaya"
)

// ErrInit is reported when the API session cannot be opened
var ErrInit = errors.New("RP API initialization failed!")

// Apply writes the setting in r to the board and returns the confirmation
// message.  The message is valid even when err is not nil; the setters are
// fire-and-forget and a caller is free to only log their error.
func Apply(b redpitaya.Board, r Request) (string, error) {
	var err error
	switch r.Direction {
	case Input:
		err = b.SetInputAttenuation(r.Channel, r.Attenuation())
	case Coupling:
		err = b.SetInputCoupling(r.Channel, r.Coupling())
	default:
		err = b.SetOutputGain(r.Channel, r.Gain())
	}
	return r.Message(), err
}

// Read returns the level currently set on the board for r's channel and
// direction.  r.Level is ignored.
func Read(b redpitaya.Board, r Request) (int, error) {
	switch r.Direction {
	case Input:
		a, err := b.InputAttenuation(r.Channel)
		return int(a), err
	case Coupling:
		c, err := b.InputCoupling(r.Channel)
		return int(c), err
	default:
		g, err := b.OutputGain(r.Channel)
		return int(g), err
	}
}

// Run is the setgain program.  args excludes the program name.  The return
// is the exit code.
//
// The session is always opened without resetting the FPGA, so other FPGA
// images keep their configuration.
func Run(args []string, open redpitaya.Opener, stdout, stderr io.Writer) int {
	errlog := log.New(stderr, "", 0)
	req, err := Parse(args)
	if err != nil {
		errlog.Println(err)
		return 1
	}

	b, err := open(false)
	if err != nil {
		errlog.Println(ErrInit)
		errlog.Println("cause:", err)
		return 1
	}
	defer b.Release()

	msg, err := Apply(b, req)
	if err != nil {
		errlog.Println("warning:", err)
	}
	fmt.Fprintln(stdout, msg)
	return 0
}
