/*Package redpitaya provides an interface to the analog front end of Red Pitaya
boards through the vendor's C API (librp).

Only the front end configuration is wrapped: output gain of the generator,
input attenuation (jumper/relay range) of the acquisition path, and input
AC/DC coupling.  The FPGA is never reset by this package unless asked to.

Basic usage is as followed:
 rp, err := redpitaya.Open(false) // false -> do not reset the FPGA
 if err != nil {
 	log.Fatal(err)
 }
 defer rp.Release()
 rp.SetOutputGain(redpitaya.CH1, redpitaya.Gain5X)
 rp.SetInputAttenuation(redpitaya.CH2, redpitaya.High)

The cgo binding is compiled only with the redpitaya build tag, i.e.
 go build -tags redpitaya ./...
on the board itself.  Without it, Open returns ErrNoAPI.
*/
package redpitaya

import (
	"errors"
	"fmt"
)

// Channel is an analog channel of the board, zero-indexed as in rp.h
type Channel int

// Gain is the output gain of the generator
type Gain int

// Attenuation is the input range (attenuation) of the acquisition path
type Attenuation int

// Coupling is the input coupling of the acquisition path
type Coupling int

// Status is a return code of the vendor API
type Status int

const (
	// CH1 is RP_CH_1
	CH1 Channel = iota
	// CH2 is RP_CH_2
	CH2
)

const (
	// Gain1X is RP_GAIN_1X, the low output gain
	Gain1X Gain = iota
	// Gain5X is RP_GAIN_5X, the high output gain
	Gain5X
)

const (
	// Low is RP_LOW, the low-voltage input range
	Low Attenuation = iota
	// High is RP_HIGH, the high-voltage input range
	High
)

const (
	// DC is RP_DC
	DC Coupling = iota
	// AC is RP_AC
	AC
)

// StatusOK is RP_OK
const StatusOK Status = 0

var (
	// ErrNoAPI is returned by Open when the binary was built without the
	// redpitaya build tag and cannot reach librp
	ErrNoAPI = errors.New("built without librp support (missing -tags redpitaya)")

	// ErrBadChannel is generated when a port outside 1..2 is used
	ErrBadChannel = errors.New("port must be either 1 or 2")

	// StatusCodes is the status codes defined by rp.h
	// copied here to avoid C types as keys
	StatusCodes = map[Status]string{
		0:  "OK",
		1:  "Failed to Open EEPROM Device",
		2:  "Failed to open memory device",
		3:  "Failed to close memory device",
		4:  "Failed to map memory device",
		5:  "Failed to unmap memory device",
		6:  "Value out of range",
		7:  "LED input direction is not valid",
		8:  "Modifying read only filed",
		9:  "Writing to input pin is not valid",
		10: "Invalid Pin number",
		11: "Uninitialized Input Argument",
		12: "Failed to Find Calibration Parameters",
		13: "Failed to Read Calibration Parameters",
		14: "Buffer too small",
		15: "Invalid parameter value",
		16: "Unsupported Feature",
		17: "Data not normalized",
		18: "Failed to open bus",
		19: "Failed to close bus",
		20: "Failed to acquire bus access",
		21: "Failed to read from the bus",
		22: "Failed to write to the bus",
		23: "Extension module not connected",
	}
)

// ChannelFromPort converts a 1-indexed port number to a Channel
func ChannelFromPort(port int) (Channel, error) {
	switch port {
	case 1:
		return CH1, nil
	case 2:
		return CH2, nil
	default:
		return 0, ErrBadChannel
	}
}

// Port returns the 1-indexed port number of the channel
func (c Channel) Port() int {
	return int(c) + 1
}

func (c Channel) String() string {
	return fmt.Sprintf("CH%d", c.Port())
}

func (g Gain) String() string {
	switch g {
	case Gain1X:
		return "GAIN_1X"
	case Gain5X:
		return "GAIN_5X"
	default:
		return fmt.Sprintf("Gain(%d)", int(g))
	}
}

func (a Attenuation) String() string {
	switch a {
	case Low:
		return "LOW"
	case High:
		return "HIGH"
	default:
		return fmt.Sprintf("Attenuation(%d)", int(a))
	}
}

func (c Coupling) String() string {
	switch c {
	case DC:
		return "DC"
	case AC:
		return "AC"
	default:
		return fmt.Sprintf("Coupling(%d)", int(c))
	}
}

// StatusError is a non-OK status returned by a call into librp
type StatusError struct {
	Status    Status
	Procedure string
}

func (e *StatusError) Error() string {
	msg, ok := StatusCodes[e.Status]
	if !ok {
		msg = "unknown error code"
	}
	return fmt.Sprintf("%d: %s encountered at call to %s", int(e.Status), msg, e.Procedure)
}

// enrich returns a new error and decorates with the procedure called
// if the status is OK, nil is returned
func enrich(s Status, procedure string) error {
	if s == StatusOK {
		return nil
	}
	return &StatusError{Status: s, Procedure: procedure}
}

// Board is the analog front end of a Red Pitaya
type Board interface {
	// SetOutputGain sets the gain of a generator output
	SetOutputGain(Channel, Gain) error

	// SetInputAttenuation sets the range of an acquisition input
	SetInputAttenuation(Channel, Attenuation) error

	// SetInputCoupling sets AC or DC coupling of an acquisition input
	SetInputCoupling(Channel, Coupling) error

	// OutputGain returns the gain of a generator output
	OutputGain(Channel) (Gain, error)

	// InputAttenuation returns the range of an acquisition input
	InputAttenuation(Channel) (Attenuation, error)

	// InputCoupling returns the coupling of an acquisition input
	InputCoupling(Channel) (Coupling, error)

	// Release ends the session with the API
	Release() error
}

// Opener opens a session with a board.  reset == true resets the FPGA
// to its default configuration.
type Opener func(reset bool) (Board, error)
