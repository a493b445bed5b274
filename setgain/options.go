// Package setgain parses and validates a single front end setting and applies
// it to a Red Pitaya through a short-lived API session.
package setgain

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.jpl.nasa.gov/bdube/rpgain/redpitaya"
)

// Direction selects which front end setting is written
type Direction int

const (
	// Output writes the generator output gain
	Output Direction = iota
	// Input writes the acquisition input attenuation (range)
	Input
	// Coupling writes the acquisition input AC/DC coupling
	Coupling
)

func (d Direction) String() string {
	switch d {
	case Output:
		return "output"
	case Input:
		return "input"
	case Coupling:
		return "coupling"
	default:
		return fmt.Sprintf("Direction(%d)", int(d))
	}
}

// the exact text of these messages is relied upon by scripts driving setgain
var (
	// ErrPortRange is generated when the port is not 1 or 2
	ErrPortRange = errors.New("Port must be either 1 or 2!")

	// ErrLevelRange is generated when the level is not 0 or 1
	ErrLevelRange = errors.New("Gain setting must be either 0 (low) or 1 (high)!")
)

// UnknownOptionError is generated for an option character setgain does not know
type UnknownOptionError struct {
	// Char is the first unknown option character on the command line
	Char byte
}

func (e *UnknownOptionError) Error() string {
	if e.Char >= 0x20 && e.Char < 0x7f {
		return fmt.Sprintf("Unknown option `-%c'.", e.Char)
	}
	return fmt.Sprintf("Unknown option character `\\x%x'.", e.Char)
}

// MissingArgumentError is generated when a flag that takes a value is last on
// the command line
type MissingArgumentError struct {
	Option string
}

func (e *MissingArgumentError) Error() string {
	return fmt.Sprintf("Option `-%s' requires an argument.", e.Option)
}

// MissingOptionError is generated when a required flag is not given
type MissingOptionError struct {
	Option string
}

func (e *MissingOptionError) Error() string {
	return fmt.Sprintf("Missing required option -%s", e.Option)
}

// Request is a validated setting
type Request struct {
	Channel   redpitaya.Channel
	Direction Direction

	// Level is 0 (low) or 1 (high)
	Level int
}

// Gain returns the vendor gain for the level
func (r Request) Gain() redpitaya.Gain {
	if r.Level == 1 {
		return redpitaya.Gain5X
	}
	return redpitaya.Gain1X
}

// Attenuation returns the vendor input range for the level
func (r Request) Attenuation() redpitaya.Attenuation {
	if r.Level == 1 {
		return redpitaya.High
	}
	return redpitaya.Low
}

// Coupling returns the vendor coupling for the level
func (r Request) Coupling() redpitaya.Coupling {
	if r.Level == 1 {
		return redpitaya.AC
	}
	return redpitaya.DC
}

// Message is the confirmation printed after the setting is written
func (r Request) Message() string {
	switch r.Direction {
	case Input:
		return fmt.Sprintf("Attenutation on input %d set to %d", r.Channel.Port(), int(r.Attenuation()))
	case Coupling:
		return fmt.Sprintf("Coupling on input %d set to %d", r.Channel.Port(), int(r.Coupling()))
	default:
		return fmt.Sprintf("Gain on output %d set to %d", r.Channel.Port(), int(r.Gain()))
	}
}

// Validate checks a port and level and builds a Request from them
func Validate(port, level int, dir Direction) (Request, error) {
	ch, err := redpitaya.ChannelFromPort(port)
	if err != nil {
		return Request{}, ErrPortRange
	}
	if level != 0 && level != 1 {
		return Request{}, ErrLevelRange
	}
	if dir != Output && dir != Input && dir != Coupling {
		return Request{}, fmt.Errorf("unknown direction %d", int(dir))
	}
	return Request{Channel: ch, Direction: dir, Level: level}, nil
}

// intFlag is an integer flag which remembers if it was given at all.
// A value which is not an integer is kept as given but never validates.
type intFlag struct {
	v     int
	set   bool
	valid bool
}

func (f *intFlag) String() string {
	if f == nil || !f.set {
		return ""
	}
	return strconv.Itoa(f.v)
}

func (f *intFlag) Set(s string) error {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	f.set = true
	f.valid = err == nil
	f.v = n
	return nil
}

// directionFlag is a boolean flag that writes its direction into a shared
// variable, so the last of -o/-i/-c on the command line wins
type directionFlag struct {
	dst *Direction
	dir Direction
}

func (f directionFlag) IsBoolFlag() bool { return true }

func (f directionFlag) String() string {
	if f.dst == nil {
		return "false"
	}
	return strconv.FormatBool(*f.dst == f.dir)
}

func (f directionFlag) Set(s string) error {
	b, err := strconv.ParseBool(s)
	if err != nil {
		return err
	}
	if b {
		*f.dst = f.dir
	}
	return nil
}

// expand rewrites a command line in POSIX short option syntax, i.e. grouped
// flags (-io) and attached values (-p1), into one flag per argument for the
// flag package.  Operands are skipped wherever they appear, setgain takes
// none, and "--" ends the options.  Scanning stops at the first unknown
// option character.
func expand(args []string) ([]string, error) {
	var out []string
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--" {
			break
		}
		if len(arg) < 2 || arg[0] != '-' {
			continue
		}
		for j := 1; j < len(arg); j++ {
			c := arg[j]
			switch c {
			case 'i', 'o', 'c':
				out = append(out, "-"+string(c))
			case 'p', 'v':
				out = append(out, "-"+string(c))
				switch {
				case j+1 < len(arg):
					out = append(out, arg[j+1:])
				case i+1 < len(args):
					i++
					out = append(out, args[i])
				default:
					return nil, &MissingArgumentError{Option: string(c)}
				}
				j = len(arg)
			default:
				return nil, &UnknownOptionError{Char: c}
			}
		}
	}
	return out, nil
}

// Parse reads the command line (without the program name).
// Errors are reported in the order the command line is processed: unknown
// options first, then -p, then -v.
func Parse(args []string) (Request, error) {
	var (
		port  intFlag
		level intFlag
		dir   = Output
		fs    = flag.NewFlagSet("setgain", flag.ContinueOnError)
	)
	expanded, err := expand(args)
	if err != nil {
		return Request{}, err
	}
	fs.SetOutput(io.Discard)
	fs.Var(&port, "p", "port, 1 or 2")
	fs.Var(&level, "v", "level, 0 (low) or 1 (high)")
	fs.Var(directionFlag{&dir, Output}, "o", "set output gain")
	fs.Var(directionFlag{&dir, Input}, "i", "set input attenuation")
	fs.Var(directionFlag{&dir, Coupling}, "c", "set input coupling")
	if err := fs.Parse(expanded); err != nil {
		return Request{}, err
	}

	if !port.set {
		return Request{}, &MissingOptionError{Option: "p"}
	}
	if !port.valid {
		return Request{}, ErrPortRange
	}
	if _, err := redpitaya.ChannelFromPort(port.v); err != nil {
		return Request{}, ErrPortRange
	}
	if !level.set {
		return Request{}, &MissingOptionError{Option: "v"}
	}
	if !level.valid {
		return Request{}, ErrLevelRange
	}
	return Validate(port.v, level.v, dir)
}
