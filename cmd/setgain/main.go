// Command setgain sets the output gain, input attenuation, or input coupling
// of one channel of a Red Pitaya.
//
// Usage:
//
//	setgain -p <1|2> -v <0|1> [-o | -i | -c]
//
// Build on the board with -tags redpitaya to link against librp.
package main

import (
	"os"

	"github.jpl.nasa.gov/bdube/rpgain/redpitaya"
	"github.jpl.nasa.gov/bdube/rpgain/setgain"
)

func main() {
	os.Exit(setgain.Run(os.Args[1:], redpitaya.OpenBoard, os.Stdout, os.Stderr))
}
