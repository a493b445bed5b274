//go:build redpitaya
// +build redpitaya

package redpitaya

/*
#cgo CFLAGS: -I/opt/redpitaya/include
#cgo LDFLAGS: -L/opt/redpitaya/lib -lrp
#include <stdbool.h>
#include <stdlib.h>
#include "rp.h"
*/
import "C"

// RP is a session with librp.  The API keeps its state in the library, so
// there can only be one meaningful session per process.
type RP struct{}

// Open initializes the API.  reset == false keeps the current FPGA
// configuration, which is safe to use alongside other FPGA images.
func Open(reset bool) (*RP, error) {
	errC := C.rp_InitReset(C.bool(reset))
	err := enrich(Status(errC), "rp_InitReset")
	if err != nil {
		return nil, err
	}
	return &RP{}, nil
}

// SetOutputGain configures the gain of a generator output
func (rp *RP) SetOutputGain(ch Channel, g Gain) error {
	errC := C.rp_GenSetGainOut(C.rp_channel_t(ch), C.rp_gen_gain_t(g))
	return enrich(Status(errC), "rp_GenSetGainOut")
}

// OutputGain returns the gain of a generator output
func (rp *RP) OutputGain(ch Channel) (Gain, error) {
	var g C.rp_gen_gain_t
	errC := C.rp_GenGetGainOut(C.rp_channel_t(ch), &g)
	return Gain(g), enrich(Status(errC), "rp_GenGetGainOut")
}

// SetInputAttenuation configures the input range of an acquisition channel
func (rp *RP) SetInputAttenuation(ch Channel, a Attenuation) error {
	errC := C.rp_AcqSetGain(C.rp_channel_t(ch), C.rp_pinState_t(a))
	return enrich(Status(errC), "rp_AcqSetGain")
}

// InputAttenuation returns the input range of an acquisition channel
func (rp *RP) InputAttenuation(ch Channel) (Attenuation, error) {
	var a C.rp_pinState_t
	errC := C.rp_AcqGetGain(C.rp_channel_t(ch), &a)
	return Attenuation(a), enrich(Status(errC), "rp_AcqGetGain")
}

// SetInputCoupling configures AC or DC coupling of an acquisition channel.
// Boards without switchable coupling return an Unsupported Feature status.
func (rp *RP) SetInputCoupling(ch Channel, c Coupling) error {
	errC := C.rp_AcqSetAC_DC(C.rp_channel_t(ch), C.rp_acq_ac_dc_mode_t(c))
	return enrich(Status(errC), "rp_AcqSetAC_DC")
}

// InputCoupling returns the coupling of an acquisition channel
func (rp *RP) InputCoupling(ch Channel) (Coupling, error) {
	var c C.rp_acq_ac_dc_mode_t
	errC := C.rp_AcqGetAC_DC(C.rp_channel_t(ch), &c)
	return Coupling(c), enrich(Status(errC), "rp_AcqGetAC_DC")
}

// Release the API, freeing the memory mapping of the FPGA
func (rp *RP) Release() error {
	errC := C.rp_Release()
	return enrich(Status(errC), "rp_Release")
}
