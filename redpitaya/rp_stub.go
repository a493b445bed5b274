//go:build !redpitaya
// +build !redpitaya

package redpitaya

// RP is a placeholder session used when the binary is built without librp.
// It cannot be obtained from Open, which always fails.
type RP struct{}

// Open always returns ErrNoAPI
func Open(reset bool) (*RP, error) {
	return nil, ErrNoAPI
}

// SetOutputGain always returns ErrNoAPI
func (rp *RP) SetOutputGain(Channel, Gain) error { return ErrNoAPI }

// OutputGain always returns ErrNoAPI
func (rp *RP) OutputGain(Channel) (Gain, error) { return 0, ErrNoAPI }

// SetInputAttenuation always returns ErrNoAPI
func (rp *RP) SetInputAttenuation(Channel, Attenuation) error { return ErrNoAPI }

// InputAttenuation always returns ErrNoAPI
func (rp *RP) InputAttenuation(Channel) (Attenuation, error) { return 0, ErrNoAPI }

// SetInputCoupling always returns ErrNoAPI
func (rp *RP) SetInputCoupling(Channel, Coupling) error { return ErrNoAPI }

// InputCoupling always returns ErrNoAPI
func (rp *RP) InputCoupling(Channel) (Coupling, error) { return 0, ErrNoAPI }

// Release always returns ErrNoAPI
func (rp *RP) Release() error { return ErrNoAPI }
