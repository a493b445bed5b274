package redpitaya

import "sync"

// Call is one call into the (mock) vendor API
type Call struct {
	Procedure string
	Channel   Channel
	Value     int
}

// Mock is a Board that records calls instead of touching hardware.
// Its Open method is an Opener.
type Mock struct {
	sync.Mutex

	// InitErr is returned by Open, if not nil
	InitErr error

	// SetErr is returned by every setter, if not nil
	SetErr error

	// Calls is the ordered list of calls made
	Calls []Call

	open     bool
	gain     [2]Gain
	atten    [2]Attenuation
	coupling [2]Coupling
}

// NewMock returns a mock board in its power up state:
// 1x output gain, low input range, DC coupling
func NewMock() *Mock {
	return &Mock{}
}

func (m *Mock) record(proc string, ch Channel, v int) {
	m.Calls = append(m.Calls, Call{Procedure: proc, Channel: ch, Value: v})
}

func (m *Mock) check(ch Channel) error {
	if ch != CH1 && ch != CH2 {
		return enrich(6, "channel check")
	}
	if !m.open {
		return enrich(2, "session check")
	}
	return nil
}

// Open begins a session.  reset == true restores the power up state
func (m *Mock) Open(reset bool) (Board, error) {
	m.Lock()
	defer m.Unlock()
	v := 0
	if reset {
		v = 1
	}
	m.record("rp_InitReset", 0, v)
	if m.InitErr != nil {
		return nil, m.InitErr
	}
	if reset {
		m.gain = [2]Gain{}
		m.atten = [2]Attenuation{}
		m.coupling = [2]Coupling{}
	}
	m.open = true
	return m, nil
}

// SetOutputGain records the call and stores the gain
func (m *Mock) SetOutputGain(ch Channel, g Gain) error {
	m.Lock()
	defer m.Unlock()
	m.record("rp_GenSetGainOut", ch, int(g))
	if err := m.check(ch); err != nil {
		return err
	}
	if m.SetErr != nil {
		return m.SetErr
	}
	m.gain[ch] = g
	return nil
}

// OutputGain returns the stored gain
func (m *Mock) OutputGain(ch Channel) (Gain, error) {
	m.Lock()
	defer m.Unlock()
	m.record("rp_GenGetGainOut", ch, 0)
	if err := m.check(ch); err != nil {
		return 0, err
	}
	return m.gain[ch], nil
}

// SetInputAttenuation records the call and stores the range
func (m *Mock) SetInputAttenuation(ch Channel, a Attenuation) error {
	m.Lock()
	defer m.Unlock()
	m.record("rp_AcqSetGain", ch, int(a))
	if err := m.check(ch); err != nil {
		return err
	}
	if m.SetErr != nil {
		return m.SetErr
	}
	m.atten[ch] = a
	return nil
}

// InputAttenuation returns the stored range
func (m *Mock) InputAttenuation(ch Channel) (Attenuation, error) {
	m.Lock()
	defer m.Unlock()
	m.record("rp_AcqGetGain", ch, 0)
	if err := m.check(ch); err != nil {
		return 0, err
	}
	return m.atten[ch], nil
}

// SetInputCoupling records the call and stores the coupling
func (m *Mock) SetInputCoupling(ch Channel, c Coupling) error {
	m.Lock()
	defer m.Unlock()
	m.record("rp_AcqSetAC_DC", ch, int(c))
	if err := m.check(ch); err != nil {
		return err
	}
	if m.SetErr != nil {
		return m.SetErr
	}
	m.coupling[ch] = c
	return nil
}

// InputCoupling returns the stored coupling
func (m *Mock) InputCoupling(ch Channel) (Coupling, error) {
	m.Lock()
	defer m.Unlock()
	m.record("rp_AcqGetAC_DC", ch, 0)
	if err := m.check(ch); err != nil {
		return 0, err
	}
	return m.coupling[ch], nil
}

// Release ends the session
func (m *Mock) Release() error {
	m.Lock()
	defer m.Unlock()
	m.record("rp_Release", 0, 0)
	m.open = false
	return nil
}

// Procedures returns the names of the calls made, in order
func (m *Mock) Procedures() []string {
	m.Lock()
	defer m.Unlock()
	out := make([]string, len(m.Calls))
	for i, c := range m.Calls {
		out[i] = c.Procedure
	}
	return out
}

// Reset clears the call log
func (m *Mock) Reset() {
	m.Lock()
	defer m.Unlock()
	m.Calls = nil
}
