package setgain_test

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.jpl.nasa.gov/bdube/rpgain/redpitaya"
	"github.jpl.nasa.gov/bdube/rpgain/setgain"
)

func run(m *redpitaya.Mock, args ...string) (int, string, string) {
	var stdout, stderr bytes.Buffer
	code := setgain.Run(args, m.Open, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func ExampleRun_output() {
	m := redpitaya.NewMock()
	setgain.Run([]string{"-p", "1", "-v", "0", "-o"}, m.Open, os.Stdout, os.Stderr)
	// Output: Gain on output 1 set to 0
}

func ExampleRun_input() {
	m := redpitaya.NewMock()
	setgain.Run([]string{"-p", "2", "-v", "1", "-i"}, m.Open, os.Stdout, os.Stderr)
	// Output: Attenutation on input 2 set to 1
}

func ExampleRun_coupling() {
	m := redpitaya.NewMock()
	setgain.Run([]string{"-p", "1", "-v", "1", "-c"}, m.Open, os.Stdout, os.Stderr)
	// Output: Coupling on input 1 set to 1
}

func TestRunOutputGain(t *testing.T) {
	m := redpitaya.NewMock()
	code, out, errs := run(m, "-p", "1", "-v", "0", "-o")
	assert.Equal(t, 0, code)
	assert.Equal(t, "Gain on output 1 set to 0\n", out)
	assert.Empty(t, errs)
	assert.Equal(t, []redpitaya.Call{
		{Procedure: "rp_InitReset", Value: 0},
		{Procedure: "rp_GenSetGainOut", Channel: redpitaya.CH1, Value: int(redpitaya.Gain1X)},
		{Procedure: "rp_Release"},
	}, m.Calls)
}

func TestRunInputAttenuation(t *testing.T) {
	m := redpitaya.NewMock()
	code, out, _ := run(m, "-p", "2", "-v", "1", "-i")
	assert.Equal(t, 0, code)
	assert.Equal(t, "Attenutation on input 2 set to 1\n", out)
	assert.Equal(t, redpitaya.Call{Procedure: "rp_AcqSetGain", Channel: redpitaya.CH2, Value: int(redpitaya.High)}, m.Calls[1])
}

func TestRunDefaultsToOutput(t *testing.T) {
	m := redpitaya.NewMock()
	code, out, _ := run(m, "-p", "2", "-v", "1")
	assert.Equal(t, 0, code)
	assert.Equal(t, "Gain on output 2 set to 1\n", out)
	assert.Equal(t, redpitaya.Call{Procedure: "rp_GenSetGainOut", Channel: redpitaya.CH2, Value: int(redpitaya.Gain5X)}, m.Calls[1])
}

func TestRunInvalidInputTouchesNoHardware(t *testing.T) {
	cases := []struct {
		args []string
		msg  string
	}{
		{[]string{"-p", "3", "-v", "0", "-o"}, "Port must be either 1 or 2!\n"},
		{[]string{"-p", "0", "-v", "0"}, "Port must be either 1 or 2!\n"},
		{[]string{"-p", "1", "-v", "2", "-i"}, "Gain setting must be either 0 (low) or 1 (high)!\n"},
		{[]string{"-z"}, "Unknown option `-z'.\n"},
		{[]string{"-v", "0"}, "Missing required option -p\n"},
		{[]string{"-p", "1"}, "Missing required option -v\n"},
	}
	for _, c := range cases {
		m := redpitaya.NewMock()
		code, out, errs := run(m, c.args...)
		assert.Equal(t, 1, code, "%v", c.args)
		assert.Empty(t, out, "%v", c.args)
		assert.Equal(t, c.msg, errs, "%v", c.args)
		assert.Empty(t, m.Calls, "%v", c.args)
	}
}

func TestRunInitFailure(t *testing.T) {
	m := redpitaya.NewMock()
	m.InitErr = &redpitaya.StatusError{Status: 2, Procedure: "rp_InitReset"}
	code, out, errs := run(m, "-p", "1", "-v", "1")
	assert.Equal(t, 1, code)
	assert.Empty(t, out)
	assert.Contains(t, errs, "RP API initialization failed!\n")
	assert.Equal(t, []string{"rp_InitReset"}, m.Procedures(), "no write and no release after a failed init")
}

func TestRunSetterFailureIsOnlyLogged(t *testing.T) {
	m := redpitaya.NewMock()
	m.SetErr = errors.New("relay stuck")
	code, out, errs := run(m, "-p", "1", "-v", "1", "-i")
	assert.Equal(t, 0, code)
	assert.Equal(t, "Attenutation on input 1 set to 1\n", out)
	assert.Equal(t, "warning: relay stuck\n", errs)
	assert.Equal(t, "rp_Release", m.Procedures()[2])
}

func TestRunHelpIsAnUnknownOption(t *testing.T) {
	for _, arg := range []string{"-h", "-help", "--help"} {
		m := redpitaya.NewMock()
		code, out, errs := run(m, arg, "-p", "1", "-v", "0")
		assert.Equal(t, 1, code, arg)
		assert.Empty(t, out, arg)
		assert.Contains(t, errs, "Unknown option `-", arg)
		assert.Empty(t, m.Calls, arg)
	}
}

func TestRunGroupedOptions(t *testing.T) {
	m := redpitaya.NewMock()
	code, out, errs := run(m, "-ip2", "-v1")
	assert.Equal(t, 0, code)
	assert.Equal(t, "Attenutation on input 2 set to 1\n", out)
	assert.Empty(t, errs)
	assert.Equal(t, redpitaya.Call{Procedure: "rp_AcqSetGain", Channel: redpitaya.CH2, Value: int(redpitaya.High)}, m.Calls[1])
}

func TestRunIsIdempotent(t *testing.T) {
	m1, m2 := redpitaya.NewMock(), redpitaya.NewMock()
	args := []string{"-p", "2", "-v", "0", "-i"}
	_, out1, _ := run(m1, args...)
	_, out2, _ := run(m2, args...)
	assert.Equal(t, out1, out2)
	assert.Equal(t, m1.Calls, m2.Calls)
}

func TestRunWithoutLibrp(t *testing.T) {
	if b, err := redpitaya.OpenBoard(false); !errors.Is(err, redpitaya.ErrNoAPI) {
		if err == nil {
			b.Release()
		}
		t.Skip("librp is linked in")
	}
	var stdout, stderr bytes.Buffer
	code := setgain.Run([]string{"-p", "1", "-v", "0"}, redpitaya.OpenBoard, &stdout, &stderr)
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr.String(), setgain.ErrInit.Error())
}

func TestReadReturnsLastWrite(t *testing.T) {
	m := redpitaya.NewMock()
	b, err := m.Open(false)
	require.NoError(t, err)
	for _, dir := range []setgain.Direction{setgain.Output, setgain.Input, setgain.Coupling} {
		r, err := setgain.Validate(2, 1, dir)
		require.NoError(t, err)
		_, err = setgain.Apply(b, r)
		require.NoError(t, err)
		lvl, err := setgain.Read(b, r)
		require.NoError(t, err)
		assert.Equal(t, 1, lvl, fmt.Sprint(dir))
	}
}
