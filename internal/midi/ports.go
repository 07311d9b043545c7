package midi

import (
	"fmt"
	"strings"

	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv"

	"github.com/atomicstack/patchmenu/internal/logging"
	"github.com/atomicstack/patchmenu/internal/logging/events"
)

// Ports lists the names of the available input and output ports.
func Ports() (ins, outs []string) {
	for _, in := range gomidi.GetInPorts() {
		ins = append(ins, in.String())
	}
	for _, out := range gomidi.GetOutPorts() {
		outs = append(outs, out.String())
	}
	return ins, outs
}

// match reports whether port is the one the user asked for: exact names win,
// otherwise a case insensitive substring is enough.
func match(port, want string) bool {
	return port == want || strings.Contains(strings.ToLower(port), strings.ToLower(want))
}

func findIn(name string) (drivers.In, error) {
	for _, in := range gomidi.GetInPorts() {
		if match(in.String(), name) {
			return in, nil
		}
	}
	return nil, fmt.Errorf("midi input %q not found", name)
}

func findOut(name string) (drivers.Out, error) {
	for _, out := range gomidi.GetOutPorts() {
		if match(out.String(), name) {
			return out, nil
		}
	}
	return nil, fmt.Errorf("midi output %q not found", name)
}

// OpenInput opens the named input and feeds it into b. The returned stop
// function ends listening and closes the port.
func OpenInput(name string, b *Bridge) (stop func(), err error) {
	in, err := findIn(name)
	if err != nil {
		return nil, err
	}
	if err := in.Open(); err != nil {
		return nil, fmt.Errorf("open midi input %q: %w", in.String(), err)
	}
	end, err := gomidi.ListenTo(in, b.Receive, gomidi.HandleError(func(listenErr error) {
		logging.Error(fmt.Errorf("midi input %q: %w", in.String(), listenErr))
	}))
	if err != nil {
		_ = in.Close()
		return nil, fmt.Errorf("listen to %q: %w", in.String(), err)
	}
	events.MIDI.Port("in", in.String())
	return func() {
		end()
		_ = in.Close()
	}, nil
}

// OpenOutput opens the named output and returns a function sending to it,
// paced at OutputGap.
func OpenOutput(name string) (send func(gomidi.Message) error, closeFn func(), err error) {
	out, err := findOut(name)
	if err != nil {
		return nil, nil, err
	}
	send, err = gomidi.SendTo(out)
	if err != nil {
		return nil, nil, fmt.Errorf("open midi output %q: %w", out.String(), err)
	}
	events.MIDI.Port("out", out.String())
	return paced(send, OutputGap), func() { _ = out.Close() }, nil
}

// Close releases the MIDI driver.
func Close() {
	gomidi.CloseDriver()
}
