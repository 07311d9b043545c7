package events

import "github.com/atomicstack/patchmenu/internal/logging"

type MIDITracer struct{}

var MIDI = MIDITracer{}

func (MIDITracer) Message(msg string) {
	logging.Trace("midi.message", map[string]interface{}{"msg": msg})
}

func (MIDITracer) Port(direction, name string) {
	logging.Trace("midi.port", map[string]interface{}{"direction": direction, "name": name})
}
