package events

import "github.com/atomicstack/patchmenu/internal/logging"

type SynthTracer struct{}

var Synth = SynthTracer{}

func (SynthTracer) Param(voice int, name string, value float64) {
	logging.Trace("synth.param", map[string]interface{}{"voice": voice, "name": name, "value": value})
}

func (SynthTracer) SendFailed(voice int, name string, err error) {
	if err == nil {
		return
	}
	logging.Trace("synth.send.failed", map[string]interface{}{"voice": voice, "name": name, "error": err.Error()})
}
