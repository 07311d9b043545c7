package events

import "github.com/atomicstack/patchmenu/internal/logging"

type EncoderTracer struct{}

var Encoder = EncoderTracer{}

func (EncoderTracer) Gesture(encoder, gesture string) {
	logging.Trace("encoder.gesture", map[string]interface{}{"encoder": encoder, "gesture": gesture})
}
