package events

import "github.com/atomicstack/patchmenu/internal/logging"

type UITracer struct{}

type PromptTracer struct{}

type promptReason string

const (
	PromptReasonEscape promptReason = "escape"
	PromptReasonEmpty  promptReason = "empty"
)

var (
	UI     = UITracer{}
	Prompt = PromptTracer{}
)

func (UITracer) Key(key string) {
	logging.Trace("ui.key", map[string]interface{}{"key": key})
}

func (UITracer) Resize(width, height int) {
	logging.Trace("ui.resize", map[string]interface{}{"width": width, "height": height})
}

func (PromptTracer) Open(existing int) {
	logging.Trace("prompt.open", map[string]interface{}{"existing": existing})
}

func (PromptTracer) Complete(input, match string) {
	logging.Trace("prompt.complete", map[string]interface{}{"input": input, "match": match})
}

func (PromptTracer) Submit(name string) {
	logging.Trace("prompt.submit", map[string]interface{}{"name": name})
}

func (PromptTracer) Cancel(reason promptReason) {
	logging.Trace("prompt.cancel", map[string]interface{}{"reason": string(reason)})
}
