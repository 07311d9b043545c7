package events

import "github.com/atomicstack/patchmenu/internal/logging"

type PatchTracer struct{}

type patchReason string

const (
	PatchReasonMissing patchReason = "missing"
	PatchReasonEmpty   patchReason = "empty"
	PatchReasonInvalid patchReason = "invalid"
)

var Patch = PatchTracer{}

func (PatchTracer) Read(name, path string) {
	logging.Trace("patch.read", map[string]interface{}{"name": name, "path": path})
}

func (PatchTracer) Write(name, path string) {
	logging.Trace("patch.write", map[string]interface{}{"name": name, "path": path})
}

func (PatchTracer) Fallback(name string, reason patchReason) {
	logging.Trace("patch.fallback", map[string]interface{}{"name": name, "reason": string(reason)})
}

func (PatchTracer) Failed(name string, err error) {
	if err == nil {
		return
	}
	logging.Trace("patch.failed", map[string]interface{}{"name": name, "error": err.Error()})
}
