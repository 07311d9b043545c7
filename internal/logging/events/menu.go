package events

import "github.com/atomicstack/patchmenu/internal/logging"

type MenuTracer struct{}

var Menu = MenuTracer{}

func (MenuTracer) Navigate(step int, force bool, focus string) {
	logging.Trace("menu.navigate", map[string]interface{}{"step": step, "force": force, "focus": focus})
}

func (MenuTracer) Edit(focus string, value interface{}, changed bool) {
	logging.Trace("menu.edit", map[string]interface{}{"focus": focus, "value": value, "changed": changed})
}

func (MenuTracer) Reset(focus string, changed bool) {
	logging.Trace("menu.reset", map[string]interface{}{"focus": focus, "changed": changed})
}

func (MenuTracer) Select(selected bool) {
	logging.Trace("menu.select", map[string]interface{}{"selected": selected})
}

func (MenuTracer) Focus(path []string) {
	logging.Trace("menu.focus", map[string]interface{}{"path": path})
}
