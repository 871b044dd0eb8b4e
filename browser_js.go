//go:build js && wasm

package realtimews

import "syscall/js"

// A js/wasm build counts as browser-like when a window or a worker scope
// with navigator is present; Node.js hosts expose neither.
func isRunningInBrowser() bool {
	g := js.Global()
	if !g.Get("window").IsUndefined() && !g.Get("document").IsUndefined() {
		return true
	}
	return !g.Get("importScripts").IsUndefined() && !g.Get("navigator").IsUndefined()
}
