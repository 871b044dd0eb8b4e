//go:build !(js && wasm)

package realtimews

func isRunningInBrowser() bool { return false }
