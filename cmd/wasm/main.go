//go:build js && wasm

// Command wasm exposes the lap-time engine to the browser via WebAssembly.
// After loading, it registers a global JavaScript function:
//
//	runComparison(jsonString) -> jsonString
//
// The input and output are the JSON-encoded engine Input and Log, the same
// contract the CLI run command reads and writes.
package main

import (
	"syscall/js"

	"github.com/cxd309/laptime-engine/internal/engine"
)

func main() {
	js.Global().Set("runComparison", js.FuncOf(runComparison))
	select {} // keep the WASM module alive until the page is closed
}

func runComparison(_ js.Value, args []js.Value) any {
	if len(args) < 1 {
		return map[string]any{"error": "no input provided"}
	}

	result, err := engine.RunJSON(args[0].String())
	if err != nil {
		return map[string]any{"error": err.Error()}
	}
	return result
}
