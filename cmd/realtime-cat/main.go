// Command realtime-cat pipes newline-delimited JSON client events from stdin to
// a realtime session and prints every server event to stdout as one JSON line.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "realtime-cat:", err)
		os.Exit(1)
	}
}
