// sopctl is the command line client for the GenX S&OP API. It drives the
// same client SDK the web frontend would: persisted sessions, preference
// storage and the normalized resource services.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
