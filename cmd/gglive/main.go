// Command gglive serves live plots over HTTP and renders them to SVG.
package main

import "os"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
