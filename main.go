// Package main is the entry point for the spore CLI.
package main

import "github.com/mouse-blink/spore/cmd"

func main() {
	cmd.Execute()
}
