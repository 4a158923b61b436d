// Package main is the entry point for the air guitar application.
package main

import (
	"os"

	"github.com/ayusman/airguitar/cmd/airguitar/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
