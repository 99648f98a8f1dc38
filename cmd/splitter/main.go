package main

import (
	"fmt"
	"os"
)

const (
	serviceName    = "rvc-split-audio"
	serviceVersion = "1.0.0"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
