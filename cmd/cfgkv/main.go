package main

import (
	"os"

	"github.com/calumari/cfgkv/cmd/cfgkv/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
