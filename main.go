package main

import (
	"os"

	"github.com/tabhost/tabhost/cli"
)

func main() {
	if err := cli.RootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
