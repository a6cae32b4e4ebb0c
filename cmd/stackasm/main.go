package main

import (
	"os"

	"stackasm/cmd/stackasm/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
