package main

import (
	"nullgen/cmd"
	"os"
)

func main() {
	os.Exit(cmd.Execute())
}
