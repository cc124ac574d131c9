package main

import (
	"os"

	"mkc/cmd"
)

func main() {
	os.Exit(cmd.Execute(os.Args))
}
