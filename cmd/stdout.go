package cmd

import (
	"io"
	"os"
)

// stdout is where programs are written when no output path is given.
var stdout io.Writer = os.Stdout
