package main

import (
	"fmt"
	"io"
	"os"
)

const (
	colorGreen  = "\033[0;32m"
	colorRed    = "\033[0;31m"
	colorYellow = "\033[1;33m"
	colorBlue   = "\033[0;34m"
	colorReset  = "\033[0m"
)

// out is where the helpers print; tests point it at a buffer.
var out io.Writer = os.Stdout

func PrintInfo(format string, a ...interface{}) {
	fmt.Fprintf(out, colorBlue+"ℹ "+format+colorReset+"\n", a...)
}

func PrintSuccess(format string, a ...interface{}) {
	fmt.Fprintf(out, colorGreen+"✓ "+format+colorReset+"\n", a...)
}

func PrintWarning(format string, a ...interface{}) {
	fmt.Fprintf(out, colorYellow+"⚠ "+format+colorReset+"\n", a...)
}

func PrintError(format string, a ...interface{}) {
	fmt.Fprintf(out, colorRed+"✗ "+format+colorReset+"\n", a...)
}

func PrintHeader(title string) {
	fmt.Fprintf(out, "\n"+colorYellow+"=== %s ==="+colorReset+"\n", title)
}
