package ui

import (
	"io"
	"os/exec"
	"runtime"

	"github.com/muesli/termenv"
)

// ClearScreen wipes the terminal behind w. Windows consoles get "cls";
// everything else gets the ANSI erase-display sequence.
func ClearScreen(w io.Writer) error {
	if runtime.GOOS == "windows" {
		cmd := exec.Command("cmd", "/c", "cls")
		cmd.Stdout = w
		return cmd.Run()
	}
	termenv.NewOutput(w).ClearScreen()
	return nil
}
