package output

import (
	"io"
	"os"
)

// ResolveColorMode combines the --color flag with TTY detection into the
// isTTY value the Printer styles key off:
//   - "never":  colors off regardless of the terminal
//   - "always": colors on even when piped
//   - anything else ("auto"): follow the detected terminal state
func ResolveColorMode(colorMode string, isTTY bool) bool {
	switch colorMode {
	case "never":
		return false
	case "always":
		return true
	default:
		return isTTY
	}
}

// IsTTY reports whether writer is an interactive terminal. Anything that is
// not an *os.File character device, including pipes and test buffers, reads
// as non-interactive.
func IsTTY(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	stat, err := file.Stat()
	if err != nil {
		return false
	}
	return (stat.Mode() & os.ModeCharDevice) != 0
}
