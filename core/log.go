package core

// LogWriter is a function type for writing log lines.
// Platforms redirect it to UART, USB CDC, or a test buffer.
type LogWriter func(string)

// ColorPrefix starts every transition line
const ColorPrefix = "Color: "

// colorLine formats the line emitted when a phase becomes active
func colorLine(label string) string {
	return ColorPrefix + label
}
