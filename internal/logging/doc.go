// Package logger provides leveled logging for keyfold CLI commands.
//
// The logger supports multiple verbosity levels controlled by command-line
// flags. Output is prefixed and colorized with fatih/color.
//
// # Verbosity Levels
//
//   - --verbose: shows info messages
//   - --debug: shows all messages including debug details
//
// Without flags, only warnings and errors are shown.
//
// # Usage
//
// Create a logger with the desired verbosity:
//
//	log := Logger{Verbose: verbose, Debug: debug}
//	log.Infof("Processing %d keys", count)
//
// Commands create a logger in their PersistentPreRun and pass it to
// internal functions.
package logger
