package main

import (
	"fmt"
	"os"
)

// consoleNotifier is the terminal stand-in for toast notifications.
type consoleNotifier struct{}

func newConsoleNotifier() *consoleNotifier {
	return &consoleNotifier{}
}

func (n *consoleNotifier) Success(msg string) {
	fmt.Fprintln(os.Stderr, msg)
}

func (n *consoleNotifier) Warning(msg string) {
	fmt.Fprintln(os.Stderr, "warning: "+msg)
}

func (n *consoleNotifier) Error(msg string) {
	fmt.Fprintln(os.Stderr, "error: "+msg)
}
