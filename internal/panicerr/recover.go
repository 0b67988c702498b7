// Package panicerr isolates a function in its own goroutine, so that any
// panic or runtime.Goexit within it comes back as an ordinary error.
package panicerr

import (
	"errors"
	"fmt"
)

// Recover runs f in a new goroutine, returning its error; a panic or a
// runtime.Goexit within f is returned as an error too, labeled with name.
func Recover(name string, f func() error) error {
	errch := make(chan error, 1)
	go func() {
		defer close(errch)
		defer recoverExit(name, errch)
		defer recoverPanic(name, errch)
		errch <- f()
	}()
	return <-errch
}

// recoverExit runs last among Recover's defers; the buffered send only
// succeeds if nothing else was sent, which means that f called Goexit.
func recoverExit(name string, errch chan<- error) {
	select {
	case errch <- exitError(name):
	default:
	}
}

type exitError string

func (name exitError) Error() string {
	if name == "" {
		return "runtime.Goexit called"
	}
	return fmt.Sprintf("%v called runtime.Goexit", string(name))
}

// IsExit returns true if err indicates a recovered goroutine exit.
func IsExit(err error) bool {
	var xe exitError
	return errors.As(err, &xe)
}
