package gui

import "errors"

var ErrCancelled = errors.New("setup wizard cancelled")
