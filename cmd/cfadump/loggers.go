package main

import (
	"log"
	"os"
)

var (
	// dbg logs progress information to standard error.
	dbg = log.New(os.Stderr, "cfadump: ", 0)
	// warn logs recoverable problems (e.g. a lint fixture with no top-level
	// functions) to standard error.
	warn = log.New(os.Stderr, "cfadump: warning: ", 0)
)
