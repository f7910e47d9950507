package xsession

import (
	"os"

	"github.com/google/uuid"
)

var (
	//
	// ID is an uuid identifying the command execution.
	//
	// This uuid is embedded in the logs so it's easy to correlate the
	// client logs of a run with the script console requests it issued.
	//
	// A wrapper can force the ID via the JNODES_SESSION_ID environment
	// variable to group several runs under the same session.
	//
	ID string
)

const sessionIDVar = "JNODES_SESSION_ID"

func getID() string {
	id := os.Getenv(sessionIDVar)
	if id == "" {
		// No uuid set. Generate a new one.
		return newID()
	}
	if _, err := uuid.Parse(id); err != nil {
		// Invalid uuid format. Generate a new one.
		return newID()
	}
	return id
}

func newID() string {
	return uuid.New().String()
}

// for init() test
func initID() {
	ID = getID()
}

func init() {
	initID()
}
