package env

import "os"

const (
	// PasswordVar is the environment variable holding the password or api
	// token of the acting user.
	PasswordVar = "JNODES_PASSWORD"

	// TokenVar is the api token variable commonly exported for the build
	// server command line tools. It is used when PasswordVar is not set.
	TokenVar = "JENKINS_API_TOKEN"
)

// Password returns the password forced via the JNODES_PASSWORD or
// JENKINS_API_TOKEN environment variables.
func Password() string {
	if s := os.Getenv(PasswordVar); s != "" {
		return s
	}
	return os.Getenv(TokenVar)
}

// RequestID returns the request identifier set by a calling tool, to
// embed in the logs.
func RequestID() string {
	return os.Getenv("JNODES_REQUEST_ID")
}
