// Package credentials resolves the password or api token of the acting
// user.
//
// Sources, by priority:
//
//   - stdin, when requested by the caller
//   - the JNODES_PASSWORD or JENKINS_API_TOKEN environment variables
//   - the netrc file entry of the server host and user
//   - an interactive prompt, when stdin is a terminal
package credentials

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog/log"
	"golang.org/x/term"

	"github.com/opensvc/jnodes/core/env"
)

type (
	// T holds the basic auth credentials of a build server request.
	T struct {
		Username string
		Password string
	}

	// Resolver describes where to look for the password of Username on
	// Host.
	Resolver struct {
		Username string
		Host     string

		// NetrcFile is the path of the netrc file. Empty disables the
		// netrc lookup.
		NetrcFile string

		// PasswordStdin reads the password from the first line of Stdin.
		PasswordStdin bool
		Stdin         io.Reader

		// Prompt asks the password interactively. If nil and the process
		// stdin is a terminal, the password is read from the terminal
		// without echo.
		Prompt func(prompt string) (string, error)
	}
)

var (
	// ErrCredentials is the family of all credential resolution errors.
	ErrCredentials = errors.New("credentials")

	// ErrNoPassword is returned when no source provides a password.
	ErrNoPassword = errors.New("no password found")
)

// Resolve returns the credentials of the first source providing a
// password.
func (t Resolver) Resolve() (T, error) {
	c := T{Username: t.Username}
	if t.Username == "" {
		return c, fmt.Errorf("%w: empty username", ErrCredentials)
	}
	if t.PasswordStdin {
		p, err := t.fromStdin()
		if err != nil {
			return c, fmt.Errorf("%w: read password from stdin: %w", ErrCredentials, err)
		}
		c.Password = p
		log.Debug().Str("source", "stdin").Msg("credentials resolved")
		return c, nil
	}
	if p := env.Password(); p != "" {
		c.Password = p
		log.Debug().Str("source", "env").Msg("credentials resolved")
		return c, nil
	}
	if t.NetrcFile != "" {
		p, found, err := t.fromNetrc()
		switch {
		case err != nil:
			return c, fmt.Errorf("%w: %s: %w", ErrCredentials, t.NetrcFile, err)
		case found:
			c.Password = p
			log.Debug().Str("source", "netrc").Str("file", t.NetrcFile).Msg("credentials resolved")
			return c, nil
		}
	}
	prompt := t.Prompt
	if prompt == nil && term.IsTerminal(int(os.Stdin.Fd())) {
		prompt = terminalPrompt
	}
	if prompt != nil {
		p, err := prompt(fmt.Sprintf("Password for %s@%s: ", t.Username, t.Host))
		if err != nil {
			return c, fmt.Errorf("%w: prompt: %w", ErrCredentials, err)
		}
		if p == "" {
			return c, fmt.Errorf("%w: empty password", ErrCredentials)
		}
		c.Password = p
		return c, nil
	}
	return c, fmt.Errorf("%w: %w for %s@%s", ErrCredentials, ErrNoPassword, t.Username, t.Host)
}

func (t Resolver) fromStdin() (string, error) {
	r := t.Stdin
	if r == nil {
		r = os.Stdin
	}
	s, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && err != io.EOF {
		return "", err
	}
	s = strings.TrimRight(s, "\r\n")
	if s == "" {
		return "", fmt.Errorf("empty password")
	}
	return s, nil
}

func (t Resolver) fromNetrc() (string, bool, error) {
	f, err := os.Open(t.NetrcFile)
	if errors.Is(err, os.ErrNotExist) {
		return "", false, nil
	} else if err != nil {
		return "", false, err
	}
	defer f.Close()
	return lookupNetrc(f, t.Host, t.Username)
}

func terminalPrompt(prompt string) (string, error) {
	fmt.Fprint(os.Stderr, prompt)
	b, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
