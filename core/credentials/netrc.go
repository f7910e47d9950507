package credentials

import (
	"io"

	"github.com/bgentry/go-netrc/netrc"
)

// lookupNetrc returns the password of the first machine entry matching the
// host and login. The default entry matches when no machine entry does.
func lookupNetrc(r io.Reader, host, login string) (string, bool, error) {
	n, err := netrc.Parse(r)
	if err != nil {
		return "", false, err
	}
	for {
		m := n.FindMachine(host)
		switch {
		case m == nil:
			return "", false, nil
		case m.Login == "" || login == "" || m.Login == login:
			return m.Password, true, nil
		case m.IsDefault():
			return "", false, nil
		}
		// a later entry of the same host may hold the login
		n.RemoveMachine(host)
	}
}
