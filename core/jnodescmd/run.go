package jnodescmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog/log"

	"github.com/opensvc/jnodes/config"
	"github.com/opensvc/jnodes/core/client"
	"github.com/opensvc/jnodes/core/credentials"
	"github.com/opensvc/jnodes/core/nodescript"
	"github.com/opensvc/jnodes/core/output"
	"github.com/opensvc/jnodes/core/router"
	"github.com/opensvc/jnodes/util/render/palette"
)

type (
	// CmdRun generates the script of a verb and submits it to the build
	// server script console.
	CmdRun struct {
		Server   string
		Username string
		Verb     string
		Nodes    []string

		// DryRun prints the script, or the request in the Output format,
		// without contacting the server.
		DryRun bool
		Output string

		PasswordStdin bool

		Config config.T

		Stdin  io.Reader
		Stdout io.Writer

		// Prompt overrides the interactive password prompt.
		Prompt func(prompt string) (string, error)
	}
)

// Run returns an *ExitError carrying the process exit code of the failure.
func (t *CmdRun) Run(ctx context.Context) error {
	return NewExitError(t.run(ctx))
}

func (t *CmdRun) run(ctx context.Context) error {
	if t.Stdout == nil {
		t.Stdout = os.Stdout
	}
	req, err := router.NewRequest(t.Verb, t.Nodes, t.Username)
	if err != nil {
		return err
	}
	script, err := req.Script()
	if err != nil {
		return err
	}
	logger := log.With().Str("verb", req.Verb.String()).Strs("nodes", req.Nodes).Logger()
	if len(req.Nodes) == 0 && !req.Verb.EmptyMeansAll() {
		logger.Warn().Msg("no node selected, the script will not change any node")
	}
	if t.DryRun {
		logger.Debug().Msg("dry run")
		return t.printRequest(req, script)
	}

	c, err := client.New(
		client.WithURL(t.Server),
		client.WithInsecureSkipVerify(t.Config.Insecure),
		client.WithCertificate(t.Config.CertFile, t.Config.KeyFile),
		client.WithTimeout(t.Config.Timeout),
		client.WithDialTimeout(t.Config.DialTimeout),
		client.WithCrumbPath(t.Config.CrumbPath),
		client.WithScriptPath(t.Config.ScriptPath),
	)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUsage, err)
	}

	creds, err := credentials.Resolver{
		Username:      t.Username,
		Host:          c.Host(),
		NetrcFile:     t.Config.Netrc,
		PasswordStdin: t.PasswordStdin,
		Stdin:         t.Stdin,
		Prompt:        t.Prompt,
	}.Resolve()
	if err != nil {
		return err
	}
	c.SetCredentials(creds.Username, creds.Password)

	crumb, err := c.GetCrumb(ctx)
	if err != nil {
		return err
	}

	logger.Info().Str("server", c.URL().Redacted()).Msg("submit script")
	w := output.NewStateWriter(t.Stdout, palette.New(palette.StringPalette{
		Online:       t.Config.Palette.Online,
		Offline:      t.Config.Palette.Offline,
		Connecting:   t.Config.Palette.Connecting,
		Disconnected: t.Config.Palette.Disconnected,
		Error:        t.Config.Palette.Error,
	}).Func())
	err = c.PostScript(ctx, script, crumb, w)
	if flushErr := w.Flush(); err == nil && flushErr != nil {
		err = fmt.Errorf("%w: %w", ErrSubmit, flushErr)
	}
	if err != nil {
		return err
	}
	logger.Debug().Msg("script done")
	return nil
}

func (t *CmdRun) printRequest(req nodescript.Request, script string) error {
	type dryRun struct {
		nodescript.Request `yaml:",inline"`
		Script             string `json:"script" yaml:"script"`
	}
	return output.Renderer{
		Output: t.Output,
		Data: dryRun{
			Request: req,
			Script:  script,
		},
		HumanRenderer: func() string {
			return script
		},
	}.Fprint(t.Stdout)
}
