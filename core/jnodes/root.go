package jnodes

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/kballard/go-shellquote"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/opensvc/jnodes/config"
	"github.com/opensvc/jnodes/core/env"
	"github.com/opensvc/jnodes/core/jnodescmd"
	"github.com/opensvc/jnodes/core/output"
	"github.com/opensvc/jnodes/core/router"
	"github.com/opensvc/jnodes/util/logging"
	"github.com/opensvc/jnodes/util/xsession"
)

var (
	// Version is set at build time.
	Version = "dev"

	colorFlag   string
	configFlag  string
	logFileFlag string
	outputFlag  string

	callerFlag        bool
	debugFlag         bool
	dryRunFlag        bool
	insecureFlag      bool
	passwordStdinFlag bool
	quietFlag         bool

	cfg config.T

	root *cobra.Command
)

func newRoot() *cobra.Command {
	name := filepath.Base(os.Args[0])
	return &cobra.Command{
		Use:   name + " <server-url> <username> <verb> [node ...]",
		Short: "batch administrative operations on build server worker nodes",
		Long: `Generate a groovy script operating on a set of worker nodes and submit
it to the build server script console in a single request.

Verbs:
  connect-nodes [node ...]      launch the agent of the nodes
  disconnect-nodes [node ...]   close the agent channel of the nodes
  online-nodes [node ...]       clear the temporarily offline flag and wait online
  offline-nodes [node ...]      set the temporarily offline flag and wait offline
  node-labels [node ...]        print the labels of the nodes, all if none
  node-status [node ...]        print the state of the nodes, all if none
  list-nodes                    print the name of every node

Node names can be passed as separate arguments or as whitespace-delimited
lists. Verbs are case-insensitive.`,
		Example: `  ` + name + ` https://ci.example.com alice offline-nodes "web1 web2"
  ` + name + ` https://ci.example.com alice node-status
  echo $TOKEN | ` + name + ` --password-stdin https://ci.example.com alice connect-nodes web1`,
		Args:              validateArgs,
		PersistentPreRunE: persistentPreRunE,
		RunE:              runE,
		ValidArgsFunction: validArgs,
		SilenceUsage:      true,
		SilenceErrors:     true,
		Version:           Version,
	}
}

func validateArgs(_ *cobra.Command, args []string) error {
	if len(args) < 3 {
		return &jnodescmd.ExitError{
			Code: jnodescmd.ExitUsage,
			Err:  fmt.Errorf("%w: requires at least 3 arguments, received %d", jnodescmd.ErrUsage, len(args)),
		}
	}
	return nil
}

func validArgs(_ *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) != 2 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	l := make([]string, 0)
	for _, candidate := range router.Verbs() {
		if strings.HasPrefix(candidate, strings.ToLower(toComplete)) {
			l = append(l, candidate)
		}
	}
	return l, cobra.ShellCompDirectiveNoFileComp
}

func configureLogger() error {
	zerolog.TimeFieldFormat = time.RFC3339Nano
	level := "info"
	if debugFlag {
		level = "debug"
	}
	logFile := cfg.Log.File
	if logFileFlag != "" {
		logFile = logFileFlag
	}
	w := root.ErrOrStderr()
	f, _ := w.(*os.File)
	logging.SetDefaultConsoleWriter(zerolog.ConsoleWriter{Out: w, TimeFormat: logging.TimeFormat})
	err := logging.Configure(logging.Config{
		WithConsoleLog: !quietFlag || debugFlag,
		WithColor:      output.UseColor(colorFlag, f),
		WithCaller:     callerFlag,
		Level:          level,
		WithLogFile:    logFile != "",
		File:           logFile,
		MaxSize:        cfg.Log.MaxSize,
		MaxBackups:     cfg.Log.MaxBackups,
		MaxAge:         cfg.Log.MaxAge,
	})
	if err != nil {
		return err
	}
	log.Logger = log.Logger.With().
		Str("version", Version).
		Str("sid", xsession.ID).
		Logger()
	if requestID := env.RequestID(); requestID != "" {
		log.Logger = log.Logger.With().Str("request_id", requestID).Logger()
	}
	return nil
}

func persistentPreRunE(_ *cobra.Command, _ []string) error {
	output.SetColor(colorFlag, os.Stdout)
	var err error
	if cfg, err = config.Load(configFlag); err != nil {
		return err
	}
	if insecureFlag {
		cfg.Insecure = true
	}
	return configureLogger()
}

func runE(cmd *cobra.Command, args []string) error {
	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	log.Debug().Str("argv", shellquote.Join(os.Args...)).Msg("run")
	options := jnodescmd.CmdRun{
		Server:        args[0],
		Username:      args[1],
		Verb:          args[2],
		Nodes:         args[3:],
		DryRun:        dryRunFlag,
		Output:        outputFlag,
		PasswordStdin: passwordStdinFlag,
		Config:        cfg,
		Stdin:         cmd.InOrStdin(),
		Stdout:        cmd.OutOrStdout(),
	}
	return options.Run(ctx)
}

// Execute parses the process arguments, runs the command and exits.
// This is called by main.main(). It only needs to happen once to the root command.
func Execute() {
	os.Exit(ExecuteArgs(os.Args[1:]))
}

// ExecuteArgs parses args, executes the cobra command and returns the
// process exit code.
//
// Example:
//
//	ExecuteArgs([]string{"https://ci.example.com", "alice", "list-nodes"})
func ExecuteArgs(args []string) int {
	type exitcoder interface {
		ExitCode() int
	}
	var xerr exitcoder
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	if err == nil {
		return jnodescmd.ExitOK
	}
	xc := jnodescmd.ExitUsage
	if errors.As(err, &xerr) {
		xc = xerr.ExitCode()
	}
	fmt.Fprintf(root.ErrOrStderr(), "Error: %s\n", err)
	switch xc {
	case jnodescmd.ExitUnknownVerb:
		fmt.Fprintf(root.ErrOrStderr(), "Accepted verbs: %s\n\n", strings.Join(router.Verbs(), ", "))
		fmt.Fprint(root.ErrOrStderr(), root.UsageString())
	case jnodescmd.ExitUsage:
		if errors.Is(err, jnodescmd.ErrUsage) {
			fmt.Fprint(root.ErrOrStderr(), root.UsageString())
		}
	}
	return xc
}

func init() {
	root = newRoot()
	flags := root.PersistentFlags()
	flags.StringVar(&configFlag, "config", "", "config file (default \"~/.jnodes.yaml\")")
	flags.StringVar(&colorFlag, "color", "auto", "output colorization yes|no|auto")
	flags.BoolVarP(&quietFlag, "quiet", "q", false, "do not display logs on the console")
	flags.BoolVar(&debugFlag, "debug", false, "display logs at debug level")
	flags.BoolVar(&callerFlag, "caller", false, "show the caller file and linenum in logs")
	flags.StringVar(&logFileFlag, "log-file", "", "also write json logs to this rolling file")

	flags = root.Flags()
	flags.BoolVar(&dryRunFlag, "dry-run", false, "print the generated script instead of submitting it")
	flags.StringVarP(&outputFlag, "output", "o", "human", "dry-run output format human|json|yaml")
	flags.BoolVar(&insecureFlag, "insecure", false, "skip the server certificate verification")
	flags.BoolVar(&passwordStdinFlag, "password-stdin", false, "read the password or api token from stdin")

	root.AddCommand(newCmdCompletion())
}
