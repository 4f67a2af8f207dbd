package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/google/subcommands"

	"github.com/mmynk/rigbudget/internal/config"
	"github.com/mmynk/rigbudget/internal/syncclient"
)

// Terminal streams; tests swap them out.
var (
	stdin  io.Reader = os.Stdin
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
)

// Commands is the list of subcommands cmd/rigbudget registers.
var Commands = []subcommands.Command{
	&shellCmd{},
	&showCmd{},
	&loginCmd{},
	&loginCmd{signup: true},
	&logoutCmd{},
	&whoamiCmd{},
	&budgetCmd{},
}

// openApp loads the client config and connects. Failures are reported on
// stderr and mapped to an exit status.
func openApp(ctx context.Context) (*App, subcommands.ExitStatus) {
	cfg, err := config.LoadClient()
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return nil, subcommands.ExitUsageError
	}
	a, err := Open(ctx, cfg, stdin, stdout)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return nil, subcommands.ExitFailure
	}
	return a, subcommands.ExitSuccess
}

func exitStatus(err error) subcommands.ExitStatus {
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

type shellCmd struct{}

func (*shellCmd) Name() string     { return "shell" }
func (*shellCmd) Synopsis() string { return "edit the checklist interactively" }
func (*shellCmd) Usage() string {
	return `rigbudget shell

  Starts an interactive session. Type "help" for the command list.
`
}
func (*shellCmd) SetFlags(*flag.FlagSet) {}

func (*shellCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, status := openApp(ctx)
	if a == nil {
		return status
	}
	a.Show()
	a.RunREPL(ctx)
	return subcommands.ExitSuccess
}

type showCmd struct{}

func (*showCmd) Name() string     { return "show" }
func (*showCmd) Synopsis() string { return "print the checklist and budget summary" }
func (*showCmd) Usage() string {
	return `rigbudget show

  Prints the saved checklist of the signed-in user.
`
}
func (*showCmd) SetFlags(*flag.FlagSet) {}

func (*showCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, status := openApp(ctx)
	if a == nil {
		return status
	}
	a.Show()
	return subcommands.ExitSuccess
}

type loginCmd struct {
	signup bool
	email  string
}

func (c *loginCmd) Name() string {
	if c.signup {
		return "signup"
	}
	return "login"
}

func (c *loginCmd) Synopsis() string {
	if c.signup {
		return "create an account and sign in"
	}
	return "sign in to sync the checklist"
}

func (c *loginCmd) Usage() string {
	return fmt.Sprintf(`rigbudget %s [-email <address>]

  Prompts for the password (and the email unless -email is given).
`, c.Name())
}

func (c *loginCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.email, "email", "", "Account email")
}

func (c *loginCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, status := openApp(ctx)
	if a == nil {
		return status
	}
	defer a.Close(ctx)

	mode := syncclient.ModeSignIn
	if c.signup {
		mode = syncclient.ModeSignUp
	}
	if c.email == "" {
		return exitStatus(a.Login(ctx, mode))
	}
	password, err := promptPassword(a.in, a.out)
	if err != nil {
		return exitStatus(err)
	}
	return exitStatus(a.Authenticate(ctx, c.email, password, mode))
}

type logoutCmd struct{}

func (*logoutCmd) Name() string     { return "logout" }
func (*logoutCmd) Synopsis() string { return "sign out and forget the session token" }
func (*logoutCmd) Usage() string {
	return "rigbudget logout\n"
}
func (*logoutCmd) SetFlags(*flag.FlagSet) {}

func (*logoutCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, status := openApp(ctx)
	if a == nil {
		return status
	}
	return exitStatus(a.Logout(ctx))
}

type whoamiCmd struct{}

func (*whoamiCmd) Name() string     { return "whoami" }
func (*whoamiCmd) Synopsis() string { return "print the signed-in user" }
func (*whoamiCmd) Usage() string {
	return "rigbudget whoami\n"
}
func (*whoamiCmd) SetFlags(*flag.FlagSet) {}

func (*whoamiCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, status := openApp(ctx)
	if a == nil {
		return status
	}
	a.Whoami(ctx)
	return subcommands.ExitSuccess
}

type budgetCmd struct{}

func (*budgetCmd) Name() string     { return "budget" }
func (*budgetCmd) Synopsis() string { return "set the total budget" }
func (*budgetCmd) Usage() string {
	return `rigbudget budget <amount>

  Sets and saves the total budget. Requires a signed-in session.
`
}
func (*budgetCmd) SetFlags(*flag.FlagSet) {}

func (*budgetCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprint(stderr, (&budgetCmd{}).Usage())
		return subcommands.ExitUsageError
	}
	a, status := openApp(ctx)
	if a == nil {
		return status
	}
	if a.client.State() != syncclient.StateReady {
		return exitStatus(fmt.Errorf("not signed in; run rigbudget login first"))
	}
	if err := a.SetBudget(ctx, f.Arg(0)); err != nil {
		return exitStatus(err)
	}
	fmt.Fprintf(a.out, "Budget set to %d\n", a.Store().Budget())
	return subcommands.ExitSuccess
}
