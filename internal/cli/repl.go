package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/mmynk/rigbudget/internal/syncclient"
)

const helpText = `Commands:
  show | status | help | exit
  toggle <slot>, price <slot> <amount>, part <slot> <text>
  budget <amount>, currency <code>
  add <name>, rm <n>, xtoggle <n>, xprice <n> <amount>, xpart <n> <text>
  reset, login, signup, logout`

// command handles one shell command. args are the fields after the command
// name; text is the raw remainder of the line for commands that take free text.
type command struct {
	usage string
	run   func(ctx context.Context, a *App, args []string, text string) error
}

var commands = map[string]command{
	"show": {"show", func(ctx context.Context, a *App, args []string, text string) error {
		a.Show()
		return nil
	}},
	"status": {"status", func(ctx context.Context, a *App, args []string, text string) error {
		fmt.Fprintln(a.out, a.Status())
		return nil
	}},
	"help": {"help", func(ctx context.Context, a *App, args []string, text string) error {
		fmt.Fprintln(a.out, helpText)
		return nil
	}},
	"toggle": {"toggle <slot>", func(ctx context.Context, a *App, args []string, text string) error {
		if len(args) != 1 {
			return errUsage
		}
		id, err := resolveSlot(args[0])
		if err != nil {
			return err
		}
		a.Store().ToggleItem(id)
		return nil
	}},
	"price": {"price <slot> <amount>", func(ctx context.Context, a *App, args []string, text string) error {
		if len(args) != 2 {
			return errUsage
		}
		id, err := resolveSlot(args[0])
		if err != nil {
			return err
		}
		a.Store().SetPrice(id, args[1])
		return nil
	}},
	"part": {"part <slot> <text>", func(ctx context.Context, a *App, args []string, text string) error {
		if len(args) < 1 {
			return errUsage
		}
		id, err := resolveSlot(args[0])
		if err != nil {
			return err
		}
		_, name := cutField(text)
		a.Store().SetPartName(id, name)
		return nil
	}},
	"budget": {"budget <amount>", func(ctx context.Context, a *App, args []string, text string) error {
		if len(args) != 1 {
			return errUsage
		}
		return a.SetBudget(ctx, args[0])
	}},
	"currency": {"currency <code>", func(ctx context.Context, a *App, args []string, text string) error {
		if len(args) != 1 {
			return errUsage
		}
		return a.SetCurrency(args[0])
	}},
	"add": {"add <name>", func(ctx context.Context, a *App, args []string, text string) error {
		if a.Store().AddOtherComponent(text) == "" {
			return errUsage
		}
		return nil
	}},
	"rm": {"rm <n>", func(ctx context.Context, a *App, args []string, text string) error {
		return a.withOther(args, 1, func(id string) { a.Store().RemoveOtherComponent(id) })
	}},
	"xtoggle": {"xtoggle <n>", func(ctx context.Context, a *App, args []string, text string) error {
		return a.withOther(args, 1, func(id string) { a.Store().ToggleOtherComponent(id) })
	}},
	"xprice": {"xprice <n> <amount>", func(ctx context.Context, a *App, args []string, text string) error {
		if len(args) != 2 {
			return errUsage
		}
		return a.withOther(args, 2, func(id string) { a.Store().SetOtherComponentPrice(id, args[1]) })
	}},
	"xpart": {"xpart <n> <text>", func(ctx context.Context, a *App, args []string, text string) error {
		return a.withOther(args, -1, func(id string) {
			_, name := cutField(text)
			a.Store().SetOtherComponentPartName(id, name)
		})
	}},
	"reset": {"reset", func(ctx context.Context, a *App, args []string, text string) error {
		a.Store().Reset()
		fmt.Fprintln(a.out, "Checklist reset.")
		return nil
	}},
	"login": {"login", func(ctx context.Context, a *App, args []string, text string) error {
		return a.Login(ctx, syncclient.ModeSignIn)
	}},
	"signup": {"signup", func(ctx context.Context, a *App, args []string, text string) error {
		return a.Login(ctx, syncclient.ModeSignUp)
	}},
	"logout": {"logout", func(ctx context.Context, a *App, args []string, text string) error {
		return a.Logout(ctx)
	}},
}

// withOther resolves args[0] as an extra component position and applies fn.
// want is the exact argument count, or -1 for "at least one".
func (a *App) withOther(args []string, want int, fn func(id string)) error {
	if (want >= 0 && len(args) != want) || len(args) == 0 {
		return errUsage
	}
	id, err := a.resolveOther(args[0])
	if err != nil {
		return err
	}
	fn(id)
	return nil
}

// cutField splits off the first whitespace-separated field of s. rest is the
// text after the single separator that ends the field, kept verbatim.
func cutField(s string) (field, rest string) {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)
	i := strings.IndexFunc(s, unicode.IsSpace)
	if i < 0 {
		return s, ""
	}
	_, size := utf8.DecodeRuneInString(s[i:])
	return s[:i], s[i+size:]
}

// Exec runs one shell line. It reports whether the shell should exit.
func (a *App) Exec(ctx context.Context, line string) (quit bool) {
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return false
	}
	_, text := cutField(line)
	name := strings.ToLower(parts[0])
	if name == "exit" || name == "quit" {
		return true
	}

	cmd, ok := commands[name]
	if !ok {
		fmt.Fprintln(a.out, "Unknown command:", parts[0])
		return false
	}
	if err := cmd.run(ctx, a, parts[1:], text); err != nil {
		if errors.Is(err, errUsage) {
			fmt.Fprintln(a.out, "Usage:", cmd.usage)
		} else {
			fmt.Fprintln(a.out, "Error:", err)
		}
	}
	return false
}

// RunREPL reads commands until EOF or exit. Edits are flushed before it returns.
// Lines are read from the same buffered reader the login prompts use.
func (a *App) RunREPL(ctx context.Context) {
	for {
		line, err := promptLine(a.in, a.out, fmt.Sprintf("rig [%s]> ", a.Status()))
		if err != nil {
			fmt.Fprintln(a.out)
			break
		}
		if a.Exec(ctx, line) {
			break
		}
	}
	a.Close(ctx)
	fmt.Fprintln(a.out, "Bye!")
}
