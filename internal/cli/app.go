package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/mmynk/rigbudget/internal/checklist"
	"github.com/mmynk/rigbudget/internal/config"
	"github.com/mmynk/rigbudget/internal/currency"
	"github.com/mmynk/rigbudget/internal/localstore"
	"github.com/mmynk/rigbudget/internal/models"
	"github.com/mmynk/rigbudget/internal/remote"
	"github.com/mmynk/rigbudget/internal/syncclient"
)

var errUsage = errors.New("usage")

// App binds a sync client to terminal input and output.
type App struct {
	client    *syncclient.Client
	sessionID string
	in        *bufio.Reader
	out       io.Writer
}

// NewApp wraps an existing client. sessionID labels the anonymous session.
func NewApp(client *syncclient.Client, sessionID string, in io.Reader, out io.Writer) *App {
	return &App{
		client:    client,
		sessionID: sessionID,
		in:        bufio.NewReader(in),
		out:       out,
	}
}

// Open wires the client to the server in cfg and resumes any saved session.
func Open(ctx context.Context, cfg config.ClientConfig, in io.Reader, out io.Writer) (*App, error) {
	local, err := localstore.Open(cfg.StatePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open local storage: %w", err)
	}
	sessionID, err := localstore.SessionID(local)
	if err != nil {
		slog.Warn("Failed to persist session id", "error", err)
	}

	client := syncclient.New(
		checklist.New(),
		remote.NewAuthProvider(nil, cfg.ServerURL, local),
		remote.NewRecordStore(nil, cfg.ServerURL, local),
		syncclient.Options{SaveDelay: cfg.SaveDelay, Local: local},
	)
	client.Resume(ctx)
	return NewApp(client, sessionID, in, out), nil
}

// Close flushes pending edits and waits for background saves.
func (a *App) Close(ctx context.Context) {
	if err := a.client.Flush(ctx); err != nil {
		fmt.Fprintf(a.out, "Warning: last changes were not saved: %v\n", err)
	}
	a.client.Wait()
}

// Store returns the checklist being edited.
func (a *App) Store() *checklist.Store { return a.client.Store() }

// Status is a one-line description of the session.
func (a *App) Status() string {
	if sess := a.client.Session(); sess != nil {
		return fmt.Sprintf("%s (%s)", sess.User.Email, a.client.State())
	}
	if a.sessionID != "" {
		return "anonymous " + a.sessionID
	}
	return "anonymous"
}

// Show prints the checklist, the summary and the last save time.
func (a *App) Show() {
	RenderChecklist(a.out, a.Store())
	fmt.Fprintln(a.out)
	RenderSummary(a.out, a.Store().Summary())
	if at, ok := a.client.LastSaved(); ok {
		fmt.Fprintf(a.out, "Last saved %s\n", at.Local().Format("Jan 2 15:04:05"))
	} else if a.client.Session() == nil {
		fmt.Fprintln(a.out, "Not signed in: changes stay on this device until you log in.")
	}
}

// Login prompts for credentials and signs in or up.
func (a *App) Login(ctx context.Context, mode syncclient.Mode) error {
	email, err := promptLine(a.in, a.out, "Email: ")
	if err != nil {
		return err
	}
	password, err := promptPassword(a.in, a.out)
	if err != nil {
		return err
	}
	return a.Authenticate(ctx, strings.TrimSpace(email), password, mode)
}

// Authenticate signs in or up with the given credentials.
func (a *App) Authenticate(ctx context.Context, email, password string, mode syncclient.Mode) error {
	user, err := a.client.Authenticate(ctx, syncclient.Credentials{Email: email, Password: password}, mode)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Signed in as %s\n", user.Email)
	return nil
}

// Logout ends the session and clears the checklist from memory.
func (a *App) Logout(ctx context.Context) error {
	if a.client.Session() == nil {
		fmt.Fprintln(a.out, "Not signed in.")
		return nil
	}
	if err := a.client.SignOut(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Signed out.")
	return nil
}

// Whoami prints the signed-in user, if any.
func (a *App) Whoami(ctx context.Context) {
	if user := a.client.CurrentUser(ctx); user != nil {
		fmt.Fprintf(a.out, "%s (%s)\n", user.Email, user.ID)
		return
	}
	fmt.Fprintln(a.out, "Not signed in.")
}

// SetBudget sets the budget. While signed in only the budget is written,
// immediately.
func (a *App) SetBudget(ctx context.Context, raw string) error {
	if a.client.State() == syncclient.StateReady {
		budget, err := a.client.SaveBudget(ctx, raw)
		if err != nil {
			return fmt.Errorf("budget set to %d but not saved: %w", budget, err)
		}
		return nil
	}
	a.Store().SetBudget(raw)
	return nil
}

// SetCurrency switches the display currency.
func (a *App) SetCurrency(code string) error {
	code = strings.ToUpper(strings.TrimSpace(code))
	if !currency.Supported(code) {
		return fmt.Errorf("unsupported currency %q (choose from %s)", code, strings.Join(currency.Codes(), ", "))
	}
	a.Store().SetCurrency(code)
	return nil
}

// resolveSlot accepts a slot ID (case-insensitive) or a 1-based position.
func resolveSlot(arg string) (string, error) {
	if n, err := strconv.Atoi(arg); err == nil {
		if n < 1 || n > len(models.Slots) {
			return "", fmt.Errorf("slot number must be between 1 and %d", len(models.Slots))
		}
		return models.Slots[n-1].ID, nil
	}
	for _, s := range models.Slots {
		if strings.EqualFold(s.ID, arg) {
			return s.ID, nil
		}
	}
	return "", fmt.Errorf("unknown slot %q", arg)
}

// resolveOther maps a 1-based position in the extra component list to its ID.
func (a *App) resolveOther(arg string) (string, error) {
	others := a.Store().OtherComponents()
	n, err := strconv.Atoi(arg)
	if err != nil || n < 1 || n > len(others) {
		return "", fmt.Errorf("no other component #%s", arg)
	}
	return others[n-1].ID, nil
}
