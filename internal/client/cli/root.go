package cli

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/rentafleet/fleetapi-go/internal/client/api"
	"github.com/rentafleet/fleetapi-go/internal/client/session"
)

func (a *App) getStatus() string {
	s := ""
	if user, ok := a.session.CurrentUser(); ok {
		s = user.Email + " "
	}
	if a.monitor.IsOnline() {
		s += "online"
	} else {
		s += "offline"
	}
	return fmt.Sprintf("(%s)", s)
}

// Run restores any persisted session, starts the connectivity watcher
// and enters the command loop.
func (a *App) Run(ctx context.Context) {
	log.Println("Welcome to fleetctl (type 'help' for commands)")

	if err := a.session.Restore(ctx); err != nil && !errors.Is(err, api.ErrUnauthorized) {
		log.Printf("Could not restore session: %s", err.Error())
	}

	go a.monitor.Watch(ctx, a.config.ProbeInterval)

	// Session expiry is an expected flow: the manager logs out in the
	// background and the prompt flips, no error dialog.
	unsubscribe := a.session.OnChange(func(s session.State) {
		if s == session.StateUnauthenticated {
			log.Println("Session ended, use 'login' to sign in again")
		}
	})
	defer unsubscribe()

	for {
		fmt.Printf("fleetctl %s> ", a.getStatus())
		line, err := a.reader.ReadString('\n')
		if err != nil {
			break
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "help":
			fmt.Println("Available commands: login, logout, whoami, drivers, vehicles [status], contracts [status], payments [contract], expenses [vehicle], summary, exit")
		case "login":
			_ = a.Login(ctx)
		case "logout":
			_ = a.Logout(ctx)
		case "whoami":
			a.WhoAmI()
		case "drivers":
			a.ListDrivers(ctx)
		case "vehicles":
			status := ""
			if len(args) > 0 {
				status = args[0]
			}
			a.ListVehicles(ctx, status)
		case "contracts":
			status := ""
			if len(args) > 0 {
				status = args[0]
			}
			a.ListContracts(ctx, status)
		case "payments":
			contractID := ""
			if len(args) > 0 {
				contractID = args[0]
			}
			a.ListPayments(ctx, contractID)
		case "expenses":
			vehicleID := ""
			if len(args) > 0 {
				vehicleID = args[0]
			}
			a.ListExpenses(ctx, vehicleID)
		case "summary":
			a.ShowSummary(ctx)
		case "exit", "quit":
			fmt.Println("Bye!")
			return
		default:
			fmt.Printf("Unknown command: %s\n", cmd)
		}
	}
}
