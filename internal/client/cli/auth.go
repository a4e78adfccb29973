package cli

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/rentafleet/fleetapi-go/internal/client/api"
	"github.com/rentafleet/fleetapi-go/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Login prompts for credentials and authenticates. While offline it
// reports the connectivity problem without touching the network.
// The password is securely wiped before returning.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.session.Login(ctx, email, string(password)); err != nil {
		switch {
		case errors.Is(err, api.ErrNoConnectivity):
			log.Printf("You are offline, check your network connection")
		case errors.Is(err, api.ErrUnauthorized):
			log.Printf("Invalid email or password")
		default:
			log.Printf("Login unsuccessful: %s", err.Error())
		}
		return err
	}

	log.Printf("Login successful")
	return nil
}

// Logout ends the session. Local state is cleared even when the
// server-side invalidation fails.
func (a *App) Logout(ctx context.Context) error {
	if err := a.session.Logout(ctx); err != nil {
		log.Printf("Logout finished with warning: %s", err.Error())
		return err
	}
	log.Printf("Logged out")
	return nil
}

// WhoAmI prints the authenticated user's profile.
func (a *App) WhoAmI() {
	user, ok := a.session.CurrentUser()
	if !ok {
		fmt.Println("Not logged in")
		return
	}
	fmt.Printf("%s <%s> (%s)\n", user.FullName(), user.Email, user.Role)
}
