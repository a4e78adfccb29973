package cli

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"text/tabwriter"

	"github.com/rentafleet/fleetapi-go/internal/client/api"
)

func (a *App) reportError(err error) {
	switch {
	case errors.Is(err, api.ErrNoConnectivity):
		log.Printf("You are offline, check your network connection")
	case errors.Is(err, api.ErrUnauthorized):
		// expected session expiry, the prompt already shows the state
	default:
		log.Printf("Request failed: %s", err.Error())
	}
}

func (a *App) ListDrivers(ctx context.Context) {
	drivers, err := a.fleet.Drivers(ctx)
	if err != nil {
		a.reportError(err)
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tEMAIL\tLICENSE\tSTATUS")
	for _, d := range drivers {
		fmt.Fprintf(w, "%s\t%s %s\t%s\t%s\t%s\n",
			d.ID, d.FirstName, d.LastName, d.Email, d.LicenseNumber, d.Status)
	}
	w.Flush()
}

func (a *App) ListVehicles(ctx context.Context, status string) {
	vehicles, err := a.fleet.Vehicles(ctx, status)
	if err != nil {
		a.reportError(err)
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tPLATE\tMAKE\tMODEL\tYEAR\tSTATUS\tWEEKLY RATE")
	for _, v := range vehicles {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%s\t%.2f\n",
			v.ID, v.PlateNumber, v.Make, v.Model, v.Year, v.Status, v.WeeklyRate)
	}
	w.Flush()
}

func (a *App) ListContracts(ctx context.Context, status string) {
	contracts, err := a.fleet.Contracts(ctx, status)
	if err != nil {
		a.reportError(err)
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tDRIVER\tVEHICLE\tSTART\tWEEKLY RATE\tSTATUS")
	for _, c := range contracts {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%.2f\t%s\n",
			c.ID, c.DriverID, c.VehicleID, c.StartDate.Format("2006-01-02"), c.WeeklyRate, c.Status)
	}
	w.Flush()
}

func (a *App) ListExpenses(ctx context.Context, vehicleID string) {
	expenses, err := a.fleet.Expenses(ctx, vehicleID)
	if err != nil {
		a.reportError(err)
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tVEHICLE\tCATEGORY\tAMOUNT\tDATE")
	for _, e := range expenses {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.2f\t%s\n",
			e.ID, e.VehicleID, e.Category, e.Amount, e.IncurredAt.Format("2006-01-02"))
	}
	w.Flush()
}

func (a *App) ListPayments(ctx context.Context, contractID string) {
	payments, err := a.fleet.Payments(ctx, contractID)
	if err != nil {
		a.reportError(err)
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tCONTRACT\tAMOUNT\tMETHOD\tPAID AT")
	for _, p := range payments {
		fmt.Fprintf(w, "%s\t%s\t%.2f\t%s\t%s\n",
			p.ID, p.ContractID, p.Amount, p.Method, p.PaidAt.Format("2006-01-02"))
	}
	w.Flush()
}

func (a *App) ShowSummary(ctx context.Context) {
	s, err := a.fleet.Summary(ctx)
	if err != nil {
		a.reportError(err)
		return
	}

	fmt.Printf("Active contracts:   %d\n", s.ActiveContracts)
	fmt.Printf("Active drivers:     %d\n", s.ActiveDrivers)
	fmt.Printf("Available vehicles: %d\n", s.AvailableVehicles)
	fmt.Printf("Weekly revenue:     %.2f\n", s.WeeklyRevenue)
	fmt.Printf("Monthly expenses:   %.2f\n", s.MonthlyExpenses)
	fmt.Printf("Outstanding:        %.2f\n", s.OutstandingAmount)
}
