package fleet

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/require"

	"github.com/rentafleet/fleetapi-go/internal/client/api"
	"github.com/rentafleet/fleetapi-go/internal/client/models"
	"github.com/rentafleet/fleetapi-go/internal/retryx"
)

type staticTokens struct{}

func (staticTokens) Get(ctx context.Context) (*models.Session, error) {
	return &models.Session{AccessToken: "T"}, nil
}

// recorded captures the last request that reached the fake backend.
type recorded struct {
	method string
	path   string
	query  string
	auth   string
	body   []byte
}

func ok(w http.ResponseWriter, data any) {
	raw, _ := json.Marshal(data)
	_ = json.NewEncoder(w).Encode(api.Envelope{Success: true, Data: raw})
}

// newTestService runs a backend that records each request and responds
// with the given payload on every route.
func newTestService(t *testing.T, respond func(r *http.Request) any) (*Service, *recorded) {
	t.Helper()
	rec := &recorded{}

	r := mux.NewRouter()
	r.PathPrefix("/").HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		rec.method = req.Method
		rec.path = req.URL.Path
		rec.query = req.URL.RawQuery
		rec.auth = req.Header.Get("Authorization")
		rec.body, _ = io.ReadAll(req.Body)
		ok(w, respond(req))
	})

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	client := api.New(api.Options{
		BaseURL: srv.URL,
		Timeout: time.Second,
		Retry:   retryx.Policy{MaxAttempts: 1, BaseDelay: time.Millisecond, Factor: 2},
		Tokens:  staticTokens{},
	})
	return NewService(client), rec
}

func TestDrivers_ListAndAuth(t *testing.T) {
	svc, rec := newTestService(t, func(*http.Request) any {
		return []Driver{{ID: "d1", FirstName: "Mia", LastName: "Kaur", Status: "active"}}
	})

	drivers, err := svc.Drivers(context.Background())
	require.NoError(t, err)
	require.Len(t, drivers, 1)
	require.Equal(t, "d1", drivers[0].ID)

	require.Equal(t, http.MethodGet, rec.method)
	require.Equal(t, "/drivers", rec.path)
	require.Equal(t, "Bearer T", rec.auth)
}

func TestCreateDriver_PostsBody(t *testing.T) {
	svc, rec := newTestService(t, func(*http.Request) any {
		return Driver{ID: "d2", FirstName: "Omar", LastName: "Reyes"}
	})

	in := DriverInput{FirstName: "Omar", LastName: "Reyes", Email: "omar@fleet.example", LicenseNumber: "L-500"}
	driver, err := svc.CreateDriver(context.Background(), in)
	require.NoError(t, err)
	require.Equal(t, "d2", driver.ID)

	require.Equal(t, http.MethodPost, rec.method)
	require.Equal(t, "/drivers", rec.path)

	var sent DriverInput
	require.NoError(t, json.Unmarshal(rec.body, &sent))
	require.Equal(t, in, sent)
}

func TestUpdateDriver_PutsToResource(t *testing.T) {
	svc, rec := newTestService(t, func(*http.Request) any {
		return Driver{ID: "d1", Phone: "555-0101"}
	})

	_, err := svc.UpdateDriver(context.Background(), "d1", DriverInput{FirstName: "Mia", LastName: "Kaur", Email: "mia@fleet.example", Phone: "555-0101", LicenseNumber: "L-1"})
	require.NoError(t, err)
	require.Equal(t, http.MethodPut, rec.method)
	require.Equal(t, "/drivers/d1", rec.path)
}

func TestDeleteDriver(t *testing.T) {
	svc, rec := newTestService(t, func(*http.Request) any { return nil })

	require.NoError(t, svc.DeleteDriver(context.Background(), "d9"))
	require.Equal(t, http.MethodDelete, rec.method)
	require.Equal(t, "/drivers/d9", rec.path)
}

func TestVehicles_StatusFilter(t *testing.T) {
	svc, rec := newTestService(t, func(*http.Request) any { return []Vehicle{} })

	_, err := svc.Vehicles(context.Background(), "available")
	require.NoError(t, err)
	require.Equal(t, "/vehicles", rec.path)
	require.Equal(t, "status=available", rec.query)

	_, err = svc.Vehicles(context.Background(), "")
	require.NoError(t, err)
	require.Empty(t, rec.query)
}

func TestVehicle_GetByID(t *testing.T) {
	svc, rec := newTestService(t, func(*http.Request) any {
		return Vehicle{ID: "v1", PlateNumber: "KA-01-77", WeeklyRate: 350}
	})

	v, err := svc.Vehicle(context.Background(), "v1")
	require.NoError(t, err)
	require.Equal(t, "KA-01-77", v.PlateNumber)
	require.Equal(t, "/vehicles/v1", rec.path)
}

func TestContracts_StatusFilter(t *testing.T) {
	svc, rec := newTestService(t, func(*http.Request) any { return []Contract{{ID: "c1"}} })

	contracts, err := svc.Contracts(context.Background(), "active")
	require.NoError(t, err)
	require.Len(t, contracts, 1)
	require.Equal(t, "/contracts", rec.path)
	require.Equal(t, "status=active", rec.query)
}

func TestEndContract_PostsToEndAction(t *testing.T) {
	ended := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	svc, rec := newTestService(t, func(*http.Request) any {
		return Contract{ID: "c1", Status: "ended", EndDate: &ended}
	})

	c, err := svc.EndContract(context.Background(), "c1")
	require.NoError(t, err)
	require.Equal(t, "ended", c.Status)
	require.NotNil(t, c.EndDate)

	require.Equal(t, http.MethodPost, rec.method)
	require.Equal(t, "/contracts/c1/end", rec.path)
}

func TestPayments_FilteredByContract(t *testing.T) {
	svc, rec := newTestService(t, func(*http.Request) any { return []Payment{} })

	_, err := svc.Payments(context.Background(), "c1")
	require.NoError(t, err)
	require.Equal(t, "/payments", rec.path)
	require.Equal(t, "contractId=c1", rec.query)
}

func TestCreateExpense(t *testing.T) {
	svc, rec := newTestService(t, func(*http.Request) any {
		return Expense{ID: "e1", VehicleID: "v1", Category: "maintenance", Amount: 120.50}
	})

	e, err := svc.CreateExpense(context.Background(), ExpenseInput{VehicleID: "v1", Category: "maintenance", Amount: 120.50})
	require.NoError(t, err)
	require.Equal(t, "e1", e.ID)
	require.Equal(t, http.MethodPost, rec.method)
	require.Equal(t, "/expenses", rec.path)
}

func TestExpenses_VehicleFilter(t *testing.T) {
	svc, rec := newTestService(t, func(*http.Request) any { return []Expense{} })

	_, err := svc.Expenses(context.Background(), "v7")
	require.NoError(t, err)
	require.Equal(t, "vehicleId=v7", rec.query)
}

func TestSummary(t *testing.T) {
	svc, rec := newTestService(t, func(*http.Request) any {
		return DashboardSummary{ActiveContracts: 4, AvailableVehicles: 2, WeeklyRevenue: 1400}
	})

	sum, err := svc.Summary(context.Background())
	require.NoError(t, err)
	require.Equal(t, 4, sum.ActiveContracts)
	require.Equal(t, 1400.0, sum.WeeklyRevenue)
	require.Equal(t, "/dashboard/summary", rec.path)
}
