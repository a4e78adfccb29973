// Package fleet provides typed wrappers over the fleet-rental REST API:
// drivers, vehicles, contracts, payments, expenses and the dashboard
// summary. It is a pure adapter over the API client and carries no retry
// or session logic of its own.
package fleet

import "time"

type Driver struct {
	ID            string    `json:"id"`
	FirstName     string    `json:"firstName"`
	LastName      string    `json:"lastName"`
	Email         string    `json:"email"`
	Phone         string    `json:"phone"`
	LicenseNumber string    `json:"licenseNumber"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"createdAt"`
}

type DriverInput struct {
	FirstName     string `json:"firstName"`
	LastName      string `json:"lastName"`
	Email         string `json:"email"`
	Phone         string `json:"phone,omitempty"`
	LicenseNumber string `json:"licenseNumber"`
}

type Vehicle struct {
	ID           string    `json:"id"`
	PlateNumber  string    `json:"plateNumber"`
	Make         string    `json:"make"`
	Model        string    `json:"model"`
	Year         int       `json:"year"`
	Status       string    `json:"status"`
	WeeklyRate   float64   `json:"weeklyRate"`
	OdometerKm   int       `json:"odometerKm"`
	RegisteredAt time.Time `json:"registeredAt"`
}

type VehicleInput struct {
	PlateNumber string  `json:"plateNumber"`
	Make        string  `json:"make"`
	Model       string  `json:"model"`
	Year        int     `json:"year"`
	WeeklyRate  float64 `json:"weeklyRate"`
	OdometerKm  int     `json:"odometerKm,omitempty"`
}

type Contract struct {
	ID         string     `json:"id"`
	DriverID   string     `json:"driverId"`
	VehicleID  string     `json:"vehicleId"`
	StartDate  time.Time  `json:"startDate"`
	EndDate    *time.Time `json:"endDate,omitempty"`
	WeeklyRate float64    `json:"weeklyRate"`
	Deposit    float64    `json:"deposit"`
	Status     string     `json:"status"`
}

type ContractInput struct {
	DriverID   string    `json:"driverId"`
	VehicleID  string    `json:"vehicleId"`
	StartDate  time.Time `json:"startDate"`
	WeeklyRate float64   `json:"weeklyRate"`
	Deposit    float64   `json:"deposit,omitempty"`
}

type Payment struct {
	ID         string    `json:"id"`
	ContractID string    `json:"contractId"`
	Amount     float64   `json:"amount"`
	Method     string    `json:"method"`
	Reference  string    `json:"reference,omitempty"`
	PaidAt     time.Time `json:"paidAt"`
}

type PaymentInput struct {
	ContractID string  `json:"contractId"`
	Amount     float64 `json:"amount"`
	Method     string  `json:"method"`
	Reference  string  `json:"reference,omitempty"`
}

type Expense struct {
	ID          string    `json:"id"`
	VehicleID   string    `json:"vehicleId"`
	Category    string    `json:"category"`
	Amount      float64   `json:"amount"`
	Description string    `json:"description,omitempty"`
	IncurredAt  time.Time `json:"incurredAt"`
}

type ExpenseInput struct {
	VehicleID   string  `json:"vehicleId"`
	Category    string  `json:"category"`
	Amount      float64 `json:"amount"`
	Description string  `json:"description,omitempty"`
}

type DashboardSummary struct {
	ActiveContracts   int     `json:"activeContracts"`
	AvailableVehicles int     `json:"availableVehicles"`
	ActiveDrivers     int     `json:"activeDrivers"`
	WeeklyRevenue     float64 `json:"weeklyRevenue"`
	MonthlyExpenses   float64 `json:"monthlyExpenses"`
	OutstandingAmount float64 `json:"outstandingAmount"`
}
