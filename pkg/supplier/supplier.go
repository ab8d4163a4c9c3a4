package supplier

import (
	"context"
	"net/http"

	"github.com/Abraxas-365/supplierportal/pkg/errx"
	"github.com/Abraxas-365/supplierportal/pkg/kernel"
)

// RecentDonationsLimit is how many donations SupplierData carries
const RecentDonationsLimit = 10

// Donation is a single delivery to the food bank
type Donation struct {
	Date   string  `json:"date"`
	Items  int     `json:"items"`
	Weight float64 `json:"weight"`
}

// SupplierData is the dashboard summary for one supplier account
type SupplierData struct {
	AccountID       kernel.AccountID `json:"accountId"`
	SupplierName    string           `json:"supplierName"`
	TotalDonations  int              `json:"totalDonations"`
	MealsProvided   int              `json:"mealsProvided"`
	CO2Saved        float64          `json:"co2Saved"`
	RecentDonations []Donation       `json:"recentDonations"`
}

// Repository reads supplier data. Implementations only ever return data for
// the requested account.
type Repository interface {
	FindByAccount(ctx context.Context, accountID kernel.AccountID) (*SupplierData, error)
}

// ============================================================================
// Error Registry
// ============================================================================

var ErrRegistry = errx.NewRegistry("SUPPLIER")

var (
	CodeNotFound = ErrRegistry.Register("NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "No data found for this supplier")
)

func ErrNotFound() *errx.Error {
	return ErrRegistry.New(CodeNotFound)
}
