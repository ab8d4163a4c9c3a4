package supplierinfra

import (
	"context"

	"github.com/Abraxas-365/supplierportal/pkg/kernel"
	"github.com/Abraxas-365/supplierportal/pkg/supplier"
)

// MockRepository returns the same sample dashboard for every account. Used
// when SUPPLIER_SOURCE=mock.
type MockRepository struct{}

func NewMockRepository() *MockRepository {
	return &MockRepository{}
}

func (MockRepository) FindByAccount(_ context.Context, accountID kernel.AccountID) (*supplier.SupplierData, error) {
	return &supplier.SupplierData{
		AccountID:      accountID,
		SupplierName:   "Sample Supplier",
		TotalDonations: 156,
		MealsProvided:  2340,
		CO2Saved:       890.5,
		RecentDonations: []supplier.Donation{
			{Date: "2026-01-01", Items: 45, Weight: 23.5},
			{Date: "2025-12-28", Items: 38, Weight: 19.2},
			{Date: "2025-12-25", Items: 52, Weight: 28.1},
		},
	}, nil
}

// MockDirectory accepts every identity and uses it as the account id.
// Refused by config validation in production.
type MockDirectory struct{}

func NewMockDirectory() *MockDirectory {
	return &MockDirectory{}
}

func (MockDirectory) ResolveAccount(_ context.Context, identity kernel.Email) (kernel.AccountID, bool, error) {
	return kernel.NewAccountID(identity.String()), true, nil
}
