package supplierinfra

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Abraxas-365/supplierportal/pkg/errx"
	"github.com/Abraxas-365/supplierportal/pkg/kernel"
	"github.com/Abraxas-365/supplierportal/pkg/supplier"
	"github.com/jmoiron/sqlx"
)

// PostgresRepository serves both the supplier dashboard data and the login
// directory from the suppliers and donations tables.
type PostgresRepository struct {
	db *sqlx.DB
}

func NewPostgresRepository(db *sqlx.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// ResolveAccount implements otp.AccountDirectory
func (r *PostgresRepository) ResolveAccount(ctx context.Context, identity kernel.Email) (kernel.AccountID, bool, error) {
	var accountID string
	err := r.db.GetContext(ctx, &accountID,
		`SELECT account_id FROM suppliers WHERE lower(email) = $1 LIMIT 1`,
		identity.String(),
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", false, nil
		}
		return "", false, errx.Wrap(err, "failed to resolve supplier account", errx.TypeInternal)
	}
	return kernel.NewAccountID(accountID), true, nil
}

type summaryRow struct {
	AccountID      string  `db:"account_id"`
	SupplierName   string  `db:"supplier_name"`
	TotalDonations int     `db:"total_donations"`
	MealsProvided  int     `db:"meals_provided"`
	CO2Saved       float64 `db:"co2_saved"`
}

type donationRow struct {
	Date   string  `db:"date"`
	Items  int     `db:"items"`
	Weight float64 `db:"weight"`
}

const summaryQuery = `
SELECT s.account_id,
       s.supplier_name,
       COUNT(d.id)                          AS total_donations,
       COALESCE(SUM(d.meals_provided), 0)   AS meals_provided,
       COALESCE(SUM(d.co2_saved), 0)::float AS co2_saved
FROM suppliers s
LEFT JOIN donations d ON d.account_id = s.account_id
WHERE s.account_id = $1
GROUP BY s.account_id, s.supplier_name`

const recentDonationsQuery = `
SELECT to_char(donated_on, 'YYYY-MM-DD') AS date,
       items,
       weight::float AS weight
FROM donations
WHERE account_id = $1
ORDER BY donated_on DESC
LIMIT $2`

// FindByAccount implements supplier.Repository
func (r *PostgresRepository) FindByAccount(ctx context.Context, accountID kernel.AccountID) (*supplier.SupplierData, error) {
	var summary summaryRow
	if err := r.db.GetContext(ctx, &summary, summaryQuery, accountID.String()); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, supplier.ErrNotFound().WithDetail("account_id", accountID)
		}
		return nil, errx.Wrap(err, "failed to fetch supplier summary", errx.TypeInternal)
	}

	var rows []donationRow
	if err := r.db.SelectContext(ctx, &rows, recentDonationsQuery, accountID.String(), supplier.RecentDonationsLimit); err != nil {
		return nil, errx.Wrap(err, "failed to fetch recent donations", errx.TypeInternal)
	}

	recent := make([]supplier.Donation, 0, len(rows))
	for _, row := range rows {
		recent = append(recent, supplier.Donation{
			Date:   row.Date,
			Items:  row.Items,
			Weight: row.Weight,
		})
	}

	return &supplier.SupplierData{
		AccountID:       kernel.NewAccountID(summary.AccountID),
		SupplierName:    summary.SupplierName,
		TotalDonations:  summary.TotalDonations,
		MealsProvided:   summary.MealsProvided,
		CO2Saved:        summary.CO2Saved,
		RecentDonations: recent,
	}, nil
}
