package cmd

import (
	"fmt"
	"log"
	"time"

	"github.com/Markjohns1/sawarent-messaging/internal/config"
	"github.com/Markjohns1/sawarent-messaging/internal/db"
	"github.com/Markjohns1/sawarent-messaging/internal/model"
	"github.com/Markjohns1/sawarent-messaging/internal/util"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with default templates and demo tenants",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgPath)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}

		sqlDB, err := db.NewMySQLConnection(cfg.MySQL.DSN, db.MySQLOpts{
			MaxOpenConns:    cfg.MySQL.MaxOpenConns,
			MaxIdleConns:    cfg.MySQL.MaxIdleConns,
			ConnMaxLifetime: cfg.MySQL.ConnMaxLifetime,
			ConnMaxIdleTime: cfg.MySQL.ConnMaxIdleTime,
			PingTimeout:     cfg.MySQL.PingTimeout,
		})
		if err != nil {
			return fmt.Errorf("mysql connect: %w", err)
		}
		defer sqlDB.Close()

		log.Println(">> Seeding default templates...")
		if err := seedTemplates(sqlDB); err != nil {
			return err
		}

		log.Println(">> Seeding demo tenants...")
		if err := seedTenants(sqlDB); err != nil {
			return err
		}

		log.Println(">> Seed completed")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)
}

// seedTemplates inserts the stock message templates; skipped when any
// templates already exist.
func seedTemplates(dbx *sqlx.DB) error {
	var count int
	if err := dbx.Get(&count, `SELECT COUNT(*) FROM templates`); err != nil {
		return fmt.Errorf("count templates: %w", err)
	}
	if count > 0 {
		log.Printf(">> templates already seeded (%d rows), skipping", count)
		return nil
	}

	templates := []model.Template{
		{
			Name:     "Rent Reminder",
			Category: model.CategoryReminder,
			Variant:  "friendly",
			Body:     "Hi {tenant_name}, this is a friendly reminder that your rent of KES {amount} for unit {unit_number} is due. Thank you!",
		},
		{
			Name:     "Payment Received",
			Category: model.CategoryReceipt,
			Variant:  "formal",
			Body:     "Dear {tenant_name}, we confirm receipt of your payment of KES {amount} for unit {unit_number}. Reference: {transaction_reference}. Thank you.",
		},
		{
			Name:     "Late Payment Notice",
			Category: model.CategoryPayment,
			Variant:  "formal",
			Body:     "Dear {tenant_name}, your rent payment for unit {unit_number} is overdue. Please settle the outstanding amount of KES {remaining_amount} at your earliest convenience.",
		},
		{
			Name:     "Lease Renewal Reminder",
			Category: model.CategoryLease,
			Variant:  "friendly",
			Body:     "Hello {tenant_name}! Your lease for unit {unit_number} is ending soon. Please contact us to discuss renewal options. We appreciate having you as our tenant!",
		},
		{
			Name:     "Maintenance Notice",
			Category: model.CategoryMaintenance,
			Variant:  "formal",
			Body:     "Dear {tenant_name}, scheduled maintenance will be conducted in unit {unit_number} on {payment_date}. We apologize for any inconvenience.",
		},
		{
			Name:     "Welcome Message",
			Category: model.CategoryGeneral,
			Variant:  "friendly",
			Body:     "Welcome {tenant_name}! We are excited to have you in unit {unit_number}. If you need anything, feel free to reach out. Happy renting!",
		},
	}

	const q = `
INSERT INTO templates
    (id, name, category, variant, body, active, created_at, updated_at)
VALUES
    (?, ?, ?, ?, ?, 1, ?, ?)
`
	tx, err := dbx.Beginx()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	now := time.Now()
	for _, t := range templates {
		if _, err := tx.Exec(q, util.NewULID(), t.Name, t.Category.String(), t.Variant, t.Body, now, now); err != nil {
			return fmt.Errorf("insert template %q: %w", t.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit templates: %w", err)
	}

	log.Printf(">> seeded %d templates", len(templates))
	return nil
}

// seedTenants inserts deterministic demo tenants (idempotent on phone).
func seedTenants(dbx *sqlx.DB) error {
	tenants := []model.Tenant{
		{FullName: "John Doe", Phone: "+254700111222", UnitNumber: "A101", ExpectedRent: 15000, Active: true},
		{FullName: "Mary Wanjiku", Phone: "+254711333444", UnitNumber: "A102", ExpectedRent: 18000, Active: true},
		{FullName: "Peter Otieno", Phone: "+254722555666", UnitNumber: "B201", ExpectedRent: 22000, Active: true},
		{FullName: "Grace Njeri", Phone: "+254733777888", UnitNumber: "B202", ExpectedRent: 22000, Active: false},
	}

	const q = `
INSERT INTO tenants
    (full_name, phone, unit_number, expected_rent, active, created_at, updated_at)
SELECT ?, ?, ?, ?, ?, ?, ?
 WHERE NOT EXISTS (SELECT 1 FROM tenants WHERE phone = ?)
`
	tx, err := dbx.Beginx()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	now := time.Now()
	for _, t := range tenants {
		if _, err := tx.Exec(q, t.FullName, t.Phone, t.UnitNumber, t.ExpectedRent, t.Active, now, now, t.Phone); err != nil {
			return fmt.Errorf("insert tenant %q: %w", t.FullName, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tenants: %w", err)
	}

	return nil
}
