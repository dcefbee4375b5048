package schema_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/frahmantamala/finance-ledger/internal"
	"github.com/frahmantamala/finance-ledger/internal/schema"
	"github.com/frahmantamala/finance-ledger/pkg/logger"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/gorm"
)

const legacyTables = `
CREATE TABLE categories (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    name TEXT NOT NULL UNIQUE,
    type TEXT CHECK(type IN ('income', 'expense'))
);
CREATE TABLE transactions (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    amount REAL NOT NULL,
    category_id INTEGER NOT NULL,
    date TEXT NOT NULL,
    description TEXT,
    FOREIGN KEY(category_id) REFERENCES categories(id)
);`

func columnsOf(db *gorm.DB, table string) []string {
	var names []string
	Expect(db.Raw("SELECT name FROM pragma_table_info(?)", table).Scan(&names).Error).To(Succeed())
	return names
}

func execAll(db *gorm.DB, statements ...string) {
	for _, stmt := range statements {
		Expect(db.Exec(stmt).Error).To(Succeed())
	}
}

var _ = Describe("Migrate", func() {
	var (
		ctx  context.Context
		path string
		db   *gorm.DB
	)

	BeforeEach(func() {
		ctx = context.Background()
		path = filepath.Join(GinkgoT().TempDir(), "ledger.db")

		var err error
		db, err = schema.Open(path)
		Expect(err).NotTo(HaveOccurred())
		DeferCleanup(func() {
			Expect(schema.Close(db)).To(Succeed())
		})
	})

	Context("on a new file", func() {
		It("creates both tables at the latest version", func() {
			Expect(schema.Migrate(ctx, db, logger.Discard())).To(Succeed())

			Expect(columnsOf(db, "categories")).To(ConsistOf("id", "name", "type"))
			Expect(columnsOf(db, "transactions")).To(ConsistOf(
				"id", "amount", "category_id", "date", "description", "receipt_path"))

			version, err := schema.Version(ctx, db)
			Expect(err).NotTo(HaveOccurred())
			Expect(version).To(Equal(schema.LatestVersion()))

			pending, err := schema.Pending(ctx, db)
			Expect(err).NotTo(HaveOccurred())
			Expect(pending).To(BeFalse())
		})

		It("is a no-op when run again", func() {
			Expect(schema.Migrate(ctx, db, logger.Discard())).To(Succeed())
			Expect(schema.Migrate(ctx, db, logger.Discard())).To(Succeed())

			Expect(columnsOf(db, "transactions")).To(HaveLen(6))
		})
	})

	Context("on a ledger written before version tracking", func() {
		BeforeEach(func() {
			execAll(db,
				legacyTables,
				`INSERT INTO categories (name, type) VALUES ('Groceries', 'expense')`,
				`INSERT INTO transactions (amount, category_id, date, description) VALUES (12.5, 1, '2024-03-01', 'milk')`,
				`INSERT INTO transactions (amount, category_id, date, description) VALUES (40, 1, '2024-03-09', NULL)`,
			)
		})

		It("adds the receipt column and keeps existing rows", func() {
			Expect(schema.Migrate(ctx, db, logger.Discard())).To(Succeed())

			Expect(columnsOf(db, "transactions")).To(ContainElement("receipt_path"))

			var count int64
			Expect(db.Table("transactions").Count(&count).Error).To(Succeed())
			Expect(count).To(BeEquivalentTo(2))

			var withReceipt int64
			Expect(db.Table("transactions").Where("receipt_path IS NOT NULL").Count(&withReceipt).Error).To(Succeed())
			Expect(withReceipt).To(BeZero())

			var description string
			Expect(db.Raw("SELECT description FROM transactions WHERE date = '2024-03-01'").Scan(&description).Error).To(Succeed())
			Expect(description).To(Equal("milk"))
		})

		It("reports the latest version afterwards", func() {
			Expect(schema.Migrate(ctx, db, logger.Discard())).To(Succeed())

			version, err := schema.Version(ctx, db)
			Expect(err).NotTo(HaveOccurred())
			Expect(version).To(Equal(schema.LatestVersion()))
		})
	})

	Context("on an untracked ledger that already has the receipt column", func() {
		It("leaves the column alone", func() {
			execAll(db, legacyTables, `ALTER TABLE transactions ADD COLUMN receipt_path TEXT`,
				`INSERT INTO categories (name, type) VALUES ('Salary', 'income')`,
				`INSERT INTO transactions (amount, category_id, date, receipt_path) VALUES (1000, 1, '2024-01-31', '/tmp/payslip.png')`,
			)

			Expect(schema.Migrate(ctx, db, logger.Discard())).To(Succeed())

			Expect(columnsOf(db, "transactions")).To(HaveLen(6))
			var receipt string
			Expect(db.Raw("SELECT receipt_path FROM transactions").Scan(&receipt).Error).To(Succeed())
			Expect(receipt).To(Equal("/tmp/payslip.png"))
		})
	})

	Context("on a SQLite file with a foreign layout", func() {
		It("fails with a migration error naming the missing columns", func() {
			execAll(db, `CREATE TABLE transactions (id INTEGER PRIMARY KEY, total REAL)`)

			err := schema.Migrate(ctx, db, logger.Discard())
			Expect(err).To(HaveOccurred())
			Expect(internal.IsType(err, internal.ErrorTypeMigration)).To(BeTrue())
			Expect(err.Error()).To(ContainSubstring("amount"))
		})
	})

	Context("on a file that is not a database", func() {
		It("fails with a migration error", func() {
			Expect(schema.Close(db)).To(Succeed())
			garbage := filepath.Join(GinkgoT().TempDir(), "garbage.db")
			Expect(os.WriteFile(garbage, []byte(strings.Repeat("not a ledger ", 512)), 0o644)).To(Succeed())

			var err error
			db, err = schema.Open(garbage)
			if err != nil {
				Expect(internal.IsType(err, internal.ErrorTypeConnection)).To(BeTrue())
				db = nil
				return
			}

			err = schema.Migrate(ctx, db, logger.Discard())
			Expect(err).To(HaveOccurred())
			Expect(internal.IsType(err, internal.ErrorTypeMigration)).To(BeTrue())
		})
	})
})
