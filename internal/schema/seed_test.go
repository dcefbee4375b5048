package schema_test

import (
	"errors"

	"github.com/frahmantamala/finance-ledger/internal"
	"github.com/frahmantamala/finance-ledger/internal/category"
	"github.com/frahmantamala/finance-ledger/internal/schema"
	"github.com/frahmantamala/finance-ledger/pkg/logger"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

type fakeSeeder struct {
	count    int64
	countErr error
	failures map[string]error
	added    []string
}

func (f *fakeSeeder) Count() (int64, error) {
	return f.count, f.countErr
}

func (f *fakeSeeder) Add(name string, t category.Type) (*category.Category, error) {
	if err, ok := f.failures[name]; ok {
		return nil, err
	}
	f.added = append(f.added, name)
	return &category.Category{ID: int64(len(f.added)), Name: name, Type: t}, nil
}

var _ = Describe("SeedDefaults", func() {
	It("inserts the defaults in order into an empty table", func() {
		seeder := &fakeSeeder{}

		results, err := schema.SeedDefaults(seeder, logger.Discard())
		Expect(err).NotTo(HaveOccurred())

		Expect(seeder.added).To(Equal([]string{
			"Salary", "Groceries", "Utilities", "Transport",
			"Entertainment", "Health", "Education", "Other",
		}))
		Expect(results).To(HaveLen(len(schema.DefaultCategories)))
		for _, r := range results {
			Expect(r.Status).To(Equal(schema.SeedInserted))
			Expect(r.Err).NotTo(HaveOccurred())
		}
		Expect(results[0].Type).To(Equal(category.TypeIncome))
	})

	It("does nothing when categories exist", func() {
		seeder := &fakeSeeder{count: 3}

		results, err := schema.SeedDefaults(seeder, logger.Discard())
		Expect(err).NotTo(HaveOccurred())
		Expect(results).To(BeEmpty())
		Expect(seeder.added).To(BeEmpty())
	})

	It("records per-row failures and keeps going", func() {
		seeder := &fakeSeeder{failures: map[string]error{
			"Groceries": internal.NewUniqueViolationError("category already exists", internal.ErrCodeDuplicateKey),
			"Health":    errors.New("disk full"),
		}}

		results, err := schema.SeedDefaults(seeder, logger.Discard())
		Expect(err).NotTo(HaveOccurred())
		Expect(results).To(HaveLen(8))
		Expect(results[1].Name).To(Equal("Groceries"))
		Expect(results[1].Status).To(Equal(schema.SeedAlreadyExists))
		Expect(results[5].Name).To(Equal("Health"))
		Expect(results[5].Status).To(Equal(schema.SeedFailed))
		Expect(results[5].Err).To(MatchError("disk full"))
		Expect(seeder.added).To(HaveLen(6))
	})

	It("returns the count error", func() {
		seeder := &fakeSeeder{countErr: internal.NewConnectionError("gone", nil)}

		_, err := schema.SeedDefaults(seeder, logger.Discard())
		Expect(internal.IsType(err, internal.ErrorTypeConnection)).To(BeTrue())
	})
})
