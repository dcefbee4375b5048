package entry_test

import (
	"strings"

	"github.com/frahmantamala/finance-ledger/internal"
	"github.com/frahmantamala/finance-ledger/internal/entry"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/shopspring/decimal"
)

var _ = Describe("AddEntryDTO", func() {
	var dto entry.AddEntryDTO

	BeforeEach(func() {
		dto = entry.AddEntryDTO{
			Amount:     decimal.RequireFromString("19.99"),
			CategoryID: 2,
			Date:       "2024-02-29",
		}
	})

	It("accepts a complete entry", func() {
		Expect(dto.Validate()).To(Succeed())
	})

	DescribeTable("rejects non-positive amounts",
		func(amount string) {
			dto.Amount = decimal.RequireFromString(amount)
			err := dto.Validate()
			Expect(internal.IsType(err, internal.ErrorTypeValidation)).To(BeTrue())

			appErr, _ := internal.IsAppError(err)
			Expect(appErr.Code).To(Equal(internal.ErrCodeInvalidAmount))
		},
		Entry("zero", "0"),
		Entry("negative", "-5"),
	)

	DescribeTable("rejects malformed dates",
		func(date string) {
			dto.Date = date
			err := dto.Validate()
			Expect(internal.IsType(err, internal.ErrorTypeValidation)).To(BeTrue())
			Expect(err.Error()).To(ContainSubstring("YYYY-MM-DD"))
		},
		Entry("empty", ""),
		Entry("slashes", "2024/02/29"),
		Entry("not a calendar day", "2023-02-29"),
		Entry("unpadded", "2024-2-9"),
	)

	It("requires a category", func() {
		dto.CategoryID = 0
		err := dto.Validate()
		Expect(err).To(MatchError(ContainSubstring("category is required")))
	})

	It("limits the description length", func() {
		dto.Description = strings.Repeat("x", 501)
		Expect(dto.Validate()).To(HaveOccurred())
	})
})

var _ = Describe("ValidateDate", func() {
	It("accepts YYYY-MM-DD", func() {
		Expect(entry.ValidateDate("2024-12-31")).To(Succeed())
	})

	It("rejects anything else", func() {
		Expect(entry.ValidateDate("31-12-2024")).To(HaveOccurred())
	})
})
