package internal_test

import (
	"errors"
	"fmt"

	"github.com/frahmantamala/finance-ledger/internal"
	"github.com/mattn/go-sqlite3"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("AppError", func() {
	It("matches sentinels by type and code", func() {
		err := fmt.Errorf("open: %w", &internal.AppError{
			Type: internal.ErrorTypeConnection,
			Code: internal.ErrCodeStoreClosed,
		})
		Expect(errors.Is(err, internal.ErrStoreClosed)).To(BeTrue())
		Expect(errors.Is(err, internal.ErrStoreAlreadyOpen)).To(BeFalse())
	})

	It("unwraps to its cause", func() {
		cause := errors.New("disk I/O error")
		err := internal.NewConnectionError("failed to open database", cause)
		Expect(errors.Is(err, cause)).To(BeTrue())
		Expect(err.Error()).To(Equal("failed to open database: disk I/O error"))
	})

	It("prefers the field message when details are present", func() {
		err := internal.NewValidationFieldError("amount", "amount must be greater than zero", internal.ErrCodeInvalidAmount)
		Expect(err.Error()).To(Equal("amount must be greater than zero"))
		Expect(err.Code).To(Equal(internal.ErrCodeInvalidAmount))
	})

	It("counts unique violations as constraint violations", func() {
		err := internal.NewUniqueViolationError("dup", internal.ErrCodeDuplicateKey)
		Expect(internal.IsConstraintViolation(err)).To(BeTrue())
		Expect(internal.IsUniqueViolation(err)).To(BeTrue())
		Expect(internal.IsType(err, internal.ErrorTypeConstraint)).To(BeFalse())
	})
})

var _ = Describe("FromDBError", func() {
	driverErr := func(extended sqlite3.ErrNoExtended) error {
		return sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: extended}
	}

	It("passes nil through", func() {
		Expect(internal.FromDBError(nil, "x")).To(BeNil())
	})

	DescribeTable("classifies constraint failures",
		func(extended sqlite3.ErrNoExtended, errType internal.ErrorType, code internal.ErrorCode) {
			err := internal.FromDBError(driverErr(extended), "write failed")

			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Type).To(Equal(errType))
			Expect(appErr.Code).To(Equal(code))
			Expect(appErr.Message).To(Equal("write failed"))
		},
		Entry("unique", sqlite3.ErrConstraintUnique, internal.ErrorTypeUnique, internal.ErrCodeDuplicateKey),
		Entry("primary key", sqlite3.ErrConstraintPrimaryKey, internal.ErrorTypeUnique, internal.ErrCodeDuplicateKey),
		Entry("foreign key", sqlite3.ErrConstraintForeignKey, internal.ErrorTypeConstraint, internal.ErrCodeForeignKey),
		Entry("check", sqlite3.ErrConstraintCheck, internal.ErrorTypeConstraint, internal.ErrCodeCheckFailed),
		Entry("not null", sqlite3.ErrConstraintNotNull, internal.ErrorTypeConstraint, internal.ErrCodeNotNullFailed),
	)

	It("keeps an existing AppError", func() {
		existing := internal.NewConstraintViolationError("in use", internal.ErrCodeCategoryInUse)
		Expect(internal.FromDBError(existing, "delete failed")).To(BeIdenticalTo(existing))
	})

	It("treats anything else as internal", func() {
		err := internal.FromDBError(errors.New("database is locked"), "query failed")
		Expect(internal.IsType(err, internal.ErrorTypeInternal)).To(BeTrue())
	})
})
