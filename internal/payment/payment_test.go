package payment_test

import (
	"encoding/json"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	errors "github.com/mbRabaa/microservice-paiement/internal"
	"github.com/mbRabaa/microservice-paiement/internal/payment"
)

func validSubmission() *payment.Submission {
	return &payment.Submission{
		Amount:      json.Number("100"),
		PaymentMode: "credit",
		ClientEmail: "test@example.com",
		ClientName:  "Test User",
		Route:       "Paris-Lyon",
	}
}

var _ = Describe("Validate", func() {
	It("normalizes a valid submission", func() {
		sub := validSubmission()
		sub.CardLast4 = "4242 4242 4242 1234"
		sub.CardBrand = "visa"

		n, err := payment.Validate(sub)
		Expect(err).NotTo(HaveOccurred())
		Expect(n.Amount).To(Equal(100.0))
		Expect(n.PaymentMode).To(Equal("credit"))
		Expect(*n.CardLast4).To(Equal("1234"))
		Expect(*n.CardBrand).To(Equal("visa"))
	})

	It("coerces a numeric string amount", func() {
		sub := validSubmission()
		sub.Amount = "75.50"

		n, err := payment.Validate(sub)
		Expect(err).NotTo(HaveOccurred())
		Expect(n.Amount).To(Equal(75.5))
	})

	It("leaves absent card details empty", func() {
		n, err := payment.Validate(validSubmission())
		Expect(err).NotTo(HaveOccurred())
		Expect(n.CardLast4).To(BeNil())
		Expect(n.CardBrand).To(BeNil())
	})

	It("treats a zero amount as present", func() {
		sub := validSubmission()
		sub.Amount = json.Number("0")

		n, err := payment.Validate(sub)
		Expect(err).NotTo(HaveOccurred())
		Expect(n.Amount).To(BeZero())
	})

	DescribeTable("reports the first missing field",
		func(mutate func(*payment.Submission), field, expected string) {
			sub := validSubmission()
			mutate(sub)

			_, err := payment.Validate(sub)
			appErr, ok := errors.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Code).To(Equal(errors.ErrCodeMissingField))
			Expect(appErr.Field).To(Equal(field))
			Expect(appErr.Message).To(ContainSubstring(field))
			Expect(appErr.Details).To(Equal("Expected type: " + expected))
		},
		Entry("amount", func(s *payment.Submission) { s.Amount = nil }, "amount", "number"),
		Entry("amount as empty string", func(s *payment.Submission) { s.Amount = "" }, "amount", "number"),
		Entry("paymentMode", func(s *payment.Submission) { s.PaymentMode = "" }, "paymentMode", "['credit','debit']"),
		Entry("clientEmail", func(s *payment.Submission) { s.ClientEmail = "" }, "clientEmail", "string"),
		Entry("clientName", func(s *payment.Submission) { s.ClientName = "" }, "clientName", "string"),
		Entry("route", func(s *payment.Submission) { s.Route = "" }, "route", "string"),
		Entry("presence before amount type", func(s *payment.Submission) {
			s.Amount = "abc"
			s.Route = ""
		}, "route", "string"),
	)

	It("rejects a non numeric amount", func() {
		sub := validSubmission()
		sub.Amount = "abc"

		_, err := payment.Validate(sub)
		appErr, ok := errors.IsAppError(err)
		Expect(ok).To(BeTrue())
		Expect(appErr.Code).To(Equal(errors.ErrCodeInvalidAmount))
		Expect(appErr.Message).To(Equal("amount must be a number"))
		Expect(appErr.Details).To(Equal("Received: string"))
	})

	It("checks the amount before the payment mode", func() {
		sub := validSubmission()
		sub.Amount = "abc"
		sub.PaymentMode = "cash"

		_, err := payment.Validate(sub)
		appErr, _ := errors.IsAppError(err)
		Expect(appErr.Code).To(Equal(errors.ErrCodeInvalidAmount))
	})

	DescribeTable("rejects unknown payment modes",
		func(mode string) {
			sub := validSubmission()
			sub.PaymentMode = mode

			_, err := payment.Validate(sub)
			appErr, ok := errors.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Code).To(Equal(errors.ErrCodeInvalidPaymentMode))
			Expect(appErr.Details).To(Equal(`Must be "credit" or "debit"`))
		},
		Entry("cash", "cash"),
		Entry("upper case", "CREDIT"),
		Entry("padded", " debit"),
	)
})

var _ = Describe("NormalizeCardLast4", func() {
	DescribeTable("keeps at most the last four digits",
		func(raw string, want string) {
			got := payment.NormalizeCardLast4(raw)
			Expect(got).NotTo(BeNil())
			Expect(*got).To(Equal(want))
			Expect(len(*got)).To(BeNumerically("<=", 4))
		},
		Entry("already four digits", "4242", "4242"),
		Entry("full card number", "4111-1111-1111-1111", "1111"),
		Entry("masked", "**** 9876", "9876"),
		Entry("fewer than four", "x12", "12"),
	)

	It("returns nil when there is no digit", func() {
		Expect(payment.NormalizeCardLast4("")).To(BeNil())
		Expect(payment.NormalizeCardLast4("abcd")).To(BeNil())
	})
})

var _ = Describe("ReceiptURL", func() {
	It("is derived from the record id", func() {
		Expect(payment.ReceiptURL(1)).To(Equal("/payments/1/receipt"))
	})
})
