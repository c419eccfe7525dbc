package payments_test

import (
	"payproof/internal/payments"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func validSubmission() payments.Submission {
	return payments.Submission{
		Name:          "Sari",
		PhoneNumber:   "0812xxxx",
		PaymentMethod: "bank_transfer",
		Reason:        "order #4",
		File: &payments.FileInfo{
			Filename:    "receipt.PNG",
			ContentType: "image/png",
			Size:        2048,
		},
	}
}

var _ = Describe("Validate", func() {
	policy := payments.DefaultPolicy()

	It("returns a draft for a valid submission", func() {
		draft, err := payments.Validate(validSubmission(), policy)
		Expect(err).NotTo(HaveOccurred())
		Expect(draft.Name).To(Equal("Sari"))
		Expect(draft.PhoneNumber).To(Equal("0812xxxx"))
		Expect(draft.PaymentMethod).To(Equal("bank_transfer"))
		Expect(draft.Reason).To(Equal("order #4"))
		Expect(draft.File.Filename).To(Equal("receipt.PNG"))
		Expect(draft.File.ContentType).To(Equal("image/png"))
		Expect(draft.File.Size).To(Equal(int64(2048)))
	})

	It("trims surrounding whitespace from text fields", func() {
		s := validSubmission()
		s.Name = "  Sari "
		draft, err := payments.Validate(s, policy)
		Expect(err).NotTo(HaveOccurred())
		Expect(draft.Name).To(Equal("Sari"))
	})

	DescribeTable("rejects missing text fields",
		func(mutate func(*payments.Submission), field string) {
			s := validSubmission()
			mutate(&s)
			_, err := payments.Validate(s, policy)
			Expect(err).To(MatchError(payments.ErrMissingField))
			Expect(err.Error()).To(ContainSubstring(field))
			Expect(payments.KindOf(err)).To(Equal(payments.KindMissingField))
		},
		Entry("name", func(s *payments.Submission) { s.Name = "" }, "name"),
		Entry("blank name", func(s *payments.Submission) { s.Name = "   " }, "name"),
		Entry("phone number", func(s *payments.Submission) { s.PhoneNumber = "" }, "phone_number"),
		Entry("payment method", func(s *payments.Submission) { s.PaymentMethod = "" }, "payment_method"),
		Entry("reason", func(s *payments.Submission) { s.Reason = "" }, "reason"),
	)

	It("checks text fields before the file", func() {
		s := validSubmission()
		s.Reason = ""
		s.File = nil
		_, err := payments.Validate(s, policy)
		Expect(err).To(MatchError(payments.ErrMissingField))
	})

	It("rejects a submission without a file", func() {
		s := validSubmission()
		s.File = nil
		_, err := payments.Validate(s, policy)
		Expect(err).To(MatchError(payments.ErrNoFileAttached))
	})

	It("treats an empty file as no file", func() {
		s := validSubmission()
		s.File.Size = 0
		_, err := payments.Validate(s, policy)
		Expect(err).To(MatchError(payments.ErrNoFileAttached))
	})

	DescribeTable("media types",
		func(contentType string, allowed bool) {
			s := validSubmission()
			s.File.ContentType = contentType
			_, err := payments.Validate(s, policy)
			if allowed {
				Expect(err).NotTo(HaveOccurred())
			} else {
				Expect(err).To(MatchError(payments.ErrUnsupportedMediaType))
				Expect(payments.KindOf(err)).To(Equal(payments.KindUnsupportedMediaType))
			}
		},
		Entry("png", "image/png", true),
		Entry("jpeg", "image/jpeg", true),
		Entry("webp", "image/webp", true),
		Entry("upper case with parameters", "IMAGE/PNG; foo=bar", true),
		Entry("pdf", "application/pdf", false),
		Entry("svg", "image/svg+xml", false),
		Entry("missing", "", false),
	)

	It("rejects files above the ceiling", func() {
		s := validSubmission()
		s.File.Size = 6 << 20
		_, err := payments.Validate(s, policy)
		Expect(err).To(MatchError(payments.ErrFileTooLarge))
		Expect(payments.KindOf(err)).To(Equal(payments.KindFileTooLarge))
	})

	It("accepts a file exactly at the ceiling", func() {
		s := validSubmission()
		s.File.Size = payments.DefaultMaxFileSize
		_, err := payments.Validate(s, policy)
		Expect(err).NotTo(HaveOccurred())
	})

	It("honours a custom policy", func() {
		s := validSubmission()
		s.File.ContentType = "application/pdf"
		s.File.Size = 100
		_, err := payments.Validate(s, payments.Policy{AllowedTypes: []string{"application/pdf"}, MaxFileSize: 50})
		Expect(err).To(MatchError(payments.ErrFileTooLarge))
	})
})

var _ = Describe("KindOf", func() {
	It("falls back to InternalError", func() {
		Expect(payments.KindOf(errBoom)).To(Equal(payments.KindInternal))
	})

	It("separates validation from infrastructure errors", func() {
		Expect(payments.IsValidation(payments.ErrFileTooLarge)).To(BeTrue())
		Expect(payments.IsValidation(payments.ErrStorageFailure)).To(BeFalse())
	})
})
