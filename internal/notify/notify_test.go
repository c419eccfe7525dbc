package notify_test

import (
	"bytes"
	"context"
	"errors"
	"log"

	"payproof/internal/models"
	"payproof/internal/notify"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

type recordingSender struct {
	calls int
	err   error
}

func (r *recordingSender) Send(ctx context.Context, p models.Payment) error {
	r.calls++
	return r.err
}

var _ = Describe("LogNotifier", func() {
	It("writes the subject and text body", func() {
		var buf bytes.Buffer
		n := notify.LogNotifier{Location: wib, Logger: log.New(&buf, "", 0)}

		Expect(n.Send(context.Background(), samplePayment())).To(Succeed())
		Expect(buf.String()).To(ContainSubstring("Pembayaran baru #42 dari Sari"))
		Expect(buf.String()).To(ContainSubstring("No. HP: 0812xxxx"))
	})
})

var _ = Describe("Multi", func() {
	It("calls every sender even after a failure", func() {
		failing := &recordingSender{err: errors.New("smtp down")}
		ok := &recordingSender{}

		err := notify.Multi{failing, ok}.Send(context.Background(), samplePayment())
		Expect(err).To(MatchError(ContainSubstring("smtp down")))
		Expect(failing.calls).To(Equal(1))
		Expect(ok.calls).To(Equal(1))
	})

	It("succeeds when every sender does", func() {
		Expect(notify.Multi{&recordingSender{}, &recordingSender{}}.Send(context.Background(), samplePayment())).To(Succeed())
	})
})
