package main

import (
	"errors"
	"net"
	"net/http"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("awaitStop", func() {
	It("returns the error of a server that could not start", func() {
		taken, err := net.Listen("tcp", "127.0.0.1:0")
		Expect(err).NotTo(HaveOccurred())
		defer taken.Close()

		server := &http.Server{Addr: taken.Addr().String()}
		srvErr := make(chan error, 1)
		go func() { srvErr <- server.ListenAndServe() }()

		err = awaitStop(srvErr, make(chan struct{}))
		Expect(err).To(HaveOccurred())
		Expect(errors.Is(err, http.ErrServerClosed)).To(BeFalse())
	})

	It("treats a closed server as a clean stop", func() {
		srvErr := make(chan error, 1)
		srvErr <- http.ErrServerClosed
		Expect(awaitStop(srvErr, make(chan struct{}))).To(Succeed())
	})

	It("returns nil on a shutdown signal", func() {
		signaled := make(chan struct{})
		close(signaled)
		Expect(awaitStop(make(chan error), signaled)).To(Succeed())
	})
})
