package routes_test

import (
	"net/http"
	"net/http/httptest"

	"payproof/internal/config"
	"payproof/internal/objectstore"
	"payproof/internal/payments"
	"payproof/internal/records"
	"payproof/internal/routes"
	"payproof/internal/testhelpers"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var validFields = map[string]string{
	"name":           "Sari",
	"phone_number":   "0812xxxx",
	"payment_method": "bank_transfer",
	"reason":         "order #4",
}

var _ = Describe("SetupRouter", func() {
	var (
		cfg      *config.Config
		store    *records.GormStore
		local    *objectstore.LocalStore
		buildApp func() *gin.Engine
	)

	BeforeEach(func() {
		conn := testhelpers.NewSQLiteDB()
		DeferCleanup(func() { testhelpers.CloseDB(conn) })
		store = records.NewGormStore(conn)

		dir := GinkgoT().TempDir()
		var err error
		local, err = objectstore.NewLocalStore(dir, "http://localhost:8080/")
		Expect(err).NotTo(HaveOccurred())

		cfg = &config.Config{CORSOrigins: []string{"http://localhost:5173"}}
		buildApp = func() *gin.Engine {
			return routes.SetupRouter(routes.Deps{
				Service:   payments.NewService(local, store, nil),
				Health:    store,
				UploadDir: dir,
			}, cfg)
		}
	})

	It("serves stored proofs under /uploads", func() {
		app := buildApp()
		data := testhelpers.PNG(1024)
		req := testhelpers.NewMultipartRequest(http.MethodPost, "/api/upload-payment", validFields, &testhelpers.FormFile{
			Field: "proof", Filename: "bukti.PNG", ContentType: "image/png", Data: data,
		})

		w := httptest.NewRecorder()
		app.ServeHTTP(w, req)
		Expect(w.Code).To(Equal(http.StatusCreated))

		list, err := store.ListAll(req.Context())
		Expect(err).NotTo(HaveOccurred())
		Expect(list).To(HaveLen(1))
		Expect(list[0].ProofURL).To(HavePrefix("http://localhost:8080/uploads/proof_"))
		Expect(list[0].ProofURL).To(HaveSuffix(".png"))

		w = httptest.NewRecorder()
		app.ServeHTTP(w, httptest.NewRequest(http.MethodGet, list[0].ProofURL[len("http://localhost:8080"):], nil))
		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(w.Body.Bytes()).To(Equal(data))
	})

	It("applies the configured upload ceiling", func() {
		cfg.MaxUploadBytes = 1024
		app := buildApp()
		req := testhelpers.NewMultipartRequest(http.MethodPost, "/api/upload-payment", validFields, &testhelpers.FormFile{
			Field: "proof", Filename: "bukti.png", ContentType: "image/png", Data: testhelpers.PNG(2048),
		})

		w := httptest.NewRecorder()
		app.ServeHTTP(w, req)
		Expect(w.Code).To(Equal(http.StatusRequestEntityTooLarge))
		Expect(w.Body.String()).To(ContainSubstring(`"error":"FileTooLarge"`))
	})

	It("applies the configured media types", func() {
		cfg.AllowedMimeTypes = []string{"image/jpeg"}
		app := buildApp()
		req := testhelpers.NewMultipartRequest(http.MethodPost, "/api/upload-payment", validFields, &testhelpers.FormFile{
			Field: "proof", Filename: "bukti.png", ContentType: "image/png", Data: testhelpers.PNG(256),
		})

		w := httptest.NewRecorder()
		app.ServeHTTP(w, req)
		Expect(w.Code).To(Equal(http.StatusUnsupportedMediaType))
	})

	Describe("CORS", func() {
		preflight := func(app http.Handler, origin string) *httptest.ResponseRecorder {
			req := httptest.NewRequest(http.MethodOptions, "/api/upload-payment", nil)
			req.Header.Set("Origin", origin)
			req.Header.Set("Access-Control-Request-Method", http.MethodPost)
			w := httptest.NewRecorder()
			app.ServeHTTP(w, req)
			return w
		}

		It("allows configured origins", func() {
			w := preflight(buildApp(), "http://localhost:5173")
			Expect(w.Code).To(Equal(http.StatusNoContent))
			Expect(w.Header().Get("Access-Control-Allow-Origin")).To(Equal("http://localhost:5173"))
		})

		It("refuses other origins", func() {
			w := preflight(buildApp(), "https://evil.example.com")
			Expect(w.Code).To(Equal(http.StatusForbidden))
			Expect(w.Header().Get("Access-Control-Allow-Origin")).To(BeEmpty())
		})

		It("allows every origin for a wildcard", func() {
			cfg.CORSOrigins = []string{"*"}
			w := preflight(buildApp(), "https://anywhere.example.com")
			Expect(w.Code).To(Equal(http.StatusNoContent))
			Expect(w.Header().Get("Access-Control-Allow-Origin")).To(Equal("*"))
		})
	})

	It("reports health", func() {
		w := httptest.NewRecorder()
		buildApp().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(w.Body.String()).To(MatchJSON(`{"status":"UP"}`))
	})
})
