package controllers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"

	"payproof/internal/models"
	"payproof/internal/payments"

	"github.com/gin-gonic/gin"
)

// multipart overhead allowed on top of the file ceiling
const formOverhead = 1 << 20

const maxFormMemory = 8 << 20

type PaymentController struct {
	Service *payments.Service
	Policy  payments.Policy
}

type PaymentResponse struct {
	Success bool            `json:"success"`
	Data    *models.Payment `json:"data"`
}

type PaymentsResponse struct {
	Success bool             `json:"success"`
	Data    []models.Payment `json:"data"`
}

type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Detail  string `json:"detail,omitempty"`
}

// UploadPayment handles POST /api/upload-payment
func (pc *PaymentController) UploadPayment(c *gin.Context) {
	maxSize := pc.Policy.MaxFileSize
	if maxSize <= 0 {
		maxSize = payments.DefaultMaxFileSize
	}
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxSize+formOverhead)

	if err := c.Request.ParseMultipartForm(maxFormMemory); err != nil {
		if isBodyTooLarge(err) {
			respondError(c, payments.ErrFileTooLarge, "request body exceeds upload limit")
			return
		}
		// a form that cannot be parsed has no fields, the validator reports it
		log.Printf("failed to parse multipart form: %v", err)
	}
	if c.Request.MultipartForm != nil {
		defer c.Request.MultipartForm.RemoveAll()
	}

	submission := payments.Submission{
		Name:          c.PostForm("name"),
		PhoneNumber:   c.PostForm("phone_number"),
		PaymentMethod: c.PostForm("payment_method"),
		Reason:        c.PostForm("reason"),
	}

	fileHeader, err := c.FormFile("proof")
	if err == nil {
		submission.File = &payments.FileInfo{
			Filename:    fileHeader.Filename,
			ContentType: fileHeader.Header.Get("Content-Type"),
			Size:        fileHeader.Size,
		}
	}

	draft, err := payments.Validate(submission, pc.Policy)
	if err != nil {
		respondError(c, err, clientDetail(err))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		log.Printf("failed to open uploaded file: %v", err)
		respondError(c, payments.ErrStorageFailure, "could not read uploaded file")
		return
	}
	defer file.Close()

	payment, err := pc.Service.Submit(c.Request.Context(), draft, file)
	if err != nil {
		log.Printf("failed to submit payment: %v", err)
		respondError(c, err, clientDetail(err))
		return
	}

	c.JSON(http.StatusCreated, PaymentResponse{Success: true, Data: payment})
}

// GetPayments handles GET /api/payments
func (pc *PaymentController) GetPayments(c *gin.Context) {
	list, err := pc.Service.List(c.Request.Context())
	if err != nil {
		log.Printf("failed to list payments: %v", err)
		respondError(c, err, clientDetail(err))
		return
	}

	if list == nil {
		list = []models.Payment{}
	}

	c.JSON(http.StatusOK, PaymentsResponse{Success: true, Data: list})
}

// Pinger reports whether a backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Health handles GET /health
func Health(p Pinger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if p != nil {
			if err := p.Ping(c.Request.Context()); err != nil {
				log.Printf("health check failed: %v", err)
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "DOWN"})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "UP"})
	}
}

func respondError(c *gin.Context, err error, detail string) {
	c.JSON(statusFor(err), ErrorResponse{
		Success: false,
		Error:   payments.KindOf(err),
		Detail:  detail,
	})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, payments.ErrMissingField), errors.Is(err, payments.ErrNoFileAttached):
		return http.StatusBadRequest
	case errors.Is(err, payments.ErrUnsupportedMediaType):
		return http.StatusUnsupportedMediaType
	case errors.Is(err, payments.ErrFileTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, payments.ErrStoreUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// clientDetail exposes validation messages verbatim and hides infrastructure causes.
func clientDetail(err error) string {
	if payments.IsValidation(err) {
		return err.Error()
	}
	return infraDetail(err)
}

func infraDetail(err error) string {
	switch {
	case errors.Is(err, payments.ErrStorageFailure):
		return "Could not store the proof of payment. Please try again."
	case errors.Is(err, payments.ErrPersistenceFailure):
		return "Could not save the payment. Please try again."
	case errors.Is(err, payments.ErrStoreUnavailable):
		return "Payments are temporarily unavailable."
	default:
		return "Something went wrong"
	}
}

func isBodyTooLarge(err error) bool {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		return true
	}
	return strings.Contains(err.Error(), "request body too large")
}
