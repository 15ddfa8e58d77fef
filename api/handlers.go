/*
handlers.go - HTTP API handlers for the registration desk

PURPOSE:
  Exposes the fee calculator, the admission-window calculator and the
  registration desk via REST API. Handles HTTP request/response, JSON
  serialization, and delegates to the domain packages.

ENDPOINTS:
  Pricing:
    GET    /api/rooms                  Pricing table
    GET    /api/packages               Package catalog (1-5 months per room)
    POST   /api/quote                  Fee breakdown for a selection

  Admission:
    GET    /api/admission-window       ?start=YYYY-MM-DD&months=N
    GET    /api/email-check            ?email=... live email hint

  Registrations:
    POST   /api/registrations          Validate, submit and archive a form
    GET    /api/registrations          Archived receipts, newest first
    GET    /api/registrations/{id}     One archived receipt

ARCHITECTURE:
  Handler struct holds all dependencies:
  - Desk:    Validation, submission and the receipt outbox
  - Archive: Receipt lookups
  - BaseURL: Backend URL, quoted in network error messages

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Validation errors, invalid input
  - 404: Receipt not found
  - 409: Email already registered, or same student already submitting
  - 502: Backend rejected or failed the submission
  - 500: Internal errors

SECURITY NOTE:
  No authentication. The desk only forwards registrations; approval happens
  in the hostel backend.

SEE ALSO:
  - dto.go: Request/response data structures
  - scheduler.go: Outbox retries for pending receipts
  - server.go: Router setup and middleware
*/
package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/youstel/registration-desk/admission"
	"github.com/youstel/registration-desk/backend"
	"github.com/youstel/registration-desk/pricing"
	"github.com/youstel/registration-desk/registration"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Desk    *registration.Desk
	Archive registration.Archive
	BaseURL string
}

// NewHandler creates a new handler around a desk.
func NewHandler(desk *registration.Desk, baseURL string) *Handler {
	return &Handler{
		Desk:    desk,
		Archive: desk.Archive,
		BaseURL: baseURL,
	}
}

// =============================================================================
// PRICING HANDLERS
// =============================================================================

// ListRooms returns the pricing table in display order.
func (h *Handler) ListRooms(w http.ResponseWriter, r *http.Request) {
	types := pricing.RoomTypes()
	dtos := make([]RoomDTO, len(types))
	for i, rt := range types {
		dtos[i] = toRoomDTO(pricing.Lookup(string(rt)))
	}
	writeJSON(w, http.StatusOK, dtos)
}

// ListPackages returns the package catalog.
func (h *Handler) ListPackages(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, pricing.Packages())
}

// Quote computes a fee breakdown. It never fails on odd numbers: missing or
// malformed months count as 1 and a missing advance as 0.
func (h *Handler) Quote(w http.ResponseWriter, r *http.Request) {
	var req QuoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	payAdvance := true
	if req.PayAdvance != nil {
		payAdvance = *req.PayAdvance
	}
	advance := registration.DefaultAdvanceAmount
	if req.AdvanceAmount.IsSet() {
		advance = req.AdvanceAmount.Amount()
	}

	b := pricing.ComputeBreakdown(req.RoomType, req.Months.Months(), advance, payAdvance)
	entry := pricing.Lookup(req.RoomType)

	writeJSON(w, http.StatusOK, QuoteDTO{
		FeeBreakdown:   b,
		RoomType:       string(entry.RoomType),
		RoomLabel:      entry.Label,
		FormattedTotal: b.Total.String(),
	})
}

// =============================================================================
// ADMISSION HANDLERS
// =============================================================================

// AdmissionWindow derives the admission up-to date for a start date.
func (h *Handler) AdmissionWindow(w http.ResponseWriter, r *http.Request) {
	start := r.URL.Query().Get("start")
	if start == "" {
		writeError(w, http.StatusBadRequest, "start is required", nil)
		return
	}
	if _, ok := admission.ParseDate(start); !ok {
		writeError(w, http.StatusBadRequest, "Invalid start date, expected YYYY-MM-DD", nil)
		return
	}

	months := FlexNumber(r.URL.Query().Get("months")).Months()
	writeJSON(w, http.StatusOK, AdmissionWindowDTO{
		Window:        admission.NewWindow(start, months),
		Months:        months,
		RemainingDays: admission.RemainingDaysInCycle(start),
	})
}

// CheckEmail returns the live hint for a partially typed email.
func (h *Handler) CheckEmail(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	hint := registration.CheckEmail(email)
	writeJSON(w, http.StatusOK, EmailCheckDTO{
		Email: email,
		Valid: email != "" && hint == "",
		Hint:  hint,
	})
}

// =============================================================================
// REGISTRATION HANDLERS
// =============================================================================

// SubmitRegistration validates the form, forwards it to the backend and
// archives the receipt.
func (h *Handler) SubmitRegistration(w http.ResponseWriter, r *http.Request) {
	var req RegistrationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	receipt, err := h.Desk.Submit(r.Context(), req.State())
	if err != nil {
		h.writeSubmitError(w, receipt, err)
		return
	}

	status := http.StatusCreated
	message := "Registration submitted successfully! Your request is pending admin approval."
	if receipt.Message != "" {
		message = receipt.Message
	}
	if receipt.Status == registration.StatusPending {
		status = http.StatusAccepted
		message = "The hostel server could not be reached. Your registration is saved and will be sent automatically."
	}

	writeJSON(w, status, SubmitResponse{
		Message: message,
		Receipt: toReceiptDTO(*receipt),
	})
}

func (h *Handler) writeSubmitError(w http.ResponseWriter, receipt *registration.Receipt, err error) {
	var vErr *registration.ValidationError
	switch {
	case errors.As(err, &vErr):
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: vErr.Message, Field: vErr.Field})
	case errors.Is(err, registration.ErrSubmissionInProgress):
		writeError(w, http.StatusConflict, "This registration is already being submitted", err)
	case receipt == nil:
		writeError(w, http.StatusInternalServerError, "Failed to submit registration", err)
	case backend.IsEmailConflict(err):
		writeError(w, http.StatusConflict, backend.UserMessage(err, h.BaseURL), err)
	default:
		writeError(w, http.StatusBadGateway, backend.UserMessage(err, h.BaseURL), err)
	}
}

// ListRegistrations returns archived receipts, newest first.
func (h *Handler) ListRegistrations(w http.ResponseWriter, r *http.Request) {
	receipts, err := h.Archive.ListReceipts(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list registrations", err)
		return
	}

	dtos := make([]ReceiptDTO, len(receipts))
	for i, rec := range receipts {
		dtos[i] = toReceiptDTO(rec)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// GetRegistration returns one archived receipt.
func (h *Handler) GetRegistration(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	receipt, err := h.Archive.GetReceipt(r.Context(), id)
	if errors.Is(err, registration.ErrReceiptNotFound) {
		writeError(w, http.StatusNotFound, "Registration not found", nil)
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get registration", err)
		return
	}
	writeJSON(w, http.StatusOK, toReceiptDTO(*receipt))
}

// Health reports liveness.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// =============================================================================
// HELPERS
// =============================================================================

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}
