package payment

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/kevin07696/ussd-push-service/internal/adapters/ports"
	"github.com/kevin07696/ussd-push-service/internal/config"
	"github.com/kevin07696/ussd-push-service/internal/domain"
	"github.com/kevin07696/ussd-push-service/internal/handlers"
	"github.com/kevin07696/ussd-push-service/pkg/encoding"
)

const (
	maxRequestBytes = 64 << 10
	// referenceLength keeps generated references inside the gateway's 20 character limit
	referenceLength = 20
)

// ChargeRequest is the JSON body of POST /api/v1/ussd/charges
type ChargeRequest struct {
	MSISDN      string          `json:"msisdn"`
	Amount      decimal.Decimal `json:"amount"`
	Reference   string          `json:"reference,omitempty"`
	CallbackURL string          `json:"callback_url,omitempty"`
}

// Handler exposes the USSD push gateway over JSON
type Handler struct {
	gateway ports.USSDPushAdapter
	cfg     config.GatewayConfig
	logger  *zap.Logger
}

// NewHandler creates a new USSD push handler
func NewHandler(gateway ports.USSDPushAdapter, cfg config.GatewayConfig, logger *zap.Logger) *Handler {
	return &Handler{
		gateway: gateway,
		cfg:     cfg,
		logger:  logger,
	}
}

// RegisterRoutes mounts the login and charge endpoints
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/login", h.Login)
	r.Post("/charges", h.Charge)
}

// Login opens a gateway session and returns the normalized result
// Endpoint: POST /api/v1/ussd/login
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	result, err := h.gateway.Login(r.Context(), h.cfg)
	if err != nil {
		handlers.WriteError(w, r, h.logger, err)
		return
	}

	h.logger.Info("Gateway login succeeded",
		zap.String("status", result.Status))

	h.writeResult(w, http.StatusOK, result)
}

// Charge requests a USSD push payment from the customer's phone
// Endpoint: POST /api/v1/ussd/charges
func (h *Handler) Charge(w http.ResponseWriter, r *http.Request) {
	var body ChargeRequest
	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBytes))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&body); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			handlers.WriteError(w, r, h.logger, domain.NewBodyTooLargeError(maxErr.Limit, err))
			return
		}
		verr := domain.NewValidationError(domain.MsgInvalidTransaction, nil)
		verr.Err = err
		handlers.WriteError(w, r, h.logger, verr)
		return
	}

	req := domain.ChargeRequest{
		MSISDN:      strings.TrimSpace(body.MSISDN),
		Amount:      body.Amount,
		Reference:   strings.TrimSpace(body.Reference),
		CallbackURL: strings.TrimSpace(body.CallbackURL),
	}
	if req.Reference == "" {
		req.Reference = newReference()
	}

	result, err := h.gateway.Charge(r.Context(), h.cfg, req)
	if err != nil {
		handlers.WriteError(w, r, h.logger, err)
		return
	}

	h.logger.Info("USSD push charge accepted",
		zap.String("reference", result.Reference),
		zap.String("transaction", result.Transaction),
		zap.String("status", result.Status),
		zap.String("amount", req.Amount.String()))

	h.writeResult(w, http.StatusAccepted, result)
}

func (h *Handler) writeResult(w http.ResponseWriter, status int, result *domain.TransactionResult) {
	if err := encoding.WriteJSON(w, status, result); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// newReference derives an uppercase hex third-party reference from a random UUID
func newReference() string {
	id := strings.ReplaceAll(uuid.NewString(), "-", "")
	return strings.ToUpper(id[:referenceLength])
}
