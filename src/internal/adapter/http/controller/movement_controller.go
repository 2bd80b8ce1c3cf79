package controller

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/api-sage/account-ledger/src/internal/adapter/http/models"
	"github.com/api-sage/account-ledger/src/internal/commons"
	"github.com/api-sage/account-ledger/src/internal/usecase/service_interfaces"
)

type MovementController struct {
	service service_interfaces.MovementService
}

func NewMovementController(service service_interfaces.MovementService) *MovementController {
	return &MovementController{service: service}
}

func (c *MovementController) RegisterRoutes(mux *http.ServeMux, authMiddleware func(http.Handler) http.Handler) {
	handler := http.Handler(http.HandlerFunc(c.handleCollection))
	if authMiddleware != nil {
		handler = authMiddleware(handler)
	}
	mux.Handle("/movements", handler)
}

func (c *MovementController) handleCollection(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		c.createMovement(w, r)
	case http.MethodGet:
		c.listMovements(w, r)
	default:
		writeJSON(w, http.StatusMethodNotAllowed, commons.ErrorResponse[models.MovementResponse]("method not allowed"))
	}
}

func (c *MovementController) createMovement(w http.ResponseWriter, r *http.Request) {
	var req models.CreateMovementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logError(r, err, nil)
		writeJSON(w, http.StatusBadRequest, commons.ErrorResponse[models.MovementResponse]("invalid request body", err.Error()))
		return
	}

	logRequest(r, req)

	response, err := c.service.CreateMovement(r.Context(), req)
	if err != nil {
		writeJSON(w, statusForError(response.Message, err), response)
		return
	}

	writeJSON(w, http.StatusCreated, response)
}

func (c *MovementController) listMovements(w http.ResponseWriter, r *http.Request) {
	logRequest(r, nil)

	query := r.URL.Query()

	var accountNumber *int64
	if raw := strings.TrimSpace(query.Get("accountNumber")); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, commons.ErrorResponse[[]models.MovementResponse]("validation failed", "accountNumber must be numeric"))
			return
		}
		accountNumber = &parsed
	}

	response, err := c.service.ListMovements(r.Context(), accountNumber, query.Get("movementType"))
	if err != nil {
		writeJSON(w, statusForError(response.Message, err), response)
		return
	}

	writeJSON(w, http.StatusOK, response)
}
