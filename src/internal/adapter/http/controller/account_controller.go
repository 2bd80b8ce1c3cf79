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

type AccountController struct {
	service service_interfaces.AccountService
}

func NewAccountController(service service_interfaces.AccountService) *AccountController {
	return &AccountController{service: service}
}

func (c *AccountController) RegisterRoutes(mux *http.ServeMux, authMiddleware func(http.Handler) http.Handler) {
	collection := http.Handler(http.HandlerFunc(c.handleCollection))
	item := http.Handler(http.HandlerFunc(c.handleItem))
	if authMiddleware != nil {
		collection = authMiddleware(collection)
		item = authMiddleware(item)
	}
	mux.Handle("/accounts", collection)
	mux.Handle("/accounts/", item)
}

func (c *AccountController) handleCollection(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		c.createAccount(w, r)
	case http.MethodGet:
		c.listAccounts(w, r)
	default:
		writeJSON(w, http.StatusMethodNotAllowed, commons.ErrorResponse[models.AccountResponse]("method not allowed"))
	}
}

func (c *AccountController) handleItem(w http.ResponseWriter, r *http.Request) {
	accountNumber, ok := accountNumberFromPath(r.URL.Path)
	if !ok {
		writeJSON(w, http.StatusBadRequest, commons.ErrorResponse[models.AccountResponse]("invalid account number"))
		return
	}

	switch r.Method {
	case http.MethodGet:
		c.getAccount(w, r, accountNumber)
	case http.MethodPut, http.MethodPatch:
		c.updateAccount(w, r, accountNumber)
	case http.MethodDelete:
		c.deleteAccount(w, r, accountNumber)
	default:
		writeJSON(w, http.StatusMethodNotAllowed, commons.ErrorResponse[models.AccountResponse]("method not allowed"))
	}
}

func (c *AccountController) createAccount(w http.ResponseWriter, r *http.Request) {
	var req models.CreateAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logError(r, err, nil)
		writeJSON(w, http.StatusBadRequest, commons.ErrorResponse[models.AccountResponse]("invalid request body", err.Error()))
		return
	}

	logRequest(r, req)

	response, err := c.service.CreateAccount(r.Context(), req)
	if err != nil {
		writeJSON(w, statusForError(response.Message, err), response)
		return
	}

	writeJSON(w, http.StatusCreated, response)
}

func (c *AccountController) listAccounts(w http.ResponseWriter, r *http.Request) {
	logRequest(r, nil)

	query := r.URL.Query()
	response, err := c.service.ListAccounts(r.Context(), query.Get("customerId"), query.Get("accountType"))
	if err != nil {
		writeJSON(w, statusForError(response.Message, err), response)
		return
	}

	writeJSON(w, http.StatusOK, response)
}

func (c *AccountController) getAccount(w http.ResponseWriter, r *http.Request, accountNumber int64) {
	logRequest(r, nil)

	response, err := c.service.GetAccount(r.Context(), accountNumber)
	if err != nil {
		writeJSON(w, statusForError(response.Message, err), response)
		return
	}

	writeJSON(w, http.StatusOK, response)
}

func (c *AccountController) updateAccount(w http.ResponseWriter, r *http.Request, accountNumber int64) {
	var req models.UpdateAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logError(r, err, nil)
		writeJSON(w, http.StatusBadRequest, commons.ErrorResponse[models.AccountResponse]("invalid request body", err.Error()))
		return
	}

	logRequest(r, req)

	response, err := c.service.UpdateAccount(r.Context(), accountNumber, req)
	if err != nil {
		writeJSON(w, statusForError(response.Message, err), response)
		return
	}

	writeJSON(w, http.StatusOK, response)
}

func (c *AccountController) deleteAccount(w http.ResponseWriter, r *http.Request, accountNumber int64) {
	logRequest(r, nil)

	response, err := c.service.DeleteAccount(r.Context(), accountNumber)
	if err != nil {
		writeJSON(w, statusForError(response.Message, err), response)
		return
	}

	writeJSON(w, http.StatusOK, response)
}

func accountNumberFromPath(path string) (int64, bool) {
	raw := strings.TrimPrefix(path, "/accounts/")
	if raw == "" || strings.Contains(raw, "/") {
		return 0, false
	}

	accountNumber, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, false
	}

	return accountNumber, true
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
