package main

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"os"

	"github.com/gorilla/mux"
)

type APIServer struct {
	portAddress string
	ledger      *Ledger
	logger      *slog.Logger
	staticDir   string
	httpServer  *http.Server
}

type APIError struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type ApiFunc func(http.ResponseWriter, *http.Request) error

const maxBodyBytes = 1 << 20

// errBadRequestBody is returned when the body is not the JSON we expect.
var errBadRequestBody = invalidInput("Invalid request body")

func WriteJSON(w http.ResponseWriter, statusCode int, msg any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	return json.NewEncoder(w).Encode(msg)
}

// errorResponse maps a ledger error to a status code and the message shown to the caller.
func errorResponse(err error) (int, string) {
	var inErr *inputError
	switch {
	case errors.As(err, &inErr):
		return http.StatusBadRequest, inErr.Error()
	case errors.Is(err, ErrDuplicateEmail):
		return http.StatusBadRequest, "Email already in use"
	case errors.Is(err, ErrInsufficientFunds):
		return http.StatusBadRequest, "Insufficient funds"
	case errors.Is(err, ErrInvalidCredentials):
		return http.StatusUnauthorized, "Invalid email or password"
	case errors.Is(err, ErrUnauthorized):
		return http.StatusForbidden, "Unauthorized"
	case errors.Is(err, ErrSenderNotFound):
		return http.StatusNotFound, "Sender account not found"
	case errors.Is(err, ErrRecipientNotFound):
		return http.StatusNotFound, "Recipient account not found"
	default:
		return http.StatusInternalServerError, "Server error"
	}
}

func (apiServer *APIServer) makeHTTPHandleFunc(f ApiFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := f(w, r); err != nil {
			code, msg := errorResponse(err)
			if code == http.StatusInternalServerError {
				apiServer.logger.Error("request failed",
					"request_id", GetRequestID(r.Context()),
					"path", r.URL.Path,
					"error", err,
				)
			}
			WriteJSON(w, code, APIError{Success: false, Message: msg})
		}
	}
}

func NewAPIServer(cfg *Config, ledger *Ledger, logger *slog.Logger) *APIServer {
	apiServer := &APIServer{
		portAddress: cfg.PortAddress,
		ledger:      ledger,
		logger:      logger,
		staticDir:   cfg.StaticDir,
	}

	apiServer.httpServer = &http.Server{
		Addr:         cfg.PortAddress,
		Handler:      apiServer.Router(),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	return apiServer
}

func (apiServer *APIServer) Router() http.Handler {
	router := mux.NewRouter()
	router.Use(RequestID, AccessLog(apiServer.logger))

	router.HandleFunc("/health", apiServer.getHealth).Methods(http.MethodGet)

	api := router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/auth/register", apiServer.makeHTTPHandleFunc(apiServer.registerAccount)).Methods(http.MethodPost)
	api.HandleFunc("/auth/login", apiServer.makeHTTPHandleFunc(apiServer.loginAccount)).Methods(http.MethodPost)
	api.HandleFunc("/users", apiServer.makeHTTPHandleFunc(apiServer.getAllAccounts)).Methods(http.MethodGet)
	api.HandleFunc("/transactions", apiServer.makeHTTPHandleFunc(apiServer.getAllTransactions)).Methods(http.MethodGet)
	api.HandleFunc("/transactions/send", apiServer.makeHTTPHandleFunc(apiServer.sendMoney)).Methods(http.MethodPost)
	api.HandleFunc("/admin/fund", apiServer.makeHTTPHandleFunc(apiServer.fundAccount)).Methods(http.MethodPost)

	if info, err := os.Stat(apiServer.staticDir); err == nil && info.IsDir() {
		router.PathPrefix("/").Handler(http.FileServer(http.Dir(apiServer.staticDir))).Methods(http.MethodGet)
	}

	return router
}

func (apiServer *APIServer) RunServer() error {
	apiServer.logger.Info("ledger server listening", "addr", apiServer.portAddress)

	err := apiServer.httpServer.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func (apiServer *APIServer) Shutdown(ctx context.Context) error {
	return apiServer.httpServer.Shutdown(ctx)
}

func (apiServer *APIServer) getHealth(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return errBadRequestBody
	}
	return nil
}

func (apiServer *APIServer) registerAccount(w http.ResponseWriter, r *http.Request) error {
	var newAccount CreateAccountRequest
	if err := decodeBody(w, r, &newAccount); err != nil {
		return err
	}

	account, err := apiServer.ledger.Register(&newAccount)
	if err != nil {
		return err
	}

	WriteJSON(w, http.StatusCreated, map[string]any{
		"success": true,
		"message": "Account created successfully",
		"user":    account,
	})
	return nil
}

func (apiServer *APIServer) loginAccount(w http.ResponseWriter, r *http.Request) error {
	var login LoginRequest
	if err := decodeBody(w, r, &login); err != nil {
		return err
	}

	account, err := apiServer.ledger.Authenticate(&login)
	if err != nil {
		return err
	}

	WriteJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Login successful",
		"user":    account,
	})
	return nil
}

// getAllAccounts performs no role check; the admin UI filters the list itself.
func (apiServer *APIServer) getAllAccounts(w http.ResponseWriter, r *http.Request) error {
	WriteJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"users":   apiServer.ledger.ListAccounts(),
	})
	return nil
}

func (apiServer *APIServer) getAllTransactions(w http.ResponseWriter, r *http.Request) error {
	WriteJSON(w, http.StatusOK, map[string]any{
		"success":      true,
		"transactions": apiServer.ledger.ListTransactions(),
	})
	return nil
}

func (apiServer *APIServer) sendMoney(w http.ResponseWriter, r *http.Request) error {
	var newTransactionInfo CreateTransactionRequest
	if err := decodeBody(w, r, &newTransactionInfo); err != nil {
		return err
	}

	transaction, err := apiServer.ledger.Transfer(&newTransactionInfo)
	if err != nil {
		return err
	}

	WriteJSON(w, http.StatusOK, map[string]any{
		"success":     true,
		"message":     "Transfer successful",
		"transaction": transaction,
	})
	return nil
}

func (apiServer *APIServer) fundAccount(w http.ResponseWriter, r *http.Request) error {
	var fundInfo FundAccountRequest
	if err := decodeBody(w, r, &fundInfo); err != nil {
		return err
	}

	transaction, err := apiServer.ledger.Fund(&fundInfo)
	if err != nil {
		return err
	}

	WriteJSON(w, http.StatusOK, map[string]any{
		"success":     true,
		"message":     "Funding successful",
		"transaction": transaction,
	})
	return nil
}
