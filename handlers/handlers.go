package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"bookstore/logging"
	"bookstore/models"
	"bookstore/service"

	"github.com/gorilla/mux"
)

const (
	serverErrorMessage = "An error occurred on the server. Try again later."
	maxFormBytes       = 1 << 20
)

// Limiter throttles requests per client key.
type Limiter interface {
	Allow(ctx context.Context, key string) bool
}

type Handler struct {
	svc       service.Service
	jwtSecret string
	dbTimeout time.Duration
	limiter   Limiter
}

// NewHandler builds the HTTP handlers. limiter may be nil to disable
// throttling of login and registration.
func NewHandler(
	svc service.Service,
	jwtSecret string,
	dbTimeout time.Duration,
	limiter Limiter,
) Handler {
	return Handler{
		svc:       svc,
		jwtSecret: jwtSecret,
		dbTimeout: dbTimeout,
		limiter:   limiter,
	}
}

// NewRouter registers every /bookstore route and wraps the router with the
// request id, request log and trailing slash middleware.
func NewRouter(h Handler) http.Handler {
	r := mux.NewRouter()
	b := r.PathPrefix("/bookstore").Subrouter()
	b.HandleFunc("/login", h.RateLimit(h.LoginHandler)).Methods(http.MethodPost)
	b.HandleFunc("/register", h.RateLimit(h.RegisterHandler)).Methods(http.MethodPost)
	b.HandleFunc("/logout", h.JWTMiddleware(h.LogoutHandler)).Methods(http.MethodPost)
	b.HandleFunc("/purchase", h.JWTMiddleware(h.PurchaseHandler)).Methods(http.MethodPost)
	b.HandleFunc("/listNewItem", h.JWTMiddleware(h.ListItemHandler)).Methods(http.MethodPost)
	b.HandleFunc("/viewBuyHistory", h.JWTMiddleware(h.BuyHistoryHandler)).Methods(http.MethodPost)
	b.HandleFunc("/viewSellHistory", h.JWTMiddleware(h.SellHistoryHandler)).Methods(http.MethodPost)
	b.HandleFunc("/inventory/{subject}", h.InventoryHandler).Methods(http.MethodGet)
	b.HandleFunc("/itemInfo/{itemID}", h.ItemInfoHandler).Methods(http.MethodGet)

	return logging.WithRequestID(logging.WithRequestLog(trimTrailingSlash(r)))
}

func (h Handler) LoginHandler(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if !readParams(w, r, map[string]*string{
		"username": &req.Username,
		"password": &req.Password,
	}) {
		return
	}
	ctx, cancel := h.requestContext(r)
	defer cancel()

	resp, err := h.svc.Login(ctx, req)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, resp)
}

func (h Handler) LogoutHandler(w http.ResponseWriter, r *http.Request) {
	var userID string
	if !readParams(w, r, map[string]*string{"userID": &userID}) {
		return
	}
	if !tokenMatches(r, userID) {
		respondWithError(w, http.StatusUnauthorized, "Token does not match user")
		return
	}
	ctx, cancel := h.requestContext(r)
	defer cancel()

	if err := h.svc.Logout(ctx, userID); err != nil {
		respondWithServiceError(w, r, err)
		return
	}
	respondWithText(w, http.StatusOK, "Logout successful")
}

func (h Handler) RegisterHandler(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if !readParams(w, r, map[string]*string{
		"email":    &req.Email,
		"username": &req.Username,
		"password": &req.Password,
	}) {
		return
	}
	ctx, cancel := h.requestContext(r)
	defer cancel()

	if _, err := h.svc.Register(ctx, req); err != nil {
		respondWithServiceError(w, r, err)
		return
	}
	respondWithText(w, http.StatusOK, "Successfully registered")
}

func (h Handler) PurchaseHandler(w http.ResponseWriter, r *http.Request) {
	var req models.PurchaseRequest
	if !readParams(w, r, map[string]*string{
		"userID":   &req.UserID,
		"itemID":   &req.ItemID,
		"quantity": &req.Quantity,
	}) {
		return
	}
	if !tokenMatches(r, req.UserID) {
		respondWithError(w, http.StatusUnauthorized, "Token does not match user")
		return
	}
	ctx, cancel := h.requestContext(r)
	defer cancel()

	if _, err := h.svc.Purchase(ctx, req); err != nil {
		respondWithServiceError(w, r, err)
		return
	}
	respondWithText(w, http.StatusOK, "Successfully bought item")
}

func (h Handler) ListItemHandler(w http.ResponseWriter, r *http.Request) {
	var req models.ListItemRequest
	if !readParams(w, r, map[string]*string{
		"userID":      &req.UserID,
		"title":       &req.Title,
		"author":      &req.Author,
		"description": &req.Description,
		"price":       &req.Price,
		"quantity":    &req.Quantity,
		"subject":     &req.Subject,
	}) {
		return
	}
	if !tokenMatches(r, req.UserID) {
		respondWithError(w, http.StatusUnauthorized, "Token does not match user")
		return
	}
	ctx, cancel := h.requestContext(r)
	defer cancel()

	if _, err := h.svc.ListItem(ctx, req); err != nil {
		respondWithServiceError(w, r, err)
		return
	}
	respondWithText(w, http.StatusOK, "Successfully listed item")
}

func (h Handler) InventoryHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.requestContext(r)
	defer cancel()

	listings, err := h.svc.Browse(ctx, mux.Vars(r)["subject"], r.URL.Query().Get("search"))
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, listings)
}

func (h Handler) BuyHistoryHandler(w http.ResponseWriter, r *http.Request) {
	var userID string
	if !readParams(w, r, map[string]*string{"userID": &userID}) {
		return
	}
	if !tokenMatches(r, userID) {
		respondWithError(w, http.StatusUnauthorized, "Token does not match user")
		return
	}
	ctx, cancel := h.requestContext(r)
	defer cancel()

	records, err := h.svc.BuyHistory(ctx, userID)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, records)
}

func (h Handler) SellHistoryHandler(w http.ResponseWriter, r *http.Request) {
	var req models.SellHistoryRequest
	if !readParams(w, r, map[string]*string{
		"sellerID": &req.SellerID,
		"itemID":   &req.ItemID,
	}) {
		return
	}
	if req.ItemID == "" {
		req.ItemID = strings.TrimSpace(r.URL.Query().Get("itemID"))
	}
	if !tokenMatches(r, req.SellerID) {
		respondWithError(w, http.StatusUnauthorized, "Token does not match user")
		return
	}
	ctx, cancel := h.requestContext(r)
	defer cancel()

	records, err := h.svc.SellHistory(ctx, req)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, records)
}

func (h Handler) ItemInfoHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.requestContext(r)
	defer cancel()

	listing, err := h.svc.ItemInfo(ctx, mux.Vars(r)["itemID"])
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, listing)
}

func (h Handler) requestContext(r *http.Request) (context.Context, context.CancelFunc) {
	if h.dbTimeout <= 0 {
		return context.WithCancel(r.Context())
	}
	return context.WithTimeout(r.Context(), h.dbTimeout)
}

// param accepts both JSON strings and JSON numbers.
type param string

func (p *param) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*p = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*p = param(s)
		return nil
	}
	*p = param(data)
	return nil
}

// readParams fills fields from a JSON body or from a urlencoded or multipart
// form. It writes a 400 response and returns false if the body is malformed.
func readParams(w http.ResponseWriter, r *http.Request, fields map[string]*string) bool {
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		body := map[string]param{}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil && !errors.Is(err, io.EOF) {
			respondWithError(w, http.StatusBadRequest, "Invalid request body")
			return false
		}
		for key, dst := range fields {
			*dst = strings.TrimSpace(string(body[key]))
		}
		return true
	}
	if err := r.ParseMultipartForm(maxFormBytes); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return false
	}
	for key, dst := range fields {
		*dst = strings.TrimSpace(r.FormValue(key))
	}
	return true
}

func respondWithServiceError(w http.ResponseWriter, r *http.Request, err error) {
	if service.IsClientError(err) {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	logging.FromContext(r.Context()).Error("request failed", "path", r.URL.Path, "error", err)
	respondWithError(w, http.StatusInternalServerError, serverErrorMessage)
}

func respondWithError(w http.ResponseWriter, code int, message string) {
	respondWithText(w, code, message)
}

func respondWithText(w http.ResponseWriter, code int, message string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(code)
	_, _ = io.WriteString(w, message)
}

func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(payload)
}
