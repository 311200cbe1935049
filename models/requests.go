package models

import "github.com/shopspring/decimal"

// Request fields arrive as raw strings from forms or JSON; the service owns
// validation so that checks run in a fixed order.

type RegisterRequest struct {
	Email    string
	Username string
	Password string
}

type LoginRequest struct {
	Username string
	Password string
}

type LoginResponse struct {
	ID       int             `json:"id"`
	Username string          `json:"username"`
	Email    string          `json:"email"`
	Credits  decimal.Decimal `json:"credits"`
	Token    string          `json:"token"`
}

type PurchaseRequest struct {
	UserID   string
	ItemID   string
	Quantity string
}

type ListItemRequest struct {
	UserID      string
	Title       string
	Author      string
	Description string
	Price       string
	Quantity    string
	Subject     string
}

type SellHistoryRequest struct {
	SellerID string
	ItemID   string
}
