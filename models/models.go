package models

import (
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// Credits and prices go over the wire as JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true
}

type User struct {
	ID       int             `db:"id" json:"id"`
	Email    string          `db:"email" json:"email"`
	Username string          `db:"username" json:"username"`
	Password string          `db:"password" json:"-"`
	Credits  decimal.Decimal `db:"credits" json:"credits"`
	LoggedIn bool            `db:"is_logged_in" json:"is_logged_in"`
}

type Item struct {
	ID          int             `db:"id" json:"id"`
	Title       string          `db:"title" json:"title"`
	Author      string          `db:"author" json:"author"`
	Subject     string          `db:"subject" json:"subject"`
	Description string          `db:"description" json:"description"`
	Price       decimal.Decimal `db:"price" json:"price"`
	Quantity    int             `db:"quantity" json:"quantity"`
	SellerID    int             `db:"seller" json:"seller"`
}

// ItemListing is an item joined with its seller's username.
type ItemListing struct {
	Item
	Username string `db:"username" json:"username"`
}

// Purchase is an immutable ledger row. PricePerItem is the item price at the
// moment of purchase and TotalCost = Quantity * PricePerItem.
type Purchase struct {
	ID           int             `db:"id" json:"id"`
	ItemID       int             `db:"item_id" json:"item_id"`
	BuyerID      int             `db:"user_id" json:"user_id"`
	Quantity     int             `db:"quantity" json:"quantity"`
	PricePerItem decimal.Decimal `db:"price_per_item" json:"price_per_item"`
	TotalCost    decimal.Decimal `db:"total_cost" json:"total_cost"`
	PurchasedAt  time.Time       `db:"datetime_purchased" json:"datetime_purchased"`
}

// BuyRecord is a purchase seen from the buyer side.
type BuyRecord struct {
	Purchase
	Title  string `db:"title" json:"title"`
	Author string `db:"author" json:"author"`
	Seller string `db:"username" json:"username"`
}

// SaleRecord is a purchase seen from the seller side.
type SaleRecord struct {
	Purchase
	Title  string `db:"title" json:"title"`
	Author string `db:"author" json:"author"`
	Buyer  string `db:"username" json:"username"`
}

type ItemFilter struct {
	Subject string
	Search  string
}
