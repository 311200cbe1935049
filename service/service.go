package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"bookstore/logging"
	"bookstore/models"
	"bookstore/repository"

	"github.com/golang-jwt/jwt/v4"
	"github.com/shopspring/decimal"
)

//go:generate mockgen -destination=./mocks/mock_repository.go -package=mocks bookstore/service Repository,EventPublisher
//go:generate mockgen -destination=./mocks/mock_tx.go -package=mocks bookstore/repository Tx

type Repository interface {
	GetUserByID(ctx context.Context, id int) (models.User, error)
	GetUserByUsername(ctx context.Context, username string) (models.User, error)
	CreateUser(ctx context.Context, email, username, password string, credits decimal.Decimal) (int, error)
	SetLoggedIn(ctx context.Context, id int, loggedIn bool) error
	CreateItem(ctx context.Context, item models.Item) (int, error)
	GetItemListing(ctx context.Context, id int) (models.ItemListing, error)
	SearchItems(ctx context.Context, filter models.ItemFilter) ([]models.ItemListing, error)
	GetBuyHistory(ctx context.Context, userID int) ([]models.BuyRecord, error)
	GetSellHistory(ctx context.Context, sellerID, itemID int) ([]models.SaleRecord, error)
	InTx(ctx context.Context, fn func(tx repository.Tx) error) error
}

// EventPublisher receives purchases after they are committed.
type EventPublisher interface {
	PublishPurchase(ctx context.Context, p models.Purchase) error
}

type Options struct {
	DefaultCredits decimal.Decimal
	PasswordScheme string
	Publisher      EventPublisher
}

type Service struct {
	repo           Repository
	jwtSecret      string
	defaultCredits decimal.Decimal
	passwordScheme string
	publisher      EventPublisher
}

func NewService(repo Repository, jwtSecret string, opts Options) Service {
	scheme := opts.PasswordScheme
	if scheme == "" {
		scheme = PasswordPlain
	}
	return Service{
		repo:           repo,
		jwtSecret:      jwtSecret,
		defaultCredits: opts.DefaultCredits,
		passwordScheme: scheme,
		publisher:      opts.Publisher,
	}
}

func (s Service) Register(
	ctx context.Context,
	req models.RegisterRequest,
) (int, error) {
	if req.Email == "" || req.Username == "" || req.Password == "" {
		return 0, ErrMissingParameter
	}
	_, err := s.repo.GetUserByUsername(ctx, req.Username)
	if err == nil {
		return 0, ErrUserAlreadyExists
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("lookup user: %w", err)
	}
	if !validPassword(req.Password) {
		return 0, ErrInvalidPasswordFormat
	}

	stored, err := s.storedPassword(req.Password)
	if err != nil {
		return 0, fmt.Errorf("hash password: %w", err)
	}
	id, err := s.repo.CreateUser(ctx, req.Email, req.Username, stored, s.defaultCredits)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return 0, ErrUserAlreadyExists
		}
		return 0, fmt.Errorf("create user: %w", err)
	}
	logging.FromContext(ctx).Info("user registered", "user_id", id)
	return id, nil
}

func (s Service) Login(
	ctx context.Context,
	req models.LoginRequest,
) (models.LoginResponse, error) {
	if req.Username == "" || req.Password == "" {
		return models.LoginResponse{}, ErrMissingParameter
	}
	user, err := s.repo.GetUserByUsername(ctx, req.Username)
	if err != nil {
		return models.LoginResponse{}, notFound(err, ErrUserNotFound)
	}
	if !validPassword(req.Password) {
		return models.LoginResponse{}, ErrInvalidPasswordFormat
	}
	if !s.passwordMatches(user.Password, req.Password) {
		return models.LoginResponse{}, ErrIncorrectPassword
	}
	if err := s.repo.SetLoggedIn(ctx, user.ID, true); err != nil {
		return models.LoginResponse{}, fmt.Errorf("set logged in: %w", err)
	}

	token, err := generateJWT(user, s.jwtSecret)
	if err != nil {
		return models.LoginResponse{}, fmt.Errorf("sign token: %w", err)
	}
	return models.LoginResponse{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
		Credits:  user.Credits,
		Token:    token,
	}, nil
}

func (s Service) Logout(
	ctx context.Context,
	rawUserID string,
) error {
	if rawUserID == "" {
		return ErrMissingParameter
	}
	user, err := s.repo.GetUserByID(ctx, parseID(rawUserID))
	if err != nil {
		return notFound(err, ErrUserNotFound)
	}
	if err := s.repo.SetLoggedIn(ctx, user.ID, false); err != nil {
		return fmt.Errorf("set logged out: %w", err)
	}
	return nil
}

// Purchase buys Quantity copies of an item for a logged-in user. Checks run
// in a fixed order and the first failing one is returned. The stock and
// credit checks, the item decrement, the buyer debit, the seller credit and
// the ledger row all happen in one transaction against locked rows, so
// concurrent buyers of the last copy cannot both succeed.
func (s Service) Purchase(
	ctx context.Context,
	req models.PurchaseRequest,
) (models.Purchase, error) {
	if req.UserID == "" || req.ItemID == "" || req.Quantity == "" {
		return models.Purchase{}, ErrMissingParameter
	}
	quantity, err := strconv.Atoi(strings.TrimSpace(req.Quantity))
	if err != nil || quantity <= 0 {
		return models.Purchase{}, ErrInvalidParameter
	}
	buyerID := parseID(req.UserID)
	itemID := parseID(req.ItemID)

	var purchase models.Purchase
	err = s.repo.InTx(ctx, func(tx repository.Tx) error {
		buyer, err := tx.GetUserByID(ctx, buyerID)
		if err != nil {
			return notFound(err, ErrUserNotFound)
		}
		if !buyer.LoggedIn {
			return ErrNotLoggedIn
		}

		item, err := tx.GetItemForUpdate(ctx, itemID)
		if err != nil {
			return notFound(err, ErrItemNotFound)
		}
		if quantity > item.Quantity {
			return ErrInsufficientStock
		}

		price := item.Price
		total := price.Mul(decimal.NewFromInt(int64(quantity)))

		locked, err := tx.LockUsers(ctx, []int{buyer.ID, item.SellerID})
		if err != nil {
			return fmt.Errorf("lock users: %w", err)
		}
		buyer, ok := locked[buyer.ID]
		if !ok {
			return ErrUserNotFound
		}
		if !buyer.LoggedIn {
			return ErrNotLoggedIn
		}
		if _, ok := locked[item.SellerID]; !ok {
			return fmt.Errorf("seller %d of item %d not found", item.SellerID, item.ID)
		}
		if buyer.Credits.LessThan(total) {
			return ErrInsufficientCredits
		}

		if err := tx.SetItemQuantity(ctx, item.ID, item.Quantity-quantity); err != nil {
			return fmt.Errorf("update quantity: %w", err)
		}
		if err := tx.AddCredits(ctx, buyer.ID, total.Neg()); err != nil {
			return fmt.Errorf("debit buyer: %w", err)
		}
		// The seller receives the full amount; no platform fee is taken.
		if err := tx.AddCredits(ctx, item.SellerID, total); err != nil {
			return fmt.Errorf("credit seller: %w", err)
		}

		purchase = models.Purchase{
			ItemID:       item.ID,
			BuyerID:      buyer.ID,
			Quantity:     quantity,
			PricePerItem: price,
			TotalCost:    total,
			PurchasedAt:  time.Now().UTC(),
		}
		id, err := tx.AddPurchase(ctx, purchase)
		if err != nil {
			return fmt.Errorf("add purchase: %w", err)
		}
		purchase.ID = id
		return nil
	})
	if err != nil {
		return models.Purchase{}, err
	}

	logger := logging.FromContext(ctx)
	logger.Info("purchase completed",
		"purchase_id", purchase.ID,
		"item_id", purchase.ItemID,
		"buyer_id", purchase.BuyerID,
		"quantity", purchase.Quantity,
		"total_cost", purchase.TotalCost.String(),
	)
	if s.publisher != nil {
		if err := s.publisher.PublishPurchase(ctx, purchase); err != nil {
			logger.Warn("publish purchase event failed", "purchase_id", purchase.ID, "error", err)
		}
	}
	return purchase, nil
}

func (s Service) ListItem(
	ctx context.Context,
	req models.ListItemRequest,
) (int, error) {
	if req.UserID == "" || req.Title == "" || req.Author == "" ||
		req.Description == "" || req.Price == "" || req.Quantity == "" ||
		req.Subject == "" {
		return 0, ErrMissingParameter
	}
	price, err := decimal.NewFromString(strings.TrimSpace(req.Price))
	if err != nil || price.IsNegative() {
		return 0, ErrInvalidParameter
	}
	quantity, err := strconv.Atoi(strings.TrimSpace(req.Quantity))
	if err != nil || quantity < 0 {
		return 0, ErrInvalidParameter
	}
	seller, err := s.loggedInUser(ctx, req.UserID)
	if err != nil {
		return 0, err
	}

	id, err := s.repo.CreateItem(ctx, models.Item{
		Title:       req.Title,
		Author:      req.Author,
		Subject:     req.Subject,
		Description: req.Description,
		Price:       price,
		Quantity:    quantity,
		SellerID:    seller.ID,
	})
	if err != nil {
		return 0, fmt.Errorf("create item: %w", err)
	}
	logging.FromContext(ctx).Info("item listed", "item_id", id, "seller_id", seller.ID)
	return id, nil
}

func (s Service) Browse(
	ctx context.Context,
	subject, search string,
) ([]models.ItemListing, error) {
	listings, err := s.repo.SearchItems(ctx, models.ItemFilter{
		Subject: subject,
		Search:  search,
	})
	if err != nil {
		return nil, fmt.Errorf("search items: %w", err)
	}
	return listings, nil
}

func (s Service) ItemInfo(
	ctx context.Context,
	rawItemID string,
) (models.ItemListing, error) {
	if rawItemID == "" {
		return models.ItemListing{}, ErrMissingParameter
	}
	listing, err := s.repo.GetItemListing(ctx, parseID(rawItemID))
	if err != nil {
		return models.ItemListing{}, notFound(err, ErrItemNotFound)
	}
	return listing, nil
}

func (s Service) BuyHistory(
	ctx context.Context,
	rawUserID string,
) ([]models.BuyRecord, error) {
	if rawUserID == "" {
		return nil, ErrMissingParameter
	}
	user, err := s.loggedInUser(ctx, rawUserID)
	if err != nil {
		return nil, err
	}
	records, err := s.repo.GetBuyHistory(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("buy history: %w", err)
	}
	return records, nil
}

func (s Service) SellHistory(
	ctx context.Context,
	req models.SellHistoryRequest,
) ([]models.SaleRecord, error) {
	if req.SellerID == "" {
		return nil, ErrMissingParameter
	}
	itemID := 0
	if req.ItemID != "" {
		itemID = parseID(req.ItemID)
		if itemID == 0 {
			return nil, ErrInvalidParameter
		}
	}
	seller, err := s.loggedInUser(ctx, req.SellerID)
	if errors.Is(err, ErrUserNotFound) {
		return nil, ErrSellerNotFound
	}
	if err != nil {
		return nil, err
	}
	records, err := s.repo.GetSellHistory(ctx, seller.ID, itemID)
	if err != nil {
		return nil, fmt.Errorf("sell history: %w", err)
	}
	return records, nil
}

func (s Service) loggedInUser(
	ctx context.Context,
	rawUserID string,
) (models.User, error) {
	user, err := s.repo.GetUserByID(ctx, parseID(rawUserID))
	if err != nil {
		return models.User{}, notFound(err, ErrUserNotFound)
	}
	if !user.LoggedIn {
		return models.User{}, ErrNotLoggedIn
	}
	return user, nil
}

// parseID returns 0 for anything that is not a positive integer. Ids start
// at 1, so 0 never matches a row and the lookup reports "not found".
func parseID(raw string) int {
	id, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || id < 0 {
		return 0
	}
	return id
}

func notFound(err, domainErr error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return domainErr
	}
	return err
}

func generateJWT(
	user models.User,
	secret string,
) (string, error) {
	token := jwt.NewWithClaims(
		jwt.SigningMethodHS256,
		jwt.MapClaims{
			"user_id":  user.ID,
			"username": user.Username,
			"exp":      time.Now().Add(24 * time.Hour).Unix(),
		},
	)
	return token.SignedString([]byte(secret))
}
