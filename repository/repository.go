package repository

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"bookstore/models"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

// ErrDuplicate is returned when an insert hits a unique constraint.
var ErrDuplicate = errors.New("duplicate key")

const uniqueViolation = "23505"

const (
	userColumns = "id, email, username, password, credits, is_logged_in"
	itemColumns = "id, title, author, subject, description, price, quantity, seller"
)

// Tx is the set of operations available inside a single database
// transaction. Reads that end in ForUpdate or Lock hold row locks until the
// transaction ends.
type Tx interface {
	GetUserByID(ctx context.Context, id int) (models.User, error)
	GetItemForUpdate(ctx context.Context, id int) (models.Item, error)
	LockUsers(ctx context.Context, ids []int) (map[int]models.User, error)
	SetItemQuantity(ctx context.Context, itemID, quantity int) error
	AddCredits(ctx context.Context, userID int, delta decimal.Decimal) error
	AddPurchase(ctx context.Context, p models.Purchase) (int, error)
}

type PostgresRepository struct {
	db *sqlx.DB
}

func NewPostgresRepository(db *sqlx.DB) PostgresRepository {
	return PostgresRepository{db: db}
}

// InTx runs fn inside one transaction. The transaction commits when fn
// returns nil and rolls back otherwise.
func (r PostgresRepository) InTx(
	ctx context.Context,
	fn func(tx Tx) error,
) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := fn(postgresTx{tx: tx}); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

func (r PostgresRepository) GetUserByID(
	ctx context.Context,
	id int,
) (models.User, error) {
	return getUser(ctx, r.db, "SELECT "+userColumns+" FROM users WHERE id=$1", id)
}

func (r PostgresRepository) GetUserByUsername(
	ctx context.Context,
	username string,
) (models.User, error) {
	return getUser(ctx, r.db, "SELECT "+userColumns+" FROM users WHERE username=$1", username)
}

func (r PostgresRepository) CreateUser(
	ctx context.Context,
	email, username, password string,
	credits decimal.Decimal,
) (int, error) {
	var id int
	err := r.db.QueryRowContext(
		ctx,
		"INSERT INTO users (email, username, password, credits, is_logged_in) "+
			"VALUES ($1, $2, $3, $4, FALSE) RETURNING id",
		email, username, password, credits,
	).Scan(&id)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return 0, ErrDuplicate
		}
		return 0, err
	}
	return id, nil
}

func (r PostgresRepository) SetLoggedIn(
	ctx context.Context,
	id int,
	loggedIn bool,
) error {
	_, err := r.db.ExecContext(
		ctx,
		"UPDATE users SET is_logged_in=$1 WHERE id=$2",
		loggedIn, id,
	)
	return err
}

func (r PostgresRepository) CreateItem(
	ctx context.Context,
	item models.Item,
) (int, error) {
	var id int
	err := r.db.QueryRowContext(
		ctx,
		"INSERT INTO inventory (title, author, subject, description, price, quantity, seller) "+
			"VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id",
		item.Title, item.Author, item.Subject, item.Description,
		item.Price, item.Quantity, item.SellerID,
	).Scan(&id)
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (r PostgresRepository) GetItemListing(
	ctx context.Context,
	id int,
) (models.ItemListing, error) {
	var listing models.ItemListing
	err := r.db.GetContext(
		ctx,
		&listing,
		`SELECT i.id, i.title, i.author, i.subject, i.description, i.price,
		        i.quantity, i.seller, u.username
		 FROM inventory i JOIN users u ON u.id = i.seller
		 WHERE i.id=$1`,
		id,
	)
	if err != nil {
		return models.ItemListing{}, err
	}
	return listing, nil
}

// SearchItems lists inventory joined with seller usernames. Subject "All"
// or "" matches every subject; Search is matched case-insensitively against
// title, author and description.
func (r PostgresRepository) SearchItems(
	ctx context.Context,
	filter models.ItemFilter,
) ([]models.ItemListing, error) {
	query := `SELECT i.id, i.title, i.author, i.subject, i.description, i.price,
	                 i.quantity, i.seller, u.username
	          FROM inventory i JOIN users u ON u.id = i.seller
	          WHERE TRUE`
	var args []interface{}
	if filter.Subject != "" && filter.Subject != "All" {
		args = append(args, filter.Subject)
		query += " AND i.subject=" + placeholder(len(args))
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		p := placeholder(len(args))
		query += " AND (i.title ILIKE " + p + " OR i.author ILIKE " + p + " OR i.description ILIKE " + p + ")"
	}
	query += " ORDER BY i.title, i.id"

	listings := []models.ItemListing{}
	if err := r.db.SelectContext(ctx, &listings, query, args...); err != nil {
		return nil, err
	}
	return listings, nil
}

func (r PostgresRepository) GetBuyHistory(
	ctx context.Context,
	userID int,
) ([]models.BuyRecord, error) {
	records := []models.BuyRecord{}
	err := r.db.SelectContext(
		ctx,
		&records,
		`SELECT p.id, p.item_id, p.user_id, p.quantity, p.price_per_item,
		        p.total_cost, p.datetime_purchased, i.title, i.author, u.username
		 FROM purchases p
		 JOIN inventory i ON i.id = p.item_id
		 JOIN users u ON u.id = i.seller
		 WHERE p.user_id=$1
		 ORDER BY p.datetime_purchased DESC, p.id DESC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	return records, nil
}

// GetSellHistory returns purchases of the seller's items, newest first.
// itemID of 0 means every item.
func (r PostgresRepository) GetSellHistory(
	ctx context.Context,
	sellerID, itemID int,
) ([]models.SaleRecord, error) {
	query := `SELECT p.id, p.item_id, p.user_id, p.quantity, p.price_per_item,
	                 p.total_cost, p.datetime_purchased, i.title, i.author, u.username
	          FROM purchases p
	          JOIN inventory i ON i.id = p.item_id
	          JOIN users u ON u.id = p.user_id
	          WHERE i.seller=$1`
	args := []interface{}{sellerID}
	if itemID != 0 {
		args = append(args, itemID)
		query += " AND p.item_id=" + placeholder(len(args))
	}
	query += " ORDER BY p.datetime_purchased DESC, p.id DESC"

	records := []models.SaleRecord{}
	if err := r.db.SelectContext(ctx, &records, query, args...); err != nil {
		return nil, err
	}
	return records, nil
}

type postgresTx struct {
	tx *sqlx.Tx
}

func (t postgresTx) GetUserByID(
	ctx context.Context,
	id int,
) (models.User, error) {
	return getUser(ctx, t.tx, "SELECT "+userColumns+" FROM users WHERE id=$1", id)
}

func (t postgresTx) GetItemForUpdate(
	ctx context.Context,
	id int,
) (models.Item, error) {
	var item models.Item
	err := t.tx.GetContext(
		ctx,
		&item,
		"SELECT "+itemColumns+" FROM inventory WHERE id=$1 FOR UPDATE",
		id,
	)
	if err != nil {
		return models.Item{}, err
	}
	return item, nil
}

// LockUsers locks the given user rows in ascending id order so that two
// transactions touching the same pair of users cannot deadlock.
func (t postgresTx) LockUsers(
	ctx context.Context,
	ids []int,
) (map[int]models.User, error) {
	keys := make([]int64, 0, len(ids))
	for _, id := range ids {
		keys = append(keys, int64(id))
	}
	var users []models.User
	err := t.tx.SelectContext(
		ctx,
		&users,
		"SELECT "+userColumns+" FROM users WHERE id = ANY($1) ORDER BY id FOR UPDATE",
		pq.Array(keys),
	)
	if err != nil {
		return nil, err
	}
	locked := make(map[int]models.User, len(users))
	for _, u := range users {
		locked[u.ID] = u
	}
	return locked, nil
}

func (t postgresTx) SetItemQuantity(
	ctx context.Context,
	itemID, quantity int,
) error {
	_, err := t.tx.ExecContext(
		ctx,
		"UPDATE inventory SET quantity=$1 WHERE id=$2",
		quantity, itemID,
	)
	return err
}

func (t postgresTx) AddCredits(
	ctx context.Context,
	userID int,
	delta decimal.Decimal,
) error {
	_, err := t.tx.ExecContext(
		ctx,
		"UPDATE users SET credits = credits + $1 WHERE id=$2",
		delta, userID,
	)
	return err
}

func (t postgresTx) AddPurchase(
	ctx context.Context,
	p models.Purchase,
) (int, error) {
	var id int
	err := t.tx.QueryRowContext(
		ctx,
		"INSERT INTO purchases (item_id, user_id, quantity, price_per_item, total_cost, datetime_purchased) "+
			"VALUES ($1, $2, $3, $4, $5, $6) RETURNING id",
		p.ItemID, p.BuyerID, p.Quantity, p.PricePerItem, p.TotalCost, p.PurchasedAt,
	).Scan(&id)
	if err != nil {
		return 0, err
	}
	return id, nil
}

func getUser(
	ctx context.Context,
	q sqlx.QueryerContext,
	query string,
	arg interface{},
) (models.User, error) {
	var u models.User
	if err := sqlx.GetContext(ctx, q, &u, query, arg); err != nil {
		return models.User{}, err
	}
	return u, nil
}

func placeholder(n int) string {
	return "$" + strconv.Itoa(n)
}
