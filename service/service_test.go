package service_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"bookstore/models"
	"bookstore/repository"
	"bookstore/service"

	"bookstore/service/mocks"

	"github.com/golang-jwt/jwt/v4"
	"github.com/golang/mock/gomock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type decimalMatcher struct {
	want decimal.Decimal
}

func (m decimalMatcher) Matches(x interface{}) bool {
	d, ok := x.(decimal.Decimal)
	return ok && d.Equal(m.want)
}

func (m decimalMatcher) String() string {
	return "is decimal " + m.want.String()
}

func decEq(v int64) gomock.Matcher {
	return decimalMatcher{want: decimal.NewFromInt(v)}
}

func runTx(tx *mocks.MockTx) func(context.Context, func(repository.Tx) error) error {
	return func(_ context.Context, fn func(repository.Tx) error) error {
		return fn(tx)
	}
}

func newService(repo service.Repository, pub service.EventPublisher) service.Service {
	opts := service.Options{DefaultCredits: decimal.NewFromInt(100)}
	if pub != nil {
		opts.Publisher = pub
	}
	return service.NewService(repo, "secret", opts)
}

func TestService_Register(t *testing.T) {
	type fields struct {
		prepareRepository func(*mocks.MockRepository)
	}
	tests := []struct {
		name    string
		fields  fields
		req     models.RegisterRequest
		wantID  int
		wantErr error
	}{
		{
			name: "New user",
			fields: fields{
				prepareRepository: func(mr *mocks.MockRepository) {
					mr.EXPECT().
						GetUserByUsername(gomock.Any(), "alice").
						Return(models.User{}, sql.ErrNoRows)
					mr.EXPECT().
						CreateUser(gomock.Any(), "alice@example.com", "alice", "Passw0rd", decEq(100)).
						Return(7, nil)
				},
			},
			req:    models.RegisterRequest{Email: "alice@example.com", Username: "alice", Password: "Passw0rd"},
			wantID: 7,
		},
		{
			name: "Missing email",
			fields: fields{
				prepareRepository: func(mr *mocks.MockRepository) {},
			},
			req:     models.RegisterRequest{Username: "alice", Password: "Passw0rd"},
			wantErr: service.ErrMissingParameter,
		},
		{
			name: "Username taken",
			fields: fields{
				prepareRepository: func(mr *mocks.MockRepository) {
					mr.EXPECT().
						GetUserByUsername(gomock.Any(), "alice").
						Return(models.User{ID: 1, Username: "alice"}, nil)
				},
			},
			req:     models.RegisterRequest{Email: "a@b.c", Username: "alice", Password: "Passw0rd"},
			wantErr: service.ErrUserAlreadyExists,
		},
		{
			name: "Password starts with a digit",
			fields: fields{
				prepareRepository: func(mr *mocks.MockRepository) {
					mr.EXPECT().
						GetUserByUsername(gomock.Any(), "bob").
						Return(models.User{}, sql.ErrNoRows)
				},
			},
			req:     models.RegisterRequest{Email: "b@b.c", Username: "bob", Password: "1password"},
			wantErr: service.ErrInvalidPasswordFormat,
		},
		{
			name: "Password with whitespace",
			fields: fields{
				prepareRepository: func(mr *mocks.MockRepository) {
					mr.EXPECT().
						GetUserByUsername(gomock.Any(), "bob").
						Return(models.User{}, sql.ErrNoRows)
				},
			},
			req:     models.RegisterRequest{Email: "b@b.c", Username: "bob", Password: "pass word"},
			wantErr: service.ErrInvalidPasswordFormat,
		},
		{
			name: "Concurrent registration hits unique constraint",
			fields: fields{
				prepareRepository: func(mr *mocks.MockRepository) {
					mr.EXPECT().
						GetUserByUsername(gomock.Any(), "carol").
						Return(models.User{}, sql.ErrNoRows)
					mr.EXPECT().
						CreateUser(gomock.Any(), "c@b.c", "carol", "Passw0rd", gomock.Any()).
						Return(0, repository.ErrDuplicate)
				},
			},
			req:     models.RegisterRequest{Email: "c@b.c", Username: "carol", Password: "Passw0rd"},
			wantErr: service.ErrUserAlreadyExists,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockRepo := mocks.NewMockRepository(ctrl)
			tt.fields.prepareRepository(mockRepo)

			svc := newService(mockRepo, nil)
			id, err := svc.Register(context.Background(), tt.req)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.wantID, id)
		})
	}
}

func TestService_Register_Bcrypt(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockRepository(ctrl)
	mockRepo.EXPECT().
		GetUserByUsername(gomock.Any(), "dave").
		Return(models.User{}, sql.ErrNoRows)
	mockRepo.EXPECT().
		CreateUser(gomock.Any(), "d@b.c", "dave", gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _, _, stored string, _ decimal.Decimal) (int, error) {
			require.NotEqual(t, "Passw0rd", stored)
			require.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored), []byte("Passw0rd")))
			return 3, nil
		})

	svc := service.NewService(mockRepo, "secret", service.Options{PasswordScheme: service.PasswordBcrypt})
	_, err := svc.Register(context.Background(), models.RegisterRequest{
		Email: "d@b.c", Username: "dave", Password: "Passw0rd",
	})
	require.NoError(t, err)
}

func TestService_Login(t *testing.T) {
	alice := models.User{
		ID:       2,
		Email:    "alice@example.com",
		Username: "alice",
		Password: "Passw0rd",
		Credits:  decimal.NewFromInt(100),
	}
	type fields struct {
		prepareRepository func(*mocks.MockRepository)
	}
	tests := []struct {
		name    string
		fields  fields
		req     models.LoginRequest
		wantErr error
	}{
		{
			name: "Correct password",
			fields: fields{
				prepareRepository: func(mr *mocks.MockRepository) {
					mr.EXPECT().GetUserByUsername(gomock.Any(), "alice").Return(alice, nil)
					mr.EXPECT().SetLoggedIn(gomock.Any(), 2, true).Return(nil)
				},
			},
			req: models.LoginRequest{Username: "alice", Password: "Passw0rd"},
		},
		{
			name: "Unknown user",
			fields: fields{
				prepareRepository: func(mr *mocks.MockRepository) {
					mr.EXPECT().GetUserByUsername(gomock.Any(), "nobody").Return(models.User{}, sql.ErrNoRows)
				},
			},
			req:     models.LoginRequest{Username: "nobody", Password: "Passw0rd"},
			wantErr: service.ErrUserNotFound,
		},
		{
			name: "Invalid password format",
			fields: fields{
				prepareRepository: func(mr *mocks.MockRepository) {
					mr.EXPECT().GetUserByUsername(gomock.Any(), "alice").Return(alice, nil)
				},
			},
			req:     models.LoginRequest{Username: "alice", Password: "abc"},
			wantErr: service.ErrInvalidPasswordFormat,
		},
		{
			name: "Wrong password",
			fields: fields{
				prepareRepository: func(mr *mocks.MockRepository) {
					mr.EXPECT().GetUserByUsername(gomock.Any(), "alice").Return(alice, nil)
				},
			},
			req:     models.LoginRequest{Username: "alice", Password: "Wrongpass"},
			wantErr: service.ErrIncorrectPassword,
		},
		{
			name: "Missing password",
			fields: fields{
				prepareRepository: func(mr *mocks.MockRepository) {},
			},
			req:     models.LoginRequest{Username: "alice"},
			wantErr: service.ErrMissingParameter,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockRepo := mocks.NewMockRepository(ctrl)
			tt.fields.prepareRepository(mockRepo)

			svc := newService(mockRepo, nil)
			resp, err := svc.Login(context.Background(), tt.req)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, alice.ID, resp.ID)
			require.True(t, alice.Credits.Equal(resp.Credits))

			parsed, err := jwt.Parse(resp.Token, func(token *jwt.Token) (interface{}, error) {
				return []byte("secret"), nil
			})
			require.NoError(t, err)
			claims, ok := parsed.Claims.(jwt.MapClaims)
			require.True(t, ok)
			require.Equal(t, alice.ID, int(claims["user_id"].(float64)))
			require.Equal(t, alice.Username, claims["username"])
		})
	}
}

func TestService_Logout(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockRepository(ctrl)
	mockRepo.EXPECT().GetUserByID(gomock.Any(), 4).Return(models.User{ID: 4, LoggedIn: true}, nil)
	mockRepo.EXPECT().SetLoggedIn(gomock.Any(), 4, false).Return(nil)
	mockRepo.EXPECT().GetUserByID(gomock.Any(), 0).Return(models.User{}, sql.ErrNoRows)

	svc := newService(mockRepo, nil)
	require.NoError(t, svc.Logout(context.Background(), "4"))
	require.ErrorIs(t, svc.Logout(context.Background(), "abc"), service.ErrUserNotFound)
	require.ErrorIs(t, svc.Logout(context.Background(), ""), service.ErrMissingParameter)
}

func TestService_Purchase(t *testing.T) {
	buyer := models.User{ID: 1, Username: "buyer", Credits: decimal.NewFromInt(100), LoggedIn: true}
	seller := models.User{ID: 2, Username: "seller", Credits: decimal.NewFromInt(50), LoggedIn: true}
	item := models.Item{ID: 10, Title: "Dune", Price: decimal.NewFromInt(10), Quantity: 5, SellerID: 2}
	dbErr := errors.New("connection reset")

	type fields struct {
		prepare func(*mocks.MockRepository, *mocks.MockTx, *mocks.MockEventPublisher)
	}
	tests := []struct {
		name      string
		fields    fields
		req       models.PurchaseRequest
		wantErr   error
		wantTotal int64
	}{
		{
			name: "Buyer buys three of five copies",
			fields: fields{
				prepare: func(mr *mocks.MockRepository, tx *mocks.MockTx, pub *mocks.MockEventPublisher) {
					mr.EXPECT().InTx(gomock.Any(), gomock.Any()).DoAndReturn(runTx(tx))
					gomock.InOrder(
						tx.EXPECT().GetUserByID(gomock.Any(), 1).Return(buyer, nil),
						tx.EXPECT().GetItemForUpdate(gomock.Any(), 10).Return(item, nil),
						tx.EXPECT().LockUsers(gomock.Any(), []int{1, 2}).
							Return(map[int]models.User{1: buyer, 2: seller}, nil),
						tx.EXPECT().SetItemQuantity(gomock.Any(), 10, 2).Return(nil),
						tx.EXPECT().AddCredits(gomock.Any(), 1, decEq(-30)).Return(nil),
						tx.EXPECT().AddCredits(gomock.Any(), 2, decEq(30)).Return(nil),
						tx.EXPECT().AddPurchase(gomock.Any(), gomock.Any()).
							DoAndReturn(func(_ context.Context, p models.Purchase) (int, error) {
								require.Equal(t, 10, p.ItemID)
								require.Equal(t, 1, p.BuyerID)
								require.Equal(t, 3, p.Quantity)
								require.True(t, p.PricePerItem.Equal(decimal.NewFromInt(10)))
								require.True(t, p.TotalCost.Equal(decimal.NewFromInt(30)))
								require.False(t, p.PurchasedAt.IsZero())
								return 99, nil
							}),
					)
					pub.EXPECT().PublishPurchase(gomock.Any(), gomock.Any()).Return(nil)
				},
			},
			req:       models.PurchaseRequest{UserID: "1", ItemID: "10", Quantity: "3"},
			wantTotal: 30,
		},
		{
			name: "Exact stock exhaustion succeeds",
			fields: fields{
				prepare: func(mr *mocks.MockRepository, tx *mocks.MockTx, pub *mocks.MockEventPublisher) {
					mr.EXPECT().InTx(gomock.Any(), gomock.Any()).DoAndReturn(runTx(tx))
					tx.EXPECT().GetUserByID(gomock.Any(), 1).Return(buyer, nil)
					tx.EXPECT().GetItemForUpdate(gomock.Any(), 10).Return(item, nil)
					tx.EXPECT().LockUsers(gomock.Any(), []int{1, 2}).
						Return(map[int]models.User{1: buyer, 2: seller}, nil)
					tx.EXPECT().SetItemQuantity(gomock.Any(), 10, 0).Return(nil)
					tx.EXPECT().AddCredits(gomock.Any(), 1, decEq(-50)).Return(nil)
					tx.EXPECT().AddCredits(gomock.Any(), 2, decEq(50)).Return(nil)
					tx.EXPECT().AddPurchase(gomock.Any(), gomock.Any()).Return(100, nil)
					pub.EXPECT().PublishPurchase(gomock.Any(), gomock.Any()).Return(nil)
				},
			},
			req:       models.PurchaseRequest{UserID: "1", ItemID: "10", Quantity: "5"},
			wantTotal: 50,
		},
		{
			name: "Publish failure does not fail a committed purchase",
			fields: fields{
				prepare: func(mr *mocks.MockRepository, tx *mocks.MockTx, pub *mocks.MockEventPublisher) {
					mr.EXPECT().InTx(gomock.Any(), gomock.Any()).DoAndReturn(runTx(tx))
					tx.EXPECT().GetUserByID(gomock.Any(), 1).Return(buyer, nil)
					tx.EXPECT().GetItemForUpdate(gomock.Any(), 10).Return(item, nil)
					tx.EXPECT().LockUsers(gomock.Any(), []int{1, 2}).
						Return(map[int]models.User{1: buyer, 2: seller}, nil)
					tx.EXPECT().SetItemQuantity(gomock.Any(), 10, 4).Return(nil)
					tx.EXPECT().AddCredits(gomock.Any(), 1, decEq(-10)).Return(nil)
					tx.EXPECT().AddCredits(gomock.Any(), 2, decEq(10)).Return(nil)
					tx.EXPECT().AddPurchase(gomock.Any(), gomock.Any()).Return(101, nil)
					pub.EXPECT().PublishPurchase(gomock.Any(), gomock.Any()).Return(errors.New("redis down"))
				},
			},
			req:       models.PurchaseRequest{UserID: "1", ItemID: "10", Quantity: "1"},
			wantTotal: 10,
		},
		{
			name: "Missing quantity",
			fields: fields{
				prepare: func(mr *mocks.MockRepository, tx *mocks.MockTx, pub *mocks.MockEventPublisher) {},
			},
			req:     models.PurchaseRequest{UserID: "1", ItemID: "10"},
			wantErr: service.ErrMissingParameter,
		},
		{
			name: "Missing parameter wins over unknown user",
			fields: fields{
				prepare: func(mr *mocks.MockRepository, tx *mocks.MockTx, pub *mocks.MockEventPublisher) {},
			},
			req:     models.PurchaseRequest{UserID: "nope", Quantity: "1"},
			wantErr: service.ErrMissingParameter,
		},
		{
			name: "Zero quantity",
			fields: fields{
				prepare: func(mr *mocks.MockRepository, tx *mocks.MockTx, pub *mocks.MockEventPublisher) {},
			},
			req:     models.PurchaseRequest{UserID: "1", ItemID: "10", Quantity: "0"},
			wantErr: service.ErrInvalidParameter,
		},
		{
			name: "Unknown buyer",
			fields: fields{
				prepare: func(mr *mocks.MockRepository, tx *mocks.MockTx, pub *mocks.MockEventPublisher) {
					mr.EXPECT().InTx(gomock.Any(), gomock.Any()).DoAndReturn(runTx(tx))
					tx.EXPECT().GetUserByID(gomock.Any(), 42).Return(models.User{}, sql.ErrNoRows)
				},
			},
			req:     models.PurchaseRequest{UserID: "42", ItemID: "10", Quantity: "1"},
			wantErr: service.ErrUserNotFound,
		},
		{
			name: "Buyer not logged in",
			fields: fields{
				prepare: func(mr *mocks.MockRepository, tx *mocks.MockTx, pub *mocks.MockEventPublisher) {
					loggedOut := buyer
					loggedOut.LoggedIn = false
					mr.EXPECT().InTx(gomock.Any(), gomock.Any()).DoAndReturn(runTx(tx))
					tx.EXPECT().GetUserByID(gomock.Any(), 1).Return(loggedOut, nil)
				},
			},
			req:     models.PurchaseRequest{UserID: "1", ItemID: "10", Quantity: "1"},
			wantErr: service.ErrNotLoggedIn,
		},
		{
			name: "Unknown item",
			fields: fields{
				prepare: func(mr *mocks.MockRepository, tx *mocks.MockTx, pub *mocks.MockEventPublisher) {
					mr.EXPECT().InTx(gomock.Any(), gomock.Any()).DoAndReturn(runTx(tx))
					tx.EXPECT().GetUserByID(gomock.Any(), 1).Return(buyer, nil)
					tx.EXPECT().GetItemForUpdate(gomock.Any(), 0).Return(models.Item{}, sql.ErrNoRows)
				},
			},
			req:     models.PurchaseRequest{UserID: "1", ItemID: "dune", Quantity: "1"},
			wantErr: service.ErrItemNotFound,
		},
		{
			name: "More than in stock",
			fields: fields{
				prepare: func(mr *mocks.MockRepository, tx *mocks.MockTx, pub *mocks.MockEventPublisher) {
					mr.EXPECT().InTx(gomock.Any(), gomock.Any()).DoAndReturn(runTx(tx))
					tx.EXPECT().GetUserByID(gomock.Any(), 1).Return(buyer, nil)
					tx.EXPECT().GetItemForUpdate(gomock.Any(), 10).Return(item, nil)
				},
			},
			req:     models.PurchaseRequest{UserID: "1", ItemID: "10", Quantity: "6"},
			wantErr: service.ErrInsufficientStock,
		},
		{
			name: "Not enough credits",
			fields: fields{
				prepare: func(mr *mocks.MockRepository, tx *mocks.MockTx, pub *mocks.MockEventPublisher) {
					poor := buyer
					poor.Credits = decimal.NewFromInt(5)
					mr.EXPECT().InTx(gomock.Any(), gomock.Any()).DoAndReturn(runTx(tx))
					tx.EXPECT().GetUserByID(gomock.Any(), 1).Return(poor, nil)
					tx.EXPECT().GetItemForUpdate(gomock.Any(), 10).Return(item, nil)
					tx.EXPECT().LockUsers(gomock.Any(), []int{1, 2}).
						Return(map[int]models.User{1: poor, 2: seller}, nil)
				},
			},
			req:     models.PurchaseRequest{UserID: "1", ItemID: "10", Quantity: "1"},
			wantErr: service.ErrInsufficientCredits,
		},
		{
			name: "Failure while crediting the seller aborts the transaction",
			fields: fields{
				prepare: func(mr *mocks.MockRepository, tx *mocks.MockTx, pub *mocks.MockEventPublisher) {
					mr.EXPECT().InTx(gomock.Any(), gomock.Any()).DoAndReturn(runTx(tx))
					tx.EXPECT().GetUserByID(gomock.Any(), 1).Return(buyer, nil)
					tx.EXPECT().GetItemForUpdate(gomock.Any(), 10).Return(item, nil)
					tx.EXPECT().LockUsers(gomock.Any(), []int{1, 2}).
						Return(map[int]models.User{1: buyer, 2: seller}, nil)
					tx.EXPECT().SetItemQuantity(gomock.Any(), 10, 4).Return(nil)
					tx.EXPECT().AddCredits(gomock.Any(), 1, decEq(-10)).Return(nil)
					tx.EXPECT().AddCredits(gomock.Any(), 2, decEq(10)).Return(dbErr)
				},
			},
			req:     models.PurchaseRequest{UserID: "1", ItemID: "10", Quantity: "1"},
			wantErr: dbErr,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockRepo := mocks.NewMockRepository(ctrl)
			mockTx := mocks.NewMockTx(ctrl)
			mockPub := mocks.NewMockEventPublisher(ctrl)
			tt.fields.prepare(mockRepo, mockTx, mockPub)

			svc := newService(mockRepo, mockPub)
			purchase, err := svc.Purchase(context.Background(), tt.req)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.NotZero(t, purchase.ID)
			require.True(t, purchase.TotalCost.Equal(decimal.NewFromInt(tt.wantTotal)))
			require.True(t, purchase.TotalCost.Equal(
				purchase.PricePerItem.Mul(decimal.NewFromInt(int64(purchase.Quantity))),
			))
		})
	}
}

func TestService_ListItem(t *testing.T) {
	seller := models.User{ID: 2, LoggedIn: true}
	valid := models.ListItemRequest{
		UserID:      "2",
		Title:       "Dune",
		Author:      "Frank Herbert",
		Description: "Worn cover",
		Price:       "10.50",
		Quantity:    "5",
		Subject:     "Fiction",
	}
	type fields struct {
		prepareRepository func(*mocks.MockRepository)
	}
	tests := []struct {
		name    string
		fields  fields
		mutate  func(*models.ListItemRequest)
		wantErr error
	}{
		{
			name: "Listed",
			fields: fields{
				prepareRepository: func(mr *mocks.MockRepository) {
					mr.EXPECT().GetUserByID(gomock.Any(), 2).Return(seller, nil)
					mr.EXPECT().CreateItem(gomock.Any(), gomock.Any()).
						DoAndReturn(func(_ context.Context, item models.Item) (int, error) {
							require.Equal(t, 2, item.SellerID)
							require.Equal(t, 5, item.Quantity)
							require.True(t, item.Price.Equal(decimal.RequireFromString("10.5")))
							return 11, nil
						})
				},
			},
			mutate: func(r *models.ListItemRequest) {},
		},
		{
			name:    "Missing subject",
			fields:  fields{prepareRepository: func(mr *mocks.MockRepository) {}},
			mutate:  func(r *models.ListItemRequest) { r.Subject = "" },
			wantErr: service.ErrMissingParameter,
		},
		{
			name:    "Negative price",
			fields:  fields{prepareRepository: func(mr *mocks.MockRepository) {}},
			mutate:  func(r *models.ListItemRequest) { r.Price = "-1" },
			wantErr: service.ErrInvalidParameter,
		},
		{
			name:    "Negative quantity",
			fields:  fields{prepareRepository: func(mr *mocks.MockRepository) {}},
			mutate:  func(r *models.ListItemRequest) { r.Quantity = "-3" },
			wantErr: service.ErrInvalidParameter,
		},
		{
			name: "Seller logged out",
			fields: fields{
				prepareRepository: func(mr *mocks.MockRepository) {
					mr.EXPECT().GetUserByID(gomock.Any(), 2).Return(models.User{ID: 2}, nil)
				},
			},
			mutate:  func(r *models.ListItemRequest) {},
			wantErr: service.ErrNotLoggedIn,
		},
		{
			name: "Unknown seller",
			fields: fields{
				prepareRepository: func(mr *mocks.MockRepository) {
					mr.EXPECT().GetUserByID(gomock.Any(), 2).Return(models.User{}, sql.ErrNoRows)
				},
			},
			mutate:  func(r *models.ListItemRequest) {},
			wantErr: service.ErrUserNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockRepo := mocks.NewMockRepository(ctrl)
			tt.fields.prepareRepository(mockRepo)

			req := valid
			tt.mutate(&req)
			svc := newService(mockRepo, nil)
			id, err := svc.ListItem(context.Background(), req)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, 11, id)
		})
	}
}

func TestService_SellHistory(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockRepository(ctrl)
	mockRepo.EXPECT().GetUserByID(gomock.Any(), 2).Return(models.User{ID: 2, LoggedIn: true}, nil).Times(2)
	mockRepo.EXPECT().GetSellHistory(gomock.Any(), 2, 0).Return([]models.SaleRecord{{Buyer: "alice"}}, nil)
	mockRepo.EXPECT().GetSellHistory(gomock.Any(), 2, 10).Return([]models.SaleRecord{}, nil)

	svc := newService(mockRepo, nil)
	all, err := svc.SellHistory(context.Background(), models.SellHistoryRequest{SellerID: "2"})
	require.NoError(t, err)
	require.Len(t, all, 1)

	filtered, err := svc.SellHistory(context.Background(), models.SellHistoryRequest{SellerID: "2", ItemID: "10"})
	require.NoError(t, err)
	require.Empty(t, filtered)

	_, err = svc.SellHistory(context.Background(), models.SellHistoryRequest{SellerID: "2", ItemID: "x"})
	require.ErrorIs(t, err, service.ErrInvalidParameter)
}

func TestService_SellHistory_UnknownSeller(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockRepository(ctrl)
	mockRepo.EXPECT().GetUserByID(gomock.Any(), 404).Return(models.User{}, sql.ErrNoRows)

	svc := newService(mockRepo, nil)
	_, err := svc.SellHistory(context.Background(), models.SellHistoryRequest{SellerID: "404"})
	require.ErrorIs(t, err, service.ErrSellerNotFound)
	require.Equal(t, "Seller does not exist", err.Error())
	require.True(t, service.IsClientError(err))
}

func TestService_BuyHistory(t *testing.T) {
	type fields struct {
		prepareRepository func(*mocks.MockRepository)
	}
	tests := []struct {
		name    string
		fields  fields
		userID  string
		wantLen int
		wantErr error
	}{
		{
			name: "Logged in buyer",
			fields: fields{
				prepareRepository: func(mr *mocks.MockRepository) {
					mr.EXPECT().GetUserByID(gomock.Any(), 1).Return(models.User{ID: 1, LoggedIn: true}, nil)
					mr.EXPECT().GetBuyHistory(gomock.Any(), 1).Return([]models.BuyRecord{
						{Title: "Dune", Seller: "bob"},
						{Title: "Emma", Seller: "carol"},
					}, nil)
				},
			},
			userID:  "1",
			wantLen: 2,
		},
		{
			name:    "Missing user id",
			fields:  fields{prepareRepository: func(mr *mocks.MockRepository) {}},
			userID:  "",
			wantErr: service.ErrMissingParameter,
		},
		{
			name: "Unknown user",
			fields: fields{
				prepareRepository: func(mr *mocks.MockRepository) {
					mr.EXPECT().GetUserByID(gomock.Any(), 9).Return(models.User{}, sql.ErrNoRows)
				},
			},
			userID:  "9",
			wantErr: service.ErrUserNotFound,
		},
		{
			name: "Logged out user",
			fields: fields{
				prepareRepository: func(mr *mocks.MockRepository) {
					mr.EXPECT().GetUserByID(gomock.Any(), 1).Return(models.User{ID: 1}, nil)
				},
			},
			userID:  "1",
			wantErr: service.ErrNotLoggedIn,
		},
		{
			name: "History query fails",
			fields: fields{
				prepareRepository: func(mr *mocks.MockRepository) {
					mr.EXPECT().GetUserByID(gomock.Any(), 1).Return(models.User{ID: 1, LoggedIn: true}, nil)
					mr.EXPECT().GetBuyHistory(gomock.Any(), 1).Return(nil, errors.New("timeout"))
				},
			},
			userID: "1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockRepo := mocks.NewMockRepository(ctrl)
			tt.fields.prepareRepository(mockRepo)

			svc := newService(mockRepo, nil)
			records, err := svc.BuyHistory(context.Background(), tt.userID)
			switch {
			case tt.wantErr != nil:
				require.ErrorIs(t, err, tt.wantErr)
			case tt.wantLen == 0:
				require.Error(t, err)
				require.False(t, service.IsClientError(err))
			default:
				require.NoError(t, err)
				require.Len(t, records, tt.wantLen)
			}
		})
	}
}

func TestService_ItemInfo(t *testing.T) {
	type fields struct {
		prepareRepository func(*mocks.MockRepository)
	}
	tests := []struct {
		name      string
		fields    fields
		itemID    string
		wantTitle string
		wantErr   error
	}{
		{
			name: "Existing item",
			fields: fields{
				prepareRepository: func(mr *mocks.MockRepository) {
					mr.EXPECT().GetItemListing(gomock.Any(), 3).Return(models.ItemListing{
						Item:     models.Item{ID: 3, Title: "Dune", SellerID: 2},
						Username: "bob",
					}, nil)
				},
			},
			itemID:    "3",
			wantTitle: "Dune",
		},
		{
			name:    "Missing item id",
			fields:  fields{prepareRepository: func(mr *mocks.MockRepository) {}},
			itemID:  "",
			wantErr: service.ErrMissingParameter,
		},
		{
			name: "Unknown item",
			fields: fields{
				prepareRepository: func(mr *mocks.MockRepository) {
					mr.EXPECT().GetItemListing(gomock.Any(), 77).Return(models.ItemListing{}, sql.ErrNoRows)
				},
			},
			itemID:  "77",
			wantErr: service.ErrItemNotFound,
		},
		{
			name: "Non-numeric id",
			fields: fields{
				prepareRepository: func(mr *mocks.MockRepository) {
					mr.EXPECT().GetItemListing(gomock.Any(), 0).Return(models.ItemListing{}, sql.ErrNoRows)
				},
			},
			itemID:  "abc",
			wantErr: service.ErrItemNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockRepo := mocks.NewMockRepository(ctrl)
			tt.fields.prepareRepository(mockRepo)

			svc := newService(mockRepo, nil)
			listing, err := svc.ItemInfo(context.Background(), tt.itemID)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.wantTitle, listing.Title)
			require.Equal(t, "bob", listing.Username)
		})
	}
}

func TestService_ServerErrorsAreNotClientErrors(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockRepository(ctrl)
	mockRepo.EXPECT().GetUserByID(gomock.Any(), 1).Return(models.User{}, errors.New("dial tcp: refused"))

	svc := newService(mockRepo, nil)
	_, err := svc.BuyHistory(context.Background(), "1")
	require.Error(t, err)
	require.False(t, service.IsClientError(err))
	require.True(t, service.IsClientError(service.ErrInsufficientStock))
}
