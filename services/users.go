package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/merze/merzebackend/dto"
	"github.com/merze/merzebackend/models"
	"github.com/merze/merzebackend/store"
)

// Users owns the user/address/order linking logic. The multi-document
// sequences here are deliberately non-transactional: each step is a
// separate store call and a failure partway leaves earlier writes in
// place.
type Users struct {
	users     store.UserStore
	addresses store.AddressStore
	orders    store.OrderStore
	expander  *Expander
}

func NewUsers(users store.UserStore, addresses store.AddressStore, orders store.OrderStore, expander *Expander) *Users {
	return &Users{users: users, addresses: addresses, orders: orders, expander: expander}
}

func (s *Users) Create(ctx context.Context, body dto.CreateUserDTO) (*models.User, error) {
	now := time.Now().UTC()
	user := models.User{
		Name:      body.Name,
		Surname:   body.Surname,
		Gender:    body.Gender,
		Email:     body.Email,
		Phone:     body.Phone,
		Addresses: []bson.ObjectID{},
		Orders:    []bson.ObjectID{},
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := s.users.Insert(ctx, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *Users) Get(ctx context.Context, id bson.ObjectID) (*models.ExpandedUser, error) {
	u, err := s.users.FindByID(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("%w: user %s", ErrNotFound, id.Hex())
	}
	if err != nil {
		return nil, err
	}
	eu, err := s.expander.User(ctx, *u)
	if err != nil {
		return nil, err
	}
	return &eu, nil
}

func (s *Users) List(ctx context.Context) ([]models.ExpandedUser, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]models.ExpandedUser, 0, len(users))
	for _, u := range users {
		eu, err := s.expander.User(ctx, u)
		if err != nil {
			return nil, err
		}
		out = append(out, eu)
	}
	return out, nil
}

// Delete cascades: first every address owned by the user, then every
// order, then the user document itself. Three sequential bulk calls,
// no atomicity — a failure partway leaves a mixed state.
func (s *Users) Delete(ctx context.Context, id bson.ObjectID) (*models.User, error) {
	if _, err := s.addresses.DeleteByUser(ctx, id); err != nil {
		return nil, err
	}
	if _, err := s.orders.DeleteByUser(ctx, id); err != nil {
		return nil, err
	}
	removed, err := s.users.Delete(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("%w: user %s", ErrNotFound, id.Hex())
	}
	return removed, err
}

// AddAddress creates the address with the owning user attached, then
// appends its id to the user's reference list. If the second write
// fails the address stays behind as an orphan.
func (s *Users) AddAddress(ctx context.Context, userID bson.ObjectID, body dto.CreateAddressDTO) (*models.Address, error) {
	if !models.AddressType(body.AddressType).Valid() {
		return nil, fmt.Errorf("%w: addressType must be Home, Work or Other", ErrInvalidRequest)
	}

	now := time.Now().UTC()
	addr := models.Address{
		User:           userID,
		Area:           body.Area,
		City:           body.City,
		State:          body.State,
		Pincode:        body.Pincode,
		Landmark:       body.Landmark,
		AlternatePhone: body.AlternatePhone,
		AddressType:    models.AddressType(body.AddressType),
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if _, err := s.addresses.Insert(ctx, &addr); err != nil {
		return nil, err
	}
	if err := s.users.PushAddress(ctx, userID, addr.ID); err != nil {
		return nil, err
	}
	return &addr, nil
}

func (s *Users) ListAddresses(ctx context.Context, userID bson.ObjectID) ([]models.Address, error) {
	return s.addresses.FindByUser(ctx, userID)
}

// RemoveAddress deletes the address document, then filters the id out
// of the owning user's reference list in memory and saves the list
// back, preserving the order of the remaining entries.
func (s *Users) RemoveAddress(ctx context.Context, userID, addressID bson.ObjectID) error {
	err := s.addresses.Delete(ctx, addressID)
	if errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("%w: address %s", ErrNotFound, addressID.Hex())
	}
	if err != nil {
		return err
	}

	u, err := s.users.FindByID(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		// address already gone; nothing left to unlink
		log.Printf("remove address: owning user %s not found", userID.Hex())
		return nil
	}
	if err != nil {
		return err
	}

	kept := make([]bson.ObjectID, 0, len(u.Addresses))
	for _, id := range u.Addresses {
		if id != addressID {
			kept = append(kept, id)
		}
	}
	return s.users.SetAddresses(ctx, userID, kept)
}

// PlaceOrder validates the payload, writes the order, then appends its
// id to the user's order list. Two sequential writes, no compensation.
func (s *Users) PlaceOrder(ctx context.Context, body dto.CreateOrderDTO) (*models.Order, error) {
	if len(body.Item) == 0 {
		return nil, fmt.Errorf("%w: order needs at least one item", ErrInvalidRequest)
	}
	if body.Payment.Method == "" {
		return nil, fmt.Errorf("%w: payment method is required", ErrInvalidRequest)
	}
	userID, err := bson.ObjectIDFromHex(body.User)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid user id %q", ErrInvalidRequest, body.User)
	}
	addressID, err := bson.ObjectIDFromHex(body.Address)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid address id %q", ErrInvalidRequest, body.Address)
	}

	items := make([]models.OrderItem, 0, len(body.Item))
	for _, it := range body.Item {
		item := models.OrderItem{
			Title:    it.Title,
			Price:    it.Price,
			Quantity: it.Quantity,
		}
		if it.ProductID != "" {
			pid, err := bson.ObjectIDFromHex(it.ProductID)
			if err != nil {
				return nil, fmt.Errorf("%w: invalid product id %q", ErrInvalidRequest, it.ProductID)
			}
			item.ProductID = pid
		}
		items = append(items, item)
	}

	status := models.PaymentStatus(body.Payment.Status)
	if status == "" {
		status = models.PaymentPending
	}
	if !status.Valid() {
		return nil, fmt.Errorf("%w: invalid payment status %q", ErrInvalidRequest, body.Payment.Status)
	}

	now := time.Now().UTC()
	order := models.Order{
		User:      userID,
		Item:      items,
		Address:   addressID,
		Payment:   models.Payment{Method: body.Payment.Method, Status: status},
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := s.orders.Insert(ctx, &order); err != nil {
		return nil, err
	}
	if err := s.users.PushOrder(ctx, userID, order.ID); err != nil {
		return nil, err
	}
	return &order, nil
}
