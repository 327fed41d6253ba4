package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/merze/merzebackend/dto"
	"github.com/merze/merzebackend/models"
	"github.com/merze/merzebackend/store/storetest"
)

func newUsersService(mem *storetest.Memory) *Users {
	return NewUsers(mem.Users, mem.Addresses, mem.Orders, NewExpander(mem.Stores()))
}

func createUser(t *testing.T, svc *Users) *models.User {
	t.Helper()
	u, err := svc.Create(context.Background(), dto.CreateUserDTO{
		Name:    "Asha",
		Surname: "Rao",
		Gender:  "female",
		Email:   "asha@example.com",
		Phone:   "9999999999",
	})
	require.NoError(t, err)
	return u
}

func homeAddress() dto.CreateAddressDTO {
	return dto.CreateAddressDTO{
		Area:        "MG Road",
		City:        "Bengaluru",
		State:       "Karnataka",
		Pincode:     560001,
		AddressType: "Home",
	}
}

func TestUsers_AddAddress_LinksToUser(t *testing.T) {
	mem := storetest.New()
	svc := newUsersService(mem)
	ctx := context.Background()
	user := createUser(t, svc)

	addr, err := svc.AddAddress(ctx, user.ID, homeAddress())
	require.NoError(t, err)
	assert.Equal(t, user.ID, addr.User)

	stored, err := mem.Users.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, []bson.ObjectID{addr.ID}, stored.Addresses)
}

func TestUsers_AddAddress_RejectsBadType(t *testing.T) {
	mem := storetest.New()
	svc := newUsersService(mem)
	user := createUser(t, svc)

	bad := homeAddress()
	bad.AddressType = "Vacation"

	_, err := svc.AddAddress(context.Background(), user.ID, bad)
	assert.ErrorIs(t, err, ErrInvalidRequest)
	assert.Empty(t, mem.AddressDocs)
}

func TestUsers_RemoveAddress_FiltersListOrderPreserving(t *testing.T) {
	mem := storetest.New()
	svc := newUsersService(mem)
	ctx := context.Background()
	user := createUser(t, svc)

	first, err := svc.AddAddress(ctx, user.ID, homeAddress())
	require.NoError(t, err)
	second := homeAddress()
	second.AddressType = "Work"
	middle, err := svc.AddAddress(ctx, user.ID, second)
	require.NoError(t, err)
	third := homeAddress()
	third.AddressType = "Other"
	last, err := svc.AddAddress(ctx, user.ID, third)
	require.NoError(t, err)

	require.NoError(t, svc.RemoveAddress(ctx, user.ID, middle.ID))

	stored, err := mem.Users.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, []bson.ObjectID{first.ID, last.ID}, stored.Addresses)
	assert.Len(t, mem.AddressDocs, 2)
}

func TestUsers_RemoveAddress_NotFound(t *testing.T) {
	mem := storetest.New()
	svc := newUsersService(mem)
	user := createUser(t, svc)

	err := svc.RemoveAddress(context.Background(), user.ID, bson.NewObjectID())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUsers_PlaceOrder_EmptyItemsWritesNothing(t *testing.T) {
	mem := storetest.New()
	svc := newUsersService(mem)
	user := createUser(t, svc)

	_, err := svc.PlaceOrder(context.Background(), dto.CreateOrderDTO{
		User:    user.ID.Hex(),
		Item:    []dto.OrderItemDTO{},
		Address: bson.NewObjectID().Hex(),
		Payment: dto.PaymentDTO{Method: "card"},
	})
	assert.ErrorIs(t, err, ErrInvalidRequest)
	assert.Empty(t, mem.OrderDocs)
}

func TestUsers_PlaceOrder_DefaultsPaymentStatus(t *testing.T) {
	mem := storetest.New()
	svc := newUsersService(mem)
	ctx := context.Background()
	user := createUser(t, svc)
	addr, err := svc.AddAddress(ctx, user.ID, homeAddress())
	require.NoError(t, err)

	order, err := svc.PlaceOrder(ctx, dto.CreateOrderDTO{
		User: user.ID.Hex(),
		Item: []dto.OrderItemDTO{
			{ProductID: bson.NewObjectID().Hex(), Title: "Shirt", Price: 20, Quantity: 2},
		},
		Address: addr.ID.Hex(),
		Payment: dto.PaymentDTO{Method: "card"},
	})
	require.NoError(t, err)
	assert.Equal(t, models.PaymentPending, order.Payment.Status)

	stored, err := mem.Users.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, []bson.ObjectID{order.ID}, stored.Orders)
}

func TestUsers_Delete_CascadesAddressesAndOrders(t *testing.T) {
	mem := storetest.New()
	svc := newUsersService(mem)
	ctx := context.Background()

	victim := createUser(t, svc)
	other, err := svc.Create(ctx, dto.CreateUserDTO{
		Name: "Ravi", Surname: "K", Gender: "male",
		Email: "ravi@example.com", Phone: "8888888888",
	})
	require.NoError(t, err)

	addr, err := svc.AddAddress(ctx, victim.ID, homeAddress())
	require.NoError(t, err)
	keep, err := svc.AddAddress(ctx, other.ID, homeAddress())
	require.NoError(t, err)

	_, err = svc.PlaceOrder(ctx, dto.CreateOrderDTO{
		User: victim.ID.Hex(),
		Item: []dto.OrderItemDTO{
			{Title: "Shirt", Price: 20, Quantity: 1},
		},
		Address: addr.ID.Hex(),
		Payment: dto.PaymentDTO{Method: "cod"},
	})
	require.NoError(t, err)

	removed, err := svc.Delete(ctx, victim.ID)
	require.NoError(t, err)
	assert.Equal(t, victim.ID, removed.ID)

	remaining, err := mem.Addresses.FindByUser(ctx, victim.ID)
	require.NoError(t, err)
	assert.Empty(t, remaining)
	orders, err := mem.Orders.FindByUser(ctx, victim.ID)
	require.NoError(t, err)
	assert.Empty(t, orders)

	// the other user's data is untouched
	kept, err := mem.Addresses.FindByUser(ctx, other.ID)
	require.NoError(t, err)
	require.Len(t, kept, 1)
	assert.Equal(t, keep.ID, kept[0].ID)

	_, err = svc.Delete(ctx, victim.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUsers_Get_FiltersDanglingReferences(t *testing.T) {
	mem := storetest.New()
	svc := newUsersService(mem)
	ctx := context.Background()
	user := createUser(t, svc)

	addr, err := svc.AddAddress(ctx, user.ID, homeAddress())
	require.NoError(t, err)
	gone, err := svc.AddAddress(ctx, user.ID, homeAddress())
	require.NoError(t, err)

	// delete the address document directly, leaving the user's
	// reference list stale
	require.NoError(t, mem.Addresses.Delete(ctx, gone.ID))

	expanded, err := svc.Get(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, expanded.Addresses, 1)
	assert.Equal(t, addr.ID, expanded.Addresses[0].ID)
}

func TestUsers_Get_ExpandsOrders(t *testing.T) {
	mem := storetest.New()
	svc := newUsersService(mem)
	ctx := context.Background()
	user := createUser(t, svc)
	addr, err := svc.AddAddress(ctx, user.ID, homeAddress())
	require.NoError(t, err)

	productID := bson.NewObjectID()
	mem.ProductDocs = append(mem.ProductDocs, models.Product{
		ID: productID, Title: "Shirt", Price: 20,
		Section: bson.NewObjectID(), Types: bson.NewObjectID(),
	})

	_, err = svc.PlaceOrder(ctx, dto.CreateOrderDTO{
		User: user.ID.Hex(),
		Item: []dto.OrderItemDTO{
			{ProductID: productID.Hex(), Title: "Shirt", Price: 20, Quantity: 1},
			{ProductID: bson.NewObjectID().Hex(), Title: "Ghost", Price: 5, Quantity: 1},
		},
		Address: addr.ID.Hex(),
		Payment: dto.PaymentDTO{Method: "card"},
	})
	require.NoError(t, err)

	expanded, err := svc.Get(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, expanded.Orders, 1)

	order := expanded.Orders[0]
	require.NotNil(t, order.Address)
	assert.Equal(t, addr.ID, order.Address.ID)
	require.Len(t, order.Item, 2)
	require.NotNil(t, order.Item[0].Product)
	assert.Equal(t, "Shirt", order.Item[0].Product.Title)
	// the line item survives even when its product no longer resolves
	assert.Nil(t, order.Item[1].Product)
	assert.Equal(t, "Ghost", order.Item[1].Title)
}
