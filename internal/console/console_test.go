package console

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/s2k/videogame-store/internal/core/domain"
	"github.com/s2k/videogame-store/internal/core/ports"
	"github.com/s2k/videogame-store/internal/core/service"
)

type memoryStore struct {
	records []ports.AccountRecord
	saved   []string
	saves   int
	loadErr error
}

func (m *memoryStore) Load(context.Context) ([]ports.AccountRecord, error) {
	return m.records, m.loadErr
}

func (m *memoryStore) Save(_ context.Context, accounts []*domain.Account) error {
	m.saves++
	m.saved = m.saved[:0]
	for _, a := range accounts {
		m.saved = append(m.saved, a.Username)
	}
	return nil
}

type harness struct {
	console *Console
	out     *bytes.Buffer
	store   *memoryStore
	catalog *service.CatalogService
}

func newHarness(t *testing.T, script ...string) *harness {
	t.Helper()
	log := zerolog.Nop()

	catalog := service.NewCatalogService(service.NewSequence(1), nil, log)
	require.NoError(t, catalog.Seed(context.Background(), service.DemoGames()...))
	carts := service.NewCartService(log)

	h := &harness{out: &bytes.Buffer{}, store: &memoryStore{}, catalog: catalog}
	in := strings.NewReader(strings.Join(script, "\n") + "\n")
	h.console = New(in, h.out, Services{
		Users:    service.NewUserService(service.NewSequence(1), nil, log),
		Catalog:  catalog,
		Carts:    carts,
		Checkout: service.NewCheckoutService(catalog, carts, nil, log),
		Store:    h.store,
	}, log)
	return h
}

func (h *harness) run(t *testing.T) string {
	t.Helper()
	require.NoError(t, h.console.Run(context.Background()))
	return h.out.String()
}

func TestConsole_RegisterBuyAndCheckout(t *testing.T) {
	h := newHarness(t,
		"2", "alice", "pw1234",
		"3", "alice", "pw1234",
		"1", "", "", "1", "1", "1", "0",
		"5", "1", "3", "", "Alice Doe", "abcd", "4111111111111111", "0",
		"0",
	)

	out := h.run(t)

	assert.Contains(t, out, "[OK] Successfully registered as: alice")
	assert.Contains(t, out, "Welcome, alice!")
	assert.Contains(t, out, "Current user: alice (CUSTOMER)")
	assert.Equal(t, 2, strings.Count(out, "[OK] Added to cart."))
	assert.Contains(t, out, "Total: 99.98")
	assert.Contains(t, out, "[X] Name cannot be empty.")
	assert.Contains(t, out, "[X] Card number must contain digits only.")
	assert.Contains(t, out, "=== Checkout for alice ===")
	assert.Equal(t, 2, strings.Count(out, "- Star Quest ($49.99)"))
	assert.Contains(t, out, "card ending 1111")
	assert.Contains(t, out, "[OK] Payment successful. Thank you!")
	assert.True(t, strings.HasSuffix(out, "Goodbye!\n"))

	star, err := h.catalog.FindByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 10, star.Stock)

	alice := h.console.Session().Account()
	require.NotNil(t, alice)
	assert.True(t, alice.Cart().IsEmpty())

	assert.Equal(t, 2, h.store.saves, "saved after registration and on exit")
	assert.Equal(t, []string{"owner", "customer", "alice"}, h.store.saved)
}

func TestConsole_EndOfInputExitsCleanly(t *testing.T) {
	h := newHarness(t, "1")

	out := h.run(t)

	assert.Contains(t, out, "--- AVAILABLE GAMES ---")
	assert.Contains(t, out, "'Star Quest' (ID: 1). Price: 49.99 || In Stock: 10")
	assert.Contains(t, out, "Goodbye!")
	assert.Equal(t, 1, h.store.saves)
}

func TestConsole_InvalidInputIsReprompted(t *testing.T) {
	h := newHarness(t, "abc", "9", "4", "0")

	out := h.run(t)

	assert.Contains(t, out, "[X] Invalid number. Try again.")
	assert.Equal(t, 2, strings.Count(out, "[X] Invalid option. Try again."), "9 and 4 are not offered to guests")
}

func TestConsole_GuestCannotUseCart(t *testing.T) {
	h := newHarness(t, "5", "0")

	out := h.run(t)

	assert.Contains(t, out, "[X] You must be logged in as a CUSTOMER to access a cart.")
}

func TestConsole_OwnerCannotAddToCart(t *testing.T) {
	h := newHarness(t,
		"3", service.DemoOwnerUsername, service.DemoOwnerPassword,
		"1", "", "", "2", "1", "0",
		"0",
	)

	out := h.run(t)

	assert.Contains(t, out, "[X] Only customers can use a cart.")
}

func TestConsole_BrowseSearchAndFilter(t *testing.T) {
	h := newHarness(t, "1", "STAR QUEST", "simulation", "x", "42", "", "1", "", "horror", "", "0")

	out := h.run(t)

	assert.Contains(t, out, "--- SEARCH RESULTS ---")
	assert.Contains(t, out, "--- SIMULATION GAMES ---")
	assert.Contains(t, out, "'Farm Days' (ID: 2)")
	assert.Contains(t, out, "[X] Invalid ID. Try again: ")
	assert.Contains(t, out, "[X] Game not found. Try again: ")
	assert.Contains(t, out, "[X] Genre does not exist in our list.")
}

func TestConsole_AdminFlow(t *testing.T) {
	h := newHarness(t,
		"3", service.DemoOwnerUsername, service.DemoOwnerPassword,
		"6",
		"1", "Dungeon Deep", "horror", "rpg", "Crawl", "cheap", "15", "4",
		"3", "99", "1",
		"3", "2", "24.50",
		"4", "3", "-1",
		"5",
		"6", "owner",
		"6", "ghost",
		"2", "1",
		"0",
		"0",
	)

	out := h.run(t)

	assert.Contains(t, out, "[X] Genre does not exist in our list. Please enter another genre.")
	assert.Contains(t, out, "[X] Invalid decimal number. Try again.")
	assert.Contains(t, out, "[OK] Added game: Dungeon Deep (ID: 4)")
	assert.Contains(t, out, "[X] Game not found.")
	assert.Contains(t, out, "[OK] Price updated.")
	assert.Contains(t, out, "[X] Stock must be at least 0.")
	assert.Contains(t, out, "User: customer, ID: 2 || Type: CUSTOMER")
	assert.Contains(t, out, "[X] You do not have permission to do that.")
	assert.Contains(t, out, "[X] Account not found.")
	assert.Contains(t, out, "[OK] Removed game: Star Quest")

	farm, err := h.catalog.FindByID(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, domain.Money(2450), farm.Price)
	_, err = h.catalog.FindByID(context.Background(), 1)
	assert.ErrorIs(t, err, domain.ErrGameNotFound)
}

func TestConsole_OwnerRemovesCustomer(t *testing.T) {
	h := newHarness(t,
		"3", service.DemoOwnerUsername, service.DemoOwnerPassword,
		"6", "6", "customer", "0",
		"0",
	)

	out := h.run(t)

	assert.Contains(t, out, "[OK] Removed account: customer")
	assert.Equal(t, []string{"owner"}, h.store.saved)
}

func TestConsole_CheckoutOutOfStock(t *testing.T) {
	h := newHarness(t,
		"3", service.DemoOwnerUsername, service.DemoOwnerPassword,
		"6", "4", "1", "1", "0",
		"4",
		"3", service.DemoCustomerUsername, service.DemoCustomerPassword,
		"1", "", "", "1", "1", "1", "0",
		"5", "3", "Casey", "4111111111111111", "1", "0",
		"0",
	)

	out := h.run(t)

	assert.Contains(t, out, "Logged out: owner")
	assert.Contains(t, out, "[X] Checkout failed: game is out of stock!")
	assert.Contains(t, out, "Total: 99.98", "cart is kept after a refused checkout")
	assert.NotContains(t, out, "Payment successful")
}

func TestConsole_ChangePassword(t *testing.T) {
	h := newHarness(t,
		"3", service.DemoCustomerUsername, service.DemoCustomerPassword,
		"7", "wrong", "next",
		"7", service.DemoCustomerPassword, "next",
		"4",
		"3", service.DemoCustomerUsername, "next",
		"0",
	)

	out := h.run(t)

	assert.Contains(t, out, "[X] Current password is incorrect.")
	assert.Contains(t, out, "[OK] Password changed.")
	assert.Equal(t, 2, strings.Count(out, "Welcome, customer!"))
}

func TestConsole_LoginFailure(t *testing.T) {
	h := newHarness(t, "3", "nobody", "pw", "0")

	out := h.run(t)

	assert.Contains(t, out, "[X] Incorrect username or password.")
	assert.Contains(t, out, "Current user: guest")
}

func TestConsole_RestoreFailureIsReported(t *testing.T) {
	h := newHarness(t, "0")
	h.store.loadErr = errors.New("permission denied")

	out := h.run(t)

	assert.Contains(t, out, "[X] Unable to load users: restore accounts: permission denied")
	assert.Contains(t, out, "Goodbye!")
}

func TestConsole_RestoresUsersAtStart(t *testing.T) {
	h := newHarness(t, "3", "alice", "pw1234", "0")
	h.store.records = []ports.AccountRecord{{Line: 1, Username: "alice", Password: "pw1234", Role: "CUSTOMER"}}

	out := h.run(t)

	assert.Contains(t, out, "Welcome, alice!")
}

func TestDescribe(t *testing.T) {
	log := zerolog.Nop()

	assert.Equal(t, "[X] Title cannot be empty.", describe(fmt.Errorf("add game: %w: title cannot be empty", domain.ErrInvalidInput), log))
	assert.Equal(t, "[X] Cart is empty.", describe(domain.ErrCartEmpty, log))
	assert.Equal(t, "[X] Error: boom", describe(errors.New("boom"), log))
}

func TestConsole_RegisterRejectsSeparator(t *testing.T) {
	h := newHarness(t, "2", "eve;x", "secret", "eve", "secret", "0")

	out := h.run(t)

	assert.Contains(t, out, `[X] Username must not contain ";".`)
	assert.Contains(t, out, "[OK] Successfully registered as: eve")
	assert.Equal(t, []string{"owner", "customer", "eve"}, h.store.saved)
}
