// Package console is the interactive terminal front end of the store. It owns
// the session and routes menu choices to the core services.
package console

import (
	"bufio"
	"context"
	"errors"
	"io"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/rs/zerolog"

	"github.com/s2k/videogame-store/internal/core/domain"
	"github.com/s2k/videogame-store/internal/core/ports"
	"github.com/s2k/videogame-store/internal/pkg/validate"
)

// Services bundles what the console drives. Store may be nil to disable
// user persistence.
type Services struct {
	Users    ports.UserService
	Catalog  ports.CatalogService
	Carts    ports.CartService
	Checkout ports.CheckoutService
	Store    ports.AccountStore
}

type Console struct {
	in        *bufio.Scanner
	out       io.Writer
	svc       Services
	validator *validate.Validator
	session   domain.Session
	log       zerolog.Logger
}

func New(in io.Reader, out io.Writer, svc Services, log zerolog.Logger) *Console {
	return &Console{
		in:        bufio.NewScanner(in),
		out:       out,
		svc:       svc,
		validator: validate.New(),
		log:       log,
	}
}

// Session exposes the current login state.
func (c *Console) Session() *domain.Session { return &c.session }

// Run restores users, serves the main menu until the user exits or input
// ends, then saves users. Only input failures are returned.
func (c *Console) Run(ctx context.Context) error {
	c.restoreUsers(ctx)
	c.println("=== Welcome to S2K's Videogame Store ===")

	err := c.mainLoop(ctx)
	if errors.Is(err, io.EOF) {
		err = nil
	}

	c.saveUsers(ctx)
	c.println("Goodbye!")
	return err
}

func (c *Console) mainLoop(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		c.showMainMenu()
		choice, err := c.readInt("Choose an option: ")
		if err != nil {
			return err
		}

		user := c.session.Account()
		switch {
		case choice == 0:
			return nil
		case choice == 1:
			err = c.browse(ctx)
		case choice == 2 && user == nil:
			err = c.register(ctx)
		case choice == 3 && user == nil:
			err = c.login(ctx)
		case choice == 4 && user != nil:
			c.logout(ctx)
		case choice == 5:
			err = c.cartMenu(ctx)
		case choice == 6 && user != nil && user.IsOwner():
			err = c.adminMenu(ctx)
		case choice == 7 && user != nil:
			err = c.changePassword(ctx)
		default:
			c.fail("Invalid option. Try again.")
		}
		if err != nil {
			return err
		}
	}
}

func (c *Console) showMainMenu() {
	user := c.session.Account()
	c.println("\n--- MAIN MENU ---")
	c.println("1) Browse games")
	if user == nil {
		c.println("2) Register (become a customer)")
		c.println("3) Login")
	} else {
		c.println("4) Logout")
	}
	c.println("5) Cart & Checkout")
	if user != nil && user.IsOwner() {
		c.println("6) Admin options")
	}
	if user != nil {
		c.println("7) Change password")
	}
	c.println("0) Exit")
	if user == nil {
		c.println("Current user: guest")
	} else {
		c.printf("Current user: %s (%s)\n", user.Username, user.Role)
	}
}

// ── Accounts ──────────────────────────────────────────────────────────────────

func (c *Console) register(ctx context.Context) error {
	c.println("\n--- REGISTER NEW CUSTOMER ---")
	for {
		username, err := c.readString("Username: ")
		if err != nil {
			return err
		}
		password, err := c.readString("Password: ")
		if err != nil {
			return err
		}
		account, err := c.svc.Users.Register(ctx, username, password)
		if err != nil {
			c.println(describe(err, c.log))
			continue
		}
		c.saveUsers(ctx)
		c.ok("Successfully registered as: %s", account.Username)
		return nil
	}
}

func (c *Console) login(ctx context.Context) error {
	c.println("\n--- LOGIN ---")
	username, err := c.readString("Username: ")
	if err != nil {
		return err
	}
	password, err := c.readString("Password: ")
	if err != nil {
		return err
	}
	account, err := c.svc.Users.Login(ctx, &c.session, username, password)
	switch {
	case errors.Is(err, domain.ErrAccountNotFound), errors.Is(err, domain.ErrInvalidCredentials):
		c.fail("Incorrect username or password.")
	case err != nil:
		c.println(describe(err, c.log))
	default:
		c.printf("Welcome, %s!\n", account.Username)
	}
	return nil
}

func (c *Console) logout(ctx context.Context) {
	account := c.session.Account()
	if err := c.svc.Users.Logout(ctx, &c.session, account); err != nil {
		c.println(describe(err, c.log))
		return
	}
	c.printf("Logged out: %s\n", account.Username)
}

func (c *Console) changePassword(ctx context.Context) error {
	c.println("\n--- CHANGE PASSWORD ---")
	current, err := c.readString("Current password: ")
	if err != nil {
		return err
	}
	next, err := c.readString("New password: ")
	if err != nil {
		return err
	}
	err = c.svc.Users.ChangePassword(ctx, &c.session, current, next)
	if errors.Is(err, domain.ErrInvalidCredentials) {
		c.fail("Current password is incorrect.")
		return nil
	}
	if err != nil {
		c.println(describe(err, c.log))
		return nil
	}
	c.saveUsers(ctx)
	c.ok("Password changed.")
	return nil
}

// ── Catalog ───────────────────────────────────────────────────────────────────

func (c *Console) browse(ctx context.Context) error {
	c.println("\n--- AVAILABLE GAMES ---")
	c.printGames(c.svc.Catalog.ListAll(ctx))

	q, err := c.readString("\nSearch by title (leave empty to skip): ")
	if err != nil {
		return err
	}
	if q != "" {
		c.println("--- SEARCH RESULTS ---")
		c.printGames(c.svc.Catalog.FindByTitle(ctx, q))
	}

	g, err := c.readString("Filter by genre (leave empty to skip): ")
	if err != nil {
		return err
	}
	if g != "" {
		genre, err := domain.ParseGenre(g)
		if err != nil {
			c.fail("Genre does not exist in our list.")
		} else {
			c.printf("--- %s GAMES ---\n", genre)
			c.printGames(c.svc.Catalog.FindByGenre(ctx, genre))
		}
	}

	return c.gameDetail(ctx)
}

func (c *Console) printGames(games []*domain.Videogame) {
	if len(games) == 0 {
		c.println("(no games)")
		return
	}
	for _, g := range games {
		c.println(g)
	}
}

func (c *Console) gameDetail(ctx context.Context) error {
	prompt := "\nTo view a specific game, provide the ID (leave empty to skip): "
	var game *domain.Videogame
	for game == nil {
		s, err := c.readString(prompt)
		if err != nil {
			return err
		}
		if s == "" {
			return nil
		}
		id, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			prompt = "[X] Invalid ID. Try again: "
			continue
		}
		game, err = c.svc.Catalog.FindByID(ctx, id)
		if err != nil {
			prompt = "[X] Game not found. Try again: "
		}
	}

	c.println("=== Game Details ===")
	c.println(game)
	c.printf("Genre: %s\nDescription: %s\n", game.Genre, game.Description)
	c.println("===================")

	for {
		c.println("\n--- GAME OPTIONS ---")
		c.println("1) Add to cart")
		c.println("0) Back")
		choice, err := c.readString("Choose: ")
		if err != nil {
			return err
		}
		switch choice {
		case "1":
			if err := c.svc.Carts.Add(ctx, c.session.Account(), game); err != nil {
				if errors.Is(err, domain.ErrPermissionDenied) {
					c.fail("Only customers can use a cart.")
				} else {
					c.println(describe(err, c.log))
				}
				continue
			}
			c.ok("Added to cart.")
		case "0":
			return nil
		default:
			c.fail("Invalid choice.")
		}
	}
}

// ── Cart ──────────────────────────────────────────────────────────────────────

func (c *Console) cartMenu(ctx context.Context) error {
	customer := c.session.Account()
	if customer == nil || !customer.IsCustomer() {
		c.fail("You must be logged in as a CUSTOMER to access a cart.")
		return nil
	}

	for {
		c.println("\n--- CART MENU ---")
		c.println("1) View cart")
		c.println("2) Remove item")
		c.println("3) Checkout")
		c.println("0) Back")

		choice, err := c.readInt("Choose: ")
		if err != nil {
			return err
		}
		switch choice {
		case 1:
			c.viewCart(ctx, customer)
		case 2:
			err = c.removeFromCart(ctx, customer)
		case 3:
			err = c.checkout(ctx, customer)
		case 0:
			return nil
		default:
			c.fail("Invalid choice.")
		}
		if err != nil {
			return err
		}
	}
}

func (c *Console) viewCart(ctx context.Context, customer *domain.Account) {
	items, err := c.svc.Carts.Items(ctx, customer)
	if err != nil {
		c.println(describe(err, c.log))
		return
	}
	if len(items) == 0 {
		c.println("Cart is empty.")
	}
	for _, g := range items {
		c.println(g)
	}
	total, _ := c.svc.Carts.Total(ctx, customer)
	c.printf("Total: %s\n", formatMoney(total))
}

func (c *Console) removeFromCart(ctx context.Context, customer *domain.Account) error {
	id, err := c.readInt("Enter game ID to remove: ")
	if err != nil {
		return err
	}
	game, err := c.svc.Catalog.FindByID(ctx, int64(id))
	if err != nil {
		game = cartEntry(customer, int64(id))
	}
	if game == nil {
		c.fail("Game not found.")
		return nil
	}
	removed, err := c.svc.Carts.Remove(ctx, customer, game)
	switch {
	case err != nil:
		c.println(describe(err, c.log))
	case !removed:
		c.fail("%s is not in your cart.", game.Title)
	default:
		c.ok("Removed from cart: %s", game.Title)
	}
	return nil
}

// cartEntry finds a game that was dropped from the catalog but is still in the cart.
func cartEntry(customer *domain.Account, id int64) *domain.Videogame {
	for _, g := range customer.Cart().Items() {
		if g.ID == id {
			return g
		}
	}
	return nil
}

func (c *Console) checkout(ctx context.Context, customer *domain.Account) error {
	if customer.Cart().IsEmpty() {
		c.println("Cart is empty.")
		return nil
	}

	c.println("\n=== CHECKOUT ===")
	c.println("This is a simulation. Do NOT enter real payment details.")

	name, err := c.readValid("Cardholder name: ", "name", "notblank")
	if err != nil {
		return err
	}
	card, err := c.readValid("Card number (15-19 digits): ", "card number", "required,number,min=15,max=19")
	if err != nil {
		return err
	}

	c.println("\nProcessing payment...")
	receipt, err := c.svc.Checkout.Process(ctx, customer, ports.PaymentInput{CardholderName: name, CardNumber: card})
	if err != nil {
		c.println(describe(err, c.log))
		return nil
	}

	c.printf("=== Checkout for %s ===\n", receipt.Username)
	for _, line := range receipt.Lines {
		c.printf("- %s ($%s)\n", line.Title, line.Price)
	}
	c.printf("Total: %s\n", formatMoney(receipt.Total))
	c.printf("Receipt: %s (card ending %s)\n", receipt.ID, receipt.CardLast4)
	c.ok("Payment successful. Thank you!")
	return nil
}

func formatMoney(m domain.Money) string {
	return humanize.FormatFloat("#,###.##", m.Float64())
}

// ── Admin ─────────────────────────────────────────────────────────────────────

func (c *Console) adminMenu(ctx context.Context) error {
	for {
		owner := c.session.Account()
		if owner == nil || !owner.IsOwner() {
			c.fail("Owner privileges required.")
			return nil
		}

		c.println("\n--- OWNER MENU ---")
		c.println("1) Add game")
		c.println("2) Remove game")
		c.println("3) Update price")
		c.println("4) Update stock")
		c.println("5) List accounts")
		c.println("6) Remove customer account")
		c.println("0) Back")

		choice, err := c.readInt("Choose: ")
		if err != nil {
			return err
		}
		switch choice {
		case 1:
			err = c.addGame(ctx, owner)
		case 2:
			err = c.removeGame(ctx, owner)
		case 3:
			err = c.updatePrice(ctx, owner)
		case 4:
			err = c.updateStock(ctx, owner)
		case 5:
			for _, a := range c.svc.Users.List(ctx) {
				c.println(a)
			}
		case 6:
			err = c.removeCustomer(ctx)
		case 0:
			return nil
		default:
			c.fail("Invalid option.")
		}
		if err != nil {
			return err
		}
	}
}

func (c *Console) addGame(ctx context.Context, owner *domain.Account) error {
	c.println("\n--- Add New Game ---")
	var (
		in  ports.NewGameInput
		err error
	)
	if in.Title, err = c.readRequired("Title: ", "Title"); err != nil {
		return err
	}
	if in.Genre, err = c.readGenre("Genre: "); err != nil {
		return err
	}
	if in.Description, err = c.readRequired("Description: ", "Description"); err != nil {
		return err
	}
	if in.Price, err = c.readMoney("Price: "); err != nil {
		return err
	}
	if in.Stock, err = c.readInt("Initial stock: "); err != nil {
		return err
	}

	game, err := c.svc.Catalog.AddGame(ctx, owner, in)
	if err != nil {
		c.println(describe(err, c.log))
		return nil
	}
	c.ok("Added game: %s (ID: %d)", game.Title, game.ID)
	return nil
}

func (c *Console) removeGame(ctx context.Context, owner *domain.Account) error {
	id, err := c.readInt("Game ID to remove: ")
	if err != nil {
		return err
	}
	game, err := c.svc.Catalog.FindByID(ctx, int64(id))
	if err != nil {
		c.println(describe(err, c.log))
		return nil
	}
	removed, err := c.svc.Catalog.RemoveGame(ctx, owner, game)
	switch {
	case err != nil:
		c.println(describe(err, c.log))
	case !removed:
		c.fail("Game not found.")
	default:
		c.ok("Removed game: %s", game.Title)
	}
	return nil
}

func (c *Console) updatePrice(ctx context.Context, owner *domain.Account) error {
	id, err := c.readInt("Game ID: ")
	if err != nil {
		return err
	}
	price, err := c.readMoney("New price: ")
	if err != nil {
		return err
	}
	if err := c.svc.Catalog.UpdatePrice(ctx, owner, int64(id), price); err != nil {
		c.println(describe(err, c.log))
		return nil
	}
	c.ok("Price updated.")
	return nil
}

func (c *Console) updateStock(ctx context.Context, owner *domain.Account) error {
	id, err := c.readInt("Game ID: ")
	if err != nil {
		return err
	}
	stock, err := c.readInt("New stock: ")
	if err != nil {
		return err
	}
	if err := c.svc.Catalog.UpdateStock(ctx, owner, int64(id), stock); err != nil {
		c.println(describe(err, c.log))
		return nil
	}
	c.ok("Stock updated.")
	return nil
}

func (c *Console) removeCustomer(ctx context.Context) error {
	username, err := c.readString("Username to remove: ")
	if err != nil {
		return err
	}
	account, err := c.svc.Users.FindByUsername(ctx, username)
	if err == nil {
		err = c.svc.Users.RemoveUser(ctx, &c.session, account)
	}
	if err != nil {
		c.println(describe(err, c.log))
		return nil
	}
	c.saveUsers(ctx)
	c.ok("Removed account: %s", account.Username)
	return nil
}

// ── Persistence ───────────────────────────────────────────────────────────────

func (c *Console) restoreUsers(ctx context.Context) {
	if c.svc.Store == nil {
		return
	}
	if _, err := c.svc.Users.Restore(ctx, c.svc.Store); err != nil {
		c.log.Error().Err(err).Msg("restore users")
		c.fail("Unable to load users: %v", err)
	}
}

func (c *Console) saveUsers(ctx context.Context) {
	if c.svc.Store == nil {
		return
	}
	if err := c.svc.Users.Persist(ctx, c.svc.Store); err != nil {
		c.log.Error().Err(err).Msg("save users")
		c.fail("Unable to save users: %v", err)
	}
}
