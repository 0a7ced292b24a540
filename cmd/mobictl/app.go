package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/mobicorp/storefront/internal/core/domain"
	"github.com/mobicorp/storefront/internal/core/ports"
	"github.com/mobicorp/storefront/internal/view"
)

const usageText = `Usage: mobictl <command> [flags]

Commands:
  login      -email E [-password P]        log in (password read from stdin when omitted)
  register   -email E -name N [-role R]    create an account and log in
  logout                                   drop the stored session
  whoami                                   show the current operator
  products   list [-q term] [-category c]  list the catalog
  products   create -name -category -price -stock [-description]
  products   get -id N                     show one product
  prices     suggest -id N | -all          compare market prices
  prices     history [-id N] [-csv]        past comparisons
  prices     alerts [-csv]                 price variation alerts

Configuration is read from the environment (API_BASE_URL, TOKEN_STORE, ...).
`

var errUsage = errors.New("invalid usage")

type app struct {
	sessions ports.SessionService
	catalog  ports.CatalogService
	prices   ports.PriceService

	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
	now    func() time.Time
}

func (a *app) run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Fprint(a.stderr, usageText)
		return errUsage
	}

	cmd, rest := args[0], args[1:]
	switch cmd {
	case "login":
		return a.login(ports.WithLocation(ctx, domain.LoginLocation), rest)
	case "register":
		return a.register(ports.WithLocation(ctx, domain.LoginLocation), rest)
	case "logout":
		a.sessions.Logout(ctx)
		fmt.Fprintln(a.stdout, "Sesión cerrada")
		return nil
	case "whoami":
		if err := a.requireSession(); err != nil {
			return err
		}
		return view.RenderUser(a.stdout, view.NewUserCard(a.sessions.Current(), a.now()))
	case "products":
		return a.products(ports.WithLocation(ctx, "/products"), rest)
	case "prices":
		return a.pricesCmd(ports.WithLocation(ctx, "/prices"), rest)
	case "help", "-h", "--help":
		fmt.Fprint(a.stdout, usageText)
		return nil
	default:
		fmt.Fprintf(a.stderr, "unknown command %q\n\n%s", cmd, usageText)
		return errUsage
	}
}

func (a *app) flags(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(a.stderr)
	return fs
}

func (a *app) requireSession() error {
	if !a.sessions.Current().Authenticated() {
		return domain.ErrNotAuthenticated
	}
	return nil
}

func (a *app) login(ctx context.Context, args []string) error {
	fs := a.flags("login")
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password")
	if err := fs.Parse(args); err != nil {
		return errUsage
	}
	if *email == "" {
		return fmt.Errorf("%w: -email is required", errUsage)
	}
	if *password == "" {
		*password = a.readLine()
	}

	if err := a.sessions.Login(ctx, *email, *password); err != nil {
		return domain.AlertFrom(err, "Error al iniciar sesión")
	}
	return view.RenderUser(a.stdout, view.NewUserCard(a.sessions.Current(), a.now()))
}

func (a *app) register(ctx context.Context, args []string) error {
	fs := a.flags("register")
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password")
	name := fs.String("name", "", "full name")
	role := fs.String("role", "", "sales (default), admin or logistics")
	if err := fs.Parse(args); err != nil {
		return errUsage
	}
	if *email == "" || *name == "" {
		return fmt.Errorf("%w: -email and -name are required", errUsage)
	}
	if *password == "" {
		*password = a.readLine()
	}

	if err := a.sessions.Register(ctx, *email, *password, *name, *role); err != nil {
		return domain.AlertFrom(err, "Error al registrar la cuenta")
	}
	return view.RenderUser(a.stdout, view.NewUserCard(a.sessions.Current(), a.now()))
}

func (a *app) products(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: products needs list, create or get", errUsage)
	}
	if err := a.requireSession(); err != nil {
		return err
	}

	switch args[0] {
	case "list":
		fs := a.flags("products list")
		q := fs.String("q", "", "filter by name or category")
		category := fs.String("category", "", "server-side category filter")
		if err := fs.Parse(args[1:]); err != nil {
			return errUsage
		}

		fmt.Fprintln(a.stderr, view.LoadingMessage)
		if _, err := a.catalog.List(ctx, *category); err != nil {
			return err
		}
		return view.RenderCatalog(a.stdout, view.NewCatalogView(a.catalog.Filter(*q), *q))

	case "create":
		var form ports.ProductForm
		fs := a.flags("products create")
		fs.StringVar(&form.Name, "name", "", "product name")
		fs.StringVar(&form.Category, "category", "", "one of: "+strings.Join(domain.Categories, ", "))
		fs.StringVar(&form.Price, "price", "", "price in Bs.")
		fs.StringVar(&form.Stock, "stock", "", "units in stock")
		fs.StringVar(&form.Description, "description", "", "optional description")
		if err := fs.Parse(args[1:]); err != nil {
			return errUsage
		}

		products, err := a.catalog.Create(ctx, form)
		if err != nil {
			return err
		}
		fmt.Fprintln(a.stdout, "Producto creado")
		return view.RenderCatalog(a.stdout, view.NewCatalogView(products, ""))

	case "get":
		fs := a.flags("products get")
		id := fs.Int("id", 0, "product id")
		if err := fs.Parse(args[1:]); err != nil {
			return errUsage
		}

		p, err := a.catalog.Get(ctx, *id)
		if err != nil {
			return err
		}
		return view.RenderProduct(a.stdout, view.NewProductCard(*p))

	default:
		return fmt.Errorf("%w: unknown products command %q", errUsage, args[0])
	}
}

func (a *app) pricesCmd(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: prices needs suggest, history or alerts", errUsage)
	}
	if err := a.requireSession(); err != nil {
		return err
	}

	switch args[0] {
	case "suggest":
		fs := a.flags("prices suggest")
		id := fs.Int("id", 0, "product id")
		all := fs.Bool("all", false, "compare every product")
		if err := fs.Parse(args[1:]); err != nil {
			return errUsage
		}
		if *all {
			return a.suggestAll(ctx)
		}

		s, err := a.prices.Suggest(ctx, *id)
		if err != nil {
			return err
		}
		return view.RenderSuggestion(a.stdout, view.NewSuggestionPanel(*s))

	case "history":
		fs := a.flags("prices history")
		id := fs.Int("id", 0, "only this product")
		asCSV := fs.Bool("csv", false, "write CSV instead of text")
		if err := fs.Parse(args[1:]); err != nil {
			return errUsage
		}

		history, err := a.prices.History(ctx, *id)
		if err != nil {
			return err
		}
		rows := view.NewHistoryRows(history)
		if *asCSV {
			return view.WriteCSV(a.stdout, rows)
		}
		return view.RenderHistory(a.stdout, rows)

	case "alerts":
		fs := a.flags("prices alerts")
		asCSV := fs.Bool("csv", false, "write CSV instead of text")
		if err := fs.Parse(args[1:]); err != nil {
			return errUsage
		}

		alerts, err := a.prices.Alerts(ctx)
		if err != nil {
			return err
		}
		rows := view.NewAlertRows(alerts)
		if *asCSV {
			return view.WriteCSV(a.stdout, rows)
		}
		return view.RenderAlerts(a.stdout, rows)

	default:
		return fmt.Errorf("%w: unknown prices command %q", errUsage, args[0])
	}
}

// suggestAll compares every product. Individual failures are reported and
// skipped; an expired session stops the run.
func (a *app) suggestAll(ctx context.Context) error {
	fmt.Fprintln(a.stderr, view.LoadingMessage)
	products, err := a.prices.ListProducts(ctx)
	if err != nil {
		return err
	}

	ids := make([]int, len(products))
	for i, p := range products {
		ids[i] = p.ID
	}

	for i, res := range a.prices.SuggestAll(ctx, ids) {
		label := view.NewProductOption(products[i]).Label
		if res.Err != nil {
			if errors.Is(res.Err, domain.ErrUnauthorized) {
				return res.Err
			}
			fmt.Fprintf(a.stderr, "%s: %s\n", label, describe(res.Err))
			continue
		}
		fmt.Fprintf(a.stdout, "== %s ==\n", label)
		if err := view.RenderSuggestion(a.stdout, view.NewSuggestionPanel(*res.Suggestion)); err != nil {
			return err
		}
	}
	return nil
}

func (a *app) readLine() string {
	sc := bufio.NewScanner(a.stdin)
	if sc.Scan() {
		return strings.TrimSpace(sc.Text())
	}
	return ""
}

// describe turns an error into the line shown to the operator.
func describe(err error) string {
	var alert *domain.UserAlert
	switch {
	case errors.As(err, &alert):
		return alert.Message
	case errors.Is(err, domain.ErrNotAuthenticated):
		return "Sesión no iniciada. Use: mobictl login"
	case errors.Is(err, domain.ErrUnauthorized):
		return "El servidor rechazó la sesión"
	case errors.Is(err, domain.ErrNoProductSelected):
		return "Seleccionar un producto (-id)"
	case errors.Is(err, domain.ErrRequestInFlight):
		return "Ya hay una solicitud en curso"
	case errors.Is(err, domain.ErrProductNotFound):
		return "Producto no encontrado"
	default:
		return err.Error()
	}
}
