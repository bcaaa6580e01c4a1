package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/Pavithra-p25/ecommerce-catalog/config"
	"github.com/Pavithra-p25/ecommerce-catalog/internal/client/catalog"
	"github.com/Pavithra-p25/ecommerce-catalog/internal/client/gate"
	"github.com/Pavithra-p25/ecommerce-catalog/internal/client/gateway"
	"github.com/Pavithra-p25/ecommerce-catalog/internal/client/notify"
	"github.com/Pavithra-p25/ecommerce-catalog/internal/client/session"
	"github.com/Pavithra-p25/ecommerce-catalog/pkg/sigctx"
)

const (
	defaultPageSize = 10
	notificationTTL = 5 * time.Second
	loginView       = "login"
)

type console struct {
	sessions    *session.Store
	api         *gateway.Client
	controller  *catalog.Controller
	coordinator *catalog.Coordinator
	accessGate  gate.Gate
	bus         *notify.Bus
}

func main() {
	ctx, stop := sigctx.NotifyContext()
	defer stop()

	cfg := config.Load()

	pageSize := cfg.Client.PageSize
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}

	sessions := session.NewStore(cfg.Client.SessionFile)
	api := gateway.New(cfg.Client.ServerURL, sessions)

	bus := notify.NewBus(notificationTTL)
	bus.Subscribe(func(m notify.Message) {
		fmt.Printf("[%s] %s\n", m.Severity, m.Text)
	})

	c := &console{
		sessions:   sessions,
		api:        api,
		accessGate: gate.New(sessions, loginView),
		bus:        bus,
	}
	c.controller = catalog.NewController(api, pageSize, func(s catalog.Snapshot) {
		c.render(s)
	})
	c.coordinator = catalog.NewCoordinator(api, c.controller)

	fmt.Println("catalog admin console, type 'help' for commands")
	c.loop(ctx)
}

func (c *console) loop(ctx context.Context) {
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			return
		}
		select {
		case <-ctx.Done():
			return
		default:
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		cmd, rest, _ := strings.Cut(line, " ")

		if cmd == "quit" || cmd == "exit" {
			return
		}
		c.execute(ctx, cmd, strings.TrimSpace(rest))
	}
}

func (c *console) execute(ctx context.Context, cmd, rest string) {
	switch cmd {
	case "help":
		printHelp()
	case "login":
		c.login(ctx, rest)
	case "logout":
		c.logout()
	default:
		// Every catalog command passes the access gate; logout takes
		// effect on the very next command.
		if allowed, redirect := c.accessGate.Check(); !allowed {
			fmt.Printf("not authenticated, use %q first\n", redirect)
			return
		}
		c.executeCatalog(ctx, cmd, rest)
	}
}

func (c *console) executeCatalog(ctx context.Context, cmd, rest string) {
	switch cmd {
	case "list":
		c.controller.Start(ctx)
	case "search":
		c.controller.SetSearch(ctx, rest)
	case "filter":
		c.controller.SetCategory(ctx, rest)
	case "page":
		n, err := strconv.Atoi(rest)
		if err != nil {
			fmt.Println("usage: page <number>")
			return
		}
		c.controller.SetPage(ctx, n)
	case "show":
		c.show(ctx, rest)
	case "add":
		c.add(ctx, rest)
	case "edit":
		c.edit(ctx, rest)
	case "del":
		c.armDelete(ctx, rest)
	case "confirm":
		c.confirmDelete(ctx)
	case "cancel":
		c.coordinator.CancelDelete()
		fmt.Println("delete cancelled")
	default:
		fmt.Printf("unknown command %q, type 'help'\n", cmd)
	}
}

func (c *console) login(ctx context.Context, rest string) {
	username, password, ok := strings.Cut(rest, " ")
	if !ok {
		fmt.Println("usage: login <username> <password>")
		return
	}

	res, err := c.api.Login(ctx, username, password)
	if err != nil {
		c.bus.Publish(notify.SeverityError, "login failed: "+err.Error())
		return
	}

	err = c.sessions.Login(res.Token, session.Identity{Username: res.Username})
	if err != nil {
		c.bus.Publish(notify.SeverityError, "failed to persist session: "+err.Error())
		return
	}
	c.bus.Publish(notify.SeveritySuccess, "welcome, "+res.Username)
}

func (c *console) logout() {
	if err := c.sessions.Logout(); err != nil {
		c.bus.Publish(notify.SeverityError, "logout failed: "+err.Error())
		return
	}
	c.bus.Publish(notify.SeverityInfo, "logged out")
}

func (c *console) show(ctx context.Context, rest string) {
	id, err := strconv.ParseInt(rest, 10, 64)
	if err != nil {
		fmt.Println("usage: show <id>")
		return
	}

	p, err := c.api.GetProduct(ctx, id)
	if err != nil {
		c.fail(err)
		return
	}
	fmt.Printf("#%d %s [%s] price=%.2f stock=%d supplier=%q\n%s\n",
		p.ID, p.ProductName, p.Category, p.Price, p.StockQuantity,
		p.Supplier, p.Description)
}

// add and edit take semicolon-separated fields:
// name;category;description;price;stock;supplier
func parseForm(rest string) (catalog.ProductForm, bool) {
	parts := strings.Split(rest, ";")
	if len(parts) != 6 {
		fmt.Println("fields: name;category;description;price;stock;supplier")
		return catalog.ProductForm{}, false
	}
	return catalog.ProductForm{
		ProductName:   parts[0],
		Category:      parts[1],
		Description:   parts[2],
		Price:         parts[3],
		StockQuantity: parts[4],
		Supplier:      parts[5],
	}, true
}

func (c *console) add(ctx context.Context, rest string) {
	form, ok := parseForm(rest)
	if !ok {
		return
	}

	created, err := c.coordinator.Create(ctx, form)
	if err != nil {
		c.failForm(err)
		return
	}
	c.bus.Publish(notify.SeveritySuccess,
		fmt.Sprintf("product %q created with id %d", created.ProductName, created.ID))
}

func (c *console) edit(ctx context.Context, rest string) {
	idStr, fields, ok := strings.Cut(rest, " ")
	if !ok {
		fmt.Println("usage: edit <id> name;category;description;price;stock;supplier")
		return
	}
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		fmt.Println("usage: edit <id> name;category;description;price;stock;supplier")
		return
	}

	form, ok := parseForm(fields)
	if !ok {
		return
	}

	updated, err := c.coordinator.Update(ctx, id, form)
	if err != nil {
		c.failForm(err)
		return
	}
	c.bus.Publish(notify.SeveritySuccess,
		fmt.Sprintf("product %d (%q) updated", updated.ID, updated.ProductName))
}

func (c *console) armDelete(ctx context.Context, rest string) {
	id, err := strconv.ParseInt(rest, 10, 64)
	if err != nil {
		fmt.Println("usage: del <id>")
		return
	}

	p, err := c.api.GetProduct(ctx, id)
	if err != nil {
		c.fail(err)
		return
	}

	c.coordinator.ArmDelete(p)
	fmt.Printf("delete %q? type 'confirm' or 'cancel'\n", p.ProductName)
}

func (c *console) confirmDelete(ctx context.Context) {
	if err := c.coordinator.ConfirmDelete(ctx); err != nil {
		c.fail(err)
		return
	}
	c.bus.Publish(notify.SeveritySuccess, "product deleted")
}

// fail reports the error and, on an authorization rejection, tears
// down the session so the gate forces a fresh login.
func (c *console) fail(err error) {
	if gateway.IsUnauthorized(err) {
		_ = c.sessions.Logout()
		c.bus.Publish(notify.SeverityError, "session expired, please login again")
		return
	}
	c.bus.Publish(notify.SeverityError, err.Error())
}

func (c *console) failForm(err error) {
	var formErr *catalog.FormError
	if errors.As(err, &formErr) {
		for field, msg := range formErr.Fields {
			fmt.Printf("  %s %s\n", field, msg)
		}
		return
	}
	c.fail(err)
}

func (c *console) render(s catalog.Snapshot) {
	switch s.State {
	case catalog.StateFailed:
		c.fail(s.Err)
		return
	case catalog.StateReady:
	default:
		return
	}

	if len(s.Products) == 0 {
		fmt.Println("no products found")
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tCATEGORY\tPRICE\tSTOCK\tSUPPLIER")
	for _, p := range s.Products {
		fmt.Fprintf(w, "%d\t%s\t%s\t%.2f\t%d\t%s\n",
			p.ID, p.ProductName, p.Category, p.Price, p.StockQuantity, p.Supplier)
	}
	w.Flush()
	fmt.Printf("page %d of %d, categories here: %s\n",
		s.Query.Page+1, max(s.TotalPages, 1), strings.Join(s.Categories, ", "))
}

func printHelp() {
	fmt.Print(`commands:
  login <username> <password>
  logout
  list
  search <text>
  filter <category>
  page <number>
  show <id>
  add name;category;description;price;stock;supplier
  edit <id> name;category;description;price;stock;supplier
  del <id>        (then 'confirm' or 'cancel')
  quit
`)
}
