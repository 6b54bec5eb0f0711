// Package console is the thin view layer of the admin client: it renders
// the login and product screens as terminal prompts and tables and
// dispatches user input into the orchestrators. All workflow decisions live
// in internal/usecase; nothing here touches the network directly.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/sirupsen/logrus"

	"productadmin/internal/clients"
	"productadmin/internal/domain"
	"productadmin/internal/session"
	"productadmin/internal/usecase"
)

type Console struct {
	in       *bufio.Scanner
	out      io.Writer
	login    *usecase.LoginFlow
	products *usecase.ProductManager
	session  *session.Session
	log      *logrus.Logger

	navigated bool
}

func New(in io.Reader, out io.Writer, sess *session.Session, logger *logrus.Logger) *Console {
	return &Console{
		in:      bufio.NewScanner(in),
		out:     out,
		session: sess,
		log:     logger,
	}
}

// Attach wires the orchestrators in after construction; the login flow
// needs the console as its Navigator, so construction is two-phase.
func (c *Console) Attach(login *usecase.LoginFlow, products *usecase.ProductManager) {
	c.login = login
	c.products = products
}

// NavigateToProducts satisfies usecase.Navigator.
func (c *Console) NavigateToProducts() {
	c.navigated = true
}

// Run drives the whole session: login screen until authenticated, then the
// product screen until the user quits.
func (c *Console) Run(ctx context.Context) error {
	if !c.session.Authenticated() {
		if !c.runLoginScreen(ctx) {
			return nil
		}
	} else {
		fmt.Fprintln(c.out, "Restored previous session.")
	}
	return c.runProductScreen(ctx)
}

func (c *Console) runLoginScreen(ctx context.Context) bool {
	fmt.Fprintln(c.out, "=== Sign In ===")
	for {
		username, ok := c.prompt("Username (empty to quit): ")
		if !ok || username == "" {
			return false
		}
		password, ok := c.prompt("Password: ")
		if !ok {
			return false
		}

		c.login.Submit(ctx, username, password)

		fieldErrs := c.login.FieldErrors()
		if fieldErrs.Username != "" {
			fmt.Fprintf(c.out, "  username: %s\n", fieldErrs.Username)
		}
		if fieldErrs.Password != "" {
			fmt.Fprintf(c.out, "  password: %s\n", fieldErrs.Password)
		}
		if apiErr := c.login.APIError(); apiErr != "" {
			fmt.Fprintf(c.out, "  %s\n", apiErr)
			c.login.ClearAPIError()
		}
		if c.navigated {
			fmt.Fprintln(c.out, "Login successful.")
			return true
		}
	}
}

func (c *Console) runProductScreen(ctx context.Context) error {
	c.products.Load(ctx)
	for {
		c.renderProducts()
		line, ok := c.prompt("command (help for the list) > ")
		if !ok || line == "quit" || line == "exit" {
			return nil
		}

		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		command := fields[0]
		switch command {
		case "help":
			fmt.Fprintln(c.out, "commands: list, add, edit <id>, del <id>, show <id>, logout, quit")
		case "list":
			c.products.Load(ctx)
		case "add":
			c.runProductForm(ctx, nil)
		case "edit":
			if product, ok := c.findByArg(fields); ok {
				c.runProductForm(ctx, &product)
			}
		case "del":
			if product, ok := c.findByArg(fields); ok {
				c.runDeleteConfirm(ctx, product)
			}
		case "show":
			if id, ok := c.parseIDArg(fields); ok {
				c.runDetail(ctx, id)
			}
		case "logout":
			if err := c.session.Clear(); err != nil {
				fmt.Fprintf(c.out, "logout failed: %v\n", err)
				continue
			}
			fmt.Fprintln(c.out, "Logged out.")
			c.navigated = false
			if !c.runLoginScreen(ctx) {
				return nil
			}
			c.products.Load(ctx)
		default:
			fmt.Fprintf(c.out, "unknown command %q\n", command)
		}
	}
}

func (c *Console) runProductForm(ctx context.Context, target *domain.Product) {
	var draft domain.ProductDraft
	if target != nil {
		c.products.OpenEdit(ctx, *target)
		draft = domain.DraftFromProduct(*target)
		fmt.Fprintf(c.out, "--- Edit product %d (empty input keeps the current value) ---\n", target.ID)
	} else {
		c.products.OpenCreate(ctx)
		fmt.Fprintln(c.out, "--- New product ---")
	}

	if categories := c.products.Categories(); len(categories) > 0 {
		fmt.Fprint(c.out, "categories: ")
		for i, cat := range categories {
			if i > 0 {
				fmt.Fprint(c.out, ", ")
			}
			fmt.Fprintf(c.out, "%d=%s", cat.ID, cat.Name)
		}
		fmt.Fprintln(c.out)
	}

	for {
		draft.Name = c.promptDefault("name", draft.Name)
		draft.Price = c.promptDefault("price", draft.Price)
		draft.Quantity = c.promptDefault("quantity", draft.Quantity)
		draft.Description = c.promptDefault("description", draft.Description)
		draft.CategoryID = c.promptDefault("category id", draft.CategoryID)

		errs := c.products.Save(ctx, draft)
		if errs.Valid() {
			if bannerMsg := c.products.Error(); bannerMsg != "" {
				fmt.Fprintln(c.out, bannerMsg)
				c.products.ClearError()
			}
			return
		}
		for field, msg := range errs {
			fmt.Fprintf(c.out, "  %s: %s\n", field, msg)
		}
		answer, ok := c.prompt("fix and retry? (y/n) ")
		if !ok || !strings.HasPrefix(strings.ToLower(answer), "y") {
			c.products.CloseForm()
			return
		}
	}
}

func (c *Console) runDeleteConfirm(ctx context.Context, product domain.Product) {
	c.products.RequestDelete(product)
	answer, ok := c.prompt(fmt.Sprintf("delete %q (id %d)? (y/n) ", product.Name, product.ID))
	if !ok || !strings.HasPrefix(strings.ToLower(answer), "y") {
		c.products.CancelDelete()
		return
	}
	c.products.ConfirmDelete(ctx)
	if bannerMsg := c.products.Error(); bannerMsg != "" {
		fmt.Fprintln(c.out, bannerMsg)
		c.products.ClearError()
	}
}

func (c *Console) renderProducts() {
	if bannerMsg := c.products.Error(); bannerMsg != "" {
		fmt.Fprintf(c.out, "! %s\n", bannerMsg)
		c.products.ClearError()
	}
	products := c.products.Products()
	if len(products) == 0 {
		fmt.Fprintln(c.out, "(no products)")
		return
	}
	w := tabwriter.NewWriter(c.out, 2, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tPRICE\tQUANTITY")
	for _, p := range products {
		fmt.Fprintf(w, "%d\t%s\t%s\t%d\n", p.ID, p.Name, formatPrice(p.Price), p.Quantity)
	}
	w.Flush()
}

func (c *Console) renderDetail(product domain.Product) {
	fmt.Fprintf(c.out, "ID:          %d\n", product.ID)
	fmt.Fprintf(c.out, "Name:        %s\n", product.Name)
	fmt.Fprintf(c.out, "Price:       %s\n", formatPrice(product.Price))
	fmt.Fprintf(c.out, "Quantity:    %d\n", product.Quantity)
	if product.Description != "" {
		fmt.Fprintf(c.out, "Description: %s\n", product.Description)
	}
	if product.CategoryID != 0 {
		fmt.Fprintf(c.out, "Category:    %d\n", product.CategoryID)
	}
}

// runDetail always fetches fresh by id; the cached list may be stale.
func (c *Console) runDetail(ctx context.Context, id int) {
	product, err := c.products.Detail(ctx, id)
	if err != nil {
		if errors.Is(err, clients.ErrNotFound) {
			fmt.Fprintf(c.out, "no product with id %d\n", id)
			return
		}
		fmt.Fprintln(c.out, usecase.MsgDetailFailed)
		return
	}
	c.renderDetail(*product)
}

func (c *Console) parseIDArg(fields []string) (int, bool) {
	if len(fields) < 2 {
		fmt.Fprintln(c.out, "usage: "+fields[0]+" <id>")
		return 0, false
	}
	id, err := strconv.Atoi(fields[1])
	if err != nil {
		fmt.Fprintf(c.out, "invalid id %q\n", fields[1])
		return 0, false
	}
	return id, true
}

func (c *Console) findByArg(fields []string) (domain.Product, bool) {
	id, ok := c.parseIDArg(fields)
	if !ok {
		return domain.Product{}, false
	}
	for _, p := range c.products.Products() {
		if p.ID == id {
			return p, true
		}
	}
	fmt.Fprintf(c.out, "no product with id %d in the current list\n", id)
	return domain.Product{}, false
}

func (c *Console) prompt(label string) (string, bool) {
	fmt.Fprint(c.out, label)
	if !c.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(c.in.Text()), true
}

func (c *Console) promptDefault(label, current string) string {
	suffix := ""
	if current != "" {
		suffix = fmt.Sprintf(" [%s]", current)
	}
	value, ok := c.prompt(fmt.Sprintf("%s%s: ", label, suffix))
	if !ok || value == "" {
		return current
	}
	return value
}

func formatPrice(price float64) string {
	return strconv.FormatFloat(price, 'f', -1, 64)
}
