package cli

import (
	"context"
	"fmt"
	"strconv"
	"text/tabwriter"
)

func (a *App) Cart(ctx context.Context) error {
	if err := a.requireLogin(ctx); err != nil {
		return err
	}
	cart, err := a.shop.GetCart(ctx)
	if err != nil {
		return err
	}
	if len(cart.Items) == 0 {
		fmt.Fprintln(a.out, "Your cart is empty")
		return nil
	}

	w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ITEM\tBOOK\tQTY\tSUBTOTAL")
	for _, it := range cart.Items {
		title := it.BookID
		if it.Book != nil && it.Book.Title != "" {
			title = it.Book.Title
		}
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\n", it.ID, title, it.Quantity, money(it.Subtotal))
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%d item(s), total %s\n", cart.Count(), money(cart.Total))
	return nil
}

func parseQuantity(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("invalid quantity %q", s)
	}
	return n, nil
}

func (a *App) Add(ctx context.Context, args []string) error {
	if len(args) < 1 || len(args) > 2 {
		return usage("add <bookID> [quantity]")
	}
	if err := a.requireLogin(ctx); err != nil {
		return err
	}
	qty := 1
	if len(args) == 2 {
		n, err := parseQuantity(args[1])
		if err != nil {
			return err
		}
		qty = n
	}
	m, err := a.shop.AddToCart(ctx, args[0], qty)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, messageOr(m.Message, "Added to cart"))
	return nil
}

func (a *App) Update(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return usage("update <itemID> <quantity>")
	}
	if err := a.requireLogin(ctx); err != nil {
		return err
	}
	qty, err := parseQuantity(args[1])
	if err != nil {
		return err
	}
	m, err := a.shop.UpdateCartItem(ctx, args[0], qty)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, messageOr(m.Message, "Cart updated"))
	return nil
}

func (a *App) Remove(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usage("remove <itemID>")
	}
	if err := a.requireLogin(ctx); err != nil {
		return err
	}
	m, err := a.shop.RemoveCartItem(ctx, args[0])
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, messageOr(m.Message, "Item removed from cart"))
	return nil
}

func (a *App) ClearCart(ctx context.Context) error {
	if err := a.requireLogin(ctx); err != nil {
		return err
	}
	m, err := a.shop.ClearCart(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, messageOr(m.Message, "Cart cleared"))
	return nil
}
