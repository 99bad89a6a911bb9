package cli

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/dmitrijs2005/daastan/internal/client/models"
)

func (a *App) Checkout(ctx context.Context) error {
	if err := a.requireLogin(ctx); err != nil {
		return err
	}
	addr, err := GetRequiredText(a.reader, "Shipping address:", a.out)
	if err != nil {
		return err
	}
	city, err := GetRequiredText(a.reader, "City:", a.out)
	if err != nil {
		return err
	}
	phone, err := GetRequiredText(a.reader, "Phone number:", a.out)
	if err != nil {
		return err
	}

	res, err := a.shop.Checkout(ctx, models.ShippingDetails{ShippingAddress: addr, City: city, PhoneNumber: phone})
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, messageOr(res.Message, "Order placed"))
	if res.Order != nil {
		fmt.Fprintf(a.out, "Order %s, total %s\n", res.Order.ID, money(res.Order.TotalAmount))
	}
	return nil
}

func (a *App) Orders(ctx context.Context) error {
	if err := a.requireLogin(ctx); err != nil {
		return err
	}
	orders, err := a.shop.ListOrders(ctx)
	if err != nil {
		return err
	}
	return a.printOrders(orders)
}

func (a *App) Order(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usage("order <id>")
	}
	if err := a.requireLogin(ctx); err != nil {
		return err
	}
	d, err := a.shop.GetOrder(ctx, args[0])
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Order %s (%s) placed %s\n", d.Order.ID, d.Order.Status, d.Order.OrderDate)
	if d.Order.ShippingAddress != "" {
		fmt.Fprintf(a.out, "Ship to: %s, %s\n", d.Order.ShippingAddress, d.Order.City)
	}
	w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "BOOK\tQTY\tPRICE\tSUBTOTAL")
	for _, it := range d.Items {
		title := it.BookTitle
		if title == "" {
			title = it.BookID
		}
		fmt.Fprintf(w, "%s\t%d\t%s\t%s\n", title, it.Quantity, money(it.UnitPrice), money(it.Subtotal))
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Total: %s\n", money(d.Order.TotalAmount))
	return nil
}

func (a *App) AllOrders(ctx context.Context) error {
	orders, err := a.shop.ListAllOrders(ctx)
	if err != nil {
		return err
	}
	return a.printOrders(orders)
}

func (a *App) SetStatus(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return usage("setstatus <orderID> <status>")
	}
	o, err := a.shop.UpdateOrderStatus(ctx, args[0], args[1])
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Order %s is now %s\n", o.ID, o.Status)
	return nil
}

func (a *App) printOrders(orders []models.Order) error {
	if len(orders) == 0 {
		fmt.Fprintln(a.out, "No orders yet")
		return nil
	}
	w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tDATE\tSTATUS\tTOTAL")
	for _, o := range orders {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", o.ID, o.OrderDate, o.Status, money(o.TotalAmount))
	}
	return w.Flush()
}
