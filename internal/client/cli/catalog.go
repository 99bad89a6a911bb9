package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/dmitrijs2005/daastan/internal/client/models"
)

func usage(s string) error { return fmt.Errorf("usage: %s", s) }

// parseBookFilter reads category=, author=, min= and max= arguments.
func parseBookFilter(args []string) (models.BookFilter, error) {
	const u = "books [category=<id>] [author=<id>] [min=<price>] [max=<price>]"
	var f models.BookFilter
	for _, arg := range args {
		k, v, ok := strings.Cut(arg, "=")
		if !ok || v == "" {
			return f, usage(u)
		}
		switch k {
		case "category":
			f.CategoryID = v
		case "author":
			f.AuthorID = v
		case "min", "max":
			p, err := strconv.ParseFloat(v, 64)
			if err != nil || p < 0 {
				return f, fmt.Errorf("invalid %s price %q", k, v)
			}
			if k == "min" {
				f.MinPrice = &p
			} else {
				f.MaxPrice = &p
			}
		default:
			return f, usage(u)
		}
	}
	return f, nil
}

func (a *App) Books(ctx context.Context, args []string) error {
	f, err := parseBookFilter(args)
	if err != nil {
		return err
	}
	books, err := a.shop.ListBooks(ctx, f)
	if err != nil {
		return err
	}
	if len(books) == 0 {
		fmt.Fprintln(a.out, "No books found")
		return nil
	}

	w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tAUTHOR\tPRICE\tSTOCK")
	for _, b := range books {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\n", b.ID, b.Title, refName(b.Author), price(b), b.StockQuantity)
	}
	return w.Flush()
}

func (a *App) Book(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usage("book <id>")
	}
	b, err := a.shop.GetBook(ctx, args[0])
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%s\nby %s\n", b.Title, refName(b.Author))
	if b.Category != nil {
		fmt.Fprintf(a.out, "Category: %s\n", b.Category.Name)
	}
	if b.ISBN != "" {
		fmt.Fprintf(a.out, "ISBN: %s\n", b.ISBN)
	}
	fmt.Fprintf(a.out, "Price: %s  In stock: %d\n", price(*b), b.StockQuantity)
	if b.Description != "" {
		fmt.Fprintf(a.out, "\n%s\n", b.Description)
	}
	return nil
}

func (a *App) Reviews(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usage("reviews <bookID>")
	}
	reviews, err := a.shop.ListReviews(ctx, args[0])
	if err != nil {
		return err
	}
	if len(reviews) == 0 {
		fmt.Fprintln(a.out, "No reviews yet")
		return nil
	}
	for _, r := range reviews {
		fmt.Fprintf(a.out, "%s %s\n", strings.Repeat("*", r.Rating), r.Comment)
	}
	return nil
}

func (a *App) Authors(ctx context.Context) error {
	authors, err := a.shop.ListAuthors(ctx)
	if err != nil {
		return err
	}
	w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME")
	for _, au := range authors {
		fmt.Fprintf(w, "%s\t%s\n", au.ID, au.Name)
	}
	return w.Flush()
}

func (a *App) Categories(ctx context.Context) error {
	cats, err := a.shop.ListCategories(ctx)
	if err != nil {
		return err
	}
	w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tCATEGORY")
	for _, c := range cats {
		fmt.Fprintf(w, "%s\t%s\n", c.ID, c.Type)
	}
	return w.Flush()
}

func refName(r *models.Ref) string {
	if r == nil || r.Name == "" {
		return "-"
	}
	return r.Name
}

func price(b models.Book) string {
	if b.PricePKR != "" {
		return b.PricePKR
	}
	return money(b.Price)
}

func money(v float64) string { return "Rs. " + strconv.FormatFloat(v, 'f', 2, 64) }
