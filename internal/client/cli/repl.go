package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/daastan/internal/client/api"
)

// printlnFn is a test seam for REPL output.
var printlnFn = fmt.Println

// execIface is the command surface the REPL dispatches to. *App implements
// it; tests use a stub.
type execIface interface {
	isLoggedIn(ctx context.Context) bool
	isAdmin(ctx context.Context) bool

	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	WhoAmI(ctx context.Context) error

	Books(ctx context.Context, args []string) error
	Book(ctx context.Context, args []string) error
	Reviews(ctx context.Context, args []string) error
	Authors(ctx context.Context) error
	Categories(ctx context.Context) error

	Cart(ctx context.Context) error
	Add(ctx context.Context, args []string) error
	Update(ctx context.Context, args []string) error
	Remove(ctx context.Context, args []string) error
	ClearCart(ctx context.Context) error

	Checkout(ctx context.Context) error
	Orders(ctx context.Context) error
	Order(ctx context.Context, args []string) error

	AllOrders(ctx context.Context) error
	SetStatus(ctx context.Context, args []string) error
}

const (
	helpGuest = "Available commands: register, login, books, book, reviews, authors, categories, exit"
	helpUser  = "Available commands: books, book, reviews, authors, categories, cart, add, update, remove, clearcart, checkout, orders, order, whoami, logout, exit"
	helpAdmin = "Admin commands: allorders, setstatus"
)

// runREPL reads commands from in until EOF, "exit" or "quit" and dispatches
// them to a. Failed commands are reported and the loop goes on.
func runREPL(ctx context.Context, a execIface, statusFn func() string, in *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("daastan%s> ", statusFn()))
		line, err := in.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		var cmdErr error
		switch cmd {
		case "help":
			switch {
			case a.isAdmin(ctx):
				printlnFn(helpUser)
				printlnFn(helpAdmin)
			case a.isLoggedIn(ctx):
				printlnFn(helpUser)
			default:
				printlnFn(helpGuest)
			}

		case "register":
			cmdErr = a.Register(ctx)
		case "login":
			cmdErr = a.Login(ctx)
		case "logout":
			cmdErr = a.Logout(ctx)
		case "whoami":
			cmdErr = a.WhoAmI(ctx)

		case "books":
			cmdErr = a.Books(ctx, args)
		case "book":
			cmdErr = a.Book(ctx, args)
		case "reviews":
			cmdErr = a.Reviews(ctx, args)
		case "authors":
			cmdErr = a.Authors(ctx)
		case "categories":
			cmdErr = a.Categories(ctx)

		case "cart":
			cmdErr = a.Cart(ctx)
		case "add":
			cmdErr = a.Add(ctx, args)
		case "update":
			cmdErr = a.Update(ctx, args)
		case "remove":
			cmdErr = a.Remove(ctx, args)
		case "clearcart":
			cmdErr = a.ClearCart(ctx)

		case "checkout":
			cmdErr = a.Checkout(ctx)
		case "orders":
			cmdErr = a.Orders(ctx)
		case "order":
			cmdErr = a.Order(ctx, args)

		case "allorders", "setstatus":
			if !a.isAdmin(ctx) {
				printlnFn("Admin access required")
				continue
			}
			if cmd == "allorders" {
				cmdErr = a.AllOrders(ctx)
			} else {
				cmdErr = a.SetStatus(ctx, args)
			}

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if cmdErr != nil {
			reportError(cmdErr)
		}
	}
}

// reportError prints a command failure. An expired session asks the user
// to log in again.
func reportError(err error) {
	var he *api.HTTPError
	var te *api.TransportError
	switch {
	case errors.Is(err, api.ErrSessionExpired):
		printlnFn("Session expired. Please login again.")
	case errors.As(err, &he):
		printlnFn("Error:", he.Message)
	case errors.As(err, &te):
		printlnFn("Network error, please try again:", te.Err)
	default:
		printlnFn("Error:", err)
	}
}
