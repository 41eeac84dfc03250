package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"Estante/internal/cart"
	"Estante/internal/catalog"
	"Estante/internal/config"
	"Estante/internal/storefront"
	"Estante/pkg/kit"
)

func main() {
	log := kit.NewLogger("storefront")
	defer func() { _ = log.Sync() }()

	cfg := config.LoadStorefront()

	in := bufio.NewReader(os.Stdin)
	notify := &storefront.TermNotifier{Out: os.Stdout, In: in}
	view := storefront.NewView(os.Stdout)

	client := catalog.NewClient(cfg.ServerURL)
	client.Token = cfg.AdminToken

	app := storefront.New(client, cart.NewStore(cfg.CartPath, log), view, notify, log)

	ctx := context.Background()
	if err := app.Startup(ctx); err != nil {
		log.Warn("startup without catalog", zap.Error(err))
	}

	fmt.Println(`type "help" for commands`)
	repl(ctx, app, in)
}

func repl(ctx context.Context, app *storefront.App, in *bufio.Reader) {
	for {
		fmt.Print("> ")
		line, err := in.ReadString('\n')
		if err != nil {
			return
		}

		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		cmd, args := fields[0], fields[1:]

		switch cmd {
		case "list":
			_ = app.Refresh(ctx)
		case "cart":
			app.ShowCart()
		case "add":
			if len(args) != 1 {
				fmt.Println("usage: add <id>")
				continue
			}
			app.AddToCart(args[0])
		case "qty":
			if len(args) != 2 {
				fmt.Println("usage: qty <id> <delta>")
				continue
			}
			delta, err := strconv.Atoi(args[1])
			if err != nil {
				fmt.Println("delta must be an integer")
				continue
			}
			app.ChangeQuantity(args[0], delta)
		case "rm":
			if len(args) != 1 {
				fmt.Println("usage: rm <id>")
				continue
			}
			app.RemoveFromCart(args[0])
		case "checkout":
			app.Checkout()
		case "new":
			name := prompt(in, "name: ")
			quantity := prompt(in, "quantity: ")
			price := prompt(in, "price: ")
			app.CreateBook(ctx, name, quantity, price)
		case "edit":
			if len(args) != 1 {
				fmt.Println("usage: edit <id>")
				continue
			}
			if !app.PrepareEdit(args[0]) {
				fmt.Println("no book with that id")
				continue
			}
			quantity := promptDefault(in, "quantity", app.Form.Quantity)
			price := promptDefault(in, "price", app.Form.Price)
			app.UpdateBook(ctx, quantity, price)
		case "del":
			if len(args) != 1 {
				fmt.Println("usage: del <id>")
				continue
			}
			e, ok := app.Entry(args[0])
			if !ok {
				fmt.Println("no book with that id")
				continue
			}
			app.DeleteBook(ctx, e.Name)
		case "help":
			usage()
		case "quit", "exit":
			return
		default:
			fmt.Printf("unknown command %q\n", cmd)
		}
	}
}

func prompt(in *bufio.Reader, label string) string {
	fmt.Print(label)
	line, _ := in.ReadString('\n')
	return strings.TrimSpace(line)
}

func promptDefault(in *bufio.Reader, label, current string) string {
	v := prompt(in, fmt.Sprintf("%s [%s]: ", label, current))
	if v == "" {
		return current
	}
	return v
}

func usage() {
	fmt.Println(`commands:
  list            fetch and show the catalog
  cart            show the cart
  add <id>        put one unit in the cart
  qty <id> <d>    change a line's quantity by d (0 or less removes it)
  rm <id>         remove a line from the cart
  checkout        finish the purchase (local simulation)
  new             add a book to the shelf
  edit <id>       edit a book's quantity and price
  del <id>        remove a book from the shelf
  quit`)
}
