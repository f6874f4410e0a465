// Command ordercli is an interactive tool for creating orders by hand. It
// walks through customer selection, order dates, and line items, then submits
// the order through the HTTP API.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"

	"github.com/farmable/api/internal/demo"
)

func main() {
	_ = godotenv.Load()

	apiURL := flag.String("api", envOr("API_URL", "http://localhost:8081"), "Base URL of the Farmable API")
	flag.Parse()

	ctx := context.Background()
	client := demo.NewClient(*apiURL)
	reader := bufio.NewReader(os.Stdin)

	fmt.Println("===== Order Creation Tool =====")
	fmt.Println("This tool will guide you through creating a new order.")
	fmt.Println("Press Ctrl+C at any time to cancel.")
	fmt.Println("===============================")
	fmt.Println()

	customerID, err := resolveCustomer(ctx, client, reader)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Println()
	fmt.Println("--- Order Details ---")
	orderDate := question(reader, "Order date (YYYY-MM-DD, leave blank for today): ")
	if orderDate == "" {
		orderDate = time.Now().Format("2006-01-02")
	}
	requiredDate := question(reader, "Required delivery date (YYYY-MM-DD): ")

	items, err := collectItems(ctx, client, reader)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if len(items) == 0 {
		fmt.Println("No items entered. Order not created.")
		return
	}

	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.RequestedQuantity.Mul(item.UnitPrice))
	}
	total = total.Round(2)
	fmt.Printf("\nTotal order amount: $%s\n", total.StringFixed(2))

	if !confirm(reader, "\nCreate this order? (y/n): ") {
		fmt.Println("\nOrder creation cancelled.")
		return
	}

	id, err := client.CreateOrder(ctx, demo.Order{
		CustomerID:   customerID,
		OrderDate:    orderDate,
		RequiredDate: requiredDate,
		TotalAmount:  total,
		Status:       "pending",
		OrderItems:   items,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "\nFailed to create order: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("\nOrder created successfully! Order ID: %d\n", id)
}

// resolveCustomer finds an existing customer by email or creates a new one.
func resolveCustomer(ctx context.Context, client *demo.Client, reader *bufio.Reader) (int64, error) {
	fmt.Println("--- Customer Information ---")
	choice := question(reader, "Do you want to: (1) Use existing customer (2) Create new customer: ")

	if choice == "1" {
		email := question(reader, "Enter customer email: ")
		customer, err := client.FindCustomerByEmail(ctx, email)
		if err != nil {
			return 0, err
		}
		if customer != nil {
			fmt.Printf("Customer found: %s (ID: %d)\n", customer.Name, customer.CustomerID)
			return customer.CustomerID, nil
		}
		fmt.Println("Customer not found with that email. Let's create a new one.")
	}

	fmt.Println("\nCreating a new customer:")
	name := question(reader, "Enter customer name: ")
	email := question(reader, "Enter customer email: ")
	phone := question(reader, "Enter customer phone: ")

	id, err := client.CreateCustomer(ctx, name, email, phone)
	if err != nil {
		return 0, err
	}
	fmt.Printf("Customer created successfully! ID: %d\n", id)
	return id, nil
}

// collectItems prompts for line items until the user stops adding them.
func collectItems(ctx context.Context, client *demo.Client, reader *bufio.Reader) ([]demo.OrderItem, error) {
	fmt.Println()
	fmt.Println("--- Order Items ---")

	var items []demo.OrderItem
	for {
		products, err := client.ListProducts(ctx)
		if err != nil {
			return nil, fmt.Errorf("fetch products: %w", err)
		}

		fmt.Println("\nAvailable Products:")
		for _, p := range products {
			fmt.Printf("ID: %d, Name: %s, Unit: %s\n", p.ProductID, p.ProductName, p.PackUnit)
		}

		productID, err := strconv.ParseInt(question(reader, "Enter product ID: "), 10, 64)
		if err != nil {
			fmt.Println("Invalid product ID.")
			continue
		}

		qty, err := decimal.NewFromString(question(reader, "Enter quantity: "))
		if err != nil || !qty.IsPositive() {
			fmt.Println("Invalid quantity.")
			continue
		}

		price, err := decimal.NewFromString(question(reader, "Enter unit price: "))
		if err != nil || price.IsNegative() {
			fmt.Println("Invalid price.")
			continue
		}

		items = append(items, demo.OrderItem{
			ProductID:         productID,
			RequestedQuantity: qty,
			UnitPrice:         price,
		})

		if !confirm(reader, "Add another item? (y/n): ") {
			return items, nil
		}
	}
}

func question(reader *bufio.Reader, prompt string) string {
	fmt.Print(prompt)
	raw, _ := reader.ReadString('\n')
	return strings.TrimSpace(raw)
}

func confirm(reader *bufio.Reader, prompt string) bool {
	return strings.ToLower(question(reader, prompt)) == "y"
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
