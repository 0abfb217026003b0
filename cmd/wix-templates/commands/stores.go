package commands

import (
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/wix-templates/internal/constants"
	"github.com/fivetwenty-io/wix-templates/pkg/wix"
)

// wixStoresAppID identifies Wix Stores products in cart catalog references.
const wixStoresAppID = "1380b703-ce81-ff05-f115-39571d94dfcd"

// NewStoresCommand creates the stores command group.
func NewStoresCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "stores",
		Aliases: []string{"store"},
		Short:   "Browse products and manage carts",
		Long:    "Query Wix Stores products and create or fill carts on the configured site",
	}

	cmd.AddCommand(newStoresProductsCommand())
	cmd.AddCommand(newStoresProductCommand())
	cmd.AddCommand(newStoresCartCommand())

	return cmd
}

func newStoresProductsCommand() *cobra.Command {
	var (
		limit  int
		offset int
	)

	cmd := &cobra.Command{
		Use:   "products",
		Short: "List products",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cmd.Context(), func(client wix.Client) error {
				result, err := client.Stores().GetProducts(cmd.Context(), queryOptions(limit, offset))
				if err != nil {
					return fmt.Errorf("failed to query products: %w", err)
				}

				return renderOutput(cmd.OutOrStdout(), result, func(w io.Writer) error {
					return displayProductsTable(w, result.Products)
				})
			})
		},
	}

	cmd.Flags().IntVar(&limit, "limit", constants.DefaultPageSize, "maximum number of products")
	cmd.Flags().IntVar(&offset, "offset", 0, "number of products to skip")

	return cmd
}

func newStoresProductCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "product PRODUCT_ID",
		Short: "Get product details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cmd.Context(), func(client wix.Client) error {
				product, err := client.Stores().GetProduct(cmd.Context(), args[0])
				if err != nil {
					return fmt.Errorf("failed to get product: %w", err)
				}

				return renderOutput(cmd.OutOrStdout(), product, func(w io.Writer) error {
					return displayProductDetails(w, product)
				})
			})
		},
	}
}

func displayProductsTable(w io.Writer, products []wix.Product) error {
	if len(products) == 0 {
		_, err := fmt.Fprintln(w, "No products found")

		return err
	}

	table := tablewriter.NewWriter(w)
	table.Header("ID", "Name", "Price", "In Stock")

	for _, product := range products {
		_ = table.Append([]string{
			product.ID,
			product.Name,
			formatPrice(product.PriceData),
			formatInStock(product.InStock),
		})
	}

	return renderTable(table)
}

func displayProductDetails(w io.Writer, product *wix.Product) error {
	table := tablewriter.NewWriter(w)
	table.Header("Property", "Value")

	_ = table.Append([]string{"ID", product.ID})
	_ = table.Append([]string{"Name", product.Name})
	_ = table.Append([]string{"Slug", orNotAvailable(product.Slug)})
	_ = table.Append([]string{"SKU", orNotAvailable(product.SKU)})
	_ = table.Append([]string{"Type", orNotAvailable(product.ProductType)})
	_ = table.Append([]string{"Price", formatPrice(product.PriceData)})
	_ = table.Append([]string{"In Stock", formatInStock(product.InStock)})
	_ = table.Append([]string{"Description", truncate(orNotAvailable(product.Description), constants.DescriptionDisplayLength)})

	return renderTable(table)
}

func formatInStock(inStock bool) string {
	if inStock {
		return constants.CheckMarkSymbol
	}

	return constants.None
}

func newStoresCartCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cart",
		Short: "Manage carts",
	}

	cmd.AddCommand(newStoresCartCreateCommand())
	cmd.AddCommand(newStoresCartAddCommand())

	return cmd
}

func newStoresCartCreateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "create",
		Short: "Create an empty cart",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cmd.Context(), func(client wix.Client) error {
				cart, err := client.Stores().CreateCart(cmd.Context())
				if err != nil {
					return fmt.Errorf("failed to create cart: %w", err)
				}

				return renderOutput(cmd.OutOrStdout(), cart, func(w io.Writer) error {
					return displayCart(w, cart)
				})
			})
		},
	}
}

func newStoresCartAddCommand() *cobra.Command {
	var (
		quantity int
		appID    string
	)

	cmd := &cobra.Command{
		Use:   "add CART_ID PRODUCT_ID",
		Short: "Add a product to a cart",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if quantity <= 0 {
				return fmt.Errorf("%w: %d", constants.ErrInvalidQuantity, quantity)
			}

			items := []wix.LineItem{{
				CatalogReference: wix.CatalogReference{CatalogItemID: args[1], AppID: appID},
				Quantity:         quantity,
			}}

			return withClient(cmd.Context(), func(client wix.Client) error {
				cart, err := client.Stores().AddToCart(cmd.Context(), args[0], items)
				if err != nil {
					return fmt.Errorf("failed to add to cart: %w", err)
				}

				return renderOutput(cmd.OutOrStdout(), cart, func(w io.Writer) error {
					return displayCart(w, cart)
				})
			})
		},
	}

	cmd.Flags().IntVarP(&quantity, "quantity", "q", 1, "quantity to add")
	cmd.Flags().StringVar(&appID, "app-id", wixStoresAppID, "catalog app ID of the product")

	return cmd
}

func displayCart(w io.Writer, cart *wix.Cart) error {
	_, err := fmt.Fprintf(w, "Cart: %s\n", cart.ID)
	if err != nil {
		return err
	}

	if len(cart.LineItems) == 0 {
		_, err = fmt.Fprintln(w, "Cart is empty")

		return err
	}

	table := tablewriter.NewWriter(w)
	table.Header("Item", "Product", "Quantity", "Price")

	for _, item := range cart.LineItems {
		price := constants.NotAvailable
		if item.Price != nil {
			price = formatPrice(&wix.Price{Price: item.Price.Amount, Currency: item.Price.Currency, Formatted: item.Price})
		}

		_ = table.Append([]string{
			orNotAvailable(item.ID),
			orNotAvailable(item.ProductName),
			strconv.Itoa(item.Quantity),
			price,
		})
	}

	return renderTable(table)
}
