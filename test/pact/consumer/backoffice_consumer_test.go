//go:build pact
// +build pact

package consumer_test

import (
	"context"
	"fmt"
	"net/http"
	"testing"
	"time"

	pactconsumer "github.com/pact-foundation/pact-go/v2/consumer"
	pactlog "github.com/pact-foundation/pact-go/v2/log"
	"github.com/pact-foundation/pact-go/v2/matchers"
	"github.com/stretchr/testify/require"

	"github.com/Apurer/go-gin-backoffice/internal/client/backoffice"
	pacttest "github.com/Apurer/go-gin-backoffice/test/pact"
)

func TestBackofficeClientContract(t *testing.T) {
	pactlog.SetLogLevel("INFO")

	pact, err := pactconsumer.NewV2Pact(pactconsumer.MockHTTPProviderConfig{
		Consumer: pacttest.ConsumerName,
		Provider: pacttest.ProviderName,
		PactDir:  pacttest.PactDir(t),
		LogDir:   pacttest.LogDir(t),
	})
	require.NoError(t, err)

	jsonContentType := matchers.Regex("application/json; charset=utf-8", "application\\/json(?:;\\s?charset=utf-8)?")
	productMatcher := matchers.Map{
		"id":         matchers.Like(pacttest.ExistingProductID),
		"name":       matchers.Like(pacttest.ExampleProductName),
		"price":      matchers.Like(pacttest.ExampleProductPrice),
		"created_at": matchers.Like("2024-06-12T10:00:00Z"),
		"updated_at": matchers.Like("2024-06-12T10:00:00Z"),
	}

	pact.AddInteraction().
		Given(pacttest.StateProductsBaseline).
		UponReceiving("a request to create a product").
		WithRequest("POST", "/api", func(b *pactconsumer.V2RequestBuilder) {
			b.Query("endpoint", matchers.S("products"))
			b.Header("Content-Type", matchers.S("application/json"))
			b.JSONBody(matchers.Map{
				"name":  matchers.S(pacttest.ExampleProductName),
				"price": matchers.Like(pacttest.ExampleProductPrice),
			})
		}).
		WillRespondWith(http.StatusCreated, func(b *pactconsumer.V2ResponseBuilder) {
			b.Header("Content-Type", jsonContentType)
			b.JSONBody(matchers.Map{
				"message": matchers.S("Produit ajouté"),
				"id":      matchers.Like(int64(1)),
			})
		})

	pact.AddInteraction().
		Given(pacttest.StateProductExists).
		UponReceiving("a request to list products").
		WithRequest("GET", "/api", func(b *pactconsumer.V2RequestBuilder) {
			b.Query("endpoint", matchers.S("products"))
		}).
		WillRespondWith(http.StatusOK, func(b *pactconsumer.V2ResponseBuilder) {
			b.Header("Content-Type", jsonContentType)
			b.JSONBody(matchers.EachLike(productMatcher, 1))
		})

	pact.AddInteraction().
		Given(pacttest.StateProductExists).
		UponReceiving("a request to fetch an existing product").
		WithRequest("GET", "/api", func(b *pactconsumer.V2RequestBuilder) {
			b.Query("endpoint", matchers.S(fmt.Sprintf("products/%d", pacttest.ExistingProductID)))
		}).
		WillRespondWith(http.StatusOK, func(b *pactconsumer.V2ResponseBuilder) {
			b.Header("Content-Type", jsonContentType)
			b.JSONBody(productMatcher)
		})

	pact.AddInteraction().
		Given(pacttest.StateProductMissing).
		UponReceiving("a request for a missing product").
		WithRequest("GET", "/api", func(b *pactconsumer.V2RequestBuilder) {
			b.Query("endpoint", matchers.S(fmt.Sprintf("products/%d", pacttest.MissingProductID)))
		}).
		WillRespondWith(http.StatusNotFound, func(b *pactconsumer.V2ResponseBuilder) {
			b.Header("Content-Type", jsonContentType)
			b.JSONBody(matchers.Map{"error": matchers.S("Produit introuvable")})
		})

	pact.AddInteraction().
		Given(pacttest.StateOrderExists).
		UponReceiving("a request to overwrite an order").
		WithRequest("PUT", "/api", func(b *pactconsumer.V2RequestBuilder) {
			b.Query("endpoint", matchers.S(fmt.Sprintf("orders/%d", pacttest.ExistingOrderID)))
			b.Header("Content-Type", matchers.S("application/json"))
			b.JSONBody(matchers.Map{
				"product_id": matchers.Like(pacttest.ExistingProductID),
				"quantity":   matchers.Like(pacttest.ExampleQuantity),
			})
		}).
		WillRespondWith(http.StatusOK, func(b *pactconsumer.V2ResponseBuilder) {
			b.Header("Content-Type", jsonContentType)
			b.JSONBody(matchers.Map{"message": matchers.S("Commande mise à jour")})
		})

	err = pact.ExecuteTest(t, func(config pactconsumer.MockServerConfig) error {
		host := config.Host
		if host == "" {
			host = "localhost"
		}
		client, err := backoffice.New(fmt.Sprintf("http://%s:%d/api", host, config.Port),
			backoffice.WithHTTPClient(&http.Client{Transport: &http.Transport{TLSClientConfig: config.TLSConfig}}),
			backoffice.WithTimeout(5*time.Second),
		)
		if err != nil {
			return err
		}
		ctx := context.Background()

		created, err := client.Products().Create(ctx, backoffice.ProductInput{
			Name:  pacttest.ExampleProductName,
			Price: pacttest.ExampleProductPrice,
		})
		if err != nil {
			return fmt.Errorf("create product: %w", err)
		}
		if created.ID == 0 {
			return fmt.Errorf("expected created product id to be set")
		}

		products, err := client.Products().GetAll(ctx)
		if err != nil {
			return fmt.Errorf("list products: %w", err)
		}
		if len(products) == 0 {
			return fmt.Errorf("expected at least one product")
		}

		product, err := client.Products().GetByID(ctx, pacttest.ExistingProductID)
		if err != nil {
			return fmt.Errorf("get product: %w", err)
		}
		if product.ID != pacttest.ExistingProductID {
			return fmt.Errorf("expected product id %d, got %d", pacttest.ExistingProductID, product.ID)
		}

		if _, err := client.Products().GetByID(ctx, pacttest.MissingProductID); !backoffice.IsNotFound(err) {
			return fmt.Errorf("expected 404 for product %d, got %v", pacttest.MissingProductID, err)
		}

		if _, err := client.Orders().Update(ctx, pacttest.ExistingOrderID, backoffice.OrderInput{
			ProductID: pacttest.ExistingProductID,
			Quantity:  pacttest.ExampleQuantity,
		}); err != nil {
			return fmt.Errorf("update order: %w", err)
		}
		return nil
	})
	require.NoError(t, err)
}
