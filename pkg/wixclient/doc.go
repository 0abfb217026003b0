// Package wixclient provides the entry points for constructing the unified
// Wix client, a facade that groups the Wix headless APIs into five
// capability domains: CMS, Stores, Bookings, Events and Members.
//
// The facade forwards every call to a backend (any wix.Backend), logs
// backend failures once through the injected logger and returns them as
// *wix.OperationError values that name the failing operation.
//
// Quick start
//
//	import (
//	  "context"
//	  "log"
//
//	  "github.com/fivetwenty-io/wix-templates/pkg/wix"
//	  "github.com/fivetwenty-io/wix-templates/pkg/wixclient"
//	)
//
//	func example() {
//	  ctx := context.Background()
//
//	  // Visitor access with the headless OAuth client ID.
//	  cli, err := wixclient.NewREST(ctx, &wixclient.Config{
//	    ClientID: "your-client-id",
//	  })
//	  if err != nil { log.Fatal(err) }
//
//	  products, err := cli.Stores().GetProducts(ctx, wix.NewQueryOptions().WithLimit(10))
//	  if err != nil {
//	    // err reads "Stores.getProducts: <message>"
//	    log.Fatal(err)
//	  }
//	  _ = products
//	}
//
// Bring your own backend
//
// Init wraps any wix.Backend. A nil backend gives a facade whose every
// operation fails with wix.ErrUninitialized; use New to reject it up front.
//
//	cli := wixclient.Init(myBackend, wixclient.WithLogger(logger))
//	if !cli.Initialized() { ... }
//
// Errors
//
//   - wix.ErrUninitialized: the facade has no backend.
//   - wix.ErrOperationFailed: matched by errors.Is for every backend failure;
//     errors.As(err, &opErr) with *wix.OperationError gives the operation
//     context and message, errors.Unwrap gives the backend error.
//   - *wix.APIError: the REST backend's error for non-2xx responses.
package wixclient
