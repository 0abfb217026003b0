// Package wix provides types, interfaces, and helpers for working with the
// Wix headless business solutions used by the template catalog.
//
// # Overview
//
// The wix package defines the domain types (e.g., Product, Cart, Service,
// Event, Member), the Backend interfaces that a concrete Wix client must
// satisfy, and the Client interface of the unified facade that exposes the
// five capability domains (CMS, Stores, Bookings, Events, Members). A
// concrete facade is provided by the wixclient package.
//
// Getting a client
//
//	import (
//	  "context"
//	  "log"
//
//	  "github.com/fivetwenty-io/wix-templates/pkg/wixclient"
//	)
//
//	func example(backend wix.Backend) {
//	  ctx := context.Background()
//	  cli := wixclient.Init(backend)
//
//	  cart, err := cli.Stores().CreateCart(ctx)
//	  if err != nil { log.Fatal(err) }
//	  _ = cart
//	}
//
// # Errors
//
// Every facade operation fails with ErrUninitialized when the facade was
// built without a backend. Backend failures are returned as *OperationError
// whose message is "<Domain.operation>: <message>"; ErrorMessage documents how
// the message is extracted from an arbitrary failure value.
//
// # Shared configuration
//
// DefaultAPIConfig, the environment variable names, the supported frameworks
// and business solutions, and GetFrameworkConfig are shared by the CLI and
// the templates.
package wix
