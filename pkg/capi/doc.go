// Package capi provides the types, interfaces, and error taxonomy shared by the
// admin console core.
//
// # Overview
//
// The core mediates between an administrative console and a platform control
// plane. It has three layers:
//
//   - a ResourceClient that performs authenticated list, put and delete calls
//     and drains both cursor-style (next_url) and offset-style
//     (totalResults/startIndex) pagination;
//   - a password-grant token manager that discovers the identity service from
//     the control plane's /info document and re-logs in once when a request
//     comes back 401;
//   - Operations that resolve an application or route by name, issue the
//     lifecycle command, and then poll a StatusSource (the eventually
//     consistent runtime-state snapshot) until the change is observed.
//
// Getting a client
//
//	import (
//	  "context"
//	  "log"
//
//	  "github.com/fivetwenty-io/capi-admin/pkg/capi"
//	  "github.com/fivetwenty-io/capi-admin/pkg/cfclient"
//	)
//
//	func example(status capi.StatusSource) {
//	  ctx := context.Background()
//	  admin, err := cfclient.New(ctx, &capi.Config{
//	    APIEndpoint: "https://api.example.com",
//	    Username:    "admin",
//	    Password:    "secret",
//	  }, status)
//	  if err != nil { log.Fatal(err) }
//
//	  result, err := admin.ManageApplication(ctx, capi.CommandStop, "org", "space", "app")
//	  if err != nil { log.Fatal(err) }
//	  if result.Outcome == capi.OutcomeTimedOut {
//	    log.Print("stop issued, not yet observed")
//	  }
//	}
//
// # Errors
//
// ProtocolError, AuthenticationError and NotFoundError describe failures. A
// command whose convergence was not observed in time is not an error: it is
// reported as a Result with OutcomeTimedOut so that operators can tell it apart
// from a failed command.
package capi
