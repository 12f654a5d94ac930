// Package cfclient builds the admin client: one transport, one password-grant
// token manager, a resource client for the control plane and identity
// service, and an operation controller that verifies lifecycle commands
// against a runtime-state snapshot.
//
// Quick start
//
//	store := varz.NewStore() // or any capi.StatusSource
//
//	cli, err := cfclient.New(ctx, &capi.Config{
//	  APIEndpoint: "api.example.com", // https:// is added
//	  Username:    "admin",
//	  Password:    "secret",
//	}, store)
//	if err != nil { log.Fatal(err) }
//
//	// Raw collection reads drain every page.
//	apps, err := cli.List(ctx, "v2/apps")
//	users, err := cli.ListIdentity(ctx, "Users")
//
//	// Lifecycle commands wait for the snapshot to agree.
//	result, err := cli.ManageApplication(ctx, capi.CommandRestart, "org", "space", "web")
//	if err == nil && result.Outcome == capi.OutcomeTimedOut {
//	  // the command was accepted but not yet observed
//	}
//
//	_, err = cli.ManageRoute(ctx, capi.CommandDelete, "www.example.com")
//
// The token endpoint is discovered from "<api>/info" on first use. A request
// rejected with 401 triggers exactly one re-login and one retry.
package cfclient
