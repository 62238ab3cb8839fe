// File path: internal/provider/provider.go
package provider

import "context"

// Provider fetches the free-form location string asserted for a username
// from the external lookup service. The found flag is false when the service
// authoritatively has nothing for the username; err covers transport
// failures and timeouts.
type Provider interface {
	FetchLocation(ctx context.Context, username string) (location string, found bool, err error)
	Name() string
}
