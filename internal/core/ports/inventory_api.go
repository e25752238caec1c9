package ports

import "context"

// InventoryAPI is the subset of the external inventory REST API the console
// calls. Implementations attach the caller's bearer token themselves.
type InventoryAPI interface {
	Login(ctx context.Context, username, password string) (string, error)
	// List decodes GET /<resource> into out.
	List(ctx context.Context, resource string, out any) error
	// Get decodes GET <path> into out.
	Get(ctx context.Context, path string, out any) error
	Patch(ctx context.Context, path string, body, out any) error
}

// APIFactory binds an InventoryAPI to a token source, usually the session
// store of the current browser.
type APIFactory func(tokens func(ctx context.Context) string) InventoryAPI
