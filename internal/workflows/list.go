package workflows

import (
	"context"
	"errors"

	"github.com/keyfold/keyfold/internal/engine"
	kerrors "github.com/keyfold/keyfold/internal/errors"
	"github.com/keyfold/keyfold/internal/secrets"
)

// KeychainInfo describes one keychain in a listing.
type KeychainInfo struct {
	// Name is the keychain name.
	Name string

	// Active is true for the keychain Resolve() selects.
	Active bool

	// Identity is the current recipient identity, empty when the
	// credential is missing or ambiguous.
	Identity engine.Identity

	// KeyCount is the number of stored secrets.
	KeyCount int
}

// ListOptions configures the list workflow.
type ListOptions struct {
	// Keys additionally lists the key names of the active keychain.
	Keys bool
}

// ListResult contains the outcome of a list operation.
type ListResult struct {
	// Keychains holds one entry per keychain, sorted by name.
	Keychains []KeychainInfo

	// Active is the resolved active keychain, empty when none exist.
	Active string

	// FellBack is true when no default pointer exists and the active
	// keychain was chosen by scan order.
	FellBack bool

	// Keys holds the active keychain's key names when requested.
	Keys []string
}

// List enumerates keychains, marking the active one. An empty store is a
// valid listing, not an error; a dangling default pointer is surfaced.
func List(ctx context.Context, env *Env, opts ListOptions) (*ListResult, error) {
	names, err := env.Store.Keychains()
	if err != nil {
		return nil, err
	}

	result := &ListResult{}
	if len(names) == 0 {
		return result, nil
	}

	active, fellBack, err := env.Store.Resolve()
	if err != nil {
		if errors.Is(err, kerrors.ErrNoKeychains) {
			return result, nil
		}
		return nil, err
	}
	result.Active = active
	result.FellBack = fellBack

	for _, name := range names {
		info := KeychainInfo{Name: name, Active: name == active}

		// A broken credential state must not break the listing.
		if id, err := secrets.LookupCredential(env.Store, name); err == nil {
			info.Identity = id
		}

		keys, err := env.Store.ListKeys(name)
		if err != nil {
			return nil, err
		}
		info.KeyCount = len(keys)

		result.Keychains = append(result.Keychains, info)

		if opts.Keys && info.Active {
			result.Keys = keys
		}
	}

	return result, nil
}
