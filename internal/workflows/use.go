package workflows

import (
	"context"
)

// UseOptions configures the use workflow.
type UseOptions struct {
	// Name is the keychain to make the default.
	Name string
}

// UseResult contains the outcome of switching the default keychain.
type UseResult struct {
	// Name is the new default keychain.
	Name string
}

// Use atomically repoints the default pointer at the named keychain. On a
// not-found error the command layer lists known keychains to aid the
// caller.
func Use(ctx context.Context, env *Env, opts UseOptions) (*UseResult, error) {
	if err := env.Store.SetDefault(opts.Name); err != nil {
		return nil, err
	}
	return &UseResult{Name: opts.Name}, nil
}
