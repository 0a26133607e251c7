package workflows

import (
	"context"

	"github.com/keyfold/keyfold/internal/secrets"
)

// RefreshOptions configures the refresh workflow.
type RefreshOptions struct {
	// Keychain targets a specific keychain; empty means the active one.
	Keychain string

	// OnItem is called after each key completes, for progress reporting.
	OnItem func(secrets.ItemResult)
}

// RefreshResult contains the outcome of a refresh operation.
type RefreshResult struct {
	// Report is the per-item outcome summary.
	Report *secrets.RefreshReport
}

// Refresh re-encrypts every secret in a keychain under its current
// recipient identity, holding the keychain's advisory lock for the whole
// run. On partial failure the result still carries the report alongside
// the error.
func Refresh(ctx context.Context, env *Env, opts RefreshOptions) (*RefreshResult, error) {
	keychain, _, err := env.activeKeychain(opts.Keychain)
	if err != nil {
		return nil, err
	}

	release, err := env.Store.LockKeychain(keychain)
	if err != nil {
		return nil, err
	}
	defer release()

	report, err := secrets.Refresh(ctx, env.Store, env.Engine, keychain, opts.OnItem)
	if report == nil {
		return nil, err
	}
	return &RefreshResult{Report: report}, err
}
