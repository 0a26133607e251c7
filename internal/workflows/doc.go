// Package workflows contains the orchestration logic behind each keyfold
// command. Every workflow takes a context and an Env, resolves the active
// keychain once, threads it explicitly through the operation, and returns
// a result struct the command layer formats. There is no ambient
// "current keychain" state anywhere.
//
// Destructive workflows take a Confirm callback so automated callers opt
// out of prompting deterministically instead of depending on terminal
// behavior. Mutating, non-idempotent workflows (refresh, write, keygen)
// hold the keychain's advisory lock for their duration.
package workflows
