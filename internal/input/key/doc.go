// Package key models key combinations and multi-press chains for the
// engine's binding layer.
//
// A Combination is one press: a key identity, a modifier mask, and the
// namespace the identity lives in. The same physical press is visible under
// two identities: a layout-dependent key code ("a") and a layout-independent
// scan code ("sc_a"); bindings may target either.
//
// The Any modifier is a wildcard: a combination carrying it matches the key
// under every modifier mask. A Chain strings combinations together into a
// multi-press shortcut whose trailing element keys the binding tables.
//
// Name resolution goes through a Registry, which layers user-defined key
// symbols over the built-in tables for both namespaces.
package key
