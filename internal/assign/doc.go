// Package assign pairs participants with a random permutation of roles.
//
// The engine is a pure transformation over two input lists. Randomness comes
// from an injected Shuffler so callers can pin a seed and assert exact draws.
package assign
