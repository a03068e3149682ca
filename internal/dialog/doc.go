// Package dialog turns one user turn into one reply.
//
// The Dispatcher parses the utterance, calls the matching store operation and
// renders a reply in Russian. Every failure (unparseable arguments, a missing
// or duplicate recipe, a storage error) becomes a fixed guidance string; no
// error ever leaves Handle. Storage errors are logged, never shown.
//
// The Dispatcher keeps no state between turns beyond what the store persists,
// so one instance serves concurrent turns.
package dialog
