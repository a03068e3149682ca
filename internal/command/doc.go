// Package command classifies a free-text utterance into one typed Command.
//
// Classification walks an ordered table of trigger phrases and the first
// trigger found in the utterance wins, so more specific triggers precede
// general ones. Triggers are matched case-insensitively; arguments are cut
// from the original text so recipe names keep the case they were said in.
//
// Parse never fails for unrecognized input: it returns an Unknown command.
// It fails with a *ParseError only when a trigger matched but the arguments
// that command needs are missing.
package command
