// Package logging provides the leveled diagnostic sink used by the sorting
// engine and the vsort command. Components depend on the Logger interface;
// the default backend is zerolog, with a standard library adapter for callers
// that already own a *log.Logger.
//
// Logging never influences sort outcomes: every call is fire-and-forget.
package logging
