// Package logging builds the slog loggers subclean writes diagnostics with.
//
// The console format prints one header per record, lifting the component,
// run id, dedupe pass and entry number out of the attribute list, and
// colours the level only on a terminal. The json format emits ts/level/msg
// objects. A configured log file always receives the JSON form as well.
package logging
