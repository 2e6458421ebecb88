// Command subclean removes rolling duplicate caption lines from SRT files.
//
// The root command takes exactly two positional arguments, the input and
// output paths, and prints a short summary on stdout. Logs go to stderr so
// scripts can rely on stdout. The config and history subcommands manage the
// optional TOML configuration and the SQLite run history; an existing file
// with one of those names is still treated as an input path.
package main
