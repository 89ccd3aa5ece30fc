// Package commands defines the paperdesk CLI.
//
// Commands
//
//   - upload      Validate local files and submit them as one batch
//   - shell       Interactive upload view (pick, drop, ls, rm, clear, submit)
//   - papers      List processed papers
//   - review      Generate a literature review for a paper
//   - citations   Print formatted citations for a paper
//   - history     Show recent submissions from the Postgres ledger
//   - stub        Run a local stand-in backend
//
// The root command loads configuration and builds the backend client and the
// optional submission ledger before any subcommand runs.
package commands
