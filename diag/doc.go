// Package diag holds the diagnostics every stage of the engine reports.
//
// Stages never stop at the first problem. They add diagnostics to a Bag and
// carry on with a best-effort result, so one run surfaces everything. A
// diagnostic with SevError is fatal for the definition it is attached to,
// and a run with any fatal diagnostic has failed. Warnings are always
// reported but never fail a run.
//
// Bags are sorted for display by source, path and message.
package diag
