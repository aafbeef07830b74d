// Package load reads YAML and JSON files into layer documents.
//
// Loading sits outside the engine proper: the merge engine only ever sees
// node trees. This package exists so the command line tool and tests can
// drive the engine from files. It records the line and column of every
// node so diagnostics can point back into the sources.
package load
