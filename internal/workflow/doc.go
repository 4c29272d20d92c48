// Package workflow drives a single cuesplit run over one directory.
//
// Manager.Run executes the pipeline in order: tool preflight, directory lock,
// WavPack unpacking, scanning, matching, then split, tag, and rename for each
// pair. Everything runs sequentially on the caller's goroutine.
//
// Failures are split into two classes. A missing tool or decoder aborts the
// run and is returned as the error from Run. Any other failure is scoped to
// the pair or WavPack file it happened on: it is logged, recorded in the
// Report and the history database, and the run moves on. Report.OK tells the
// caller whether every unit of work succeeded.
package workflow
