// Package services defines shared utilities consumed by the pipeline stages
// and the wrappers around external audio tools.
//
// Key responsibilities:
//   - Context helpers that stamp run IDs, stage names, and image names for
//     logging.
//   - Structured error markers plus the Wrap helper so callers can tell a
//     missing tool from a failed process, a filesystem problem, or an empty
//     input directory.
//
// The tool wrappers live in subpackages (shntool, metaflac, wavpack). Use
// them instead of ad-hoc exec.Command calls so failures carry the same markers.
package services
