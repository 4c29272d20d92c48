// Package preflight verifies that cuesplit can run before any file is touched.
//
// Two kinds of check live here:
//   - Tool checks resolve the external programs on PATH. The core set is
//     always required; format decoders (mac, wvunpack) are required only when
//     the working set contains that format.
//   - Directory checks confirm the target is a readable, writable directory.
//
// The workflow runs the core tool check before scanning and aborts with
// services.ErrToolMissing when anything is missing. The CLI "cuesplit check"
// command renders every requirement, present or not.
package preflight
