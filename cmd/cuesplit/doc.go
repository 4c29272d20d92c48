// Command cuesplit splits single-file audio disc images into per-track FLAC
// files using their CUE sheets.
//
// Running "cuesplit [path]" processes every image/CUE pair in path (default:
// the current directory). Tracks land in a sibling directory named after the
// image and are renamed to "<number> - <artist> - <title>.flac" from their
// tags. Helper subcommands report tool availability (check), list earlier
// runs (history), and write a sample configuration (config init).
//
// The process exits 0 only when every pair and WavPack unpack succeeded.
package main
