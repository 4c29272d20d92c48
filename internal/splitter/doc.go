// Package splitter turns one matched image and CUE sheet into tagged FLAC
// tracks inside a sibling directory named after the image.
//
// The split itself is delegated to the shntool client (cuebreakpoints piped
// into shnsplit, then cuetag). Renaming the resulting tracks from their tags
// is the organizer's job.
package splitter
