// Package organizer gives split tracks their final names.
//
// Every track is renamed to "<TRACKNUMBER> - <ARTIST> - <TITLE>.flac" using
// the tags read back from the file with metaflac, so the names always agree
// with what cuetag wrote. Renames stay inside the track's directory. When two
// tracks resolve to the same name the later one replaces the earlier; a
// warning is logged but the pair does not fail.
//
// After renaming, Inspect reads the FLAC STREAMINFO block of each track to
// report its duration. Inspection is best effort and never fails a pair.
package organizer
