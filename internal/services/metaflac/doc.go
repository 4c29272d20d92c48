// Package metaflac reads Vorbis comment tags from FLAC files by running the
// metaflac program from the flac package, one subprocess per tag.
package metaflac
