package textutil

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// fileNameReplacer replaces filesystem-unsafe characters with spaces.
var fileNameReplacer = strings.NewReplacer(
	"\"", " ",
	":", " ",
	"`", " ",
	"~", " ",
	"?", " ",
	"*", " ",
	"|", " ",
	"\\", " ",
	"/", " ",
	",", " ",
	"{", " ",
	"}", " ",
	"<", " ",
	">", " ",
)

// SanitizeFileName replaces every character of `" : ` + "`" + ` ~ ? * | \ / , { } < >`
// in name with a space. The input is normalized to Unicode NFC first so
// decomposed tag values produce the same file names as composed ones.
// Spaces are not collapsed or trimmed, which keeps the function idempotent.
func SanitizeFileName(name string) string {
	if name == "" {
		return ""
	}
	return fileNameReplacer.Replace(norm.NFC.String(name))
}

// TrackFileName builds the "<number> - <artist> - <title>.flac" name for a
// split track. Artist and title are sanitized; the track number is used as-is.
func TrackFileName(number, artist, title string) string {
	return number + " - " + SanitizeFileName(artist) + " - " + SanitizeFileName(title) + ".flac"
}
