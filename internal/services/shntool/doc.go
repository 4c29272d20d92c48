// Package shntool wraps the cuetools and shntool command-line programs that
// break a disc image into tracks and tag them from its CUE sheet.
//
// Split pipes `cuebreakpoints <cue>` into `shnsplit -d <dir> -o flac <image>`
// using absolute paths, so no working-directory change is ever needed. Tag
// runs `cuetag <cue> <tracks...>`. Failures are tagged with the services error
// markers: a binary that cannot be started is ErrToolMissing, a non-zero exit
// is ErrProcessFailed.
package shntool
