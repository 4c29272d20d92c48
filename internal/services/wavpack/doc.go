// Package wavpack unpacks WavPack images with wvunpack so the resulting WAV
// file and extracted CUE sheet can be split like any other image.
package wavpack
