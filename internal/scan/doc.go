// Package scan enumerates the work in a target directory.
//
// Unpack decodes WavPack files first so that the WAV image and CUE sheet they
// carry are picked up by Collect. Collect then classifies the top-level files
// of the directory into CUE sheets and images. Extensions are compared
// case-insensitively and subdirectories are never descended into, so output
// directories from earlier runs are not rescanned.
package scan
