// Package matcher pairs CUE sheets with the images they describe.
//
// A CUE sheet and an image belong together when their base names (path with
// the extension removed) are equal. Inputs are processed in sorted order, the
// first matching image wins, and every further candidate is reported as an
// Ambiguity instead of being split twice.
package matcher
