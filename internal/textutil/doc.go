// Package textutil provides text helpers for turning tag values into safe
// file name components.
package textutil
