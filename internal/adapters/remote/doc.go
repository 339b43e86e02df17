// Package remote is the HTTP client for the list API served by `wishlist serve`.
// It is the remote list service the terminal UI reads from and mutates through.
package remote
