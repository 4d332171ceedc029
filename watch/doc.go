// Package watch reports changed files in debounced batches using fsnotify.
package watch
