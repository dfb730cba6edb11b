// Package filesystem reads packs from local disk and watches pack
// directories for changes.
package filesystem
