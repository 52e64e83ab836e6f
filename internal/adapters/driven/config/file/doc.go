// Package file provides the TOML configuration store.
//
// Settings live in ~/.estix/config.toml as nested tables:
//
//	[export]
//	include_photos = true
//	output_dir = "exports"
//
//	[import]
//	max_bytes = 10485760
//
// and are addressed with dot keys such as "export.include_photos".
package file
