package platform

// Package platform contains OS/platform integration glue: filesystem
// helpers, transcoder discovery, and OS open/reveal of the destination
// folder.
