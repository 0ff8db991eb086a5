package engine

// Package engine defines the boundary to the external media extraction and
// download engine, and provides the yt-dlp backed implementation. The rest
// of the app depends on the Engine interface only.
