package download

// Package download implements the core download pipeline built on top of
// yt-dlp (via github.com/lrstanley/go-ytdlp): job orchestration with
// cooperative cancellation, translation of engine progress events into a
// normalized state stream, and post-cancellation cleanup of partial files.
