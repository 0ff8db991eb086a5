package model

// Package model defines domain data structures used across the app:
// download requests, job state snapshots, search results, format presets,
// and status enums. Values cross the background/presentation boundary and
// are designed to be copied, not shared.
