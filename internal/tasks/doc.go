// Package tasks runs long video operations with real-time progress reporting.
//
// # Bulk Import
//
// [UploadEngine.Import] uploads every video file in a directory to one course:
//
//  1. Scan : walk the directory and collect files with an accepted extension
//  2. Upload : a worker pool uploads each file through an [Uploader], paced by a rate limiter
//  3. Manifest : optionally write a JSON summary of the per-file results
//
// Titles are derived from file names ("linked_lists-part-2.mp4" becomes "linked lists part 2").
// A failed file never stops the batch; its error is recorded in the result.
//
// # Progress Reporting
//
// All operations use non-blocking channels for progress updates.
//
// The [ProgressUpdate] struct contains phase, step counters, messages, and optional data for advanced UI rendering.
// Updates use select with default to prevent blocking.
package tasks
