// Package notify pushes run-status notifications to an ntfy topic.
//
// Notifications cover run completion, run failure, and detail-page links the
// register answered 404 for. The notifier is optional: with no topic URL
// configured, publishing is a logged no-op.
package notify
