package watcher

import "context"

// Watcher monitors a drop directory and dispatches new video files.
type Watcher interface {
	Start(ctx context.Context) error
	Stop() error
}

// EventHandler processes one detected video file.
type EventHandler func(ctx context.Context, filePath string) error
