package ports

import "context"

// BackgroundWorker — фоновый компонент приложения (консьюмер заданий, релей планировщика).
type BackgroundWorker interface {
	Run(ctx context.Context) error
	Close() error
}
