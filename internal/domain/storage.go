package domain

import "context"

type FileStorage interface {
	Save(ctx context.Context, name string, data []byte) (string, error)
}
