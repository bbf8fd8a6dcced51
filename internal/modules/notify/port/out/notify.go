package out

import (
	"context"

	"worklog/internal/modules/notify/domain"
)

type ManifestStore interface {
	Load(ctx context.Context) ([]domain.Manifest, error)
}

type Host interface {
	CheckLifecycle(ctx context.Context, manifest domain.Manifest) error
	GetMetadata(ctx context.Context, manifest domain.Manifest) (domain.Metadata, error)
	Notify(ctx context.Context, manifest domain.Manifest, message domain.Message) error
	Render(ctx context.Context, manifest domain.Manifest, layoutJSON string) ([]byte, error)
}
