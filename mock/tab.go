package mock

import (
	"context"

	"github.com/fwojciec/llmfeeder"
)

var _ llmfeeder.TabLoader = (*TabLoader)(nil)

// TabLoader is a mock implementation of llmfeeder.TabLoader.
type TabLoader struct {
	LoadFn func(ctx context.Context, url string) (*llmfeeder.Tab, error)
}

func (l *TabLoader) Load(ctx context.Context, url string) (*llmfeeder.Tab, error) {
	return l.LoadFn(ctx, url)
}
