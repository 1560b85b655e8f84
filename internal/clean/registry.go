package clean

import (
	"context"

	"github.com/lakshaymaurya-felt/pcclean/internal/progress"
	"github.com/lakshaymaurya-felt/pcclean/internal/registry"
)

// scanRegistry converts registry issues to items.
func scanRegistry(ctx context.Context, rep progress.Reporter) ([]Item, error) {
	issues, err := registry.Scan(ctx, rep)
	if err != nil {
		return nil, err
	}
	return registryItems(issues), nil
}

func registryItems(issues []registry.Issue) []Item {
	items := make([]Item, 0, len(issues))
	for _, is := range issues {
		items = append(items, Item{
			Path:        is.Key,
			Name:        is.Value,
			Category:    CategoryRegistry,
			Description: is.Problem + ": " + is.Data,
			Kind:        KindRegistry,
		})
	}
	return items
}
