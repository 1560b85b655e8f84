package clean

import (
	"context"

	"github.com/lakshaymaurya-felt/pcclean/internal/dupes"
	"github.com/lakshaymaurya-felt/pcclean/internal/progress"
)

// ScanDuplicates finds duplicate files below root. Each item points at the
// file it duplicates through DuplicateOf. A root that cannot be scanned is
// returned as a *dupes.RootError.
func (s *Scanner) ScanDuplicates(ctx context.Context, root string, rep progress.Reporter) ([]Item, error) {
	finder := dupes.NewFinder(
		dupes.WithFs(s.fs),
		dupes.WithWorkers(s.settings.Duplicates.Workers),
		dupes.WithChunkSize(s.settings.Duplicates.ChunkSize),
		dupes.WithExclude(s.settings.Duplicates.Exclude),
		dupes.WithLogger(s.log),
	)

	found, err := finder.Find(ctx, root, rep)
	if err != nil {
		return nil, err
	}

	items := make([]Item, 0, len(found))
	for _, d := range found {
		items = append(items, Item{
			Path:        d.Path,
			Name:        d.Name,
			Size:        d.Size,
			Category:    CategoryDuplicates,
			Description: "Duplicate of " + d.DuplicateOf,
			DuplicateOf: d.DuplicateOf,
			Kind:        KindFile,
		})
	}
	return items, nil
}
