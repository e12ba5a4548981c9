// Package aggregator merges tasks materialized from connected external
// systems into the common task shape. Results are recomputed on every call;
// nothing is cached or persisted.
package aggregator

import (
	"context"
	"log"
	"sort"
	"sync"

	integrationdomain "kanflow-backend/internal/integration/domain"
	integrationrepo "kanflow-backend/internal/integration/repository"
	taskdomain "kanflow-backend/internal/task/domain"
	"kanflow-backend/pkg/providers"
)

// Source is one external system the aggregator can pull items from.
type Source interface {
	// Provider returns the provider definition this source serves
	Provider() integrationdomain.Provider

	// Fetch pulls the provider's items using its stored config
	Fetch(ctx context.Context, config map[string]string) ([]providers.Item, error)
}

// Aggregator fans out to every connected source and concatenates the results.
type Aggregator struct {
	sources   []Source
	blacklist integrationrepo.BlacklistRepository
}

// New creates an aggregator over the given sources.
func New(blacklist integrationrepo.BlacklistRepository, sources ...Source) *Aggregator {
	return &Aggregator{sources: sources, blacklist: blacklist}
}

// ListExternalTasks fetches from every connected, fully configured provider
// in parallel and returns the union, ordered by the provider position
// sentinels. A failing provider is logged and skipped; it never aborts the
// others, so the result is a best-effort union and this method has no error
// return. Hidden ids are filtered out.
func (a *Aggregator) ListExternalTasks(ctx context.Context, registry integrationdomain.Registry) []taskdomain.Task {
	hidden := map[string]bool{}
	if a.blacklist != nil {
		ids, err := a.blacklist.Get()
		if err != nil {
			log.Printf("[Aggregator] Failed to read hidden tasks: %v", err)
		}
		for _, id := range ids {
			hidden[id] = true
		}
	}

	var (
		mu    sync.Mutex
		tasks []taskdomain.Task
		wg    sync.WaitGroup
	)

	for _, source := range a.sources {
		p := source.Provider()
		entry, ok := registry[p.Key]
		if !ok || !entry.Connected || !p.HasRequiredConfig(entry.Config) {
			continue
		}

		wg.Add(1)
		go func(source Source, p integrationdomain.Provider, config map[string]string) {
			defer wg.Done()

			items, err := source.Fetch(ctx, config)
			if err != nil {
				log.Printf("[Aggregator] %s fetch failed, skipping: %v", p.Key, err)
				return
			}

			mapped := make([]taskdomain.Task, 0, len(items))
			for _, item := range items {
				task := mapItem(p, item)
				if hidden[task.ID] {
					continue
				}
				mapped = append(mapped, task)
			}

			mu.Lock()
			tasks = append(tasks, mapped...)
			mu.Unlock()
		}(source, p, entry.Config)
	}
	wg.Wait()

	// Provider completion order is arbitrary; the sentinels give externals
	// a stable relative order (meetings first).
	sort.SliceStable(tasks, func(i, j int) bool {
		if tasks[i].Position != tasks[j].Position {
			return tasks[i].Position < tasks[j].Position
		}
		return tasks[i].ID < tasks[j].ID
	})
	return tasks
}

func mapItem(p integrationdomain.Provider, item providers.Item) taskdomain.Task {
	return taskdomain.Task{
		ID:             p.Prefix + item.ID,
		UserID:         p.Key,
		Title:          item.Title,
		Description:    item.Description,
		Status:         taskdomain.StatusTodo,
		Priority:       taskdomain.PriorityMedium,
		DueDate:        item.DueDate,
		Position:       p.Position,
		IsExternal:     true,
		ExternalSource: p.DisplayName,
		ExternalURL:    item.URL,
	}
}
