package picker

import (
	"context"
	"strings"

	"github.com/mikanfactory/sagasu/internal/model"
	"github.com/mikanfactory/sagasu/internal/search"
)

// ContentSource re-runs the backing search engine for every reload.
// Smart case follows the live query because the argument vector is
// rebuilt per invocation.
type ContentSource struct {
	Config model.Config
	Runner search.Runner
}

func (s ContentSource) Reload(ctx context.Context, query string) ([]string, error) {
	if strings.TrimSpace(query) == "" {
		return nil, nil
	}
	out, err := s.Runner.Run(ctx, search.BuildArgs(s.Config, query)...)
	if err != nil {
		return nil, err
	}
	return search.Lines(out), nil
}

// GitSource filters a static aggregated listing. The listing is
// materialized once per session; filtering is a case-insensitive
// substring match, standing in for the external picker's own filtering.
type GitSource struct {
	Rows []string
}

func (s GitSource) Reload(_ context.Context, query string) ([]string, error) {
	if query == "" {
		return s.Rows, nil
	}

	needle := strings.ToLower(query)
	var rows []string
	for _, row := range s.Rows {
		if strings.Contains(strings.ToLower(row), needle) {
			rows = append(rows, row)
		}
	}
	return rows, nil
}
