package cli

import (
	"context"
	"fmt"
)

func (a *App) list(ctx context.Context) {
	if !a.requireLogin() {
		return
	}

	result, err := a.api.ListIndexSets(ctx, 0, 0)
	if err != nil {
		fmt.Fprintf(a.out, "Error: %s\n", err.Error())
		return
	}

	fmt.Fprintf(a.out, "%d index set(s):\n", result.Count)
	for _, s := range result.IndexSets {
		marker := " "
		if s.Default {
			marker = "*"
		}
		fmt.Fprintf(a.out, "%s %-36s  %-30s  prefix=%s\n", marker, s.ID, s.Title, s.IndexPrefix)
	}
}
