package cli

import (
	"context"
	"fmt"
)

// update fetches the current summary and prompts for new values; an empty
// line keeps the current one. Strategies are left untouched, use the API
// directly for those.
func (a *App) update(ctx context.Context, args []string) {
	if !a.requireLogin() {
		return
	}
	if len(args) == 0 {
		fmt.Fprintln(a.out, "Usage: update <id>")
		return
	}
	id := args[0]

	summary, err := a.api.GetIndexSet(ctx, id)
	if err != nil {
		fmt.Fprintf(a.out, "Error: %s\n", err.Error())
		return
	}

	title, err := getSimpleText(a.reader, fmt.Sprintf("Title [%s]", summary.Title), a.out)
	if err != nil {
		fmt.Fprintf(a.out, "Error: %s\n", err.Error())
		return
	}
	if title != "" {
		summary.Title = title
	}

	if summary.Shards, err = a.promptInt("Shards", summary.Shards); err != nil {
		fmt.Fprintf(a.out, "Error: %s\n", err.Error())
		return
	}
	if summary.Replicas, err = a.promptInt("Replicas", summary.Replicas); err != nil {
		fmt.Fprintf(a.out, "Error: %s\n", err.Error())
		return
	}

	saved, err := a.api.UpdateIndexSet(ctx, id, summary)
	if err != nil {
		fmt.Fprintf(a.out, "Error: %s\n", err.Error())
		return
	}

	fmt.Fprintf(a.out, "Updated index set %s\n", saved.ID)
}
