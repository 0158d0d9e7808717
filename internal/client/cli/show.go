package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/indexkeeper/internal/server/models"
)

func (a *App) printSummary(s *models.IndexSetSummary) {
	fmt.Fprintf(a.out, "ID:        %s\n", s.ID)
	fmt.Fprintf(a.out, "Title:     %s\n", s.Title)
	fmt.Fprintf(a.out, "Prefix:    %s\n", s.IndexPrefix)
	fmt.Fprintf(a.out, "Shards:    %d\n", s.Shards)
	fmt.Fprintf(a.out, "Replicas:  %d\n", s.Replicas)
	fmt.Fprintf(a.out, "Rotation:  %s %s\n", s.RotationStrategy.Type, string(s.RotationStrategy.Config))
	fmt.Fprintf(a.out, "Retention: %s %s\n", s.RetentionStrategy.Type, string(s.RetentionStrategy.Config))
	fmt.Fprintf(a.out, "Default:   %v\n", s.Default)
	if !s.CreatedAt.IsZero() {
		fmt.Fprintf(a.out, "Created:   %s\n", s.CreatedAt.Format("2006-01-02 15:04:05"))
	}
}

func (a *App) show(ctx context.Context, args []string) {
	if !a.requireLogin() {
		return
	}
	if len(args) == 0 {
		fmt.Fprintln(a.out, "Usage: show <id>")
		return
	}

	summary, err := a.api.GetIndexSet(ctx, args[0])
	if err != nil {
		fmt.Fprintf(a.out, "Error: %s\n", err.Error())
		return
	}

	a.printSummary(summary)
}
