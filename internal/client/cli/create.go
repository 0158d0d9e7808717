package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/dmitrijs2005/indexkeeper/internal/server/models"
)

func (a *App) promptInt(prompt string, def int) (int, error) {
	line, err := getSimpleText(a.reader, fmt.Sprintf("%s [%d]", prompt, def), a.out)
	if err != nil {
		return 0, err
	}
	if line == "" {
		return def, nil
	}
	return strconv.Atoi(line)
}

func (a *App) promptStrategy(kind string) (models.StrategyConfig, error) {
	var s models.StrategyConfig

	typ, err := getSimpleText(a.reader, fmt.Sprintf("%s strategy type", kind), a.out)
	if err != nil {
		return s, err
	}
	s.Type = typ

	body, err := GetMultiline(a.reader, fmt.Sprintf("%s strategy config as JSON, optional", kind), a.out)
	if err != nil {
		return s, err
	}
	if body != "" {
		if !json.Valid([]byte(body)) {
			return s, fmt.Errorf("invalid JSON in %s strategy config", kind)
		}
		s.Config = json.RawMessage(body)
	}
	return s, nil
}

func (a *App) create(ctx context.Context) {
	if !a.requireLogin() {
		return
	}

	summary := &models.IndexSetSummary{}
	var err error

	if summary.Title, err = getSimpleText(a.reader, "Title", a.out); err != nil {
		fmt.Fprintf(a.out, "Error: %s\n", err.Error())
		return
	}
	if summary.IndexPrefix, err = getSimpleText(a.reader, "Index prefix", a.out); err != nil {
		fmt.Fprintf(a.out, "Error: %s\n", err.Error())
		return
	}
	if summary.Shards, err = a.promptInt("Shards", 4); err != nil {
		fmt.Fprintf(a.out, "Error: %s\n", err.Error())
		return
	}
	if summary.Replicas, err = a.promptInt("Replicas", 0); err != nil {
		fmt.Fprintf(a.out, "Error: %s\n", err.Error())
		return
	}
	if summary.RotationStrategy, err = a.promptStrategy("Rotation"); err != nil {
		fmt.Fprintf(a.out, "Error: %s\n", err.Error())
		return
	}
	if summary.RetentionStrategy, err = a.promptStrategy("Retention"); err != nil {
		fmt.Fprintf(a.out, "Error: %s\n", err.Error())
		return
	}

	saved, err := a.api.CreateIndexSet(ctx, summary)
	if err != nil {
		fmt.Fprintf(a.out, "Error: %s\n", err.Error())
		return
	}

	fmt.Fprintf(a.out, "Created index set %s\n", saved.ID)
}
