package cli

import (
	"context"
	"fmt"
)

// delete removes an index set after confirmation. A trailing "keep"
// argument leaves the physical indices in place.
func (a *App) delete(ctx context.Context, args []string) {
	if !a.requireLogin() {
		return
	}
	if len(args) == 0 {
		fmt.Fprintln(a.out, "Usage: delete <id> [keep]")
		return
	}
	id := args[0]
	deleteIndices := !(len(args) > 1 && args[1] == "keep")

	prompt := fmt.Sprintf("Delete index set %s and its indices? (y/N)", id)
	if !deleteIndices {
		prompt = fmt.Sprintf("Delete index set %s, keeping its indices? (y/N)", id)
	}

	answer, err := getSimpleText(a.reader, prompt, a.out)
	if err != nil {
		fmt.Fprintf(a.out, "Error: %s\n", err.Error())
		return
	}
	if answer != "y" && answer != "Y" {
		fmt.Fprintln(a.out, "Cancelled")
		return
	}

	if err := a.api.DeleteIndexSet(ctx, id, deleteIndices); err != nil {
		fmt.Fprintf(a.out, "Error: %s\n", err.Error())
		return
	}

	fmt.Fprintf(a.out, "Deleted index set %s\n", id)
}
