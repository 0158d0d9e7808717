// Package auth provides bearer-token handling and per-resource permission
// checks for the index set API.
package auth

import "strings"

// Actions the index set API checks before performing an operation.
// Read, edit and delete are checked per resource id; create is global
// because no id exists yet.
const (
	ActionIndexSetsRead   = "indexsets:read"
	ActionIndexSetsCreate = "indexsets:create"
	ActionIndexSetsEdit   = "indexsets:edit"
	ActionIndexSetsDelete = "indexsets:delete"
)

// Checker answers per-action, per-resource allow/deny queries. The service
// layer receives one per request, so tests can pass a stub.
type Checker interface {
	// IsPermitted reports whether the subject may perform action on the
	// resource with the given id. For global actions id is empty.
	IsPermitted(action, id string) bool
}

// CheckerFunc adapts a function to the Checker interface.
type CheckerFunc func(action, id string) bool

func (f CheckerFunc) IsPermitted(action, id string) bool {
	return f(action, id)
}

// GrantsChecker checks permissions against a flat list of grant strings.
//
// A grant is "action", "action:id", or a wildcard form: "*" allows
// everything, "action:*" allows the action on any resource, and a bare
// "action" grant allows the action regardless of resource.
type GrantsChecker struct {
	grants []string
}

func NewGrantsChecker(grants []string) *GrantsChecker {
	return &GrantsChecker{grants: grants}
}

func (c *GrantsChecker) IsPermitted(action, id string) bool {
	for _, grant := range c.grants {
		if grant == "*" || grant == action || grant == action+":*" {
			return true
		}
		if id != "" && grant == action+":"+id {
			return true
		}
		// "indexsets:*" style wildcards on the action itself.
		if prefix, ok := strings.CutSuffix(grant, ":*"); ok && strings.HasPrefix(action, prefix+":") {
			return true
		}
	}
	return false
}
