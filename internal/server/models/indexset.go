// Package models holds the server-side domain types for index set
// configuration management.
package models

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/dmitrijs2005/indexkeeper/internal/common"
)

// StrategyConfig is an opaque descriptor of a rotation or retention policy.
// The policy semantics live in the storage maintenance subsystem; the
// management core only stores and returns descriptors verbatim.
type StrategyConfig struct {
	Type   string          `json:"type"`
	Config json.RawMessage `json:"config,omitempty"`
}

// IndexSetConfig describes how one group of storage indices is created,
// rotated and retired: naming, shard/replica counts and policy descriptors.
// ID is empty until the record is saved; the repository assigns one.
// At most one config in the store carries Default=true, enforced by a
// partial unique index. The deletion workflow respects that flag but never
// changes it.
type IndexSetConfig struct {
	ID                string
	Title             string
	IndexPrefix       string
	Shards            int
	Replicas          int
	RotationStrategy  StrategyConfig
	RetentionStrategy StrategyConfig
	Default           bool
	CreatedAt         time.Time
}

// IndexSetSummary is the transport representation of an IndexSetConfig.
type IndexSetSummary struct {
	ID                string         `json:"id,omitempty"`
	Title             string         `json:"title"`
	IndexPrefix       string         `json:"index_prefix"`
	Shards            int            `json:"shards"`
	Replicas          int            `json:"replicas"`
	RotationStrategy  StrategyConfig `json:"rotation_strategy"`
	RetentionStrategy StrategyConfig `json:"retention_strategy"`
	Default           bool           `json:"default"`
	CreatedAt         time.Time      `json:"creation_date,omitzero"`
}

// indexPrefixRe restricts prefixes to what the storage backend accepts as
// index names: lowercase alphanumerics, dashes and underscores.
var indexPrefixRe = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]*$`)

// Validate checks the summary as a create/update payload. All returned
// errors wrap common.ErrorValidation.
func (s *IndexSetSummary) Validate() error {
	if strings.TrimSpace(s.Title) == "" {
		return fmt.Errorf("%w: title must not be empty", common.ErrorValidation)
	}
	if !indexPrefixRe.MatchString(s.IndexPrefix) {
		return fmt.Errorf("%w: invalid index prefix %q", common.ErrorValidation, s.IndexPrefix)
	}
	if s.Shards < 1 {
		return fmt.Errorf("%w: shards must be at least 1", common.ErrorValidation)
	}
	if s.Replicas < 0 {
		return fmt.Errorf("%w: replicas must not be negative", common.ErrorValidation)
	}
	if s.RotationStrategy.Type == "" {
		return fmt.Errorf("%w: rotation strategy type must not be empty", common.ErrorValidation)
	}
	if s.RetentionStrategy.Type == "" {
		return fmt.Errorf("%w: retention strategy type must not be empty", common.ErrorValidation)
	}
	return nil
}

// ToConfig converts the summary into a persistable config.
func (s *IndexSetSummary) ToConfig() *IndexSetConfig {
	return &IndexSetConfig{
		ID:                s.ID,
		Title:             s.Title,
		IndexPrefix:       s.IndexPrefix,
		Shards:            s.Shards,
		Replicas:          s.Replicas,
		RotationStrategy:  s.RotationStrategy,
		RetentionStrategy: s.RetentionStrategy,
		Default:           s.Default,
		CreatedAt:         s.CreatedAt,
	}
}

// SummaryFromConfig builds the transport view of a stored config.
func SummaryFromConfig(c *IndexSetConfig) *IndexSetSummary {
	return &IndexSetSummary{
		ID:                c.ID,
		Title:             c.Title,
		IndexPrefix:       c.IndexPrefix,
		Shards:            c.Shards,
		Replicas:          c.Replicas,
		RotationStrategy:  c.RotationStrategy,
		RetentionStrategy: c.RetentionStrategy,
		Default:           c.Default,
		CreatedAt:         c.CreatedAt,
	}
}
