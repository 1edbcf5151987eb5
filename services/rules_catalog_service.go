package services

import (
	"fmt"
	"sort"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/cyphera/cyphera-autotax/logger"
	"github.com/cyphera/cyphera-autotax/types/business"
	"go.uber.org/zap"
)

// RulesCatalogService serves rules by jurisdiction code. It is read-only once
// built and safe for concurrent use.
type RulesCatalogService struct {
	entries map[string]business.CatalogEntry
	version *semver.Version
	logger  *zap.Logger
}

// NewRulesCatalogService indexes entries by upper-cased jurisdiction code.
func NewRulesCatalogService(entries []business.CatalogEntry, version *semver.Version) (*RulesCatalogService, error) {
	index := make(map[string]business.CatalogEntry, len(entries))
	for _, e := range entries {
		code := normalizeCode(e.Rules.JurisdictionCode)
		if code == "" {
			return nil, fmt.Errorf("%w: entry without jurisdiction code", ErrCatalogDocument)
		}
		if _, dup := index[code]; dup {
			return nil, fmt.Errorf("%w: jurisdiction %s defined more than once", ErrCatalogDocument, code)
		}
		index[code] = e
	}
	return &RulesCatalogService{
		entries: index,
		version: version,
		logger:  logger.Component("catalog"),
	}, nil
}

// GetRules returns a copy of the rules for code, matched case-insensitively.
// Stub entries are returned too; use IsImplemented to tell them apart.
func (s *RulesCatalogService) GetRules(jurisdictionCode string) (*business.RulesConfig, error) {
	entry, ok := s.entries[normalizeCode(jurisdictionCode)]
	if !ok {
		s.logger.Debug("Jurisdiction not in catalog", zap.String("jurisdiction", jurisdictionCode))
		return nil, fmt.Errorf("%w: %s", ErrJurisdictionNotFound, jurisdictionCode)
	}
	rules := entry.Rules
	return &rules, nil
}

// IsImplemented reports whether code has a real configuration. Unknown codes
// and stubs are not implemented.
func (s *RulesCatalogService) IsImplemented(jurisdictionCode string) bool {
	entry, ok := s.entries[normalizeCode(jurisdictionCode)]
	return ok && entry.Status == business.JurisdictionImplemented
}

// List returns every jurisdiction sorted by code.
func (s *RulesCatalogService) List() []business.JurisdictionSummary {
	out := make([]business.JurisdictionSummary, 0, len(s.entries))
	for code, e := range s.entries {
		scheme := e.Rules.Scheme
		if scheme == "" {
			scheme = business.SchemeGeneric
		}
		out = append(out, business.JurisdictionSummary{
			Code:        code,
			Name:        e.Rules.Name,
			Scheme:      scheme,
			Implemented: e.Status == business.JurisdictionImplemented,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out
}

// Version is the highest document version in the catalog, or "0.0.0" when
// the catalog was built without one.
func (s *RulesCatalogService) Version() string {
	if s.version == nil {
		return "0.0.0"
	}
	return s.version.String()
}

func normalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
