package services

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"io"

	"github.com/Masterminds/semver/v3"
	"github.com/cyphera/cyphera-autotax/helpers"
	"github.com/cyphera/cyphera-autotax/interfaces"
	"github.com/cyphera/cyphera-autotax/logger"
	"github.com/cyphera/cyphera-autotax/types/business"
	"github.com/pkg/errors"
	"github.com/santhosh-tekuri/jsonschema/v5"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

//go:embed schema/rules_catalog.schema.json
var catalogSchema string

const catalogSchemaURL = "https://cyphera.local/autotax/rules_catalog.schema.json"

// CatalogLoader turns raw catalog documents into a RulesCatalogService. Each
// document is schema-checked and its version matched against a constraint
// before it is decoded.
type CatalogLoader struct {
	constraint *semver.Constraints
	schema     *jsonschema.Schema
	logger     *zap.Logger
}

// NewCatalogLoader compiles the catalog schema and the version constraint.
func NewCatalogLoader(versionConstraint string) (*CatalogLoader, error) {
	constraint, err := semver.NewConstraint(versionConstraint)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid catalog version constraint %q", versionConstraint)
	}

	c := jsonschema.NewCompiler()
	c.Draft = jsonschema.Draft2020
	if err := c.AddResource(catalogSchemaURL, bytes.NewReader([]byte(catalogSchema))); err != nil {
		return nil, errors.Wrap(err, "catalog schema load failed")
	}
	schema, err := c.Compile(catalogSchemaURL)
	if err != nil {
		return nil, errors.Wrap(err, "catalog schema compile failed")
	}

	return &CatalogLoader{
		constraint: constraint,
		schema:     schema,
		logger:     logger.Component("catalog"),
	}, nil
}

// Load fetches every document from source and builds a catalog. A
// jurisdiction defined twice is an error.
func (l *CatalogLoader) Load(ctx context.Context, source interfaces.CatalogSource) (*RulesCatalogService, error) {
	docs, err := source.Documents(ctx)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to fetch catalog from %s", source.Describe())
	}

	var (
		entries []business.CatalogEntry
		version *semver.Version
	)
	for _, doc := range docs {
		files, err := l.Parse(doc)
		if err != nil {
			return nil, err
		}
		for _, f := range files {
			v, _ := semver.NewVersion(f.Version)
			if version == nil || v.GreaterThan(version) {
				version = v
			}
			entries = append(entries, f.Jurisdictions...)
		}
	}

	catalog, err := NewRulesCatalogService(entries, version)
	if err != nil {
		return nil, err
	}
	l.logger.Info("Loaded rules catalog",
		zap.String("source", source.Describe()),
		zap.Int("documents", len(docs)),
		zap.Int("jurisdictions", len(entries)),
		zap.String("version", catalog.Version()))
	return catalog, nil
}

// Parse decodes one document. A document may hold several YAML documents
// separated by "---"; each is validated on its own.
func (l *CatalogLoader) Parse(doc business.CatalogDocument) ([]business.CatalogFile, error) {
	dec := yaml.NewDecoder(bytes.NewReader(doc.Data))
	var files []business.CatalogFile
	for i := 0; ; i++ {
		var raw any
		err := dec.Decode(&raw)
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrapf(ErrCatalogDocument, "%s[%d]: %v", doc.Name, i, err)
		}
		if raw == nil {
			continue
		}

		file, err := l.decode(raw)
		if err != nil {
			return nil, errors.Wrapf(err, "%s[%d]", doc.Name, i)
		}
		files = append(files, *file)
	}
	return files, nil
}

// decode validates one YAML value and converts it to a CatalogFile. The value
// travels through JSON so the schema sees exactly what the decoder reads.
func (l *CatalogLoader) decode(raw any) (*business.CatalogFile, error) {
	normalized, err := helpers.NormalizeYAML(raw)
	if err != nil {
		return nil, errors.Wrap(ErrCatalogDocument, err.Error())
	}
	data, err := json.Marshal(normalized)
	if err != nil {
		return nil, errors.Wrap(ErrCatalogDocument, err.Error())
	}

	d := json.NewDecoder(bytes.NewReader(data))
	d.UseNumber()
	var instance any
	if err := d.Decode(&instance); err != nil {
		return nil, errors.Wrap(ErrCatalogDocument, err.Error())
	}
	if err := l.schema.Validate(instance); err != nil {
		return nil, errors.Wrapf(ErrCatalogDocument, "schema validation failed: %v", err)
	}

	var file business.CatalogFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, errors.Wrap(ErrCatalogDocument, err.Error())
	}

	version, err := semver.NewVersion(file.Version)
	if err != nil {
		return nil, errors.Wrapf(ErrCatalogVersion, "%q is not a semantic version", file.Version)
	}
	if !l.constraint.Check(version) {
		return nil, errors.Wrapf(ErrCatalogVersion, "version %s does not satisfy %s", version, l.constraint)
	}

	for _, entry := range file.Jurisdictions {
		if entry.Status != business.JurisdictionImplemented {
			continue
		}
		if err := ValidateRules(entry.Rules); err != nil {
			return nil, err
		}
	}
	return &file, nil
}
