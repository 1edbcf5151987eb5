package business

// JurisdictionStatus separates real configurations from placeholders.
type JurisdictionStatus string

const (
	JurisdictionImplemented JurisdictionStatus = "implemented"
	JurisdictionStub        JurisdictionStatus = "stub"
)

// CatalogDocument is one raw catalog file as fetched from a source.
type CatalogDocument struct {
	Name string
	Data []byte
}

// CatalogEntry is one jurisdiction in a catalog document.
type CatalogEntry struct {
	Status JurisdictionStatus `json:"status"`
	Rules  RulesConfig        `json:"rules"`
}

// CatalogFile is the decoded form of a catalog document.
type CatalogFile struct {
	Version       string         `json:"version"`
	Jurisdictions []CatalogEntry `json:"jurisdictions"`
}

// JurisdictionSummary is the listing view of a catalog entry.
type JurisdictionSummary struct {
	Code        string           `json:"code"`
	Name        string           `json:"name,omitempty"`
	Scheme      VehicleTaxScheme `json:"scheme"`
	Implemented bool             `json:"implemented"`
}
