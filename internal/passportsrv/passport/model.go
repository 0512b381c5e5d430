package passport

import (
	"maps"
	"slices"
	"time"
)

// Manufacturer identifies the party that placed the product on the market.
type Manufacturer struct {
	Name    string `json:"name,omitempty"`
	DID     string `json:"did,omitempty"`
	Address string `json:"address,omitempty"`
	EORI    string `json:"eori,omitempty"`
}

// Metadata carries the record's bookkeeping state. LastUpdated is refreshed
// on every mutating operation. IsArchived is one-way: once set it is never
// cleared by any operation.
type Metadata struct {
	Status        string    `json:"status,omitempty"`
	LastUpdated   time.Time `json:"last_updated"`
	IsArchived    bool      `json:"isArchived"`
	OnChainStatus string    `json:"onChainStatus,omitempty"`
}

type CustomAttribute struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

type ProductDetails struct {
	Description      string            `json:"description,omitempty"`
	CountryOfOrigin  string            `json:"countryOfOrigin,omitempty"`
	CustomAttributes []CustomAttribute `json:"customAttributes"`
}

type EBSIVerification struct {
	Status      string    `json:"status,omitempty"`
	LastChecked time.Time `json:"lastChecked,omitzero"`
}

// BlockchainIdentifiers holds the ledger references attached by the anchoring
// facade. Merges into this structure are additive: existing fields are
// preserved unless explicitly overwritten.
type BlockchainIdentifiers struct {
	Platform              string `json:"platform,omitempty"`
	AnchorTransactionHash string `json:"anchorTransactionHash,omitempty"`
	ContractAddress       string `json:"contractAddress,omitempty"`
	TokenID               string `json:"tokenId,omitempty"`
}

type Document struct {
	Name string `json:"name"`
	Type string `json:"type,omitempty"`
	URL  string `json:"url"`
}

// SupplyChainLink references a Supplier by id. The reference is weak: the
// supplier is resolved against the registry at read time, never embedded.
type SupplyChainLink struct {
	SupplierID   string `json:"supplierId"`
	SuppliedItem string `json:"suppliedItem"`
	Notes        string `json:"notes,omitempty"`
}

type LifecycleEvent struct {
	ID               string         `json:"id"`
	Type             string         `json:"type"`
	Timestamp        time.Time      `json:"timestamp"`
	Location         string         `json:"location,omitempty"`
	ResponsibleParty string         `json:"responsibleParty,omitempty"`
	Data             map[string]any `json:"data,omitempty"`
}

// DigitalProductPassport is the central record linking a product to its
// manufacturer, suppliers, compliance results, lifecycle events and ledger
// anchoring metadata.
type DigitalProductPassport struct {
	ID                             string                 `json:"id"`
	ProductName                    string                 `json:"productName"`
	Category                       string                 `json:"category,omitempty"`
	GTIN                           string                 `json:"gtin,omitempty"`
	ModelNumber                    string                 `json:"modelNumber,omitempty"`
	AuthenticationVcID             string                 `json:"authenticationVcId,omitempty"`
	OwnershipNftLink               string                 `json:"ownershipNftLink,omitempty"`
	Manufacturer                   Manufacturer           `json:"manufacturer"`
	Metadata                       Metadata               `json:"metadata"`
	ProductDetails                 ProductDetails         `json:"productDetails"`
	Compliance                     map[string]any         `json:"compliance,omitempty"`
	EBSIVerification               EBSIVerification       `json:"ebsiVerification"`
	BlockchainIdentifiers          *BlockchainIdentifiers `json:"blockchainIdentifiers,omitempty"`
	Documents                      []Document             `json:"documents,omitempty"`
	TextileInformation             map[string]any         `json:"textileInformation,omitempty"`
	ConstructionProductInformation map[string]any         `json:"constructionProductInformation,omitempty"`
	SupplyChainLinks               []SupplyChainLink      `json:"supplyChainLinks,omitempty"`
	LifecycleEvents                []LifecycleEvent       `json:"lifecycleEvents,omitempty"`
}

// Clone returns a copy that shares no mutable state with the receiver at the
// levels the store and merge engine touch. Values inside compliance and the
// free-form information maps are treated as immutable once stored.
func (p *DigitalProductPassport) Clone() *DigitalProductPassport {
	c := *p
	c.ProductDetails.CustomAttributes = slices.Clone(p.ProductDetails.CustomAttributes)
	c.Compliance = maps.Clone(p.Compliance)
	if p.BlockchainIdentifiers != nil {
		bci := *p.BlockchainIdentifiers
		c.BlockchainIdentifiers = &bci
	}
	c.Documents = slices.Clone(p.Documents)
	c.TextileInformation = maps.Clone(p.TextileInformation)
	c.ConstructionProductInformation = maps.Clone(p.ConstructionProductInformation)
	c.SupplyChainLinks = slices.Clone(p.SupplyChainLinks)
	c.LifecycleEvents = slices.Clone(p.LifecycleEvents)
	for i := range c.LifecycleEvents {
		c.LifecycleEvents[i].Data = maps.Clone(p.LifecycleEvents[i].Data)
	}
	return &c
}
