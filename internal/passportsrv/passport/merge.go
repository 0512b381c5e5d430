package passport

import (
	"encoding/json"
	"time"

	"github.com/tidwall/gjson"

	"github.com/openpassport/dppsrv/internal/common/apperrors"
)

// UpdateRequest is the partial-update payload. Field presence, not
// truthiness, decides whether a value overwrites the stored one: pointer
// fields distinguish an omitted field from an explicit empty value, so
// `"authenticationVcId": ""` clears the field while omitting it preserves it.
// Nil slices and maps mean "absent"; present-but-empty ones overwrite.
type UpdateRequest struct {
	ProductName        *string                     `json:"productName"`
	Category           *string                     `json:"category"`
	GTIN               *string                     `json:"gtin"`
	ModelNumber        *string                     `json:"modelNumber"`
	AuthenticationVcID *string                     `json:"authenticationVcId"`
	OwnershipNftLink   *string                     `json:"ownershipNftLink"`
	Manufacturer       *ManufacturerPatch          `json:"manufacturer"`
	Metadata           *MetadataPatch              `json:"metadata"`
	ProductDetails     *ProductDetailsPatch        `json:"productDetails"`
	Compliance         map[string]any              `json:"compliance"`
	EBSIVerification   *EBSIVerificationPatch      `json:"ebsiVerification"`
	Identifiers        *BlockchainIdentifiersPatch `json:"blockchainIdentifiers"`
	Documents          []Document                  `json:"documents"`
	Textile            map[string]any              `json:"textileInformation"`
	Construction       map[string]any              `json:"constructionProductInformation"`
}

// ManufacturerPatch only carries the name; the remaining manufacturer
// sub-fields are never touched by a partial update.
type ManufacturerPatch struct {
	Name *string `json:"name"`
}

type MetadataPatch struct {
	Status        *string `json:"status"`
	OnChainStatus *string `json:"onChainStatus"`
}

type ProductDetailsPatch struct {
	Description      *string           `json:"description"`
	CountryOfOrigin  *string           `json:"countryOfOrigin"`
	CustomAttributes []CustomAttribute `json:"customAttributes"`
}

type EBSIVerificationPatch struct {
	Status *string `json:"status"`
}

type BlockchainIdentifiersPatch struct {
	Platform              *string `json:"platform"`
	AnchorTransactionHash *string `json:"anchorTransactionHash"`
	ContractAddress       *string `json:"contractAddress"`
	TokenID               *string `json:"tokenId"`
}

// ParseUpdateRequest validates and decodes a partial-update payload. A
// payload that fails JSON or structural validation is rejected here; the
// merge itself cannot fail afterwards.
func ParseUpdateRequest(payload []byte) (*UpdateRequest, apperrors.Error) {
	if !gjson.ValidBytes(payload) {
		return nil, ErrInvalidPayload.New("update payload is not valid JSON")
	}
	if err := validateUpdatePayload(payload); err != nil {
		return nil, err
	}
	req := &UpdateRequest{}
	if err := json.Unmarshal(payload, req); err != nil {
		return nil, ErrInvalidPayload.New("unable to decode update payload").Err(err)
	}
	return req, nil
}

// mergePassport computes the result of applying req to existing. Fields
// absent from the payload keep their pre-update values. The caller holds the
// store's write lock; existing is not modified.
func mergePassport(existing *DigitalProductPassport, req *UpdateRequest, now time.Time) *DigitalProductPassport {
	merged := existing.Clone()

	if req.ProductName != nil {
		merged.ProductName = *req.ProductName
	}
	if req.Category != nil {
		merged.Category = *req.Category
	}
	if req.GTIN != nil {
		merged.GTIN = *req.GTIN
	}
	if req.ModelNumber != nil {
		merged.ModelNumber = *req.ModelNumber
	}
	if req.AuthenticationVcID != nil {
		merged.AuthenticationVcID = *req.AuthenticationVcID
	}
	if req.OwnershipNftLink != nil {
		merged.OwnershipNftLink = *req.OwnershipNftLink
	}

	if req.Manufacturer != nil && req.Manufacturer.Name != nil {
		merged.Manufacturer.Name = *req.Manufacturer.Name
	}

	if req.Metadata != nil {
		if req.Metadata.Status != nil {
			merged.Metadata.Status = *req.Metadata.Status
		}
		if req.Metadata.OnChainStatus != nil {
			merged.Metadata.OnChainStatus = *req.Metadata.OnChainStatus
		}
	}

	if req.ProductDetails != nil {
		if req.ProductDetails.Description != nil {
			merged.ProductDetails.Description = *req.ProductDetails.Description
		}
		if req.ProductDetails.CountryOfOrigin != nil {
			merged.ProductDetails.CountryOfOrigin = *req.ProductDetails.CountryOfOrigin
		}
		if req.ProductDetails.CustomAttributes != nil {
			merged.ProductDetails.CustomAttributes = req.ProductDetails.CustomAttributes
		}
	}
	// payload -> existing -> empty, in that priority
	if merged.ProductDetails.CustomAttributes == nil {
		merged.ProductDetails.CustomAttributes = []CustomAttribute{}
	}

	if len(req.Compliance) > 0 {
		if merged.Compliance == nil {
			merged.Compliance = make(map[string]any, len(req.Compliance))
		}
		for k, v := range req.Compliance {
			merged.Compliance[k] = v
		}
	}

	// lastChecked is refreshed only when the payload supplies a status;
	// otherwise the existing stamp is preserved, unless it never existed.
	if req.EBSIVerification != nil && req.EBSIVerification.Status != nil {
		merged.EBSIVerification.Status = *req.EBSIVerification.Status
		merged.EBSIVerification.LastChecked = now
	} else if merged.EBSIVerification.LastChecked.IsZero() {
		merged.EBSIVerification.LastChecked = now
	}

	if req.Identifiers != nil {
		if merged.BlockchainIdentifiers == nil {
			merged.BlockchainIdentifiers = &BlockchainIdentifiers{}
		}
		if req.Identifiers.Platform != nil {
			merged.BlockchainIdentifiers.Platform = *req.Identifiers.Platform
		}
		if req.Identifiers.AnchorTransactionHash != nil {
			merged.BlockchainIdentifiers.AnchorTransactionHash = *req.Identifiers.AnchorTransactionHash
		}
		if req.Identifiers.ContractAddress != nil {
			merged.BlockchainIdentifiers.ContractAddress = *req.Identifiers.ContractAddress
		}
		if req.Identifiers.TokenID != nil {
			merged.BlockchainIdentifiers.TokenID = *req.Identifiers.TokenID
		}
	}

	// replaced wholesale when present, never merged
	if req.Documents != nil {
		merged.Documents = req.Documents
	}
	if req.Textile != nil {
		merged.TextileInformation = req.Textile
	}
	if req.Construction != nil {
		merged.ConstructionProductInformation = req.Construction
	}

	merged.Metadata.LastUpdated = now
	return merged
}
