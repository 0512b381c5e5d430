package passport

import (
	"encoding/json"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/openpassport/dppsrv/internal/common/apperrors"
)

// updatePayloadSchema guards the shape of partial-update payloads before the
// merge engine runs. Unknown fields are tolerated and ignored by the decoder.
const updatePayloadSchema = `{
	"$schema": "https://json-schema.org/draft/2020-12/schema",
	"type": "object",
	"properties": {
		"productName": { "type": "string" },
		"category": { "type": "string" },
		"gtin": { "type": "string" },
		"modelNumber": { "type": "string" },
		"authenticationVcId": { "type": "string" },
		"ownershipNftLink": { "type": "string" },
		"manufacturer": {
			"type": "object",
			"properties": {
				"name": { "type": "string" }
			}
		},
		"metadata": {
			"type": "object",
			"properties": {
				"status": { "type": "string" },
				"onChainStatus": { "type": "string" }
			}
		},
		"productDetails": {
			"type": "object",
			"properties": {
				"description": { "type": "string" },
				"countryOfOrigin": { "type": "string" },
				"customAttributes": {
					"type": "array",
					"items": {
						"type": "object",
						"required": ["key", "value"],
						"properties": {
							"key": { "type": "string" },
							"value": { "type": "string" }
						}
					}
				}
			}
		},
		"compliance": { "type": "object" },
		"ebsiVerification": {
			"type": "object",
			"properties": {
				"status": { "type": "string" }
			}
		},
		"blockchainIdentifiers": {
			"type": "object",
			"properties": {
				"platform": { "type": "string" },
				"anchorTransactionHash": { "type": "string" },
				"contractAddress": { "type": "string" },
				"tokenId": { "type": "string" }
			}
		},
		"documents": {
			"type": "array",
			"items": {
				"type": "object",
				"required": ["name", "url"],
				"properties": {
					"name": { "type": "string" },
					"type": { "type": "string" },
					"url": { "type": "string" }
				}
			}
		},
		"textileInformation": { "type": "object" },
		"constructionProductInformation": { "type": "object" }
	}
}`

var updateSchema = jsonschema.MustCompileString("passport-update.json", updatePayloadSchema)

func validateUpdatePayload(payload []byte) apperrors.Error {
	var doc any
	if err := json.Unmarshal(payload, &doc); err != nil {
		return ErrInvalidPayload.New("update payload is not valid JSON").Err(err)
	}
	if err := updateSchema.Validate(doc); err != nil {
		return ErrInvalidPayload.New("update payload failed validation").Err(err)
	}
	return nil
}
