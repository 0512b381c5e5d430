// Package ledger simulates the on-chain side of the platform: anchoring a
// passport to a distributed ledger, minting a token for it, and token
// transfer/metadata operations against a conceptual token contract. No real
// chain is contacted; the placeholder contract address short-circuits every
// operation into a mock-success response before any dispatch is attempted.
package ledger

import (
	"context"
	"regexp"

	"github.com/avast/retry-go/v4"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"

	"github.com/openpassport/dppsrv/internal/common/apperrors"
	"github.com/openpassport/dppsrv/internal/passportsrv/config"
	"github.com/openpassport/dppsrv/internal/passportsrv/passport"
)

// mintPlatformPlaceholder is written when a token is minted for a passport
// that was never anchored to a named platform.
const mintPlatformPlaceholder = "UNSPECIFIED"

const onChainStatusAnchored = "anchored"

var ownerAddressRegex = regexp.MustCompile(`^0x[0-9a-fA-F]{40}$`)

var validate *validator.Validate

func init() {
	validate = validator.New()
	validate.RegisterValidation("ethaddr", func(fl validator.FieldLevel) bool {
		return ownerAddressRegex.MatchString(fl.Field().String())
	})
}

type AnchorRequest struct {
	Platform string `json:"platform" validate:"required"`
}

type MintRequest struct {
	ContractAddress  string `json:"contractAddress" validate:"required"`
	RecipientAddress string `json:"recipientAddress" validate:"required"`
	MetadataURI      string `json:"metadataUri"`
}

type TransferRequest struct {
	NewOwnerAddress string `json:"newOwnerAddress" validate:"required,ethaddr"`
}

type MetadataUpdateRequest struct {
	MetadataURI     string `json:"metadataUri" validate:"required"`
	ContractAddress string `json:"contractAddress"`
}

type MintResult struct {
	TokenID         string `json:"tokenId"`
	ContractAddress string `json:"contractAddress"`
	TransactionHash string `json:"transactionHash"`
	Message         string `json:"message"`
}

type TransferResult struct {
	TokenID         string `json:"tokenId"`
	NewOwnerAddress string `json:"newOwnerAddress"`
	TransactionHash string `json:"transactionHash"`
	Message         string `json:"message"`
}

type MetadataUpdateResult struct {
	TokenID         string `json:"tokenId"`
	ContractAddress string `json:"contractAddress"`
	TransactionHash string `json:"transactionHash"`
	Message         string `json:"message"`
}

// Service is the anchoring facade. It mutates passport records through the
// store and never holds record state of its own.
type Service struct {
	store    *passport.Store
	ids      IDSource
	endpoint string
	platform string
	contract string
}

type Option func(*Service)

// WithIDSource overrides the synthetic id generator.
func WithIDSource(ids IDSource) Option {
	return func(s *Service) {
		s.ids = ids
	}
}

func NewService(store *passport.Store, cfg config.LedgerParam, opts ...Option) *Service {
	s := &Service{
		store:    store,
		ids:      newRandomIDSource(),
		endpoint: cfg.Endpoint,
		platform: cfg.Platform,
		contract: cfg.ContractAddress,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// mockMode reports whether the configured contract is the placeholder
// sentinel. The check runs before any dispatch logic in every operation.
func (s *Service) mockMode() bool {
	return s.contract == config.PlaceholderContractAddress
}

// dispatch simulates the smart-contract invocation. Transient failures are
// retried the way a real RPC client would; the simulated call itself always
// succeeds once configuration is present.
func (s *Service) dispatch(ctx context.Context, operation string) apperrors.Error {
	if s.endpoint == "" {
		log.Ctx(ctx).Error().Str("operation", operation).Msg("ledger endpoint not configured")
		return ErrLedgerNotConfigured
	}
	err := retry.Do(
		func() error {
			log.Ctx(ctx).Debug().
				Str("operation", operation).
				Str("contract", s.contract).
				Msg("simulated contract invocation")
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(3),
		retry.LastErrorOnly(true),
	)
	if err != nil {
		return ErrDispatchFailed.New("ledger dispatch failed: " + operation).Err(err)
	}
	return nil
}

// Anchor attaches the platform and a fresh transaction hash to the record's
// blockchain identifiers, defaulting contract address and token id when they
// were never set. Idempotent at the mock layer: re-anchoring overwrites the
// hash but changes nothing else.
func (s *Service) Anchor(ctx context.Context, passportID string, req *AnchorRequest) (*passport.DigitalProductPassport, apperrors.Error) {
	if err := validate.Struct(req); err != nil {
		return nil, ErrPlatformRequired.New("platform is required to anchor passport " + passportID)
	}
	if !s.mockMode() {
		if err := s.dispatch(ctx, "anchor"); err != nil {
			return nil, err
		}
	}
	txHash, err := s.ids.TransactionHash()
	if err != nil {
		return nil, ErrUnableToGenerateHash.New("unable to generate transaction hash").Err(err)
	}
	return s.store.Apply(passportID, func(p *passport.DigitalProductPassport) apperrors.Error {
		if p.BlockchainIdentifiers == nil {
			p.BlockchainIdentifiers = &passport.BlockchainIdentifiers{}
		}
		p.BlockchainIdentifiers.Platform = req.Platform
		p.BlockchainIdentifiers.AnchorTransactionHash = txHash
		if p.BlockchainIdentifiers.ContractAddress == "" {
			p.BlockchainIdentifiers.ContractAddress = s.contract
		}
		if p.BlockchainIdentifiers.TokenID == "" {
			p.BlockchainIdentifiers.TokenID = s.ids.TokenID()
		}
		p.Metadata.OnChainStatus = onChainStatusAnchored
		return nil
	})
}

// Mint simulates minting a token for the record and merges the resulting
// identifiers additively, preserving an existing platform.
func (s *Service) Mint(ctx context.Context, passportID string, req *MintRequest) (*MintResult, apperrors.Error) {
	if err := validate.Struct(req); err != nil {
		return nil, ErrInvalidMintRequest.New("contractAddress and recipientAddress are required to mint a token for passport " + passportID)
	}
	if !s.mockMode() {
		if err := s.dispatch(ctx, "mint"); err != nil {
			return nil, err
		}
	}
	txHash, err := s.ids.TransactionHash()
	if err != nil {
		return nil, ErrUnableToGenerateHash.New("unable to generate transaction hash").Err(err)
	}
	tokenID := s.ids.TokenID()
	if _, aerr := s.store.Apply(passportID, func(p *passport.DigitalProductPassport) apperrors.Error {
		if p.BlockchainIdentifiers == nil {
			p.BlockchainIdentifiers = &passport.BlockchainIdentifiers{}
		}
		if p.BlockchainIdentifiers.Platform == "" {
			p.BlockchainIdentifiers.Platform = mintPlatformPlaceholder
		}
		p.BlockchainIdentifiers.ContractAddress = req.ContractAddress
		p.BlockchainIdentifiers.TokenID = tokenID
		return nil
	}); aerr != nil {
		return nil, aerr
	}
	return &MintResult{
		TokenID:         tokenID,
		ContractAddress: req.ContractAddress,
		TransactionHash: txHash,
		Message:         "Token minted for recipient " + req.RecipientAddress,
	}, nil
}

// DaoTransfer simulates transferring token ownership. It is a pure
// simulation: no record lookup is involved, only address validation.
func (s *Service) DaoTransfer(ctx context.Context, tokenID string, req *TransferRequest) (*TransferResult, apperrors.Error) {
	if err := validate.Struct(req); err != nil {
		return nil, ErrInvalidOwnerAddress.New("invalid owner address for token " + tokenID + ": " + req.NewOwnerAddress)
	}
	if !s.mockMode() {
		if err := s.dispatch(ctx, "transfer"); err != nil {
			return nil, err
		}
	}
	txHash, err := s.ids.TransactionHash()
	if err != nil {
		return nil, ErrUnableToGenerateHash.New("unable to generate transaction hash").Err(err)
	}
	return &TransferResult{
		TokenID:         tokenID,
		NewOwnerAddress: req.NewOwnerAddress,
		TransactionHash: txHash,
		Message:         "Ownership transfer simulated for token " + tokenID,
	}, nil
}

// UpdateMetadata simulates a token metadata update. The contract address
// defaults to the configured one when the request leaves it empty.
func (s *Service) UpdateMetadata(ctx context.Context, tokenID string, req *MetadataUpdateRequest) (*MetadataUpdateResult, apperrors.Error) {
	if err := validate.Struct(req); err != nil {
		return nil, ErrMetadataURIRequired.New("metadataUri is required to update token " + tokenID)
	}
	contract := req.ContractAddress
	if contract == "" {
		contract = s.contract
	}
	if !s.mockMode() {
		if err := s.dispatch(ctx, "update_metadata"); err != nil {
			return nil, err
		}
	}
	txHash, err := s.ids.TransactionHash()
	if err != nil {
		return nil, ErrUnableToGenerateHash.New("unable to generate transaction hash").Err(err)
	}
	return &MetadataUpdateResult{
		TokenID:         tokenID,
		ContractAddress: contract,
		TransactionHash: txHash,
		Message:         "Metadata update simulated for token " + tokenID,
	}, nil
}
