package ledger

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openpassport/dppsrv/internal/passportsrv/config"
	"github.com/openpassport/dppsrv/internal/passportsrv/passport"
)

type fixedIDs struct {
	hash  string
	token string
}

func (f fixedIDs) TransactionHash() (string, error) { return f.hash, nil }
func (f fixedIDs) TokenID() string                  { return f.token }

func mockLedgerParam() config.LedgerParam {
	return config.LedgerParam{
		Platform:        "EBSI",
		ContractAddress: config.PlaceholderContractAddress,
	}
}

func newTestService(t *testing.T, cfg config.LedgerParam) (*Service, *passport.Store, *passport.DigitalProductPassport) {
	t.Helper()
	store := passport.NewStore()
	rec, err := store.Create(context.Background(), &passport.DigitalProductPassport{
		ID:          "DPP001",
		ProductName: "Trail Jacket",
	})
	require.Nil(t, err)
	svc := NewService(store, cfg, WithIDSource(fixedIDs{hash: "0xabc123", token: "42"}))
	return svc, store, rec
}

func TestAnchorRequiresPlatform(t *testing.T) {
	svc, _, rec := newTestService(t, mockLedgerParam())

	_, err := svc.Anchor(context.Background(), rec.ID, &AnchorRequest{})
	require.NotNil(t, err)
	assert.True(t, errors.Is(err, ErrPlatformRequired))
	assert.Contains(t, err.Error(), rec.ID)
}

func TestAnchorUnknownPassport(t *testing.T) {
	svc, _, _ := newTestService(t, mockLedgerParam())

	_, err := svc.Anchor(context.Background(), "NOPE", &AnchorRequest{Platform: "EBSI"})
	require.NotNil(t, err)
	assert.True(t, errors.Is(err, passport.ErrPassportNotFound))
	assert.Contains(t, err.Error(), "NOPE")
}

func TestAnchorSetsIdentifiers(t *testing.T) {
	svc, store, rec := newTestService(t, mockLedgerParam())
	before := rec.Metadata.LastUpdated

	updated, err := svc.Anchor(context.Background(), rec.ID, &AnchorRequest{Platform: "EBSI"})
	require.Nil(t, err)

	require.NotNil(t, updated.BlockchainIdentifiers)
	assert.Equal(t, "EBSI", updated.BlockchainIdentifiers.Platform)
	assert.Equal(t, "0xabc123", updated.BlockchainIdentifiers.AnchorTransactionHash)
	assert.Equal(t, config.PlaceholderContractAddress, updated.BlockchainIdentifiers.ContractAddress)
	assert.Equal(t, "42", updated.BlockchainIdentifiers.TokenID)
	assert.Equal(t, "anchored", updated.Metadata.OnChainStatus)
	assert.False(t, updated.Metadata.LastUpdated.Before(before))

	// anchoring is idempotent at the mock layer: fields already set survive
	got, gerr := store.Get(rec.ID)
	require.Nil(t, gerr)
	again, err := svc.Anchor(context.Background(), rec.ID, &AnchorRequest{Platform: "EBSI"})
	require.Nil(t, err)
	assert.Equal(t, got.BlockchainIdentifiers.ContractAddress, again.BlockchainIdentifiers.ContractAddress)
	assert.Equal(t, got.BlockchainIdentifiers.TokenID, again.BlockchainIdentifiers.TokenID)
}

func TestMint(t *testing.T) {
	svc, store, rec := newTestService(t, mockLedgerParam())

	_, err := svc.Mint(context.Background(), rec.ID, &MintRequest{})
	assert.True(t, errors.Is(err, ErrInvalidMintRequest))

	result, err := svc.Mint(context.Background(), rec.ID, &MintRequest{
		ContractAddress:  "0x00000000000000000000000000000000000000bb",
		RecipientAddress: "0x00000000000000000000000000000000000000cc",
	})
	require.Nil(t, err)
	assert.Equal(t, "42", result.TokenID)
	assert.Equal(t, "0x00000000000000000000000000000000000000bb", result.ContractAddress)
	assert.Equal(t, "0xabc123", result.TransactionHash)
	assert.NotEmpty(t, result.Message)

	// the record never named a platform, so minting writes the placeholder
	got, gerr := store.Get(rec.ID)
	require.Nil(t, gerr)
	require.NotNil(t, got.BlockchainIdentifiers)
	assert.Equal(t, "UNSPECIFIED", got.BlockchainIdentifiers.Platform)
	assert.Equal(t, "42", got.BlockchainIdentifiers.TokenID)
}

func TestMintPreservesExistingPlatform(t *testing.T) {
	svc, store, rec := newTestService(t, mockLedgerParam())

	_, err := svc.Anchor(context.Background(), rec.ID, &AnchorRequest{Platform: "EBSI"})
	require.Nil(t, err)
	_, err = svc.Mint(context.Background(), rec.ID, &MintRequest{
		ContractAddress:  "0x00000000000000000000000000000000000000bb",
		RecipientAddress: "0x00000000000000000000000000000000000000cc",
	})
	require.Nil(t, err)

	got, gerr := store.Get(rec.ID)
	require.Nil(t, gerr)
	assert.Equal(t, "EBSI", got.BlockchainIdentifiers.Platform)
}

func TestDaoTransfer(t *testing.T) {
	svc, _, _ := newTestService(t, mockLedgerParam())
	ctx := context.Background()

	_, err := svc.DaoTransfer(ctx, "42", &TransferRequest{NewOwnerAddress: "not-an-address"})
	require.NotNil(t, err)
	assert.True(t, errors.Is(err, ErrInvalidOwnerAddress))
	assert.Contains(t, err.Error(), "not-an-address")

	result, err := svc.DaoTransfer(ctx, "42", &TransferRequest{
		NewOwnerAddress: "0x00000000000000000000000000000000000000dd",
	})
	require.Nil(t, err)
	assert.Equal(t, "42", result.TokenID)
	assert.Equal(t, "0xabc123", result.TransactionHash)
}

func TestUpdateMetadata(t *testing.T) {
	svc, _, _ := newTestService(t, mockLedgerParam())
	ctx := context.Background()

	_, err := svc.UpdateMetadata(ctx, "42", &MetadataUpdateRequest{})
	assert.True(t, errors.Is(err, ErrMetadataURIRequired))

	// contract defaults to the configured one
	result, err := svc.UpdateMetadata(ctx, "42", &MetadataUpdateRequest{MetadataURI: "ipfs://meta"})
	require.Nil(t, err)
	assert.Equal(t, config.PlaceholderContractAddress, result.ContractAddress)
}

func TestDispatchRequiresEndpoint(t *testing.T) {
	// a real (non-placeholder) contract without an endpoint is a server
	// configuration error; the message stays generic
	cfg := config.LedgerParam{
		Platform:        "EBSI",
		ContractAddress: "0x00000000000000000000000000000000000000ee",
	}
	svc, _, rec := newTestService(t, cfg)

	_, err := svc.Anchor(context.Background(), rec.ID, &AnchorRequest{Platform: "EBSI"})
	require.NotNil(t, err)
	assert.True(t, errors.Is(err, ErrLedgerNotConfigured))
	assert.NotContains(t, err.ErrorAll(), "endpoint:")
}

func TestDispatchWithEndpoint(t *testing.T) {
	cfg := config.LedgerParam{
		Platform:        "EBSI",
		Endpoint:        "https://rpc.example/contract",
		ContractAddress: "0x00000000000000000000000000000000000000ee",
	}
	svc, _, rec := newTestService(t, cfg)

	updated, err := svc.Anchor(context.Background(), rec.ID, &AnchorRequest{Platform: "EBSI"})
	require.Nil(t, err)
	assert.Equal(t, "0x00000000000000000000000000000000000000ee", updated.BlockchainIdentifiers.ContractAddress)
}

func TestRandomIDSource(t *testing.T) {
	src := newRandomIDSource()

	h1, err := src.TransactionHash()
	require.NoError(t, err)
	h2, err := src.TransactionHash()
	require.NoError(t, err)
	assert.Len(t, h1, 2+hashLength)
	assert.NotEqual(t, h1, h2)

	t1 := src.TokenID()
	time.Sleep(time.Millisecond)
	t2 := src.TokenID()
	assert.NotEqual(t, t1, t2)
}
