package passport

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openpassport/dppsrv/internal/common/apperrors"
)

// testClock advances one second per call so every mutation gets a strictly
// increasing stamp.
func testClock(start time.Time) func() time.Time {
	t := start
	return func() time.Time {
		t = t.Add(time.Second)
		return t
	}
}

func newTestStore(t *testing.T) (*Store, *DigitalProductPassport) {
	t.Helper()
	store := NewStore(WithClock(testClock(time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC))))
	rec, err := store.Create(context.Background(), fixturePassport())
	require.Nil(t, err)
	return store, rec
}

func TestStoreCreate(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	rec, err := store.Create(ctx, &DigitalProductPassport{ProductName: "Widget"})
	require.Nil(t, err)
	assert.True(t, strings.HasPrefix(rec.ID, "DPP-"))
	assert.False(t, rec.Metadata.IsArchived)
	assert.False(t, rec.Metadata.LastUpdated.IsZero())
	assert.NotNil(t, rec.ProductDetails.CustomAttributes)

	_, err = store.Create(ctx, &DigitalProductPassport{ID: rec.ID})
	require.NotNil(t, err)
	assert.True(t, errors.Is(err, ErrAlreadyExists))
	assert.Contains(t, err.Error(), rec.ID)
}

func TestStoreGet(t *testing.T) {
	store, rec := newTestStore(t)

	got, err := store.Get(rec.ID)
	require.Nil(t, err)
	assert.Equal(t, rec.ID, got.ID)

	_, err = store.Get("NOPE")
	require.NotNil(t, err)
	assert.True(t, errors.Is(err, ErrPassportNotFound))
	assert.Contains(t, err.Error(), "NOPE")
}

func TestStoreUpdate(t *testing.T) {
	store, rec := newTestStore(t)

	updated, err := store.Update(context.Background(), rec.ID, []byte(`{"productName":"New Name"}`))
	require.Nil(t, err)
	assert.Equal(t, "New Name", updated.ProductName)
	assert.True(t, updated.Metadata.LastUpdated.After(rec.Metadata.LastUpdated))

	// unknown id
	_, err = store.Update(context.Background(), "NOPE", []byte(`{}`))
	assert.True(t, errors.Is(err, ErrPassportNotFound))

	// malformed payload is rejected before any merge
	_, err = store.Update(context.Background(), rec.ID, []byte(`{"productName":`))
	assert.True(t, errors.Is(err, ErrInvalidPayload))
}

func TestStoreUpdateSerialized(t *testing.T) {
	store, rec := newTestStore(t)

	// concurrent single-field merges must not lose each other's writes
	done := make(chan struct{})
	go func() {
		defer close(done)
		_, err := store.Update(context.Background(), rec.ID, []byte(`{"category":"Outdoor"}`))
		assert.Nil(t, err)
	}()
	_, err := store.Update(context.Background(), rec.ID, []byte(`{"modelNumber":"TJ-2200"}`))
	require.Nil(t, err)
	<-done

	got, gerr := store.Get(rec.ID)
	require.Nil(t, gerr)
	assert.Equal(t, "Outdoor", got.Category)
	assert.Equal(t, "TJ-2200", got.ModelNumber)
}

func TestStoreArchive(t *testing.T) {
	store, rec := newTestStore(t)

	archived, err := store.Archive(rec.ID)
	require.Nil(t, err)
	assert.True(t, archived.Metadata.IsArchived)
	firstStamp := archived.Metadata.LastUpdated

	// archived records are invisible to reads and updates
	_, err = store.Get(rec.ID)
	assert.True(t, errors.Is(err, ErrPassportNotFound))
	_, err = store.Update(context.Background(), rec.ID, []byte(`{}`))
	assert.True(t, errors.Is(err, ErrPassportNotFound))

	// but archiving again still succeeds and never un-archives
	again, err := store.Archive(rec.ID)
	require.Nil(t, err)
	assert.True(t, again.Metadata.IsArchived)
	assert.True(t, again.Metadata.LastUpdated.After(firstStamp))

	_, err = store.Archive("NOPE")
	assert.True(t, errors.Is(err, ErrPassportNotFound))
}

func TestStoreSnapshots(t *testing.T) {
	store, rec := newTestStore(t)
	other, err := store.Create(context.Background(), &DigitalProductPassport{ProductName: "Other"})
	require.Nil(t, err)

	_, aerr := store.Archive(other.ID)
	require.Nil(t, aerr)

	assert.Len(t, store.All(), 2)
	active := store.Active()
	require.Len(t, active, 1)
	assert.Equal(t, rec.ID, active[0].ID)

	// snapshots are copies: mutating one must not leak into the store
	active[0].ProductName = "mutated"
	got, gerr := store.Get(rec.ID)
	require.Nil(t, gerr)
	assert.NotEqual(t, "mutated", got.ProductName)
}

func TestStoreApply(t *testing.T) {
	store, rec := newTestStore(t)

	updated, err := store.Apply(rec.ID, func(p *DigitalProductPassport) apperrors.Error {
		p.Metadata.OnChainStatus = "pending"
		return nil
	})
	require.Nil(t, err)
	assert.Equal(t, "pending", updated.Metadata.OnChainStatus)
	assert.True(t, updated.Metadata.LastUpdated.After(rec.Metadata.LastUpdated))

	_, err = store.Apply("NOPE", func(p *DigitalProductPassport) apperrors.Error { return nil })
	assert.True(t, errors.Is(err, ErrPassportNotFound))
}
