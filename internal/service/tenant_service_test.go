package service

import (
	"context"
	"testing"

	"customs-evidence-be/internal/dto"
	"customs-evidence-be/internal/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestActiveSettingsDefaultsForUnknownTenant(t *testing.T) {
	f := newFixture()

	settings, err := f.tenant.ActiveSettings(context.Background(), "newcomer")
	require.NoError(t, err)
	assert.Equal(t, entity.DefaultCorpusVersion, settings.ActiveCorpusVersion)
	assert.False(t, settings.AllowFallbackToOlder)

	resp, err := f.tenant.GetSettings(context.Background(), "newcomer")
	require.NoError(t, err)
	assert.Equal(t, "newcomer", resp.TenantId)
	assert.Equal(t, entity.DefaultCorpusVersion, resp.ActiveCorpusVersion)
	assert.Nil(t, resp.UpdatedAt)
}

func TestSetActiveCorpusCreatesThenUpdates(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	allow := true
	created, err := f.tenant.SetActiveCorpus(ctx, "acme", &dto.SetActiveCorpusRequest{
		ActiveCorpusVersion:  "0.2.0",
		AllowFallbackToOlder: &allow,
	})
	require.NoError(t, err)
	assert.Equal(t, "0.2.0", created.ActiveCorpusVersion)
	assert.True(t, created.AllowFallbackToOlder)
	require.NotNil(t, created.UpdatedAt)

	updated, err := f.tenant.SetActiveCorpus(ctx, "acme", &dto.SetActiveCorpusRequest{
		ActiveCorpusVersion: "0.3.0",
	})
	require.NoError(t, err)
	assert.Equal(t, "0.3.0", updated.ActiveCorpusVersion)
	// unset flag leaves the stored value alone
	assert.True(t, updated.AllowFallbackToOlder)
}

func TestActiveCorpusSwitchIsVisibleImmediately(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	settings, err := f.tenant.ActiveSettings(ctx, "acme")
	require.NoError(t, err)
	assert.Equal(t, "0.1.0", settings.ActiveCorpusVersion)

	_, err = f.tenant.SetActiveCorpus(ctx, "acme", &dto.SetActiveCorpusRequest{
		ActiveCorpusVersion: "0.2.0",
	})
	require.NoError(t, err)

	// every serving read goes back to the store, so the switch takes
	// effect on the very next call
	settings, err = f.tenant.ActiveSettings(ctx, "acme")
	require.NoError(t, err)
	assert.Equal(t, "0.2.0", settings.ActiveCorpusVersion)

	resp, err := f.retrieval.RetrieveEvidence(ctx, "acme", &dto.RetrieveEvidenceRequest{Q: "eggs"})
	require.NoError(t, err)
	assert.Equal(t, "0.2.0", resp.ActiveCorpusVersion)
}
