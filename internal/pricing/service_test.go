package pricing

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"academy/internal/httpapi"
)

func create(t *testing.T, svc *Service, name string, active bool) Plan {
	t.Helper()
	plan, err := svc.Create(context.Background(), CreateInput{
		NameEn: name, NameAr: name, Price: 49.99, Active: &active,
	})
	require.NoError(t, err)
	return plan
}

func TestCreate_Defaults(t *testing.T) {
	svc := NewService(NewInMemoryStore())
	plan, err := svc.Create(context.Background(), CreateInput{NameEn: "Basic", NameAr: "أساسي", Price: 0})
	require.NoError(t, err)
	assert.True(t, plan.Active)
	assert.NotNil(t, plan.FeaturesEn)
	assert.Empty(t, plan.FeaturesEn)
	assert.NotNil(t, plan.FeaturesAr)
}

func TestList_DefaultsToActiveOnly(t *testing.T) {
	svc := NewService(NewInMemoryStore())
	create(t, svc, "visible", true)
	create(t, svc, "hidden", false)

	total, list, err := svc.List(context.Background(), "", nil, httpapi.Page{Page: 1, PerPage: 10})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, list, 1)
	assert.Equal(t, "visible", list[0].NameEn)

	inactive := false
	total, list, err = svc.List(context.Background(), "", &inactive, httpapi.Page{Page: 1, PerPage: 10})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, list, 1)
	assert.Equal(t, "hidden", list[0].NameEn)
}

func TestToggleActive(t *testing.T) {
	svc := NewService(NewInMemoryStore())
	create(t, svc, "flippable", true)

	toggled, err := svc.ToggleActive(context.Background(), "1")
	require.NoError(t, err)
	assert.False(t, toggled.Active)

	toggled, err = svc.ToggleActive(context.Background(), "1")
	require.NoError(t, err)
	assert.True(t, toggled.Active)
}

func TestUpdate_PartialFields(t *testing.T) {
	svc := NewService(NewInMemoryStore())
	create(t, svc, "starter", true)

	price := 79.0
	updated, err := svc.Update(context.Background(), "1", UpdateInput{Price: &price, FeaturesEn: []string{"support"}})
	require.NoError(t, err)
	assert.Equal(t, 79.0, updated.Price)
	assert.Equal(t, []string{"support"}, []string(updated.FeaturesEn))
	assert.Equal(t, "starter", updated.NameEn)
}
