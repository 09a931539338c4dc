package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shop_backoffice/internal/codes"
)

func TestCreateCategory(t *testing.T) {
	db := newTestDB(t)
	svc := NewCategoryService(db, testLogger())
	ctx := context.Background()

	c, err := svc.Create(ctx, "C1", "Đồ uống")
	require.NoError(t, err)
	assert.Equal(t, "Đồ uống", c.Name)

	_, err = svc.Create(ctx, "C1", "Khác")
	assert.Equal(t, codes.EntityExist, domainCode(t, err))
}

func TestListCategories(t *testing.T) {
	db := newTestDB(t)
	svc := NewCategoryService(db, testLogger())
	ctx := context.Background()

	_, err := svc.Create(ctx, "C2", "Đồ ăn")
	require.NoError(t, err)
	_, err = svc.Create(ctx, "C1", "Đồ uống")
	require.NoError(t, err)

	list, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "C1", list[0].ID)
}
