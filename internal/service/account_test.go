package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shop_backoffice/internal/codes"
	"shop_backoffice/internal/model"
)

func TestCreateAccount(t *testing.T) {
	db := newTestDB(t)
	svc := NewAccountService(db, testLogger())
	ctx := context.Background()

	acc, err := svc.Create(ctx, CreateAccountInput{Username: "nhanvien1", Password: "secret", RoleID: "employee"})
	require.NoError(t, err)
	assert.Equal(t, model.AccountActive, acc.Status)

	_, err = svc.Create(ctx, CreateAccountInput{Username: "nhanvien1", Password: "other"})
	assert.Equal(t, codes.EntityExist, domainCode(t, err))
}

func TestListStaffExcludesInactive(t *testing.T) {
	db := newTestDB(t)
	svc := NewAccountService(db, testLogger())
	ctx := context.Background()

	seedAccount(t, db, "A1", "nhanvien1", model.AccountActive)
	seedAccount(t, db, "A2", "nghiviec", model.AccountInactive)

	staff, err := svc.ListStaff(ctx)
	require.NoError(t, err)
	require.Len(t, staff, 1)
	assert.Equal(t, "nhanvien1", staff[0].Username)
}
