package service

import (
	"context"
	"testing"

	"github.com/Faroffweb/Gst-Trail/internal/dto"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCustomerDeleteRestrictedWhenInvoicesExist(t *testing.T) {
	e := newTestEnv()
	created, err := e.customerSvc.Create(context.Background(), dto.CreateCustomerRequest{Name: "Sharma Traders"})
	require.NoError(t, err)

	id := uuid.MustParse(created.ID)
	e.customers.invoiceRefs[id] = 2

	err = e.customerSvc.Delete(context.Background(), id)
	assert.ErrorIs(t, err, ErrConstraintViolation)

	_, err = e.customerSvc.GetByID(context.Background(), id)
	assert.NoError(t, err, "customer survives the refused delete")
}

func TestCustomerDeleteWithoutInvoices(t *testing.T) {
	e := newTestEnv()
	created, err := e.customerSvc.Create(context.Background(), dto.CreateCustomerRequest{Name: "Sharma Traders"})
	require.NoError(t, err)

	id := uuid.MustParse(created.ID)
	require.NoError(t, e.customerSvc.Delete(context.Background(), id))

	_, err = e.customerSvc.GetByID(context.Background(), id)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCustomerCreateDuplicateName(t *testing.T) {
	e := newTestEnv()
	_, err := e.customerSvc.Create(context.Background(), dto.CreateCustomerRequest{Name: "Sharma Traders"})
	require.NoError(t, err)

	_, err = e.customerSvc.Create(context.Background(), dto.CreateCustomerRequest{Name: "Sharma Traders"})
	assert.ErrorIs(t, err, ErrConstraintViolation)
}

func TestCustomerUpdatePartial(t *testing.T) {
	e := newTestEnv()
	phone := "9876543210"
	created, err := e.customerSvc.Create(context.Background(), dto.CreateCustomerRequest{
		Name:  "Sharma Traders",
		Phone: &phone,
	})
	require.NoError(t, err)

	gstin := "22AAAAA0000A1Z5"
	updated, err := e.customerSvc.Update(context.Background(), uuid.MustParse(created.ID), dto.UpdateCustomerRequest{
		GSTIN: &gstin,
	})
	require.NoError(t, err)

	assert.Equal(t, "Sharma Traders", updated.Name)
	require.NotNil(t, updated.Phone)
	assert.Equal(t, phone, *updated.Phone)
	require.NotNil(t, updated.GSTIN)
	assert.Equal(t, gstin, *updated.GSTIN)
}
