package memory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ventas-pos-ar/internal/domain"
	"github.com/jhoicas/ventas-pos-ar/internal/domain/entity"
	"github.com/jhoicas/ventas-pos-ar/internal/domain/repository"
	"github.com/jhoicas/ventas-pos-ar/internal/infrastructure/memory"
)

func TestRunBilling_RollbackOnError(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	require.NoError(t, store.Sales().Create(ctx, &entity.Sale{ID: "s1", CompanyID: "c1", State: entity.SaleStateConfirmed}))

	boom := errors.New("boom")
	err := store.RunBilling(ctx, func(sales repository.SaleRepository, invoices repository.InvoiceRepository) error {
		require.NoError(t, invoices.Create(ctx, &entity.Invoice{ID: "i1", SaleID: "s1"}))
		require.NoError(t, sales.TransitionState(ctx, "s1", entity.SaleStateConfirmed, entity.SaleStateProcessing, time.Now()))
		return boom
	})
	assert.ErrorIs(t, err, boom)

	sale, err := store.Sales().GetByID(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, entity.SaleStateConfirmed, sale.State)
	inv, err := store.Invoices().GetByID(ctx, "i1")
	require.NoError(t, err)
	assert.Nil(t, inv)
}

func TestRunBilling_Commit(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	require.NoError(t, store.Sales().Create(ctx, &entity.Sale{ID: "s1", CompanyID: "c1", State: entity.SaleStateConfirmed}))

	err := store.RunBilling(ctx, func(sales repository.SaleRepository, invoices repository.InvoiceRepository) error {
		if err := invoices.Create(ctx, &entity.Invoice{ID: "i1", SaleID: "s1"}); err != nil {
			return err
		}
		return sales.TransitionState(ctx, "s1", entity.SaleStateConfirmed, entity.SaleStateProcessing, time.Now())
	})
	require.NoError(t, err)

	sale, err := store.Sales().GetByID(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, entity.SaleStateProcessing, sale.State)

	list, err := store.Invoices().ListBySale(ctx, "s1")
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestRunBilling_RollbackKeepsOtherWrites(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	require.NoError(t, store.Sales().Create(ctx, &entity.Sale{ID: "s1", CompanyID: "c1", State: entity.SaleStateConfirmed}))
	require.NoError(t, store.Sales().Create(ctx, &entity.Sale{ID: "s2", CompanyID: "c1", State: entity.SaleStateDraft}))

	boom := errors.New("boom")
	err := store.RunBilling(ctx, func(sales repository.SaleRepository, invoices repository.InvoiceRepository) error {
		require.NoError(t, sales.TransitionState(ctx, "s1", entity.SaleStateConfirmed, entity.SaleStateProcessing, time.Now()))
		// Escritura ajena a la transacción mientras fn corre.
		require.NoError(t, store.Sales().AddLine(ctx, &entity.SaleLine{ID: "l1", SaleID: "s2", Sequence: 1}))
		require.NoError(t, store.Sales().Update(ctx, &entity.Sale{ID: "s2", CompanyID: "c1", CustomerID: "cli-1"}))
		return boom
	})
	assert.ErrorIs(t, err, boom)

	s1, err := store.Sales().GetByID(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, entity.SaleStateConfirmed, s1.State)

	s2, err := store.Sales().GetByID(ctx, "s2")
	require.NoError(t, err)
	assert.Equal(t, "cli-1", s2.CustomerID)
	assert.Len(t, s2.Lines, 1)
}

func TestSaleRepo_TransitionState(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewStore().Sales()
	require.NoError(t, repo.Create(ctx, &entity.Sale{ID: "s1", CompanyID: "c1", State: entity.SaleStateDraft}))

	err := repo.TransitionState(ctx, "s1", entity.SaleStateConfirmed, entity.SaleStateProcessing, time.Now())
	assert.ErrorIs(t, err, domain.ErrConflict)

	require.NoError(t, repo.TransitionState(ctx, "s1", entity.SaleStateDraft, entity.SaleStateConfirmed, time.Now()))
	err = repo.TransitionState(ctx, "s1", entity.SaleStateDraft, entity.SaleStateConfirmed, time.Now())
	assert.ErrorIs(t, err, domain.ErrConflict)

	err = repo.TransitionState(ctx, "no-existe", entity.SaleStateDraft, entity.SaleStateConfirmed, time.Now())
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// Update no pisa el estado con una copia vieja.
	require.NoError(t, repo.Update(ctx, &entity.Sale{ID: "s1", CompanyID: "c1", State: entity.SaleStateDraft, CustomerID: "cli-1"}))
	sale, err := repo.GetByID(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, entity.SaleStateConfirmed, sale.State)
	assert.Equal(t, "cli-1", sale.CustomerID)
}

func TestSaleRepo_LinesAndCopies(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewStore().Sales()
	require.NoError(t, repo.Create(ctx, &entity.Sale{ID: "s1", CompanyID: "c1", State: entity.SaleStateDraft}))
	require.NoError(t, repo.AddLine(ctx, &entity.SaleLine{ID: "l2", SaleID: "s1", Sequence: 2}))
	require.NoError(t, repo.AddLine(ctx, &entity.SaleLine{ID: "l1", SaleID: "s1", Sequence: 1}))

	sale, err := repo.GetByID(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, sale.Lines, 2)
	assert.Equal(t, "l1", sale.Lines[0].ID)

	sale.PosSequenceID = "modificado sin Update"
	again, err := repo.GetByID(ctx, "s1")
	require.NoError(t, err)
	assert.Empty(t, again.PosSequenceID)

	require.NoError(t, repo.DeleteLine(ctx, "s1", "l1"))
	assert.ErrorIs(t, repo.DeleteLine(ctx, "s1", "l1"), domain.ErrNotFound)
	again, err = repo.GetByID(ctx, "s1")
	require.NoError(t, err)
	assert.Len(t, again.Lines, 1)
}

func TestSequenceRepo_FindAllowsDuplicates(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewStore().Sequences()
	require.NoError(t, repo.Create(ctx, &entity.PosSequence{ID: "a", PosID: "p1", InvoiceType: "1"}))
	require.NoError(t, repo.Create(ctx, &entity.PosSequence{ID: "b", PosID: "p1", InvoiceType: "1"}))
	require.NoError(t, repo.Create(ctx, &entity.PosSequence{ID: "c", PosID: "p2", InvoiceType: "1"}))

	found, err := repo.FindByPosAndInvoiceType(ctx, "p1", "1")
	require.NoError(t, err)
	assert.Len(t, found, 2)

	found, err = repo.FindByPosAndInvoiceType(ctx, "p1", "6")
	require.NoError(t, err)
	assert.Empty(t, found)
}
