package credit_test

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/farmacia-pos/internal/application/credit"
	"github.com/jhoicas/farmacia-pos/internal/application/dto"
	"github.com/jhoicas/farmacia-pos/internal/domain"
	"github.com/jhoicas/farmacia-pos/internal/domain/entity"
	"github.com/jhoicas/farmacia-pos/internal/infrastructure/storage"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func setup(t *testing.T) (*storage.Store, *credit.UseCase) {
	t.Helper()
	st := storage.NewMemory(zerolog.Nop())
	return st, credit.NewUseCase(st.Repos.Clients, st.Tx, credit.Config{PhoneRegion: "NI"}, zerolog.Nop())
}

func newClient(t *testing.T, uc *credit.UseCase, limit string) *entity.Client {
	t.Helper()
	c, err := uc.Create(context.Background(), dto.ClientRequest{
		Name: "María López", Phone: "88881234", Address: "Managua", CreditLimit: dec(limit),
	})
	require.NoError(t, err)
	return c
}

func TestCreate_TelefonoInvalido(t *testing.T) {
	_, uc := setup(t)
	_, err := uc.Create(context.Background(), dto.ClientRequest{Name: "X", Phone: "12", CreditLimit: dec("10")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCreate_LimiteNegativo(t *testing.T) {
	_, uc := setup(t)
	_, err := uc.Create(context.Background(), dto.ClientRequest{Name: "X", Phone: "88881234", CreditLimit: dec("-1")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestPostCreditSale_EscenarioLimite(t *testing.T) {
	_, uc := setup(t)
	ctx := context.Background()
	c := newClient(t, uc, "5000")

	got, err := uc.PostCreditSale(ctx, c.ID, dec("2000"), "")
	require.NoError(t, err)
	assert.True(t, got.Balance.Equal(dec("2000")))

	_, err = uc.PostCreditSale(ctx, c.ID, dec("3500"), "")
	assert.ErrorIs(t, err, domain.ErrCreditLimitExceeded)

	stored, err := uc.GetByID(ctx, c.ID)
	require.NoError(t, err)
	assert.True(t, stored.Balance.Equal(dec("2000")))
}

func TestPostPayment_NoSuperaSaldo(t *testing.T) {
	_, uc := setup(t)
	ctx := context.Background()
	c := newClient(t, uc, "1000")
	_, err := uc.PostCreditSale(ctx, c.ID, dec("300"), "")
	require.NoError(t, err)

	_, err = uc.PostPayment(ctx, c.ID, dto.PaymentRequest{Amount: dec("301")})
	assert.ErrorIs(t, err, domain.ErrOverpayment)

	p, err := uc.PostPayment(ctx, c.ID, dto.PaymentRequest{Amount: dec("100"), Description: "Abono"})
	require.NoError(t, err)
	assert.True(t, p.Amount.Equal(dec("100")))

	st, err := uc.Statement(ctx, c.ID)
	require.NoError(t, err)
	assert.True(t, st.Balance.Equal(dec("200")))
	assert.True(t, st.Drift.IsZero())
	assert.True(t, st.AvailableCredit.Equal(dec("800")))
	assert.Len(t, st.Entries, 2)
	assert.Equal(t, entity.EntryPayment, st.Entries[1].Kind)
}

func TestPostPayment_ClienteInexistente(t *testing.T) {
	_, uc := setup(t)
	_, err := uc.PostPayment(context.Background(), "nope", dto.PaymentRequest{Amount: dec("1")})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestStatement_DriftEnClienteImportado(t *testing.T) {
	st, uc := setup(t)
	ctx := context.Background()
	require.NoError(t, st.Repos.Clients.Create(ctx, &entity.Client{ID: "legacy", Name: "Juan", Balance: dec("150"), CreditLimit: dec("500")}))

	s, err := uc.Statement(ctx, "legacy")
	require.NoError(t, err)
	assert.True(t, s.Drift.Equal(dec("150")))
	assert.NotNil(t, s.Entries)
}

func TestDelete_ConSaldoSeRechaza(t *testing.T) {
	_, uc := setup(t)
	ctx := context.Background()
	c := newClient(t, uc, "1000")
	_, err := uc.PostCreditSale(ctx, c.ID, dec("50"), "")
	require.NoError(t, err)

	assert.ErrorIs(t, uc.Delete(ctx, c.ID), domain.ErrClientHasBalance)

	_, err = uc.PostPayment(ctx, c.ID, dto.PaymentRequest{Amount: dec("50")})
	require.NoError(t, err)
	require.NoError(t, uc.Delete(ctx, c.ID))
	require.NoError(t, uc.Delete(ctx, c.ID), "eliminar dos veces no es error")
}

func TestUpdate_LimiteMenorQueSaldo(t *testing.T) {
	_, uc := setup(t)
	ctx := context.Background()
	c := newClient(t, uc, "1000")
	_, err := uc.PostCreditSale(ctx, c.ID, dec("600"), "")
	require.NoError(t, err)

	_, err = uc.Update(ctx, c.ID, dto.ClientRequest{Name: c.Name, Phone: "88881234", CreditLimit: dec("500")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	upd, err := uc.Update(ctx, c.ID, dto.ClientRequest{Name: "María L.", Phone: "88881234", CreditLimit: dec("2000")})
	require.NoError(t, err)
	assert.Equal(t, "María L.", upd.Name)
	assert.True(t, upd.Balance.Equal(dec("600")))
}

func TestList_BuscaPorNombreSinTildes(t *testing.T) {
	_, uc := setup(t)
	ctx := context.Background()
	newClient(t, uc, "100")
	_, err := uc.Create(ctx, dto.ClientRequest{Name: "Ángel Ruiz", Phone: "87654321", CreditLimit: dec("100")})
	require.NoError(t, err)

	got, err := uc.List(ctx, dto.ClientFilter{Search: "angel"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Ángel Ruiz", got[0].Name)

	all, err := uc.List(ctx, dto.ClientFilter{})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Ángel Ruiz", all[0].Name)
}
