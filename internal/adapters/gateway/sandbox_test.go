package gateway

import (
	"context"
	"testing"
	"time"

	"github.com/lcodev/ecom_backend/internal/apperrors"
	"github.com/lcodev/ecom_backend/internal/core/domain"
	"github.com/lcodev/ecom_backend/internal/utils"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func sale(nonce, amount string) domain.SaleRequest {
	return domain.SaleRequest{
		Amount:              decimal.RequireFromString(amount),
		PaymentMethodNonce:  nonce,
		SubmitForSettlement: true,
		CustomerID:          "user-1",
	}
}

func TestClientTokenCarriesMerchant(t *testing.T) {
	g := NewSandboxGateway("merchant-42", "secret")

	token, err := g.GenerateClientToken(context.Background(), "user-1")
	require.NoError(t, err)

	claims, err := utils.ParseClientTokenJWT(token, "secret")
	require.NoError(t, err)
	assert.Equal(t, "merchant-42", claims.MerchantID)
	assert.Equal(t, "user-1", claims.Subject)

	_, err = utils.ParseClientTokenJWT(token, "other-secret")
	assert.Error(t, err)
}

func TestSaleOutcomes(t *testing.T) {
	g := NewSandboxGateway("m", "s")
	ctx := context.Background()

	tx, err := g.Sale(ctx, sale(NonceValid, "9.99"))
	require.NoError(t, err)
	assert.Len(t, tx.ID, transactionIDLen)
	assert.Equal(t, domain.StatusSubmittedForSettlement, tx.Status)
	assert.True(t, decimal.RequireFromString("9.99").Equal(tx.Amount))

	_, err = g.Sale(ctx, sale(NonceProcessorDeclined, "9.99"))
	assert.ErrorIs(t, err, apperrors.ErrPaymentDeclined)
	reason, ok := apperrors.DeclineReason(err)
	assert.True(t, ok)
	assert.Equal(t, "Do Not Honor", reason)

	_, err = g.Sale(ctx, sale(NonceGatewayUnavailable, "9.99"))
	assert.ErrorIs(t, err, apperrors.ErrGatewayUnavailable)
	assert.True(t, apperrors.IsRetryable(err))

	_, err = g.Sale(ctx, sale(NonceValid, "2000.01"))
	reason, _ = apperrors.DeclineReason(err)
	assert.Equal(t, "Insufficient Funds", reason)

	_, err = g.Sale(ctx, sale(NonceValid, "2000.00"))
	assert.NoError(t, err)

	_, err = g.Sale(ctx, sale("bogus", "1.00"))
	assert.ErrorIs(t, err, apperrors.ErrPaymentDeclined)

	_, err = g.Sale(ctx, sale(NonceValid, "0"))
	assert.ErrorIs(t, err, apperrors.ErrPaymentDeclined)
}

func TestAuthorizeOnly(t *testing.T) {
	g := NewSandboxGateway("m", "s")
	req := sale(NonceValid, "1.00")
	req.SubmitForSettlement = false

	tx, err := g.Sale(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusAuthorized, tx.Status)
}

func TestLatencyHonoursDeadline(t *testing.T) {
	defer goleak.VerifyNone(t)

	g := NewSandboxGateway("m", "s", WithLatency(time.Second))
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := g.Sale(ctx, sale(NonceValid, "1.00"))
	assert.ErrorIs(t, err, apperrors.ErrGatewayUnavailable)

	cancelled, cancelNow := context.WithCancel(context.Background())
	cancelNow()
	_, err = NewSandboxGateway("m", "s").GenerateClientToken(cancelled, "u")
	assert.ErrorIs(t, err, apperrors.ErrGatewayUnavailable)
}
