package employer

import (
	"context"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sichrplace/internal/screening/models"
	"sichrplace/internal/screening/providers"
)

func newTestVerifier(seed uint64) *Verifier {
	return New(WithLatency(0, 0), WithRand(rand.New(rand.NewPCG(seed, 0))))
}

func TestVerify(t *testing.T) {
	t.Run("document verification follows documentation completeness", func(t *testing.T) {
		withDocs := models.EmploymentData{PayslipDocuments: []string{"payslip.pdf"}}
		conf, err := newTestVerifier(1).Verify(context.Background(), withDocs)
		require.NoError(t, err)
		assert.True(t, conf.DocumentVerified)

		conf, err = newTestVerifier(1).Verify(context.Background(), models.EmploymentData{})
		require.NoError(t, err)
		assert.False(t, conf.DocumentVerified)
	})

	t.Run("employer confirmation fails occasionally but not always", func(t *testing.T) {
		confirmed, unconfirmed := 0, 0
		v := New(WithLatency(0, 0), WithRand(rand.New(rand.NewPCG(42, 0))))
		for i := 0; i < 500; i++ {
			conf, err := v.Verify(context.Background(), models.EmploymentData{})
			require.NoError(t, err)
			if conf.EmployerConfirmed {
				confirmed++
			} else {
				unconfirmed++
			}
		}
		assert.Greater(t, confirmed, 0)
		assert.Greater(t, unconfirmed, 0)
		assert.Greater(t, confirmed, unconfirmed, "confirmation should dominate")
	})

	t.Run("cancelled context surfaces a retryable timeout", func(t *testing.T) {
		v := New(WithLatency(time.Hour, 2*time.Hour), WithRand(rand.New(rand.NewPCG(7, 0))))
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := v.Verify(ctx, models.EmploymentData{})
		require.Error(t, err)
		assert.Equal(t, providers.ErrorTimeout, providers.CategoryOf(err))
	})
}
