package paycalc

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNetPayBreakdown(t *testing.T) {
	net := NetPay(1000, DefaultTaxRates())

	assert.Equal(t, 1000.0, net.GrossPay)
	assert.Equal(t, 120.0, net.Federal)
	assert.Equal(t, 30.5, net.State)
	assert.Equal(t, 62.0, net.SocialSecurity)
	assert.Equal(t, 14.5, net.Medicare)
	assert.Equal(t, 227.0, net.TotalTax)
	assert.Equal(t, 773.0, net.NetPay)
}

func TestNetPayZeroGross(t *testing.T) {
	net := NetPay(0, DefaultTaxRates())
	assert.Equal(t, 0.0, net.TotalTax)
	assert.Equal(t, 0.0, net.NetPay)
}

func TestNetPayRounding(t *testing.T) {
	net := NetPay(123.45, DefaultTaxRates())

	// Each deduction rounds to cents independently; net pay is gross
	// minus the unrounded total, also rounded.
	assert.Equal(t, 14.81, net.Federal)
	assert.Equal(t, 3.77, net.State)
	assert.Equal(t, 7.65, net.SocialSecurity)
	assert.Equal(t, 1.79, net.Medicare)
	assert.Equal(t, 95.43, net.NetPay)
}

func TestNetPayCustomRates(t *testing.T) {
	rates := TaxRates{Federal: 0.2}
	net := NetPay(500, rates)

	assert.Equal(t, 100.0, net.Federal)
	assert.Equal(t, 0.0, net.State)
	assert.Equal(t, 400.0, net.NetPay)
}
