package afip_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ventas-pos-ar/pkg/afip"
)

func TestValidateCUIT_Validos(t *testing.T) {
	for _, cuit := range []string{"20-12345678-6", "20123456786", "30-71432198-2", "20000000060"} {
		assert.NoError(t, afip.ValidateCUIT(cuit), cuit)
		assert.True(t, afip.IsCUIT(cuit), cuit)
	}
}

func TestValidateCUIT_DigitoIncorrecto(t *testing.T) {
	err := afip.ValidateCUIT("20-12345678-5")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "esperado 6")
}

func TestValidateCUIT_LongitudInvalida(t *testing.T) {
	assert.Error(t, afip.ValidateCUIT("2012345678"))
	assert.Error(t, afip.ValidateCUIT(""))
	assert.False(t, afip.IsCUIT("DNI 12345678"))
}

func TestValidateCUIT_SoloDigitosASCII(t *testing.T) {
	// dígitos arábigo-índicos y de ancho completo no cuentan como dígitos del CUIT
	assert.Error(t, afip.ValidateCUIT("٢٠١٢٣٤٥٦٧٨٦"))
	assert.Error(t, afip.ValidateCUIT("２０-12345678-6"))
	assert.NoError(t, afip.ValidateCUIT(" 20.12345678.6 "))
}

func TestComputeCUITVerificationDigit(t *testing.T) {
	d, err := afip.ComputeCUITVerificationDigit("20-12345678")
	require.NoError(t, err)
	assert.Equal(t, byte('6'), d)

	d, err = afip.ComputeCUITVerificationDigit("2000000006")
	require.NoError(t, err)
	assert.Equal(t, byte('0'), d, "resto 0 -> verificador 0")

	_, err = afip.ComputeCUITVerificationDigit("2000000001")
	assert.Error(t, err, "resto 1 no admite verificador")
}
