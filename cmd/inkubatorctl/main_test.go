package main

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"inkubator_backend/internals/features/tenants/registrations/validation"
	"inkubator_backend/internals/portal/apiclient"
)

func TestParseStatusFlag(t *testing.T) {
	s, err := parseStatusFlag("all")
	assert.NoError(t, err)
	assert.Empty(t, s)

	s, err = parseStatusFlag("rejected")
	assert.NoError(t, err)
	assert.Equal(t, apiclient.StatusRejected, s)

	_, err = parseStatusFlag("archived")
	assert.Error(t, err)
}

func TestFlagName(t *testing.T) {
	assert.Equal(t, "sertifikat-nib", flagName(validation.KindSertifikatNIB))
	assert.Equal(t, "laporan-keuangan", flagName(validation.KindLaporanKeuangan))
	assert.Equal(t, "logo", flagName(validation.KindLogo))
}

func TestRegisterFlagsCoverSingleFileKinds(t *testing.T) {
	for _, kind := range validation.SingleFileKinds {
		assert.NotNil(t, registerCmd.Flags().Lookup(flagName(kind)), kind)
	}
}
