package service

import (
	"bytes"
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"inkubator_backend/internals/features/tenants/registrations/model"
)

func TestExportXLSX_FiltersByStatus(t *testing.T) {
	svc, repo, _ := newTestService()
	reason := "Proposal belum lengkap"
	u1, u2 := uuid.New(), uuid.New()
	repo.byUser[u1] = &model.TenantRegistrationModel{
		ID: uuid.New(), UserID: u1, NamaBisnis: "Kopi Kampus", NamaKetuaTim: "Sari",
		NamaAnggotaTim: `["Budi","Ani"]`, NimNidnAnggota: `["1","2"]`,
		Status: model.StatusRejected, RejectionReason: &reason, Omzet: "0",
	}
	repo.byUser[u2] = &model.TenantRegistrationModel{
		ID: uuid.New(), UserID: u2, NamaBisnis: "Batik Digital", Status: model.StatusApproved, Omzet: "0",
	}

	status := model.StatusRejected
	data, err := svc.ExportXLSX(context.Background(), &status, "")
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(exportSheet)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, exportHeaders[1], rows[0][1])
	assert.Equal(t, "Kopi Kampus", rows[1][1])
	assert.Equal(t, "Budi (1), Ani (2)", rows[1][9])
	assert.Equal(t, "Ditolak", rows[1][12])
	assert.Equal(t, reason, rows[1][13])
}

func TestMembersCell_MalformedKeptVerbatim(t *testing.T) {
	assert.Equal(t, "not-json", membersCell("not-json", "[]"))
	assert.Equal(t, "", membersCell("", ""))
	assert.Equal(t, "A", membersCell(`["A",""]`, `[]`))
}
