package service

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"inkubator_backend/internals/features/tenants/registrations/model"
	"inkubator_backend/internals/features/tenants/registrations/repository"
	"inkubator_backend/internals/helpers/dbtime"
)

const exportSheet = "Tenants"

var exportHeaders = []string{
	"No", "Nama Bisnis", "Kategori", "Jenis Usaha", "Ketua Tim", "NIM/NIDN Ketua",
	"Nomor Telepon", "Fakultas", "Prodi", "Anggota Tim", "Lama Usaha (bulan)", "Omzet",
	"Status", "Alasan Penolakan", "Tanggal Daftar",
}

var exportWidths = []float64{6, 28, 18, 18, 24, 18, 16, 22, 22, 36, 14, 16, 20, 36, 18}

// ExportXLSX menulis daftar registrasi (filter sama dengan list, tanpa paging) ke xlsx.
func (s *Service) ExportXLSX(ctx context.Context, status *model.RegistrationStatus, q string) ([]byte, error) {
	rows, _, err := s.Repo.List(ctx, repository.ListFilter{Status: status, Q: q})
	if err != nil {
		return nil, fmt.Errorf("list registrations: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		return nil, err
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"1F4E78"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return nil, err
	}

	header := make([]any, len(exportHeaders))
	for i, h := range exportHeaders {
		header[i] = h
	}
	if err := f.SetSheetRow(exportSheet, "A1", &header); err != nil {
		return nil, err
	}
	lastCol, _ := excelize.ColumnNumberToName(len(exportHeaders))
	if err := f.SetCellStyle(exportSheet, "A1", lastCol+"1", headerStyle); err != nil {
		return nil, err
	}
	for i, w := range exportWidths {
		col, _ := excelize.ColumnNumberToName(i + 1)
		if err := f.SetColWidth(exportSheet, col, col, w); err != nil {
			return nil, err
		}
	}

	for i := range rows {
		r := &rows[i]
		reason := ""
		if r.RejectionReason != nil {
			reason = *r.RejectionReason
		}
		row := []any{
			i + 1,
			r.NamaBisnis,
			r.KategoriBisnis,
			r.JenisUsaha,
			r.NamaKetuaTim,
			r.NimNidnKetua,
			r.NomorTelepon,
			r.Fakultas,
			r.Prodi,
			membersCell(r.NamaAnggotaTim, r.NimNidnAnggota),
			r.LamaUsaha,
			r.Omzet,
			r.Status.Label(),
			reason,
			dbtime.ToAppTime(r.CreatedAt).Format("2006-01-02 15:04"),
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(exportSheet, cell, &row); err != nil {
			return nil, err
		}
	}

	if err := f.AutoFilter(exportSheet, fmt.Sprintf("A1:%s%d", lastCol, len(rows)+1), nil); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("write xlsx: %w", err)
	}
	return buf.Bytes(), nil
}

// membersCell "Nama (NIM), ..."; data rusak ditulis apa adanya.
func membersCell(namesRaw, nimsRaw string) string {
	names, err1 := decodeStringArray(namesRaw)
	nims, err2 := decodeStringArray(nimsRaw)
	if err1 != nil || err2 != nil {
		return namesRaw
	}
	parts := make([]string, 0, len(names))
	for i, n := range names {
		if strings.TrimSpace(n) == "" {
			continue
		}
		if i < len(nims) && nims[i] != "" {
			n = fmt.Sprintf("%s (%s)", n, nims[i])
		}
		parts = append(parts, n)
	}
	return strings.Join(parts, ", ")
}
