package validation

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidatePhone(t *testing.T) {
	cases := []struct {
		in      string
		valid   bool
		message string
	}{
		{"", true, ""},
		{"0812345678", true, ""},
		{"081234567890123", true, ""},
		{"0712345678", false, MsgPhonePrefix},
		{"+6281234567", false, MsgPhonePrefix},
		{"8081234567", false, MsgPhonePrefix},
		{"08", false, MsgPhoneTooShort},
		{"081234567", false, MsgPhoneTooShort},
	}
	for _, tc := range cases {
		r := ValidatePhone(tc.in)
		assert.Equal(t, tc.valid, r.Valid, tc.in)
		assert.Equal(t, tc.message, r.Message, tc.in)
	}
}

func TestValidatePhone_PrefixCheckedBeforeLength(t *testing.T) {
	// pendek dan prefix salah → pesan prefix
	r := ValidatePhone("12")
	assert.False(t, r.Valid)
	assert.Contains(t, r.Message, "must start with 08")
}

func TestValidateFile_BoundaryPerKind(t *testing.T) {
	limits := map[DocumentKind]int64{
		KindLogo:            2,
		KindSertifikatNIB:   5,
		KindProposal:        10,
		KindBMC:             5,
		KindRAB:             5,
		KindLaporanKeuangan: 10,
		KindFotoProduk:      5,
	}
	for kind, mb := range limits {
		limit := mb * 1048576
		assert.True(t, ValidateFile(limit, kind).Valid, "%s at limit", kind)

		r := ValidateFile(limit+1, kind)
		assert.False(t, r.Valid, "%s one byte over", kind)
		assert.Contains(t, r.Message, fmt.Sprintf("%dMB", mb), kind)
	}
}

func TestValidateFile_LogoExample(t *testing.T) {
	r := ValidateFile(2_097_153, KindLogo)
	assert.False(t, r.Valid)
	assert.Contains(t, r.Message, "2MB")
}

func TestValidateFile_UnknownKind(t *testing.T) {
	r := ValidateFile(1, DocumentKind("ktp"))
	assert.False(t, r.Valid)
}

func TestValidateRejectionReason(t *testing.T) {
	assert.Equal(t, MsgReasonRequired, ValidateRejectionReason("").Message)
	assert.Equal(t, MsgReasonRequired, ValidateRejectionReason("    ").Message)
	assert.Equal(t, MsgReasonTooShort, ValidateRejectionReason("123456789").Message)
	assert.Equal(t, MsgReasonTooShort, ValidateRejectionReason("  123456789   ").Message)
	assert.True(t, ValidateRejectionReason("1234567890").Valid)
	assert.True(t, ValidateRejectionReason("Dokumen RAB tidak lengkap").Valid)
}

func TestErrorMap_Apply(t *testing.T) {
	m := ErrorMap{}
	assert.False(t, m.Apply("nomor_telepon", ValidatePhone("0712")))
	assert.True(t, m.Has("nomor_telepon"))
	assert.Equal(t, MsgPhonePrefix, m.Get("nomor_telepon"))

	assert.True(t, m.Apply("nomor_telepon", ValidatePhone("0812345678")))
	assert.False(t, m.Has("nomor_telepon"))
	assert.True(t, m.Empty())
}

func TestProductPhotoBatchMessage(t *testing.T) {
	assert.Empty(t, ProductPhotoBatchMessage(nil))
	msg := ProductPhotoBatchMessage([]string{"a.jpg", "b.png"})
	assert.Contains(t, msg, "5MB")
	assert.Contains(t, msg, "a.jpg, b.png")
}

func TestValidateMembers(t *testing.T) {
	assert.True(t, ValidateMembers([]string{"A"}, []string{"1"}).Valid)
	assert.False(t, ValidateMembers([]string{"A", "B"}, []string{"1"}).Valid)
	five := []string{"a", "b", "c", "d", "e"}
	assert.False(t, ValidateMembers(five, five).Valid)
}

func TestDocumentKind_Parse(t *testing.T) {
	k, ok := ParseDocumentKind(" proposal ")
	assert.True(t, ok)
	assert.Equal(t, KindProposal, k)

	_, ok = ParseDocumentKind("ktp")
	assert.False(t, ok)
	assert.True(t, KindFotoProduk.IsImage())
	assert.False(t, KindRAB.IsImage())
}
