package wizard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inkubator_backend/internals/features/tenants/registrations/validation"
	"inkubator_backend/internals/portal/draft"
	"inkubator_backend/internals/portal/formdata"
)

func TestSetPhone_ErrorSetThenCleared(t *testing.T) {
	f := New(formdata.Defaults(), nil)

	r := f.SetPhone("0712")
	assert.False(t, r.Valid)
	assert.Equal(t, validation.MsgPhonePrefix, f.Errors.Get("nomor_telepon"))
	assert.Equal(t, "0712", f.Data.NomorTelepon)

	r = f.SetPhone("0812345678")
	assert.True(t, r.Valid)
	assert.False(t, f.Errors.Has("nomor_telepon"))
}

func TestSetField_ClearsErrorAndNotifies(t *testing.T) {
	f := New(formdata.Defaults(), nil)
	var snaps []draft.Draft
	f.OnChange = func(d draft.Draft) { snaps = append(snaps, d) }

	f.Errors.Set("nama_bisnis", MsgRequired)
	require.NoError(t, f.SetField("nama_bisnis", "Kopi Kita"))
	assert.Equal(t, "Kopi Kita", f.Data.NamaBisnis)
	assert.False(t, f.Errors.Has("nama_bisnis"))
	require.Len(t, snaps, 1)

	require.NoError(t, f.SetField("startupStatus", "bertumbuh"))
	assert.Equal(t, formdata.StartupBertumbuh, f.Data.StartupStatus)

	assert.ErrorIs(t, f.SetField("startupStatus", "lama"), ErrUnknownField)
	assert.ErrorIs(t, f.SetField("ktp", "x"), ErrUnknownField)
	assert.Len(t, snaps, 2)
}

func TestAttachFile_OversizeNotStored(t *testing.T) {
	f := New(formdata.Defaults(), nil)

	res := f.AttachFile(validation.KindLogo, File{Name: "logo.png", Size: 2*validation.MB + 1})
	assert.False(t, res.Accepted)
	assert.True(t, res.Reset)
	assert.Contains(t, res.Message, "2MB")
	assert.NotContains(t, f.Files, validation.KindLogo)
	assert.True(t, f.Errors.Has("logo"))

	res = f.AttachFile(validation.KindLogo, File{Name: "logo.png", Size: 2 * validation.MB})
	assert.True(t, res.Accepted)
	assert.Contains(t, f.Files, validation.KindLogo)
	assert.False(t, f.Errors.Has("logo"))
}

func TestAddProductPhotos_AppendsValidAggregatesInvalid(t *testing.T) {
	f := New(formdata.Defaults(), nil)
	f.AddProductPhotos([]File{{Name: "first.jpg", Size: 10}})

	res := f.AddProductPhotos([]File{
		{Name: "a.jpg", Size: 100},
		{Name: "big1.jpg", Size: 5*validation.MB + 1},
		{Name: "b.jpg", Size: 5 * validation.MB},
		{Name: "big2.jpg", Size: 6 * validation.MB},
	})
	assert.Equal(t, 2, res.Accepted)
	assert.Equal(t, []string{"big1.jpg", "big2.jpg"}, res.Rejected)
	assert.Contains(t, res.Message, "big1.jpg, big2.jpg")
	assert.Equal(t, res.Message, f.Errors.Get("foto_produk"))

	names := []string{}
	for _, p := range f.ProductPhotos {
		names = append(names, p.Name)
	}
	assert.Equal(t, []string{"first.jpg", "a.jpg", "b.jpg"}, names)

	f.RemoveProductPhoto(0)
	assert.Len(t, f.ProductPhotos, 2)
}

func TestMembers_MaxFour(t *testing.T) {
	f := New(formdata.Defaults(), nil)
	for i := 0; i < validation.MaxMembers; i++ {
		require.NoError(t, f.AddMember(formdata.Member{Name: "m"}))
	}
	assert.ErrorIs(t, f.AddMember(formdata.Member{Name: "x"}), ErrTooManyMembers)

	require.NoError(t, f.UpdateMember(1, formdata.Member{Name: "Sari", NIM: "2"}))
	assert.Equal(t, "Sari", f.Members[1].Name)
	require.NoError(t, f.RemoveMember(0))
	assert.Len(t, f.Members, 3)
	assert.ErrorIs(t, f.RemoveMember(9), ErrMemberIndex)
}

func TestSnapshot_ExcludesFilesAndRestores(t *testing.T) {
	f := New(formdata.Defaults(), []formdata.Member{{Name: "Budi", NIM: "1"}})
	require.NoError(t, f.SetField("nama_bisnis", "Kopi"))
	f.AttachFile(validation.KindProposal, File{Name: "p.pdf", Size: 10, Data: []byte("pdf")})

	d, err := f.Snapshot()
	require.NoError(t, err)
	assert.NotContains(t, string(d.FormData), "p.pdf")

	restored := FromDraft(formdata.Defaults(), &d)
	assert.Equal(t, "Kopi", restored.Data.NamaBisnis)
	assert.Equal(t, f.Members, restored.Members)
	assert.Empty(t, restored.Files)
}

func TestFromDraft_NilAndBroken(t *testing.T) {
	defaults := formdata.Defaults()
	assert.Equal(t, defaults, FromDraft(defaults, nil).Data)

	broken := &draft.Draft{FormData: []byte(`{"nama_bisnis":`)}
	assert.Equal(t, defaults, FromDraft(defaults, broken).Data)
}

func TestValidateRequired(t *testing.T) {
	f := New(formdata.Defaults(), nil)
	assert.False(t, f.ValidateRequired())
	assert.Equal(t, MsgRequired, f.Errors.Get("nama_ketua_tim"))

	for _, key := range requiredFields {
		require.NoError(t, f.SetField(key, "isi"))
	}
	f.SetPhone("0812345678")
	assert.True(t, f.ValidateRequired())
}
