package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"inkubator_backend/internals/portal/draft"
	"inkubator_backend/internals/portal/formdata"
	"inkubator_backend/internals/portal/wizard"
)

// draftStore draft milik user yang sedang login.
func draftStore(ctx context.Context) (*draft.Store, error) {
	s, err := deps.tokens.Current(ctx)
	if err != nil {
		return nil, err
	}
	return draft.NewStore(deps.kv, s.User.ID), nil
}

func newAutosaver(store *draft.Store) *draft.Autosaver {
	return draft.NewAutosaver(store, func(s draft.Status) {
		switch s {
		case draft.StatusSaving:
			fmt.Println("💾 Menyimpan draft...")
		case draft.StatusSaved:
			fmt.Println("✅ Draft tersimpan")
		case draft.StatusFailed:
			fmt.Println("⚠️ Draft gagal disimpan")
		case draft.StatusIdle:
		}
	}, deps.log)
}

var draftCmd = &cobra.Command{
	Use:   "draft",
	Short: "Kelola draft registrasi lokal",
}

var draftShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Tampilkan draft tersimpan",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := draftStore(cmd.Context())
		if err != nil {
			return err
		}
		d, err := store.Load(cmd.Context())
		if err != nil {
			return err
		}
		if d == nil {
			fmt.Println("Belum ada draft.")
			return nil
		}
		form := wizard.FromDraft(formdata.Defaults(), d)
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(map[string]any{"formData": form.Data, "members": form.Members})
	},
}

var draftClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Hapus draft tersimpan",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := draftStore(cmd.Context())
		if err != nil {
			return err
		}
		if err := store.Delete(cmd.Context()); err != nil {
			return err
		}
		fmt.Println("🗑️ Draft dihapus")
		return nil
	},
}

var draftMembers []string

var draftSetCmd = &cobra.Command{
	Use:   "set field=value...",
	Short: "Ubah field draft (mis. nama_bisnis=\"Kopi Kita\")",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		store, err := draftStore(ctx)
		if err != nil {
			return err
		}
		res, err := loadEditable(ctx, store)
		if err != nil {
			return err
		}

		form, err := editForm(ctx, res, store)
		if err != nil {
			return err
		}
		saver := newAutosaver(store)
		form.OnChange = saver.Touch

		var members []string
		if cmd.Flags().Changed("member") {
			members = draftMembers
		}
		if err := applyDraftEdits(form, args, members); err != nil {
			return err
		}

		printFieldErrors(form)
		return saver.Flush(ctx)
	},
}

// applyDraftEdits menerapkan argumen field=value; members nil = daftar anggota tidak diubah.
func applyDraftEdits(form *wizard.Form, args, members []string) error {
	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		if !ok {
			return fmt.Errorf("argumen %q harus berbentuk field=value", arg)
		}
		if err := form.SetField(key, value); err != nil {
			return err
		}
	}
	if members == nil {
		return nil
	}
	form.Members = nil
	for _, raw := range members {
		name, nim, _ := strings.Cut(raw, ":")
		if err := form.AddMember(formdata.Member{Name: strings.TrimSpace(name), NIM: strings.TrimSpace(nim)}); err != nil {
			return err
		}
	}
	return nil
}

func printFieldErrors(form *wizard.Form) {
	if form.Errors.Empty() {
		return
	}
	keys := make([]string, 0, len(form.Errors))
	for k := range form.Errors {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Printf("  ⚠️ %s: %s\n", k, form.Errors.Get(k))
	}
}

func init() {
	draftSetCmd.Flags().StringArrayVar(&draftMembers, "member", nil, "anggota tim \"Nama:NIM\" (ulangi, maks 4; mengganti daftar lama)")
	draftCmd.AddCommand(draftShowCmd, draftClearCmd, draftSetCmd)
}
