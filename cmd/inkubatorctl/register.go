package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"inkubator_backend/internals/features/tenants/registrations/validation"
	"inkubator_backend/internals/portal/draft"
	"inkubator_backend/internals/portal/formdata"
	"inkubator_backend/internals/portal/lifecycle"
	"inkubator_backend/internals/portal/submission"
	"inkubator_backend/internals/portal/wizard"
)

var (
	registerFormPath string
	registerPhotos   []string
	registerFiles    = map[validation.DocumentKind]*string{}
)

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Kirim (atau kirim ulang) registrasi startup",
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

		form, err := buildForm(ctx, res, store)
		if err != nil {
			return err
		}

		for kind, path := range registerFiles {
			if *path == "" {
				continue
			}
			f, err := wizard.FileFromPath(*path)
			if err != nil {
				return err
			}
			form.AttachFile(kind, f)
		}
		var photos []wizard.File
		for _, p := range registerPhotos {
			f, err := wizard.FileFromPath(p)
			if err != nil {
				return err
			}
			photos = append(photos, f)
		}
		form.AddProductPhotos(photos)

		if !form.ValidateRequired() {
			fmt.Println("Form belum valid:")
			printFieldErrors(form)
			return fmt.Errorf("registrasi tidak dikirim")
		}

		flow := submission.NewFlow(deps.api, deps.tokens, newAutosaver(store), func(path string) {
			fmt.Printf("➡️  Kembali ke dashboard (%s)\n", path)
		}, deps.log)
		reg, err := flow.Submit(ctx, form)
		if err != nil {
			return fmt.Errorf("%s", submission.ErrorMessage(err))
		}
		fmt.Printf("✅ Registrasi %s terkirim, status %s\n", reg.NamaBisnis, reg.Status)
		return nil
	},
}

// loadEditable tahap registrasi saat ini; hanya belum daftar / ditolak yang boleh diedit.
func loadEditable(ctx context.Context, store *draft.Store) (lifecycle.Result, error) {
	res, _ := lifecycle.NewLoader(deps.api, deps.tokens, store, deps.log).Load(ctx)
	if res.Stage == lifecycle.LookupFailed {
		return res, res.Err
	}
	if !res.Stage.Editable() {
		return res, fmt.Errorf("registrasi tidak bisa diubah pada tahap %s", res.Stage)
	}
	return res, nil
}

// buildForm: --form menang; selain itu form edit sesuai tahap (editForm).
func buildForm(ctx context.Context, res lifecycle.Result, store *draft.Store) (*wizard.Form, error) {
	if registerFormPath != "" {
		raw, err := os.ReadFile(registerFormPath)
		if err != nil {
			return nil, err
		}
		var d draft.Draft
		if err := json.Unmarshal(raw, &d); err != nil {
			return nil, fmt.Errorf("form %s: %w", registerFormPath, err)
		}
		return wizard.FromDraft(formdata.Defaults(), &d), nil
	}
	return editForm(ctx, res, store)
}

// editForm: dasar form = data registrasi yang ditolak (prefill) atau default
// bila belum daftar; draft tersimpan ditimpakan di atasnya.
func editForm(ctx context.Context, res lifecycle.Result, store *draft.Store) (*wizard.Form, error) {
	switch res.Stage {
	case lifecycle.Rejected:
		if res.Prefill == nil {
			return nil, fmt.Errorf("data registrasi ditolak belum dimuat")
		}
		d, err := store.Load(ctx)
		if err != nil {
			zap.L().Warn("⚠️ draft tidak bisa dibaca, pakai data registrasi", zap.Error(err))
			d = nil
		}
		if d == nil {
			return wizard.New(res.Prefill.Data, res.Prefill.Members), nil
		}
		return wizard.FromDraft(res.Prefill.Data, d), nil
	case lifecycle.NoRegistration:
		return wizard.FromDraft(formdata.Defaults(), res.Draft), nil
	case lifecycle.Pending, lifecycle.Approved, lifecycle.LookupFailed:
	}
	return nil, fmt.Errorf("registrasi tidak bisa diubah pada tahap %s", res.Stage)
}

func init() {
	registerCmd.Flags().StringVar(&registerFormPath, "form", "", "file JSON {formData, members}")
	registerCmd.Flags().StringArrayVar(&registerPhotos, "foto-produk", nil, "foto produk (ulangi untuk beberapa file)")
	for _, kind := range validation.SingleFileKinds {
		p := new(string)
		registerFiles[kind] = p
		registerCmd.Flags().StringVar(p, flagName(kind), "", kind.Label()+" (maks "+fmt.Sprint(kind.MaxBytes()/validation.MB)+"MB)")
	}
}

// flagName: sertifikat_nib → --sertifikat-nib
func flagName(kind validation.DocumentKind) string {
	return strings.ReplaceAll(string(kind), "_", "-")
}
