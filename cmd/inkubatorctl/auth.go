package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"inkubator_backend/internals/portal/apiclient"
	"inkubator_backend/internals/portal/lifecycle"
	"inkubator_backend/internals/portal/session"
)

var (
	loginIDToken      string
	loginRefreshToken string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Login dengan ID token Firebase/Google",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := deps.tokens.Login(cmd.Context(), deps.api, loginIDToken, loginRefreshToken)
		if err != nil {
			return err
		}
		fmt.Printf("✅ Login sebagai %s <%s> (%s)\n", s.User.DisplayName, s.User.Email, s.User.Role)
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Hapus sesi lokal",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := deps.tokens.Logout(cmd.Context()); err != nil {
			return err
		}
		fmt.Println("👋 Sesi dihapus")
		return nil
	},
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Tampilkan tahap registrasi tenant",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		store, err := draftStore(ctx)
		if err != nil {
			return err
		}
		res, _ := lifecycle.NewLoader(deps.api, deps.tokens, store, deps.log).Load(ctx)

		fmt.Printf("📋 Tahap: %s (tampilan: %s)\n", res.Stage, res.Stage.View())
		switch res.Stage {
		case lifecycle.LookupFailed:
			return res.Err
		case lifecycle.NoRegistration:
			if res.Draft != nil {
				fmt.Println("  Draft tersimpan ditemukan, lanjutkan dengan `register`.")
			} else {
				fmt.Println("  Belum ada registrasi. Mulai dengan `draft set` lalu `register`.")
			}
		case lifecycle.Pending:
			printRegistration(res.Registration)
			fmt.Println("  Menunggu review admin.")
		case lifecycle.Approved:
			printRegistration(res.Registration)
			fmt.Println("  🎉 Registrasi disetujui.")
		case lifecycle.Rejected:
			printRegistration(res.Registration)
			if r := res.Registration.RejectionReason; r != nil {
				fmt.Printf("  Alasan penolakan: %s\n", *r)
			}
			fmt.Println("  Perbaiki data lalu kirim ulang dengan `register`.")
		}
		return nil
	},
}

func printRegistration(r *apiclient.Registration) {
	if r == nil {
		return
	}
	fmt.Printf("  %s · %s (%s) · status %s · diperbarui %s\n",
		r.NamaBisnis, r.NamaKetuaTim, r.NimNidnKetua, r.Status, r.UpdatedAt.Format("2006-01-02 15:04"))
}

// cliMessage pesan error ramah untuk terminal.
func cliMessage(err error) string {
	if errors.Is(err, session.ErrReauthenticate) {
		return err.Error() + " (jalankan `inkubatorctl login`)"
	}
	return apiclient.Message(err)
}

func init() {
	loginCmd.Flags().StringVar(&loginIDToken, "id-token", "", "ID token dari identity provider")
	loginCmd.Flags().StringVar(&loginRefreshToken, "refresh-token", "", "refresh token Firebase (opsional)")
	_ = loginCmd.MarkFlagRequired("id-token")
}
