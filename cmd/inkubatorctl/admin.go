package main

import (
	"errors"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"inkubator_backend/internals/portal/apiclient"
	"inkubator_backend/internals/portal/review"
)

var (
	adminStatus  string
	adminQuery   string
	adminPage    int
	adminPerPage int
	adminReason  string
	adminOut     string
)

var adminCmd = &cobra.Command{
	Use:   "admin",
	Short: "Review registrasi tenant (khusus admin)",
}

func parseStatusFlag(raw string) (apiclient.Status, error) {
	if raw == "" || raw == "all" {
		return "", nil
	}
	s, ok := apiclient.ParseStatus(raw)
	if !ok {
		return "", fmt.Errorf("status %q tidak dikenal (pending|approved|rejected|all)", raw)
	}
	return s, nil
}

var adminListCmd = &cobra.Command{
	Use:   "list",
	Short: "Daftar registrasi",
	RunE: func(cmd *cobra.Command, args []string) error {
		status, err := parseStatusFlag(adminStatus)
		if err != nil {
			return err
		}
		board := review.NewBoard(deps.api, deps.tokens)
		board.PerPage = adminPerPage
		if err := board.SetStatus(cmd.Context(), status); err != nil {
			return err
		}
		board.SetSearch(adminQuery)
		board.SetPage(adminPage)

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tBISNIS\tKETUA\tNIM/NIDN\tSTATUS\tDIBUAT")
		for _, r := range board.PageItems() {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
				r.ID, r.NamaBisnis, r.NamaKetuaTim, r.NimNidnKetua, r.Status, r.CreatedAt.Format("2006-01-02"))
		}
		if err := w.Flush(); err != nil {
			return err
		}
		fmt.Printf("Halaman %d/%d · %d cocok dari %d\n",
			board.Page, board.TotalPages(), len(board.Filtered()), board.Total())
		return nil
	},
}

func confirmStatus(cmd *cobra.Command, id string, status apiclient.Status, reason string) error {
	ctx := cmd.Context()
	token, err := deps.tokens.GetValidToken(ctx)
	if err != nil {
		return err
	}
	target, err := deps.api.GetRegistration(ctx, token, id)
	if err != nil {
		return err
	}

	dialog, err := review.OpenDialog(*target, status)
	if err != nil {
		return fmt.Errorf("%s: status saat ini %s", err, target.Status)
	}
	dialog.Reason = reason

	flow := review.NewFlow(deps.api, deps.tokens, nil, deps.log)
	out, err := flow.Confirm(ctx, dialog)
	if errors.Is(err, review.ErrDialogInvalid) {
		return fmt.Errorf("%s (%d karakter)", dialog.Error, dialog.CharCount())
	}
	if err != nil {
		return err
	}
	fmt.Printf("✅ %s → %s\n", target.NamaBisnis, out.Status)
	return nil
}

var adminApproveCmd = &cobra.Command{
	Use:   "approve ID",
	Short: "Setujui registrasi pending",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return confirmStatus(cmd, args[0], apiclient.StatusApproved, "")
	},
}

var adminRejectCmd = &cobra.Command{
	Use:   "reject ID",
	Short: "Tolak registrasi pending (alasan minimal 10 karakter)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return confirmStatus(cmd, args[0], apiclient.StatusRejected, adminReason)
	},
}

var adminExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Unduh registrasi sebagai xlsx",
	RunE: func(cmd *cobra.Command, args []string) error {
		status, err := parseStatusFlag(adminStatus)
		if err != nil {
			return err
		}
		token, err := deps.tokens.GetValidToken(cmd.Context())
		if err != nil {
			return err
		}
		data, err := deps.api.ExportRegistrations(cmd.Context(), token, status)
		if err != nil {
			return err
		}
		if err := os.WriteFile(adminOut, data, 0o644); err != nil {
			return err
		}
		fmt.Printf("📦 %s (%d bytes)\n", adminOut, len(data))
		return nil
	},
}

func init() {
	adminListCmd.Flags().StringVar(&adminStatus, "status", "", "pending|approved|rejected|all")
	adminListCmd.Flags().StringVar(&adminQuery, "q", "", "cari nama bisnis, nama ketua, atau NIM/NIDN")
	adminListCmd.Flags().IntVar(&adminPage, "page", 1, "halaman")
	adminListCmd.Flags().IntVar(&adminPerPage, "per-page", review.DefaultPerPage, "baris per halaman")

	adminRejectCmd.Flags().StringVar(&adminReason, "reason", "", "alasan penolakan")

	adminExportCmd.Flags().StringVar(&adminStatus, "status", "", "pending|approved|rejected|all")
	adminExportCmd.Flags().StringVar(&adminOut, "out", "tenants.xlsx", "file tujuan")

	adminCmd.AddCommand(adminListCmd, adminApproveCmd, adminRejectCmd, adminExportCmd)
}
