package review

import (
	"context"
	"strings"

	"inkubator_backend/internals/portal/apiclient"
)

const (
	DefaultPerPage = 10
	// DefaultFetchLimit ukuran halaman fetch, sama dengan batas limit admin di server.
	DefaultFetchLimit = 500
)

type Lister interface {
	ListRegistrations(ctx context.Context, token string, p apiclient.ListParams) (*apiclient.TenantList, error)
}

type TokenSource interface {
	GetValidToken(ctx context.Context) (string, error)
}

// Board daftar registrasi admin. Filter status di server, pencarian dan
// paging di klien atas hasil fetch terakhir.
type Board struct {
	API    Lister
	Tokens TokenSource

	Search     string
	Status     apiclient.Status
	Page       int
	PerPage    int
	FetchLimit int

	all   []apiclient.Registration
	total int64
}

func NewBoard(api Lister, tokens TokenSource) *Board {
	return &Board{API: api, Tokens: tokens, Page: 1, PerPage: DefaultPerPage, FetchLimit: DefaultFetchLimit}
}

// Refresh mengambil ulang seluruh daftar dari backend (tanpa patch lokal),
// halaman demi halaman sampai total server terpenuhi.
func (b *Board) Refresh(ctx context.Context) error {
	token, err := b.Tokens.GetValidToken(ctx)
	if err != nil {
		return err
	}
	limit := b.FetchLimit
	if limit <= 0 {
		limit = DefaultFetchLimit
	}

	var (
		all   []apiclient.Registration
		total int64
	)
	for {
		list, err := b.API.ListRegistrations(ctx, token, apiclient.ListParams{Status: b.Status, Skip: len(all), Limit: limit})
		if err != nil {
			return err
		}
		all = append(all, list.Tenants...)
		total = list.Total
		if len(list.Tenants) == 0 || int64(len(all)) >= total {
			break
		}
	}
	b.all = all
	b.total = total
	b.clampPage()
	return nil
}

// SetStatus filter server-side; "" berarti semua status.
func (b *Board) SetStatus(ctx context.Context, s apiclient.Status) error {
	b.Status = s
	b.Page = 1
	return b.Refresh(ctx)
}

func (b *Board) SetSearch(q string) {
	b.Search = q
	b.Page = 1
}

func (b *Board) SetPage(p int) {
	b.Page = p
	b.clampPage()
}

// Total jumlah baris di server untuk filter status aktif.
func (b *Board) Total() int64 { return b.total }

func (b *Board) All() []apiclient.Registration { return b.all }

// Filtered: substring case-insensitive pada nama bisnis, nama ketua, atau NIM/NIDN ketua.
func (b *Board) Filtered() []apiclient.Registration {
	q := strings.ToLower(strings.TrimSpace(b.Search))
	if q == "" {
		return b.all
	}
	out := make([]apiclient.Registration, 0, len(b.all))
	for _, r := range b.all {
		if strings.Contains(strings.ToLower(r.NamaBisnis), q) ||
			strings.Contains(strings.ToLower(r.NamaKetuaTim), q) ||
			strings.Contains(strings.ToLower(r.NimNidnKetua), q) {
			out = append(out, r)
		}
	}
	return out
}

func (b *Board) perPage() int {
	if b.PerPage <= 0 {
		return DefaultPerPage
	}
	return b.PerPage
}

func (b *Board) TotalPages() int {
	n := len(b.Filtered())
	if n == 0 {
		return 1
	}
	return (n + b.perPage() - 1) / b.perPage()
}

func (b *Board) clampPage() {
	if b.Page < 1 {
		b.Page = 1
	}
	if last := b.TotalPages(); b.Page > last {
		b.Page = last
	}
}

// PageItems baris di halaman aktif (1-based).
func (b *Board) PageItems() []apiclient.Registration {
	rows := b.Filtered()
	page := b.Page
	if page < 1 {
		page = 1
	}
	start := (page - 1) * b.perPage()
	if start >= len(rows) {
		return nil
	}
	end := start + b.perPage()
	if end > len(rows) {
		end = len(rows)
	}
	return rows[start:end]
}
