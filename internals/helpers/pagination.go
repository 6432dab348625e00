// file: internals/helpers/pagination.go
package helper

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
)

type Options struct {
	DefaultLimit int
	MaxLimit     int
}

// ===== Preset =====
var (
	DefaultOpts = Options{DefaultLimit: 25, MaxLimit: 200}
	AdminOpts   = Options{DefaultLimit: 100, MaxLimit: 500}
)

// Window = potongan data model skip/limit (kontrak /api/tenant/?skip=&limit=)
type Window struct {
	Skip  int
	Limit int
}

// ResolveWindow membaca ?skip= & ?limit= lalu normalisasi.
// Alias ?page= & ?per_page= juga diterima (skip dihitung dari page).
func ResolveWindow(c *fiber.Ctx, opt Options) Window {
	limit := atoiDefault(strings.TrimSpace(firstNonEmpty(c.Query("limit"), c.Query("per_page"))), opt.DefaultLimit)
	if limit <= 0 {
		limit = opt.DefaultLimit
	}
	if opt.MaxLimit > 0 && limit > opt.MaxLimit {
		limit = opt.MaxLimit
	}

	skip := 0
	if raw := strings.TrimSpace(c.Query("skip")); raw != "" {
		skip = atoiDefault(raw, 0)
	} else if raw := strings.TrimSpace(c.Query("page")); raw != "" {
		page := atoiDefault(raw, 1)
		if page < 1 {
			page = 1
		}
		skip = (page - 1) * limit
	}
	if skip < 0 {
		skip = 0
	}
	return Window{Skip: skip, Limit: limit}
}

func atoiDefault(s string, def int) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}

func firstNonEmpty(a, b string) string {
	if strings.TrimSpace(a) != "" {
		return a
	}
	return b
}
