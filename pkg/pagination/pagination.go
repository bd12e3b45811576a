package pagination

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

const DefaultPage = 1

type Options struct {
	DefaultPerPage int
	MaxPerPage     int
}

var (
	DefaultOpts = Options{DefaultPerPage: 15, MaxPerPage: 100}
	AdminOpts   = Options{DefaultPerPage: 20, MaxPerPage: 200}
)

type Params struct {
	Page    int
	PerPage int
}

func (p Params) Offset() int {
	return (p.Page - 1) * p.PerPage
}

// Parse reads page and per_page from the query string. Missing or invalid
// values fall back to the defaults; per_page is capped at MaxPerPage.
func Parse(c *gin.Context, opt Options) Params {
	page := atoiDefault(c.Query("page"), DefaultPage)
	if page < 1 {
		page = DefaultPage
	}

	per := atoiDefault(c.Query("per_page"), opt.DefaultPerPage)
	if per < 1 {
		per = opt.DefaultPerPage
	}
	if opt.MaxPerPage > 0 && per > opt.MaxPerPage {
		per = opt.MaxPerPage
	}

	return Params{Page: page, PerPage: per}
}

type Meta struct {
	CurrentPage int   `json:"current_page"`
	LastPage    int   `json:"last_page"`
	PerPage     int   `json:"per_page"`
	Total       int64 `json:"total"`
}

func NewMeta(p Params, total int64) Meta {
	last := 1
	if total > 0 && p.PerPage > 0 {
		last = int((total + int64(p.PerPage) - 1) / int64(p.PerPage))
	}
	return Meta{
		CurrentPage: p.Page,
		LastPage:    last,
		PerPage:     p.PerPage,
		Total:       total,
	}
}

func atoiDefault(s string, def int) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return def
	}
	return n
}
