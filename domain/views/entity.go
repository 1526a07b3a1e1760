package views

import (
	"time"

	"github.com/google/uuid"
)

// Period is a view statistics window.
type Period string

const (
	PeriodDay   Period = "day"
	PeriodWeek  Period = "week"
	PeriodMonth Period = "month"
	PeriodYear  Period = "year"
)

// ParsePeriod accepts day, week, month or year. Empty means week.
func ParsePeriod(raw string) (Period, bool) {
	switch p := Period(raw); p {
	case "":
		return PeriodWeek, true
	case PeriodDay, PeriodWeek, PeriodMonth, PeriodYear:
		return p, true
	default:
		return "", false
	}
}

// Cutoff returns the start of the window ending at now.
func (p Period) Cutoff(now time.Time) time.Time {
	switch p {
	case PeriodDay:
		return now.AddDate(0, 0, -1)
	case PeriodMonth:
		return now.AddDate(0, -1, 0)
	case PeriodYear:
		return now.AddDate(-1, 0, 0)
	default:
		return now.AddDate(0, 0, -7)
	}
}

// ViewCount is the body of POST /api/movies/:movieId/view
type ViewCount struct {
	View int64 `json:"view"`
}

// TopMovie is one row of the view statistics.
type TopMovie struct {
	ID        uuid.UUID `bun:"id" json:"id"`
	Name      string    `bun:"name" json:"name"`
	Slug      string    `bun:"slug" json:"slug"`
	View      int64     `bun:"view" json:"view"`
	PosterURL string    `bun:"poster_url" json:"posterUrl"`
	UpdatedAt time.Time `bun:"updated_at" json:"updatedAt"`
}

// Stats is the body of GET /api/movies/views/stats
type Stats struct {
	Period     Period     `json:"period"`
	Since      time.Time  `json:"since"`
	TotalViews int64      `json:"totalViews"`
	TopMovies  []TopMovie `json:"topMovies"`
}
