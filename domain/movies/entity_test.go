package movies

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeType(t *testing.T) {
	tests := []struct {
		in   string
		want Type
	}{
		{"single", TypeMovie},
		{"SINGLE", TypeMovie},
		{"movie", TypeMovie},
		{"series", TypeSeries},
		{"hoathinh", TypeSeries},
		{"tvshows", TypeSeries},
		{"", TypeSeries},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeType(tt.in))
		})
	}
}

func TestParseDuration(t *testing.T) {
	tests := []struct {
		in   string
		want *int
	}{
		{"45 phút/tập", intPtr(45)},
		{"120 Phút", intPtr(120)},
		{"  90", intPtr(90)},
		{"Đang cập nhật", nil},
		{"", nil},
		{"phút 45", nil},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseDuration(tt.in))
		})
	}
}

func TestUniqueNames(t *testing.T) {
	got := UniqueNames([]string{" Song Kang ", "", "Kim Yoo-jung", "Song Kang", "   "})
	assert.Equal(t, []string{"Song Kang", "Kim Yoo-jung"}, got)
	assert.Empty(t, UniqueNames(nil))
}

func TestMovieRequest_ToMovieAndRelations(t *testing.T) {
	catID := uuid.New()
	year := 2024
	req := &MovieRequest{
		Name:     " Phim A ",
		Slug:     "phim-a",
		Type:     "single",
		Time:     "118 phút",
		Year:     &year,
		Actor:    []string{"A", "A", " "},
		Director: []string{"D"},
		Category: []IDRef{{ID: catID}, {ID: catID}},
	}

	var m Movie
	req.ToMovie(&m)
	assert.Equal(t, "Phim A", m.Name)
	assert.Equal(t, TypeMovie, m.Type)
	require.NotNil(t, m.Duration)
	assert.Equal(t, 118, *m.Duration)
	assert.Equal(t, &year, m.Year)

	rel := req.Relations()
	assert.Equal(t, []uuid.UUID{catID}, rel.CategoryIDs)
	assert.Empty(t, rel.CountryIDs)
	assert.Equal(t, []string{"A"}, rel.Actors)
	assert.Equal(t, []string{"D"}, rel.Directors)
}

func intPtr(n int) *int { return &n }
