package catalog

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DuyBigPP/PHIMMOI-BACKEND/pkg/apperror"
)

func TestParseKind(t *testing.T) {
	tests := []struct {
		in      string
		want    Kind
		wantErr bool
	}{
		{"actor", KindActor, false},
		{"Director", KindDirector, false},
		{"CATEGORY", KindCategory, false},
		{"country", KindCountry, false},
		{"studio", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseKind(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestKind_KeyedBySlug(t *testing.T) {
	assert.True(t, KindCategory.KeyedBySlug())
	assert.True(t, KindCountry.KeyedBySlug())
	assert.False(t, KindActor.KeyedBySlug())
	assert.False(t, KindDirector.KeyedBySlug())
}

func TestNormalizeRequest(t *testing.T) {
	tests := []struct {
		name     string
		kind     Kind
		req      EntityRequest
		wantName string
		wantSlug string
		wantErr  bool
	}{
		{"actor trims name", KindActor, EntityRequest{Name: "  Lee Min-ho "}, "Lee Min-ho", "", false},
		{"actor ignores missing slug", KindActor, EntityRequest{Name: "X"}, "X", "", false},
		{"category needs slug", KindCategory, EntityRequest{Name: "Hài Hước"}, "", "", true},
		{"country ok", KindCountry, EntityRequest{Name: "Nhật Bản", Slug: "nhat-ban"}, "Nhật Bản", "nhat-ban", false},
		{"blank name", KindDirector, EntityRequest{Name: "   "}, "", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			name, slug, err := normalizeRequest(tt.kind, tt.req)
			if tt.wantErr {
				assert.ErrorIs(t, err, apperror.ErrValidation)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantName, name)
			assert.Equal(t, tt.wantSlug, slug)
		})
	}
}

func TestNewModel_KeyPlacement(t *testing.T) {
	cat := newModel(KindCategory, uuid.Nil, "hanh-dong", "Hành Động").(*Category)
	assert.Equal(t, "hanh-dong", cat.Slug)
	assert.Equal(t, "Hành Động", cat.Name)

	actor := newModel(KindActor, uuid.Nil, "Song Kang", "ignored").(*Actor)
	assert.Equal(t, "Song Kang", actor.Name)

	assert.Nil(t, newModel(Kind("studio"), uuid.Nil, "x", "x"))
}
