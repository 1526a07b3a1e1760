package episodes

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Episode is one playable item of a movie on a given streaming server.
// (movie_id, slug) is unique.
type Episode struct {
	bun.BaseModel `bun:"table:episodes,alias:ep"`

	ID         uuid.UUID `bun:"id,pk,type:uuid,default:gen_random_uuid()" json:"id"`
	MovieID    uuid.UUID `bun:"movie_id,type:uuid,notnull" json:"movieId"`
	ServerName string    `bun:"server_name,notnull" json:"serverName"`
	Name       string    `bun:"name,notnull" json:"name"`
	Slug       string    `bun:"slug,notnull" json:"slug"`
	Filename   string    `bun:"filename,notnull" json:"filename"`
	LinkEmbed  string    `bun:"link_embed,notnull" json:"linkEmbed"`
	LinkM3U8   string    `bun:"link_m3u8,notnull" json:"linkM3u8"`
	CreatedAt  time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp" json:"createdAt"`
	UpdatedAt  time.Time `bun:"updated_at,nullzero,notnull,default:current_timestamp" json:"updatedAt"`
}

// ServerGroup lists the episodes of one server.
type ServerGroup struct {
	ServerName string    `json:"serverName"`
	Episodes   []Episode `json:"episodes"`
}

// Group buckets episodes by server name, keeping the order in which servers
// first appear.
func Group(eps []Episode) []ServerGroup {
	groups := make([]ServerGroup, 0)
	index := make(map[string]int)
	for _, ep := range eps {
		i, ok := index[ep.ServerName]
		if !ok {
			i = len(groups)
			index[ep.ServerName] = i
			groups = append(groups, ServerGroup{ServerName: ep.ServerName})
		}
		groups[i].Episodes = append(groups[i].Episodes, ep)
	}
	return groups
}

// EpisodeInput is one episode in a request body, in the upstream shape.
type EpisodeInput struct {
	Name      string `json:"name" validate:"required,max=255"`
	Slug      string `json:"slug" validate:"required,max=255"`
	Filename  string `json:"filename" validate:"max=1024"`
	LinkEmbed string `json:"link_embed" validate:"omitempty,max=2048"`
	LinkM3U8  string `json:"link_m3u8" validate:"omitempty,max=2048"`
}

// ServerInput is one server group in a request body.
type ServerInput struct {
	ServerName string         `json:"server_name" validate:"required,max=255"`
	ServerData []EpisodeInput `json:"server_data" validate:"dive"`
}

// Flatten turns server groups into episode rows for movieID.
func Flatten(movieID uuid.UUID, servers []ServerInput) []Episode {
	var eps []Episode
	for _, s := range servers {
		for _, in := range s.ServerData {
			eps = append(eps, Episode{
				MovieID:    movieID,
				ServerName: s.ServerName,
				Name:       in.Name,
				Slug:       in.Slug,
				Filename:   in.Filename,
				LinkEmbed:  in.LinkEmbed,
				LinkM3U8:   in.LinkM3U8,
			})
		}
	}
	return eps
}

// CreateEpisodeRequest is the admin body for adding one episode.
type CreateEpisodeRequest struct {
	ServerName string `json:"serverName" validate:"required,max=255"`
	Name       string `json:"name" validate:"required,max=255"`
	Slug       string `json:"slug" validate:"required,max=255"`
	Filename   string `json:"filename" validate:"max=1024"`
	LinkEmbed  string `json:"linkEmbed" validate:"omitempty,max=2048"`
	LinkM3U8   string `json:"linkM3u8" validate:"omitempty,max=2048"`
}

// UpdateEpisodeRequest patches an episode; nil fields are left alone.
type UpdateEpisodeRequest struct {
	ServerName *string `json:"serverName" validate:"omitempty,min=1,max=255"`
	Name       *string `json:"name" validate:"omitempty,min=1,max=255"`
	Slug       *string `json:"slug" validate:"omitempty,min=1,max=255"`
	Filename   *string `json:"filename" validate:"omitempty,max=1024"`
	LinkEmbed  *string `json:"linkEmbed" validate:"omitempty,max=2048"`
	LinkM3U8   *string `json:"linkM3u8" validate:"omitempty,max=2048"`
}
