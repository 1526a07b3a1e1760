package phimapi

import (
	"bytes"
	"strconv"
	"time"

	"github.com/goccy/go-json"
)

// MovieDetail is one record of /phim/{slug}. Import files are JSON arrays of
// these records.
type MovieDetail struct {
	Status   bool          `json:"status,omitempty"`
	Msg      string        `json:"msg,omitempty"`
	Movie    Movie         `json:"movie"`
	Episodes []ServerGroup `json:"episodes"`
}

// Movie is the denormalized movie payload.
type Movie struct {
	ID             string    `json:"_id"`
	Name           string    `json:"name"`
	Slug           string    `json:"slug"`
	OriginName     string    `json:"origin_name"`
	Content        string    `json:"content"`
	Type           string    `json:"type"`
	Status         string    `json:"status"`
	PosterURL      string    `json:"poster_url"`
	ThumbURL       string    `json:"thumb_url"`
	IsCopyright    bool      `json:"is_copyright"`
	SubDocquyen    bool      `json:"sub_docquyen"`
	Chieurap       bool      `json:"chieurap"`
	TrailerURL     string    `json:"trailer_url"`
	Time           string    `json:"time"`
	EpisodeCurrent string    `json:"episode_current"`
	EpisodeTotal   string    `json:"episode_total"`
	Quality        string    `json:"quality"`
	Lang           string    `json:"lang"`
	Notify         string    `json:"notify"`
	Showtimes      string    `json:"showtimes"`
	Year           int       `json:"year"`
	View           int64     `json:"view"`
	Actor          []string  `json:"actor"`
	Director       []string  `json:"director"`
	Category       []Taxon   `json:"category"`
	Country        []Taxon   `json:"country"`
	TMDB           TMDB      `json:"tmdb"`
	IMDB           IMDB      `json:"imdb"`
	Created        Timestamp `json:"created"`
	Modified       Timestamp `json:"modified"`
}

// Taxon is a category or country reference.
type Taxon struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

type TMDB struct {
	Type        string     `json:"type"`
	ID          FlexString `json:"id"`
	Season      *int       `json:"season"`
	VoteAverage float64    `json:"vote_average"`
	VoteCount   int        `json:"vote_count"`
}

type IMDB struct {
	ID FlexString `json:"id"`
}

// Timestamp wraps the upstream {"time": "..."} objects.
type Timestamp struct {
	Time string `json:"time"`
}

// Parse returns the timestamp, or the zero time when it is absent or malformed.
func (t Timestamp) Parse() time.Time {
	if t.Time == "" {
		return time.Time{}
	}
	parsed, err := time.Parse(time.RFC3339Nano, t.Time)
	if err != nil {
		return time.Time{}
	}
	return parsed
}

// ServerGroup is the episode list of one streaming server.
type ServerGroup struct {
	ServerName string    `json:"server_name"`
	ServerData []Episode `json:"server_data"`
}

type Episode struct {
	Name      string `json:"name"`
	Slug      string `json:"slug"`
	Filename  string `json:"filename"`
	LinkEmbed string `json:"link_embed"`
	LinkM3U8  string `json:"link_m3u8"`
}

// ListItem is one entry of the slug list fed to the fetcher.
type ListItem struct {
	Slug string `json:"slug"`
	Name string `json:"name,omitempty"`
}

// FlexString accepts a JSON string, number or null. Upstream emits tmdb and
// imdb ids in all three shapes.
type FlexString string

func (f *FlexString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case len(b) == 0 || bytes.Equal(b, []byte("null")):
		*f = ""
		return nil
	case b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = FlexString(s)
		return nil
	default:
		n, err := strconv.ParseFloat(string(b), 64)
		if err != nil {
			return err
		}
		*f = FlexString(strconv.FormatFloat(n, 'f', -1, 64))
		return nil
	}
}

func (f FlexString) String() string { return string(f) }

// DecodeFile parses an import file body.
func DecodeFile(data []byte) ([]MovieDetail, error) {
	var records []MovieDetail
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// DecodeList parses a slug list body.
func DecodeList(data []byte) ([]ListItem, error) {
	var items []ListItem
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, err
	}
	return items, nil
}
