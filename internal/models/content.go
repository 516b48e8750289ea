package models

// Episode — серия сериала.
type Episode struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Duration int    `json:"duration"`
}

// ContentItem — элемент каталога (фильм или сериал).
type ContentItem struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Category     string    `json:"category"`
	ThumbnailURL string    `json:"thumbnail_url"`
	VideoURL     string    `json:"video_url,omitempty"`
	Duration     int       `json:"duration,omitempty"` // в минутах
	ReleaseYear  int       `json:"release_year,omitempty"`
	Cast         []string  `json:"cast,omitempty"`
	IsSeries     bool      `json:"is_series"`
	Episodes     []Episode `json:"episodes,omitempty"`
}

// Clone возвращает копию элемента вместе со срезами.
func (c *ContentItem) Clone() *ContentItem {
	if c == nil {
		return nil
	}
	out := *c
	if c.Cast != nil {
		out.Cast = append([]string(nil), c.Cast...)
	}
	if c.Episodes != nil {
		out.Episodes = append([]Episode(nil), c.Episodes...)
	}
	return &out
}

// Categories — фиксированный список рубрик главной страницы.
var Categories = []string{
	"Films populaires",
	"Nouveautés / Films récents",
	"Action",
	"Séries populaires",
	"Animés tendances",
	"Exclusivités VTV",
}

// DefaultCategory используется, если при публикации рубрика не указана.
const DefaultCategory = "Films populaires"

// IsKnownCategory проверяет, входит ли рубрика в фиксированный список.
func IsKnownCategory(name string) bool {
	for _, c := range Categories {
		if c == name {
			return true
		}
	}
	return false
}
