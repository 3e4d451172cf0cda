package api

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Displayed timestamps use the reader's local zone.
const dateFormat = "2006-01-02 15:04"

const authorURLFormat = "https://author.today/u/%s/works"

var reWorkURL = regexp.MustCompile(`^(?:https?://)?author\.today/work/(\d+)/?$`)

// ParseWorkURL extracts the numeric work ID from an Author.Today book URL.
func ParseWorkURL(url string) (int64, bool) {
	m := reWorkURL.FindStringSubmatch(strings.TrimSpace(url))
	if m == nil {
		return 0, false
	}
	var id int64
	fmt.Sscanf(m[1], "%d", &id)
	return id, id > 0
}

// WorkMetaInfo is the work/{id}/meta-info payload subset the toolchain
// consumes.
type WorkMetaInfo struct {
	ID                     int64   `json:"id"`
	Title                  string  `json:"title"`
	Annotation             string  `json:"annotation"`
	CoverURL               string  `json:"coverUrl"`
	AuthorFIO              string  `json:"authorFIO"`
	AuthorUserName         string  `json:"authorUserName"`
	CoAuthorFIO            string  `json:"coAuthorFIO"`
	CoAuthorUserName       string  `json:"coAuthorUserName"`
	SecondCoAuthorFIO      string  `json:"secondCoAuthorFIO"`
	SecondCoAuthorUserName string  `json:"secondCoAuthorUserName"`
	SeriesID               int64   `json:"seriesId"`
	SeriesOrder            int     `json:"seriesOrder"`
	SeriesTitle            string  `json:"seriesTitle"`
	GenreID                *int    `json:"genreId"`
	FirstSubGenreID        *int    `json:"firstSubGenreId"`
	SecondSubGenreID       *int    `json:"secondSubGenreId"`
	IsFinished             bool    `json:"isFinished"`
	AdultOnly              bool    `json:"adultOnly"`
	Price                  float64 `json:"price"`
	LikeCount              int     `json:"likeCount"`
	CommentCount           int     `json:"commentCount"`
	RewardCount            int     `json:"rewardCount"`
	LastModificationTime   Time    `json:"lastModificationTime"`
	LastUpdateTime         Time    `json:"lastUpdateTime"`
	FinishTime             Time    `json:"finishTime"`
}

// GetWorkMetaInfo fetches metadata for one work by ID.
func (c *Client) GetWorkMetaInfo(ctx context.Context, id int64) (*WorkMetaInfo, error) {
	body, err := c.get(ctx, fmt.Sprintf("/v1/work/%d/meta-info", id))
	if err != nil {
		return nil, err
	}

	var meta WorkMetaInfo
	if err := json.Unmarshal(body, &meta); err != nil {
		return nil, fmt.Errorf("failed to parse meta-info response: %w", err)
	}
	if meta.ID == 0 {
		return nil, fmt.Errorf("work %d: empty meta-info response", id)
	}
	return &meta, nil
}

// GetWorkMetaInfoByURL fetches metadata for the work an Author.Today URL
// points at.
func (c *Client) GetWorkMetaInfoByURL(ctx context.Context, url string) (*WorkMetaInfo, error) {
	id, ok := ParseWorkURL(url)
	if !ok {
		return nil, fmt.Errorf("not an author.today work URL: %q", url)
	}
	return c.GetWorkMetaInfo(ctx, id)
}

// Author is one name parsed out of a combined FIO string.
type Author struct {
	First    string
	Middle   string
	Last     string
	HomePage string
}

// Authors returns the work's authors in order, names split into parts and
// home pages derived from usernames.
func (m *WorkMetaInfo) Authors() []Author {
	var out []Author
	for _, pair := range [][2]string{
		{m.AuthorFIO, m.AuthorUserName},
		{m.CoAuthorFIO, m.CoAuthorUserName},
		{m.SecondCoAuthorFIO, m.SecondCoAuthorUserName},
	} {
		if a, ok := splitAuthorName(pair[0], pair[1]); ok {
			out = append(out, a)
		}
	}
	return out
}

// splitAuthorName breaks a display name into first, middle and last parts.
// Two words mean first plus last; anything past three words folds the
// middle words together.
func splitAuthorName(fio, username string) (Author, bool) {
	parts := strings.Fields(fio)
	var a Author
	switch len(parts) {
	case 0:
		return a, false
	case 1:
		a.First = parts[0]
	case 2:
		a.First, a.Last = parts[0], parts[1]
	case 3:
		a.First, a.Middle, a.Last = parts[0], parts[1], parts[2]
	default:
		a.First = parts[0]
		a.Middle = strings.Join(parts[1:len(parts)-1], " ")
		a.Last = parts[len(parts)-1]
	}
	if username = strings.ToLower(strings.TrimSpace(username)); username != "" {
		a.HomePage = fmt.Sprintf(authorURLFormat, username)
	}
	return a, true
}

// GenreIDs returns the assigned genre IDs, main genre first.
func (m *WorkMetaInfo) GenreIDs() []int {
	var out []int
	for _, id := range []*int{m.GenreID, m.FirstSubGenreID, m.SecondSubGenreID} {
		if id != nil {
			out = append(out, *id)
		}
	}
	return out
}

// GenreCodes resolves the genre IDs to names in the given language.
func (m *WorkMetaInfo) GenreCodes(lang string) []string {
	var out []string
	for _, id := range []*int{m.GenreID, m.FirstSubGenreID, m.SecondSubGenreID} {
		if id != nil {
			out = append(out, GenreName(id, lang))
		}
	}
	return out
}

// TimeUpdated is the last content update, formatted for title-info dates.
func (m *WorkMetaInfo) TimeUpdated() string {
	return formatTime(m.LastUpdateTime)
}

// TimeModified is the last metadata touch.
func (m *WorkMetaInfo) TimeModified() string {
	return formatTime(m.LastModificationTime)
}

// TimeFinished is when the work was marked complete, empty while ongoing.
func (m *WorkMetaInfo) TimeFinished() string {
	return formatTime(m.FinishTime)
}

func formatTime(t Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Local().Format(dateFormat)
}

// Time parses the API's ISO 8601 timestamps, null included.
type Time struct {
	time.Time
}

func (t *Time) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "null" || s == "" {
		return nil
	}
	parsed, err := time.Parse(time.RFC3339, s)
	if err != nil {
		// Timestamps sometimes come without a zone suffix.
		parsed, err = time.Parse("2006-01-02T15:04:05.999999999", s)
		if err != nil {
			return err
		}
	}
	t.Time = parsed
	return nil
}

func (t Time) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + t.Format(time.RFC3339) + `"`), nil
}
