package domain

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
)

// RawMovie is a movie record exactly as it arrives from a data source, before
// normalization. Two historical shapes meet here:
//
//   - legacy rows embed the creator as a string or list of strings, carry the
//     video under "videoUrl" and list genre names inline;
//   - relational rows reference the creator by id, carry the video under
//     "video_url" and get their genres from the movie_genres junction.
//
// The ambiguous fields are decoded once into explicit unions so nothing
// downstream has to inspect JSON types.
type RawMovie struct {
	ID          string
	Title       string
	Slug        string
	Description string
	Thumbnail   string
	Year        int
	CreatorID   string
	Creator     CreatorValue
	VideoURL    *string // "videoUrl"
	VideoURLCol *string // "video_url"
	Genre       GenreValue
}

type rawMovieJSON struct {
	ID          json.RawMessage `json:"id,omitempty"`
	Title       string          `json:"title"`
	Slug        string          `json:"slug"`
	Description string          `json:"description,omitempty"`
	Thumbnail   string          `json:"thumbnail,omitempty"`
	Year        json.RawMessage `json:"year,omitempty"`
	CreatorID   string          `json:"creator_id,omitempty"`
	Creator     CreatorValue    `json:"creator"`
	VideoURL    *string         `json:"videoUrl,omitempty"`
	VideoURLCol *string         `json:"video_url,omitempty"`
	Genre       GenreValue      `json:"genre"`
}

// UnmarshalJSON accepts numeric or string ids and years.
func (m *RawMovie) UnmarshalJSON(data []byte) error {
	var aux rawMovieJSON
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	id, err := scalarString(aux.ID)
	if err != nil {
		return fmt.Errorf("id: %w", err)
	}
	year, err := scalarInt(aux.Year)
	if err != nil {
		return fmt.Errorf("year: %w", err)
	}

	*m = RawMovie{
		ID:          id,
		Title:       aux.Title,
		Slug:        aux.Slug,
		Description: aux.Description,
		Thumbnail:   aux.Thumbnail,
		Year:        year,
		CreatorID:   aux.CreatorID,
		Creator:     aux.Creator,
		VideoURL:    aux.VideoURL,
		VideoURLCol: aux.VideoURLCol,
		Genre:       aux.Genre,
	}
	return nil
}

// MarshalJSON writes the record back in its mixed raw shape.
func (m RawMovie) MarshalJSON() ([]byte, error) {
	aux := rawMovieJSON{
		Title:       m.Title,
		Slug:        m.Slug,
		Description: m.Description,
		Thumbnail:   m.Thumbnail,
		CreatorID:   m.CreatorID,
		Creator:     m.Creator,
		VideoURL:    m.VideoURL,
		VideoURLCol: m.VideoURLCol,
		Genre:       m.Genre,
	}
	if m.ID != "" {
		aux.ID, _ = json.Marshal(m.ID)
	}
	if m.Year != 0 {
		aux.Year = []byte(strconv.Itoa(m.Year))
	}
	return json.Marshal(aux)
}

// CreatorForm tells which shape a raw creator field had.
type CreatorForm int

const (
	CreatorAbsent CreatorForm = iota
	CreatorSingle
	CreatorList
)

// CreatorValue is the union "string | []string | absent" of the legacy
// creator field.
type CreatorValue struct {
	Form  CreatorForm
	Name  string   // set when Form == CreatorSingle
	Names []string // set when Form == CreatorList
}

// SingleCreator returns a scalar creator value.
func SingleCreator(name string) CreatorValue {
	return CreatorValue{Form: CreatorSingle, Name: name}
}

// CreatorNames returns a list creator value.
func CreatorNames(names ...string) CreatorValue {
	return CreatorValue{Form: CreatorList, Names: names}
}

// All returns every credited name in order.
func (c CreatorValue) All() []string {
	switch c.Form {
	case CreatorSingle:
		return []string{c.Name}
	case CreatorList:
		return c.Names
	default:
		return nil
	}
}

// UnmarshalJSON implements json.Unmarshaler.
func (c *CreatorValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case len(data) == 0 || bytes.Equal(data, []byte("null")):
		*c = CreatorValue{}
	case data[0] == '"':
		var name string
		if err := json.Unmarshal(data, &name); err != nil {
			return err
		}
		*c = SingleCreator(name)
	case data[0] == '[':
		var names []string
		if err := json.Unmarshal(data, &names); err != nil {
			return fmt.Errorf("creator list must contain only strings: %w", err)
		}
		*c = CreatorNames(names...)
	default:
		return errors.New("creator must be a string or a list of strings")
	}
	return nil
}

// MarshalJSON implements json.Marshaler.
func (c CreatorValue) MarshalJSON() ([]byte, error) {
	switch c.Form {
	case CreatorSingle:
		return json.Marshal(c.Name)
	case CreatorList:
		if c.Names == nil {
			return []byte("[]"), nil
		}
		return json.Marshal(c.Names)
	default:
		return []byte("null"), nil
	}
}

// GenreValue is the raw genre field. Only a JSON array counts as a genre
// list; any other value is treated as absent.
type GenreValue struct {
	Present bool
	Names   []string
}

// GenreList returns a present genre value.
func GenreList(names ...string) GenreValue {
	return GenreValue{Present: true, Names: names}
}

// UnmarshalJSON implements json.Unmarshaler. Non-string array elements are
// dropped; non-array values leave the field absent.
func (g *GenreValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || data[0] != '[' {
		*g = GenreValue{}
		return nil
	}

	var items []any
	if err := json.Unmarshal(data, &items); err != nil {
		return err
	}
	names := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			names = append(names, s)
		}
	}
	*g = GenreList(names...)
	return nil
}

// MarshalJSON implements json.Marshaler.
func (g GenreValue) MarshalJSON() ([]byte, error) {
	if !g.Present {
		return []byte("null"), nil
	}
	if g.Names == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(g.Names)
}

func scalarString(raw json.RawMessage) (string, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return "", nil
	}
	if raw[0] == '"' {
		var s string
		err := json.Unmarshal(raw, &s)
		return s, err
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return "", errors.New("must be a string or a number")
	}
	return n.String(), nil
}

func scalarInt(raw json.RawMessage) (int, error) {
	s, err := scalarString(raw)
	if err != nil || s == "" {
		return 0, err
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%q is not a whole number", s)
	}
	return n, nil
}
