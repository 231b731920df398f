// Package selection reads the client selection export produced by the web
// selector: one record per photo the client touched, plus event metadata
// and free-form change requests.
package selection

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
)

var (
	// ErrNotFound means the selection file does not exist.
	ErrNotFound = errors.New("selection file not found")
	// ErrMalformed means the selection file is not a usable export.
	ErrMalformed = errors.New("selection file is not valid JSON")
)

// NoChanges is the value the selector writes when a change list is empty.
const NoChanges = "Sin cambios sugeridos"

// Record is the client's decision for one photo. Flags that are absent in
// the export read as false.
type Record struct {
	Number     int  `json:"-"`
	Amplify    Flag `json:"ampliacion"`
	Print      Flag `json:"impresion"`
	Social     Flag `json:"redes_sociales"`
	Invitation Flag `json:"invitacion"`
	Discard    Flag `json:"descartada"`
}

// UnmarshalJSON requires numero_foto; everything else is optional.
func (r *Record) UnmarshalJSON(data []byte) error {
	type plain Record
	var aux struct {
		plain
		Number *int `json:"numero_foto"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if aux.Number == nil {
		return errors.New("record without numero_foto")
	}
	*r = Record(aux.plain)
	r.Number = *aux.Number
	return nil
}

// Summary holds the counts the selector computed itself. Display only: a
// value that is not an object reads as all zeros.
type Summary struct {
	Amplify      Count `json:"ampliacion"`
	Print        Count `json:"impresion"`
	Social       Count `json:"redes_sociales"`
	Invitation   Count `json:"invitacion"`
	Discard      Count `json:"descartada"`
	Unclassified Count `json:"sinClasificar"`
}

// UnmarshalJSON implements json.Unmarshaler.
func (s *Summary) UnmarshalJSON(data []byte) error {
	type plain Summary
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		*s = Summary{}
		return nil
	}
	*s = Summary(p)
	return nil
}

// VideoNote is a requested change in the event video.
type VideoNote struct {
	Minute Text `json:"minute"`
	Change Text `json:"change"`
}

// PhotoNote is a requested change to one photo.
type PhotoNote struct {
	PhotoNumber Text `json:"photoNumber"`
	Change      Text `json:"change"`
}

// ChangeRequests are advisory notes for the operator; they never affect
// classification. A shape that cannot be read is dropped and marked
// Unreadable.
type ChangeRequests struct {
	Video  []VideoNote
	Photos []PhotoNote

	// General holds free text given in place of the video/fotos object.
	General    []Text
	Unreadable bool
}

// UnmarshalJSON accepts an object with "video" and "fotos" lists, or a bare
// string for the whole value or for either list. The NoChanges sentinel
// and null mean no notes. List entries may be objects or plain strings.
func (c *ChangeRequests) UnmarshalJSON(data []byte) error {
	*c = ChangeRequests{}
	data = bytes.TrimSpace(data)
	switch {
	case len(data) == 0 || bytes.Equal(data, []byte("null")):
		return nil
	case data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			c.Unreadable = true
			return nil
		}
		if s = strings.TrimSpace(s); s != "" && s != NoChanges {
			c.General = []Text{Text(s)}
		}
		return nil
	case data[0] != '{':
		c.Unreadable = true
		return nil
	}

	var raw struct {
		Video json.RawMessage `json:"video"`
		Fotos json.RawMessage `json:"fotos"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		c.Unreadable = true
		return nil
	}
	video, err := decodeNotes(raw.Video, func(s string) VideoNote { return VideoNote{Change: Text(s)} })
	if err != nil {
		c.Unreadable = true
	}
	photos, err := decodeNotes(raw.Fotos, func(s string) PhotoNote { return PhotoNote{Change: Text(s)} })
	if err != nil {
		c.Unreadable = true
	}
	c.Video, c.Photos = video, photos
	return nil
}

// decodeNotes reads one change list. On error the whole list is dropped.
func decodeNotes[T any](raw json.RawMessage, fromText func(string) T) ([]T, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, nil
	}
	if raw[0] == '"' {
		return appendText(nil, raw, fromText)
	}

	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, err
	}
	var notes []T
	for _, item := range items {
		item = bytes.TrimSpace(item)
		if len(item) > 0 && item[0] == '"' {
			var err error
			if notes, err = appendText(notes, item, fromText); err != nil {
				return nil, err
			}
			continue
		}
		var note T
		if err := json.Unmarshal(item, &note); err != nil {
			return nil, err
		}
		notes = append(notes, note)
	}
	return notes, nil
}

func appendText[T any](notes []T, raw json.RawMessage, fromText func(string) T) ([]T, error) {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, err
	}
	if s = strings.TrimSpace(s); s == "" || s == NoChanges {
		return notes, nil
	}
	return append(notes, fromText(s)), nil
}

// Empty reports whether there is nothing for the operator to review.
func (c ChangeRequests) Empty() bool {
	return len(c.Video) == 0 && len(c.Photos) == 0 && len(c.General) == 0 && !c.Unreadable
}

// Set is a complete selection export.
type Set struct {
	Name           Text           `json:"nombre"`
	Client         Text           `json:"contratante"`
	EventDate      Text           `json:"fecha_evento"`
	TotalPhotos    int            `json:"total_fotos"`
	Selections     []Record       `json:"selecciones"`
	Summary        *Summary       `json:"estadisticas"`
	ChangeRequests ChangeRequests `json:"sugerencias_de_cambios"`
}

// Index maps sequence numbers to records. When the export lists a number
// twice the later record wins.
func (s *Set) Index() map[int]Record {
	index := make(map[int]Record, len(s.Selections))
	for _, r := range s.Selections {
		index[r.Number] = r
	}
	return index
}

// Load reads and parses the selection export at path.
func Load(path string) (*Set, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("read selection file: %w", err)
	}
	return Parse(data)
}

// Parse decodes a selection export. A UTF-8 byte order mark is ignored.
// Only total_fotos and the selection records can make an export malformed;
// display fields are read as best they can be.
func Parse(data []byte) (*Set, error) {
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))
	var set Set
	if err := json.Unmarshal(data, &set); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	// A negative count selects no sequence numbers at all.
	if set.TotalPhotos < 0 {
		set.TotalPhotos = 0
	}
	return &set, nil
}
