package selection

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

const sampleExport = `{
  "nombre": "XV años Megan",
  "contratante": "Familia López",
  "fecha_evento": "2025-08-09",
  "total_fotos": 5,
  "selecciones": [
    {"numero_foto": 1, "ampliacion": true, "redes_sociales": true},
    {"numero_foto": 2, "impresion": false},
    {"numero_foto": 3, "descartada": 1, "invitacion": "si"},
    {"numero_foto": 2, "impresion": true}
  ],
  "estadisticas": {"ampliacion": 1, "impresion": 1, "redes_sociales": 1, "descartada": 1, "sinClasificar": 2},
  "sugerencias_de_cambios": {
    "video": [{"minute": "02:15", "change": "Cortar la entrada"}],
    "fotos": "Sin cambios sugeridos"
  }
}`

func TestParse(t *testing.T) {
	set, err := Parse([]byte(sampleExport))
	if err != nil {
		t.Fatal(err)
	}
	if set.Name != "XV años Megan" || set.Client != "Familia López" || set.EventDate != "2025-08-09" {
		t.Fatalf("metadata mismatch: %+v", set)
	}
	if set.TotalPhotos != 5 || len(set.Selections) != 4 {
		t.Fatalf("total=%d selections=%d", set.TotalPhotos, len(set.Selections))
	}
	if set.Summary == nil || set.Summary.Unclassified != 2 {
		t.Fatalf("summary = %+v", set.Summary)
	}

	index := set.Index()
	if len(index) != 3 {
		t.Fatalf("index has %d records, want 3", len(index))
	}
	first := index[1]
	if !first.Amplify || !first.Social || first.Print || first.Invitation || first.Discard {
		t.Fatalf("record 1 flags wrong: %+v", first)
	}
	if !index[2].Print {
		t.Fatal("later duplicate should overwrite earlier record")
	}
	if !index[3].Discard || !index[3].Invitation {
		t.Fatalf("truthy non-boolean flags not honored: %+v", index[3])
	}

	if len(set.ChangeRequests.Video) != 1 || set.ChangeRequests.Video[0].Minute != "02:15" {
		t.Fatalf("video notes = %+v", set.ChangeRequests.Video)
	}
	if len(set.ChangeRequests.Photos) != 0 {
		t.Fatalf("sentinel string should mean no photo notes: %+v", set.ChangeRequests.Photos)
	}
}

func TestParseOptionalFieldsAbsent(t *testing.T) {
	set, err := Parse([]byte(`{"total_fotos": 2}`))
	if err != nil {
		t.Fatal(err)
	}
	if set.Summary != nil || !set.ChangeRequests.Empty() || len(set.Index()) != 0 {
		t.Fatalf("expected empty optional data: %+v", set)
	}
	if set.Name != "" {
		t.Fatalf("name = %q", set.Name)
	}
}

func TestChangeRequestVariants(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		video      int
		photos     int
		firstPhoto Text
	}{
		{"null lists", `{"video": null, "fotos": null}`, 0, 0, ""},
		{"numeric photo number", `{"fotos": [{"photoNumber": 12, "change": "Quitar ojos rojos"}]}`, 0, 1, "12"},
		{"string photo number", `{"fotos": [{"photoNumber": "7", "change": "Aclarar"}]}`, 0, 1, "7"},
		{"free text", `{"video": "Más música al final"}`, 1, 0, ""},
		{"string entries", `{"video": ["cambiar musica", "Sin cambios sugeridos"], "fotos": ["Aclarar la 3"]}`, 1, 1, ""},
		{"unreadable list dropped", `{"video": [5], "fotos": [{"photoNumber": 2, "change": "Recortar"}]}`, 0, 1, "2"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			set, err := Parse([]byte(`{"total_fotos": 1, "sugerencias_de_cambios": ` + tt.body + `}`))
			if err != nil {
				t.Fatal(err)
			}
			cr := set.ChangeRequests
			if len(cr.Video) != tt.video || len(cr.Photos) != tt.photos {
				t.Fatalf("video=%d photos=%d, want %d/%d", len(cr.Video), len(cr.Photos), tt.video, tt.photos)
			}
			if tt.photos > 0 && cr.Photos[0].PhotoNumber != tt.firstPhoto {
				t.Fatalf("photo number = %q, want %q", cr.Photos[0].PhotoNumber, tt.firstPhoto)
			}
		})
	}
}

func TestParseToleratesDisplayFields(t *testing.T) {
	tests := []struct {
		name  string
		body  string
		check func(t *testing.T, set *Set)
	}{
		{
			name: "sentinel for all change requests",
			body: `{"total_fotos": 2, "sugerencias_de_cambios": "Sin cambios sugeridos"}`,
			check: func(t *testing.T, set *Set) {
				if !set.ChangeRequests.Empty() {
					t.Fatalf("expected no change requests: %+v", set.ChangeRequests)
				}
			},
		},
		{
			name: "free text for all change requests",
			body: `{"total_fotos": 2, "sugerencias_de_cambios": "Revisar colores"}`,
			check: func(t *testing.T, set *Set) {
				if len(set.ChangeRequests.General) != 1 || set.ChangeRequests.General[0] != "Revisar colores" {
					t.Fatalf("general notes = %+v", set.ChangeRequests.General)
				}
			},
		},
		{
			name: "change requests of another type",
			body: `{"total_fotos": 2, "sugerencias_de_cambios": 42}`,
			check: func(t *testing.T, set *Set) {
				if !set.ChangeRequests.Unreadable {
					t.Fatalf("expected unreadable marker: %+v", set.ChangeRequests)
				}
			},
		},
		{
			name: "string and fractional counts",
			body: `{"total_fotos": 2, "estadisticas": {"ampliacion": "4", "impresion": 1.5, "descartada": "muchas"}}`,
			check: func(t *testing.T, set *Set) {
				s := set.Summary
				if s == nil || s.Amplify != 4 || s.Print != 1 || s.Discard != 0 {
					t.Fatalf("summary = %+v", s)
				}
			},
		},
		{
			name: "statistics not an object",
			body: `{"total_fotos": 2, "estadisticas": "n/a"}`,
			check: func(t *testing.T, set *Set) {
				if set.Summary == nil || *set.Summary != (Summary{}) {
					t.Fatalf("summary = %+v", set.Summary)
				}
			},
		},
		{
			name: "numeric metadata",
			body: `{"total_fotos": 2, "nombre": 15, "fecha_evento": 20250809}`,
			check: func(t *testing.T, set *Set) {
				if set.Name != "15" || set.EventDate != "20250809" {
					t.Fatalf("metadata = %q %q", set.Name, set.EventDate)
				}
			},
		},
		{
			name: "negative total",
			body: `{"total_fotos": -1}`,
			check: func(t *testing.T, set *Set) {
				if set.TotalPhotos != 0 {
					t.Fatalf("total = %d, want 0", set.TotalPhotos)
				}
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			set, err := Parse([]byte(tt.body))
			if err != nil {
				t.Fatalf("Parse: %v", err)
			}
			tt.check(t, set)
		})
	}
}

func TestParseMalformed(t *testing.T) {
	tests := map[string]string{
		"syntax":          `{"total_fotos": `,
		"missing number":  `{"total_fotos": 1, "selecciones": [{"ampliacion": true}]}`,
		"wrong list type": `{"total_fotos": 1, "selecciones": {"numero_foto": 1}}`,
	}
	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(body))
			if !errors.Is(err, ErrMalformed) {
				t.Fatalf("expected ErrMalformed, got %v", err)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()

	if _, err := Load(filepath.Join(dir, "missing.json")); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	path := filepath.Join(dir, "seleccion.json")
	if err := os.WriteFile(path, append([]byte("\xef\xbb\xbf"), sampleExport...), 0o644); err != nil {
		t.Fatal(err)
	}
	set, err := Load(path)
	if err != nil {
		t.Fatalf("Load with BOM: %v", err)
	}
	if set.TotalPhotos != 5 {
		t.Fatalf("total = %d", set.TotalPhotos)
	}
}
