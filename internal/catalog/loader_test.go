package catalog

import (
	"archive/zip"
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const sampleCSV = "show_id,type,title,director,cast,country,release_year,rating,duration,listed_in,description\n" +
	"s1,Movie,Dick Johnson Is Dead,Kirsten Johnson,,United States,2020,PG-13,90 min,Documentaries,A son films his father.\n" +
	"s2,TV Show,Blood & Water,,Ama Qamata,South Africa,2021,TV-MA,2 Seasons,\"International TV Shows, TV Dramas\",Two sisters.\n" +
	"s3,TV Show,Ganglands,Julien Leclercq,Sami Bouajila,\"France, Belgium\",2021,TV-MA,1 Season,\"Crime TV Shows, International TV Shows\",A mob story.\n" +
	"s4,Movie,Sankofa,Haile Gerima,Kofi Ghanaba,\"United States, Ghana\",1993,TV-MA,125 min,\"Dramas, International Movies\",A model is transported.\n"

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	return p
}

func TestLoadCSV(t *testing.T) {
	p := writeFile(t, "netflix_titles.csv", sampleCSV)
	ds, err := NewLoader(Options{}, nil).Load(p)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if ds.Len() != 4 {
		t.Fatalf("expected 4 titles, got %d", ds.Len())
	}
	if ds.Name != "netflix_titles.csv" {
		t.Fatalf("unexpected name %q", ds.Name)
	}
	if !ds.HasYears || ds.YearDomain != (YearRange{Low: 1993, High: 2021}) {
		t.Fatalf("unexpected year domain %+v (has=%v)", ds.YearDomain, ds.HasYears)
	}
	seen := map[ID]bool{}
	for i, tt := range ds.Titles {
		if tt.ID == "" || seen[tt.ID] {
			t.Fatalf("title %d has empty or duplicate id %q", i, tt.ID)
		}
		seen[tt.ID] = true
		if tt.Row != i {
			t.Fatalf("title %d has row %d", i, tt.Row)
		}
	}
	b := ds.Titles[1]
	if b.Kind != KindTVShow || b.Title != "Blood & Water" || b.Rating != "TV-MA" {
		t.Fatalf("unexpected record: %+v", b)
	}
	if got := b.Genres(); len(got) != 2 || got[1] != "TV Dramas" {
		t.Fatalf("unexpected genres %q", got)
	}
	if got := ds.Titles[2].Countries(); len(got) != 2 || got[0] != "France" || got[1] != "Belgium" {
		t.Fatalf("unexpected countries %q", got)
	}
	if ds.Titles[0].Extra["show_id"] != "s1" {
		t.Fatalf("expected show_id to be kept in Extra, got %v", ds.Titles[0].Extra)
	}
	if !ds.Has("listed_in") || ds.Has("date_added") {
		t.Fatalf("column presence wrong: %v", ds.Columns)
	}
	if len(ds.Warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", ds.Warnings)
	}
}

func TestLoaderMemoises(t *testing.T) {
	p := writeFile(t, "titles.csv", sampleCSV)
	l := NewLoader(Options{}, nil)
	a, err := l.Load(p)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	// Changing the file must not matter until Reload.
	if err := os.WriteFile(p, []byte("title,type,release_year\nX,Movie,2000\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	b, err := l.Load(p)
	if err != nil {
		t.Fatalf("second load: %v", err)
	}
	if a != b {
		t.Fatalf("expected cached dataset pointer")
	}
	l.Reload(p)
	c, err := l.Load(p)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if c == a || c.Len() != 1 {
		t.Fatalf("expected fresh dataset after Reload, got %d rows", c.Len())
	}
}

func TestLoadFailures(t *testing.T) {
	l := NewLoader(Options{}, nil)

	missing := filepath.Join(t.TempDir(), "nope.csv")
	_, err := l.Load(missing)
	if !errors.Is(err, ErrFileNotFound) {
		t.Fatalf("expected ErrFileNotFound, got %v", err)
	}
	var le *LoadError
	if !errors.As(err, &le) || le.Kind != FileNotFound || le.Path != missing {
		t.Fatalf("expected *LoadError with path, got %#v", err)
	}
	ds, err := l.LoadOrEmpty(missing)
	if err == nil || ds == nil || ds.Len() != 0 {
		t.Fatalf("expected empty dataset plus error, got %v / %v", ds, err)
	}

	empty := writeFile(t, "empty.csv", "")
	if _, err := l.Load(empty); !errors.Is(err, ErrParse) {
		t.Fatalf("expected ErrParse for empty file, got %v", err)
	}

	broken := writeFile(t, "broken.csv", "title,type,release_year\n\"unterminated,Movie,2000\n")
	if _, err := l.Load(broken); !errors.Is(err, ErrParse) {
		t.Fatalf("expected ErrParse for bad quoting, got %v", err)
	}

	wrong := writeFile(t, "wrong.csv", "a,b\n1,2\n")
	if _, err := l.Load(wrong); !errors.Is(err, ErrInvalidDataset) {
		t.Fatalf("expected ErrInvalidDataset, got %v", err)
	}
	if ds, err := l.LoadOrEmpty(wrong); ds != nil || !errors.Is(err, ErrInvalidDataset) {
		t.Fatalf("expected nil dataset for invalid header, got %v / %v", ds, err)
	}
}

func TestLoadNormalisesMissingColumns(t *testing.T) {
	p := writeFile(t, "nocountry.csv", "title,type,duration\nA,Movie,90 min\nB,TV Show,3 Seasons\n")
	ds, err := NewLoader(Options{}, nil).Load(p)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	for _, tt := range ds.Titles {
		if tt.Country != UnknownCountry {
			t.Fatalf("expected %q, got %q", UnknownCountry, tt.Country)
		}
	}
	if !ds.Has(ColCountry) {
		t.Fatalf("country should be a dataset column after normalisation: %v", ds.Columns)
	}
	if ds.Has(ColReleaseYear) || ds.HasYears {
		t.Fatalf("expected no year domain")
	}
	if len(ds.Warnings) != 2 {
		t.Fatalf("expected country and release_year warnings, got %v", ds.Warnings)
	}
}

func TestLoadTSVAndBadYears(t *testing.T) {
	p := writeFile(t, "titles.tsv", "Title\tType\tRelease_Year\nA\tMovie\t2001.0\nB\tMovie\tsoon\nC\tMovie\t\n")
	ds, err := NewLoader(Options{}, nil).Load(p)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if ds.Len() != 3 || ds.Titles[0].ReleaseYear != 2001 || !ds.Titles[0].HasYear {
		t.Fatalf("unexpected titles: %+v", ds.Titles)
	}
	if ds.Titles[1].HasYear || ds.Titles[2].HasYear {
		t.Fatalf("unparseable years must be left unset")
	}
	if got := ds.Titles[0].Value(ColReleaseYear); got != "2001.0" {
		t.Fatalf("year text should be kept as read, got %q", got)
	}
	if got := ds.Titles[1].Value(ColReleaseYear); got != "soon" {
		t.Fatalf("unparsed year text should be kept, got %q", got)
	}
	if ds.YearDomain != (YearRange{Low: 2001, High: 2001}) {
		t.Fatalf("unexpected domain %+v", ds.YearDomain)
	}
	found := false
	for _, w := range ds.Warnings {
		if strings.Contains(w, "1 rows have an unreadable release_year") {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected bad year warning, got %v", ds.Warnings)
	}
}

func TestWriteCSVRoundTrip(t *testing.T) {
	tests := []struct {
		name   string
		source string
		header string
	}{
		{"catalog", sampleCSV, "show_id,type,title,director,cast,country,release_year,rating,duration,listed_in,description"},
		{"source id and raw years", "id,title,type,release_year\n42,A,Movie,2015\n43,B,Movie,unknown\n44,C,Movie,2019.0\n", "id,title,type,release_year,country"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := writeFile(t, "titles.csv", tt.source)
			ds, err := NewLoader(Options{}, nil).Load(p)
			if err != nil {
				t.Fatalf("load: %v", err)
			}
			var buf bytes.Buffer
			if err := WriteCSV(&buf, ds.All(), ds.Columns); err != nil {
				t.Fatalf("write: %v", err)
			}
			first := strings.SplitN(buf.String(), "\n", 2)[0]
			if first != tt.header {
				t.Fatalf("unexpected header %q", first)
			}
			out := writeFile(t, "export.csv", buf.String())
			again, err := NewLoader(Options{}, nil).Load(out)
			if err != nil {
				t.Fatalf("reload export: %v", err)
			}
			if again.Len() != ds.Len() {
				t.Fatalf("row count changed: %d vs %d", again.Len(), ds.Len())
			}
			for i := range ds.Titles {
				for _, c := range ds.Columns {
					if a, b := ds.Titles[i].Value(c), again.Titles[i].Value(c); a != b {
						t.Fatalf("row %d column %s: %q != %q", i, c, a, b)
					}
				}
			}
		})
	}
}

func TestValueKeepsSourceID(t *testing.T) {
	p := writeFile(t, "titles.csv", "id,title,type,release_year\n42,A,Movie,2015\n43,B,Movie,unknown\n")
	ds, err := NewLoader(Options{}, nil).Load(p)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	var buf bytes.Buffer
	if err := WriteCSV(&buf, ds.All(), ds.Columns); err != nil {
		t.Fatalf("write: %v", err)
	}
	want := "id,title,type,release_year,country\n42,A,Movie,2015,Unknown\n43,B,Movie,unknown,Unknown\n"
	if buf.String() != want {
		t.Fatalf("export mismatch:\n%s\nwant:\n%s", buf.String(), want)
	}
	if ds.Titles[0].ID == "42" {
		t.Fatal("synthetic id must stay distinct from the source id")
	}

	plain := NewDataset("plain", []string{"title"}, []Title{{Title: "A"}})
	if got := plain.Titles[0].Value("id"); got != string(plain.Titles[0].ID) || got == "" {
		t.Fatalf("without a source id column Value(id) should be the synthetic key, got %q", got)
	}
}

func TestLoadXLSX(t *testing.T) {
	p := filepath.Join(t.TempDir(), "titles.xlsx")
	writeXLSX(t, p, [][]string{
		{"title", "type", "release_year", "country"},
		{"Alpha", "Movie", "2015", "US"},
		{"Beta", "TV Show", "2020", "US, CA"},
	})
	ds, err := NewLoader(Options{}, nil).Load(p)
	if err != nil {
		t.Fatalf("load xlsx: %v", err)
	}
	if ds.Len() != 2 || ds.Titles[1].Title != "Beta" || ds.Titles[1].Kind != KindTVShow {
		t.Fatalf("unexpected titles: %+v", ds.Titles)
	}
	if ds.YearDomain != (YearRange{Low: 2015, High: 2020}) {
		t.Fatalf("unexpected domain %+v", ds.YearDomain)
	}

	if _, err := NewLoader(Options{SheetName: "Missing"}, nil).Load(p); !errors.Is(err, ErrParse) {
		t.Fatalf("expected ErrParse for unknown sheet, got %v", err)
	}
	bad := writeFile(t, "bad.xlsx", "not a zip")
	if _, err := NewLoader(Options{}, nil).Load(bad); !errors.Is(err, ErrParse) {
		t.Fatalf("expected ErrParse for corrupt workbook, got %v", err)
	}
}

// writeXLSX builds a minimal single-sheet workbook using shared strings.
func writeXLSX(t *testing.T, path string, rows [][]string) {
	t.Helper()
	var shared []string
	sheet := &strings.Builder{}
	sheet.WriteString(`<?xml version="1.0" encoding="UTF-8"?><worksheet><sheetData>`)
	for r, row := range rows {
		sheet.WriteString(`<row>`)
		for c, v := range row {
			ref := string(rune('A'+c)) + itoa(r+1)
			sheet.WriteString(`<c r="` + ref + `" t="s"><v>` + itoa(len(shared)) + `</v></c>`)
			shared = append(shared, v)
		}
		sheet.WriteString(`</row>`)
	}
	sheet.WriteString(`</sheetData></worksheet>`)
	sst := &strings.Builder{}
	sst.WriteString(`<?xml version="1.0" encoding="UTF-8"?><sst>`)
	for _, s := range shared {
		sst.WriteString(`<si><t>` + s + `</t></si>`)
	}
	sst.WriteString(`</sst>`)

	files := map[string]string{
		"xl/workbook.xml": `<?xml version="1.0" encoding="UTF-8"?><workbook xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships">` +
			`<sheets><sheet name="Titles" sheetId="1" r:id="rId1"/></sheets></workbook>`,
		"xl/_rels/workbook.xml.rels": `<?xml version="1.0" encoding="UTF-8"?><Relationships>` +
			`<Relationship Id="rId1" Target="/xl/worksheets/sheet1.xml"/></Relationships>`,
		"xl/sharedStrings.xml":     sst.String(),
		"xl/worksheets/sheet1.xml": sheet.String(),
	}
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, body := range files {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("zip create: %v", err)
		}
		if _, err := w.Write([]byte(body)); err != nil {
			t.Fatalf("zip write: %v", err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("zip close: %v", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatalf("write xlsx: %v", err)
	}
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	var b []byte
	for n > 0 {
		b = append([]byte{byte('0' + n%10)}, b...)
		n /= 10
	}
	return string(b)
}
