package deck

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/woozymasta/geocompare/internal/config"
	"github.com/woozymasta/geocompare/internal/geo"
	"github.com/woozymasta/geocompare/internal/pipeline"
)

func testReport(t *testing.T, loadB bool) *pipeline.Report {
	t.Helper()

	cfg := config.Default()
	docA, err := geo.Decode([]byte(`{"type":"FeatureCollection","features":[]}`))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	a := []geo.ExtractedPoint{{Lon: 1, Lat: 2, Name: "Manyar", Label: "Group A", ID: "Group A_1", Group: geo.GroupA}}
	b := []geo.ExtractedPoint{{Lon: 3, Lat: 4, Name: "Babat", Label: "Group B", ID: "Group B_1", Group: geo.GroupB}}

	r := &pipeline.Report{
		Groups: [2]pipeline.GroupResult{
			{Group: geo.GroupA, Config: cfg.Groups[0], Document: docA, Points: a},
			{Group: geo.GroupB, Config: cfg.Groups[1], Points: b},
		},
		Points: geo.Concat(a, b),
		View:   geo.ViewState{Longitude: 2, Latitude: 3, Zoom: 10.2},
	}
	if loadB {
		r.Groups[1].Document = docA
	}
	return r
}

func layerIDs(d *Deck) []string {
	var out []string
	for _, l := range d.Layers {
		out = append(out, l.ID)
	}
	return out
}

func TestAssembleLayerOrder(t *testing.T) {
	tests := []struct {
		name  string
		loadB bool
		want  string
	}{
		{name: "both boundaries", loadB: true, want: "boundary-a,boundary-b,points,labels"},
		{name: "boundary b missing", loadB: false, want: "boundary-a,points,labels"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Assemble(config.Default(), testReport(t, tt.loadB))
			if got := strings.Join(layerIDs(d), ","); got != tt.want {
				t.Fatalf("expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestAssembleColorsByGroupTag(t *testing.T) {
	cfg := config.Default()
	// identical labels must still get different colors
	cfg.Groups[1].Name = cfg.Groups[0].Name

	r := testReport(t, true)
	d := Assemble(cfg, r)

	var points Layer
	for _, l := range d.Layers {
		if l.Type == TypeScatterplot {
			points = l
		}
	}

	rows, ok := points.Data.([]Row)
	if !ok {
		t.Fatalf("expected []Row data, got %T", points.Data)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0].Color != cfg.Groups[0].Point || rows[1].Color != cfg.Groups[1].Point {
		t.Fatalf("unexpected colors: %v, %v", rows[0].Color, rows[1].Color)
	}
	if rows[0].Color == rows[1].Color {
		t.Fatalf("groups must be told apart by tag")
	}
}

func TestAssembleBoundaryPassesRawDocument(t *testing.T) {
	r := testReport(t, false)
	d := Assemble(config.Default(), r)

	boundary := d.Layers[0]
	if boundary.Type != TypeGeoJSON {
		t.Fatalf("expected boundary first, got %s", boundary.Type)
	}

	data, err := json.Marshal(boundary.Data)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != string(r.Groups[0].Document.Raw) {
		t.Fatalf("expected raw document, got %s", data)
	}
	if *boundary.FillColor != (config.Color{59, 130, 246, 60}) {
		t.Fatalf("unexpected fill: %v", *boundary.FillColor)
	}
}

func TestAssembleViewAndSummary(t *testing.T) {
	r := testReport(t, false)
	d := Assemble(config.Default(), r)

	if d.InitialViewState != r.View {
		t.Fatalf("unexpected view: %+v", d.InitialViewState)
	}
	if d.MapStyle != mapStyles["road"] {
		t.Fatalf("unexpected map style %q", d.MapStyle)
	}
	if len(d.Summary) != 2 {
		t.Fatalf("expected 2 summaries, got %d", len(d.Summary))
	}
	if d.Summary[1].Loaded || len(d.Summary[1].Points) != 1 || d.Summary[1].Points[0].Name != "Babat" {
		t.Fatalf("unexpected summary B: %+v", d.Summary[1])
	}
}

func TestRowJSON(t *testing.T) {
	row := Row{
		ExtractedPoint: geo.ExtractedPoint{Lon: 1, Lat: 2, Name: "Manyar", Label: "Group A", ID: "Group A_1"},
		Color:          config.Color{1, 2, 3, 4},
	}

	data, err := json.Marshal(row)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	want := `{"lon":1,"lat":2,"nama":"Manyar","group":"Group A","id":"Group A_1","color":[1,2,3,4],"tooltip":""}`
	if string(data) != want {
		t.Fatalf("expected %s, got %s", want, data)
	}
}

func TestMapStyleURL(t *testing.T) {
	if got := MapStyleURL("Road"); got != mapStyles["road"] {
		t.Fatalf("unexpected road style %q", got)
	}
	custom := "https://example.com/style.json"
	if got := MapStyleURL(custom); got != custom {
		t.Fatalf("expected custom URL, got %q", got)
	}
}

func TestTooltipFormat(t *testing.T) {
	p := geo.ExtractedPoint{Lon: 112.5, Lat: -7.123456789, Name: "<Manyar>", Label: "Group A"}

	got := DefaultTooltip().Format(p)

	want := "<b>&lt;Manyar&gt;</b><br><b>Group:</b> Group A<br>Lon: 112.500000 | Lat: -7.123457"
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}
