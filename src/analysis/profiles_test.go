package analysis

import (
	"encoding/json"
	"math"
	"os"
	"testing"

	"github.com/iafilius/ElevationProfile/src/profile"
	"github.com/iafilius/ElevationProfile/src/types"
)

// helper to write a synthetic record line
func writeRecord(t *testing.T, f *os.File, id string, schema int) {
	t.Helper()
	rec := types.ProfileRecord{SchemaVersion: schema, ID: id, Name: "line " + id, Unit: types.Miles,
		Points: []types.ElevationPoint{{M: 0, Z: 100}, {M: 1000, Z: 200}, {M: 2000, Z: 150}}}
	b, _ := json.Marshal(rec)
	if _, err := f.Write(append(b, '\n')); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func TestLoadProfiles(t *testing.T) {
	tmp, err := os.CreateTemp(t.TempDir(), "profiles-*.jsonl")
	if err != nil {
		t.Fatalf("tmp file: %v", err)
	}
	writeRecord(t, tmp, "a", types.SchemaVersion)
	tmp.WriteString("{not json\n")
	writeRecord(t, tmp, "old", types.SchemaVersion+1)
	writeRecord(t, tmp, "b", types.SchemaVersion)
	writeRecord(t, tmp, "c", types.SchemaVersion)
	// final line without newline
	b, _ := json.Marshal(types.ProfileRecord{SchemaVersion: types.SchemaVersion, ID: "d"})
	tmp.Write(b)
	tmp.Close()

	all, err := LoadProfiles(tmp.Name(), 0)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(all) != 4 || all[0].ID != "a" || all[3].ID != "d" {
		t.Fatalf("unexpected records: %+v", all)
	}
	last2, err := LoadProfiles(tmp.Name(), 2)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(last2) != 2 || last2[0].ID != "c" || last2[1].ID != "d" {
		t.Fatalf("expected the last two records, got %+v", last2)
	}
	if _, err := LoadProfiles(tmp.Name()+".missing", 0); err == nil {
		t.Fatalf("missing file should error")
	}
}

func TestSummarize(t *testing.T) {
	s := profile.Series{{Distance: 0, Elevation: 100}, {Distance: 10, Elevation: 200}, {Distance: 15, Elevation: math.NaN()}, {Distance: 20, Elevation: 150}, {Distance: 25, Elevation: 175}}
	got := Summarize(s)
	want := Summary{Samples: 5, Distance: 25, MinElevation: 100, MaxElevation: 200, Ascent: 125, Descent: 50}
	if got != want {
		t.Fatalf("Summarize = %+v want %+v", got, want)
	}
	if z := Summarize(nil); z != (Summary{}) {
		t.Fatalf("empty summary %+v", z)
	}
}

func TestSummarizeRecord_Units(t *testing.T) {
	rec := types.ProfileRecord{ID: "x", Points: []types.ElevationPoint{{M: 0, Z: 100}, {M: 1000, Z: 200}}}
	km := SummarizeRecord(rec, types.Kilometers)
	if km.Distance != 1 || km.MaxElevation != 200 || km.Ascent != 100 {
		t.Fatalf("km summary %+v", km)
	}
	mi := SummarizeRecord(rec, types.Miles)
	if math.Abs(mi.Distance-0.621371) > 1e-12 || math.Abs(mi.Ascent-328.084) > 1e-9 {
		t.Fatalf("mi summary %+v", mi)
	}
}

func TestFindProfile(t *testing.T) {
	recs := []types.ProfileRecord{{ID: "1", Name: "ridge"}, {ID: "2", Name: "valley"}, {ID: "3", Name: "ridge"}}
	if r, ok := FindProfile(recs, "ridge"); !ok || r.ID != "3" {
		t.Fatalf("by name => %+v %v", r, ok)
	}
	if r, ok := FindProfile(recs, "2"); !ok || r.Name != "valley" {
		t.Fatalf("by id => %+v %v", r, ok)
	}
	if _, ok := FindProfile(recs, "nope"); ok {
		t.Fatalf("unexpected match")
	}
}
