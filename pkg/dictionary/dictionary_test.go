package dictionary

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestUserDict(t *testing.T) {
	d := New("Kafka", "kubectl", "  ", "wordfix")

	if d.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", d.Len())
	}
	for _, w := range []string{"kafka", "KAFKA", "Kafka", " wordfix "} {
		if !d.Contains(w) {
			t.Errorf("Contains(%q) = false", w)
		}
	}
	for _, w := range []string{"kaf", "kafkas", ""} {
		if d.Contains(w) {
			t.Errorf("Contains(%q) = true", w)
		}
	}

	if d.Add("KAFKA") {
		t.Error("Add() of existing word reported new")
	}
	if !d.Remove("kafka") || d.Contains("Kafka") || d.Len() != 2 {
		t.Error("Remove() did not drop the word")
	}
	if d.Remove("kafka") {
		t.Error("Remove() of missing word reported success")
	}
}

func TestWithPrefix(t *testing.T) {
	d := New("kubectl", "Kubernetes", "kafka", "wordfix")

	if got, want := d.WithPrefix("KU"), []string{"Kubernetes", "kubectl"}; !reflect.DeepEqual(got, want) {
		t.Errorf("WithPrefix(KU) = %v, want %v", got, want)
	}
	if got := d.WithPrefix("zz"); len(got) != 0 {
		t.Errorf("WithPrefix(zz) = %v, want none", got)
	}
	if got := d.Words(); len(got) != 4 {
		t.Errorf("Words() = %v", got)
	}
}

func TestNilUserDict(t *testing.T) {
	var d *UserDict
	if d.Contains("x") || d.Len() != 0 {
		t.Error("nil UserDict not empty")
	}
}

func TestLoadSave(t *testing.T) {
	dir := t.TempDir()

	txt := filepath.Join(dir, "words.txt")
	if err := os.WriteFile(txt, []byte("# comment\nkafka\n\n  wordfix  \n"), 0644); err != nil {
		t.Fatal(err)
	}
	d, err := Load(txt)
	if err != nil {
		t.Fatalf("Load(txt) error = %v", err)
	}
	if got, want := d.Words(), []string{"kafka", "wordfix"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Words() = %v, want %v", got, want)
	}

	js := filepath.Join(dir, "nested", "dict.json")
	if err := d.Save(js); err != nil {
		t.Fatalf("Save(json) error = %v", err)
	}
	back, err := Load(js)
	if err != nil {
		t.Fatalf("Load(json) error = %v", err)
	}
	if !reflect.DeepEqual(back.Words(), d.Words()) {
		t.Errorf("json round trip = %v, want %v", back.Words(), d.Words())
	}

	if _, err := Load(filepath.Join(dir, "missing.txt")); err == nil {
		t.Error("Load() of missing file returned nil error")
	}
	if _, err := DetectFileFormat("words.bin"); err == nil {
		t.Error("DetectFileFormat(.bin) returned nil error")
	}
	if info, ok := GetFormatInfo(FormatJSON); !ok || info.Description == "" {
		t.Errorf("GetFormatInfo(json) = %+v, %v", info, ok)
	}
	if _, ok := GetFormatInfo(FormatUnknown); ok {
		t.Error("GetFormatInfo(unknown) reported ok")
	}
}
