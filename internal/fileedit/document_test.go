package fileedit

import (
	"strings"
	"testing"
)

func TestObjectPreservesKeyOrder(t *testing.T) {
	source := `{
  "zebra": 1,
  "nested": {
    "y": 2,
    "a": 3
  },
  "alpha": "x"
}`
	obj, err := ParseJSONC([]byte(source))
	if err != nil {
		t.Fatalf("ParseJSONC: %v", err)
	}

	wantKeys := []string{"zebra", "nested", "alpha"}
	gotKeys := obj.Keys()
	if len(gotKeys) != len(wantKeys) {
		t.Fatalf("keys = %v, want %v", gotKeys, wantKeys)
	}
	for i := range wantKeys {
		if gotKeys[i] != wantKeys[i] {
			t.Errorf("key %d = %q, want %q", i, gotKeys[i], wantKeys[i])
		}
	}

	out, err := MarshalJSONIndent(obj, 2)
	if err != nil {
		t.Fatalf("MarshalJSONIndent: %v", err)
	}
	if string(out) != source {
		t.Errorf("round-trip changed the document:\n%s", out)
	}
}

func TestObjectSetReplacesInPlace(t *testing.T) {
	obj, err := ParseJSONC([]byte(`{"first": 1, "owned": 2, "last": 3}`))
	if err != nil {
		t.Fatal(err)
	}

	obj.Set("owned", "replaced")
	obj.Set("appended", true)

	want := []string{"first", "owned", "last", "appended"}
	got := obj.Keys()
	if len(got) != len(want) {
		t.Fatalf("keys = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("key %d = %q, want %q", i, got[i], want[i])
		}
	}
	if v, _ := obj.Get("owned"); v != "replaced" {
		t.Errorf("owned = %v", v)
	}
}

func TestObjectSetDefault(t *testing.T) {
	obj := NewObject()
	obj.Set("k", "original")
	obj.SetDefault("k", "ignored")
	obj.SetDefault("fresh", "used")

	if v, _ := obj.Get("k"); v != "original" {
		t.Errorf("SetDefault overwrote existing value: %v", v)
	}
	if v, _ := obj.Get("fresh"); v != "used" {
		t.Errorf("SetDefault did not set missing key: %v", v)
	}
}

func TestObjectObjAttachesNested(t *testing.T) {
	obj := NewObject()
	obj.Obj("outer").Obj("inner").Set("leaf", 1)

	out, err := MarshalJSONIndent(obj, 2)
	if err != nil {
		t.Fatal(err)
	}
	want := "{\n  \"outer\": {\n    \"inner\": {\n      \"leaf\": 1\n    }\n  }\n}"
	if string(out) != want {
		t.Errorf("got:\n%s\nwant:\n%s", out, want)
	}
}

func TestObjectRoundTripsNumbersAndStrings(t *testing.T) {
	source := `{"big": 9007199254740993, "precise": 0.10, "url": "http://h/v1?a=1&b=2"}`
	obj, err := ParseJSONC([]byte(source))
	if err != nil {
		t.Fatal(err)
	}
	out, err := MarshalJSONIndent(obj, 2)
	if err != nil {
		t.Fatal(err)
	}
	for _, fragment := range []string{"9007199254740993", "0.10", "http://h/v1?a=1&b=2"} {
		if !strings.Contains(string(out), fragment) {
			t.Errorf("output rewrote %q:\n%s", fragment, out)
		}
	}
}
