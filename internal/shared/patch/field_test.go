package patch

import (
	"encoding/json"
	"testing"
)

type userPatch struct {
	Username  Field[string] `json:"username"`
	TeacherID Field[*int64] `json:"teacher_id"`
}

func TestFieldDecodeDistinguishesMissingFromNull(t *testing.T) {
	var p userPatch
	if err := json.Unmarshal([]byte(`{"teacher_id":null}`), &p); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if p.Username.IsSet() {
		t.Fatalf("expected username to be unset")
	}
	teacherID, ok := p.TeacherID.Get()
	if !ok {
		t.Fatalf("expected teacher_id to be set by explicit null")
	}
	if teacherID != nil {
		t.Fatalf("expected nil teacher_id, got %v", *teacherID)
	}
}

func TestFieldDecodeValue(t *testing.T) {
	var p userPatch
	if err := json.Unmarshal([]byte(`{"username":"newname","teacher_id":7}`), &p); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if name, ok := p.Username.Get(); !ok || name != "newname" {
		t.Fatalf("expected username newname, got %q (set=%v)", name, ok)
	}
	if id, ok := p.TeacherID.Get(); !ok || id == nil || *id != 7 {
		t.Fatalf("expected teacher_id 7, got %v", id)
	}
}

func TestApplyOnlyWritesSetFields(t *testing.T) {
	current := "original"
	Field[string]{}.Apply(&current)
	if current != "original" {
		t.Fatalf("expected unset field to leave value, got %q", current)
	}
	Set("changed").Apply(&current)
	if current != "changed" {
		t.Fatalf("expected changed, got %q", current)
	}
}
