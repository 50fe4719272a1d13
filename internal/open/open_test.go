package open

import (
	"reflect"
	"testing"
)

func TestEditorArgs(t *testing.T) {
	tests := []struct {
		editor string
		want   []string
	}{
		{"vim", []string{"+12", "session.log"}},
		{"nvim", []string{"+12", "session.log"}},
		{"/usr/bin/nvim", []string{"+12", "session.log"}},
		{"vi", []string{"+12", "session.log"}},
		{"nano", []string{"+12", "session.log"}},
		{"code", []string{"--goto", "session.log:12"}},
		{"less", []string{"+12", "session.log"}},
		{"more", []string{"+12", "session.log"}},
		{"emacs", []string{"session.log"}},
	}

	for _, tt := range tests {
		t.Run(tt.editor, func(t *testing.T) {
			got := editorArgs(tt.editor, "session.log", 12)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("editorArgs(%q) = %v, want %v", tt.editor, got, tt.want)
			}
		})
	}
}
