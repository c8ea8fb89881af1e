package constants

import "testing"

func TestDetectFileKindFromExt(t *testing.T) {
	cases := map[string]string{
		"notes.PDF":     FileKindPDF,
		"essay.docx":    FileKindDocument,
		"deck.pptx":     FileKindSlides,
		"photo.jpeg":    FileKindImage,
		"lecture.mp3":   FileKindAudio,
		"installer.exe": FileKindOther,
		"no-extension":  FileKindOther,
	}
	for name, want := range cases {
		if got := DetectFileKindFromExt(name); got != want {
			t.Errorf("DetectFileKindFromExt(%q) = %q, want %q", name, got, want)
		}
	}
}

func TestRoleError(t *testing.T) {
	if got := RoleError("fees", AdminAccountant); got != "Only admin or accountant can access fees" {
		t.Errorf("unexpected message %q", got)
	}
	if got := RoleError("x", []string{"a", "b", "c"}); got != "Only a, b or c can access x" {
		t.Errorf("unexpected message %q", got)
	}
}
