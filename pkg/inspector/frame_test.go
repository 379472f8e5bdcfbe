package inspector

import (
	"errors"
	"path/filepath"
	"testing"
)

func fixtureFrame(line int) *Frame {
	return NewFrame(RawFrame{
		File: filepath.Join("testdata", "fixture.php"),
		Line: line,
	})
}

func TestFrame_File_EvalContextUnwrap(t *testing.T) {
	f := NewFrame(RawFrame{
		File: "/app/index.php(9) : eval()'d code",
		Line: 1,
	})

	if got := f.File(); got != "/app/index.php" {
		t.Errorf("File() = %q, want %q", got, "/app/index.php")
	}
	if got := f.Line(); got != 9 {
		t.Errorf("Line() = %d, want 9", got)
	}

	// The rewrite is memoized; repeated reads see the same values.
	if got := f.File(); got != "/app/index.php" {
		t.Errorf("second File() = %q, want %q", got, "/app/index.php")
	}
	if got := f.Raw().File; got != "/app/index.php" {
		t.Errorf("Raw().File = %q, want rewritten path", got)
	}
}

func TestFrame_File_AssertContextUnwrap(t *testing.T) {
	f := NewFrame(RawFrame{File: "/app/check.php(27) : assert code"})

	if got := f.File(); got != "/app/check.php" {
		t.Errorf("File() = %q, want %q", got, "/app/check.php")
	}
	if got := f.Line(); got != 27 {
		t.Errorf("Line() = %d, want 27", got)
	}
}

func TestFrame_FileContents_NoRetrievableSource(t *testing.T) {
	for _, file := range []string{"", fileUnknown, fileInternal, "does-not-exist.php"} {
		f := NewFrame(RawFrame{File: file})
		if contents, ok := f.FileContents(); ok || contents != "" {
			t.Errorf("FileContents() for file %q = (%q, %v), want absent", file, contents, ok)
		}
		// Absence is memoized, not retried into an error.
		if _, ok := f.FileContents(); ok {
			t.Errorf("second FileContents() for file %q reported contents", file)
		}
	}
}

func TestFrame_FileLines_MissingFile(t *testing.T) {
	f := NewFrame(RawFrame{File: "does-not-exist.php"})
	if lines := f.FileLines(); lines != nil {
		t.Errorf("FileLines() = %v, want nil", lines)
	}
}

func TestFrame_FileLinesRange(t *testing.T) {
	f := fixtureFrame(1)

	lines, err := f.FileLinesRange(0, 3)
	if err != nil {
		t.Fatalf("FileLinesRange(0, 3) returned error: %v", err)
	}

	want := []string{"<?php", "// Line 2", "// Line 3"}
	if len(lines) != len(want) {
		t.Fatalf("FileLinesRange(0, 3) returned %d lines, want %d", len(lines), len(want))
	}
	for i, w := range want {
		if lines[i] != w {
			t.Errorf("line[%d] = %q, want %q", i, lines[i], w)
		}
	}
}

func TestFrame_FileLinesRange_ClampsStart(t *testing.T) {
	f := fixtureFrame(1)

	lines, err := f.FileLinesRange(-5, 2)
	if err != nil {
		t.Fatalf("FileLinesRange(-5, 2) returned error: %v", err)
	}
	if len(lines) != 2 || lines[0] != "<?php" {
		t.Errorf("FileLinesRange(-5, 2) = %v, want the first two lines", lines)
	}
}

func TestFrame_FileLinesRange_InvalidLength(t *testing.T) {
	f := fixtureFrame(1)

	_, err := f.FileLinesRange(-1, -1)
	if err == nil {
		t.Fatal("FileLinesRange(-1, -1) returned no error")
	}

	want := "You provided a invalid value [-1] for $length, $length cannot be lower or equal to 0."
	if err.Error() != want {
		t.Errorf("error = %q, want %q", err.Error(), want)
	}

	var invalid *InvalidLengthError
	if !errors.As(err, &invalid) {
		t.Errorf("error is %T, want *InvalidLengthError", err)
	}
}

func TestFrame_FileLinesRange_PastEnd(t *testing.T) {
	f := fixtureFrame(1)

	lines, err := f.FileLinesRange(1000, 3)
	if err != nil {
		t.Fatalf("FileLinesRange(1000, 3) returned error: %v", err)
	}
	if lines != nil {
		t.Errorf("FileLinesRange(1000, 3) = %v, want nil", lines)
	}
}

func TestFrame_Comments(t *testing.T) {
	f := NewFrame(RawFrame{})
	f.AddComment("first", "")
	f.AddComment("second", "Exception message:")
	f.AddComment("third", "global")

	all := f.Comments("")
	if len(all) != 3 {
		t.Fatalf("Comments(\"\") returned %d comments, want 3", len(all))
	}
	if all[0].Comment != "first" || all[0].Context != "global" {
		t.Errorf("empty context should default to global, got %+v", all[0])
	}
	if all[1].Comment != "second" || all[2].Comment != "third" {
		t.Errorf("comments out of insertion order: %+v", all)
	}

	filtered := f.Comments("global")
	if len(filtered) != 2 || filtered[0].Comment != "first" || filtered[1].Comment != "third" {
		t.Errorf("Comments(\"global\") = %+v, want first and third", filtered)
	}
}

func TestFrame_ApplicationFlag(t *testing.T) {
	f := NewFrame(RawFrame{})
	if f.IsApplication() {
		t.Error("IsApplication() should default to false")
	}
	f.SetApplication(true)
	if !f.IsApplication() {
		t.Error("IsApplication() = false after SetApplication(true)")
	}
}

func TestFrame_Equal(t *testing.T) {
	a := NewFrame(RawFrame{File: "test-file.php", Line: 1})
	b := NewFrame(RawFrame{File: "test-file.php", Line: 1})
	if !a.Equal(b) {
		t.Error("frames with identical file and line should be equal")
	}

	c := NewFrame(RawFrame{File: "test-file.php", Line: 2})
	if a.Equal(c) {
		t.Error("frames with different lines should not be equal")
	}

	unknown := NewFrame(RawFrame{File: fileUnknown, Line: 1})
	if unknown.Equal(unknown) || a.Equal(unknown) {
		t.Error("a frame with file Unknown is never equal to anything")
	}

	empty := NewFrame(RawFrame{Line: 1})
	if empty.Equal(a) || a.Equal(empty) {
		t.Error("a frame with no file is never equal to anything")
	}

	if a.Equal(nil) {
		t.Error("Equal(nil) should be false")
	}
}

func TestFrame_ClassAndFunctionPassthrough(t *testing.T) {
	f := NewFrame(RawFrame{
		Class:    "App\\Kernel",
		Function: "handle",
		Args:     []any{"request"},
	})
	if f.Class() != "App\\Kernel" || f.Function() != "handle" {
		t.Errorf("accessors = (%q, %q), want raw values", f.Class(), f.Function())
	}
	if len(f.Args()) != 1 || f.Args()[0] != "request" {
		t.Errorf("Args() = %v, want opaque passthrough", f.Args())
	}
}
