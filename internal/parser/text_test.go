package parser

import (
	"context"
	"errors"
	"testing"
)

func TestTXTExtractor_SplitsLines(t *testing.T) {
	p := &TXTExtractor{}
	out, err := p.Extract(context.Background(), []byte("first\nsecond\n\nfourth"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"first", "second", "", "fourth"}
	if len(out.Lines) != len(want) {
		t.Fatalf("expected %d lines, got %d: %v", len(want), len(out.Lines), out.Lines)
	}
	for i := range want {
		if out.Lines[i] != want[i] {
			t.Errorf("line %d: expected %q, got %q", i, want[i], out.Lines[i])
		}
	}
}

func TestTXTExtractor_CRLFLines(t *testing.T) {
	p := &TXTExtractor{}
	out, err := p.Extract(context.Background(), []byte("first\r\nsecond\r\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out.Lines) != 2 || out.Lines[0] != "first" || out.Lines[1] != "second" {
		t.Errorf("unexpected lines: %v", out.Lines)
	}
}

func TestTXTExtractor_InvalidUTF8(t *testing.T) {
	p := &TXTExtractor{}
	_, err := p.Extract(context.Background(), []byte{0xff, 0xfe, 0xfd})
	if err == nil {
		t.Fatal("expected error for invalid utf-8")
	}

	var extractErr *ExtractionError
	if !errors.As(err, &extractErr) {
		t.Fatalf("expected ExtractionError, got %T", err)
	}
}

func TestTXTExtractor_Empty(t *testing.T) {
	p := &TXTExtractor{}
	out, err := p.Extract(context.Background(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out.Lines) != 0 {
		t.Errorf("expected no lines, got %v", out.Lines)
	}
}

func TestTypeForMIME(t *testing.T) {
	tests := []struct {
		mime    string
		wantErr bool
	}{
		{"application/pdf", false},
		{"application/vnd.openxmlformats-officedocument.wordprocessingml.document", false},
		{"text/plain", false},
		{"image/png", true},
		{"", true},
	}
	for _, tt := range tests {
		_, err := TypeForMIME(tt.mime)
		if (err != nil) != tt.wantErr {
			t.Errorf("TypeForMIME(%q): error = %v, wantErr %v", tt.mime, err, tt.wantErr)
		}
	}
}
