package orgb

import "testing"

func TestReaderString(t *testing.T) {
	tests := []struct {
		name    string
		buf     []byte
		want    string
		wantErr bool
	}{
		{"with terminator", []byte{5, 0, 'A', 'u', 'r', 'a', 0}, "Aura", false},
		{"without terminator", []byte{4, 0, 'A', 'u', 'r', 'a'}, "Aura", false},
		{"empty", []byte{0, 0}, "", false},
		{"only terminator", []byte{1, 0, 0}, "", false},
		{"length beyond buffer", []byte{9, 0, 'A', 'u'}, "", true},
		{"truncated length", []byte{5}, "", true},
		{"empty buffer", nil, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := newReader(tt.buf).readString()
			if tt.wantErr {
				if err == nil {
					t.Fatal("readString() succeeded, want bounds error")
				}
				return
			}
			if err != nil {
				t.Fatalf("readString() error: %v", err)
			}
			if got != tt.want {
				t.Errorf("readString() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestReaderSkipPastEnd(t *testing.T) {
	r := newReader([]byte{1, 2, 3})
	if err := r.skip(4); err == nil {
		t.Fatal("skip(4) succeeded on a 3-byte buffer")
	}
	if err := r.skip(3); err != nil {
		t.Fatalf("skip(3) error: %v", err)
	}
	if r.remaining() != 0 {
		t.Errorf("remaining = %d, want 0", r.remaining())
	}
}
