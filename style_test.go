package lamina

import (
	"testing"

	"github.com/laminaui/lamina/scene"
)

func TestParseStyle(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Style
	}{
		{
			name:  "empty",
			input: "",
			want:  Style{},
		},
		{
			name:  "named fill",
			input: "bg-blue-500",
			want:  Style{Fill: 0x3b82f6ff, HasFill: true},
		},
		{
			name:  "arbitrary hex fill",
			input: "bg-[#1da1f2]",
			want:  Style{Fill: 0x1da1f2ff, HasFill: true},
		},
		{
			name:  "shorthand hex expands",
			input: "bg-[#f0a]",
			want:  Style{Fill: 0xff00aaff, HasFill: true},
		},
		{
			name:  "hex with alpha",
			input: "bg-[#11223344]",
			want:  Style{Fill: 0x11223344, HasFill: true},
		},
		{
			name:  "scaled sizing",
			input: "w-16 h-8",
			want:  Style{Size: scene.Vec2{X: 64, Y: 32}},
		},
		{
			name:  "arbitrary sizing",
			input: "w-[42] h-[10.5px]",
			want:  Style{Size: scene.Vec2{X: 42, Y: 10.5}},
		},
		{
			name:  "flags",
			input: "hidden clip",
			want:  Style{Hidden: true, Clip: true},
		},
		{
			name:  "everything at once",
			input: "bg-red-500 w-64 h-32 clip",
			want:  Style{Fill: 0xef4444ff, HasFill: true, Size: scene.Vec2{X: 256, Y: 128}, Clip: true},
		},
		{
			name:  "later class wins",
			input: "bg-white bg-black",
			want:  Style{Fill: 0x000000ff, HasFill: true},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseStyle(tt.input)
			if err != nil {
				t.Fatalf("ParseStyle(%q) error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseStyle(%q) = %+v, want %+v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseStyleErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"unknown class", "bg-blue-500 shadow-xl"},
		{"unknown color", "bg-atomicpink"},
		{"missing hash", "bg-[1da1f2]"},
		{"bad hex length", "bg-[#12345]"},
		{"bad hex digits", "bg-[#zzzzzz]"},
		{"bad dimension", "w-wide"},
		{"negative dimension", "w-[-4]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseStyle(tt.input); err == nil {
				t.Errorf("ParseStyle(%q) succeeded, want error", tt.input)
			}
		})
	}
}

func TestColorAccessors(t *testing.T) {
	c := RGB(0x1d, 0xa1, 0xf2)
	if c != 0x1da1f2ff {
		t.Fatalf("RGB = %#x, want 0x1da1f2ff", uint32(c))
	}
	r, g, b, a := Color(0x80402000).RGBA()
	if r != float32(0x80)/255 || g != float32(0x40)/255 || b != float32(0x20)/255 || a != 0 {
		t.Errorf("RGBA = %v %v %v %v", r, g, b, a)
	}
	br, bg, bb, ba := Color(0x11223344).Bytes()
	if br != 0x11 || bg != 0x22 || bb != 0x33 || ba != 0x44 {
		t.Errorf("Bytes = %#x %#x %#x %#x", br, bg, bb, ba)
	}
}

func BenchmarkParseStyle(b *testing.B) {
	input := "bg-[#1da1f2] w-64 h-32 clip"
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := ParseStyle(input); err != nil {
			b.Fatal(err)
		}
	}
}
