package retrieval

import (
	"reflect"
	"testing"
)

func TestFold(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"lowercase", "MORFINA", "morfina"},
		{"diacritics", "recibió atención", "recibio atencion"},
		{"enye", "mañana", "manana"},
		{"mixed", "Dosis Máxima: 5 MG", "dosis maxima: 5 mg"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Fold(tt.in); got != tt.want {
				t.Errorf("Fold(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestFoldKeepsRuneAlignment(t *testing.T) {
	in := "Añadió 5 µg más"
	folded := []rune(Fold(in))
	if len(folded) != len([]rune(in)) {
		t.Fatalf("fold changed rune count: %d != %d", len(folded), len([]rune(in)))
	}
}

func TestTokenize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{
			name: "query terms keep order and case-fold",
			in:   "Morfina DOSIS",
			want: []string{"morfina", "dosis"},
		},
		{
			name: "short terms and stopwords dropped",
			in:   "El paciente recibió 5 mg de morfina cada 4 horas.",
			want: []string{"paciente", "recibio", "morfina", "cada"},
		},
		{
			name: "duplicates preserved",
			in:   "shock shock anafiláctico",
			want: []string{"shock", "shock", "anafilactico"},
		},
		{
			name: "whitespace only",
			in:   "   \n\t ",
			want: nil,
		},
		{
			name: "empty",
			in:   "",
			want: nil,
		},
		{
			name: "punctuation only",
			in:   "¿¡...!?",
			want: nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Tokenize(tt.in)
			if len(got) == 0 && len(tt.want) == 0 {
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Tokenize(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}
