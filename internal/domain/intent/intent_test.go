package intent

import "testing"

func TestClassify(t *testing.T) {
	tests := []struct {
		in   string
		want Intent
	}{
		{"hi", Greeting},
		{"Hello", Greeting},
		{"  HEY  ", Greeting},
		{"good morning", Greeting},
		{"Good Evening", Greeting},
		{"hola", Greeting},
		{"bye", Farewell},
		{"Goodbye ", Farewell},
		{"see you", Farewell},
		{"thanks", Thanks},
		{"Thank You", Thanks},
		{"thx", Thanks},
		{"I have dry hair", Substantive},
		{"hi there, I need shampoo", Substantive}, // no substring matching
		{"something for dandruff", Substantive},
		{"", Substantive},
		{"   ", Substantive},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := Classify(tt.in); got != tt.want {
				t.Errorf("Classify(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestIntent_String(t *testing.T) {
	pairs := map[Intent]string{
		Greeting:    "greeting",
		Farewell:    "farewell",
		Thanks:      "thanks",
		Substantive: "substantive",
	}
	for in, want := range pairs {
		if got := in.String(); got != want {
			t.Errorf("%d.String() = %q, want %q", in, got, want)
		}
	}
}
