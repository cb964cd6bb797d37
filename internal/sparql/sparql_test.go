package sparql

import "testing"

func TestDecode(t *testing.T) {
	body := []byte(`{
		"head": {"vars": ["identificatie", "isRijksmonument"]},
		"results": {"bindings": [
			{
				"identificatie": {"type": "literal", "value": "0599010000165822"},
				"isRijksmonument": {"type": "literal", "datatype": "http://www.w3.org/2001/XMLSchema#boolean", "value": "true"}
			}
		]}
	}`)

	r, err := Decode(body)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if len(r.Head.Vars) != 2 {
		t.Errorf("vars = %v, want 2 entries", r.Head.Vars)
	}
	rows := r.Bindings()
	if len(rows) != 1 {
		t.Fatalf("bindings = %d, want 1", len(rows))
	}
	if got := rows[0].Value("identificatie"); got != "0599010000165822" {
		t.Errorf("identificatie = %q", got)
	}
	if !rows[0].Bool("isRijksmonument") {
		t.Error("isRijksmonument should be true")
	}
	if rows[0].Bool("missing") {
		t.Error("unbound variable should be false")
	}
	if rows[0].Value("missing") != "" {
		t.Error("unbound variable should have empty value")
	}
}

func TestDecode_Invalid(t *testing.T) {
	if _, err := Decode([]byte("<html>gateway timeout</html>")); err == nil {
		t.Error("expected error for non-JSON body")
	}
}

func TestBindings_NilResults(t *testing.T) {
	var r *Results
	if r.Bindings() != nil {
		t.Error("nil results should have no bindings")
	}
}

func TestBinding_Bool(t *testing.T) {
	tests := []struct {
		value string
		want  bool
	}{
		{"true", true},
		{"TRUE", true},
		{"1", true},
		{"false", false},
		{"0", false},
		{"", false},
	}
	for _, tt := range tests {
		b := Binding{"x": {Type: "literal", Value: tt.value}}
		if got := b.Bool("x"); got != tt.want {
			t.Errorf("Bool(%q) = %v, want %v", tt.value, got, tt.want)
		}
	}
}

func TestLiteral(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Coolsingel", `"Coolsingel"`},
		{`'s-Gravenhage`, `"'s-Gravenhage"`},
		{`a"b`, `"a\"b"`},
		{`back\slash`, `"back\\slash"`},
		{"line\nbreak", `"line\nbreak"`},
		{`x" . } DROP ALL #`, `"x\" . } DROP ALL #"`},
	}
	for _, tt := range tests {
		if got := Literal(tt.in); got != tt.want {
			t.Errorf("Literal(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}
