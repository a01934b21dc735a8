package common

import "testing"

func TestValidateFormat(t *testing.T) {
	supported := []string{"json", "text", "markdown"}

	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "exact", input: "json", want: "json"},
		{name: "mixed case", input: "JSON", want: "json"},
		{name: "padded", input: "  text ", want: "text"},
		{name: "unsupported", input: "xml", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ValidateFormat(tt.input, supported)
			if (err != nil) != tt.wantErr {
				t.Fatalf("error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}
