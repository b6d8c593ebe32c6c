package cmd

import "testing"

func TestResolveServeStartPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		week    string
		want    string
		wantErr bool
	}{
		{name: "empty opens root", week: "", want: "/"},
		{name: "date opens week", week: "2024-03-06", want: "/?date=2024-03-06"},
		{name: "trims spaces", week: " 2024-03-06 ", want: "/?date=2024-03-06"},
		{name: "rejects invalid date", week: "2024-03", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := resolveServeStartPath(tt.week)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q", tt.week)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("expected %q, got %q", tt.want, got)
			}
		})
	}
}
