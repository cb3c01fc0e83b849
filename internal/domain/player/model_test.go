package player

import "testing"

func TestPlayerValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		in      Player
		wantErr bool
	}{
		{name: "valid", in: Player{AccountID: "acc-1", Name: "Faker", SummonerLevel: 30}},
		{name: "missing account", in: Player{Name: "Faker"}, wantErr: true},
		{name: "missing name", in: Player{AccountID: "acc-1"}, wantErr: true},
		{name: "negative level", in: Player{AccountID: "acc-1", Name: "Faker", SummonerLevel: -1}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.in.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() err=%v wantErr=%v", err, tt.wantErr)
			}
		})
	}
}
