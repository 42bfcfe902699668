package pricing

import "testing"

func TestPrice(t *testing.T) {
	tests := []struct {
		mode    Mode
		months  int
		want    int
		wantErr error
	}{
		{mode: Remote, months: 1, want: 299},
		{mode: Remote, months: 2, want: 867},
		{mode: Remote, months: 3, want: 1946},
		{mode: Remote, months: 4, want: 3997},
		{mode: Onsite, months: 1, want: 999},
		{mode: Onsite, months: 2, want: 2897},
		{mode: Onsite, months: 3, want: 6503},
		{mode: Onsite, months: 4, want: 13356},
		{mode: Hybrid, months: 1, want: 649},
		{mode: Hybrid, months: 2, want: 1882},
		{mode: Hybrid, months: 3, want: 4225},
		{mode: Hybrid, months: 4, want: 8676},
		{mode: Remote, months: 0, wantErr: ErrInvalidDuration},
		{mode: Onsite, months: 5, wantErr: ErrInvalidDuration},
		{mode: Hybrid, months: -1, wantErr: ErrInvalidDuration},
		{mode: "moon", months: 1, wantErr: ErrInvalidMode},
		{mode: "", months: 2, wantErr: ErrInvalidMode},
	}
	for _, tt := range tests {
		t.Run(string(tt.mode), func(t *testing.T) {
			got, err := Price(tt.mode, tt.months)
			if err != tt.wantErr {
				t.Fatalf("Price(%q, %d) error = %v, wantErr %v", tt.mode, tt.months, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("Price(%q, %d) = %d, want %d", tt.mode, tt.months, got, tt.want)
			}
		})
	}
}

func TestPriceIsDeterministic(t *testing.T) {
	for _, mode := range Modes {
		for n := MinDuration; n <= MaxDuration; n++ {
			first, _ := Price(mode, n)
			for i := 0; i < 10; i++ {
				if got, _ := Price(mode, n); got != first {
					t.Fatalf("Price(%q, %d) = %d then %d", mode, n, first, got)
				}
			}
		}
	}
}

func TestTable(t *testing.T) {
	rows := Table()
	if len(rows) != len(Modes) {
		t.Fatalf("got %d rows, want %d", len(rows), len(Modes))
	}
	for _, row := range rows {
		if len(row.Quotes) != MaxDuration-MinDuration+1 {
			t.Fatalf("%s: got %d quotes", row.Mode, len(row.Quotes))
		}
		prev := 0
		for _, q := range row.Quotes {
			want, _ := Price(row.Mode, q.Duration)
			if q.Amount != want {
				t.Errorf("%s/%d: amount = %d, want %d", row.Mode, q.Duration, q.Amount, want)
			}
			if q.Amount <= prev {
				t.Errorf("%s/%d: amount %d not greater than previous %d", row.Mode, q.Duration, q.Amount, prev)
			}
			prev = q.Amount
		}
	}
}

func TestModeValid(t *testing.T) {
	for _, mode := range Modes {
		if !mode.Valid() {
			t.Errorf("%q.Valid() = false", mode)
		}
	}
	if Mode("REMOTE").Valid() {
		t.Error(`"REMOTE".Valid() = true`)
	}
}
