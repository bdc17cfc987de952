package face

import "testing"

func has(words []Word, w Word) bool {
	for _, x := range words {
		if x == w {
			return true
		}
	}
	return false
}

func sameWords(a, b []Word) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestPhrase(t *testing.T) {
	testData := []struct {
		hour, minute int
		want         string
	}{
		{0, 0, "IT IS MIDNIGHT"},
		{0, 2, "IT IS MIDNIGHT"},
		{12, 0, "IT IS NOON"},
		{12, 4, "IT IS NOON"},
		{1, 0, "IT IS ONE O'CLOCK"},
		{3, 15, "IT IS QUARTER PAST THREE"},
		{3, 32, "IT IS HALF PAST THREE"},
		{3, 35, "IT IS TWENTY FIVE TO FOUR"},
		{3, 59, "IT IS FIVE TO FOUR"},
		{5, 0, "IT IS FIVE O'CLOCK"},
		{11, 40, "IT IS TWENTY TO NOON"},
		{11, 57, "IT IS FIVE TO NOON"},
		{16, 55, "IT IS FIVE TO FIVE"},
		{17, 0, "IT IS BEER O'CLOCK"},
		{17, 4, "IT IS BEER O'CLOCK"},
		{17, 5, "IT IS FIVE PAST FIVE"},
		{20, 10, "IT IS TEN PAST EIGHT"},
		{20, 25, "IT IS TWENTY FIVE PAST EIGHT"},
		{22, 47, "IT IS QUARTER TO ELEVEN"},
		{23, 35, "IT IS TWENTY FIVE TO MIDNIGHT"},
		{23, 59, "IT IS FIVE TO MIDNIGHT"},
	}
	for _, test := range testData {
		if got, want := Phrase(test.hour, test.minute), test.want; got != want {
			t.Errorf("phrase for %02d:%02d:\n  got: %v\n want: %v", test.hour, test.minute, got, want)
		}
	}
}

func TestMinuteBucketsPartition(t *testing.T) {
	buckets := map[int]int{} // bucket start -> count
	for m := 0; m < 60; m++ {
		got := minuteWords(m)
		if m < 5 {
			if len(got) != 0 {
				t.Errorf("minute %d: unexpected minute words %v", m, got)
			}
			continue
		}
		if len(got) == 0 {
			t.Errorf("minute %d: no minute words", m)
		}
		// Buckets mirror around the half hour.
		mirror := (12-m/5)*5 + m%5
		if a, b := minuteWords(m), minuteWords(mirror); !sameWords(a, b) {
			t.Errorf("minute %d and %d differ: %v vs %v", m, mirror, a, b)
		}
		buckets[m/5]++
	}
	for b := 1; b < 12; b++ {
		if got, want := buckets[b], 5; got != want {
			t.Errorf("bucket %d size:\n  got: %v\n want: %v", b, got, want)
		}
	}
}

func TestPastAndTo(t *testing.T) {
	for h := 0; h < 24; h++ {
		for m := 0; m < 60; m++ {
			words := Words(h, m)
			past, to := has(words, Past), has(words, To)
			switch {
			case m < 5:
				if past || to {
					t.Errorf("%02d:%02d: PAST=%v TO=%v, want neither", h, m, past, to)
				}
			case m < 35:
				if !past || to {
					t.Errorf("%02d:%02d: PAST=%v TO=%v, want PAST", h, m, past, to)
				}
				if !has(words, HourWord(h)) {
					t.Errorf("%02d:%02d: missing hour word %s", h, m, HourWord(h).Name)
				}
			default:
				if past || !to {
					t.Errorf("%02d:%02d: PAST=%v TO=%v, want TO", h, m, past, to)
				}
				if !has(words, HourWord((h+1)%24)) {
					t.Errorf("%02d:%02d: missing hour word %s", h, m, HourWord((h+1)%24).Name)
				}
			}
		}
	}
}

func TestExactlyOneHourWord(t *testing.T) {
	hours := append([]Word{Beer, Noon}, hourWords[:]...)
	for h := 0; h < 24; h++ {
		for m := 0; m < 60; m++ {
			var n int
			words := Words(h, m)
			for _, w := range hours {
				if has(words, w) {
					n++
				}
			}
			if n != 1 {
				t.Errorf("%02d:%02d: %d hour words in %q", h, m, n, Phrase(h, m))
			}
		}
	}
}

func TestBeer(t *testing.T) {
	for m := 0; m < 5; m++ {
		g := Render(17, m)
		if g[Beer.Row]&Beer.Mask != Beer.Mask {
			t.Errorf("17:%02d: BEER not lit", m)
		}
		if g[Five.Row]&Five.Mask != 0 {
			t.Errorf("17:%02d: hour FIVE lit", m)
		}
		if g5 := Render(5, m); g5[Beer.Row]&Beer.Mask != 0 {
			t.Errorf("05:%02d: BEER lit", m)
		}
	}
	g := Render(17, 5)
	if g[Five.Row]&Five.Mask != Five.Mask {
		t.Error("17:05: hour FIVE not lit")
	}
	if g[Beer.Row]&Beer.Mask != 0 {
		t.Error("17:05: BEER lit")
	}
}

func TestRenderGrids(t *testing.T) {
	testData := []struct {
		name         string
		hour, minute int
		want         Grid
	}{
		{
			name: "midnight",
			hour: 0, minute: 2,
			want: Grid{0: ItIs.Mask, 6: Midnight.Mask},
		},
		{
			name: "noon",
			hour: 12, minute: 0,
			want: Grid{0: ItIs.Mask, 7: Noon.Mask},
		},
		{
			name: "twenty five to eight shares a row with TO",
			hour: 19, minute: 36,
			want: Grid{0: ItIs.Mask | Twenty.Mask, 2: FiveMin.Mask, 3: To.Mask | Eight.Mask},
		},
		{
			name: "seven o'clock shares a row with O'CLOCK",
			hour: 7, minute: 1,
			want: Grid{0: ItIs.Mask, 8: Seven.Mask | OClock.Mask},
		},
		{
			name: "half past three",
			hour: 3, minute: 32,
			want: Grid{0: ItIs.Mask, 1: Half.Mask, 3: Past.Mask, 4: Three.Mask},
		},
	}
	for _, test := range testData {
		t.Run(test.name, func(t *testing.T) {
			got := Render(test.hour, test.minute)
			if want := test.want; got != want {
				t.Errorf("render %02d:%02d:\n  got:\n%v\n want:\n%v", test.hour, test.minute, got.String(), want.String())
			}
		})
	}
}

func TestRenderAlwaysSaysItIs(t *testing.T) {
	for h := 0; h < 24; h++ {
		for m := 0; m < 60; m++ {
			g := Render(h, m)
			if g[0]&ItIs.Mask != ItIs.Mask {
				t.Fatalf("%02d:%02d: IT IS not lit", h, m)
			}
			for i, r := range g {
				if r&^RowMask != 0 {
					t.Fatalf("%02d:%02d: row %d has bits outside the face: %#x", h, m, i, r)
				}
			}
		}
	}
}
