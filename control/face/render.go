package face

import "strings"

// Words returns the words that spell out hour:minute, in reading order.  The time is rounded down
// to a five minute bucket; from 35 minutes past the hour on, the phrase counts down to the next
// hour ("TWENTY FIVE TO FOUR").
//
// hour is 0-23 and minute is 0-59.  Values outside those ranges are wrapped into them; callers
// are expected to have validated the time already.
func Words(hour, minute int) []Word {
	hour = ((hour % 24) + 24) % 24
	minute = ((minute % 60) + 60) % 60

	words := []Word{ItIs}
	words = append(words, minuteWords(minute)...)

	shown := hour
	switch {
	case minute >= 35:
		words = append(words, To)
		shown = (hour + 1) % 24
	case minute >= 5:
		words = append(words, Past)
	}

	// Five o'clock in the afternoon is beer o'clock.  This is keyed on the real hour, so
	// "FIVE TO FIVE" at 16:55 and 5:00 in the morning are unaffected.
	if hour == 17 && minute < 5 {
		words = append(words, Beer)
	} else {
		words = append(words, HourWord(shown))
	}

	if minute < 5 && shown != 0 && shown != 12 {
		words = append(words, OClock)
	}
	return words
}

// minuteWords picks the words for the five minute bucket that minute falls in.  Buckets mirror
// around the half hour, so m and 60-m read the same.
func minuteWords(m int) []Word {
	switch {
	case m < 5:
		return nil
	case m < 10 || m >= 55:
		return []Word{FiveMin}
	case m < 15 || m >= 50:
		return []Word{TenMin}
	case m < 20 || m >= 45:
		return []Word{Quarter}
	case m < 25 || m >= 40:
		return []Word{Twenty}
	case m < 30 || m >= 35:
		return []Word{Twenty, FiveMin}
	default:
		return []Word{Half}
	}
}

// Render returns the grid that spells out hour:minute.
func Render(hour, minute int) Grid {
	var g Grid
	for _, w := range Words(hour, minute) {
		g.Light(w)
	}
	return g
}

// Phrase returns the time as it reads on the face, e.g. "IT IS QUARTER PAST THREE".
func Phrase(hour, minute int) string {
	words := Words(hour, minute)
	names := make([]string, len(words))
	for i, w := range words {
		names[i] = w.Name
	}
	return strings.Join(names, " ")
}
