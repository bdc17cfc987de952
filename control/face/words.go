package face

// Word is a fixed run of lamps on the face.
type Word struct {
	Name string
	Row  int
	Mask Row
}

// Letters is what is printed on the face, one string per row, leftmost column first.  Several
// words share letters: PAST/TO, TEN/NINE, MIDNIGHT/TWO and ELEVEN/NOON/ONE.
var Letters = [Rows]string{
	"ITISATWENTY",
	"QUARTERHALF",
	"FIVETENBEER",
	"PASTOMEIGHT",
	"TENINETHREE",
	"FOURFIVESIX",
	"MIDNIGHTWOZ",
	"ELEVENOONES",
	"SEVENOCLOCK",
}

// The words of the face.  Minute words and hour words are separate lamps even where the word is
// the same (FIVE and TEN appear twice).
var (
	ItIs    = Word{"IT IS", 0, 0b00000001111}
	Twenty  = Word{"TWENTY", 0, 0b11111100000}
	Quarter = Word{"QUARTER", 1, 0b00001111111}
	Half    = Word{"HALF", 1, 0b11110000000}
	FiveMin = Word{"FIVE", 2, 0b00000001111}
	TenMin  = Word{"TEN", 2, 0b00001110000}
	Beer    = Word{"BEER", 2, 0b11110000000}
	Past    = Word{"PAST", 3, 0b00000001111}
	To      = Word{"TO", 3, 0b00000011000}
	OClock  = Word{"O'CLOCK", 8, 0b11111100000}

	Midnight = Word{"MIDNIGHT", 6, 0b00011111111}
	One      = Word{"ONE", 7, 0b01110000000}
	Two      = Word{"TWO", 6, 0b01110000000}
	Three    = Word{"THREE", 4, 0b11111000000}
	Four     = Word{"FOUR", 5, 0b00000001111}
	Five     = Word{"FIVE", 5, 0b00011110000}
	Six      = Word{"SIX", 5, 0b11100000000}
	Seven    = Word{"SEVEN", 8, 0b00000011111}
	Eight    = Word{"EIGHT", 3, 0b11111000000}
	Nine     = Word{"NINE", 4, 0b00000111100}
	Ten      = Word{"TEN", 4, 0b00000000111}
	Eleven   = Word{"ELEVEN", 7, 0b00000111111}
	Noon     = Word{"NOON", 7, 0b00111100000}
)

// hourWords is indexed by hour mod 12.  Index 0 is MIDNIGHT; hour 12 is overridden to NOON by
// HourWord.
var hourWords = [12]Word{Midnight, One, Two, Three, Four, Five, Six, Seven, Eight, Nine, Ten, Eleven}

// All lists every word on the face.
var All = []Word{
	ItIs, Twenty, Quarter, Half, FiveMin, TenMin, Beer, Past, To, OClock,
	Midnight, One, Two, Three, Four, Five, Six, Seven, Eight, Nine, Ten, Eleven, Noon,
}

// HourWord returns the word naming hour h (0-23).
func HourWord(h int) Word {
	if h == 12 {
		return Noon
	}
	return hourWords[((h%12)+12)%12]
}
