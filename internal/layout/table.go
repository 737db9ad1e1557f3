package layout

// Chars is the pair of characters a scancode produces: primary (layout 0,
// QWERTY/English) and secondary (layout 1, ЙЦУКЕН/Russian).
type Chars struct {
	Primary   rune
	Secondary rune
}

// Table is the immutable scancode -> (primary, secondary) mapping. Every
// scancode present has both characters non-empty.
var Table = map[KeyCode]Chars{
	// Row 1
	KeyQ:          {'q', 'й'},
	KeyW:          {'w', 'ц'},
	KeyE:          {'e', 'у'},
	KeyR:          {'r', 'к'},
	KeyT:          {'t', 'е'},
	KeyY:          {'y', 'н'},
	KeyU:          {'u', 'г'},
	KeyI:          {'i', 'ш'},
	KeyO:          {'o', 'щ'},
	KeyP:          {'p', 'з'},
	KeyLeftBrace:  {'[', 'х'},
	KeyRightBrace: {']', 'ъ'},

	// Row 2
	KeyA:          {'a', 'ф'},
	KeyS:          {'s', 'ы'},
	KeyD:          {'d', 'в'},
	KeyF:          {'f', 'а'},
	KeyG:          {'g', 'п'},
	KeyH:          {'h', 'р'},
	KeyJ:          {'j', 'о'},
	KeyK:          {'k', 'л'},
	KeyL:          {'l', 'д'},
	KeySemicolon:  {';', 'ж'},
	KeyApostrophe: {'\'', 'э'},

	// Row 3
	KeyZ:     {'z', 'я'},
	KeyX:     {'x', 'ч'},
	KeyC:     {'c', 'с'},
	KeyV:     {'v', 'м'},
	KeyB:     {'b', 'и'},
	KeyN:     {'n', 'т'},
	KeyM:     {'m', 'ь'},
	KeyComma: {',', 'б'},
	KeyDot:   {'.', 'ю'},
	KeySlash: {'/', '.'},
}

// keyOrder lists every scancode in Table's declaration order (row 1, row 2,
// row 3), used to build reverse deterministically: Go map iteration order is
// randomized per process, so building reverse by ranging over Table directly
// would make colliding characters resolve unpredictably.
var keyOrder = []KeyCode{
	KeyQ, KeyW, KeyE, KeyR, KeyT, KeyY, KeyU, KeyI, KeyO, KeyP, KeyLeftBrace, KeyRightBrace,
	KeyA, KeyS, KeyD, KeyF, KeyG, KeyH, KeyJ, KeyK, KeyL, KeySemicolon, KeyApostrophe,
	KeyZ, KeyX, KeyC, KeyV, KeyB, KeyN, KeyM, KeyComma, KeyDot, KeySlash,
}

// reverse maps every primary and secondary character back to its scancode.
// Both layout alphabets are disjoint except for the character '.', which is
// KeyDot's primary and KeySlash's secondary; walking keyOrder in order means
// KeySlash (declared after KeyDot) overwrites it last, so reverse['.']
// deterministically resolves to KeySlash, matching
// original_source/punto/core/layout.py's CHAR_TO_KEY['.'].
var reverse map[rune]KeyCode

func init() {
	reverse = make(map[rune]KeyCode, len(Table)*2)
	for _, code := range keyOrder {
		chars := Table[code]
		reverse[chars.Primary] = code
		reverse[chars.Secondary] = code
	}
}

// ScancodeForChar returns the scancode that produces r as either its
// primary or secondary character, and whether one was found.
func ScancodeForChar(r rune) (KeyCode, bool) {
	code, ok := reverse[r]
	return code, ok
}

// IsPrintable reports whether code has an entry in the layout table.
func IsPrintable(code KeyCode) bool {
	_, ok := Table[code]
	return ok
}

// Primary renders a scancode buffer as the layout-0 (English) string.
func Primary(buffer []KeyCode) string {
	return render(buffer, func(c Chars) rune { return c.Primary })
}

// Secondary renders a scancode buffer as the layout-1 (Russian) string.
func Secondary(buffer []KeyCode) string {
	return render(buffer, func(c Chars) rune { return c.Secondary })
}

func render(buffer []KeyCode, pick func(Chars) rune) string {
	runes := make([]rune, 0, len(buffer))
	for _, code := range buffer {
		chars, ok := Table[code]
		if !ok {
			continue
		}
		runes = append(runes, pick(chars))
	}
	return string(runes)
}

// EnglishVowels and RussianVowels are the alphabets used by the language
// scorer to judge whether a buffered word looks like English or Russian.
var (
	EnglishVowels = map[rune]bool{'a': true, 'e': true, 'i': true, 'o': true, 'u': true, 'y': true}
	RussianVowels = map[rune]bool{'а': true, 'е': true, 'ё': true, 'и': true, 'о': true, 'у': true, 'ы': true, 'э': true, 'ю': true, 'я': true}
)
