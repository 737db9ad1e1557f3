package converters

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSwitchLayoutRoundTrip(t *testing.T) {
	for _, s := range []string{"privet", "hello", "ghbdtn", "test"} {
		require.Equal(t, s, SwitchLayout(SwitchLayout(s)))
	}
}

func TestSwitchLayoutTranslatesGibberish(t *testing.T) {
	require.Equal(t, "привет", SwitchLayout("ghbdtn"))
	require.Equal(t, "ghbdtn", SwitchLayout("привет"))
}

func TestInvertCaseRoundTrip(t *testing.T) {
	for _, s := range []string{"Hello World", "ПРИВЕТ", "MiXeD123"} {
		require.Equal(t, s, InvertCase(InvertCase(s)))
	}
}

func TestInvertCase(t *testing.T) {
	require.Equal(t, "hELLO", InvertCase("Hello"))
}

func TestTransliterate(t *testing.T) {
	require.Equal(t, "privet", Transliterate("привет"))
	require.Equal(t, "Privet", Transliterate("Привет"))
	require.Equal(t, "hello", Transliterate("hello"))
}

func TestNumberToWords(t *testing.T) {
	cases := map[string]string{
		"0":   "ноль",
		"1":   "один",
		"21":  "двадцать один",
		"100": "сто",
		"1000": "одна тысяча",
		"2021": "две тысячи двадцать один",
	}
	for in, want := range cases {
		got, ok := NumberToWords(in)
		require.True(t, ok, in)
		require.Equal(t, want, got, in)
	}
}

func TestNumberToWordsRejectsNonNumeric(t *testing.T) {
	_, ok := NumberToWords("hello")
	require.False(t, ok)
}

func TestNumberToWordsDecimal(t *testing.T) {
	got, ok := NumberToWords("3,14")
	require.True(t, ok)
	require.Equal(t, "три целых четырнадцать сотых", got)
}
