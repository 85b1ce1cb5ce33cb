package sstv

/*------------------------------------------------------------------
 *
 * Purpose:   	Send a Morse code station identification after the
 *		image, on the same tone generator.
 *
 *---------------------------------------------------------------*/

import (
	"time"
	"unicode"
)

const MORSE_TONE = 800

// One time unit is a dot.  PARIS at 1 WPM takes a minute.
func morseUnitDuration(wpm int) time.Duration {
	return time.Duration(1200/float64(wpm)*float64(time.Millisecond) + 0.5)
}

var MORSE = map[rune]string{
	'A': ".-",
	'B': "-...",
	'C': "-.-.",
	'D': "-..",
	'E': ".",
	'F': "..-.",
	'G': "--.",
	'H': "....",
	'I': "..",
	'J': ".---",
	'K': "-.-",
	'L': ".-..",
	'M': "--",
	'N': "-.",
	'O': "---",
	'P': ".--.",
	'Q': "--.-",
	'R': ".-.",
	'S': "...",
	'T': "-",
	'U': "..-",
	'V': "...-",
	'W': ".--",
	'X': "-..-",
	'Y': "-.--",
	'Z': "--..",
	'1': ".----",
	'2': "..---",
	'3': "...--",
	'4': "....-",
	'5': ".....",
	'6': "-....",
	'7': "--...",
	'8': "---..",
	'9': "----.",
	'0': "-----",
	'.': ".-.-.-",
	',': "--..--",
	'?': "..--..",
	'/': "-..-.",
	'=': "-...-",
	'-': "-....-",
	'@': ".--.-.",
}

func morseLookup(ch rune) (string, bool) {
	var enc, ok = MORSE[unicode.ToUpper(ch)]
	return enc, ok
}

/*-------------------------------------------------------------------
 *
 * Name:        morseUnitsChar
 *
 * Returns:	1 for E (.)
 *		3 for T (-)
 *		3 for I (..)
 *		etc.
 *
 *		Space, or anything not in the table, counts as 1.
 *		Between two other characters there are already 3
 *		either side, so 1 more makes the 7 of a word gap.
 *
 *--------------------------------------------------------------------*/

func morseUnitsChar(ch rune) int {
	var enc, ok = morseLookup(ch)
	if !ok {
		return 1
	}

	var units = len(enc) - 1

	for _, k := range enc {
		if k == '.' {
			units++
		} else {
			units += 3
		}
	}

	return units
}

// morseUnitsString: 1 for "E", 5 for "EE", 9 for "E E".
func morseUnitsString(str string) int {
	var runes = []rune(str)
	if len(runes) == 0 {
		return 0
	}

	var units = (len(runes) - 1) * 3

	for _, k := range runes {
		units += morseUnitsChar(k)
	}

	return units
}

// MorseDuration is how long SendMorse takes for str.
func MorseDuration(str string, wpm int) time.Duration {
	return time.Duration(morseUnitsString(str)) * morseUnitDuration(wpm)
}

/*-------------------------------------------------------------------
 *
 * Name:        SendMorse
 *
 * Purpose:    	Key the tone for each dot and dash of str.
 *
 * Inputs:	str	- Characters to send.  Unknown ones are gaps.
 *		wpm	- Speed in words per minute.
 *		hz	- Tone frequency.
 *
 * Returns:	Time taken.
 *
 *--------------------------------------------------------------------*/

func SendMorse(tone ToneGenerator, delay Delay, str string, wpm int, hz uint32) time.Duration {
	if wpm <= 0 || str == "" {
		return 0
	}

	var unit = morseUnitDuration(wpm)
	var units = 0

	var mark = func(n int) {
		tone.SetFrequency(hz)
		delay.Wait(time.Duration(n) * unit)
		units += n
	}

	var space = func(n int) {
		tone.Stop()
		delay.Wait(time.Duration(n) * unit)
		units += n
	}

	var runes = []rune(str)

	for i, ch := range runes {
		if enc, ok := morseLookup(ch); ok {
			for j, e := range enc {
				if e == '.' {
					mark(1)
				} else {
					mark(3)
				}

				if j != len(enc)-1 {
					space(1)
				}
			}
		} else {
			space(1)
		}

		if i != len(runes)-1 {
			space(3)
		}
	}

	tone.Stop()

	return time.Duration(units) * unit
}
