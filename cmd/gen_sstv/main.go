package main

import (
	sstv "github.com/doismellburning/pd120/src"
)

/*-------------------------------------------------------------------
 *
 * Name:        main
 *
 * Purpose:     Write a PD120 SSTV transmission to a .WAV file.
 *
 *--------------------------------------------------------------------*/

func main() {
	sstv.GenSSTVMain()
}
