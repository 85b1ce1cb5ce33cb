package main

import (
	sstv "github.com/doismellburning/pd120/src"
)

// PD120 SSTV station: key the radio and send pictures.
func main() {
	sstv.SSTVTxMain()
}
