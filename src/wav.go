package sstv

/*------------------------------------------------------------------
 *
 * Purpose:     Write mono PCM audio to a .WAV file.
 *
 * Description:	The header is written first with zero lengths and
 *		patched on Close once the data size is known.
 *
 *----------------------------------------------------------------*/

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"os"
)

type wav_header struct { /* .WAV file header. */
	riff            [4]byte /* "RIFF" */
	filesize        int32   /* file length - 8 */
	wave            [4]byte /* "WAVE" */
	fmt             [4]byte /* "fmt " */
	fmtsize         int32   /* 16. */
	wformattag      int16   /* 1 for PCM. */
	nchannels       int16   /* 1 for mono. */
	nsamplespersec  int32   /* sampling freq, Hz. */
	navgbytespersec int32   /* = nblockalign * nsamplespersec. */
	nblockalign     int16   /* = wbitspersample / 8 * nchannels. */
	wbitspersample  int16   /* 16 or 8. */
	data            [4]byte /* "data" */
	datasize        int32   /* number of bytes following. */
}

func (h *wav_header) writeTo(w io.Writer) error {
	return binary.Write(w, binary.LittleEndian, h)
}

const wavHeaderSize = 44

// WAVWriter is a SampleSink backed by a file.
type WAVWriter struct {
	f         *os.File
	w         *bufio.Writer
	header    wav_header
	byteCount int
	scratch   []byte
}

// CreateWAV opens fname for writing.  bitsPerSample is 8 or 16.
func CreateWAV(fname string, sampleRate int, bitsPerSample int) (*WAVWriter, error) {
	if bitsPerSample != 8 && bitsPerSample != 16 {
		return nil, fmt.Errorf("unsupported bits per sample %d", bitsPerSample)
	}

	var f, err = os.Create(fname) //nolint:gosec // We expect to write to a user-supplied file from CLI
	if err != nil {
		return nil, fmt.Errorf("couldn't open %s for write: %w", fname, err)
	}

	var ww = &WAVWriter{f: f}

	var h = &ww.header
	h.riff = [4]byte{'R', 'I', 'F', 'F'}
	h.wave = [4]byte{'W', 'A', 'V', 'E'}
	h.fmt = [4]byte{'f', 'm', 't', ' '}
	h.fmtsize = 16   // Always 16.
	h.wformattag = 1 // 1 for PCM.
	h.nchannels = 1
	h.nsamplespersec = int32(sampleRate)    //nolint:gosec
	h.wbitspersample = int16(bitsPerSample) //nolint:gosec
	h.nblockalign = h.wbitspersample / 8 * h.nchannels
	h.navgbytespersec = int32(h.nblockalign) * h.nsamplespersec
	h.data = [4]byte{'d', 'a', 't', 'a'}

	err = h.writeTo(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("couldn't write header to %s: %w", fname, err)
	}

	ww.w = bufio.NewWriter(f)

	return ww, nil
}

func (ww *WAVWriter) WriteSamples(samples []int16) error {
	ww.scratch = ww.scratch[:0]

	for _, sam := range samples {
		if ww.header.wbitspersample == 8 {
			/* 8 bit is unsigned, range 0 .. 255 */
			ww.scratch = append(ww.scratch, byte((int(sam)+32768)>>8))
		} else {
			/* 16 bit is signed, little endian */
			ww.scratch = binary.LittleEndian.AppendUint16(ww.scratch, uint16(sam))
		}
	}

	var n, err = ww.w.Write(ww.scratch)
	ww.byteCount += n

	return err
}

// Close goes back to the beginning of the file and fills in the sizes.
func (ww *WAVWriter) Close() error {
	ww.header.filesize = int32(ww.byteCount + wavHeaderSize - 8) //nolint:gosec
	ww.header.datasize = int32(ww.byteCount)                     //nolint:gosec

	var err = ww.w.Flush()
	if err != nil {
		ww.f.Close()
		return err
	}

	_, err = ww.f.Seek(0, io.SeekStart)
	if err != nil {
		ww.f.Close()
		return fmt.Errorf("couldn't seek in audio file: %w", err)
	}

	err = ww.header.writeTo(ww.f)
	if err != nil {
		ww.f.Close()
		return fmt.Errorf("couldn't write header to audio file: %w", err)
	}

	return ww.f.Close()
}

// WAVInfo is what ReadWAV found in a file.
type WAVInfo struct {
	SampleRate    int
	BitsPerSample int
	Channels      int
	Samples       []int16
}

// ReadWAV loads a mono PCM file written by WAVWriter.
func ReadWAV(r io.Reader) (*WAVInfo, error) {
	var raw [wavHeaderSize]byte

	var _, err = io.ReadFull(r, raw[:])
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}

	if string(raw[0:4]) != "RIFF" || string(raw[8:12]) != "WAVE" || string(raw[36:40]) != "data" {
		return nil, fmt.Errorf("not a canonical PCM .WAV file")
	}

	var info = &WAVInfo{
		Channels:      int(binary.LittleEndian.Uint16(raw[22:24])),
		SampleRate:    int(binary.LittleEndian.Uint32(raw[24:28])),
		BitsPerSample: int(binary.LittleEndian.Uint16(raw[34:36])),
	}

	var size = int(binary.LittleEndian.Uint32(raw[40:44]))

	var data = make([]byte, size)

	_, err = io.ReadFull(r, data)
	if err != nil {
		return nil, fmt.Errorf("reading data: %w", err)
	}

	switch info.BitsPerSample {
	case 8:
		info.Samples = make([]int16, size)
		for i, b := range data {
			info.Samples[i] = int16((int(b) << 8) - 32768) //nolint:gosec
		}
	case 16:
		info.Samples = make([]int16, size/2)
		for i := range info.Samples {
			info.Samples[i] = int16(binary.LittleEndian.Uint16(data[2*i:])) //nolint:gosec
		}
	default:
		return nil, fmt.Errorf("unsupported bits per sample %d", info.BitsPerSample)
	}

	return info, nil
}
